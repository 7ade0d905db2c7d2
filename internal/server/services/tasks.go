package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/dmitrijs2005/growthroad/internal/common"
	"github.com/dmitrijs2005/growthroad/internal/dbx"
	"github.com/dmitrijs2005/growthroad/internal/server/models"
	"github.com/dmitrijs2005/growthroad/internal/server/repositories/repomanager"
)

type TaskService struct {
	db    *sql.DB
	repos repomanager.RepositoryManager
}

func NewTaskService(db *sql.DB, m repomanager.RepositoryManager) *TaskService {
	return &TaskService{db: db, repos: m}
}

func (s *TaskService) List(ctx context.Context, userID string) ([]models.Task, error) {
	return s.repos.Tasks(s.db).List(ctx, userID)
}

func (s *TaskService) Create(ctx context.Context, userID string, payload models.TaskCreate) (*models.Task, error) {
	task := &models.Task{
		ID:           common.NewID(common.TaskIDPrefix),
		UserID:       userID,
		ProjectID:    payload.ProjectID,
		LabelID:      payload.LabelID,
		ParentTaskID: payload.ParentTaskID,
		OrderIndex:   payload.OrderIndex,
		Title:        payload.Title,
		Memo:         payload.Memo,
		Completed:    payload.Completed,
		CompletedAt:  payload.CompletedAt,
		IsFixed:      payload.IsFixed,
		IsGroup:      payload.IsGroup,
	}

	if err := s.repos.Tasks(s.db).Create(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

func (s *TaskService) Update(ctx context.Context, userID, id string, payload models.TaskUpdate) (*models.Task, error) {
	var task *models.Task

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repos.Tasks(tx)

		current, err := repo.Get(ctx, id, userID)
		if err != nil {
			return err
		}

		payload.Title.Apply(&current.Title)
		payload.ProjectID.ApplyPtr(&current.ProjectID)
		payload.LabelID.ApplyPtr(&current.LabelID)
		payload.ParentTaskID.ApplyPtr(&current.ParentTaskID)
		payload.OrderIndex.Apply(&current.OrderIndex)
		payload.Memo.ApplyPtr(&current.Memo)
		payload.Completed.Apply(&current.Completed)
		payload.CompletedAt.ApplyPtr(&current.CompletedAt)
		payload.IsFixed.Apply(&current.IsFixed)
		payload.IsGroup.Apply(&current.IsGroup)
		current.UpdatedAt = time.Now().UTC()

		if err := repo.Update(ctx, current); err != nil {
			return err
		}

		task = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	return task, nil
}

// Delete removes a single task row. Children of a deleted group keep their
// dangling parent reference; readers tolerate it.
func (s *TaskService) Delete(ctx context.Context, userID, id string) error {
	return s.repos.Tasks(s.db).Delete(ctx, id, userID)
}
