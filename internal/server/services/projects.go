package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dmitrijs2005/growthroad/internal/common"
	"github.com/dmitrijs2005/growthroad/internal/dbx"
	"github.com/dmitrijs2005/growthroad/internal/server/models"
	"github.com/dmitrijs2005/growthroad/internal/server/repositories/repomanager"
)

type ProjectService struct {
	db    *sql.DB
	repos repomanager.RepositoryManager
}

func NewProjectService(db *sql.DB, m repomanager.RepositoryManager) *ProjectService {
	return &ProjectService{db: db, repos: m}
}

func (s *ProjectService) List(ctx context.Context, userID string) ([]models.Project, error) {
	return s.repos.Projects(s.db).List(ctx, userID)
}

func (s *ProjectService) Create(ctx context.Context, userID string, payload models.ProjectCreate) (*models.Project, error) {
	project := &models.Project{
		ID:      common.NewID(common.ProjectIDPrefix),
		UserID:  userID,
		Title:   payload.Title,
		LabelID: payload.LabelID,
	}
	if payload.CurrentOrderIndex != nil {
		project.CurrentOrderIndex = *payload.CurrentOrderIndex
	}

	if err := s.repos.Projects(s.db).Create(ctx, project); err != nil {
		return nil, err
	}

	return project, nil
}

func (s *ProjectService) Update(ctx context.Context, userID, id string, payload models.ProjectUpdate) (*models.Project, error) {
	var project *models.Project

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repos.Projects(tx)

		current, err := repo.Get(ctx, id, userID)
		if err != nil {
			return err
		}

		payload.Title.Apply(&current.Title)
		payload.LabelID.ApplyPtr(&current.LabelID)
		payload.CurrentOrderIndex.Apply(&current.CurrentOrderIndex)
		current.UpdatedAt = time.Now().UTC()

		if err := repo.Update(ctx, current); err != nil {
			return err
		}

		project = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	return project, nil
}

// Delete removes a project and all of its tasks in one transaction.
func (s *ProjectService) Delete(ctx context.Context, userID, id string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repos.Projects(tx).GetForUpdate(ctx, id, userID); err != nil {
			return err
		}
		if err := s.repos.Tasks(tx).DeleteByProjectExcept(ctx, id, userID, nil); err != nil {
			return err
		}
		return s.repos.Projects(tx).Delete(ctx, id, userID)
	})
}

// ListWithTasks returns every project of the user together with its tasks
// ordered by order_index.
func (s *ProjectService) ListWithTasks(ctx context.Context, userID string) ([]models.ProjectWithTasks, error) {
	projects, err := s.repos.Projects(s.db).List(ctx, userID)
	if err != nil {
		return nil, err
	}

	taskRepo := s.repos.Tasks(s.db)
	result := make([]models.ProjectWithTasks, 0, len(projects))
	for _, p := range projects {
		tasks, err := taskRepo.ListByProject(ctx, p.ID, userID)
		if err != nil {
			return nil, err
		}
		result = append(result, models.ProjectWithTasks{Project: p, Tasks: tasks})
	}

	return result, nil
}

// ReconcileTasks atomically replaces the task set of a project with the
// desired items. The client always submits the full desired state; the
// server computes inserts, updates, and deletes. An empty items slice is an
// intentional total clear.
//
// Failure modes, all without partial writes: common.ErrNotFound when the
// project does not exist for this user (or a submitted id belongs to another
// user), common.ErrInvalidParent when an item's parent id is not co-submitted
// in the same batch, and common.ErrIDConflict when a submitted id already
// belongs to a different project.
func (s *ProjectService) ReconcileTasks(ctx context.Context, userID, projectID string, items []models.TaskUpsert) ([]models.Task, error) {
	var final []models.Task

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		// The row lock serializes concurrent reconciliations of the same
		// project; different projects proceed independently.
		if _, err := s.repos.Projects(tx).GetForUpdate(ctx, projectID, userID); err != nil {
			return err
		}

		// A child's parent must be co-submitted in the same batch, by id.
		submitted := make(map[string]struct{}, len(items))
		for _, item := range items {
			if item.ID != "" {
				submitted[item.ID] = struct{}{}
			}
		}
		for _, item := range items {
			if item.ParentTaskID == nil {
				continue
			}
			if _, ok := submitted[*item.ParentTaskID]; !ok {
				return common.ErrInvalidParent
			}
		}

		taskRepo := s.repos.Tasks(tx)

		current, err := taskRepo.ListByProject(ctx, projectID, userID)
		if err != nil {
			return err
		}
		existing := make(map[string]*models.Task, len(current))
		for i := range current {
			existing[current[i].ID] = &current[i]
		}

		now := time.Now().UTC()
		keep := make([]string, 0, len(items))

		for _, item := range items {
			row, err := s.resolveTask(ctx, taskRepo, existing, userID, projectID, item.ID)
			if err != nil {
				return err
			}

			// Full replace of the row's fields, never a partial merge.
			pid := projectID
			row.UserID = userID
			row.ProjectID = &pid
			row.LabelID = item.LabelID
			row.ParentTaskID = item.ParentTaskID
			row.OrderIndex = item.OrderIndex
			row.Title = item.Title
			row.Memo = item.Memo
			row.Completed = item.Completed
			row.CompletedAt = item.CompletedAt
			row.IsFixed = item.IsFixed
			row.IsGroup = item.IsGroup
			row.UpdatedAt = now

			if err := taskRepo.Upsert(ctx, row); err != nil {
				return err
			}
			keep = append(keep, row.ID)
		}

		// Deletion sweep: everything of this project not in the keep set
		// goes away. With no kept ids this clears the whole project.
		if err := taskRepo.DeleteByProjectExcept(ctx, projectID, userID, keep); err != nil {
			return err
		}

		final, err = taskRepo.ListByProject(ctx, projectID, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return final, nil
}

// resolveTask maps one desired item id to the row the upsert will write.
// Unattached tasks of the same user are reattached to the target project;
// ids held by another project are a conflict; ids held by another user look
// like the id does not exist at all.
func (s *ProjectService) resolveTask(
	ctx context.Context,
	taskRepo interface {
		GetAny(ctx context.Context, id string) (*models.Task, error)
	},
	existing map[string]*models.Task,
	userID, projectID, itemID string,
) (*models.Task, error) {
	if itemID == "" {
		return &models.Task{ID: common.NewID(common.TaskIDPrefix)}, nil
	}

	if row, ok := existing[itemID]; ok {
		return row, nil
	}

	other, err := taskRepo.GetAny(ctx, itemID)
	if errors.Is(err, common.ErrNotFound) {
		// Unknown id: insert a new row under the supplied id.
		return &models.Task{ID: itemID}, nil
	}
	if err != nil {
		return nil, err
	}

	if other.UserID != userID {
		return nil, common.ErrNotFound
	}
	if other.ProjectID != nil && *other.ProjectID != projectID {
		return nil, common.ErrIDConflict
	}

	return other, nil
}
