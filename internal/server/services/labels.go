package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/growthroad/internal/common"
	"github.com/dmitrijs2005/growthroad/internal/dbx"
	"github.com/dmitrijs2005/growthroad/internal/server/models"
	"github.com/dmitrijs2005/growthroad/internal/server/repositories/repomanager"
)

type LabelService struct {
	db    *sql.DB
	repos repomanager.RepositoryManager
}

func NewLabelService(db *sql.DB, m repomanager.RepositoryManager) *LabelService {
	return &LabelService{db: db, repos: m}
}

func (s *LabelService) List(ctx context.Context, userID string) ([]models.Label, error) {
	return s.repos.Labels(s.db).List(ctx, userID)
}

func (s *LabelService) Create(ctx context.Context, userID string, payload models.LabelCreate) (*models.Label, error) {
	label := &models.Label{
		ID:     common.NewID(common.LabelIDPrefix),
		UserID: userID,
		Name:   payload.Name,
		Color:  payload.Color,
	}

	if err := s.repos.Labels(s.db).Create(ctx, label); err != nil {
		return nil, err
	}

	return label, nil
}

func (s *LabelService) Update(ctx context.Context, userID, id string, payload models.LabelUpdate) (*models.Label, error) {
	var label *models.Label

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repos.Labels(tx)

		current, err := repo.Get(ctx, id, userID)
		if err != nil {
			return err
		}

		payload.Name.Apply(&current.Name)
		payload.Color.ApplyPtr(&current.Color)

		if err := repo.Update(ctx, current); err != nil {
			return err
		}

		label = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	return label, nil
}

// Delete removes a label unless any project or task of the same user still
// references it (common.ErrLabelInUse). The check and the delete are one
// conditional statement at the store layer, so a concurrent attach cannot
// slip between them.
func (s *LabelService) Delete(ctx context.Context, userID, id string) error {
	return s.repos.Labels(s.db).DeleteIfUnused(ctx, id, userID)
}
