// Package labels provides persistence for labels, including the guarded
// delete that refuses to remove a label still referenced by a project or
// task.
package labels

import (
	"context"

	"github.com/dmitrijs2005/growthroad/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, label *models.Label) error
	List(ctx context.Context, userID string) ([]models.Label, error)
	Get(ctx context.Context, id, userID string) (*models.Label, error)
	Update(ctx context.Context, label *models.Label) error

	// DeleteIfUnused deletes the label only when no project or task of the
	// same user references it. Returns common.ErrLabelInUse when referenced
	// and common.ErrNotFound when the label does not exist for this user.
	DeleteIfUnused(ctx context.Context, id, userID string) error
}
