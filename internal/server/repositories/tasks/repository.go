// Package tasks provides persistence for tasks, including the batch
// operations the project task reconciler is built on.
package tasks

import (
	"context"

	"github.com/dmitrijs2005/growthroad/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, task *models.Task) error
	List(ctx context.Context, userID string) ([]models.Task, error)
	Get(ctx context.Context, id, userID string) (*models.Task, error)

	// GetAny looks a task up by id alone, ignoring project and user scope.
	// The reconciler uses it to detect submitted ids that already belong to
	// another project or another user.
	GetAny(ctx context.Context, id string) (*models.Task, error)

	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id, userID string) error

	// Upsert inserts the row or fully replaces its fields when the id exists.
	Upsert(ctx context.Context, task *models.Task) error

	// ListByProject returns a project's tasks ordered by order_index.
	ListByProject(ctx context.Context, projectID, userID string) ([]models.Task, error)

	// DeleteByProjectExcept removes all of the project's tasks whose ids are
	// not in keep. An empty keep removes every task of the project.
	DeleteByProjectExcept(ctx context.Context, projectID, userID string, keep []string) error
}
