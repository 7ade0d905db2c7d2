// Package projects provides persistence for projects.
package projects

import (
	"context"

	"github.com/dmitrijs2005/growthroad/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, project *models.Project) error
	List(ctx context.Context, userID string) ([]models.Project, error)
	Get(ctx context.Context, id, userID string) (*models.Project, error)

	// GetForUpdate resolves a project and takes a row lock on it, serializing
	// concurrent task reconciliations of the same project. Must be called
	// inside a transaction.
	GetForUpdate(ctx context.Context, id, userID string) (*models.Project, error)

	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id, userID string) error
}
