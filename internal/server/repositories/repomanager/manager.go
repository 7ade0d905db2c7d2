package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/growthroad/internal/dbx"
	"github.com/dmitrijs2005/growthroad/internal/server/repositories/labels"
	"github.com/dmitrijs2005/growthroad/internal/server/repositories/projects"
	"github.com/dmitrijs2005/growthroad/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/growthroad/internal/server/repositories/users"
)

// RepositoryManager vends repository implementations bound to a DBTX, so a
// service can use the same repository code both directly on *sql.DB and
// inside a dbx.WithTx transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Labels(db dbx.DBTX) labels.Repository
	Projects(db dbx.DBTX) projects.Repository
	Tasks(db dbx.DBTX) tasks.Repository
}
