package labels

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/growthroad/internal/common"
	"github.com/dmitrijs2005/growthroad/internal/dbx"
	"github.com/dmitrijs2005/growthroad/internal/server/models"
)

// PostgresRepository implements label storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, label *models.Label) error {
	query := `
		INSERT INTO labels (id, user_id, name, color)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		label.ID, label.UserID, label.Name, label.Color).Scan(&label.CreatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.ErrDuplicateLabel
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) List(ctx context.Context, userID string) ([]models.Label, error) {
	query := `
		SELECT id, user_id, name, color, created_at FROM labels
		WHERE user_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.Label{}
	for rows.Next() {
		var l models.Label
		if err := rows.Scan(&l.ID, &l.UserID, &l.Name, &l.Color, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id, userID string) (*models.Label, error) {
	query := `
		SELECT id, user_id, name, color, created_at FROM labels
		WHERE id = $1 AND user_id = $2
	`

	label := &models.Label{}
	err := r.db.QueryRowContext(ctx, query, id, userID).
		Scan(&label.ID, &label.UserID, &label.Name, &label.Color, &label.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return label, nil
}

func (r *PostgresRepository) Update(ctx context.Context, label *models.Label) error {
	query := `
		UPDATE labels SET name = $3, color = $4
		WHERE id = $1 AND user_id = $2
	`

	res, err := r.db.ExecContext(ctx, query, label.ID, label.UserID, label.Name, label.Color)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.ErrDuplicateLabel
		}
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}

	return nil
}

// DeleteIfUnused is a single conditional delete so the usage check and the
// delete cannot interleave with a concurrent writer. The ON DELETE RESTRICT
// foreign keys on projects.label_id and tasks.label_id close the residual
// race where a reference is attached between the NOT EXISTS evaluation and
// the commit.
func (r *PostgresRepository) DeleteIfUnused(ctx context.Context, id, userID string) error {
	query := `
		DELETE FROM labels
		WHERE id = $1 AND user_id = $2
		  AND NOT EXISTS (SELECT 1 FROM projects WHERE label_id = $1 AND user_id = $2)
		  AND NOT EXISTS (SELECT 1 FROM tasks WHERE label_id = $1 AND user_id = $2)
	`

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		if dbx.IsForeignKeyViolation(err) {
			return common.ErrLabelInUse
		}
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 1 {
		return nil
	}

	// Nothing deleted: tell a missing label apart from a referenced one.
	if _, err := r.Get(ctx, id, userID); err != nil {
		return err
	}
	return common.ErrLabelInUse
}
