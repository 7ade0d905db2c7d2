package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/growthroad/internal/common"
	"github.com/dmitrijs2005/growthroad/internal/dbx"
	"github.com/dmitrijs2005/growthroad/internal/server/models"
)

const taskColumns = `id, user_id, project_id, label_id, parent_task_id, order_index,
	title, memo, completed, completed_at, is_fixed, is_group, created_at, updated_at`

// PostgresRepository implements task storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanTask(row interface{ Scan(...any) error }, t *models.Task) error {
	return row.Scan(&t.ID, &t.UserID, &t.ProjectID, &t.LabelID, &t.ParentTaskID,
		&t.OrderIndex, &t.Title, &t.Memo, &t.Completed, &t.CompletedAt,
		&t.IsFixed, &t.IsGroup, &t.CreatedAt, &t.UpdatedAt)
}

func (r *PostgresRepository) Create(ctx context.Context, task *models.Task) error {
	query := `
		INSERT INTO tasks (id, user_id, project_id, label_id, parent_task_id, order_index,
			title, memo, completed, completed_at, is_fixed, is_group)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		task.ID, task.UserID, task.ProjectID, task.LabelID, task.ParentTaskID,
		task.OrderIndex, task.Title, task.Memo, task.Completed, task.CompletedAt,
		task.IsFixed, task.IsGroup).
		Scan(&task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) List(ctx context.Context, userID string) ([]models.Task, error) {
	query := `
		SELECT ` + taskColumns + ` FROM tasks
		WHERE user_id = $1
		ORDER BY created_at ASC
	`
	return r.queryTasks(ctx, query, userID)
}

func (r *PostgresRepository) Get(ctx context.Context, id, userID string) (*models.Task, error) {
	query := `
		SELECT ` + taskColumns + ` FROM tasks
		WHERE id = $1 AND user_id = $2
	`

	t := &models.Task{}
	if err := scanTask(r.db.QueryRowContext(ctx, query, id, userID), t); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return t, nil
}

func (r *PostgresRepository) GetAny(ctx context.Context, id string) (*models.Task, error) {
	query := `
		SELECT ` + taskColumns + ` FROM tasks
		WHERE id = $1
	`

	t := &models.Task{}
	if err := scanTask(r.db.QueryRowContext(ctx, query, id), t); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return t, nil
}

func (r *PostgresRepository) Update(ctx context.Context, task *models.Task) error {
	query := `
		UPDATE tasks
		SET project_id = $3, label_id = $4, parent_task_id = $5, order_index = $6,
			title = $7, memo = $8, completed = $9, completed_at = $10,
			is_fixed = $11, is_group = $12, updated_at = $13
		WHERE id = $1 AND user_id = $2
	`

	res, err := r.db.ExecContext(ctx, query,
		task.ID, task.UserID, task.ProjectID, task.LabelID, task.ParentTaskID,
		task.OrderIndex, task.Title, task.Memo, task.Completed, task.CompletedAt,
		task.IsFixed, task.IsGroup, task.UpdatedAt)
	if err != nil {
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

func (r *PostgresRepository) Delete(ctx context.Context, id, userID string) error {
	query := `
		DELETE FROM tasks
		WHERE id = $1 AND user_id = $2
	`

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
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

// Upsert writes the full desired state of one task row. Ownership columns
// are part of the update so a reused unattached task moves into the target
// project in the same statement.
func (r *PostgresRepository) Upsert(ctx context.Context, task *models.Task) error {
	query := `
		INSERT INTO tasks (id, user_id, project_id, label_id, parent_task_id, order_index,
			title, memo, completed, completed_at, is_fixed, is_group, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id)
		DO UPDATE SET
			user_id = EXCLUDED.user_id,
			project_id = EXCLUDED.project_id,
			label_id = EXCLUDED.label_id,
			parent_task_id = EXCLUDED.parent_task_id,
			order_index = EXCLUDED.order_index,
			title = EXCLUDED.title,
			memo = EXCLUDED.memo,
			completed = EXCLUDED.completed,
			completed_at = EXCLUDED.completed_at,
			is_fixed = EXCLUDED.is_fixed,
			is_group = EXCLUDED.is_group,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		task.ID, task.UserID, task.ProjectID, task.LabelID, task.ParentTaskID,
		task.OrderIndex, task.Title, task.Memo, task.Completed, task.CompletedAt,
		task.IsFixed, task.IsGroup, task.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) ListByProject(ctx context.Context, projectID, userID string) ([]models.Task, error) {
	query := `
		SELECT ` + taskColumns + ` FROM tasks
		WHERE project_id = $1 AND user_id = $2
		ORDER BY order_index ASC, created_at ASC
	`
	return r.queryTasks(ctx, query, projectID, userID)
}

func (r *PostgresRepository) DeleteByProjectExcept(ctx context.Context, projectID, userID string, keep []string) error {
	query := `
		DELETE FROM tasks
		WHERE project_id = $1 AND user_id = $2
	`
	args := []any{projectID, userID}

	if len(keep) > 0 {
		placeholders := make([]string, len(keep))
		for i, id := range keep {
			placeholders[i] = fmt.Sprintf("$%d", i+3)
			args = append(args, id)
		}
		query += ` AND id NOT IN (` + strings.Join(placeholders, ", ") + `)`
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) queryTasks(ctx context.Context, query string, args ...any) ([]models.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.Task{}
	for rows.Next() {
		var t models.Task
		if err := scanTask(rows, &t); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
