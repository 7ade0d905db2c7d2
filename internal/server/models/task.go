package models

import "time"

// Task is a single to-do row. ProjectID is nil for unattached personal
// tasks. ParentTaskID links a child to its group task; it is not enforced by
// a foreign key, so readers must tolerate dangling parents left behind by
// task deletion.
type Task struct {
	ID           string     `json:"id"`
	UserID       string     `json:"-"`
	ProjectID    *string    `json:"project_id"`
	LabelID      *string    `json:"label_id"`
	ParentTaskID *string    `json:"parent_task_id"`
	OrderIndex   int        `json:"order_index"`
	Title        string     `json:"title"`
	Memo         *string    `json:"memo"`
	Completed    bool       `json:"completed"`
	CompletedAt  *time.Time `json:"completed_at"`
	IsFixed      bool       `json:"is_fixed"`
	IsGroup      bool       `json:"is_group"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// TaskCreate is the payload for creating a standalone task.
type TaskCreate struct {
	Title        string     `json:"title" binding:"required"`
	ProjectID    *string    `json:"project_id"`
	LabelID      *string    `json:"label_id"`
	ParentTaskID *string    `json:"parent_task_id"`
	OrderIndex   int        `json:"order_index"`
	Memo         *string    `json:"memo"`
	Completed    bool       `json:"completed"`
	CompletedAt  *time.Time `json:"completed_at"`
	IsFixed      bool       `json:"is_fixed"`
	IsGroup      bool       `json:"is_group"`
}

// TaskUpdate is a partial update: only fields present in the request body
// overwrite stored values.
type TaskUpdate struct {
	Title        Optional[string]    `json:"title"`
	ProjectID    Optional[string]    `json:"project_id"`
	LabelID      Optional[string]    `json:"label_id"`
	ParentTaskID Optional[string]    `json:"parent_task_id"`
	OrderIndex   Optional[int]       `json:"order_index"`
	Memo         Optional[string]    `json:"memo"`
	Completed    Optional[bool]      `json:"completed"`
	CompletedAt  Optional[time.Time] `json:"completed_at"`
	IsFixed      Optional[bool]      `json:"is_fixed"`
	IsGroup      Optional[bool]      `json:"is_group"`
}

// TaskUpsert is one desired item in a project task reconciliation. An empty
// ID means "create new". All fields are a full replace of the stored row,
// not a merge. ParentTaskID must refer to the ID of another item submitted
// in the same batch.
type TaskUpsert struct {
	ID           string     `json:"id"`
	Title        string     `json:"title" binding:"required"`
	Memo         *string    `json:"memo"`
	LabelID      *string    `json:"label_id"`
	ParentTaskID *string    `json:"parent_task_id"`
	OrderIndex   int        `json:"order_index"`
	Completed    bool       `json:"completed"`
	CompletedAt  *time.Time `json:"completed_at"`
	IsFixed      bool       `json:"is_fixed"`
	IsGroup      bool       `json:"is_group"`
}
