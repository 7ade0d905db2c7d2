package models

import "time"

// Project groups tasks for one user. CurrentOrderIndex is a client-side
// ordering hint, not task ordering.
type Project struct {
	ID                string    `json:"id"`
	UserID            string    `json:"-"`
	Title             string    `json:"title"`
	LabelID           *string   `json:"label_id"`
	CurrentOrderIndex int       `json:"current_order_index"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ProjectCreate is the payload for creating a project.
type ProjectCreate struct {
	Title             string  `json:"title" binding:"required"`
	LabelID           *string `json:"label_id"`
	CurrentOrderIndex *int    `json:"current_order_index"`
}

// ProjectUpdate is a partial update: only fields present in the request body
// overwrite stored values.
type ProjectUpdate struct {
	Title             Optional[string] `json:"title"`
	LabelID           Optional[string] `json:"label_id"`
	CurrentOrderIndex Optional[int]    `json:"current_order_index"`
}

// ProjectWithTasks is a project together with its tasks ordered by
// order_index, used by the combined listing endpoint.
type ProjectWithTasks struct {
	Project
	Tasks []Task `json:"tasks"`
}
