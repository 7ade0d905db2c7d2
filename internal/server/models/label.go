package models

import "time"

// Label is a display tag referenced by projects and tasks. The name is
// unique per user. A label cannot be deleted while referenced.
type Label struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	Name      string    `json:"name"`
	Color     *string   `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

// LabelCreate is the payload for creating a label.
type LabelCreate struct {
	Name  string  `json:"name" binding:"required"`
	Color *string `json:"color"`
}

// LabelUpdate is a partial update: only fields present in the request body
// overwrite stored values.
type LabelUpdate struct {
	Name  Optional[string] `json:"name"`
	Color Optional[string] `json:"color"`
}
