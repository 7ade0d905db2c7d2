// Package models defines the persistent entities of the task tracker and the
// request payload types the services consume.
package models

import "time"

// User owns every other entity transitively. Immutable after signup.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
