// Package common defines shared sentinel errors and id helpers used across
// the Growth Road server layers. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Uniqueness violations.
	ErrEmailExists    = errors.New("email already exists")
	ErrDuplicateLabel = errors.New("label name already exists")

	// Reconciliation errors.
	ErrInvalidParent = errors.New("invalid parent reference")
	ErrIDConflict    = errors.New("id belongs to another project")

	// Deletion guard.
	ErrLabelInUse = errors.New("label is in use")

	// Auth errors.
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")

	// Validation errors (bad field values in a request).
	ErrValidation = errors.New("validation error")

	// Generic internal flow control.
	ErrInternal = errors.New("internal error")
)
