package repository

import "errors"

// Common repository errors. Callers branch on these instead of inspecting
// driver-specific error values.
var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("repository: record not found")
	// ErrDuplicate indicates an insert violated a unique constraint.
	ErrDuplicate = errors.New("repository: duplicate entry")
)
