package roles

import "errors"

var (
	// ErrNotFound indicates the role or skill does not exist.
	ErrNotFound = errors.New("role not found")
	// ErrConflict indicates a role or skill with the same id already exists.
	ErrConflict = errors.New("role already exists")
	// ErrInvalidInput indicates the payload failed validation.
	ErrInvalidInput = errors.New("invalid role input")
)
