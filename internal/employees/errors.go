package employees

import "errors"

var (
	// ErrNotFound indicates the employee does not exist.
	ErrNotFound = errors.New("employee not found")
	// ErrConflict indicates an employee with the same id already exists.
	ErrConflict = errors.New("employee already exists")
	// ErrInvalidInput indicates the payload failed validation.
	ErrInvalidInput = errors.New("invalid employee input")
)
