package employees

import "context"

// Repo defines persistence operations for employees.
type Repo interface {
	Create(ctx context.Context, e Employee) error
	GetByID(ctx context.Context, id string) (Employee, error)
	List(ctx context.Context) ([]Employee, error)
	Update(ctx context.Context, e Employee) error
	Delete(ctx context.Context, id string) error
}
