package employees

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"talentgap-backend/internal/gap"
)

// Service contains business logic for employees.
type Service struct {
	Repo Repo
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Create validates and stores a new employee. An empty id gets a
// generated one.
func (s *Service) Create(ctx context.Context, e Employee) (Employee, error) {
	if strings.TrimSpace(e.ID) == "" {
		e.ID = uuid.NewString()
	}
	if err := validate(e); err != nil {
		return Employee{}, err
	}
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now
	if err := s.Repo.Create(ctx, e); err != nil {
		return Employee{}, err
	}
	return e, nil
}

// Get returns one employee.
func (s *Service) Get(ctx context.Context, id string) (Employee, error) {
	if strings.TrimSpace(id) == "" {
		return Employee{}, fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, id)
}

// List returns all employees.
func (s *Service) List(ctx context.Context) ([]Employee, error) {
	return s.Repo.List(ctx)
}

// Update validates and replaces an existing employee.
func (s *Service) Update(ctx context.Context, e Employee) (Employee, error) {
	if strings.TrimSpace(e.ID) == "" {
		return Employee{}, fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	if err := validate(e); err != nil {
		return Employee{}, err
	}
	existing, err := s.Repo.GetByID(ctx, e.ID)
	if err != nil {
		return Employee{}, err
	}
	e.CreatedAt = existing.CreatedAt
	e.UpdatedAt = time.Now().UTC()
	if err := s.Repo.Update(ctx, e); err != nil {
		return Employee{}, err
	}
	return e, nil
}

// Delete removes an employee.
func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	return s.Repo.Delete(ctx, id)
}

// validate enforces write-time rules. Dedication above 100% total is
// rejected here; totals below 100% are stored as-is and degrade scoring
// gracefully.
func validate(e Employee) error {
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	total := 0
	for project, pct := range e.Dedication {
		if pct < 0 || pct > 100 {
			return fmt.Errorf("%w: dedication for %q must be in [0,100]", ErrInvalidInput, project)
		}
		total += pct
	}
	if total > 100 {
		return fmt.Errorf("%w: dedication totals %d%%, more than a full week", ErrInvalidInput, total)
	}
	for skillID, level := range e.Skills {
		if _, err := level.Normalize(); err != nil {
			return fmt.Errorf("%w: skill %s: %v", ErrInvalidInput, skillID, err)
		}
	}
	if err := gap.ValidateEmployee(e.Scoring()); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}
