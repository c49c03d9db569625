package roles

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"talentgap-backend/internal/gap"
)

// Service contains business logic for roles and the skill catalog.
type Service struct {
	Repo   Repo
	Skills SkillsRepo
}

// NewService constructs a Service.
func NewService(repo Repo, skills SkillsRepo) *Service {
	return &Service{Repo: repo, Skills: skills}
}

// Create validates and stores a new role.
func (s *Service) Create(ctx context.Context, r Role) (Role, error) {
	if strings.TrimSpace(r.ID) == "" {
		r.ID = uuid.NewString()
	}
	if err := validate(r); err != nil {
		return Role{}, err
	}
	now := time.Now().UTC()
	r.CreatedAt = now
	r.UpdatedAt = now
	if err := s.Repo.Create(ctx, r); err != nil {
		return Role{}, err
	}
	return r, nil
}

// Get returns one role.
func (s *Service) Get(ctx context.Context, id string) (Role, error) {
	if strings.TrimSpace(id) == "" {
		return Role{}, fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, id)
}

// List returns all roles.
func (s *Service) List(ctx context.Context) ([]Role, error) {
	return s.Repo.List(ctx)
}

// Update validates and replaces an existing role.
func (s *Service) Update(ctx context.Context, r Role) (Role, error) {
	if strings.TrimSpace(r.ID) == "" {
		return Role{}, fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	if err := validate(r); err != nil {
		return Role{}, err
	}
	existing, err := s.Repo.GetByID(ctx, r.ID)
	if err != nil {
		return Role{}, err
	}
	r.CreatedAt = existing.CreatedAt
	r.UpdatedAt = time.Now().UTC()
	if err := s.Repo.Update(ctx, r); err != nil {
		return Role{}, err
	}
	return r, nil
}

// Delete removes a role.
func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	return s.Repo.Delete(ctx, id)
}

// UpsertSkill stores a catalog entry.
func (s *Service) UpsertSkill(ctx context.Context, skill gap.Skill) (gap.Skill, error) {
	if strings.TrimSpace(skill.ID) == "" {
		return gap.Skill{}, fmt.Errorf("%w: skill id is required", ErrInvalidInput)
	}
	if skill.Weight < 0 {
		return gap.Skill{}, fmt.Errorf("%w: skill weight must not be negative", ErrInvalidInput)
	}
	if err := s.Skills.Upsert(ctx, skill); err != nil {
		return gap.Skill{}, err
	}
	return skill, nil
}

// ListSkills returns the catalog.
func (s *Service) ListSkills(ctx context.Context) ([]gap.Skill, error) {
	return s.Skills.List(ctx)
}

// Catalog returns the catalog indexed by skill id.
func (s *Service) Catalog(ctx context.Context) (gap.Catalog, error) {
	list, err := s.Skills.List(ctx)
	if err != nil {
		return nil, err
	}
	catalog := make(gap.Catalog, len(list))
	for _, skill := range list {
		catalog[skill.ID] = skill
	}
	return catalog, nil
}

func validate(r Role) error {
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if r.Dedication.MinHours < 0 || r.Dedication.MaxHours < r.Dedication.MinHours {
		return fmt.Errorf("%w: invalid dedication hour range", ErrInvalidInput)
	}
	for skillID, level := range r.RequiredSkills {
		if level == (gap.Level{}) {
			continue // default requirement applies
		}
		if _, err := level.Normalize(); err != nil {
			return fmt.Errorf("%w: skill %s: %v", ErrInvalidInput, skillID, err)
		}
	}
	if err := gap.ValidateRole(r.Scoring()); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}
