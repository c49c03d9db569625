package roles

import (
	"context"
	"sort"
	"sync"

	"talentgap-backend/internal/gap"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Role
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Role)}
}

// Create stores a new role.
func (r *MemoryRepo) Create(ctx context.Context, role Role) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[role.ID]; ok {
		return ErrConflict
	}
	r.data[role.ID] = role
	return nil
}

// GetByID returns a role by id.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Role, error) {
	if err := ctx.Err(); err != nil {
		return Role{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	role, ok := r.data[id]
	if !ok {
		return Role{}, ErrNotFound
	}
	return role, nil
}

// List returns all roles ordered by id.
func (r *MemoryRepo) List(ctx context.Context) ([]Role, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Role, 0, len(r.data))
	for _, role := range r.data {
		out = append(out, role)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Update replaces an existing role.
func (r *MemoryRepo) Update(ctx context.Context, role Role) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[role.ID]; !ok {
		return ErrNotFound
	}
	r.data[role.ID] = role
	return nil
}

// Delete removes a role.
func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[id]; !ok {
		return ErrNotFound
	}
	delete(r.data, id)
	return nil
}

var _ Repo = (*MemoryRepo)(nil)

// MemorySkillsRepo is an in-memory implementation of SkillsRepo.
type MemorySkillsRepo struct {
	mu   sync.RWMutex
	data map[string]gap.Skill
}

// NewMemorySkillsRepo constructs a MemorySkillsRepo.
func NewMemorySkillsRepo() *MemorySkillsRepo {
	return &MemorySkillsRepo{data: make(map[string]gap.Skill)}
}

// Upsert stores or replaces a skill.
func (r *MemorySkillsRepo) Upsert(ctx context.Context, s gap.Skill) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[s.ID] = s
	return nil
}

// List returns all skills ordered by id.
func (r *MemorySkillsRepo) List(ctx context.Context) ([]gap.Skill, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]gap.Skill, 0, len(r.data))
	for _, s := range r.data {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

var _ SkillsRepo = (*MemorySkillsRepo)(nil)
