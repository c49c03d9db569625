package roles

import (
	"context"

	"talentgap-backend/internal/gap"
)

// Repo defines persistence operations for roles.
type Repo interface {
	Create(ctx context.Context, r Role) error
	GetByID(ctx context.Context, id string) (Role, error)
	List(ctx context.Context) ([]Role, error)
	Update(ctx context.Context, r Role) error
	Delete(ctx context.Context, id string) error
}

// SkillsRepo defines persistence operations for the skill catalog.
type SkillsRepo interface {
	Upsert(ctx context.Context, s gap.Skill) error
	List(ctx context.Context) ([]gap.Skill, error)
}
