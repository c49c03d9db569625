package roles

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"talentgap-backend/internal/gap"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const roleColumns = `id, title, chapter, seniority, required_skills, responsibilities, objectives, min_hours, max_hours, created_at, updated_at`

// Create inserts a new role.
func (r *PGRepo) Create(ctx context.Context, role Role) error {
	const query = `
INSERT INTO roles (` + roleColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	skills, responsibilities, objectives, err := marshalRoleFields(role)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query,
		role.ID, role.Title, role.Chapter, role.Seniority,
		skills, responsibilities, objectives,
		role.Dedication.MinHours, role.Dedication.MaxHours,
		role.CreatedAt, role.UpdatedAt,
	)
	return err
}

// GetByID returns a role by id.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Role, error) {
	const query = `
SELECT ` + roleColumns + `
FROM roles
WHERE id = $1`
	role, err := scanRole(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Role{}, ErrNotFound
		}
		return Role{}, err
	}
	return role, nil
}

// List returns all roles ordered by id.
func (r *PGRepo) List(ctx context.Context) ([]Role, error) {
	const query = `
SELECT ` + roleColumns + `
FROM roles
ORDER BY id`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Role
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, role)
	}
	return out, rows.Err()
}

// Update replaces an existing role.
func (r *PGRepo) Update(ctx context.Context, role Role) error {
	const query = `
UPDATE roles
SET title = $2, chapter = $3, seniority = $4, required_skills = $5, responsibilities = $6,
    objectives = $7, min_hours = $8, max_hours = $9, updated_at = $10
WHERE id = $1`

	skills, responsibilities, objectives, err := marshalRoleFields(role)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx, query,
		role.ID, role.Title, role.Chapter, role.Seniority,
		skills, responsibilities, objectives,
		role.Dedication.MinHours, role.Dedication.MaxHours,
		role.UpdatedAt,
	)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a role.
func (r *PGRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM roles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRole(row rowScanner) (Role, error) {
	var role Role
	var skills, responsibilities, objectives []byte
	err := row.Scan(
		&role.ID, &role.Title, &role.Chapter, &role.Seniority,
		&skills, &responsibilities, &objectives,
		&role.Dedication.MinHours, &role.Dedication.MaxHours,
		&role.CreatedAt, &role.UpdatedAt,
	)
	if err != nil {
		return Role{}, err
	}
	if len(skills) > 0 {
		if err := json.Unmarshal(skills, &role.RequiredSkills); err != nil {
			return Role{}, fmt.Errorf("role %s required_skills: %w", role.ID, err)
		}
	}
	if len(responsibilities) > 0 {
		if err := json.Unmarshal(responsibilities, &role.Responsibilities); err != nil {
			return Role{}, fmt.Errorf("role %s responsibilities: %w", role.ID, err)
		}
	}
	if len(objectives) > 0 {
		if err := json.Unmarshal(objectives, &role.Objectives); err != nil {
			return Role{}, fmt.Errorf("role %s objectives: %w", role.ID, err)
		}
	}
	return role, nil
}

func marshalRoleFields(role Role) (skills, responsibilities, objectives []byte, err error) {
	required := role.RequiredSkills
	if required == nil {
		required = map[string]gap.Level{}
	}
	if skills, err = json.Marshal(required); err != nil {
		return
	}
	resp := role.Responsibilities
	if resp == nil {
		resp = []string{}
	}
	if responsibilities, err = json.Marshal(resp); err != nil {
		return
	}
	obj := role.Objectives
	if obj == nil {
		obj = []string{}
	}
	objectives, err = json.Marshal(obj)
	return
}

var _ Repo = (*PGRepo)(nil)

// PGSkillsRepo implements SkillsRepo using Postgres.
type PGSkillsRepo struct {
	DB *sql.DB
}

// Upsert stores or replaces a skill.
func (r *PGSkillsRepo) Upsert(ctx context.Context, s gap.Skill) error {
	const query = `
INSERT INTO skills (id, name, category, weight)
VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO UPDATE SET name = $2, category = $3, weight = $4`
	_, err := r.DB.ExecContext(ctx, query, s.ID, s.Name, s.Category, s.Weight)
	return err
}

// List returns all skills ordered by id.
func (r *PGSkillsRepo) List(ctx context.Context) ([]gap.Skill, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, name, category, weight FROM skills ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []gap.Skill
	for rows.Next() {
		var s gap.Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.Category, &s.Weight); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

var _ SkillsRepo = (*PGSkillsRepo)(nil)
