package employees

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"talentgap-backend/internal/gap"
)

// PGRepo implements Repo using Postgres. Skills, responsibilities,
// specialties, dedication and metadata live in jsonb columns.
type PGRepo struct {
	DB *sql.DB
}

const employeeColumns = `id, name, email, chapter, current_position, manager, tenure_months, skills, responsibilities, specialties, aspiration, dedication, metadata, created_at, updated_at`

// Create inserts a new employee.
func (r *PGRepo) Create(ctx context.Context, e Employee) error {
	const query = `
INSERT INTO employees (` + employeeColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	skills, responsibilities, specialties, dedication, metadata, err := marshalFields(e)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query,
		e.ID, e.Name, e.Email, e.Chapter, e.CurrentRole, e.Manager, e.TenureMonths,
		skills, responsibilities, specialties, e.Aspiration, dedication, metadata,
		e.CreatedAt, e.UpdatedAt,
	)
	return err
}

// GetByID returns an employee by id.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Employee, error) {
	const query = `
SELECT ` + employeeColumns + `
FROM employees
WHERE id = $1`
	e, err := scanEmployee(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Employee{}, ErrNotFound
		}
		return Employee{}, err
	}
	return e, nil
}

// List returns all employees ordered by id.
func (r *PGRepo) List(ctx context.Context) ([]Employee, error) {
	const query = `
SELECT ` + employeeColumns + `
FROM employees
ORDER BY id`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Update replaces an existing employee.
func (r *PGRepo) Update(ctx context.Context, e Employee) error {
	const query = `
UPDATE employees
SET name = $2, email = $3, chapter = $4, current_position = $5, manager = $6, tenure_months = $7,
    skills = $8, responsibilities = $9, specialties = $10, aspiration = $11, dedication = $12,
    metadata = $13, updated_at = $14
WHERE id = $1`

	skills, responsibilities, specialties, dedication, metadata, err := marshalFields(e)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx, query,
		e.ID, e.Name, e.Email, e.Chapter, e.CurrentRole, e.Manager, e.TenureMonths,
		skills, responsibilities, specialties, e.Aspiration, dedication, metadata,
		e.UpdatedAt,
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

// Delete removes an employee.
func (r *PGRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM employees WHERE id = $1`, id)
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

func scanEmployee(row rowScanner) (Employee, error) {
	var e Employee
	var skills, responsibilities, specialties, dedication, metadata []byte
	err := row.Scan(
		&e.ID, &e.Name, &e.Email, &e.Chapter, &e.CurrentRole, &e.Manager, &e.TenureMonths,
		&skills, &responsibilities, &specialties, &e.Aspiration, &dedication, &metadata,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return Employee{}, err
	}
	if err := unmarshalInto(skills, &e.Skills); err != nil {
		return Employee{}, fmt.Errorf("employee %s skills: %w", e.ID, err)
	}
	if err := unmarshalInto(responsibilities, &e.Responsibilities); err != nil {
		return Employee{}, fmt.Errorf("employee %s responsibilities: %w", e.ID, err)
	}
	if err := unmarshalInto(specialties, &e.Specialties); err != nil {
		return Employee{}, fmt.Errorf("employee %s specialties: %w", e.ID, err)
	}
	if err := unmarshalInto(dedication, &e.Dedication); err != nil {
		return Employee{}, fmt.Errorf("employee %s dedication: %w", e.ID, err)
	}
	if err := unmarshalInto(metadata, &e.Metadata); err != nil {
		return Employee{}, fmt.Errorf("employee %s metadata: %w", e.ID, err)
	}
	return e, nil
}

func marshalFields(e Employee) (skills, responsibilities, specialties, dedication, metadata []byte, err error) {
	if skills, err = json.Marshal(orEmptyLevels(e.Skills)); err != nil {
		return
	}
	if responsibilities, err = json.Marshal(orEmptyStrings(e.Responsibilities)); err != nil {
		return
	}
	if specialties, err = json.Marshal(orEmptyStrings(e.Specialties)); err != nil {
		return
	}
	if dedication, err = json.Marshal(orEmptyInts(e.Dedication)); err != nil {
		return
	}
	metadata, err = json.Marshal(orEmptyMap(e.Metadata))
	return
}

func unmarshalInto(raw []byte, dst any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}

func orEmptyLevels(m map[string]gap.Level) map[string]gap.Level {
	if m == nil {
		return map[string]gap.Level{}
	}
	return m
}

func orEmptyStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func orEmptyInts(m map[string]int) map[string]int {
	if m == nil {
		return map[string]int{}
	}
	return m
}

func orEmptyMap(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}

var _ Repo = (*PGRepo)(nil)
