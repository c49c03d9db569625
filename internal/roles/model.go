package roles

import (
	"time"

	"talentgap-backend/internal/gap"
)

// Role is a stored target role. RequiredSkills maps skill ids to the
// level the role demands; a zero-value level means the default
// requirement.
type Role struct {
	ID               string
	Title            string
	Chapter          string
	Seniority        string
	RequiredSkills   map[string]gap.Level
	Responsibilities []string
	Objectives       []string
	Dedication       gap.DedicationRange
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Scoring projects the stored record onto the calculator's input shape.
func (r Role) Scoring() gap.Role {
	return gap.Role{
		ID:               r.ID,
		Title:            r.Title,
		Chapter:          r.Chapter,
		Seniority:        r.Seniority,
		RequiredSkills:   r.RequiredSkills,
		Responsibilities: r.Responsibilities,
		Objectives:       r.Objectives,
		Dedication:       r.Dedication,
	}
}
