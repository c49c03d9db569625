package employees

import (
	"time"

	"talentgap-backend/internal/gap"
)

// Employee is the stored talent profile. Skills map skill ids to raw
// levels (numeric 0-10 or categorical label), Dedication maps project
// names to percentages of a full-time week.
type Employee struct {
	ID               string
	Name             string
	Email            string
	Chapter          string
	CurrentRole      string
	Manager          string
	TenureMonths     int
	Skills           map[string]gap.Level
	Responsibilities []string
	Specialties      []string
	Aspiration       string
	Dedication       map[string]int
	Metadata         map[string]string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Scoring projects the stored record onto the calculator's input shape.
func (e Employee) Scoring() gap.Employee {
	return gap.Employee{
		ID:               e.ID,
		Name:             e.Name,
		Chapter:          e.Chapter,
		CurrentRole:      e.CurrentRole,
		Skills:           e.Skills,
		Responsibilities: e.Responsibilities,
		Ambitions: gap.Ambitions{
			Specialties: e.Specialties,
			Aspiration:  e.Aspiration,
		},
		Dedication: e.Dedication,
	}
}
