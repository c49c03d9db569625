package employees

import (
	"time"

	"talentgap-backend/internal/gap"
)

type employeePayload struct {
	ID               string               `json:"id"`
	Name             string               `json:"name"`
	Email            string               `json:"email,omitempty"`
	Chapter          string               `json:"chapter,omitempty"`
	CurrentRole      string               `json:"current_role,omitempty"`
	Manager          string               `json:"manager,omitempty"`
	TenureMonths     int                  `json:"tenure_months,omitempty"`
	Skills           map[string]gap.Level `json:"skills"`
	Responsibilities []string             `json:"responsibilities"`
	Specialties      []string             `json:"specialties"`
	Aspiration       string               `json:"aspiration,omitempty"`
	Dedication       map[string]int       `json:"dedication"`
	Metadata         map[string]string    `json:"metadata,omitempty"`
}

type employeeResponse struct {
	employeePayload
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p employeePayload) toModel() Employee {
	return Employee{
		ID:               p.ID,
		Name:             p.Name,
		Email:            p.Email,
		Chapter:          p.Chapter,
		CurrentRole:      p.CurrentRole,
		Manager:          p.Manager,
		TenureMonths:     p.TenureMonths,
		Skills:           p.Skills,
		Responsibilities: p.Responsibilities,
		Specialties:      p.Specialties,
		Aspiration:       p.Aspiration,
		Dedication:       p.Dedication,
		Metadata:         p.Metadata,
	}
}

func toResponse(e Employee) employeeResponse {
	return employeeResponse{
		employeePayload: employeePayload{
			ID:               e.ID,
			Name:             e.Name,
			Email:            e.Email,
			Chapter:          e.Chapter,
			CurrentRole:      e.CurrentRole,
			Manager:          e.Manager,
			TenureMonths:     e.TenureMonths,
			Skills:           e.Skills,
			Responsibilities: e.Responsibilities,
			Specialties:      e.Specialties,
			Aspiration:       e.Aspiration,
			Dedication:       e.Dedication,
			Metadata:         e.Metadata,
		},
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}
