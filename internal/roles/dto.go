package roles

import (
	"time"

	"talentgap-backend/internal/gap"
)

type rolePayload struct {
	ID               string               `json:"id"`
	Title            string               `json:"title"`
	Chapter          string               `json:"chapter,omitempty"`
	Seniority        string               `json:"seniority,omitempty"`
	RequiredSkills   map[string]gap.Level `json:"required_skills"`
	Responsibilities []string             `json:"responsibilities"`
	Objectives       []string             `json:"objectives"`
	Dedication       gap.DedicationRange  `json:"dedication"`
}

type roleResponse struct {
	rolePayload
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p rolePayload) toModel() Role {
	return Role{
		ID:               p.ID,
		Title:            p.Title,
		Chapter:          p.Chapter,
		Seniority:        p.Seniority,
		RequiredSkills:   p.RequiredSkills,
		Responsibilities: p.Responsibilities,
		Objectives:       p.Objectives,
		Dedication:       p.Dedication,
	}
}

func toResponse(r Role) roleResponse {
	return roleResponse{
		rolePayload: rolePayload{
			ID:               r.ID,
			Title:            r.Title,
			Chapter:          r.Chapter,
			Seniority:        r.Seniority,
			RequiredSkills:   r.RequiredSkills,
			Responsibilities: r.Responsibilities,
			Objectives:       r.Objectives,
			Dedication:       r.Dedication,
		},
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
