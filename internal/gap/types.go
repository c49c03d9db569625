package gap

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// AssumedFullTimeHours is the weekly capacity a dedication percentage refers to.
const AssumedFullTimeHours = 40.0

// Level is a raw skill proficiency as found in source data: either a
// categorical label (novato/intermedio/avanzado/experto) or a numeric
// value on the 0-10 scale. A label takes precedence when set.
type Level struct {
	Label string  `json:"label,omitempty"`
	Value float64 `json:"value,omitempty"`
}

// NumericLevel returns a Level for a 0-10 numeric value.
func NumericLevel(v float64) Level {
	return Level{Value: v}
}

// LabelLevel returns a Level for a categorical label.
func LabelLevel(label string) Level {
	return Level{Label: label}
}

// Ambitions captures what an employee wants to do next.
type Ambitions struct {
	Specialties []string `json:"specialties"`
	Aspiration  string   `json:"aspiration"` // junior..executive ordinal
}

// Employee is the core's immutable view of one employee. Callers own the
// data; the core never mutates it.
type Employee struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Chapter          string           `json:"chapter"`
	CurrentRole      string           `json:"current_role"`
	Skills           map[string]Level `json:"skills"`     // skill id -> level
	Responsibilities []string         `json:"responsibilities"`
	Ambitions        Ambitions        `json:"ambitions"`
	Dedication       map[string]int   `json:"dedication"` // project -> percent of time
}

// DedicationRange is the weekly hour range a role expects.
type DedicationRange struct {
	MinHours int `json:"min_hours"`
	MaxHours int `json:"max_hours"`
}

// Role is a target role to score employees against. RequiredSkills maps
// skill id to required level; a zero-value Level means the default
// requirement (avanzado, 0.8).
type Role struct {
	ID               string           `json:"id"`
	Title            string           `json:"title"`
	Chapter          string           `json:"chapter"`
	Seniority        string           `json:"seniority"`
	RequiredSkills   map[string]Level `json:"required_skills"`
	Responsibilities []string         `json:"responsibilities"`
	Objectives       []string         `json:"objectives"`
	Dedication       DedicationRange  `json:"dedication"`
}

// Skill is a catalog entry. Weight is the relative importance used by
// the skills scorer; zero means unspecified and counts as 1.
type Skill struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Weight   float64 `json:"weight"`
}

// Catalog indexes skills by id.
type Catalog map[string]Skill

// WeightOf returns the scoring weight for a skill, defaulting to 1 when
// the skill is unknown or carries no explicit weight.
func (c Catalog) WeightOf(skillID string) float64 {
	if s, ok := c[skillID]; ok && s.Weight > 0 {
		return s.Weight
	}
	return 1
}

// NameOf returns the display name for a skill id, falling back to a
// cleaned-up form of the id itself (S-ANALISIS -> Analisis).
func (c Catalog) NameOf(skillID string) string {
	if s, ok := c[skillID]; ok && strings.TrimSpace(s.Name) != "" {
		return s.Name
	}
	cleaned := strings.TrimPrefix(skillID, "S-")
	words := strings.Split(strings.ToLower(strings.ReplaceAll(cleaned, "-", " ")), " ")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// ComponentScores holds the four sub-scores, each in [0,1].
type ComponentScores struct {
	Skills           float64 `json:"skills"`
	Responsibilities float64 `json:"responsibilities"`
	Ambitions        float64 `json:"ambitions"`
	Dedication       float64 `json:"dedication"`
}

// Band is the readiness classification derived from the overall score.
type Band string

const (
	BandReady            Band = "READY"
	BandReadyWithSupport Band = "READY_WITH_SUPPORT"
	BandNear             Band = "NEAR"
	BandFar              Band = "FAR"
	BandNotViable        Band = "NOT_VIABLE"
)

// GapResult is the outcome of scoring one employee against one role.
type GapResult struct {
	EmployeeID      string          `json:"employee_id"`
	RoleID          string          `json:"role_id"`
	Scores          ComponentScores `json:"component_scores"`
	OverallScore    float64         `json:"overall_score"`
	Band            Band            `json:"band"`
	DetailedGaps    []string        `json:"detailed_gaps"`
	Recommendations []string        `json:"recommendations"`
}

var dedicationRangeRe = regexp.MustCompile(`(\d+)(?:\s*-\s*(\d+))?\s*h`)

// ParseDedicationRange extracts an hour range from strings like
// "30-40h/semana" or "40h/semana". Unparseable input yields an error so
// loaders fail loudly instead of guessing.
func ParseDedicationRange(raw string) (DedicationRange, error) {
	m := dedicationRangeRe.FindStringSubmatch(raw)
	if m == nil {
		return DedicationRange{}, &ValidationError{Field: "dedication", Reason: fmt.Sprintf("unparseable hour range %q", raw)}
	}
	min, _ := strconv.Atoi(m[1])
	max := min
	if m[2] != "" {
		max, _ = strconv.Atoi(m[2])
	}
	if max < min {
		min, max = max, min
	}
	return DedicationRange{MinHours: min, MaxHours: max}, nil
}

// ValidateEmployee checks the shape required before scoring.
func ValidateEmployee(e Employee) error {
	if strings.TrimSpace(e.ID) == "" {
		return &ValidationError{Field: "id", Reason: "employee id is required"}
	}
	if strings.TrimSpace(e.Name) == "" {
		return &ValidationError{Field: "name", Reason: "employee name is required"}
	}
	for project, pct := range e.Dedication {
		if pct < 0 || pct > 100 {
			return &ValidationError{Field: "dedication", Reason: fmt.Sprintf("percentage for %q must be in [0,100], got %d", project, pct)}
		}
	}
	return nil
}

// ValidateRole checks the shape required before scoring.
func ValidateRole(r Role) error {
	if strings.TrimSpace(r.ID) == "" {
		return &ValidationError{Field: "id", Reason: "role id is required"}
	}
	if strings.TrimSpace(r.Title) == "" {
		return &ValidationError{Field: "title", Reason: "role title is required"}
	}
	if r.Dedication.MinHours < 0 || r.Dedication.MaxHours < r.Dedication.MinHours {
		return &ValidationError{Field: "dedication", Reason: "invalid hour range"}
	}
	return nil
}
