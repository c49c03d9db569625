package recommendations

// Input carries everything the engine needs from one gap analysis. It is
// deliberately decoupled from the scoring package so the engine stays a
// leaf dependency.
type Input struct {
	Band                  string
	RoleID                string
	RoleTitle             string
	RoleChapter           string
	EmployeeChapter       string
	SkillsScore           float64
	ResponsibilitiesScore float64
	AmbitionsScore        float64
	DedicationScore       float64
	MissingSkills         []SkillShortfall
}

// SkillShortfall names one skill the employee is below requirement on.
type SkillShortfall struct {
	SkillID       string
	SkillName     string
	CurrentLevel  float64
	RequiredLevel float64
}

// Recommendation is one deterministic, templated suggestion.
type Recommendation struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Action   string `json:"action"`
	Category string `json:"category"`
	Priority string `json:"priority"`
	Order    int    `json:"order"`
}
