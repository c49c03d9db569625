package recommendations

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
)

const maxRecommendations = 7

// Generate builds deterministic, rule-based recommendations from one gap
// analysis. Same input, same output: no randomness, no external calls.
func Generate(input Input) []Recommendation {
	candidates := make([]Recommendation, 0, 12)
	mappers := []func(Input) []Recommendation{
		fromBand,
		fromMissingSkills,
		fromLowComponents,
		fromChapterTransition,
	}
	for _, mapper := range mappers {
		candidates = append(candidates, mapper(input)...)
	}

	deduped := dedupe(candidates)
	sortRecommendations(deduped)
	if len(deduped) > maxRecommendations {
		deduped = deduped[:maxRecommendations]
	}
	for i := range deduped {
		deduped[i].Order = i + 1
	}
	return deduped
}

func fromBand(in Input) []Recommendation {
	role := in.RoleTitle
	if strings.TrimSpace(role) == "" {
		role = in.RoleID
	}
	switch strings.ToUpper(strings.TrimSpace(in.Band)) {
	case "READY":
		return []Recommendation{{
			ID:       "career-" + slugify(in.RoleID),
			Title:    fmt.Sprintf("Immediate opportunity: %s", role),
			Action:   "Raise the transition with your manager; the required competencies are already in place.",
			Category: "CAREER",
			Priority: "high",
		}}
	case "READY_WITH_SUPPORT":
		return []Recommendation{{
			ID:       "career-" + slugify(in.RoleID),
			Title:    fmt.Sprintf("Supported transition to %s", role),
			Action:   "Arrange an internal mentor in the target role and a 2-4 week shadowing period.",
			Category: "CAREER",
			Priority: "high",
		}}
	case "NEAR":
		return []Recommendation{{
			ID:       "career-" + slugify(in.RoleID),
			Title:    fmt.Sprintf("Development plan towards %s", role),
			Action:   "Build a structured 3-6 month plan closing the gaps listed for this role.",
			Category: "CAREER",
			Priority: "medium",
		}}
	case "FAR":
		return []Recommendation{{
			ID:       "career-" + slugify(in.RoleID),
			Title:    fmt.Sprintf("Long-term target: %s", role),
			Action:   "Treat this role as a 12+ month goal and prioritise the largest skill gaps first.",
			Category: "CAREER",
			Priority: "low",
		}}
	default:
		return nil
	}
}

func fromMissingSkills(in Input) []Recommendation {
	out := make([]Recommendation, 0, len(in.MissingSkills))
	for _, s := range in.MissingSkills {
		name := s.SkillName
		if strings.TrimSpace(name) == "" {
			name = s.SkillID
		}
		out = append(out, Recommendation{
			ID:       "skill-" + slugify(s.SkillID),
			Title:    fmt.Sprintf("Develop %s", name),
			Action:   fmt.Sprintf("Close the gap on %s: current level %.1f, required %.1f. Pair a course with a supervised project.", name, s.CurrentLevel, s.RequiredLevel),
			Category: "SKILLS",
			Priority: shortfallPriority(s),
		})
	}
	return out
}

func shortfallPriority(s SkillShortfall) string {
	if s.RequiredLevel <= 0 {
		return "low"
	}
	gap := (s.RequiredLevel - s.CurrentLevel) / s.RequiredLevel
	switch {
	case gap >= 0.6:
		return "high"
	case gap >= 0.3:
		return "medium"
	default:
		return "low"
	}
}

func fromLowComponents(in Input) []Recommendation {
	var out []Recommendation
	if in.ResponsibilitiesScore < 0.6 {
		out = append(out, Recommendation{
			ID:       "responsibilities-pilot",
			Title:    "Take on target-role responsibilities",
			Action:   "Request a pilot project covering the responsibilities of the target role and document the results.",
			Category: "EXPERIENCE",
			Priority: "medium",
		})
	}
	if in.AmbitionsScore < 0.5 {
		out = append(out, Recommendation{
			ID:       "ambitions-alignment",
			Title:    "Revisit career preferences",
			Action:   "This role does not align with the stated ambitions; confirm the preference list is current before committing.",
			Category: "CAREER",
			Priority: "low",
		})
	}
	if in.DedicationScore < 0.7 {
		out = append(out, Recommendation{
			ID:       "dedication-capacity",
			Title:    "Free up weekly capacity",
			Action:   "Current project load leaves too little capacity for this role's expected hours; rebalance assignments first.",
			Category: "CAPACITY",
			Priority: "medium",
		})
	}
	return out
}

func fromChapterTransition(in Input) []Recommendation {
	emp := strings.TrimSpace(in.EmployeeChapter)
	role := strings.TrimSpace(in.RoleChapter)
	if emp == "" || role == "" || strings.EqualFold(emp, role) {
		return nil
	}
	return []Recommendation{{
		ID:       "chapter-" + slugify(role),
		Title:    fmt.Sprintf("Cross-train in %s", role),
		Action:   fmt.Sprintf("The target role sits in %s; plan cross-chapter exposure before the transition.", role),
		Category: "EXPERIENCE",
		Priority: "low",
	}}
}

func priorityRank(value string) int {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "high":
		return 3
	case "medium":
		return 2
	default:
		return 1
	}
}

func categoryRank(value string) int {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "SKILLS":
		return 4
	case "CAREER":
		return 3
	case "EXPERIENCE":
		return 2
	case "CAPACITY":
		return 1
	default:
		return 0
	}
}

func slugify(input string) string {
	var b strings.Builder
	lastDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(input)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastDash = false
			continue
		}
		if !lastDash {
			b.WriteByte('-')
			lastDash = true
		}
	}
	out := strings.Trim(b.String(), "-")
	if out == "" {
		return "item"
	}
	return out
}

func dedupe(items []Recommendation) []Recommendation {
	seen := make(map[string]bool, len(items))
	out := make([]Recommendation, 0, len(items))
	for _, item := range items {
		id := strings.TrimSpace(item.ID)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, item)
	}
	return out
}

func sortRecommendations(items []Recommendation) {
	sort.Slice(items, func(i, j int) bool {
		a := items[i]
		b := items[j]
		if priorityRank(a.Priority) != priorityRank(b.Priority) {
			return priorityRank(a.Priority) > priorityRank(b.Priority)
		}
		if categoryRank(a.Category) != categoryRank(b.Category) {
			return categoryRank(a.Category) > categoryRank(b.Category)
		}
		return strings.ToLower(a.Title) < strings.ToLower(b.Title)
	})
}
