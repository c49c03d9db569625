package gap

import (
	"errors"
	"math"
	"testing"
)

func TestAnalyzeRoleBottlenecksAverageGap(t *testing.T) {
	// Three viable candidates at 0.2, 0.4, 0.6 against avanzado (0.8):
	// gaps 75%, 50%, 25%, average 50% -> ALTA.
	r := Role{ID: "R-1", Title: "Analyst", RequiredSkills: map[string]Level{"S-DATA": LabelLevel("avanzado")}}
	employees := []Employee{
		{ID: "E-1", Skills: map[string]Level{"S-DATA": NumericLevel(2)}},
		{ID: "E-2", Skills: map[string]Level{"S-DATA": NumericLevel(4)}},
		{ID: "E-3", Skills: map[string]Level{"S-DATA": NumericLevel(6)}},
	}
	results := []GapResult{
		{EmployeeID: "E-1", RoleID: "R-1", OverallScore: 0.55},
		{EmployeeID: "E-2", RoleID: "R-1", OverallScore: 0.6},
		{EmployeeID: "E-3", RoleID: "R-1", OverallScore: 0.7},
	}

	stats, err := AnalyzeRoleBottlenecks(Catalog{}, r, employees, results, BottleneckOptions{})
	if err != nil {
		t.Fatalf("AnalyzeRoleBottlenecks: %v", err)
	}
	if len(stats) != 1 {
		t.Fatalf("expected 1 stat, got %d", len(stats))
	}
	s := stats[0]
	if math.Abs(s.AvgGapPercentage-50.0) > 1e-9 {
		t.Fatalf("avg gap = %v, want 50.0", s.AvgGapPercentage)
	}
	if s.Priority != PriorityHigh {
		t.Fatalf("priority = %s, want ALTA", s.Priority)
	}
	if s.CandidatesAffected != 3 || s.TotalViableCandidates != 3 {
		t.Fatalf("candidate counts wrong: %+v", s)
	}
	if s.NoViableCandidates {
		t.Fatalf("viable candidates exist, flag must be false")
	}
}

func TestAnalyzeRoleBottlenecksExcludesNonViable(t *testing.T) {
	r := Role{ID: "R-1", Title: "Analyst", RequiredSkills: map[string]Level{"S-DATA": LabelLevel("avanzado")}}
	employees := []Employee{
		{ID: "E-VIABLE", Skills: map[string]Level{"S-DATA": LabelLevel("experto")}},
		{ID: "E-WEAK", Skills: map[string]Level{}},
	}
	results := []GapResult{
		{EmployeeID: "E-VIABLE", RoleID: "R-1", OverallScore: 0.9},
		{EmployeeID: "E-WEAK", RoleID: "R-1", OverallScore: 0.2},
		{EmployeeID: "E-VIABLE", RoleID: "R-OTHER", OverallScore: 0.9},
	}

	stats, err := AnalyzeRoleBottlenecks(Catalog{}, r, employees, results, BottleneckOptions{})
	if err != nil {
		t.Fatalf("AnalyzeRoleBottlenecks: %v", err)
	}
	s := stats[0]
	if s.TotalViableCandidates != 1 {
		t.Fatalf("viable count = %d, want 1", s.TotalViableCandidates)
	}
	// The single viable candidate exceeds the requirement: zero gap, BAJA.
	if s.AvgGapPercentage != 0 || s.CandidatesAffected != 0 || s.Priority != PriorityLow {
		t.Fatalf("expected a zero-gap stat, got %+v", s)
	}
}

func TestAnalyzeRoleBottlenecksZeroRequiredLevel(t *testing.T) {
	// A negative raw level clamps to a required level of 0, which is
	// vacuously satisfied. The gap must stay a finite 0%, never NaN.
	r := Role{ID: "R-1", Title: "Analyst", RequiredSkills: map[string]Level{
		"S-X": NumericLevel(-1),
		"S-Y": LabelLevel("avanzado"),
	}}
	employees := []Employee{
		{ID: "E-1", Skills: map[string]Level{"S-Y": NumericLevel(4)}},
	}
	results := []GapResult{{EmployeeID: "E-1", RoleID: "R-1", OverallScore: 0.6}}

	stats, err := AnalyzeRoleBottlenecks(Catalog{}, r, employees, results, BottleneckOptions{})
	if err != nil {
		t.Fatalf("AnalyzeRoleBottlenecks: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("expected 2 stats, got %d", len(stats))
	}
	for _, s := range stats {
		if math.IsNaN(s.AvgGapPercentage) || s.AvgGapPercentage < 0 || s.AvgGapPercentage > 100 {
			t.Fatalf("avg gap for %s must be a percentage, got %v", s.SkillID, s.AvgGapPercentage)
		}
	}
	if stats[0].SkillID != "S-Y" {
		t.Fatalf("real gap must sort first, got %s", stats[0].SkillID)
	}
	zero := stats[1]
	if zero.SkillID != "S-X" || zero.AvgGapPercentage != 0 || zero.CandidatesAffected != 0 || zero.Priority != PriorityLow {
		t.Fatalf("zero-required skill must report a zero gap, got %+v", zero)
	}
}

func TestAnalyzeRoleBottlenecksNoViableCandidates(t *testing.T) {
	r := Role{ID: "R-HARD", Title: "Specialist", RequiredSkills: map[string]Level{
		"S-B": LabelLevel("experto"),
		"S-A": LabelLevel("avanzado"),
	}}
	results := []GapResult{
		{EmployeeID: "E-1", RoleID: "R-HARD", OverallScore: 0.3},
		{EmployeeID: "E-2", RoleID: "R-HARD", OverallScore: 0.1},
	}

	stats, err := AnalyzeRoleBottlenecks(Catalog{}, r, []Employee{{ID: "E-1"}, {ID: "E-2"}}, results, BottleneckOptions{})
	if err != nil {
		t.Fatalf("AnalyzeRoleBottlenecks: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("expected a stat per required skill, got %d", len(stats))
	}
	if stats[0].SkillID != "S-A" || stats[1].SkillID != "S-B" {
		t.Fatalf("expected skill-id order for equal gaps, got %s then %s", stats[0].SkillID, stats[1].SkillID)
	}
	for _, s := range stats {
		if !s.NoViableCandidates {
			t.Fatalf("flag must be set when nobody is viable: %+v", s)
		}
		if s.AvgGapPercentage != 100.0 || s.Priority != PriorityCritical {
			t.Fatalf("expected 100%% CRÍTICA, got %+v", s)
		}
	}
}

func TestAnalyzeRoleBottlenecksOrdering(t *testing.T) {
	r := Role{ID: "R-1", Title: "Mixed", RequiredSkills: map[string]Level{
		"S-EASY": LabelLevel("avanzado"),
		"S-HARD": LabelLevel("experto"),
	}}
	employees := []Employee{
		{ID: "E-1", Skills: map[string]Level{"S-EASY": LabelLevel("avanzado"), "S-HARD": NumericLevel(2)}},
	}
	results := []GapResult{{EmployeeID: "E-1", RoleID: "R-1", OverallScore: 0.6}}

	stats, err := AnalyzeRoleBottlenecks(Catalog{}, r, employees, results, BottleneckOptions{})
	if err != nil {
		t.Fatalf("AnalyzeRoleBottlenecks: %v", err)
	}
	if stats[0].SkillID != "S-HARD" {
		t.Fatalf("largest gap must come first, got %s", stats[0].SkillID)
	}
	if stats[0].AvgGapPercentage <= stats[1].AvgGapPercentage {
		t.Fatalf("stats not sorted by gap descending: %+v", stats)
	}
}

func TestAnalyzeRoleBottlenecksCustomThresholds(t *testing.T) {
	r := Role{ID: "R-1", Title: "T", RequiredSkills: map[string]Level{"S-X": LabelLevel("avanzado")}}
	employees := []Employee{{ID: "E-1", Skills: map[string]Level{"S-X": NumericLevel(4)}}}
	results := []GapResult{{EmployeeID: "E-1", RoleID: "R-1", OverallScore: 0.6}}

	// Gap is 50%. With Critical lowered to 45 it classifies CRÍTICA.
	opts := BottleneckOptions{Priorities: PriorityThresholds{Critical: 45, High: 30, Medium: 15}}
	stats, err := AnalyzeRoleBottlenecks(Catalog{}, r, employees, results, opts)
	if err != nil {
		t.Fatalf("AnalyzeRoleBottlenecks: %v", err)
	}
	if stats[0].Priority != PriorityCritical {
		t.Fatalf("priority = %s, want CRÍTICA under custom cutoffs", stats[0].Priority)
	}
}

func TestPriorityThresholdsValidate(t *testing.T) {
	bad := []PriorityThresholds{
		{Critical: 40, High: 40, Medium: 20},
		{Critical: 20, High: 40, Medium: 60},
		{Critical: 120, High: 40, Medium: 20},
	}
	for _, th := range bad {
		err := th.Validate()
		var cfgErr *ConfigurationError
		if !errors.As(err, &cfgErr) {
			t.Fatalf("expected ConfigurationError for %+v, got %v", th, err)
		}
	}
	if err := DefaultPriorityThresholds().Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}
