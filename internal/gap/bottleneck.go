package gap

import "sort"

// Priority labels a bottleneck's severity. These answer "how badly do
// viable candidates miss this skill" and are independent from readiness
// bands.
type Priority string

const (
	PriorityCritical Priority = "CRÍTICA"
	PriorityHigh     Priority = "ALTA"
	PriorityMedium   Priority = "MEDIA"
	PriorityLow      Priority = "BAJA"
)

// PriorityThresholds are the inclusive lower bounds (in average gap
// percent) for each severity label, configurable separately from band
// thresholds.
type PriorityThresholds struct {
	Critical float64 `json:"critical"`
	High     float64 `json:"high"`
	Medium   float64 `json:"medium"`
}

// DefaultPriorityThresholds returns the standard severity cutoffs.
func DefaultPriorityThresholds() PriorityThresholds {
	return PriorityThresholds{Critical: 60, High: 40, Medium: 20}
}

// Validate rejects cutoffs that are out of range or not strictly
// descending.
func (t PriorityThresholds) Validate() error {
	values := []float64{t.Critical, t.High, t.Medium}
	for _, v := range values {
		if v < 0 || v > 100 {
			return &ConfigurationError{Reason: "priority thresholds must be percentages in [0,100]"}
		}
	}
	for i := 1; i < len(values); i++ {
		if values[i] >= values[i-1] {
			return &ConfigurationError{Reason: "priority thresholds must be strictly descending"}
		}
	}
	return nil
}

// Label classifies an average gap percentage.
func (t PriorityThresholds) Label(avgGapPct float64) Priority {
	switch {
	case avgGapPct >= t.Critical:
		return PriorityCritical
	case avgGapPct >= t.High:
		return PriorityHigh
	case avgGapPct >= t.Medium:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// BottleneckStat describes one required skill's shortage across a role's
// viable candidates.
type BottleneckStat struct {
	RoleID                string   `json:"role_id"`
	SkillID               string   `json:"skill_id"`
	SkillName             string   `json:"skill_name"`
	AvgGapPercentage      float64  `json:"avg_gap_percentage"`
	CandidatesAffected    int      `json:"candidates_affected"`
	TotalViableCandidates int      `json:"total_viable_candidates"`
	Priority              Priority `json:"priority"`
	NoViableCandidates    bool     `json:"no_viable_candidates"`
}

// BottleneckOptions configures the analyzer. Zero values take defaults.
type BottleneckOptions struct {
	ViabilityThreshold float64
	Priorities         PriorityThresholds
}

// DefaultViabilityThreshold is the minimum overall score for a candidate
// to count as viable.
const DefaultViabilityThreshold = 0.5

// AnalyzeRoleBottlenecks computes per-skill shortage statistics over the
// candidates that reach the viability threshold. A role with no viable
// candidate at all reports every required skill at 100% gap with the
// highest severity: that outcome means external hiring, which is distinct
// from "viable candidates exist but miss specific skills".
func AnalyzeRoleBottlenecks(catalog Catalog, r Role, employees []Employee, results []GapResult, opts BottleneckOptions) ([]BottleneckStat, error) {
	if opts.ViabilityThreshold == 0 {
		opts.ViabilityThreshold = DefaultViabilityThreshold
	}
	if opts.Priorities == (PriorityThresholds{}) {
		opts.Priorities = DefaultPriorityThresholds()
	}
	if err := opts.Priorities.Validate(); err != nil {
		return nil, err
	}

	byID := make(map[string]Employee, len(employees))
	for _, e := range employees {
		byID[e.ID] = e
	}

	viable := make([]Employee, 0, len(results))
	for _, res := range results {
		if res.RoleID != r.ID || res.OverallScore < opts.ViabilityThreshold {
			continue
		}
		if e, ok := byID[res.EmployeeID]; ok {
			viable = append(viable, e)
		}
	}

	skillIDs := make([]string, 0, len(r.RequiredSkills))
	for id := range r.RequiredSkills {
		skillIDs = append(skillIDs, id)
	}
	sort.Strings(skillIDs)

	if len(viable) == 0 {
		stats := make([]BottleneckStat, 0, len(skillIDs))
		for _, id := range skillIDs {
			stats = append(stats, BottleneckStat{
				RoleID:             r.ID,
				SkillID:            id,
				SkillName:          catalog.NameOf(id),
				AvgGapPercentage:   100.0,
				Priority:           PriorityCritical,
				NoViableCandidates: true,
			})
		}
		return stats, nil
	}

	stats := make([]BottleneckStat, 0, len(skillIDs))
	for _, id := range skillIDs {
		required, err := normalizeRequired(r.RequiredSkills[id])
		if err != nil {
			return nil, err
		}

		var gapSum float64
		affected := 0
		for _, e := range viable {
			level := 0.0
			if raw, ok := e.Skills[id]; ok {
				level, err = raw.Normalize()
				if err != nil {
					return nil, err
				}
			}
			gap := required - level
			if gap < 0 {
				gap = 0
			}
			if gap > 0 {
				affected++
			}
			// A zero required level is vacuously satisfied, same as in
			// the skills scorer.
			if required > 0 {
				gapSum += gap / required * 100
			}
		}

		avgGap := gapSum / float64(len(viable))
		stats = append(stats, BottleneckStat{
			RoleID:                r.ID,
			SkillID:               id,
			SkillName:             catalog.NameOf(id),
			AvgGapPercentage:      avgGap,
			CandidatesAffected:    affected,
			TotalViableCandidates: len(viable),
			Priority:              opts.Priorities.Label(avgGap),
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].AvgGapPercentage != stats[j].AvgGapPercentage {
			return stats[i].AvgGapPercentage > stats[j].AvgGapPercentage
		}
		return stats[i].SkillID < stats[j].SkillID
	})
	return stats, nil
}
