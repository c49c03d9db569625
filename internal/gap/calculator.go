package gap

import (
	"fmt"
	"sort"

	"talentgap-backend/internal/gap/recommendations"
)

// componentGapThreshold is the score under which a component earns a
// detailed gap description.
const componentGapThreshold = 0.7

// Calculator scores employees against roles under one weight and
// threshold configuration. It holds no mutable state and is safe for
// concurrent use.
type Calculator struct {
	catalog    Catalog
	weights    WeightConfig
	thresholds BandThresholds
}

// NewCalculator validates the configuration eagerly; an invalid weight or
// threshold set fails here, never mid-computation.
func NewCalculator(catalog Catalog, weights WeightConfig, thresholds BandThresholds) (*Calculator, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	if err := thresholds.Validate(); err != nil {
		return nil, err
	}
	if catalog == nil {
		catalog = Catalog{}
	}
	return &Calculator{catalog: catalog, weights: weights, thresholds: thresholds}, nil
}

// Weights returns the active weight configuration.
func (c *Calculator) Weights() WeightConfig { return c.weights }

// Thresholds returns the active band thresholds.
func (c *Calculator) Thresholds() BandThresholds { return c.thresholds }

// CalculateGap scores one employee against one role. The overall score is
// the exact weighted sum of the four component scores.
func (c *Calculator) CalculateGap(e Employee, r Role) (GapResult, error) {
	if err := ValidateEmployee(e); err != nil {
		return GapResult{}, err
	}
	if err := ValidateRole(r); err != nil {
		return GapResult{}, err
	}

	skills, err := SkillsMatch(c.catalog, e, r)
	if err != nil {
		return GapResult{}, err
	}
	scores := ComponentScores{
		Skills:           skills,
		Responsibilities: ResponsibilitiesAlignment(e, r),
		Ambitions:        AmbitionsMatch(e, r),
		Dedication:       DedicationCompatibility(e, r),
	}

	overall := scores.Skills*c.weights.Skills +
		scores.Responsibilities*c.weights.Responsibilities +
		scores.Ambitions*c.weights.Ambitions +
		scores.Dedication*c.weights.Dedication

	shortfalls, err := c.skillShortfalls(e, r)
	if err != nil {
		return GapResult{}, err
	}

	band := c.thresholds.Classify(overall)
	result := GapResult{
		EmployeeID:   e.ID,
		RoleID:       r.ID,
		Scores:       scores,
		OverallScore: overall,
		Band:         band,
		DetailedGaps: c.describeGaps(scores, shortfalls),
	}
	result.Recommendations = flattenRecommendations(recommendations.Generate(recommendations.Input{
		Band:                  string(band),
		RoleID:                r.ID,
		RoleTitle:             r.Title,
		RoleChapter:           r.Chapter,
		EmployeeChapter:       e.Chapter,
		SkillsScore:           scores.Skills,
		ResponsibilitiesScore: scores.Responsibilities,
		AmbitionsScore:        scores.Ambitions,
		DedicationScore:       scores.Dedication,
		MissingSkills:         shortfalls,
	}))
	return result, nil
}

// skillShortfalls lists required skills the employee is below level on,
// ordered by skill id for determinism.
func (c *Calculator) skillShortfalls(e Employee, r Role) ([]recommendations.SkillShortfall, error) {
	ids := make([]string, 0, len(r.RequiredSkills))
	for id := range r.RequiredSkills {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var out []recommendations.SkillShortfall
	for _, id := range ids {
		required, err := normalizeRequired(r.RequiredSkills[id])
		if err != nil {
			return nil, err
		}
		level := 0.0
		if raw, ok := e.Skills[id]; ok {
			level, err = raw.Normalize()
			if err != nil {
				return nil, err
			}
		}
		if level < required {
			out = append(out, recommendations.SkillShortfall{
				SkillID:       id,
				SkillName:     c.catalog.NameOf(id),
				CurrentLevel:  level,
				RequiredLevel: required,
			})
		}
	}
	return out, nil
}

func (c *Calculator) describeGaps(scores ComponentScores, shortfalls []recommendations.SkillShortfall) []string {
	gaps := []string{}
	if scores.Skills < componentGapThreshold {
		for _, s := range shortfalls {
			gaps = append(gaps, fmt.Sprintf("skill gap: %s (current %.2f, required %.2f)", s.SkillName, s.CurrentLevel, s.RequiredLevel))
		}
	}
	if scores.Responsibilities < componentGapThreshold {
		gaps = append(gaps, fmt.Sprintf("responsibilities overlap below target (%.2f)", scores.Responsibilities))
	}
	if scores.Ambitions < componentGapThreshold {
		gaps = append(gaps, fmt.Sprintf("role weakly aligned with stated ambitions (%.2f)", scores.Ambitions))
	}
	if scores.Dedication < componentGapThreshold {
		gaps = append(gaps, fmt.Sprintf("insufficient free capacity for expected dedication (%.2f)", scores.Dedication))
	}
	return gaps
}

func flattenRecommendations(recs []recommendations.Recommendation) []string {
	out := make([]string, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.Title+": "+rec.Action)
	}
	return out
}
