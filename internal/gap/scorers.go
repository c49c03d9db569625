package gap

import "strings"

// The four component scorers. Each is a pure function of its inputs and
// returns a score in [0,1].

// SkillsMatch compares the employee's level against each required skill.
// Exceeding a requirement never grants more than full credit; a skill the
// employee lacks entirely counts as level 0. A role with no required
// skills is vacuously satisfied.
func SkillsMatch(catalog Catalog, e Employee, r Role) (float64, error) {
	if len(r.RequiredSkills) == 0 {
		return 1.0, nil
	}

	var weightedSum, totalWeight float64
	for skillID, requiredLevel := range r.RequiredSkills {
		required, err := normalizeRequired(requiredLevel)
		if err != nil {
			return 0, err
		}

		level := 0.0
		if raw, ok := e.Skills[skillID]; ok {
			level, err = raw.Normalize()
			if err != nil {
				return 0, err
			}
		}

		contribution := 1.0
		if required > 0 {
			contribution = level / required
			if contribution > 1 {
				contribution = 1
			}
		}

		weight := catalog.WeightOf(skillID)
		weightedSum += contribution * weight
		totalWeight += weight
	}

	return weightedSum / totalWeight, nil
}

// ResponsibilitiesAlignment measures how many of the role's required
// responsibilities have at least one overlapping current responsibility.
// Matching is deterministic: case-insensitive, accent-folded substring or
// shared-token overlap.
func ResponsibilitiesAlignment(e Employee, r Role) float64 {
	if len(r.Responsibilities) == 0 {
		return 1.0
	}
	if len(e.Responsibilities) == 0 {
		return 0.0
	}

	matched := 0
	for _, target := range r.Responsibilities {
		for _, current := range e.Responsibilities {
			if textOverlaps(current, target) {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(len(r.Responsibilities))
}

// seniorityRanks orders aspiration/seniority labels. Unknown labels fall
// outside the scale and score the neutral 0.5 on the aspiration term.
var seniorityRanks = map[string]int{
	"junior":    0,
	"mid":       1,
	"senior":    2,
	"lead":      3,
	"director":  4,
	"executive": 5,
}

const aspirationFloor = 0.1

// AmbitionsMatch is the mean of a specialty-overlap term and an
// aspiration-vs-seniority term. Aspiring at or above the role's level is
// full credit; below, credit decreases with ordinal distance but never
// drops past the floor, so a two-step gap is not a cliff edge.
func AmbitionsMatch(e Employee, r Role) float64 {
	specialty := 0.5 // neutral when the employee states no preference
	if len(e.Ambitions.Specialties) > 0 {
		signal := strings.Join(append([]string{r.Title, r.Chapter}, r.Objectives...), " ")
		matched := 0
		for _, pref := range e.Ambitions.Specialties {
			if textOverlaps(pref, signal) {
				matched++
			}
		}
		specialty = float64(matched) / float64(len(e.Ambitions.Specialties))
	}

	aspiration := 0.5
	empRank, empOK := seniorityRanks[strings.ToLower(strings.TrimSpace(e.Ambitions.Aspiration))]
	roleRank, roleOK := seniorityRanks[strings.ToLower(strings.TrimSpace(r.Seniority))]
	if empOK && roleOK {
		if empRank >= roleRank {
			aspiration = 1.0
		} else {
			aspiration = 1.0 - 0.45*float64(roleRank-empRank)
			if aspiration < aspirationFloor {
				aspiration = aspirationFloor
			}
		}
	}

	return (specialty + aspiration) / 2
}

// DedicationCompatibility scores the employee's free weekly capacity
// against the role's expected hour range. Percentages that do not sum to
// 100 leave the remainder as free time rather than failing: incomplete
// dedication records degrade the score, they never crash a computation.
func DedicationCompatibility(e Employee, r Role) float64 {
	committedPct := 0
	for _, pct := range e.Dedication {
		committedPct += pct
	}
	if committedPct > 100 {
		committedPct = 100
	}

	free := AssumedFullTimeHours - float64(committedPct)/100*AssumedFullTimeHours
	min := float64(r.Dedication.MinHours)
	if min <= 0 || free >= min {
		return 1.0
	}
	score := free / min
	if score < 0 {
		return 0
	}
	return score
}

// accentFolder strips the accented characters common in the source data
// so "análisis" and "analisis" compare equal.
var accentFolder = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ü", "u", "ñ", "n",
)

func foldText(s string) string {
	return accentFolder.Replace(strings.ToLower(strings.TrimSpace(s)))
}

// textOverlaps reports whether two free-text fragments overlap: one
// contains the other, or they share a token of four or more characters.
func textOverlaps(a, b string) bool {
	fa, fb := foldText(a), foldText(b)
	if fa == "" || fb == "" {
		return false
	}
	if strings.Contains(fa, fb) || strings.Contains(fb, fa) {
		return true
	}
	tokens := tokenSet(fa)
	for token := range tokenSet(fb) {
		if tokens[token] {
			return true
		}
	}
	return false
}

func tokenSet(folded string) map[string]bool {
	fields := strings.FieldsFunc(folded, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
	set := make(map[string]bool, len(fields))
	for _, f := range fields {
		if len(f) >= 4 {
			set[f] = true
		}
	}
	return set
}
