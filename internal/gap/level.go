package gap

import "strings"

// Categorical scale midpoints. Labels are matched case-insensitively;
// anything outside this table is rejected, never silently defaulted.
var labelValues = map[string]float64{
	"novato":     0.2,
	"intermedio": 0.5,
	"avanzado":   0.8,
	"experto":    1.0,
}

// defaultRequiredLevel applies when a role lists a skill without an
// explicit required level (avanzado).
const defaultRequiredLevel = 0.8

// Clamp01 pins a value to [0,1]. Idempotent: clamping an already
// normalized value is a no-op.
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// NormalizeNumericLevel maps a 0-10 numeric level onto [0,1]. Out-of-range
// values are clamped, not rejected: upstream data entry occasionally
// produces slightly out-of-range numbers, and the documented policy is to
// tolerate them on the numeric path only.
func NormalizeNumericLevel(raw float64) float64 {
	return Clamp01(raw / 10)
}

// NormalizeLabel maps a categorical label onto [0,1]. Unknown labels fail
// with UnknownSkillLevelError.
func NormalizeLabel(label string) (float64, error) {
	v, ok := labelValues[strings.ToLower(strings.TrimSpace(label))]
	if !ok {
		return 0, &UnknownSkillLevelError{Label: label}
	}
	return v, nil
}

// Normalize resolves a raw Level to [0,1]. A label takes precedence over
// the numeric value.
func (l Level) Normalize() (float64, error) {
	if strings.TrimSpace(l.Label) != "" {
		return NormalizeLabel(l.Label)
	}
	return NormalizeNumericLevel(l.Value), nil
}

// normalizeRequired resolves a role requirement, applying the default
// level for zero-value entries (skill listed with no explicit level).
func normalizeRequired(l Level) (float64, error) {
	if strings.TrimSpace(l.Label) == "" && l.Value == 0 {
		return defaultRequiredLevel, nil
	}
	return l.Normalize()
}
