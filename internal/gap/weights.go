package gap

import (
	"fmt"
	"math"
)

const weightSumTolerance = 1e-6

// WeightConfig defines the relative importance of each component score.
// Weights must be non-negative and sum to 1.0 within 1e-6.
type WeightConfig struct {
	Skills           float64 `json:"skills"`
	Responsibilities float64 `json:"responsibilities"`
	Ambitions        float64 `json:"ambitions"`
	Dedication       float64 `json:"dedication"`
}

// DefaultWeights returns the standard component weighting.
func DefaultWeights() WeightConfig {
	return WeightConfig{
		Skills:           0.50,
		Responsibilities: 0.25,
		Ambitions:        0.15,
		Dedication:       0.10,
	}
}

// Sum returns the total of all weights.
func (w WeightConfig) Sum() float64 {
	return w.Skills + w.Responsibilities + w.Ambitions + w.Dedication
}

// Validate rejects configurations that do not sum to 1.0; they are never
// silently renormalized.
func (w WeightConfig) Validate() error {
	for name, v := range map[string]float64{
		"skills":           w.Skills,
		"responsibilities": w.Responsibilities,
		"ambitions":        w.Ambitions,
		"dedication":       w.Dedication,
	} {
		if v < 0 {
			return &ConfigurationError{Reason: fmt.Sprintf("weight %s must not be negative, got %v", name, v)}
		}
	}
	if math.Abs(w.Sum()-1.0) > weightSumTolerance {
		return &ConfigurationError{Reason: fmt.Sprintf("weights must sum to 1.0, got %.6f", w.Sum())}
	}
	return nil
}

// BandThresholds are the inclusive lower bounds for each readiness band.
// Scores below Far classify as NOT_VIABLE.
type BandThresholds struct {
	Ready            float64 `json:"ready"`
	ReadyWithSupport float64 `json:"ready_with_support"`
	Near             float64 `json:"near"`
	Far              float64 `json:"far"`
}

// DefaultThresholds returns the standard band cutoffs.
func DefaultThresholds() BandThresholds {
	return BandThresholds{
		Ready:            0.85,
		ReadyWithSupport: 0.70,
		Near:             0.50,
		Far:              0.25,
	}
}

// Validate rejects thresholds that are out of range or not strictly
// descending.
func (t BandThresholds) Validate() error {
	values := []float64{t.Ready, t.ReadyWithSupport, t.Near, t.Far}
	for _, v := range values {
		if v < 0 || v > 1 {
			return &ConfigurationError{Reason: fmt.Sprintf("band threshold %v outside [0,1]", v)}
		}
	}
	for i := 1; i < len(values); i++ {
		if values[i] >= values[i-1] {
			return &ConfigurationError{Reason: "band thresholds must be strictly descending"}
		}
	}
	return nil
}

// Classify assigns the first band whose threshold the score meets or
// exceeds; the lower bound of each band is inclusive.
func (t BandThresholds) Classify(score float64) Band {
	switch {
	case score >= t.Ready:
		return BandReady
	case score >= t.ReadyWithSupport:
		return BandReadyWithSupport
	case score >= t.Near:
		return BandNear
	case score >= t.Far:
		return BandFar
	default:
		return BandNotViable
	}
}
