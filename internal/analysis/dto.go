package analysis

import "talentgap-backend/internal/gap"

type gapRequest struct {
	EmployeeID string              `json:"employee_id"`
	RoleID     string              `json:"role_id"`
	Weights    *gap.WeightConfig   `json:"weights,omitempty"`
	Thresholds *gap.BandThresholds `json:"thresholds,omitempty"`
}

type gapResponse struct {
	gap.GapResult
	ReadinessEstimate string `json:"readiness_estimate"`
}

func toGapResponse(r gap.GapResult) gapResponse {
	return gapResponse{
		GapResult:         r,
		ReadinessEstimate: gap.ReadinessEstimate(r.Band),
	}
}

func toGapResponses(results []gap.GapResult) []gapResponse {
	out := make([]gapResponse, 0, len(results))
	for _, r := range results {
		out = append(out, toGapResponse(r))
	}
	return out
}

type candidatesResponse struct {
	RoleID     string          `json:"role_id"`
	Candidates []gapResponse   `json:"candidates"`
	Errors     []gap.PairError `json:"errors,omitempty"`
}

type pathsResponse struct {
	EmployeeID string          `json:"employee_id"`
	Paths      []gapResponse   `json:"paths"`
	Errors     []gap.PairError `json:"errors,omitempty"`
}

type bottlenecksResponse struct {
	RoleID      string               `json:"role_id"`
	Bottlenecks []gap.BottleneckStat `json:"bottlenecks"`
}
