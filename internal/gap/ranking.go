package gap

import "sort"

// PairError records a pair whose computation failed while building a
// matrix. Failed pairs are reported, never silently dropped.
type PairError struct {
	EmployeeID string `json:"employee_id"`
	RoleID     string `json:"role_id"`
	Err        error  `json:"-"`
	Message    string `json:"error"`
}

// Matrix is the full employee x role score matrix plus any per-pair
// errors. The batch never fails as a whole: good pairs are kept, bad
// pairs are listed in Errors.
type Matrix struct {
	Results []GapResult `json:"results"`
	Errors  []PairError `json:"errors,omitempty"`
}

// BuildMatrix scores every employee against every role. Each pair is an
// independent computation with no ordering dependency.
func (c *Calculator) BuildMatrix(employees []Employee, roles []Role) Matrix {
	m := Matrix{Results: make([]GapResult, 0, len(employees)*len(roles))}
	for _, e := range employees {
		for _, r := range roles {
			result, err := c.CalculateGap(e, r)
			if err != nil {
				m.Errors = append(m.Errors, PairError{
					EmployeeID: e.ID,
					RoleID:     r.ID,
					Err:        err,
					Message:    err.Error(),
				})
				continue
			}
			m.Results = append(m.Results, result)
		}
	}
	return m
}

// RankCandidatesForRole scores all employees against one role and returns
// results sorted by overall score descending, employee id ascending on
// ties.
func (c *Calculator) RankCandidatesForRole(r Role, employees []Employee) ([]GapResult, []PairError) {
	results := make([]GapResult, 0, len(employees))
	var errs []PairError
	for _, e := range employees {
		result, err := c.CalculateGap(e, r)
		if err != nil {
			errs = append(errs, PairError{EmployeeID: e.ID, RoleID: r.ID, Err: err, Message: err.Error()})
			continue
		}
		results = append(results, result)
	}
	sortByScoreDesc(results, func(g GapResult) string { return g.EmployeeID })
	return results, errs
}

// RankRolesForEmployee scores one employee against all roles and returns
// results sorted by overall score descending, role id ascending on ties.
func (c *Calculator) RankRolesForEmployee(e Employee, roles []Role) ([]GapResult, []PairError) {
	results := make([]GapResult, 0, len(roles))
	var errs []PairError
	for _, r := range roles {
		result, err := c.CalculateGap(e, r)
		if err != nil {
			errs = append(errs, PairError{EmployeeID: e.ID, RoleID: r.ID, Err: err, Message: err.Error()})
			continue
		}
		results = append(results, result)
	}
	sortByScoreDesc(results, func(g GapResult) string { return g.RoleID })
	return results, errs
}

func sortByScoreDesc(results []GapResult, tieKey func(GapResult) string) {
	sort.Slice(results, func(i, j int) bool {
		if results[i].OverallScore != results[j].OverallScore {
			return results[i].OverallScore > results[j].OverallScore
		}
		return tieKey(results[i]) < tieKey(results[j])
	})
}

// ResultsForRole extracts and ranks one role's column of the matrix.
func (m Matrix) ResultsForRole(roleID string) []GapResult {
	out := make([]GapResult, 0)
	for _, r := range m.Results {
		if r.RoleID == roleID {
			out = append(out, r)
		}
	}
	sortByScoreDesc(out, func(g GapResult) string { return g.EmployeeID })
	return out
}

// ResultsForEmployee extracts and ranks one employee's row of the matrix.
func (m Matrix) ResultsForEmployee(employeeID string) []GapResult {
	out := make([]GapResult, 0)
	for _, r := range m.Results {
		if r.EmployeeID == employeeID {
			out = append(out, r)
		}
	}
	sortByScoreDesc(out, func(g GapResult) string { return g.RoleID })
	return out
}

// IsReady reports whether a result sits in a promotable band.
func (g GapResult) IsReady() bool {
	return g.Band == BandReady || g.Band == BandReadyWithSupport
}

// BandDistribution counts results per readiness band.
func BandDistribution(results []GapResult) map[Band]int {
	dist := make(map[Band]int, 5)
	for _, r := range results {
		dist[r.Band]++
	}
	return dist
}

// Summary is the executive view over a full matrix.
type Summary struct {
	TotalRoles             int          `json:"total_roles"`
	TotalEmployees         int          `json:"total_employees"`
	RolesWithReadyCoverage int          `json:"roles_with_ready_coverage"`
	CoveragePercentage     float64      `json:"coverage_percentage"`
	OrphanRoles            []string     `json:"orphan_roles"`
	BandDistribution       map[Band]int `json:"band_distribution"`
	FailedPairs            int          `json:"failed_pairs"`
}

// Summarize reports role coverage over a matrix: which roles have at
// least one READY or READY_WITH_SUPPORT candidate, and which are orphans.
func Summarize(m Matrix, employees []Employee, roles []Role) Summary {
	s := Summary{
		TotalRoles:       len(roles),
		TotalEmployees:   len(employees),
		OrphanRoles:      []string{},
		BandDistribution: BandDistribution(m.Results),
		FailedPairs:      len(m.Errors),
	}

	readyByRole := make(map[string]bool, len(roles))
	for _, r := range m.Results {
		if r.IsReady() {
			readyByRole[r.RoleID] = true
		}
	}
	for _, role := range roles {
		if readyByRole[role.ID] {
			s.RolesWithReadyCoverage++
		} else {
			s.OrphanRoles = append(s.OrphanRoles, role.ID)
		}
	}
	sort.Strings(s.OrphanRoles)
	if s.TotalRoles > 0 {
		s.CoveragePercentage = float64(s.RolesWithReadyCoverage) / float64(s.TotalRoles) * 100
	}
	return s
}

// DetectAssignmentConflicts finds employees appearing in the top N of
// more than one role ranking. Keys and values come back sorted so output
// is stable.
func DetectAssignmentConflicts(rankings map[string][]GapResult, topN int) map[string][]string {
	if topN <= 0 {
		topN = 3
	}
	appearances := make(map[string][]string)
	roleIDs := make([]string, 0, len(rankings))
	for roleID := range rankings {
		roleIDs = append(roleIDs, roleID)
	}
	sort.Strings(roleIDs)
	for _, roleID := range roleIDs {
		candidates := rankings[roleID]
		if len(candidates) > topN {
			candidates = candidates[:topN]
		}
		for _, c := range candidates {
			appearances[c.EmployeeID] = append(appearances[c.EmployeeID], roleID)
		}
	}

	conflicts := make(map[string][]string)
	for employeeID, roles := range appearances {
		if len(roles) > 1 {
			sort.Strings(roles)
			conflicts[employeeID] = roles
		}
	}
	return conflicts
}

// ReadinessEstimate maps a band onto a development-time horizon.
func ReadinessEstimate(b Band) string {
	switch b {
	case BandReady:
		return "0-3 months"
	case BandReadyWithSupport:
		return "3-6 months"
	case BandNear:
		return "6-12 months"
	case BandFar:
		return "12-18 months"
	default:
		return ">18 months or role change recommended"
	}
}
