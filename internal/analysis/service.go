package analysis

import (
	"context"
	"time"

	"talentgap-backend/internal/employees"
	"talentgap-backend/internal/gap"
	"talentgap-backend/internal/roles"
	"talentgap-backend/internal/shared/metrics"
	"talentgap-backend/internal/shared/telemetry"
)

// Service runs gap analyses over the stored employees, roles and skill
// catalog. The calculator is rebuilt per call so catalog edits take
// effect immediately.
type Service struct {
	Employees  employees.Repo
	Roles      *roles.Service
	Weights    gap.WeightConfig
	Thresholds gap.BandThresholds
	Bottleneck gap.BottleneckOptions
}

// NewService constructs a Service with the given scoring configuration.
func NewService(emps employees.Repo, rls *roles.Service, weights gap.WeightConfig, thresholds gap.BandThresholds) (*Service, error) {
	// Fail fast: a bad configuration must not wait for the first request.
	if _, err := gap.NewCalculator(gap.Catalog{}, weights, thresholds); err != nil {
		return nil, err
	}
	return &Service{
		Employees:  emps,
		Roles:      rls,
		Weights:    weights,
		Thresholds: thresholds,
	}, nil
}

// Overrides carries per-request scoring configuration. Nil fields keep
// the server defaults.
type Overrides struct {
	Weights    *gap.WeightConfig
	Thresholds *gap.BandThresholds
}

func (s *Service) calculator(ctx context.Context) (*gap.Calculator, error) {
	return s.calculatorWith(ctx, Overrides{})
}

func (s *Service) calculatorWith(ctx context.Context, ov Overrides) (*gap.Calculator, error) {
	weights := s.Weights
	if ov.Weights != nil {
		weights = *ov.Weights
	}
	thresholds := s.Thresholds
	if ov.Thresholds != nil {
		thresholds = *ov.Thresholds
	}
	catalog, err := s.Roles.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	return gap.NewCalculator(catalog, weights, thresholds)
}

// AnalyzeGap scores one employee against one role with the server's
// default configuration.
func (s *Service) AnalyzeGap(ctx context.Context, employeeID, roleID string) (gap.GapResult, error) {
	return s.AnalyzeGapWith(ctx, employeeID, roleID, Overrides{})
}

// AnalyzeGapWith scores one pair, optionally under caller-supplied
// weights and band thresholds.
func (s *Service) AnalyzeGapWith(ctx context.Context, employeeID, roleID string, ov Overrides) (gap.GapResult, error) {
	start := time.Now()
	metrics.IncGapAnalysisStarted()

	e, err := s.Employees.GetByID(ctx, employeeID)
	if err != nil {
		metrics.IncGapAnalysisFailed()
		return gap.GapResult{}, err
	}
	r, err := s.Roles.Get(ctx, roleID)
	if err != nil {
		metrics.IncGapAnalysisFailed()
		return gap.GapResult{}, err
	}
	calc, err := s.calculatorWith(ctx, ov)
	if err != nil {
		metrics.IncGapAnalysisFailed()
		return gap.GapResult{}, err
	}

	result, err := calc.CalculateGap(e.Scoring(), r.Scoring())
	if err != nil {
		metrics.IncGapAnalysisFailed()
		return gap.GapResult{}, err
	}

	metrics.IncGapAnalysisCompleted()
	metrics.ObserveGapAnalysisDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)
	telemetry.Info("gap.analyzed", map[string]any{
		"employee_id": employeeID,
		"role_id":     roleID,
		"score":       result.OverallScore,
		"band":        string(result.Band),
	})
	return result, nil
}

// CandidatesForRole ranks all employees against one role.
func (s *Service) CandidatesForRole(ctx context.Context, roleID string, limit int) ([]gap.GapResult, []gap.PairError, error) {
	r, err := s.Roles.Get(ctx, roleID)
	if err != nil {
		return nil, nil, err
	}
	list, err := s.Employees.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	calc, err := s.calculator(ctx)
	if err != nil {
		return nil, nil, err
	}

	ranked, pairErrs := calc.RankCandidatesForRole(r.Scoring(), scoringEmployees(list))
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, pairErrs, nil
}

// PathsForEmployee ranks all roles for one employee, a career-path view.
func (s *Service) PathsForEmployee(ctx context.Context, employeeID string, limit int) ([]gap.GapResult, []gap.PairError, error) {
	e, err := s.Employees.GetByID(ctx, employeeID)
	if err != nil {
		return nil, nil, err
	}
	roleList, err := s.Roles.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	calc, err := s.calculator(ctx)
	if err != nil {
		return nil, nil, err
	}

	ranked, pairErrs := calc.RankRolesForEmployee(e.Scoring(), scoringRoles(roleList))
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, pairErrs, nil
}

// Matrix scores every employee against every role.
func (s *Service) Matrix(ctx context.Context) (gap.Matrix, error) {
	empList, roleList, calc, err := s.load(ctx)
	if err != nil {
		return gap.Matrix{}, err
	}
	return calc.BuildMatrix(scoringEmployees(empList), scoringRoles(roleList)), nil
}

// RoleBottlenecks computes per-skill shortage statistics for one role.
func (s *Service) RoleBottlenecks(ctx context.Context, roleID string) ([]gap.BottleneckStat, error) {
	r, err := s.Roles.Get(ctx, roleID)
	if err != nil {
		return nil, err
	}
	empList, err := s.Employees.List(ctx)
	if err != nil {
		return nil, err
	}
	catalog, err := s.Roles.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	calc, err := gap.NewCalculator(catalog, s.Weights, s.Thresholds)
	if err != nil {
		return nil, err
	}

	scoring := scoringEmployees(empList)
	results, _ := calc.RankCandidatesForRole(r.Scoring(), scoring)
	return gap.AnalyzeRoleBottlenecks(catalog, r.Scoring(), scoring, results, s.Bottleneck)
}

// OrgSummary is the executive overview: coverage plus assignment conflicts.
type OrgSummary struct {
	gap.Summary
	AssignmentConflicts map[string][]string `json:"assignment_conflicts"`
}

// Summary builds the full matrix and reports coverage and conflicts.
func (s *Service) Summary(ctx context.Context) (OrgSummary, error) {
	empList, roleList, calc, err := s.load(ctx)
	if err != nil {
		return OrgSummary{}, err
	}

	scoringEmps := scoringEmployees(empList)
	m := calc.BuildMatrix(scoringEmps, scoringRoles(roleList))

	rankings := make(map[string][]gap.GapResult, len(roleList))
	for _, r := range roleList {
		rankings[r.ID] = m.ResultsForRole(r.ID)
	}

	return OrgSummary{
		Summary:             gap.Summarize(m, scoringEmps, scoringRoles(roleList)),
		AssignmentConflicts: gap.DetectAssignmentConflicts(rankings, 3),
	}, nil
}

func (s *Service) load(ctx context.Context) ([]employees.Employee, []roles.Role, *gap.Calculator, error) {
	empList, err := s.Employees.List(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	roleList, err := s.Roles.List(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	calc, err := s.calculator(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	return empList, roleList, calc, nil
}

func scoringEmployees(list []employees.Employee) []gap.Employee {
	out := make([]gap.Employee, 0, len(list))
	for _, e := range list {
		out = append(out, e.Scoring())
	}
	return out
}

func scoringRoles(list []roles.Role) []gap.Role {
	out := make([]gap.Role, 0, len(list))
	for _, r := range list {
		out = append(out, r.Scoring())
	}
	return out
}
