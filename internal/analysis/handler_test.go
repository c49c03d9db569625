package analysis_test

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"talentgap-backend/internal/bootstrap"
	"talentgap-backend/internal/shared/config"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app, err := bootstrap.Build(config.Config{
		Port:            "0",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		Env:             "dev",
	})
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	return app.Router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewBuffer(raw)
	} else {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func mustStatus(t *testing.T, resp *httptest.ResponseRecorder, want int, what string) {
	t.Helper()
	if resp.Code != want {
		t.Fatalf("%s: expected %d, got %d: %s", what, want, resp.Code, resp.Body.String())
	}
}

// seedOrg loads a small org: one lead role, one strong and one weak
// candidate for it, and a hard role nobody comes close to.
func seedOrg(t *testing.T, router *gin.Engine) {
	t.Helper()

	mustStatus(t, doJSON(t, router, http.MethodPut, "/api/v1/skills/S-OKR", map[string]any{
		"name": "OKRs", "category": "Estrategia", "weight": 1.0,
	}), http.StatusOK, "seed skill S-OKR")
	mustStatus(t, doJSON(t, router, http.MethodPut, "/api/v1/skills/S-M&A", map[string]any{
		"name": "M&A", "category": "Estrategia", "weight": 1.0,
	}), http.StatusOK, "seed skill S-M&A")

	mustStatus(t, doJSON(t, router, http.MethodPost, "/api/v1/roles", map[string]any{
		"id":        "R-LEAD",
		"title":     "Strategy Lead",
		"chapter":   "Strategy",
		"seniority": "lead",
		"required_skills": map[string]any{
			"S-OKR": map[string]any{"label": "avanzado"},
		},
		"responsibilities": []string{"Definir OKRs"},
		"dedication":       map[string]int{"min_hours": 20, "max_hours": 40},
	}), http.StatusCreated, "seed role R-LEAD")

	mustStatus(t, doJSON(t, router, http.MethodPost, "/api/v1/roles", map[string]any{
		"id":        "R-HARD",
		"title":     "Head of Corporate Development",
		"chapter":   "Finance",
		"seniority": "director",
		"required_skills": map[string]any{
			"S-M&A": map[string]any{"label": "experto"},
		},
		"responsibilities": []string{"Liderar due diligence"},
		"dedication":       map[string]int{"min_hours": 40, "max_hours": 40},
	}), http.StatusCreated, "seed role R-HARD")

	mustStatus(t, doJSON(t, router, http.MethodPost, "/api/v1/employees", map[string]any{
		"id":      "E-STRONG",
		"name":    "Marta Vidal",
		"chapter": "Strategy",
		"skills": map[string]any{
			"S-OKR": map[string]any{"value": 10},
		},
		"responsibilities": []string{"Definir OKRs"},
		"specialties":      []string{"Strategy"},
		"aspiration":       "lead",
	}), http.StatusCreated, "seed employee E-STRONG")

	mustStatus(t, doJSON(t, router, http.MethodPost, "/api/v1/employees", map[string]any{
		"id":      "E-WEAK",
		"name":    "Pau Ferrer",
		"chapter": "Design",
		"skills": map[string]any{
			"S-OKR": map[string]any{"value": 1},
		},
		"aspiration": "junior",
		"dedication": map[string]int{"Royal": 100},
	}), http.StatusCreated, "seed employee E-WEAK")
}

type gapPayload struct {
	EmployeeID string `json:"employee_id"`
	RoleID     string `json:"role_id"`
	Scores     struct {
		Skills           float64 `json:"skills"`
		Responsibilities float64 `json:"responsibilities"`
		Ambitions        float64 `json:"ambitions"`
		Dedication       float64 `json:"dedication"`
	} `json:"component_scores"`
	OverallScore      float64 `json:"overall_score"`
	Band              string  `json:"band"`
	ReadinessEstimate string  `json:"readiness_estimate"`
}

func TestAnalyzeGapEndpoint(t *testing.T) {
	router := newTestRouter(t)
	seedOrg(t, router)

	resp := doJSON(t, router, http.MethodGet, "/api/v1/analysis/gap?employee_id=E-STRONG&role_id=R-LEAD", nil)
	mustStatus(t, resp, http.StatusOK, "analyze gap")

	var got gapPayload
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.EmployeeID != "E-STRONG" || got.RoleID != "R-LEAD" {
		t.Fatalf("unexpected pair: %+v", got)
	}
	for name, score := range map[string]float64{
		"skills":           got.Scores.Skills,
		"responsibilities": got.Scores.Responsibilities,
		"ambitions":        got.Scores.Ambitions,
		"dedication":       got.Scores.Dedication,
	} {
		if score < 0 || score > 1 {
			t.Fatalf("%s score out of range: %f", name, score)
		}
	}

	want := 0.50*got.Scores.Skills + 0.25*got.Scores.Responsibilities +
		0.15*got.Scores.Ambitions + 0.10*got.Scores.Dedication
	if math.Abs(got.OverallScore-want) > 1e-9 {
		t.Fatalf("overall %f is not the weighted component sum %f", got.OverallScore, want)
	}
	if got.Band == "" || got.ReadinessEstimate == "" {
		t.Fatalf("band and readiness must be set: %+v", got)
	}

	// E-STRONG matches skills, responsibilities, aspiration and has full
	// availability, so it must land in the top band.
	if got.Band != "READY" {
		t.Fatalf("expected READY for a full match, got %s", got.Band)
	}
}

func TestAnalyzeGapWithCustomConfig(t *testing.T) {
	router := newTestRouter(t)
	seedOrg(t, router)

	// Baseline: E-WEAK misses the lowest default band.
	resp := doJSON(t, router, http.MethodGet, "/api/v1/analysis/gap?employee_id=E-WEAK&role_id=R-LEAD", nil)
	mustStatus(t, resp, http.StatusOK, "default gap")
	var base gapPayload
	if err := json.NewDecoder(resp.Body).Decode(&base); err != nil {
		t.Fatalf("decode baseline: %v", err)
	}
	if base.Band != "NOT_VIABLE" {
		t.Fatalf("expected NOT_VIABLE baseline, got %s", base.Band)
	}

	// Looser caller-supplied thresholds reclassify the same score.
	resp = doJSON(t, router, http.MethodPost, "/api/v1/analysis/gap", map[string]any{
		"employee_id": "E-WEAK",
		"role_id":     "R-LEAD",
		"thresholds": map[string]float64{
			"ready": 0.5, "ready_with_support": 0.2, "near": 0.1, "far": 0.05,
		},
	})
	mustStatus(t, resp, http.StatusOK, "custom thresholds")
	var custom gapPayload
	if err := json.NewDecoder(resp.Body).Decode(&custom); err != nil {
		t.Fatalf("decode custom: %v", err)
	}
	if custom.OverallScore != base.OverallScore {
		t.Fatalf("thresholds must not change the score: %f vs %f", custom.OverallScore, base.OverallScore)
	}
	if custom.Band != "NEAR" {
		t.Fatalf("expected NEAR under loose thresholds, got %s", custom.Band)
	}

	// Custom weights shift the overall score.
	resp = doJSON(t, router, http.MethodPost, "/api/v1/analysis/gap", map[string]any{
		"employee_id": "E-WEAK",
		"role_id":     "R-LEAD",
		"weights": map[string]float64{
			"skills": 1.0, "responsibilities": 0, "ambitions": 0, "dedication": 0,
		},
	})
	mustStatus(t, resp, http.StatusOK, "custom weights")
	if err := json.NewDecoder(resp.Body).Decode(&custom); err != nil {
		t.Fatalf("decode weighted: %v", err)
	}
	if math.Abs(custom.OverallScore-custom.Scores.Skills) > 1e-9 {
		t.Fatalf("all-skills weighting must equal the skills score: %+v", custom)
	}

	// Invalid caller configuration is a request error, not a server one.
	resp = doJSON(t, router, http.MethodPost, "/api/v1/analysis/gap", map[string]any{
		"employee_id": "E-WEAK",
		"role_id":     "R-LEAD",
		"weights":     map[string]float64{"skills": 0.9},
	})
	mustStatus(t, resp, http.StatusBadRequest, "bad weights")
}

func TestAnalyzeGapErrors(t *testing.T) {
	router := newTestRouter(t)
	seedOrg(t, router)

	mustStatus(t, doJSON(t, router, http.MethodGet, "/api/v1/analysis/gap?role_id=R-LEAD", nil),
		http.StatusBadRequest, "missing employee_id")
	mustStatus(t, doJSON(t, router, http.MethodGet, "/api/v1/analysis/gap?employee_id=E-NOPE&role_id=R-LEAD", nil),
		http.StatusNotFound, "unknown employee")
	mustStatus(t, doJSON(t, router, http.MethodGet, "/api/v1/analysis/gap?employee_id=E-STRONG&role_id=R-NOPE", nil),
		http.StatusNotFound, "unknown role")
}

func TestCandidatesForRoleOrderingAndLimit(t *testing.T) {
	router := newTestRouter(t)
	seedOrg(t, router)

	resp := doJSON(t, router, http.MethodGet, "/api/v1/analysis/roles/R-LEAD/candidates", nil)
	mustStatus(t, resp, http.StatusOK, "candidates")

	var got struct {
		RoleID     string       `json:"role_id"`
		Candidates []gapPayload `json:"candidates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.RoleID != "R-LEAD" || len(got.Candidates) != 2 {
		t.Fatalf("unexpected response: %+v", got)
	}
	if got.Candidates[0].EmployeeID != "E-STRONG" {
		t.Fatalf("expected E-STRONG first, got %s", got.Candidates[0].EmployeeID)
	}
	if got.Candidates[0].OverallScore < got.Candidates[1].OverallScore {
		t.Fatalf("candidates not sorted by score desc: %+v", got.Candidates)
	}

	resp = doJSON(t, router, http.MethodGet, "/api/v1/analysis/roles/R-LEAD/candidates?limit=1", nil)
	mustStatus(t, resp, http.StatusOK, "candidates limit=1")
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode limited: %v", err)
	}
	if len(got.Candidates) != 1 || got.Candidates[0].EmployeeID != "E-STRONG" {
		t.Fatalf("limit not applied: %+v", got.Candidates)
	}

	mustStatus(t, doJSON(t, router, http.MethodGet, "/api/v1/analysis/roles/R-NOPE/candidates", nil),
		http.StatusNotFound, "unknown role")
}

func TestPathsForEmployee(t *testing.T) {
	router := newTestRouter(t)
	seedOrg(t, router)

	resp := doJSON(t, router, http.MethodGet, "/api/v1/analysis/employees/E-STRONG/paths", nil)
	mustStatus(t, resp, http.StatusOK, "paths")

	var got struct {
		EmployeeID string       `json:"employee_id"`
		Paths      []gapPayload `json:"paths"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.EmployeeID != "E-STRONG" || len(got.Paths) != 2 {
		t.Fatalf("unexpected response: %+v", got)
	}
	if got.Paths[0].RoleID != "R-LEAD" {
		t.Fatalf("expected R-LEAD as best path, got %s", got.Paths[0].RoleID)
	}

	mustStatus(t, doJSON(t, router, http.MethodGet, "/api/v1/analysis/employees/E-NOPE/paths", nil),
		http.StatusNotFound, "unknown employee")
}

func TestRoleBottlenecksNoViableCandidates(t *testing.T) {
	router := newTestRouter(t)
	seedOrg(t, router)

	// Nobody has S-M&A at all, so no candidate clears the viability bar.
	resp := doJSON(t, router, http.MethodGet, "/api/v1/analysis/roles/R-HARD/bottlenecks", nil)
	mustStatus(t, resp, http.StatusOK, "bottlenecks")

	var got struct {
		RoleID      string `json:"role_id"`
		Bottlenecks []struct {
			SkillID            string  `json:"skill_id"`
			AvgGapPercentage   float64 `json:"avg_gap_percentage"`
			Priority           string  `json:"priority"`
			NoViableCandidates bool    `json:"no_viable_candidates"`
		} `json:"bottlenecks"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.Bottlenecks) != 1 {
		t.Fatalf("expected one bottleneck, got %+v", got.Bottlenecks)
	}
	b := got.Bottlenecks[0]
	if b.SkillID != "S-M&A" || !b.NoViableCandidates {
		t.Fatalf("unexpected bottleneck: %+v", b)
	}
	if b.AvgGapPercentage != 100 || b.Priority != "CRÍTICA" {
		t.Fatalf("no-viable roles report a full critical gap, got %+v", b)
	}
}

func TestOrgSummary(t *testing.T) {
	router := newTestRouter(t)
	seedOrg(t, router)

	resp := doJSON(t, router, http.MethodGet, "/api/v1/analysis/summary", nil)
	mustStatus(t, resp, http.StatusOK, "summary")

	var got struct {
		TotalRoles         int            `json:"total_roles"`
		TotalEmployees     int            `json:"total_employees"`
		CoveragePercentage float64        `json:"coverage_percentage"`
		OrphanRoles        []string       `json:"orphan_roles"`
		BandDistribution   map[string]int `json:"band_distribution"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.TotalRoles != 2 || got.TotalEmployees != 2 {
		t.Fatalf("unexpected totals: %+v", got)
	}
	// R-LEAD has a READY candidate, R-HARD has none.
	if got.CoveragePercentage != 50 {
		t.Fatalf("expected 50%% coverage, got %f", got.CoveragePercentage)
	}
	if len(got.OrphanRoles) != 1 || got.OrphanRoles[0] != "R-HARD" {
		t.Fatalf("unexpected orphan roles: %+v", got.OrphanRoles)
	}
	total := 0
	for _, n := range got.BandDistribution {
		total += n
	}
	if total != 4 {
		t.Fatalf("band distribution should cover all 4 pairs, got %+v", got.BandDistribution)
	}
}
