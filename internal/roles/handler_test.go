package roles_test

import (
	"bytes"
	"encoding/json"
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

func TestRoleCRUD(t *testing.T) {
	router := newTestRouter(t)

	create := map[string]any{
		"id":        "R-STR-LEAD",
		"title":     "Head of Strategy",
		"chapter":   "Strategy",
		"seniority": "lead",
		"required_skills": map[string]any{
			"S-OKR": map[string]any{"label": "avanzado"},
		},
		"responsibilities": []string{"Definir OKRs y gobierno"},
		"objectives":       []string{"Propuesta de valor"},
		"dedication":       map[string]int{"min_hours": 30, "max_hours": 40},
	}

	resp := doJSON(t, router, http.MethodPost, "/api/v1/roles", create)
	if resp.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	resp = doJSON(t, router, http.MethodPost, "/api/v1/roles", create)
	if resp.Code != http.StatusConflict {
		t.Fatalf("duplicate create: expected 409, got %d", resp.Code)
	}

	resp = doJSON(t, router, http.MethodGet, "/api/v1/roles/R-STR-LEAD", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", resp.Code)
	}
	var fetched struct {
		ID         string `json:"id"`
		Title      string `json:"title"`
		Dedication struct {
			MinHours int `json:"min_hours"`
			MaxHours int `json:"max_hours"`
		} `json:"dedication"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&fetched); err != nil {
		t.Fatalf("decode get: %v", err)
	}
	if fetched.Title != "Head of Strategy" || fetched.Dedication.MinHours != 30 {
		t.Fatalf("unexpected role: %+v", fetched)
	}

	update := create
	update["title"] = "Director of Strategy"
	resp = doJSON(t, router, http.MethodPut, "/api/v1/roles/R-STR-LEAD", update)
	if resp.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	resp = doJSON(t, router, http.MethodDelete, "/api/v1/roles/R-STR-LEAD", nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", resp.Code)
	}
	resp = doJSON(t, router, http.MethodGet, "/api/v1/roles/R-STR-LEAD", nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("get after delete: expected 404, got %d", resp.Code)
	}
}

func TestRoleCreateValidation(t *testing.T) {
	router := newTestRouter(t)

	cases := []struct {
		name    string
		payload map[string]any
	}{
		{
			name:    "missing_title",
			payload: map[string]any{"id": "R-1"},
		},
		{
			name: "inverted_hours",
			payload: map[string]any{
				"id":         "R-2",
				"title":      "Bad Hours",
				"dedication": map[string]int{"min_hours": 40, "max_hours": 20},
			},
		},
		{
			name: "unknown_required_label",
			payload: map[string]any{
				"id":              "R-3",
				"title":           "Bad Skill",
				"required_skills": map[string]any{"S-X": map[string]any{"label": "gurú"}},
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doJSON(t, router, http.MethodPost, "/api/v1/roles", tc.payload)
			if resp.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", resp.Code, resp.Body.String())
			}
		})
	}
}

func TestSkillCatalog(t *testing.T) {
	router := newTestRouter(t)

	resp := doJSON(t, router, http.MethodPut, "/api/v1/skills/S-OKR", map[string]any{
		"name":     "OKRs",
		"category": "Estrategia",
		"weight":   2.0,
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("upsert: expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	// Upsert again with a new weight replaces the entry.
	resp = doJSON(t, router, http.MethodPut, "/api/v1/skills/S-OKR", map[string]any{
		"name":   "OKRs",
		"weight": 3.0,
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("second upsert: expected 200, got %d", resp.Code)
	}

	resp = doJSON(t, router, http.MethodGet, "/api/v1/skills", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", resp.Code)
	}
	var skills []struct {
		ID     string  `json:"id"`
		Weight float64 `json:"weight"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&skills); err != nil {
		t.Fatalf("decode skills: %v", err)
	}
	if len(skills) != 1 || skills[0].ID != "S-OKR" || skills[0].Weight != 3.0 {
		t.Fatalf("unexpected catalog: %+v", skills)
	}

	resp = doJSON(t, router, http.MethodPut, "/api/v1/skills/S-BAD", map[string]any{"weight": -1})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("negative weight: expected 400, got %d", resp.Code)
	}
}
