package analysis

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"talentgap-backend/internal/employees"
	"talentgap-backend/internal/gap"
	"talentgap-backend/internal/roles"
	"talentgap-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the analysis service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/analysis/gap", h.gap)
	rg.POST("/analysis/gap", h.gapWithConfig)
	rg.GET("/analysis/matrix", h.matrix)
	rg.GET("/analysis/summary", h.summary)
	rg.GET("/analysis/roles/:id/candidates", h.candidates)
	rg.GET("/analysis/roles/:id/bottlenecks", h.bottlenecks)
	rg.GET("/analysis/employees/:id/paths", h.paths)
}

func (h *Handler) gap(c *gin.Context) {
	employeeID := strings.TrimSpace(c.Query("employee_id"))
	roleID := strings.TrimSpace(c.Query("role_id"))
	if employeeID == "" || roleID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "employee_id and role_id are required", nil)
		return
	}

	result, err := h.Svc.AnalyzeGap(c.Request.Context(), employeeID, roleID)
	if err != nil {
		respondAnalysisError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, toGapResponse(result))
}

// gapWithConfig is the POST variant: the body may carry custom weights
// and band thresholds for this one analysis.
func (h *Handler) gapWithConfig(c *gin.Context) {
	var req gapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	req.EmployeeID = strings.TrimSpace(req.EmployeeID)
	req.RoleID = strings.TrimSpace(req.RoleID)
	if req.EmployeeID == "" || req.RoleID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "employee_id and role_id are required", nil)
		return
	}

	result, err := h.Svc.AnalyzeGapWith(c.Request.Context(), req.EmployeeID, req.RoleID, Overrides{
		Weights:    req.Weights,
		Thresholds: req.Thresholds,
	})
	if err != nil {
		// Caller-supplied configuration is request input, not server state.
		var configuration *gap.ConfigurationError
		if (req.Weights != nil || req.Thresholds != nil) && errors.As(err, &configuration) {
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
			return
		}
		respondAnalysisError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, toGapResponse(result))
}

func (h *Handler) matrix(c *gin.Context) {
	m, err := h.Svc.Matrix(c.Request.Context())
	if err != nil {
		respondAnalysisError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, m)
}

func (h *Handler) summary(c *gin.Context) {
	s, err := h.Svc.Summary(c.Request.Context())
	if err != nil {
		respondAnalysisError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, s)
}

func (h *Handler) candidates(c *gin.Context) {
	roleID := c.Param("id")
	ranked, pairErrs, err := h.Svc.CandidatesForRole(c.Request.Context(), roleID, parseLimit(c))
	if err != nil {
		respondAnalysisError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, candidatesResponse{
		RoleID:     roleID,
		Candidates: toGapResponses(ranked),
		Errors:     pairErrs,
	})
}

func (h *Handler) bottlenecks(c *gin.Context) {
	roleID := c.Param("id")
	stats, err := h.Svc.RoleBottlenecks(c.Request.Context(), roleID)
	if err != nil {
		respondAnalysisError(c, err)
		return
	}
	if stats == nil {
		stats = []gap.BottleneckStat{}
	}
	respond.JSON(c, http.StatusOK, bottlenecksResponse{RoleID: roleID, Bottlenecks: stats})
}

func (h *Handler) paths(c *gin.Context) {
	employeeID := c.Param("id")
	ranked, pairErrs, err := h.Svc.PathsForEmployee(c.Request.Context(), employeeID, parseLimit(c))
	if err != nil {
		respondAnalysisError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, pathsResponse{
		EmployeeID: employeeID,
		Paths:      toGapResponses(ranked),
		Errors:     pairErrs,
	})
}

func parseLimit(c *gin.Context) int {
	raw := c.Query("limit")
	if raw == "" {
		return 0
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}

func respondAnalysisError(c *gin.Context, err error) {
	var unknownLevel *gap.UnknownSkillLevelError
	var validation *gap.ValidationError
	var configuration *gap.ConfigurationError
	switch {
	case errors.Is(err, employees.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "employee not found", nil)
	case errors.Is(err, roles.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "role not found", nil)
	case errors.As(err, &unknownLevel), errors.As(err, &validation):
		respond.Error(c, http.StatusUnprocessableEntity, "invalid_data", err.Error(), nil)
	case errors.As(err, &configuration):
		respond.Error(c, http.StatusInternalServerError, "config_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "analysis failed", nil)
	}
}
