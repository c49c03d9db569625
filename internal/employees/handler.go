package employees

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"talentgap-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches employee routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/employees", h.create)
	rg.GET("/employees", h.list)
	rg.GET("/employees/:id", h.get)
	rg.PUT("/employees/:id", h.update)
	rg.DELETE("/employees/:id", h.delete)
}

func (h *Handler) create(c *gin.Context) {
	var req employeePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	e, err := h.Svc.Create(c.Request.Context(), req.toModel())
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrConflict):
			respond.Error(c, http.StatusConflict, "conflict", "employee already exists", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create employee", nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, toResponse(e))
}

func (h *Handler) list(c *gin.Context) {
	list, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list employees", nil)
		return
	}
	resp := make([]employeeResponse, 0, len(list))
	for _, e := range list {
		resp = append(resp, toResponse(e))
	}
	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) get(c *gin.Context) {
	e, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "employee not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch employee", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, toResponse(e))
}

func (h *Handler) update(c *gin.Context) {
	var req employeePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	req.ID = c.Param("id")

	e, err := h.Svc.Update(c.Request.Context(), req.toModel())
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "employee not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update employee", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, toResponse(e))
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "employee not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete employee", nil)
		}
		return
	}
	c.Status(http.StatusNoContent)
}
