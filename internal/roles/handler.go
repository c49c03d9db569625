package roles

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"talentgap-backend/internal/gap"
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

// RegisterRoutes attaches role and skill-catalog routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/roles", h.create)
	rg.GET("/roles", h.list)
	rg.GET("/roles/:id", h.get)
	rg.PUT("/roles/:id", h.update)
	rg.DELETE("/roles/:id", h.delete)
	rg.GET("/skills", h.listSkills)
	rg.PUT("/skills/:id", h.upsertSkill)
}

func (h *Handler) create(c *gin.Context) {
	var req rolePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	r, err := h.Svc.Create(c.Request.Context(), req.toModel())
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrConflict):
			respond.Error(c, http.StatusConflict, "conflict", "role already exists", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create role", nil)
		}
		return
	}
	respond.JSON(c, http.StatusCreated, toResponse(r))
}

func (h *Handler) list(c *gin.Context) {
	list, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list roles", nil)
		return
	}
	resp := make([]roleResponse, 0, len(list))
	for _, r := range list {
		resp = append(resp, toResponse(r))
	}
	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) get(c *gin.Context) {
	r, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "role not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch role", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, toResponse(r))
}

func (h *Handler) update(c *gin.Context) {
	var req rolePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	req.ID = c.Param("id")

	r, err := h.Svc.Update(c.Request.Context(), req.toModel())
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "role not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update role", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, toResponse(r))
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "role not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete role", nil)
		}
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) listSkills(c *gin.Context) {
	list, err := h.Svc.ListSkills(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list skills", nil)
		return
	}
	if list == nil {
		list = []gap.Skill{}
	}
	respond.JSON(c, http.StatusOK, list)
}

func (h *Handler) upsertSkill(c *gin.Context) {
	var skill gap.Skill
	if err := c.ShouldBindJSON(&skill); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	skill.ID = c.Param("id")

	saved, err := h.Svc.UpsertSkill(c.Request.Context(), skill)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to save skill", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, saved)
}
