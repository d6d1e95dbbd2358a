package companies

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"recruit-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches company routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/companies", h.create)
	rg.GET("/companies", h.first)
	rg.GET("/companies/:id", h.get)
}

type createRequest struct {
	Name        string `json:"name"`
	Industry    string `json:"industry"`
	Description string `json:"description"`
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	company, err := h.Svc.Create(c.Request.Context(), Company{
		Name:        req.Name,
		Industry:    req.Industry,
		Description: req.Description,
	})
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}
	respond.JSON(c, http.StatusCreated, company)
}

// first returns the earliest registered company, the one postings attach to.
func (h *Handler) first(c *gin.Context) {
	company, err := h.Svc.GetFirst(c.Request.Context())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "no registered company", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch company", nil)
		return
	}
	respond.OK(c, company)
}

func (h *Handler) get(c *gin.Context) {
	companyID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid company id", nil)
		return
	}

	company, err := h.Svc.GetByID(c.Request.Context(), companyID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "company not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch company", nil)
		return
	}
	respond.OK(c, company)
}
