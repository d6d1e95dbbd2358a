package evaluations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"recruit-backend/internal/shared/server/middleware"
	"recruit-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches evaluation result routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/applications/evaluation-result", h.receive)
	rg.GET("/applications/:id/evaluation-result", h.get)
}

// receive is the evaluator's callback endpoint.
func (h *Handler) receive(c *gin.Context) {
	var payload CallbackPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid evaluation result payload", nil)
		return
	}

	result, err := h.Svc.Reconcile(c.Request.Context(), payload)
	if err != nil {
		h.respondError(c, err)
		return
	}
	middleware.SetApplicationID(c, result.ApplicationID)
	respond.OK(c, result)
}

func (h *Handler) get(c *gin.Context) {
	applicationID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid application id", nil)
		return
	}
	middleware.SetApplicationID(c, applicationID)

	result, err := h.Svc.GetForApplication(c.Request.Context(), applicationID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respond.OK(c, result)
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrApplicationNotFound):
		respond.Error(c, http.StatusNotFound, "application_not_found", "no application matches evaluation result", nil)
	case errors.Is(err, ErrTerminalStatus):
		respond.Error(c, http.StatusConflict, "terminal_status", "application already has a terminal decision", nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "evaluation result not found", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "evaluation result operation failed", nil)
	}
}
