package postings

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"recruit-backend/internal/shared/server/middleware"
	"recruit-backend/internal/shared/server/respond"
)

// ApplicationSummary is the per-application projection embedded in the
// posting-with-applications view.
type ApplicationSummary struct {
	ID             int64     `json:"id"`
	ApplicantName  string    `json:"applicantName"`
	ApplicantEmail string    `json:"applicantEmail"`
	Status         string    `json:"status"`
	TotalScore     *int      `json:"totalScore"`
	SubmittedAt    time.Time `json:"submittedAt"`
}

// ApplicationLister supplies application summaries for a posting without
// this package depending on the applications package.
type ApplicationLister interface {
	SummariesForPosting(ctx context.Context, postingID int64) ([]ApplicationSummary, error)
}

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc          *Service
	Applications ApplicationLister
}

func NewHandler(svc *Service, applications ApplicationLister) *Handler {
	return &Handler{Svc: svc, Applications: applications}
}

// RegisterRoutes attaches posting routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/job-postings", h.create)
	rg.GET("/job-postings", h.list)
	rg.GET("/job-postings/:id", h.get)
	rg.PUT("/job-postings/:id", h.update)
	rg.GET("/job-postings/:id/with-applications", h.withApplications)
	rg.GET("/job-postings/:id/evaluation-criteria", h.evaluationCriteria)
}

func (h *Handler) create(c *gin.Context) {
	var posting JobPosting
	if err := c.ShouldBindJSON(&posting); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	posting.ID = 0
	posting.Status = ""
	posting.PublicLinkURL = ""

	created, err := h.Svc.Create(c.Request.Context(), posting)
	if err != nil {
		h.respondError(c, err)
		return
	}
	middleware.SetJobPostingID(c, created.ID)
	respond.JSON(c, http.StatusCreated, created)
}

func (h *Handler) list(c *gin.Context) {
	all, err := h.Svc.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	if all == nil {
		all = []JobPosting{}
	}
	respond.OK(c, all)
}

func (h *Handler) get(c *gin.Context) {
	postingID, ok := h.postingID(c)
	if !ok {
		return
	}
	posting, err := h.Svc.Get(c.Request.Context(), postingID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respond.OK(c, posting)
}

func (h *Handler) update(c *gin.Context) {
	postingID, ok := h.postingID(c)
	if !ok {
		return
	}
	var posting JobPosting
	if err := c.ShouldBindJSON(&posting); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	updated, err := h.Svc.Update(c.Request.Context(), postingID, posting)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respond.OK(c, updated)
}

type withApplicationsResponse struct {
	JobPosting   JobPosting           `json:"jobPosting"`
	Applications []ApplicationSummary `json:"applications"`
}

func (h *Handler) withApplications(c *gin.Context) {
	postingID, ok := h.postingID(c)
	if !ok {
		return
	}
	posting, err := h.Svc.Get(c.Request.Context(), postingID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	summaries, err := h.Applications.SummariesForPosting(c.Request.Context(), postingID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if summaries == nil {
		summaries = []ApplicationSummary{}
	}
	respond.OK(c, withApplicationsResponse{JobPosting: posting, Applications: summaries})
}

func (h *Handler) evaluationCriteria(c *gin.Context) {
	postingID, ok := h.postingID(c)
	if !ok {
		return
	}
	payload, err := h.Svc.CriteriaPayload(c.Request.Context(), postingID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respond.OK(c, payload)
}

func (h *Handler) postingID(c *gin.Context) (int64, bool) {
	postingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid job posting id", nil)
		return 0, false
	}
	middleware.SetJobPostingID(c, postingID)
	return postingID, true
}

func (h *Handler) respondError(c *gin.Context, err error) {
	var violation *ConsistencyViolation
	switch {
	case errors.As(err, &violation):
		respond.Error(c, http.StatusUnprocessableEntity, "consistency_violation", violation.Invariant, gin.H{
			"expected": violation.Expected,
			"actual":   violation.Actual,
		})
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrNoCompany):
		respond.Error(c, http.StatusConflict, "no_company", "a company must be registered before creating postings", nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "job posting not found", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "job posting operation failed", nil)
	}
}
