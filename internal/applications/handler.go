package applications

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

// RegisterRoutes attaches application routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/job-postings/:id/applications", h.submit)
	rg.GET("/applications", h.list)
	rg.GET("/applications/statistics", h.statistics)
	rg.GET("/applications/:id", h.get)
	rg.GET("/applications/job-postings/:jobPostingId", h.listByPosting)
	rg.PUT("/applications/:id/evaluation", h.decide)
}

type submitRequest struct {
	ApplicantName     string `json:"applicantName"`
	ApplicantEmail    string `json:"applicantEmail"`
	ResumeItemAnswers []struct {
		ResumeItemID  int64  `json:"resumeItemId"`
		ResumeContent string `json:"resumeContent"`
	} `json:"resumeItemAnswers"`
	CoverLetterQuestionAnswers []struct {
		CoverLetterQuestionID int64  `json:"coverLetterQuestionId"`
		AnswerContent         string `json:"answerContent"`
	} `json:"coverLetterQuestionAnswers"`
}

func (h *Handler) submit(c *gin.Context) {
	postingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid job posting id", nil)
		return
	}
	middleware.SetJobPostingID(c, postingID)

	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	input := SubmitInput{
		ApplicantName:  req.ApplicantName,
		ApplicantEmail: req.ApplicantEmail,
	}
	for _, answer := range req.ResumeItemAnswers {
		input.ResumeAnswers = append(input.ResumeAnswers, ResumeAnswer{
			ResumeItemID:  answer.ResumeItemID,
			ResumeContent: answer.ResumeContent,
		})
	}
	for _, answer := range req.CoverLetterQuestionAnswers {
		input.EssayAnswers = append(input.EssayAnswers, EssayAnswer{
			CoverLetterQuestionID: answer.CoverLetterQuestionID,
			AnswerContent:         answer.AnswerContent,
		})
	}

	created, err := h.Svc.Submit(c.Request.Context(), postingID, input)
	if err != nil {
		h.respondError(c, err)
		return
	}
	middleware.SetApplicationID(c, created.ID)
	respond.JSON(c, http.StatusCreated, created)
}

func (h *Handler) list(c *gin.Context) {
	apps, err := h.Svc.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	if apps == nil {
		apps = []Application{}
	}
	respond.OK(c, apps)
}

func (h *Handler) get(c *gin.Context) {
	applicationID, ok := h.applicationID(c)
	if !ok {
		return
	}
	application, err := h.Svc.Get(c.Request.Context(), applicationID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respond.OK(c, application)
}

func (h *Handler) listByPosting(c *gin.Context) {
	postingID, err := strconv.ParseInt(c.Param("jobPostingId"), 10, 64)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid job posting id", nil)
		return
	}
	middleware.SetJobPostingID(c, postingID)

	apps, err := h.Svc.ListByPosting(c.Request.Context(), postingID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if apps == nil {
		apps = []Application{}
	}
	respond.OK(c, apps)
}

func (h *Handler) statistics(c *gin.Context) {
	stats, err := h.Svc.Statistics(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	respond.OK(c, stats)
}

type decideRequest struct {
	Status  string `json:"status"`
	Comment string `json:"comment"`
}

func (h *Handler) decide(c *gin.Context) {
	applicationID, ok := h.applicationID(c)
	if !ok {
		return
	}
	var req decideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	updated, err := h.Svc.Decide(c.Request.Context(), applicationID, req.Status, req.Comment)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respond.OK(c, updated)
}

func (h *Handler) applicationID(c *gin.Context) (int64, bool) {
	applicationID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid application id", nil)
		return 0, false
	}
	middleware.SetApplicationID(c, applicationID)
	return applicationID, true
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidStatusValue):
		respond.Error(c, http.StatusBadRequest, "invalid_status_value", err.Error(), nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrPostingNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "job posting not found", nil)
	case errors.Is(err, ErrEvaluationMissing):
		respond.Error(c, http.StatusNotFound, "not_found", "no evaluation result for application", nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "application not found", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "application operation failed", nil)
	}
}
