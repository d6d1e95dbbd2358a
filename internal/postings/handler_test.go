package postings

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

type staticLister struct {
	summaries []ApplicationSummary
}

func (s staticLister) SummariesForPosting(ctx context.Context, postingID int64) ([]ApplicationSummary, error) {
	_ = ctx
	_ = postingID
	return s.summaries, nil
}

func newTestRouter(t *testing.T, lister ApplicationLister) (*gin.Engine, *Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc, _ := newTestService(t)
	if lister == nil {
		lister = staticLister{}
	}
	handler := NewHandler(svc, lister)

	router := gin.New()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)
	return router, svc
}

func TestHandlerCreatePosting(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	body, _ := json.Marshal(validPosting())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/job-postings", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", resp.Code, resp.Body.String())
	}
	var created JobPosting
	if err := json.Unmarshal(resp.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.ID == 0 || created.PublicLinkURL == "" {
		t.Fatalf("incomplete posting in response: %+v", created)
	}
	if created.Status != StatusScheduled {
		t.Fatalf("status = %s, want SCHEDULED for dateless posting", created.Status)
	}
}

func TestHandlerCreatePostingConsistencyViolation(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	p := validPosting()
	p.PassingScore = 100
	body, _ := json.Marshal(p)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/job-postings", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", resp.Code)
	}
	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	if envelope.Error.Code != "consistency_violation" {
		t.Fatalf("error code = %q", envelope.Error.Code)
	}
}

func TestHandlerGetPostingNotFound(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/job-postings/999", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.Code)
	}
}

func TestHandlerWithApplications(t *testing.T) {
	lister := staticLister{summaries: []ApplicationSummary{{
		ID:             7,
		ApplicantName:  "Jordan Kim",
		ApplicantEmail: "jordan@example.com",
		Status:         "IN_PROGRESS",
		SubmittedAt:    time.Now().UTC(),
	}}}
	router, svc := newTestRouter(t, lister)

	created, err := svc.Create(context.Background(), validPosting())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/job-postings/1/with-applications", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.Code, resp.Body.String())
	}
	var view struct {
		JobPosting   JobPosting           `json:"jobPosting"`
		Applications []ApplicationSummary `json:"applications"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if view.JobPosting.ID != created.ID {
		t.Fatalf("posting id = %d, want %d", view.JobPosting.ID, created.ID)
	}
	if len(view.Applications) != 1 || view.Applications[0].ApplicantEmail != "jordan@example.com" {
		t.Fatalf("applications = %+v", view.Applications)
	}
}

func TestHandlerEvaluationCriteria(t *testing.T) {
	router, svc := newTestRouter(t, nil)

	if _, err := svc.Create(context.Background(), validPosting()); err != nil {
		t.Fatalf("Create: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/job-postings/1/evaluation-criteria", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.Code, resp.Body.String())
	}
	var payload struct {
		JobPostingID int64  `json:"jobPostingId"`
		CompanyName  string `json:"companyName"`
		ResumeItems  []struct {
			MaxScore int `json:"maxScore"`
		} `json:"resumeItems"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.JobPostingID != 1 || payload.CompanyName != "Acme" {
		t.Fatalf("payload = %+v", payload)
	}
	if len(payload.ResumeItems) != 2 {
		t.Fatalf("resume items = %d, want 2", len(payload.ResumeItems))
	}
}
