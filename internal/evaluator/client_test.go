package evaluator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestClientTeachCriteria(t *testing.T) {
	var gotPath string
	var gotPayload CriteriaPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(srv.URL, time.Second)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	payload := CriteriaPayload{
		JobPostingID: 1,
		Title:        "Backend Engineer",
		CompanyName:  "Acme",
		TotalScore:   100,
		ResumeItems: []CriteriaResumeItem{
			{ID: 2, Name: "Experience", Type: "NUMBER", MaxScore: 50},
		},
	}
	if err := client.TeachCriteria(context.Background(), payload); err != nil {
		t.Fatalf("TeachCriteria: %v", err)
	}
	if gotPath != "/api/job-postings/evaluation-criteria" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotPayload.JobPostingID != 1 || gotPayload.ResumeItems[0].Type != "NUMBER" {
		t.Fatalf("payload = %+v", gotPayload)
	}
}

func TestClientSubmitApplicationPath(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusAccepted)
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(srv.URL+"/", time.Second)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if err := client.SubmitApplication(context.Background(), SubmissionPayload{ApplicationID: 7}); err != nil {
		t.Fatalf("SubmitApplication: %v", err)
	}
	if gotPath != "/api/applications/submit" {
		t.Fatalf("path = %q", gotPath)
	}
}

func TestClientSurfacesErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "schema mismatch", http.StatusUnprocessableEntity)
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(srv.URL, time.Second)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	err = client.SubmitApplication(context.Background(), SubmissionPayload{})
	if err == nil {
		t.Fatalf("expected error for 422 response")
	}
	if !strings.Contains(err.Error(), "422") || !strings.Contains(err.Error(), "schema mismatch") {
		t.Fatalf("error = %v", err)
	}
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	if _, err := NewClient("  ", time.Second); err == nil {
		t.Fatalf("expected error for empty base URL")
	}
}
