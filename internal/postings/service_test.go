package postings

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"recruit-backend/internal/companies"
	"recruit-backend/internal/evaluator"
)

type fakeNotifier struct {
	criteria    []evaluator.CriteriaPayload
	submissions []evaluator.SubmissionPayload
}

func (f *fakeNotifier) NotifyCriteria(payload evaluator.CriteriaPayload) bool {
	f.criteria = append(f.criteria, payload)
	return true
}

func (f *fakeNotifier) NotifySubmission(payload evaluator.SubmissionPayload) bool {
	f.submissions = append(f.submissions, payload)
	return true
}

func newTestService(t *testing.T) (*Service, *fakeNotifier) {
	t.Helper()
	companyRepo := companies.NewMemoryRepo()
	_, err := companyRepo.Create(context.Background(), companies.Company{Name: "Acme"})
	if err != nil {
		t.Fatalf("seed company: %v", err)
	}
	notifier := &fakeNotifier{}
	svc := &Service{
		Repo:          NewMemoryRepo(),
		Companies:     companyRepo,
		Evaluator:     notifier,
		PublicBaseURL: "http://localhost:3000",
	}
	return svc, notifier
}

func TestServiceCreateAssignsStatusAndLink(t *testing.T) {
	svc, notifier := newTestService(t)

	p := validPosting()
	start := time.Now().UTC().Add(-time.Hour)
	end := time.Now().UTC().Add(24 * time.Hour)
	p.ApplicationStartDate = &start
	p.ApplicationEndDate = &end

	created, err := svc.Create(context.Background(), p)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Status != StatusInProgress {
		t.Fatalf("status = %s, want IN_PROGRESS", created.Status)
	}
	if !strings.HasSuffix(created.PublicLinkURL, "/apply/1") {
		t.Fatalf("public link = %q", created.PublicLinkURL)
	}
	if created.TotalScore != 100 {
		t.Fatalf("total score = %d, want 100", created.TotalScore)
	}

	if len(notifier.criteria) != 1 {
		t.Fatalf("criteria notifications = %d, want 1", len(notifier.criteria))
	}
	payload := notifier.criteria[0]
	if payload.CompanyName != "Acme" {
		t.Fatalf("company name = %q", payload.CompanyName)
	}
	if len(payload.ResumeItems) != 2 {
		t.Fatalf("criteria resume items = %d, want 2", len(payload.ResumeItems))
	}
}

func TestServiceCreateSkipsUnscoredItemsInCriteria(t *testing.T) {
	svc, notifier := newTestService(t)

	p := validPosting()
	p.ResumeItems = append(p.ResumeItems, ResumeItem{Name: "Photo", Type: ItemTypeFile})

	if _, err := svc.Create(context.Background(), p); err != nil {
		t.Fatalf("Create: %v", err)
	}
	payload := notifier.criteria[0]
	for _, item := range payload.ResumeItems {
		if item.Name == "Photo" {
			t.Fatalf("unscored item leaked into criteria payload")
		}
	}
}

func TestServiceCreateWithoutCompany(t *testing.T) {
	svc := &Service{
		Repo:          NewMemoryRepo(),
		Companies:     companies.NewMemoryRepo(),
		PublicBaseURL: "http://localhost:3000",
	}
	_, err := svc.Create(context.Background(), validPosting())
	if !errors.Is(err, ErrNoCompany) {
		t.Fatalf("expected ErrNoCompany, got %v", err)
	}
}

func TestServiceCreateRejectsInvalidScoring(t *testing.T) {
	svc, notifier := newTestService(t)

	p := validPosting()
	p.PassingScore = 150

	_, err := svc.Create(context.Background(), p)
	var violation *ConsistencyViolation
	if !errors.As(err, &violation) {
		t.Fatalf("expected ConsistencyViolation, got %v", err)
	}
	if len(notifier.criteria) != 0 {
		t.Fatalf("rejected posting must not be sent to evaluator")
	}
}

func TestServiceUpdateKeepsChildrenAndRevalidates(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.Create(context.Background(), validPosting())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	update := created
	update.Title = "Senior Backend Engineer"
	update.ResumeItems = nil
	update.CoverLetterQuestions = nil

	updated, err := svc.Update(context.Background(), created.ID, update)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Title != "Senior Backend Engineer" {
		t.Fatalf("title = %q", updated.Title)
	}
	if len(updated.ResumeItems) != 2 || len(updated.CoverLetterQuestions) != 1 {
		t.Fatalf("children must survive update: %d items, %d questions",
			len(updated.ResumeItems), len(updated.CoverLetterQuestions))
	}

	// Changing a weight away from the stored item sum must fail.
	update.ResumeScoreWeight = 80
	if _, err := svc.Update(context.Background(), created.ID, update); err == nil {
		t.Fatalf("expected violation for weight mismatch against stored items")
	}
}

func TestServiceSweepWritesOnlyDiffs(t *testing.T) {
	svc, _ := newTestService(t)

	// Stored as IN_PROGRESS, but the window has since closed.
	p := validPosting()
	start := time.Now().UTC().Add(-48 * time.Hour)
	end := time.Now().UTC().Add(-24 * time.Hour)
	evalEnd := time.Now().UTC().Add(24 * time.Hour)
	p.ApplicationStartDate = &start
	p.ApplicationEndDate = &end
	p.EvaluationEndDate = &evalEnd
	stale, err := svc.Repo.Create(context.Background(), func() JobPosting {
		p.Status = StatusInProgress
		return p
	}())
	if err != nil {
		t.Fatalf("seed posting: %v", err)
	}

	// Already correct, must be left alone.
	fresh := validPosting()
	fresh.Status = StatusScheduled
	if _, err := svc.Repo.Create(context.Background(), fresh); err != nil {
		t.Fatalf("seed posting: %v", err)
	}

	updated, err := svc.Sweep(context.Background(), time.Now().UTC())
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if updated != 1 {
		t.Fatalf("updated = %d, want 1", updated)
	}

	got, err := svc.Repo.GetByID(context.Background(), stale.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != StatusClosed {
		t.Fatalf("status = %s, want CLOSED", got.Status)
	}
}
