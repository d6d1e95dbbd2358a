package postings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"recruit-backend/internal/companies"
	"recruit-backend/internal/evaluator"
	"recruit-backend/internal/shared/telemetry"
)

// Service contains business logic for job postings.
type Service struct {
	Repo          Repo
	Companies     companies.Repo
	Evaluator     evaluator.Notifier
	PublicBaseURL string
}

// Create validates and persists a posting with all nested children, resolves
// its initial status from the current time, and pushes the grading criteria
// to the evaluator in the background.
func (s *Service) Create(ctx context.Context, posting JobPosting) (JobPosting, error) {
	if strings.TrimSpace(posting.Title) == "" {
		return JobPosting{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	company, err := s.Companies.GetFirst(ctx)
	if err != nil {
		if errors.Is(err, companies.ErrNotFound) {
			return JobPosting{}, ErrNoCompany
		}
		return JobPosting{}, err
	}
	posting.CompanyID = company.ID

	if err := ValidateScoring(&posting); err != nil {
		return JobPosting{}, err
	}
	posting.Status = ResolveStatusFor(posting, time.Now().UTC())

	created, err := s.Repo.Create(ctx, posting)
	if err != nil {
		return JobPosting{}, err
	}

	created.PublicLinkURL = s.publicLinkURL(created.ID)
	if err := s.Repo.SetPublicLinkURL(ctx, created.ID, created.PublicLinkURL); err != nil {
		return JobPosting{}, err
	}

	if s.Evaluator != nil {
		s.Evaluator.NotifyCriteria(buildCriteriaPayload(created, company.Name))
	}
	return created, nil
}

// Update rewrites posting-level fields. Child collections are immutable after
// create, so the scoring invariants are re-checked against the stored
// children before anything is written.
func (s *Service) Update(ctx context.Context, postingID int64, posting JobPosting) (JobPosting, error) {
	if strings.TrimSpace(posting.Title) == "" {
		return JobPosting{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	existing, err := s.Repo.GetByID(ctx, postingID)
	if err != nil {
		return JobPosting{}, err
	}

	posting.ID = existing.ID
	posting.CompanyID = existing.CompanyID
	posting.PublicLinkURL = existing.PublicLinkURL
	posting.ResumeItems = existing.ResumeItems
	posting.CoverLetterQuestions = existing.CoverLetterQuestions

	if err := ValidateScoring(&posting); err != nil {
		return JobPosting{}, err
	}
	posting.Status = ResolveStatusFor(posting, time.Now().UTC())

	return s.Repo.Update(ctx, posting)
}

// Get returns a posting with its children.
func (s *Service) Get(ctx context.Context, postingID int64) (JobPosting, error) {
	return s.Repo.GetByID(ctx, postingID)
}

// List returns all postings, newest first.
func (s *Service) List(ctx context.Context) ([]JobPosting, error) {
	return s.Repo.List(ctx)
}

// CriteriaPayload rebuilds the evaluator criteria payload for a posting, used
// both for manual re-teaching and for inspection.
func (s *Service) CriteriaPayload(ctx context.Context, postingID int64) (evaluator.CriteriaPayload, error) {
	posting, err := s.Repo.GetByID(ctx, postingID)
	if err != nil {
		return evaluator.CriteriaPayload{}, err
	}
	company, err := s.Companies.GetByID(ctx, posting.CompanyID)
	if err != nil && !errors.Is(err, companies.ErrNotFound) {
		return evaluator.CriteriaPayload{}, err
	}
	return buildCriteriaPayload(posting, company.Name), nil
}

// Sweep re-derives every posting's status against now and persists the ones
// that changed. Returns the number of updated postings.
func (s *Service) Sweep(ctx context.Context, now time.Time) (int, error) {
	all, err := s.Repo.List(ctx)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, posting := range all {
		derived := ResolveStatusFor(posting, now)
		if derived == posting.Status {
			continue
		}
		if err := s.Repo.UpdateStatus(ctx, posting.ID, derived, now); err != nil {
			return updated, err
		}
		telemetry.Info("posting.status.swept", map[string]any{
			"job_posting_id": posting.ID,
			"title":          posting.Title,
			"old_status":     string(posting.Status),
			"new_status":     string(derived),
		})
		updated++
	}
	return updated, nil
}

func (s *Service) publicLinkURL(postingID int64) string {
	base := strings.TrimRight(s.PublicBaseURL, "/")
	return fmt.Sprintf("%s/apply/%d", base, postingID)
}

func buildCriteriaPayload(posting JobPosting, companyName string) evaluator.CriteriaPayload {
	payload := evaluator.CriteriaPayload{
		JobPostingID:          posting.ID,
		Title:                 posting.Title,
		CompanyName:           companyName,
		JobRole:               posting.JobRole,
		TotalScore:            posting.TotalScore,
		PassingScore:          posting.PassingScore,
		AIAutomaticEvaluation: posting.AIAutomaticEvaluation,
		ManualReview:          posting.ManualReview,
		Timestamp:             time.Now().UTC().UnixMilli(),
		ResumeItems:           []evaluator.CriteriaResumeItem{},
		CoverLetterQuestions:  []evaluator.CriteriaQuestion{},
	}
	for _, item := range posting.ResumeItems {
		// Unscored items carry no grading signal for the evaluator.
		if item.MaxScore == nil || *item.MaxScore <= 0 {
			continue
		}
		payload.ResumeItems = append(payload.ResumeItems, evaluator.CriteriaResumeItem{
			ID:         item.ID,
			Name:       item.Name,
			Type:       string(item.Type),
			MaxScore:   *item.MaxScore,
			IsRequired: item.IsRequired,
		})
	}
	for _, question := range posting.CoverLetterQuestions {
		payload.CoverLetterQuestions = append(payload.CoverLetterQuestions, evaluator.CriteriaQuestion{
			ID:            question.ID,
			Content:       question.Content,
			MaxCharacters: question.MaxCharacters,
			IsRequired:    question.IsRequired,
		})
	}
	return payload
}
