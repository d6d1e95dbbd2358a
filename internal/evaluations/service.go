package evaluations

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"recruit-backend/internal/applications"
	"recruit-backend/internal/postings"
	"recruit-backend/internal/shared/telemetry"
)

// Service reconciles evaluator reports with stored applications.
type Service struct {
	Repo                Repo
	Apps                applications.Repo
	Postings            postings.Repo
	DefaultItemMaxScore int
}

// Reconcile resolves the report's target application, enriches the resume
// scores with each item's configured max score, and upserts the result.
// Reports for unknown applications are rejected without creating anything;
// repeated reports for the same application replace the previous result.
func (s *Service) Reconcile(ctx context.Context, payload CallbackPayload) (Result, error) {
	application, err := s.resolveApplication(ctx, payload)
	if err != nil {
		return Result{}, err
	}
	if application.Status.Terminal() {
		return Result{}, ErrTerminalStatus
	}

	maxScores := s.itemMaxScores(ctx, application.JobPostingID)
	total := 0
	resumeEvaluations := make([]ResumeEvaluation, 0, len(payload.ResumeEvaluations))
	for _, evaluation := range payload.ResumeEvaluations {
		maxScore, ok := maxScores[evaluation.ResumeItemID]
		if !ok {
			maxScore = s.DefaultItemMaxScore
		}
		evaluation.MaxScore = maxScore
		total += evaluation.Score
		resumeEvaluations = append(resumeEvaluations, evaluation)
	}

	result := Result{
		ApplicationID: application.ID,
		JobPostingID:  application.JobPostingID,
		TotalScore:    total,
	}
	if result.ResumeScores, err = json.Marshal(resumeEvaluations); err != nil {
		return Result{}, err
	}
	if payload.CoverLetterQuestionEvaluations != nil {
		if result.CoverLetterScores, err = json.Marshal(payload.CoverLetterQuestionEvaluations); err != nil {
			return Result{}, err
		}
	}
	if payload.OverallAnalysis != nil {
		if result.OverallEvaluation, err = json.Marshal(payload.OverallAnalysis); err != nil {
			return Result{}, err
		}
	}

	stored, err := s.Repo.Upsert(ctx, result)
	if err != nil {
		return Result{}, err
	}
	telemetry.Info("evaluation.reconciled", map[string]any{
		"application_id": stored.ApplicationID,
		"job_posting_id": stored.JobPostingID,
		"total_score":    stored.TotalScore,
	})
	return stored, nil
}

// GetForApplication returns the stored result for an application.
func (s *Service) GetForApplication(ctx context.Context, applicationID int64) (Result, error) {
	return s.Repo.GetByApplicationID(ctx, applicationID)
}

// resolveApplication prefers the explicit application id; a report without
// one (or with a stale one) falls back to the applicant's most recent
// application by email.
func (s *Service) resolveApplication(ctx context.Context, payload CallbackPayload) (applications.Application, error) {
	if payload.ApplicationID != nil && *payload.ApplicationID > 0 {
		application, err := s.Apps.GetByID(ctx, *payload.ApplicationID)
		if err == nil {
			return application, nil
		}
		if !errors.Is(err, applications.ErrNotFound) {
			return applications.Application{}, err
		}
	}

	email := strings.ToLower(strings.TrimSpace(payload.ApplicantEmail))
	if email == "" {
		return applications.Application{}, ErrApplicationNotFound
	}
	application, err := s.Apps.LatestByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, applications.ErrNotFound) {
			return applications.Application{}, ErrApplicationNotFound
		}
		return applications.Application{}, err
	}
	return application, nil
}

func (s *Service) itemMaxScores(ctx context.Context, postingID int64) map[int64]int {
	posting, err := s.Postings.GetByID(ctx, postingID)
	if err != nil {
		return nil
	}
	maxScores := make(map[int64]int, len(posting.ResumeItems))
	for _, item := range posting.ResumeItems {
		if item.MaxScore != nil {
			maxScores[item.ID] = *item.MaxScore
		} else {
			maxScores[item.ID] = s.DefaultItemMaxScore
		}
	}
	return maxScores
}
