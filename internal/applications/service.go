package applications

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"recruit-backend/internal/evaluator"
	"recruit-backend/internal/postings"
)

// Service contains business logic for applications.
type Service struct {
	Repo      Repo
	Postings  postings.Repo
	Comments  CommentStore
	Scores    ScoreSource
	Evaluator evaluator.Notifier
}

// SubmitInput is a public application submission.
type SubmitInput struct {
	ApplicantName  string
	ApplicantEmail string
	ResumeAnswers  []ResumeAnswer
	EssayAnswers   []EssayAnswer
}

// Submit stores an application against a posting and sends it to the
// evaluator in the background. The applicant is matched by email, so a
// returning applicant keeps one identity across postings.
func (s *Service) Submit(ctx context.Context, postingID int64, input SubmitInput) (Application, error) {
	if strings.TrimSpace(input.ApplicantName) == "" {
		return Application{}, fmt.Errorf("%w: applicant name is required", ErrInvalidInput)
	}
	email := strings.ToLower(strings.TrimSpace(input.ApplicantEmail))
	if email == "" || !strings.Contains(email, "@") {
		return Application{}, fmt.Errorf("%w: a valid applicant email is required", ErrInvalidInput)
	}

	posting, err := s.Postings.GetByID(ctx, postingID)
	if err != nil {
		if errors.Is(err, postings.ErrNotFound) {
			return Application{}, ErrPostingNotFound
		}
		return Application{}, err
	}

	itemNames := make(map[int64]string, len(posting.ResumeItems))
	for _, item := range posting.ResumeItems {
		itemNames[item.ID] = item.Name
	}
	questionContents := make(map[int64]string, len(posting.CoverLetterQuestions))
	for _, question := range posting.CoverLetterQuestions {
		questionContents[question.ID] = question.Content
	}
	for _, answer := range input.ResumeAnswers {
		if _, ok := itemNames[answer.ResumeItemID]; !ok {
			return Application{}, fmt.Errorf("%w: resume item %d does not belong to posting %d", ErrInvalidInput, answer.ResumeItemID, postingID)
		}
	}
	for _, answer := range input.EssayAnswers {
		if _, ok := questionContents[answer.CoverLetterQuestionID]; !ok {
			return Application{}, fmt.Errorf("%w: cover letter question %d does not belong to posting %d", ErrInvalidInput, answer.CoverLetterQuestionID, postingID)
		}
	}

	created, err := s.Repo.CreateSubmission(ctx,
		Applicant{Name: strings.TrimSpace(input.ApplicantName), Email: email},
		Application{
			JobPostingID:  postingID,
			Status:        StatusBeforeEvaluation,
			ResumeAnswers: input.ResumeAnswers,
			EssayAnswers:  input.EssayAnswers,
		},
	)
	if err != nil {
		return Application{}, err
	}

	if s.Evaluator != nil {
		s.Evaluator.NotifySubmission(buildSubmissionPayload(created, itemNames, questionContents))
	}
	return created, nil
}

// Decide records an HR decision. Only terminal statuses are accepted; an
// optional comment is stored onto the evaluation result, which must already
// exist for the comment to land.
func (s *Service) Decide(ctx context.Context, applicationID int64, rawStatus, comment string) (Application, error) {
	status, err := ParseStatus(rawStatus)
	if err != nil {
		return Application{}, fmt.Errorf("%w: %v", ErrInvalidStatusValue, err)
	}
	if !status.Terminal() {
		return Application{}, fmt.Errorf("%w: %s", ErrInvalidStatusValue, status)
	}

	if err := s.Repo.UpdateStatus(ctx, applicationID, status); err != nil {
		return Application{}, err
	}
	if strings.TrimSpace(comment) != "" {
		if err := s.Comments.SetHRComment(ctx, applicationID, comment); err != nil {
			return Application{}, err
		}
	}
	return s.Repo.GetByID(ctx, applicationID)
}

func (s *Service) Get(ctx context.Context, applicationID int64) (Application, error) {
	return s.Repo.GetByID(ctx, applicationID)
}

func (s *Service) List(ctx context.Context) ([]Application, error) {
	return s.Repo.List(ctx)
}

func (s *Service) ListByPosting(ctx context.Context, postingID int64) ([]Application, error) {
	return s.Repo.ListByPosting(ctx, postingID)
}

// Statistics returns per-status counts with every status present, zero or not.
func (s *Service) Statistics(ctx context.Context) (Statistics, error) {
	counts, err := s.Repo.CountByStatus(ctx)
	if err != nil {
		return Statistics{}, err
	}
	stats := Statistics{ByStatus: make(map[Status]int, len(statuses))}
	for status := range statuses {
		stats.ByStatus[status] = counts[status]
		stats.Total += counts[status]
	}
	return stats, nil
}

// SummariesForPosting satisfies the posting detail view's application listing.
func (s *Service) SummariesForPosting(ctx context.Context, postingID int64) ([]postings.ApplicationSummary, error) {
	apps, err := s.Repo.ListByPosting(ctx, postingID)
	if err != nil {
		return nil, err
	}
	scores, err := s.Scores.TotalScoresByPosting(ctx, postingID)
	if err != nil {
		return nil, err
	}

	summaries := make([]postings.ApplicationSummary, 0, len(apps))
	for _, app := range apps {
		summary := postings.ApplicationSummary{
			ID:             app.ID,
			ApplicantName:  app.Applicant.Name,
			ApplicantEmail: app.Applicant.Email,
			Status:         string(app.Status),
			SubmittedAt:    app.CreatedAt,
		}
		if score, ok := scores[app.ID]; ok {
			summary.TotalScore = &score
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func buildSubmissionPayload(app Application, itemNames, questionContents map[int64]string) evaluator.SubmissionPayload {
	payload := evaluator.SubmissionPayload{
		ApplicantID:                app.ApplicantID,
		ApplicantName:              app.Applicant.Name,
		ApplicantEmail:             app.Applicant.Email,
		ApplicationID:              app.ID,
		JobPostingID:               app.JobPostingID,
		ResumeItemAnswers:          []evaluator.SubmissionResumeAnswer{},
		CoverLetterQuestionAnswers: []evaluator.SubmissionEssayAnswer{},
	}
	for _, answer := range app.ResumeAnswers {
		payload.ResumeItemAnswers = append(payload.ResumeItemAnswers, evaluator.SubmissionResumeAnswer{
			ResumeItemID:   answer.ResumeItemID,
			ResumeItemName: itemNames[answer.ResumeItemID],
			ResumeContent:  answer.ResumeContent,
		})
	}
	for _, answer := range app.EssayAnswers {
		payload.CoverLetterQuestionAnswers = append(payload.CoverLetterQuestionAnswers, evaluator.SubmissionEssayAnswer{
			CoverLetterQuestionID: answer.CoverLetterQuestionID,
			QuestionContent:       questionContents[answer.CoverLetterQuestionID],
			AnswerContent:         answer.AnswerContent,
		})
	}
	return payload
}
