package applications

import "context"

// Repo defines persistence operations for applicants and applications.
//
// CreateSubmission upserts the applicant by email and persists the
// application with all answers as one atomic unit.
type Repo interface {
	CreateSubmission(ctx context.Context, applicant Applicant, application Application) (Application, error)
	GetByID(ctx context.Context, applicationID int64) (Application, error)
	List(ctx context.Context) ([]Application, error)
	ListByPosting(ctx context.Context, postingID int64) ([]Application, error)
	LatestByEmail(ctx context.Context, email string) (Application, error)
	UpdateStatus(ctx context.Context, applicationID int64, status Status) error
	CountByStatus(ctx context.Context) (map[Status]int, error)
}

// CommentStore persists HR comments onto stored evaluation results.
// Implementations return ErrEvaluationMissing when no result exists yet.
type CommentStore interface {
	SetHRComment(ctx context.Context, applicationID int64, comment string) error
}

// ScoreSource exposes evaluator total scores without this package owning
// the results table.
type ScoreSource interface {
	TotalScoresByPosting(ctx context.Context, postingID int64) (map[int64]int, error)
}
