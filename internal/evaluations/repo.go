package evaluations

import "context"

// Repo defines persistence operations for evaluation results.
//
// Upsert runs the whole reconciliation write as one atomic unit: it locks
// the application, rejects terminal statuses, moves the application to
// IN_PROGRESS, and inserts or replaces the result keyed on application id.
// hr_comment and created_at survive a replace.
type Repo interface {
	Upsert(ctx context.Context, result Result) (Result, error)
	GetByApplicationID(ctx context.Context, applicationID int64) (Result, error)
	SetHRComment(ctx context.Context, applicationID int64, comment string) error
	TotalScoresByPosting(ctx context.Context, postingID int64) (map[int64]int, error)
}
