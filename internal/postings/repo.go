package postings

import (
	"context"
	"time"
)

// Repo defines persistence operations for job postings.
//
// Create persists the posting and all nested children as one atomic unit.
// Update rewrites posting-level fields only: child collections are immutable
// after creation because submitted answers reference them.
type Repo interface {
	Create(ctx context.Context, posting JobPosting) (JobPosting, error)
	Update(ctx context.Context, posting JobPosting) (JobPosting, error)
	GetByID(ctx context.Context, postingID int64) (JobPosting, error)
	List(ctx context.Context) ([]JobPosting, error)
	UpdateStatus(ctx context.Context, postingID int64, status Status, now time.Time) error
	SetPublicLinkURL(ctx context.Context, postingID int64, url string) error
}
