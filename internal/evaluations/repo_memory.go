package evaluations

import (
	"context"
	"errors"
	"sync"
	"time"

	"recruit-backend/internal/applications"
)

// MemoryRepo is an in-memory Repo used in dev mode and tests. Application
// status transitions go through the applications repo it wraps.
type MemoryRepo struct {
	mu      sync.Mutex
	Apps    applications.Repo
	results map[int64]Result
	nextID  int64
}

func NewMemoryRepo(apps applications.Repo) *MemoryRepo {
	return &MemoryRepo{Apps: apps, results: make(map[int64]Result), nextID: 1}
}

func (r *MemoryRepo) Upsert(ctx context.Context, result Result) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	application, err := r.Apps.GetByID(ctx, result.ApplicationID)
	if err != nil {
		if errors.Is(err, applications.ErrNotFound) {
			return Result{}, ErrApplicationNotFound
		}
		return Result{}, err
	}
	if application.Status.Terminal() {
		return Result{}, ErrTerminalStatus
	}
	if err := r.Apps.UpdateStatus(ctx, result.ApplicationID, applications.StatusInProgress); err != nil {
		return Result{}, err
	}

	now := time.Now().UTC()
	existing, ok := r.results[result.ApplicationID]
	if ok {
		result.ID = existing.ID
		result.HRComment = existing.HRComment
		result.CreatedAt = existing.CreatedAt
	} else {
		result.ID = r.nextID
		r.nextID++
		result.CreatedAt = now
	}
	result.EvaluationCompletedAt = &now
	r.results[result.ApplicationID] = result
	return result, nil
}

func (r *MemoryRepo) GetByApplicationID(ctx context.Context, applicationID int64) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	result, ok := r.results[applicationID]
	if !ok {
		return Result{}, ErrNotFound
	}
	return result, nil
}

func (r *MemoryRepo) SetHRComment(ctx context.Context, applicationID int64, comment string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	result, ok := r.results[applicationID]
	if !ok {
		return applications.ErrEvaluationMissing
	}
	result.HRComment = comment
	r.results[applicationID] = result
	return nil
}

func (r *MemoryRepo) TotalScoresByPosting(ctx context.Context, postingID int64) (map[int64]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	scores := make(map[int64]int)
	for _, result := range r.results {
		if result.JobPostingID == postingID {
			scores[result.ApplicationID] = result.TotalScore
		}
	}
	return scores, nil
}
