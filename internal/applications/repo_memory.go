package applications

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryRepo is an in-memory Repo used in dev mode and tests.
type MemoryRepo struct {
	mu           sync.RWMutex
	applicants   map[int64]Applicant
	applications map[int64]Application
	nextID       int64
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		applicants:   make(map[int64]Applicant),
		applications: make(map[int64]Application),
		nextID:       1,
	}
}

func (r *MemoryRepo) allocID() int64 {
	id := r.nextID
	r.nextID++
	return id
}

func (r *MemoryRepo) CreateSubmission(ctx context.Context, applicant Applicant, application Application) (Application, error) {
	if err := ctx.Err(); err != nil {
		return Application{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	email := strings.ToLower(applicant.Email)
	found := false
	for _, existing := range r.applicants {
		if strings.ToLower(existing.Email) == email {
			existing.Name = applicant.Name
			r.applicants[existing.ID] = existing
			applicant = existing
			found = true
			break
		}
	}
	if !found {
		applicant.ID = r.allocID()
		applicant.CreatedAt = time.Now().UTC()
		r.applicants[applicant.ID] = applicant
	}

	application.ID = r.allocID()
	application.ApplicantID = applicant.ID
	application.Applicant = applicant
	application.CreatedAt = time.Now().UTC()
	for i := range application.ResumeAnswers {
		application.ResumeAnswers[i].ID = r.allocID()
	}
	for i := range application.EssayAnswers {
		application.EssayAnswers[i].ID = r.allocID()
	}
	r.applications[application.ID] = application
	return application, nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, applicationID int64) (Application, error) {
	if err := ctx.Err(); err != nil {
		return Application{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	application, ok := r.applications[applicationID]
	if !ok {
		return Application{}, ErrNotFound
	}
	return application, nil
}

func (r *MemoryRepo) List(ctx context.Context) ([]Application, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Application, 0, len(r.applications))
	for _, application := range r.applications {
		out = append(out, application)
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *MemoryRepo) ListByPosting(ctx context.Context, postingID int64) ([]Application, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Application
	for _, application := range r.applications {
		if application.JobPostingID == postingID {
			out = append(out, application)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *MemoryRepo) LatestByEmail(ctx context.Context, email string) (Application, error) {
	if err := ctx.Err(); err != nil {
		return Application{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	normalized := strings.ToLower(email)
	var matches []Application
	for _, application := range r.applications {
		if strings.ToLower(application.Applicant.Email) == normalized {
			matches = append(matches, application)
		}
	}
	if len(matches) == 0 {
		return Application{}, ErrNotFound
	}
	sortNewestFirst(matches)
	return matches[0], nil
}

func (r *MemoryRepo) UpdateStatus(ctx context.Context, applicationID int64, status Status) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	application, ok := r.applications[applicationID]
	if !ok {
		return ErrNotFound
	}
	application.Status = status
	r.applications[applicationID] = application
	return nil
}

func (r *MemoryRepo) CountByStatus(ctx context.Context) (map[Status]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	counts := make(map[Status]int)
	for _, application := range r.applications {
		counts[application.Status]++
	}
	return counts, nil
}

func sortNewestFirst(apps []Application) {
	sort.Slice(apps, func(i, j int) bool {
		if apps[i].CreatedAt.Equal(apps[j].CreatedAt) {
			return apps[i].ID > apps[j].ID
		}
		return apps[i].CreatedAt.After(apps[j].CreatedAt)
	})
}
