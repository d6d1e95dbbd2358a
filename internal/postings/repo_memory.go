package postings

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory Repo used in dev mode and tests.
type MemoryRepo struct {
	mu       sync.RWMutex
	postings map[int64]JobPosting
	nextID   int64
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{postings: make(map[int64]JobPosting), nextID: 1}
}

func (r *MemoryRepo) Create(ctx context.Context, posting JobPosting) (JobPosting, error) {
	if err := ctx.Err(); err != nil {
		return JobPosting{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	posting.ID = r.nextID
	r.nextID++
	posting.CreatedAt = now
	posting.UpdatedAt = now
	for i := range posting.ResumeItems {
		posting.ResumeItems[i].ID = r.nextID
		r.nextID++
		for j := range posting.ResumeItems[i].Criteria {
			posting.ResumeItems[i].Criteria[j].ID = r.nextID
			r.nextID++
		}
	}
	for i := range posting.CoverLetterQuestions {
		posting.CoverLetterQuestions[i].ID = r.nextID
		r.nextID++
		for j := range posting.CoverLetterQuestions[i].Criteria {
			posting.CoverLetterQuestions[i].Criteria[j].ID = r.nextID
			r.nextID++
			for k := range posting.CoverLetterQuestions[i].Criteria[j].Details {
				posting.CoverLetterQuestions[i].Criteria[j].Details[k].ID = r.nextID
				r.nextID++
			}
		}
	}
	r.postings[posting.ID] = posting
	return posting, nil
}

func (r *MemoryRepo) Update(ctx context.Context, posting JobPosting) (JobPosting, error) {
	if err := ctx.Err(); err != nil {
		return JobPosting{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.postings[posting.ID]
	if !ok {
		return JobPosting{}, ErrNotFound
	}
	// Children and creation metadata are immutable after create.
	posting.CompanyID = existing.CompanyID
	posting.ResumeItems = existing.ResumeItems
	posting.CoverLetterQuestions = existing.CoverLetterQuestions
	posting.PublicLinkURL = existing.PublicLinkURL
	posting.CreatedAt = existing.CreatedAt
	posting.UpdatedAt = time.Now().UTC()
	r.postings[posting.ID] = posting
	return posting, nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, postingID int64) (JobPosting, error) {
	if err := ctx.Err(); err != nil {
		return JobPosting{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	posting, ok := r.postings[postingID]
	if !ok {
		return JobPosting{}, ErrNotFound
	}
	return posting, nil
}

func (r *MemoryRepo) List(ctx context.Context) ([]JobPosting, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]JobPosting, 0, len(r.postings))
	for _, posting := range r.postings {
		out = append(out, posting)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *MemoryRepo) UpdateStatus(ctx context.Context, postingID int64, status Status, now time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	posting, ok := r.postings[postingID]
	if !ok {
		return ErrNotFound
	}
	posting.Status = status
	posting.UpdatedAt = now
	r.postings[postingID] = posting
	return nil
}

func (r *MemoryRepo) SetPublicLinkURL(ctx context.Context, postingID int64, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	posting, ok := r.postings[postingID]
	if !ok {
		return ErrNotFound
	}
	posting.PublicLinkURL = url
	r.postings[postingID] = posting
	return nil
}
