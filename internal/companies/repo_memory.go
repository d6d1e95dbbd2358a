package companies

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory Repo used in dev mode and tests.
type MemoryRepo struct {
	mu        sync.RWMutex
	companies map[int64]Company
	nextID    int64
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{companies: make(map[int64]Company), nextID: 1}
}

func (r *MemoryRepo) Create(ctx context.Context, company Company) (Company, error) {
	if err := ctx.Err(); err != nil {
		return Company{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	company.ID = r.nextID
	r.nextID++
	company.CreatedAt = time.Now().UTC()
	r.companies[company.ID] = company
	return company, nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, companyID int64) (Company, error) {
	if err := ctx.Err(); err != nil {
		return Company{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	company, ok := r.companies[companyID]
	if !ok {
		return Company{}, ErrNotFound
	}
	return company, nil
}

func (r *MemoryRepo) GetFirst(ctx context.Context) (Company, error) {
	if err := ctx.Err(); err != nil {
		return Company{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.companies) == 0 {
		return Company{}, ErrNotFound
	}
	ids := make([]int64, 0, len(r.companies))
	for id := range r.companies {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return r.companies[ids[0]], nil
}

func (r *MemoryRepo) List(ctx context.Context) ([]Company, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Company, 0, len(r.companies))
	for _, company := range r.companies {
		out = append(out, company)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
