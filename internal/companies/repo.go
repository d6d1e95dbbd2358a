package companies

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("company not found")

// Repo defines persistence operations for companies.
type Repo interface {
	Create(ctx context.Context, company Company) (Company, error)
	GetByID(ctx context.Context, companyID int64) (Company, error)
	// GetFirst returns the earliest registered company. The deployment is
	// single-tenant: postings attach to this company.
	GetFirst(ctx context.Context) (Company, error)
	List(ctx context.Context) ([]Company, error)
}
