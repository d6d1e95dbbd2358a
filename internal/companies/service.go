package companies

import (
	"context"
	"errors"
	"strings"
)

// Service contains business logic for companies.
type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

func (s *Service) Create(ctx context.Context, company Company) (Company, error) {
	if strings.TrimSpace(company.Name) == "" {
		return Company{}, errors.New("company name is required")
	}
	return s.Repo.Create(ctx, company)
}

func (s *Service) GetByID(ctx context.Context, companyID int64) (Company, error) {
	return s.Repo.GetByID(ctx, companyID)
}

func (s *Service) GetFirst(ctx context.Context) (Company, error) {
	return s.Repo.GetFirst(ctx)
}

func (s *Service) List(ctx context.Context) ([]Company, error) {
	return s.Repo.List(ctx)
}
