package companies

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, company Company) (Company, error) {
	const query = `
INSERT INTO companies (name, industry, description, created_at)
VALUES ($1, $2, $3, now())
RETURNING id, created_at`
	err := r.DB.QueryRowContext(ctx, query,
		company.Name,
		nullableString(company.Industry),
		nullableString(company.Description),
	).Scan(&company.ID, &company.CreatedAt)
	if err != nil {
		return Company{}, err
	}
	return company, nil
}

func (r *PGRepo) GetByID(ctx context.Context, companyID int64) (Company, error) {
	const query = `
SELECT id, name, industry, description, created_at
FROM companies
WHERE id = $1
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, companyID))
}

func (r *PGRepo) GetFirst(ctx context.Context) (Company, error) {
	const query = `
SELECT id, name, industry, description, created_at
FROM companies
ORDER BY id
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query))
}

func (r *PGRepo) List(ctx context.Context) ([]Company, error) {
	const query = `
SELECT id, name, industry, description, created_at
FROM companies
ORDER BY id`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Company
	for rows.Next() {
		var company Company
		var industry, description sql.NullString
		if err := rows.Scan(&company.ID, &company.Name, &industry, &description, &company.CreatedAt); err != nil {
			return nil, err
		}
		company.Industry = industry.String
		company.Description = description.String
		out = append(out, company)
	}
	return out, rows.Err()
}

func (r *PGRepo) scanOne(row *sql.Row) (Company, error) {
	var company Company
	var industry, description sql.NullString
	err := row.Scan(&company.ID, &company.Name, &industry, &description, &company.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Company{}, ErrNotFound
		}
		return Company{}, err
	}
	company.Industry = industry.String
	company.Description = description.String
	return company, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
