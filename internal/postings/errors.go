package postings

import "errors"

var (
	ErrNotFound     = errors.New("job posting not found")
	ErrNoCompany    = errors.New("no registered company")
	ErrInvalidInput = errors.New("invalid input")
)
