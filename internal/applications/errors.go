package applications

import "errors"

var (
	// ErrNotFound is returned when an application does not exist.
	ErrNotFound = errors.New("application not found")
	// ErrPostingNotFound is returned when the target posting does not exist.
	ErrPostingNotFound = errors.New("job posting not found")
	// ErrInvalidInput flags a submission that fails basic validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidStatusValue flags an HR decision with a non-terminal status.
	ErrInvalidStatusValue = errors.New("status must be a terminal decision")
	// ErrEvaluationMissing is returned when an HR comment targets an
	// application that has no evaluation result yet.
	ErrEvaluationMissing = errors.New("no evaluation result for application")
)
