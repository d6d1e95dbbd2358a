package evaluations

import "errors"

var (
	// ErrApplicationNotFound is returned when neither the application id nor
	// the applicant email resolves to a stored application. Nothing is
	// created for an unresolvable report.
	ErrApplicationNotFound = errors.New("no application matches evaluation result")
	// ErrTerminalStatus is returned when the application already carries an
	// HR decision. The report is discarded, the decision stands.
	ErrTerminalStatus = errors.New("application already has a terminal decision")
	// ErrNotFound is returned when no evaluation result exists.
	ErrNotFound = errors.New("evaluation result not found")
)
