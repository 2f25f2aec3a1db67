package models

import "errors"

// Sentinel errors for the service layer. Handlers map these onto HTTP
// status codes; anything else is treated as a persistence failure.
var (
	// ErrNotFound: complaint, message, or actor absent.
	ErrNotFound = errors.New("not found")

	// ErrConflict: duplicate feedback, username, email, or student number.
	ErrConflict = errors.New("already exists")

	// ErrFeedbackNotAllowed: feedback for a complaint that is not Solved.
	ErrFeedbackNotAllowed = errors.New("feedback only allowed for solved complaints")

	// ErrNoAdmin: no admin account exists to receive student messages.
	ErrNoAdmin = errors.New("no administrator account available")

	// ErrForbidden: actor does not own the record it is reading.
	ErrForbidden = errors.New("access denied")
)
