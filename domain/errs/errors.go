// Package errs defines the sentinel errors shared across InvestMatch layers.
// Wrap them with fmt.Errorf("...: %w", ...) and match with errors.Is.
package errs

import "errors"

// Domain errors.
var (
	// ErrValidation indicates missing or invalid input.
	ErrValidation = errors.New("validation error")

	// ErrNotFound indicates a requested record does not exist or is not
	// visible to the caller.
	ErrNotFound = errors.New("not found")

	// ErrUnauthenticated indicates the caller has no valid session.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrForbidden indicates the caller's role may not perform the action.
	ErrForbidden = errors.New("forbidden")

	// ErrSignatureMismatch indicates a payment signature failed verification.
	ErrSignatureMismatch = errors.New("signature mismatch")

	// ErrUnavailable indicates an optional collaborator is not configured.
	ErrUnavailable = errors.New("unavailable")
)
