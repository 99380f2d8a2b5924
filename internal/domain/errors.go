package domain

import "errors"

// Sentinel errors for the domain layer. Store and service code wraps these
// with fmt.Errorf("pkg.Fn: %w", err) so the API edge can map them to
// status codes with errors.Is.
var (
	ErrNotFound     = errors.New("domain: not found")
	ErrConflict     = errors.New("domain: conflict")
	ErrUnauthorized = errors.New("domain: unauthorized")
	ErrForbidden    = errors.New("domain: forbidden")
)
