package services

import "errors"

// Sentinel errors shared by all services. Handlers translate these into
// HTTP status codes at the boundary; anything unwrapped becomes a 500.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalid      = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
)
