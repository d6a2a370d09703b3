package core

import "errors"

// The error taxonomy. Every error that leaves a command or query handler wraps one of these,
// so the transport layer can map it with errors.Is.
var (
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrSelfSwap          = errors.New("cannot swap with yourself")
	ErrNotOwner          = errors.New("offered book is not owned by the proposer")
	ErrBookUnavailable   = errors.New("book is not available")
	ErrValidation        = errors.New("validation failed")
	ErrEmailTaken        = errors.New("email is already registered")
	ErrUnauthenticated   = errors.New("unauthenticated")
	ErrStorage           = errors.New("storage error")
)
