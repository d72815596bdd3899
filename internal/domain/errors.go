package domain

import "errors"

// Sentinel errors for the ingestion and reaction paths. Services wrap these
// with fmt.Errorf("%w: ...") so handlers and the error middleware can match
// with errors.Is while keeping a human-readable message.
var (
	ErrValidation       = errors.New("validation failed")
	ErrNotFound         = errors.New("not found")
	ErrDuplicateContent = errors.New("duplicate content")
	ErrStorage          = errors.New("storage failure")
)
