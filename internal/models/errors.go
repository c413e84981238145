package models

import "errors"

// Error taxonomy shared across the analytics core and its callers.
//
// Bulk operations (load-all, validate-all) collect ErrMalformed/ErrValidation
// per item and continue; single-item operations wrap them and fail fast.
// ErrNotFound is always fatal to the requesting operation — a failed fuzzy
// name match is NOT an error (match.BestIndex returns -1 instead).
var (
	// ErrMalformed marks an unparseable session or goal document.
	ErrMalformed = errors.New("malformed input")

	// ErrValidation marks a parseable document that violates the record
	// contract (missing field, bad time format, filename/date mismatch).
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks an absent session date, an exercise missing from
	// plan or history, or an empty result set.
	ErrNotFound = errors.New("not found")
)
