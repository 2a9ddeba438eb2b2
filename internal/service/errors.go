package service

import "errors"

// ErrValidation marks caller-supplied data that violates a field constraint.
// It is raised before any write reaches storage, so callers can surface the
// message at the form level.
var ErrValidation = errors.New("validation failed")

// ErrNotFound marks an operation that requires an existing record.
var ErrNotFound = errors.New("not found")
