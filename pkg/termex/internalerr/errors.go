package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrNoInput       = errors.New("no input data")
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrInvariant     = errors.New("internal invariant violated")
	ErrNotFound      = errors.New("not found")
)
