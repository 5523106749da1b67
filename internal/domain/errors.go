package domain

import "errors"

var (
	// ErrInvalidID indicates a todo ID that is not a 32-bit integer.
	ErrInvalidID = errors.New("invalid ID format")
)
