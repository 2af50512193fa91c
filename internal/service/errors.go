package service

import "errors"

// Sentinel error kinds for the lookup services. Callers classify with
// errors.Is; anything else is an internal failure.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)
