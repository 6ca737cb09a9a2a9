package domain

import "errors"

var (
	// ErrValidation marks caller input that failed validation.
	ErrValidation = errors.New("validation error")
	// ErrNotFound marks a missing persistent record.
	ErrNotFound = errors.New("not found")
)
