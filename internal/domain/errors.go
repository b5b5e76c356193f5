package domain

import (
	"errors"
	"strings"
)

var (
	// ErrValidation indicates missing or blank start-session fields.
	// It never reaches the store.
	ErrValidation = errors.New("validation failed")

	// ErrConflict indicates the user already has an open session.
	// Callers should reconcile instead of retrying the start.
	ErrConflict = errors.New("open session already exists")

	// ErrNotFound indicates the session id is unknown or already closed.
	ErrNotFound = errors.New("session not found")

	// ErrPersistence wraps any other store failure.
	ErrPersistence = errors.New("session store failure")
)

// ValidationError lists the fields that failed validation.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid or missing fields: " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
