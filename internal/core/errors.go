package core

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when an update, delete or link names an id that is
	// not in the relevant collection. The book is left unchanged.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateID is returned when appending a record whose id already exists.
	ErrDuplicateID = errors.New("duplicate id")

	// ErrInvalidInput is the sentinel every ValidationError matches.
	ErrInvalidInput = errors.New("invalid input")
)

// ValidationError describes one rejected input field.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s (value: %v)", e.Field, e.Message, e.Value)
}

// Is lets errors.Is(err, ErrInvalidInput) match any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

func newValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
}
