package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Common application errors
var (
	// ErrNotFound is returned when a record or resource does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrUnauthorized is returned for authentication failures (missing or invalid token).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned when the caller lacks the privilege for an action.
	ErrForbidden = errors.New("forbidden")

	// ErrValidation is returned for invalid input data.
	ErrValidation = errors.New("validation failed")

	// ErrConflict is returned for state conflicts (e.g. duplicate unique value).
	ErrConflict = errors.New("resource state conflict")
)

// FieldErrors carries validation messages keyed by field name. Handlers render
// it as the 400 response body, one message list per offending field.
type FieldErrors map[string][]string

// NewFieldError builds a FieldErrors with a single message for one field.
func NewFieldError(field, message string) FieldErrors {
	return FieldErrors{field: {message}}
}

// Add appends a message for the given field.
func (e FieldErrors) Add(field, message string) {
	e[field] = append(e[field], message)
}

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fmt.Sprintf("%v: %s", ErrValidation, strings.Join(fields, ", "))
}

// Unwrap makes errors.Is(err, ErrValidation) hold for any FieldErrors.
func (e FieldErrors) Unwrap() error {
	return ErrValidation
}
