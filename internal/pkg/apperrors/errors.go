package apperrors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Common errors
var (
	// Resource errors
	ErrNotFound           = errors.New("resource not found")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrDiscussionNotFound = errors.New("discussion not found")
	ErrPostNotFound       = errors.New("post not found")
	ErrConflict           = errors.New("conflict")

	// Authorization errors
	ErrAccessDenied = errors.New("access denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Category errors
	ErrCategoryHasDiscussions = errors.New("category has discussions and cannot be deleted")

	// Configuration errors are fatal at startup; the process must not come up
	// with a broken status list or mailer setup.
	ErrConfiguration = errors.New("invalid configuration")
)

// ValidationError carries field-level validation messages. It is returned,
// never panicked, from create/update paths so callers can re-render forms.
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError creates an empty ValidationError ready to collect messages.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

// Add appends a message for a field.
func (e *ValidationError) Add(field, message string) *ValidationError {
	e.Fields[field] = append(e.Fields[field], message)
	return e
}

// HasErrors reports whether any field collected a message.
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// ErrOrNil returns the error itself when messages were collected, nil otherwise.
func (e *ValidationError) ErrOrNil() error {
	if e.HasErrors() {
		return e
	}
	return nil
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidationFailed.Error()
	}
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, strings.Join(e.Fields[f], "; ")))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Unwrap lets errors.Is(err, ErrValidationFailed) match any ValidationError.
func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// NewConfigurationError wraps ErrConfiguration with a message.
func NewConfigurationError(message string) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, message)
}

// NewAccessDeniedError wraps ErrAccessDenied with a message.
func NewAccessDeniedError(message string) error {
	return fmt.Errorf("%w: %s", ErrAccessDenied, message)
}
