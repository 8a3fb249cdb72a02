package shared

import (
	"fmt"
	"strings"
)

// FieldError describes a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates field-level failures for one record so a
// caller can report all of them at once instead of failing on the first.
type ValidationErrors []FieldError

// Error implements the error interface
func (e ValidationErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Error())
	}
	return strings.Join(parts, "; ")
}

// Add appends a field error.
func (e *ValidationErrors) Add(field, message string) {
	*e = append(*e, FieldError{Field: field, Message: message})
}

// HasErrors reports whether any field failed validation.
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// RequireMaxLen adds an error when value exceeds max characters.
func (e *ValidationErrors) RequireMaxLen(field, value string, max int) {
	if len(value) > max {
		e.Add(field, fmt.Sprintf("must be at most %d characters", max))
	}
}

// RequireNonBlank adds an error when value is empty or whitespace.
func (e *ValidationErrors) RequireNonBlank(field, value string) {
	if strings.TrimSpace(value) == "" {
		e.Add(field, "is required")
	}
}
