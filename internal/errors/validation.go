package errors

import "fmt"

// ValidationError rejects a value that is outside the bounds a field allows.
type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}
