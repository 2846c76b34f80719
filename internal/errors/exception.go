package errors

import (
	"errors"
	"net/http"
)

// Exception is an error that already knows how it should surface over HTTP.
type Exception struct {
	Message    string
	StatusCode int
}

func (e *Exception) Error() string {
	return e.Message
}

func StatusCode(err error) int {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusUnprocessableEntity
	}

	// Unknown ids inside an otherwise valid request are a problem with the
	// request body, not a missing route resource.
	var notFoundErr *NotFoundError
	if errors.As(err, &notFoundErr) {
		if len(notFoundErr.IDs) > 0 {
			return http.StatusUnprocessableEntity
		}
		return http.StatusNotFound
	}

	var conflictErr *ConflictError
	if errors.As(err, &conflictErr) {
		return http.StatusConflict
	}

	return http.StatusInternalServerError
}

// Type is the short machine-readable category reported next to an error
// message in API responses.
func Type(err error) string {
	var validationErr *ValidationError
	var notFoundErr *NotFoundError
	var conflictErr *ConflictError

	switch {
	case errors.As(err, &validationErr):
		return "value_error"
	case errors.As(err, &notFoundErr):
		return "not_found"
	case errors.As(err, &conflictErr):
		return "conflict"
	default:
		return "custom"
	}
}
