package errors

import "fmt"

// NotFoundError reports a resource that does not exist for the requesting
// user. For bulk operations IDs lists every offending identifier.
type NotFoundError struct {
	Resource string
	IDs      []uint
}

func NewNotFoundError(resource string, ids ...uint) *NotFoundError {
	return &NotFoundError{Resource: resource, IDs: ids}
}

func (e *NotFoundError) Error() string {
	if len(e.IDs) == 0 {
		return e.Resource + " not found"
	}
	return fmt.Sprintf("%s not found: %v", e.Resource, e.IDs)
}
