package errors

// ConflictError is raised by the persistence layer when a write collides with
// existing data, such as a duplicate registration.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}
