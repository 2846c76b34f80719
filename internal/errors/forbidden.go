package errors

import "net/http"

var ErrGuestOnly = &Exception{
	Message:    "This action is restricted to guest users",
	StatusCode: http.StatusForbidden,
}
