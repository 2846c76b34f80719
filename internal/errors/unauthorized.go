package errors

import "net/http"

var ErrUnauthorized = &Exception{
	Message:    "Could not validate credentials",
	StatusCode: http.StatusUnauthorized,
}

var ErrBadCredentials = &Exception{
	Message:    "Incorrect username or password",
	StatusCode: http.StatusUnauthorized,
}
