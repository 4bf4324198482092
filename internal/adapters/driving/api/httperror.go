package api

import (
	"errors"
	"net/http"
)

// HTTPError is an error with an HTTP status and a user-facing message.
type HTTPError struct {
	cause   error
	Code    int
	Message string
	// Body replaces the default {"error": Message} response when set.
	Body any
}

// Error returns the user-facing message.
func (e *HTTPError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *HTTPError) Unwrap() error {
	return e.cause
}

// NewHTTPError creates an HTTPError with no underlying cause.
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{cause: errors.New(message), Code: code, Message: message}
}

// NewHTTPErrorWrap creates an HTTPError that wraps cause.
func NewHTTPErrorWrap(code int, message string, cause error) *HTTPError {
	return &HTTPError{cause: cause, Code: code, Message: message}
}

func errBadRequest(message string) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, message)
}

func errNotFoundWrap(message string, cause error) *HTTPError {
	return NewHTTPErrorWrap(http.StatusNotFound, message, cause)
}
