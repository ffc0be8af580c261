package store

import (
	"fmt"
	"net/http"
)

// Error is a persistence error with the HTTP status it would map to.
type Error struct {
	Code    int    // HTTP status code
	Message string // User-facing message
	Err     error  // Underlying error (optional)
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// HTTPCode returns the HTTP status code associated with this error.
func (e *Error) HTTPCode() int { return e.Code }

// Sentinel errors. Constraint violations reported by the database are mapped
// onto these so that callers never match on engine text.
var (
	ErrNotFound = &Error{
		Code:    http.StatusNotFound,
		Message: "resource not found",
	}

	ErrAlreadyExists = &Error{
		Code:    http.StatusConflict,
		Message: "resource already exists",
	}

	// ErrTokenTaken is returned when a generated share token collides with an existing one.
	ErrTokenTaken = &Error{
		Code:    http.StatusConflict,
		Message: "share token already in use",
	}

	ErrInvalidReference = &Error{
		Code:    http.StatusNotFound,
		Message: "referenced resource does not exist",
	}

	ErrInvalidInput = &Error{
		Code:    http.StatusBadRequest,
		Message: "invalid input",
	}
)
