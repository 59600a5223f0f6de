// Package server holds error types shared between the CLI, the contractor
// and the REST layer, so a caller can distinguish a programmer/runtime
// failure from a well-formed HTTP error response.
package server

import "fmt"

type ErrorCode string

const (
	ErrInternalServerError ErrorCode = "INTERNAL_SERVER_ERROR"
	ErrNotFound            ErrorCode = "NOT_FOUND"
	ErrBadInput            ErrorCode = "BAD_INPUT"
)

// Error wraps a lower-level error with an application error code, so
// callers across package boundaries can react to the code without
// depending on error string matching.
type Error struct {
	Code    ErrorCode
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause == nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// WrapErrorf wraps err with an application error code and a formatted
// message, keeping err reachable via errors.Unwrap/errors.Is.
func WrapErrorf(err error, code ErrorCode, format string, args ...any) error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		cause:   err,
	}
}
