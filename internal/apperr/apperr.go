// Package apperr carries domain failures across the handler pipelines.
// A failure knows the envelope code it renders with, the message shown to
// the caller, and an optional data payload (validation details, the
// missing id). Anything that is not an *Error collapses to a generic
// per-operation failure at the pipeline boundary.
package apperr

import (
	"fmt"
	"net/http"
)

type Error struct {
	Code    int
	Message string
	Data    any
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// Validation reports schema violations, keyed by field with every
// violation message for that field.
func Validation(fields map[string][]string) *Error {
	return &Error{
		Code:    http.StatusBadRequest,
		Message: "required fields are missing",
		Data:    map[string]any{"validation": fields},
	}
}

// NotFound reports a referenced list or task that does not exist.
func NotFound(id string) *Error {
	return &Error{
		Code:    http.StatusBadRequest,
		Message: "Item does not exist",
		Data:    map[string]any{"id": id},
	}
}

// BadRequest reports a structurally valid request that violates an
// operation rule, distinct from schema validation.
func BadRequest(message string) *Error {
	return &Error{Code: http.StatusBadRequest, Message: message, Data: map[string]any{}}
}

// Unavailable wraps a failed store call. The message is for logs only;
// on the wire the operation's own failure message renders instead.
func Unavailable(cause error) *Error {
	return &Error{
		Code:    http.StatusInternalServerError,
		Message: "storage unavailable",
		Data:    map[string]any{},
		cause:   cause,
	}
}
