package raqeeb

import (
	"errors"
	"fmt"
)

// Error codes shared across every service. The HTTP layer translates them
// to status codes; services return them directly.
const (
	ECONFLICT     = "conflict"
	EINTERNAL     = "internal"
	EINVALID      = "invalid"
	ENOTFOUND     = "not_found"
	EUNAUTHORIZED = "unauthorized"
	EFORBIDDEN    = "forbidden"
)

// Error is the application error type. Message is safe to show to API
// clients; Err carries the underlying cause for logs only.
type Error struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
	Err     error             `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf builds an *Error with a formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// NotFound reports a missing entity.
func NotFound(format string, args ...any) *Error {
	return Errorf(ENOTFOUND, format, args...)
}

// Invalid reports rejected input or an illegal state transition.
func Invalid(format string, args ...any) *Error {
	return Errorf(EINVALID, format, args...)
}

// Unauthorized reports a missing or expired session.
func Unauthorized(format string, args ...any) *Error {
	return Errorf(EUNAUTHORIZED, format, args...)
}

// Forbidden reports an authenticated caller lacking the required role or
// ownership.
func Forbidden(format string, args ...any) *Error {
	return Errorf(EFORBIDDEN, format, args...)
}

// Conflict reports a uniqueness or lifecycle conflict, such as a second
// statement for the same month.
func Conflict(format string, args ...any) *Error {
	return Errorf(ECONFLICT, format, args...)
}

// Internal wraps an unexpected failure. The message is what clients see;
// err is preserved for logging.
func Internal(message string, err error) *Error {
	return &Error{Code: EINTERNAL, Message: message, Err: err}
}

// WrapError attaches a code and client-safe message to an underlying error.
func WrapError(code string, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// ErrorWithFields builds an EINVALID error carrying per-field messages,
// used by the request validator.
func ErrorWithFields(fields map[string]string) *Error {
	return &Error{Code: EINVALID, Message: "Validation failed", Fields: fields}
}

// ErrorCode returns the code of err, EINTERNAL for non-application errors,
// and "" for nil.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage returns the client-safe message of err. Non-application
// errors get a generic one so internals never leak.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "An internal error occurred."
}

// ErrorFields returns the per-field validation messages of err, if any.
func ErrorFields(err error) map[string]string {
	var e *Error
	if errors.As(err, &e) {
		return e.Fields
	}
	return nil
}

// IsErrorCode reports whether err carries the given code.
func IsErrorCode(err error, code string) bool {
	return ErrorCode(err) == code
}
