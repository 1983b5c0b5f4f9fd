package http

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nasserq/raqeeb"
)

// errorStatusCode maps domain error codes to HTTP status codes.
func errorStatusCode(code string) int {
	switch code {
	case raqeeb.ENOTFOUND:
		return http.StatusNotFound
	case raqeeb.EINVALID:
		return http.StatusBadRequest
	case raqeeb.EUNAUTHORIZED:
		return http.StatusUnauthorized
	case raqeeb.EFORBIDDEN:
		return http.StatusForbidden
	case raqeeb.ECONFLICT:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// httpErrorCode maps HTTP status codes back to domain error codes, for
// errors raised by echo itself (404 on unknown routes, 405, and so on).
func httpErrorCode(status int) string {
	switch status {
	case http.StatusNotFound:
		return raqeeb.ENOTFOUND
	case http.StatusBadRequest:
		return raqeeb.EINVALID
	case http.StatusUnauthorized:
		return raqeeb.EUNAUTHORIZED
	case http.StatusForbidden:
		return raqeeb.EFORBIDDEN
	case http.StatusConflict:
		return raqeeb.ECONFLICT
	default:
		return raqeeb.EINTERNAL
	}
}

// ErrorResponse represents the JSON error response format.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// HandleError converts domain errors to appropriate HTTP responses.
// It logs internal errors and returns user-safe messages.
func HandleError(c echo.Context, logger *slog.Logger, err error) error {
	code := raqeeb.ErrorCode(err)
	message := raqeeb.ErrorMessage(err)
	fields := raqeeb.ErrorFields(err)
	status := errorStatusCode(code)

	// Log internal errors with full details
	if code == raqeeb.EINTERNAL {
		logger.Error("internal error",
			slog.String("error", err.Error()),
			slog.String("request_id", raqeeb.RequestIDFromContext(c.Request().Context())),
			slog.String("path", c.Path()),
			slog.String("method", c.Request().Method),
		)
		// Don't expose internal error details to clients
		message = "An internal error occurred."
	}

	return c.JSON(status, ErrorResponse{
		Error:   code,
		Message: message,
		Fields:  fields,
	})
}
