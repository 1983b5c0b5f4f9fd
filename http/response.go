package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Respond writes a JSON body with the given status.
func Respond(c echo.Context, status int, data any) error {
	return c.JSON(status, data)
}

// RespondOK writes data with 200.
func RespondOK(c echo.Context, data any) error {
	return Respond(c, http.StatusOK, data)
}

// RespondCreated writes data with 201, used by the create endpoints.
func RespondCreated(c echo.Context, data any) error {
	return Respond(c, http.StatusCreated, data)
}

// RespondNoContent writes 204, used by deletes and mark-read.
func RespondNoContent(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}

// SuccessResponse acknowledges an action with no entity to return, such as
// logout or mark-all-read.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func RespondSuccess(c echo.Context, message string) error {
	return Respond(c, http.StatusOK, SuccessResponse{Success: true, Message: message})
}

// ListResponse wraps every list endpoint. Data is never null in the JSON
// even when the page is empty.
type ListResponse[T any] struct {
	Data   []T `json:"data"`
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

func RespondList[T any](c echo.Context, data []T, total, offset, limit int) error {
	if data == nil {
		data = []T{}
	}
	return Respond(c, http.StatusOK, ListResponse[T]{
		Data:   data,
		Total:  total,
		Offset: offset,
		Limit:  limit,
	})
}
