package common

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the standardized error envelope returned by every
// handler.
type ErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// NewErrorResponse builds a standardized error envelope.
func NewErrorResponse(code, message string) *ErrorResponse {
	var resp ErrorResponse
	resp.Error.Code = code
	resp.Error.Message = message
	return &resp
}

// SendClientError sends a 400 response.
func SendClientError(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, NewErrorResponse("CLIENT_ERROR", message))
}

// SendUnauthorizedError sends a 401 response. The message is always the
// same regardless of why authentication failed.
func SendUnauthorizedError(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, NewErrorResponse("UNAUTHORIZED", "unauthorized"))
}

// SendNotFoundError sends a 404 response.
func SendNotFoundError(c echo.Context, resource string) error {
	return c.JSON(http.StatusNotFound, NewErrorResponse("NOT_FOUND", resource+" not found"))
}

// SendUnsupportedMediaError sends a 415 response.
func SendUnsupportedMediaError(c echo.Context, message string) error {
	return c.JSON(http.StatusUnsupportedMediaType, NewErrorResponse("UNSUPPORTED_MEDIA_TYPE", message))
}

// SendServerError sends a 500 response without leaking internals.
func SendServerError(c echo.Context, message string) error {
	return c.JSON(http.StatusInternalServerError, NewErrorResponse("SERVER_ERROR", message))
}
