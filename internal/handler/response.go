package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"paygate/internal/notification"
	"paygate/internal/repository"
	"paygate/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Malformed or unauthenticated input - Bad Request, never alerted.
	case errors.Is(err, service.ErrInvalidRequest),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, notification.ErrInvalidField),
		errors.Is(err, notification.ErrMissingField),
		errors.Is(err, notification.ErrMalformedToken):
		return http.StatusBadRequest

	// Not found errors
	case errors.Is(err, service.ErrUnknownPayable),
		errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Unprocessable configuration
	case errors.Is(err, service.ErrUnsupportedCurrency):
		return http.StatusUnprocessableEntity

	// Upstream processor unreachable
	case errors.Is(err, service.ErrProcessorUnavailable):
		return http.StatusBadGateway

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
