package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"teahouse_backend/internal/repositories"
)

// APIError represents a structured error response.
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// NewAPIError creates a new APIError instance.
func NewAPIError(code int, message string, details string) APIError {
	return APIError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// RespondWithError sends a structured error response via Gin.
func RespondWithError(c *gin.Context, apiErr APIError) {
	c.JSON(apiErr.Code, apiErr)
}

// RespondWithServiceError maps service layer sentinel errors onto HTTP
// responses. Unknown errors are reported as 500 without leaking internals.
func RespondWithServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		RespondWithError(c, NewAPIError(http.StatusNotFound, "Resource not found", err.Error()))
	case errors.Is(err, repositories.ErrDuplicateKey):
		RespondWithError(c, NewAPIError(http.StatusConflict, "Duplicate resource", err.Error()))
	case errors.Is(err, repositories.ErrValidation):
		RespondWithError(c, NewAPIError(http.StatusBadRequest, "Invalid input", err.Error()))
	default:
		LogError(err, "Unhandled service error")
		RespondWithError(c, NewAPIError(http.StatusInternalServerError, "Internal server error", ""))
	}
}
