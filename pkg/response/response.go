// Package response centralizes HTTP response shapes and helpers.
// Handlers rely on it to keep controllers thin and uniform.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/workout-api/internal/pagination"
	"github.com/maxviazov/workout-api/internal/repository"
	"github.com/maxviazov/workout-api/internal/service"
)

// ErrorPayload is the canonical error envelope returned by the API.
type ErrorPayload struct {
	Error       string               `json:"error"`
	Message     string               `json:"message,omitempty"`
	FieldErrors []service.FieldError `json:"field_errors,omitempty"`
}

// MapError converts a domain / infrastructure error into an HTTP status and payload.
// Extend here as new domain error categories emerge.
func MapError(err error) (int, ErrorPayload) {
	if err == nil {
		return http.StatusOK, ErrorPayload{Error: "ok"}
	}

	if errors.Is(err, pagination.ErrInvalidParameter) {
		payload := ErrorPayload{Error: "invalid_pagination", Message: err.Error()}
		var pe *pagination.ParameterError
		if errors.As(err, &pe) {
			payload.FieldErrors = []service.FieldError{{Field: pe.Param, Message: pe.Reason}}
		}
		return http.StatusBadRequest, payload
	}

	if errors.Is(err, service.ErrInvalidInput) {
		return http.StatusBadRequest, ErrorPayload{
			Error:       "invalid_input",
			Message:     "one or more fields are invalid",
			FieldErrors: service.FieldErrors(err),
		}
	}

	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, ErrorPayload{Error: "not_found"}
	case errors.Is(err, repository.ErrAlreadyExists):
		return http.StatusConflict, ErrorPayload{Error: "already_exists", Message: err.Error()}
	case errors.Is(err, repository.ErrConflict):
		return http.StatusConflict, ErrorPayload{Error: "conflict"}
	default:
		return http.StatusInternalServerError, ErrorPayload{Error: "internal_error"}
	}
}

// WriteError writes an error response and aborts the context.
// The error is attached to the context so the request logger can report it.
func WriteError(c *gin.Context, err error) {
	status, payload := MapError(err)
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, payload)
}

// WriteData writes a successful JSON response. 204 carries no body.
func WriteData(c *gin.Context, status int, data any) {
	if status == http.StatusNoContent {
		c.Status(status)
		return
	}
	c.JSON(status, data)
}

// WriteStatus writes a bare error envelope for statuses that have no domain error behind them.
func WriteStatus(c *gin.Context, status int, code string) {
	c.AbortWithStatusJSON(status, ErrorPayload{Error: code, Message: http.StatusText(status)})
}
