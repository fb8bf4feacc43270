package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/feedbackboard/backend/internal/middleware"
	"github.com/feedbackboard/backend/internal/service"
	"github.com/feedbackboard/backend/internal/types"
)

// statusFor maps the service error taxonomy onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrInvalidField),
		errors.Is(err, service.ErrAlreadyVoted),
		errors.Is(err, service.ErrNoVoteToRemove):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrUnauthenticated),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrForbidden):
		// Non-authors get 401 as well
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrDuplicateEmail):
		return http.StatusConflict
	case errors.Is(err, service.ErrStorageUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// handleError records err on the context for the request logger and writes
// the JSON error body. Unexpected errors are reported generically.
func handleError(c *gin.Context, err error) {
	status := statusFor(err)
	_ = c.Error(err)

	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal server error"
	}
	c.AbortWithStatusJSON(status, types.ErrorResponse{Error: msg})
}

// callerID returns the authenticated user id set by the auth middleware
func callerID(c *gin.Context) (uint, bool) {
	id, ok := middleware.IdentityFromContext(c)
	if !ok {
		handleError(c, service.ErrUnauthenticated)
		return 0, false
	}
	return id.UserID, true
}
