package service

import (
	"errors"

	"github.com/feedbackboard/backend/internal/models"
	"github.com/feedbackboard/backend/internal/store"
)

var (
	ErrUnauthenticated    = errors.New("missing or invalid credentials")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("not the author of this feedback")
	ErrAlreadyVoted       = errors.New("already voted for this feedback")
	ErrNoVoteToRemove     = errors.New("no vote to remove")
	ErrStorageUnavailable = errors.New("avatar storage is not configured")

	// Re-exported so callers can match without importing the lower layers
	ErrValidation     = models.ErrValidation
	ErrInvalidField   = models.ErrInvalidField
	ErrNotFound       = store.ErrNotFound
	ErrDuplicateEmail = store.ErrDuplicateEmail
)
