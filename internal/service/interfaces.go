package service

import (
	"context"
	"io"

	"github.com/feedbackboard/backend/internal/models"
	"github.com/feedbackboard/backend/internal/types"
)

// IAuthService defines the interface for token operations
type IAuthService interface {
	GenerateToken(user *models.User) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

// IUserService defines the interface for account operations
type IUserService interface {
	Register(ctx context.Context, email, password string, avatar *string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	Me(ctx context.Context, userID uint) (*models.User, error)
	Edit(ctx context.Context, userID uint, edit models.UserEdit) (*models.User, error)
	UploadAvatar(ctx context.Context, userID uint, body io.Reader) (*models.User, error)
}

// IFeedbackService defines the interface for feedback and vote operations
type IFeedbackService interface {
	Create(ctx context.Context, authorID uint, title, content string, category models.Category) (*models.Feedback, error)
	Get(ctx context.Context, id uint) (*models.Feedback, error)
	List(ctx context.Context, filters models.FeedbackFilters) (*models.FeedbackPage, error)
	Update(ctx context.Context, callerID, id uint, upd models.FeedbackUpdate) (*models.Feedback, error)
	Delete(ctx context.Context, callerID, id uint) error
	Vote(ctx context.Context, userID, feedbackID uint) error
	Unvote(ctx context.Context, userID, feedbackID uint) error
}

// VoteCache caches per-feedback vote counts. Implemented by cache.VoteCountCache.
// Set must only store count while the feedback's generation still equals gen;
// Invalidate advances the generation.
type VoteCache interface {
	Get(ctx context.Context, feedbackID uint) (int64, bool, error)
	Generation(ctx context.Context, feedbackID uint) (int64, error)
	Set(ctx context.Context, feedbackID uint, gen, count int64) error
	Invalidate(ctx context.Context, feedbackID uint) error
}

// AvatarStorage stores uploaded avatar images. Implemented by config.S3Config.
type AvatarStorage interface {
	PutObject(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

var (
	_ IAuthService     = (*AuthService)(nil)
	_ IUserService     = (*UserService)(nil)
	_ IFeedbackService = (*FeedbackService)(nil)
)
