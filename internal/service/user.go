package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/feedbackboard/backend/internal/models"
	"github.com/feedbackboard/backend/internal/store"
)

type UserService struct {
	users   *store.UserStore
	auth    IAuthService
	avatars AvatarStorage
	log     logrus.FieldLogger
}

// NewUserService wires the account operations. avatars may be nil, in which
// case UploadAvatar fails with ErrStorageUnavailable.
func NewUserService(users *store.UserStore, auth IAuthService, avatars AvatarStorage, log logrus.FieldLogger) *UserService {
	return &UserService{users: users, auth: auth, avatars: avatars, log: log}
}

func (s *UserService) Register(ctx context.Context, email, password string, avatar *string) (*models.User, error) {
	if err := models.ValidateEmail(email); err != nil {
		return nil, err
	}
	if strings.TrimSpace(password) == "" {
		return nil, fmt.Errorf("%w: password is required", ErrValidation)
	}

	user, err := s.users.Create(ctx, email, password, avatar)
	if err != nil {
		return nil, err
	}
	s.log.WithField("user_id", user.ID).Info("User registered")
	return user, nil
}

// Login returns a signed token. An unknown email is ErrNotFound, a wrong
// password is ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if !s.users.CheckPassword(user, password) {
		return "", ErrInvalidCredentials
	}
	return s.auth.GenerateToken(user)
}

func (s *UserService) Me(ctx context.Context, userID uint) (*models.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *UserService) Edit(ctx context.Context, userID uint, edit models.UserEdit) (*models.User, error) {
	return s.users.Edit(ctx, userID, edit)
}

// UploadAvatar stores an image and points the user's avatar at it
func (s *UserService) UploadAvatar(ctx context.Context, userID uint, body io.Reader) (*models.User, error) {
	if s.avatars == nil {
		return nil, ErrStorageUnavailable
	}
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	data, contentType, ext, err := readAvatar(body)
	if err != nil {
		return nil, err
	}

	key := avatarKey(userID, ext)
	url, err := s.avatars.PutObject(ctx, key, contentType, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to store avatar: %w", err)
	}

	user, err := s.users.Edit(ctx, userID, models.UserEdit{Avatar: &url})
	if err != nil {
		// The object is already stored and nothing references it
		s.log.WithError(err).WithFields(logrus.Fields{"user_id": userID, "object_key": key}).
			Warn("Avatar stored but not saved on the user, object is orphaned")
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to save avatar url: %w", err)
	}
	s.log.WithFields(logrus.Fields{"user_id": userID, "size": len(data)}).Info("Avatar uploaded")
	return user, nil
}
