package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/feedbackboard/backend/internal/models"
)

// UserStore persists users and owns password hashing
type UserStore struct {
	db         *gorm.DB
	bcryptCost int
}

func NewUserStore(db *gorm.DB, bcryptCost int) *UserStore {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserStore{db: db, bcryptCost: bcryptCost}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create stores a new user with a bcrypt hash of password
func (s *UserStore) Create(ctx context.Context, email, password string, avatar *string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        normalizeEmail(email),
		PasswordHash: string(hash),
		Avatar:       emptyToNil(avatar),
	}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return &user, nil
}

func (s *UserStore) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user %d: %w", id, err)
	}
	return &user, nil
}

// Edit applies a validated profile edit. The password is re-hashed when
// supplied and an empty avatar clears the stored one.
func (s *UserStore) Edit(ctx context.Context, id uint, edit models.UserEdit) (*models.User, error) {
	if err := edit.Validate(); err != nil {
		return nil, err
	}

	user, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if edit.Email != nil {
		updates["email"] = normalizeEmail(*edit.Email)
	}
	if edit.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*edit.Password), s.bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		updates["password_hash"] = string(hash)
	}
	if edit.Avatar != nil {
		updates["avatar"] = emptyToNil(edit.Avatar)
	}

	if err := s.db.WithContext(ctx).Model(user).Updates(updates).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to update user %d: %w", id, err)
	}
	return s.FindByID(ctx, id)
}

// CheckPassword reports whether password matches the user's stored hash
func (s *UserStore) CheckPassword(user *models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}

func emptyToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
