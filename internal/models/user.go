package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Avatar       *string   `gorm:"size:512" json:"avatar,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}

var validate = validator.New()

// ValidateEmail reports whether email is a well-formed address
func ValidateEmail(email string) error {
	if err := validate.Var(email, "required,email"); err != nil {
		return fmt.Errorf("%w: invalid email", ErrValidation)
	}
	return nil
}

var userEditable = fieldSet("email", "password", "avatar")

// UserEdit is the set of profile fields a user may change. Nil means untouched.
type UserEdit struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Avatar   *string `json:"avatar"`
}

// ParseUserEdit decodes a profile edit body, rejecting keys outside
// {email, password, avatar} with ErrInvalidField.
func ParseUserEdit(body []byte) (UserEdit, error) {
	var edit UserEdit
	if err := decodePartial(body, userEditable, &edit); err != nil {
		return UserEdit{}, err
	}
	if err := edit.Validate(); err != nil {
		return UserEdit{}, err
	}
	return edit, nil
}

// Validate checks the supplied values
func (e UserEdit) Validate() error {
	if e.IsEmpty() {
		return fmt.Errorf("%w: no fields to update", ErrValidation)
	}
	if e.Email != nil {
		if err := ValidateEmail(*e.Email); err != nil {
			return err
		}
	}
	if e.Password != nil && strings.TrimSpace(*e.Password) == "" {
		return fmt.Errorf("%w: password must not be empty", ErrValidation)
	}
	return nil
}

func (e UserEdit) IsEmpty() bool {
	return e.Email == nil && e.Password == nil && e.Avatar == nil
}
