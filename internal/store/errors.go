package store

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrNotFound means the requested row does not exist
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEmail means another user already holds the email
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrDuplicateVote means the (user, feedback) vote row already exists
	ErrDuplicateVote = errors.New("vote already exists")
)

// isDuplicateKey reports a unique or primary key violation. gorm translates
// driver errors when TranslateError is set; the message checks cover handles
// opened without it.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || // SQLite
		strings.Contains(msg, "duplicate key value violates unique constraint") // PostgreSQL
}

func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "FOREIGN KEY constraint failed") || // SQLite
		strings.Contains(msg, "violates foreign key constraint") // PostgreSQL
}
