package models

import "errors"

var (
	// ErrValidation marks malformed or out-of-range input
	ErrValidation = errors.New("validation failed")
	// ErrInvalidField marks a key outside an entity's updatable set
	ErrInvalidField = errors.New("invalid field")
)
