package domain

import (
	"errors"
	"strings"
)

// Sentinel errors form the closed failure taxonomy. They are constructed at
// the point of failure and mapped to HTTP statuses in one place.
var (
	ErrMissingCredentials = errors.New("email and password are required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailRegistered    = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")

	ErrSweetNotFound     = errors.New("sweet not found")
	ErrDuplicateSweet    = errors.New("duplicate sweet name already exists")
	ErrInvalidQuantity   = errors.New("invalid quantity")
	ErrInsufficientStock = errors.New("not enough stock")
)

// ValidationError aggregates per-field violation messages so callers can
// report every problem in a payload at once.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Fields, ", ")
}

// NewValidationError builds a ValidationError from one or more field messages.
func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}
