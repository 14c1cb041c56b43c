// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Input errors.
	ErrInvalidInput = errors.New("invalid input")

	// Lookup errors.
	ErrUnknownUnit         = errors.New("unknown unit")
	ErrUnknownCategory     = errors.New("unknown category")
	ErrAmbiguousOrNotFound = errors.New("no single category contains both units")
	ErrUnknownCurrency     = errors.New("unknown currency")

	// Store errors.
	ErrDuplicateName = errors.New("a favorite with this name already exists")
	ErrNotFound      = errors.New("not found")
	ErrOutOfRange    = errors.New("index out of range")

	// Persistence errors.
	ErrPersistence       = errors.New("persistence failure")
	ErrNothingToExport   = errors.New("nothing to export")
	ErrUnsupportedFormat = errors.New("unsupported export format")

	// Configuration errors.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// InvalidInput wraps ErrInvalidInput with a description of the violated precondition.
func InvalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// IsRecoverable reports whether err belongs to the expected taxonomy of
// user-facing failures. Anything else is unexpected but still not fatal.
func IsRecoverable(err error) bool {
	for _, target := range []error{
		ErrInvalidInput,
		ErrUnknownUnit,
		ErrUnknownCategory,
		ErrAmbiguousOrNotFound,
		ErrUnknownCurrency,
		ErrDuplicateName,
		ErrNotFound,
		ErrOutOfRange,
		ErrPersistence,
		ErrNothingToExport,
		ErrUnsupportedFormat,
	} {
		if errors.Is(err, target) {
			return true
		}
	}

	var userErr *UserError
	return errors.As(err, &userErr)
}
