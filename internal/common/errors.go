// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Input errors.
	ErrMissingColumns = errors.New("input file is missing required columns")
	ErrEmptyInput     = errors.New("input file contains no line items")

	// Session errors.
	ErrInvalidRange      = errors.New("invalid row range")
	ErrSessionRunning    = errors.New("a session is already running")
	ErrSessionNotFound   = errors.New("session not found")
	ErrSessionNotStopped = errors.New("session is not resumable")
	ErrNoResults         = errors.New("no results available")

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
