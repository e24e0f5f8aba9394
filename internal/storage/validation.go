package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/partscout/partscout/internal/model"
)

// Validation errors.
var (
	ErrNilContext     = errors.New("context cannot be nil")
	ErrEmptyString    = errors.New("string parameter cannot be empty")
	ErrNilParameter   = errors.New("parameter cannot be nil")
	ErrInvalidSession = errors.New("invalid session")
	ErrInvalidHistory = errors.New("invalid history record")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateSession validates a session before persisting.
func validateSession(session *model.Session) error {
	if session == nil {
		return fmt.Errorf("%w: session", ErrNilParameter)
	}
	if session.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidSession)
	}
	if session.StartIndex < 0 || session.EndIndex < session.StartIndex {
		return fmt.Errorf("%w: range [%d, %d)", ErrInvalidSession, session.StartIndex, session.EndIndex)
	}
	return nil
}

// validateHistory validates a history record before persisting.
func validateHistory(record *model.HistoryRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record", ErrNilParameter)
	}
	if record.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidHistory)
	}
	return nil
}
