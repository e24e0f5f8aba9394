// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/partscout/partscout/internal/model"
)

// Store defines the contract for the session and history persistence layer.
type Store interface {
	// Session operations
	SaveSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, id string) (*model.Session, error)
	ListSessions(ctx context.Context) ([]SessionInfo, error)
	DeleteSession(ctx context.Context, id string) error

	// History operations
	SaveHistory(ctx context.Context, record *model.HistoryRecord) error
	GetHistory(ctx context.Context, id string) (*model.HistoryRecord, error)
	ListHistory(ctx context.Context) ([]HistoryInfo, error)
	DeleteHistory(ctx context.Context, id string) error

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// Resolver resolves a lookup key against the configured external sources.
type Resolver interface {
	Resolve(ctx context.Context, key, description string) (*model.ResolutionResult, error)
}

// Publisher fans events out to observers. Delivery is best-effort: a slow
// or disconnected observer must never block the caller.
type Publisher interface {
	Publish(event Event)
	Subscribe() (<-chan Event, func())
}

// EventType identifies the kind of engine event.
type EventType string

// Engine event types.
const (
	EventProgress  EventType = "progress"
	EventResult    EventType = "result"
	EventCompleted EventType = "completed"
	EventStopped   EventType = "stopped"
	EventError     EventType = "error"
)

// Event is one engine notification delivered to observers.
type Event struct {
	Type              EventType
	Message           string
	SessionID         string
	Row               *model.EnrichedRow
	Leaderboard       []model.LeaderboardEntry
	ProcessedCount    int
	TotalParts        int
	SuccessfulLookups int
	SuccessRate       float64
	ProgressPct       float64
}

// Status is a point-in-time snapshot of the engine for status queries.
type Status struct {
	SessionID         string
	IsProcessing      bool
	ProcessedCount    int
	RangeSize         int
	TotalParts        int
	ProgressPct       float64
	SuccessfulLookups int
	SuccessRate       float64
	Error             string
}

// SessionInfo summarizes a stored session for listing.
type SessionInfo struct {
	UpdatedAt      time.Time
	ID             string
	Status         model.SessionStatus
	ProcessedCount int
	RangeSize      int
	ProgressPct    float64
}

// HistoryInfo summarizes a stored history record for listing.
type HistoryInfo struct {
	CreatedAt time.Time
	ID        string
	Summary   model.HistorySummary
}
