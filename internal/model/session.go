package model

import "time"

// SessionStatus tracks a processing run through its lifecycle.
type SessionStatus string

// Session lifecycle states.
const (
	SessionIdle      SessionStatus = "idle"
	SessionRunning   SessionStatus = "running"
	SessionStopping  SessionStatus = "stopping"
	SessionStopped   SessionStatus = "stopped"
	SessionCompleted SessionStatus = "completed"
	SessionFailed    SessionStatus = "failed"
)

// Terminal reports whether the status permits no further processing without
// an explicit resume.
func (s SessionStatus) Terminal() bool {
	switch s {
	case SessionStopped, SessionCompleted, SessionFailed:
		return true
	default:
		return false
	}
}

// Session is one bounded processing run over a row range. The orchestrator
// owns its Rows slice and Leaderboard for the session's lifetime; everything
// handed outward is a copy.
type Session struct {
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Leaderboard *Leaderboard
	ID          string
	Status      SessionStatus
	Error       string
	Rows        []EnrichedRow
	TotalParts  int
	StartIndex  int
	EndIndex    int
	IsTest      bool
}

// RangeSize is the number of automotive rows the session was asked to process.
func (s *Session) RangeSize() int {
	return s.EndIndex - s.StartIndex
}

// ProcessedCount is the number of rows completed so far.
func (s *Session) ProcessedCount() int {
	return len(s.Rows)
}

// ProgressPercentage reports completion of the requested range, capped at 100.
func (s *Session) ProgressPercentage() float64 {
	size := s.RangeSize()
	if size <= 0 {
		return 0
	}
	pct := float64(len(s.Rows)) / float64(size) * 100
	if pct > 100 {
		pct = 100
	}
	return pct
}

// SuccessfulLookups counts rows whose resolution produced at least one make.
func (s *Session) SuccessfulLookups() int {
	n := 0
	for _, row := range s.Rows {
		if row.Resolved() {
			n++
		}
	}
	return n
}

// SuccessRate is the percentage of processed rows with a successful lookup.
func (s *Session) SuccessRate() float64 {
	if len(s.Rows) == 0 {
		return 0
	}
	return float64(s.SuccessfulLookups()) / float64(len(s.Rows)) * 100
}

// ProcessedIndexes returns the set of original row indexes already present
// in the session, used by resume to skip completed rows.
func (s *Session) ProcessedIndexes() map[int]bool {
	done := make(map[int]bool, len(s.Rows))
	for _, row := range s.Rows {
		done[row.Item.Index] = true
	}
	return done
}

// CopyRows returns an independent copy of the enriched rows, safe to hand
// to observers while the session is still being appended to.
func (s *Session) CopyRows() []EnrichedRow {
	rows := make([]EnrichedRow, len(s.Rows))
	copy(rows, s.Rows)
	return rows
}
