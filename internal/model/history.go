package model

import "time"

// HistorySummary holds the statistics shown when listing history entries.
type HistorySummary struct {
	TotalProcessed    int                `json:"total_processed"`
	SuccessfulLookups int                `json:"successful_lookups"`
	SuccessRate       float64            `json:"success_rate"`
	StartIndex        int                `json:"start_index"`
	EndIndex          int                `json:"end_index"`
	TotalParts        int                `json:"total_parts_in_file"`
	TopMakes          []LeaderboardEntry `json:"top_makes"`
}

// HistoryRecord is an immutable snapshot of a terminal session. It takes
// independent copies of the session's rows and leaderboard so deleting the
// session later cannot affect it.
type HistoryRecord struct {
	CreatedAt   time.Time
	ID          string
	Summary     HistorySummary
	Rows        []EnrichedRow
	Leaderboard []LeaderboardEntry
}

// NewHistoryRecord snapshots a session into an independent history record.
func NewHistoryRecord(s *Session, topMakes int) *HistoryRecord {
	summary := HistorySummary{
		TotalProcessed:    s.ProcessedCount(),
		SuccessfulLookups: s.SuccessfulLookups(),
		SuccessRate:       s.SuccessRate(),
		StartIndex:        s.StartIndex,
		EndIndex:          s.EndIndex,
		TotalParts:        s.TotalParts,
		TopMakes:          s.Leaderboard.TopN(topMakes),
	}

	return &HistoryRecord{
		ID:          s.ID,
		CreatedAt:   time.Now(),
		Summary:     summary,
		Rows:        s.CopyRows(),
		Leaderboard: s.Leaderboard.Snapshot(),
	}
}
