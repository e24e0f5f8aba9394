package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/partscout/partscout/internal/model"
	"github.com/partscout/partscout/internal/service"
)

// SaveSession upserts the full incremental state of a session: its enriched
// rows, cumulative leaderboard, status and timestamps. Called once per
// processed row, so a crash loses at most the in-flight row.
func (s *SQLiteStore) SaveSession(ctx context.Context, session *model.Session) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateSession(session); err != nil {
		return err
	}

	rowsJSON, err := json.Marshal(session.Rows)
	if err != nil {
		return fmt.Errorf("failed to marshal session rows: %w", err)
	}

	leaderboardJSON, err := json.Marshal(session.Leaderboard.Snapshot())
	if err != nil {
		return fmt.Errorf("failed to marshal leaderboard: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sessions (
			id, status, start_index, end_index, total_parts, is_test,
			rows, leaderboard, error, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status = excluded.status,
			rows = excluded.rows,
			leaderboard = excluded.leaderboard,
			error = excluded.error,
			updated_at = excluded.updated_at
	`,
		session.ID,
		string(session.Status),
		session.StartIndex,
		session.EndIndex,
		session.TotalParts,
		session.IsTest,
		string(rowsJSON),
		string(leaderboardJSON),
		session.Error,
		session.CreatedAt,
		time.Now(),
	)

	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// GetSession loads a session by ID, rebuilding its rows and leaderboard.
func (s *SQLiteStore) GetSession(ctx context.Context, id string) (*model.Session, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, status, start_index, end_index, total_parts, is_test,
		       rows, leaderboard, COALESCE(error, ''), created_at, updated_at
		FROM sessions WHERE id = ?
	`, id)

	session, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("session %s: %w", id, sql.ErrNoRows)
	}
	return session, err
}

// ListSessions returns summaries of all stored sessions, newest first.
func (s *SQLiteStore) ListSessions(ctx context.Context) ([]service.SessionInfo, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, status, start_index, end_index, rows, updated_at
		FROM sessions
		ORDER BY updated_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var infos []service.SessionInfo
	for rows.Next() {
		var (
			info     service.SessionInfo
			status   string
			startIdx int
			endIdx   int
			rowsJSON string
		)
		if err := rows.Scan(&info.ID, &status, &startIdx, &endIdx, &rowsJSON, &info.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}

		var enriched []model.EnrichedRow
		if err := json.Unmarshal([]byte(rowsJSON), &enriched); err != nil {
			return nil, fmt.Errorf("failed to unmarshal session rows: %w", err)
		}

		info.Status = model.SessionStatus(status)
		info.ProcessedCount = len(enriched)
		info.RangeSize = endIdx - startIdx
		if info.RangeSize > 0 {
			info.ProgressPct = float64(info.ProcessedCount) / float64(info.RangeSize) * 100
		}
		infos = append(infos, info)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sessions: %w", err)
	}
	return infos, nil
}

// DeleteSession removes a stored session.
func (s *SQLiteStore) DeleteSession(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("session %s: %w", id, sql.ErrNoRows)
	}
	return nil
}

// scanSession rebuilds a session from a sessions table row.
func scanSession(row *sql.Row) (*model.Session, error) {
	var (
		session         model.Session
		status          string
		rowsJSON        string
		leaderboardJSON string
	)

	err := row.Scan(
		&session.ID, &status, &session.StartIndex, &session.EndIndex,
		&session.TotalParts, &session.IsTest,
		&rowsJSON, &leaderboardJSON, &session.Error,
		&session.CreatedAt, &session.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	session.Status = model.SessionStatus(status)

	if err := json.Unmarshal([]byte(rowsJSON), &session.Rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session rows: %w", err)
	}

	var entries []model.LeaderboardEntry
	if err := json.Unmarshal([]byte(leaderboardJSON), &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal leaderboard: %w", err)
	}
	session.Leaderboard = model.NewLeaderboard()
	session.Leaderboard.Restore(entries)

	return &session, nil
}
