package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/partscout/partscout/internal/model"
	"github.com/partscout/partscout/internal/service"
)

// SaveHistory persists an immutable snapshot of a terminal session. Records
// are written once and never updated.
func (s *SQLiteStore) SaveHistory(ctx context.Context, record *model.HistoryRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateHistory(record); err != nil {
		return err
	}

	summaryJSON, err := json.Marshal(record.Summary)
	if err != nil {
		return fmt.Errorf("failed to marshal history summary: %w", err)
	}

	rowsJSON, err := json.Marshal(record.Rows)
	if err != nil {
		return fmt.Errorf("failed to marshal history rows: %w", err)
	}

	leaderboardJSON, err := json.Marshal(record.Leaderboard)
	if err != nil {
		return fmt.Errorf("failed to marshal history leaderboard: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO history (id, summary, rows, leaderboard, created_at)
		VALUES (?, ?, ?, ?, ?)
	`,
		record.ID,
		string(summaryJSON),
		string(rowsJSON),
		string(leaderboardJSON),
		record.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to save history record: %w", err)
	}
	return nil
}

// GetHistory loads a full history record by ID.
func (s *SQLiteStore) GetHistory(ctx context.Context, id string) (*model.HistoryRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	var (
		record          model.HistoryRecord
		summaryJSON     string
		rowsJSON        string
		leaderboardJSON string
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT id, summary, rows, leaderboard, created_at
		FROM history WHERE id = ?
	`, id).Scan(&record.ID, &summaryJSON, &rowsJSON, &leaderboardJSON, &record.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("history record %s: %w", id, sql.ErrNoRows)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load history record: %w", err)
	}

	if err := json.Unmarshal([]byte(summaryJSON), &record.Summary); err != nil {
		return nil, fmt.Errorf("failed to unmarshal history summary: %w", err)
	}
	if err := json.Unmarshal([]byte(rowsJSON), &record.Rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal history rows: %w", err)
	}
	if err := json.Unmarshal([]byte(leaderboardJSON), &record.Leaderboard); err != nil {
		return nil, fmt.Errorf("failed to unmarshal history leaderboard: %w", err)
	}

	return &record, nil
}

// ListHistory returns history summaries, newest first.
func (s *SQLiteStore) ListHistory(ctx context.Context) ([]service.HistoryInfo, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, summary, created_at
		FROM history
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var infos []service.HistoryInfo
	for rows.Next() {
		var (
			info        service.HistoryInfo
			summaryJSON string
		)
		if err := rows.Scan(&info.ID, &summaryJSON, &info.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		if err := json.Unmarshal([]byte(summaryJSON), &info.Summary); err != nil {
			return nil, fmt.Errorf("failed to unmarshal history summary: %w", err)
		}
		infos = append(infos, info)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate history: %w", err)
	}
	return infos, nil
}

// DeleteHistory removes a history record.
func (s *SQLiteStore) DeleteHistory(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM history WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete history record: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("history record %s: %w", id, sql.ErrNoRows)
	}
	return nil
}
