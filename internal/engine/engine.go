// Package engine implements the enrichment orchestrator: it drives a
// processing run over a row range, invoking the classifier and resolver,
// persisting resumable session state, and emitting progress events.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/partscout/partscout/internal/classify"
	"github.com/partscout/partscout/internal/common"
	"github.com/partscout/partscout/internal/model"
	"github.com/partscout/partscout/internal/service"
	"github.com/partscout/partscout/internal/tabular"
)

// Config holds configuration options for the enrichment engine.
type Config struct {
	// LeaderboardSize is how many makes progress events and history carry.
	LeaderboardSize int
	// SummaryTopMakes is the preview size in history summaries.
	SummaryTopMakes int
	// TestBatchSize caps the range when a session starts in test mode.
	TestBatchSize int
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{
		LeaderboardSize: 10,
		SummaryTopMakes: 3,
		TestBatchSize:   50,
	}
}

// Engine orchestrates enrichment runs. Only one session may be running at a
// time; the guard is enforced here, not left to callers.
type Engine struct {
	store    service.Store
	resolver service.Resolver
	bus      service.Publisher
	cfg      Config

	mu         sync.Mutex
	catalog    []model.EnrichedRow // all input rows, classified, original order
	automotive []int               // catalog positions of automotive rows
	session    *model.Session      // active or most recent session
	cancel     context.CancelFunc
	done       chan struct{}
	running    bool
}

// New creates an enrichment engine with the given dependencies.
func New(store service.Store, resolver service.Resolver, bus service.Publisher) *Engine {
	return NewWithConfig(store, resolver, bus, DefaultConfig())
}

// NewWithConfig creates an enrichment engine with custom configuration.
func NewWithConfig(store service.Store, resolver service.Resolver, bus service.Publisher, cfg Config) *Engine {
	return &Engine{
		store:    store,
		resolver: resolver,
		bus:      bus,
		cfg:      cfg,
	}
}

// CategoryCounts reports how the loaded input split across categories.
type CategoryCounts struct {
	Automotive int
	Tools      int
	Unknown    int
}

// Load classifies the input rows and prepares them for processing. It must
// be called before Start or Resume.
func (e *Engine) Load(items []model.LineItem) CategoryCounts {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.catalog = make([]model.EnrichedRow, len(items))
	e.automotive = e.automotive[:0]

	var counts CategoryCounts
	for i, item := range items {
		category := classify.Classify(item)
		row := model.EnrichedRow{Item: item, Category: category}

		switch category {
		case model.CategoryAutomotive:
			row.LookupKey = classify.ExtractKey(item.ItemNumber)
			e.automotive = append(e.automotive, i)
			counts.Automotive++
		case model.CategoryTool:
			counts.Tools++
		case model.CategoryUnknown:
			counts.Unknown++
		}
		e.catalog[i] = row
	}

	slog.Info("Classified input rows",
		"total", len(items),
		"automotive", counts.Automotive,
		"tools", counts.Tools,
		"unknown", counts.Unknown)

	return counts
}

// Start begins a new session over the automotive rows in [start, end).
// In test mode the range is capped to the first TestBatchSize rows. It
// returns the new session ID; processing continues in the background until
// the range is exhausted or Stop is called.
func (e *Engine) Start(ctx context.Context, start, end int, isTest bool) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.running {
		return "", common.ErrSessionRunning
	}
	if len(e.catalog) == 0 {
		return "", common.NewUserError("no data loaded", common.ErrEmptyInput)
	}

	total := len(e.automotive)
	if isTest {
		start = 0
		end = e.cfg.TestBatchSize
		if end > total {
			end = total
		}
	}
	if start < 0 || end <= start || end > total {
		return "", fmt.Errorf("%w: [%d, %d) with %d automotive rows", common.ErrInvalidRange, start, end, total)
	}

	session := &model.Session{
		ID:          uuid.NewString(),
		Status:      model.SessionRunning,
		StartIndex:  start,
		EndIndex:    end,
		TotalParts:  total,
		IsTest:      isTest,
		Leaderboard: model.NewLeaderboard(),
		CreatedAt:   time.Now(),
	}

	if err := e.store.SaveSession(ctx, session); err != nil {
		return "", fmt.Errorf("failed to persist new session: %w", err)
	}

	e.session = session
	e.launchLocked(ctx, e.pendingRowsLocked(session))

	slog.Info("Session started",
		"session_id", session.ID,
		"start", start,
		"end", end,
		"test", isTest)

	return session.ID, nil
}

// Resume reloads a stopped session and continues processing only the rows
// in its range that have not been resolved yet. It returns how many rows
// were already processed before the resume.
func (e *Engine) Resume(ctx context.Context, sessionID string) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.running {
		return 0, common.ErrSessionRunning
	}
	if len(e.catalog) == 0 {
		return 0, common.NewUserError("no data loaded", common.ErrEmptyInput)
	}

	session, err := e.store.GetSession(ctx, sessionID)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", common.ErrSessionNotFound, sessionID)
	}

	switch session.Status {
	case model.SessionStopped, model.SessionFailed:
	case model.SessionCompleted:
		return 0, common.NewUserError("session already completed", common.ErrSessionNotStopped)
	default:
		return 0, fmt.Errorf("%w: status %s", common.ErrSessionNotStopped, session.Status)
	}

	if session.EndIndex > len(e.automotive) {
		return 0, fmt.Errorf("%w: session range [%d, %d) exceeds %d automotive rows in input",
			common.ErrInvalidRange, session.StartIndex, session.EndIndex, len(e.automotive))
	}

	already := session.ProcessedCount()
	session.Status = model.SessionRunning
	session.Error = ""

	if err := e.store.SaveSession(ctx, session); err != nil {
		return 0, fmt.Errorf("failed to persist resumed session: %w", err)
	}

	e.session = session
	e.launchLocked(ctx, e.pendingRowsLocked(session))

	slog.Info("Session resumed",
		"session_id", session.ID,
		"already_processed", already,
		"remaining", session.RangeSize()-already)

	return already, nil
}

// LoadSession loads a stored session into the engine without resuming it,
// so its results can be inspected and exported.
func (e *Engine) LoadSession(ctx context.Context, sessionID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.running {
		return common.ErrSessionRunning
	}

	session, err := e.store.GetSession(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("%w: %s", common.ErrSessionNotFound, sessionID)
	}

	e.session = session
	return nil
}

// Stop requests a cooperative stop of the running session. In-flight row
// resolution finishes; no new rows are started. A pending pacing wait is
// interrupted immediately. No-op when nothing is running.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.running {
		return
	}

	e.session.Status = model.SessionStopping
	e.cancel()
	slog.Info("Stop requested", "session_id", e.session.ID)
}

// Wait blocks until the current background run finishes, if one is active.
func (e *Engine) Wait() {
	e.mu.Lock()
	done := e.done
	e.mu.Unlock()

	if done != nil {
		<-done
	}
}

// Status returns a point-in-time snapshot of the engine.
func (e *Engine) Status() service.Status {
	e.mu.Lock()
	defer e.mu.Unlock()

	status := service.Status{IsProcessing: e.running}
	if e.session == nil {
		return status
	}

	status.SessionID = e.session.ID
	status.ProcessedCount = e.session.ProcessedCount()
	status.RangeSize = e.session.RangeSize()
	status.TotalParts = e.session.TotalParts
	status.ProgressPct = e.session.ProgressPercentage()
	status.SuccessfulLookups = e.session.SuccessfulLookups()
	status.SuccessRate = e.session.SuccessRate()
	status.Error = e.session.Error
	return status
}

// Results returns a copy of the enriched rows produced by the active or
// most recent session, ordered by original file position.
func (e *Engine) Results() []model.EnrichedRow {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session == nil {
		return nil
	}
	return e.session.CopyRows()
}

// Leaderboard returns the top makes of the active or most recent session.
func (e *Engine) Leaderboard() []model.LeaderboardEntry {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session == nil {
		return nil
	}
	return e.session.Leaderboard.TopN(e.cfg.LeaderboardSize)
}

// ExportRows merges session results back into the full input: every input
// row appears exactly once in original order, with resolved automotive rows
// carrying their makes. Fails when nothing has been processed. The rows come
// from the in-memory session, so an export still works after a persistence
// failure.
func (e *Engine) ExportRows() ([]model.EnrichedRow, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session == nil || e.session.ProcessedCount() == 0 {
		return nil, common.ErrNoResults
	}

	resolved := make(map[int]model.EnrichedRow, len(e.session.Rows))
	for _, row := range e.session.Rows {
		resolved[row.Item.Index] = row
	}

	out := make([]model.EnrichedRow, len(e.catalog))
	for i, row := range e.catalog {
		if done, ok := resolved[row.Item.Index]; ok {
			out[i] = done
		} else {
			out[i] = row
		}
	}
	return out, nil
}

// Export writes the merged enriched output to path, choosing CSV or XLSX
// by extension.
func (e *Engine) Export(path string) error {
	rows, err := e.ExportRows()
	if err != nil {
		return err
	}
	return tabular.Write(path, rows)
}

// launchLocked starts the background worker for the current session.
// Callers must hold e.mu.
func (e *Engine) launchLocked(ctx context.Context, pending []model.EnrichedRow) {
	runCtx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	e.done = make(chan struct{})
	e.running = true

	go e.process(runCtx, e.session, pending)
}

// pendingRowsLocked returns the automotive rows in the session's range that
// are not yet present in its results, in original order. Callers must hold
// e.mu.
func (e *Engine) pendingRowsLocked(session *model.Session) []model.EnrichedRow {
	processed := session.ProcessedIndexes()

	var pending []model.EnrichedRow
	for _, catalogIdx := range e.automotive[session.StartIndex:session.EndIndex] {
		row := e.catalog[catalogIdx]
		if !processed[row.Item.Index] {
			pending = append(pending, row)
		}
	}
	return pending
}

// process is the per-session worker. Rows are handled strictly in order;
// the stop request is honored between rows and during pacing waits.
func (e *Engine) process(ctx context.Context, session *model.Session, pending []model.EnrichedRow) {
	defer func() {
		e.mu.Lock()
		e.running = false
		e.cancel()
		close(e.done)
		e.mu.Unlock()
	}()

	for _, row := range pending {
		select {
		case <-ctx.Done():
			e.finishStopped(session)
			return
		default:
		}

		result, err := e.resolver.Resolve(ctx, row.LookupKey, row.Item.Description)
		if err != nil {
			// The resolver only fails when its context is canceled; a
			// source failure is already absorbed by fallback.
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				e.finishStopped(session)
				return
			}
			e.fail(session, fmt.Errorf("resolver error: %w", err))
			return
		}

		row.Resolution = result

		e.mu.Lock()
		if result.Status == model.StatusFound {
			session.Leaderboard.Record(result.Makes, row.Item.Quantity)
		}
		session.Rows = append(session.Rows, row)
		session.UpdatedAt = time.Now()
		snapshot := e.snapshotLocked(session)
		e.mu.Unlock()

		if err := e.store.SaveSession(context.WithoutCancel(ctx), snapshot); err != nil {
			e.fail(session, fmt.Errorf("failed to persist session progress: %w", err))
			return
		}

		e.publishRow(session, row)
	}

	e.finishCompleted(session)
}

// publishRow emits the result and progress events for a just-completed row.
func (e *Engine) publishRow(session *model.Session, row model.EnrichedRow) {
	e.mu.Lock()
	leaderboard := session.Leaderboard.TopN(e.cfg.LeaderboardSize)
	event := service.Event{
		SessionID:         session.ID,
		Row:               &row,
		Leaderboard:       leaderboard,
		ProcessedCount:    session.ProcessedCount(),
		TotalParts:        session.TotalParts,
		SuccessfulLookups: session.SuccessfulLookups(),
		SuccessRate:       session.SuccessRate(),
		ProgressPct:       session.ProgressPercentage(),
	}
	e.mu.Unlock()

	event.Type = service.EventResult
	e.bus.Publish(event)

	event.Type = service.EventProgress
	e.bus.Publish(event)
}

// finishCompleted marks the session complete and snapshots it into history.
func (e *Engine) finishCompleted(session *model.Session) {
	e.mu.Lock()
	session.Status = model.SessionCompleted
	session.UpdatedAt = time.Now()
	snapshot := e.snapshotLocked(session)
	successRate := session.SuccessRate()
	processed := session.ProcessedCount()
	e.mu.Unlock()

	e.persistTerminal(snapshot, true)

	e.bus.Publish(service.Event{
		Type:           service.EventCompleted,
		SessionID:      session.ID,
		Message:        "processing completed",
		ProcessedCount: processed,
		SuccessRate:    successRate,
		ProgressPct:    100,
	})

	slog.Info("Session completed",
		"session_id", session.ID,
		"processed", processed,
		"success_rate", fmt.Sprintf("%.1f%%", successRate))
}

// finishStopped records the cooperative stop, keeping partial results and
// snapshotting them into history.
func (e *Engine) finishStopped(session *model.Session) {
	e.mu.Lock()
	session.Status = model.SessionStopped
	session.UpdatedAt = time.Now()
	snapshot := e.snapshotLocked(session)
	processed := session.ProcessedCount()
	e.mu.Unlock()

	e.persistTerminal(snapshot, processed > 0)

	e.bus.Publish(service.Event{
		Type:           service.EventStopped,
		SessionID:      session.ID,
		Message:        "processing stopped by user",
		ProcessedCount: processed,
	})

	slog.Info("Session stopped", "session_id", session.ID, "partial_results", processed)
}

// fail marks the session failed. The in-memory rows stay queryable and
// exportable even when the store is unreachable; no history record is
// created automatically.
func (e *Engine) fail(session *model.Session, err error) {
	e.mu.Lock()
	session.Status = model.SessionFailed
	session.Error = err.Error()
	session.UpdatedAt = time.Now()
	snapshot := e.snapshotLocked(session)
	e.mu.Unlock()

	if saveErr := e.store.SaveSession(context.Background(), snapshot); saveErr != nil {
		slog.Error("Failed to persist failed session; results remain in memory",
			"session_id", session.ID,
			"error", saveErr)
	}

	e.bus.Publish(service.Event{
		Type:      service.EventError,
		SessionID: session.ID,
		Message:   fmt.Sprintf("processing failed: %v", err),
	})

	slog.Error("Session failed", "session_id", session.ID, "error", err)
}

// persistTerminal saves the terminal session state and, when asked, an
// independent history snapshot. Persistence trouble here is logged, not
// fatal: the run already finished and memory still holds the results.
func (e *Engine) persistTerminal(snapshot *model.Session, withHistory bool) {
	ctx := context.Background()

	if err := e.store.SaveSession(ctx, snapshot); err != nil {
		slog.Error("Failed to persist terminal session state",
			"session_id", snapshot.ID,
			"error", err)
	}

	if !withHistory {
		return
	}

	record := model.NewHistoryRecord(snapshot, e.cfg.SummaryTopMakes)
	if err := e.store.SaveHistory(ctx, record); err != nil {
		slog.Error("Failed to persist history record",
			"session_id", snapshot.ID,
			"error", err)
	}
}

// snapshotLocked builds an independent copy of the session for persistence
// and history, safe to use after e.mu is released. Callers must hold e.mu.
func (e *Engine) snapshotLocked(session *model.Session) *model.Session {
	copySession := *session
	copySession.Rows = session.CopyRows()
	leaderboard := model.NewLeaderboard()
	leaderboard.Restore(session.Leaderboard.Snapshot())
	copySession.Leaderboard = leaderboard
	return &copySession
}
