package storage

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/partscout/partscout/internal/model"
)

func createTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func testSession(id string) *model.Session {
	lb := model.NewLeaderboard()
	lb.Record([]string{"Toyota", "Honda"}, 2)

	return &model.Session{
		ID:         id,
		Status:     model.SessionRunning,
		StartIndex: 0,
		EndIndex:   10,
		TotalParts: 25,
		IsTest:     false,
		Rows: []model.EnrichedRow{
			{
				Item:       model.LineItem{Index: 0, ItemNumber: "AZ_100", Description: "Brake Pads", Quantity: 2},
				Category:   model.CategoryAutomotive,
				LookupKey:  "100",
				Resolution: model.NewFoundResult("RockAuto", []string{"Toyota", "Honda"}),
			},
		},
		Leaderboard: lb,
		CreatedAt:   time.Now(),
	}
}

func TestSQLiteStore_SessionRoundTrip(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	session := testSession("sess-1")
	require.NoError(t, store.SaveSession(ctx, session))

	loaded, err := store.GetSession(ctx, "sess-1")
	require.NoError(t, err)

	assert.Equal(t, session.ID, loaded.ID)
	assert.Equal(t, model.SessionRunning, loaded.Status)
	assert.Equal(t, session.StartIndex, loaded.StartIndex)
	assert.Equal(t, session.EndIndex, loaded.EndIndex)
	assert.Equal(t, session.TotalParts, loaded.TotalParts)

	require.Len(t, loaded.Rows, 1)
	assert.Equal(t, "AZ_100", loaded.Rows[0].Item.ItemNumber)
	require.NotNil(t, loaded.Rows[0].Resolution)
	assert.Equal(t, []string{"Honda", "Toyota"}, loaded.Rows[0].Resolution.Makes)

	assert.Equal(t, session.Leaderboard.Snapshot(), loaded.Leaderboard.Snapshot())
}

func TestSQLiteStore_SaveSessionUpserts(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	session := testSession("sess-1")
	require.NoError(t, store.SaveSession(ctx, session))

	session.Status = model.SessionCompleted
	session.Rows = append(session.Rows, model.EnrichedRow{
		Item:       model.LineItem{Index: 1, ItemNumber: "AZ_200", Quantity: 1},
		Category:   model.CategoryAutomotive,
		LookupKey:  "200",
		Resolution: model.NewNotFoundResult(),
	})
	require.NoError(t, store.SaveSession(ctx, session))

	loaded, err := store.GetSession(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, model.SessionCompleted, loaded.Status)
	assert.Len(t, loaded.Rows, 2)
}

func TestSQLiteStore_GetSessionNotFound(t *testing.T) {
	store := createTestStore(t)

	_, err := store.GetSession(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestSQLiteStore_ListSessions(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	older := testSession("older")
	require.NoError(t, store.SaveSession(ctx, older))

	time.Sleep(5 * time.Millisecond)

	newer := testSession("newer")
	newer.Status = model.SessionStopped
	require.NoError(t, store.SaveSession(ctx, newer))

	infos, err := store.ListSessions(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 2)

	assert.Equal(t, "newer", infos[0].ID, "newest first")
	assert.Equal(t, model.SessionStopped, infos[0].Status)
	assert.Equal(t, 1, infos[0].ProcessedCount)
	assert.Equal(t, 10, infos[0].RangeSize)
	assert.InDelta(t, 10.0, infos[0].ProgressPct, 0.001)
	assert.Equal(t, "older", infos[1].ID)
}

func TestSQLiteStore_DeleteSession(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveSession(ctx, testSession("sess-1")))
	require.NoError(t, store.DeleteSession(ctx, "sess-1"))

	_, err := store.GetSession(ctx, "sess-1")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	err = store.DeleteSession(ctx, "sess-1")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestSQLiteStore_SaveSessionValidation(t *testing.T) {
	store := createTestStore(t)

	assert.Error(t, store.SaveSession(context.Background(), nil))

	//nolint:staticcheck // deliberately passing a nil context
	assert.Error(t, store.SaveSession(nil, testSession("sess-1")))
}
