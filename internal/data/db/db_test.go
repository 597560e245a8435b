package db

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_CreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	database, err := Open(dir, DefaultOpenOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	_, err = os.Stat(filepath.Join(dir, FileName))
	assert.NoError(t, err)
}

func TestOpen_Reopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	first, err := Open(dir, DefaultOpenOptions())
	require.NoError(t, err)
	require.NoError(t, first.Queries().InsertNotification(ctx, InsertNotificationParams{
		ID: "n-1", Kind: "info", Title: "kept", CreatedAt: 1,
	}))
	require.NoError(t, first.Close())

	second, err := Open(dir, DefaultOpenOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })

	count, err := second.Queries().CountNotifications(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := database.WithTx(ctx, func(q *Queries) error {
		if err := q.InsertSearchHistory(ctx, InsertSearchHistoryParams{Position: 0, Query: "a", UpdatedAt: 1}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	items, err := database.Queries().ListSearchHistory(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestQueries_Notifications(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()
	q := database.Queries()

	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, q.InsertNotification(ctx, InsertNotificationParams{
			ID: id, Kind: "info", Title: id, DurationMs: 5000, CreatedAt: int64(i + 1),
		}))
	}

	// Upsert keeps a single row per id.
	require.NoError(t, q.InsertNotification(ctx, InsertNotificationParams{
		ID: "a", Kind: "error", Title: "a2", CreatedAt: 1,
	}))

	rows, err := q.ListNotifications(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"c", "b", "a"}, []string{rows[0].ID, rows[1].ID, rows[2].ID})
	assert.Equal(t, "a2", rows[2].Title)
	assert.False(t, rows[0].RemovedAt.Valid)

	n, err := q.MarkNotificationRemoved(ctx, MarkNotificationRemovedParams{ID: "b", Reason: "expired", RemovedAt: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = q.MarkNotificationRemoved(ctx, MarkNotificationRemovedParams{ID: "b", Reason: "dismissed", RemovedAt: 11})
	require.NoError(t, err)
	assert.Zero(t, n, "first removal wins")

	n, err = q.MarkAllNotificationsRemoved(ctx, "cleared", 12)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	deleted, err := q.DeleteNotificationsBefore(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	count, err := q.CountNotifications(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
