package stores

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/pulse/internal/core/notify"
)

func sample(id string, kind notify.Kind, createdAt time.Time) notify.Notification {
	return notify.Notification{
		ID:        id,
		Kind:      kind,
		Title:     "title " + id,
		Message:   "message " + id,
		Duration:  5 * time.Second,
		CreatedAt: createdAt,
	}
}

func TestNotifyStore(t *testing.T) {
	ctx := context.Background()

	t.Run("save and list", func(t *testing.T) {
		store := NewNotifyStore(openTestDB(t))

		now := time.Now()
		require.NoError(t, store.Save(ctx, sample("n-1", notify.KindError, now)))

		items, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "n-1", items[0].ID)
		assert.Equal(t, notify.KindError, items[0].Kind)
		assert.Equal(t, "title n-1", items[0].Title)
		assert.Equal(t, 5*time.Second, items[0].Duration)
		assert.Equal(t, now.UnixNano(), items[0].CreatedAt.UnixNano())
		assert.Empty(t, items[0].Reason)
		assert.True(t, items[0].RemovedAt.IsZero())
	})

	t.Run("persistent duration round trips as zero", func(t *testing.T) {
		store := NewNotifyStore(openTestDB(t))

		n := sample("p", notify.KindInfo, time.Now())
		n.Duration = 0
		require.NoError(t, store.Save(ctx, n))

		items, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.True(t, items[0].Persistent())
	})

	t.Run("list returns newest first", func(t *testing.T) {
		store := NewNotifyStore(openTestDB(t))

		base := time.Now()
		for i, id := range []string{"first", "second", "third"} {
			require.NoError(t, store.Save(ctx, sample(id, notify.KindInfo, base.Add(time.Duration(i)*time.Second))))
		}

		items, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, items, 3)
		assert.Equal(t, "third", items[0].ID)
		assert.Equal(t, "second", items[1].ID)
		assert.Equal(t, "first", items[2].ID)
	})

	t.Run("mark removed records first reason only", func(t *testing.T) {
		store := NewNotifyStore(openTestDB(t))

		now := time.Now()
		require.NoError(t, store.Save(ctx, sample("a", notify.KindInfo, now)))
		require.NoError(t, store.Save(ctx, sample("b", notify.KindInfo, now.Add(time.Second))))

		require.NoError(t, store.MarkRemoved(ctx, "a", notify.ReasonExpired, now.Add(5*time.Second)))
		require.NoError(t, store.MarkRemoved(ctx, "a", notify.ReasonDismissed, now.Add(6*time.Second)))
		require.NoError(t, store.MarkRemoved(ctx, "unknown", notify.ReasonDismissed, now))
		require.NoError(t, store.MarkAllRemoved(ctx, notify.ReasonCleared, now.Add(7*time.Second)))

		items, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, items, 2)

		assert.Equal(t, notify.ReasonCleared, items[0].Reason)
		assert.Equal(t, notify.ReasonExpired, items[1].Reason)
		assert.Equal(t, now.Add(5*time.Second).UnixNano(), items[1].RemovedAt.UnixNano())
	})

	t.Run("clear deletes all", func(t *testing.T) {
		store := NewNotifyStore(openTestDB(t))

		require.NoError(t, store.Save(ctx, sample("w", notify.KindWarning, time.Now())))
		require.NoError(t, store.Clear(ctx))

		items, err := store.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("count", func(t *testing.T) {
		store := NewNotifyStore(openTestDB(t))

		count, err := store.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)

		for i, id := range []string{"a", "b", "c"} {
			require.NoError(t, store.Save(ctx, sample(id, notify.KindInfo, time.Now().Add(time.Duration(i)*time.Millisecond))))
		}

		count, err = store.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})

	t.Run("prune removes older rows", func(t *testing.T) {
		store := NewNotifyStore(openTestDB(t))

		base := time.Now()
		require.NoError(t, store.Save(ctx, sample("old", notify.KindInfo, base.Add(-48*time.Hour))))
		require.NoError(t, store.Save(ctx, sample("new", notify.KindInfo, base)))

		stale, err := store.CountBefore(ctx, base.Add(-24*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, int64(1), stale)

		n, err := store.Prune(ctx, base.Add(-24*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		items, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "new", items[0].ID)
	})

	t.Run("empty list returns empty slice", func(t *testing.T) {
		store := NewNotifyStore(openTestDB(t))

		items, err := store.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, items)
		assert.NotNil(t, items)
	})
}
