package app

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/pulse/internal/core/eventbus"
	"github.com/colonyops/pulse/internal/core/eventbus/testbus"
	"github.com/colonyops/pulse/internal/core/notify"
)

type memNotes struct {
	mu       sync.Mutex
	saved    []string
	removed  map[string]notify.Reason
	clearedN int
	saveErr  error
}

func newMemNotes() *memNotes {
	return &memNotes{removed: map[string]notify.Reason{}}
}

func (m *memNotes) Save(_ context.Context, n notify.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, n.ID)
	return nil
}

func (m *memNotes) MarkRemoved(_ context.Context, id string, reason notify.Reason, _ time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.removed[id]; !ok {
		m.removed[id] = reason
	}
	return nil
}

func (m *memNotes) MarkAllRemoved(context.Context, notify.Reason, time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearedN++
	return nil
}

func (m *memNotes) List(context.Context) ([]notify.Record, error) { return nil, nil }
func (m *memNotes) Clear(context.Context) error                   { return nil }
func (m *memNotes) Count(context.Context) (int64, error)          { return 0, nil }

func (m *memNotes) CountBefore(context.Context, time.Time) (int64, error) { return 0, nil }

func (m *memNotes) Prune(context.Context, time.Time) (int64, error) { return 0, nil }

func (m *memNotes) snapshot() ([]string, map[string]notify.Reason, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := make(map[string]notify.Reason, len(m.removed))
	for k, v := range m.removed {
		removed[k] = v
	}
	return slices.Clone(m.saved), removed, m.clearedN
}

type memHistory struct {
	mu       sync.Mutex
	replaced [][]string
	clears   int
}

func (m *memHistory) Load(context.Context) ([]string, error) { return nil, nil }

func (m *memHistory) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clears++
	return nil
}

func (m *memHistory) clearCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.clears
}

func (m *memHistory) Replace(_ context.Context, entries []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replaced = append(m.replaced, slices.Clone(entries))
	return nil
}

func (m *memHistory) last() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.replaced) == 0 {
		return nil
	}
	return m.replaced[len(m.replaced)-1]
}

func TestArchiveService_MirrorsLifecycle(t *testing.T) {
	tb := testbus.New(t)
	notes := newMemNotes()
	NewArchiveService(notes, nil).Register(context.Background(), tb.EventBus)

	n := notify.Notification{ID: "a", Kind: notify.KindInfo}
	tb.PublishNotificationAdded(eventbus.NotificationAddedPayload{Notification: n})
	tb.PublishNotificationRemoved(eventbus.NotificationRemovedPayload{Notification: n, Reason: notify.ReasonDragged})
	tb.PublishNotificationsCleared(eventbus.NotificationsClearedPayload{Count: 0})
	tb.PublishNotificationsCleared(eventbus.NotificationsClearedPayload{Count: 2})

	require.True(t, tb.WaitForCount(eventbus.EventNotificationsCleared, 2, time.Second))
	require.Eventually(t, func() bool {
		_, _, cleared := notes.snapshot()
		return cleared == 1
	}, time.Second, 5*time.Millisecond)

	saved, removed, _ := notes.snapshot()
	assert.Equal(t, []string{"a"}, saved)
	assert.Equal(t, map[string]notify.Reason{"a": notify.ReasonDragged}, removed)
}

func TestArchiveService_SaveErrorDoesNotStopBus(t *testing.T) {
	tb := testbus.New(t)
	notes := newMemNotes()
	notes.saveErr = errors.New("disk full")
	NewArchiveService(notes, nil).Register(context.Background(), tb.EventBus)

	tb.PublishNotificationAdded(eventbus.NotificationAddedPayload{Notification: notify.Notification{ID: "a"}})
	tb.PublishNotificationRemoved(eventbus.NotificationRemovedPayload{Notification: notify.Notification{ID: "a"}, Reason: notify.ReasonExpired})

	require.Eventually(t, func() bool {
		_, removed, _ := notes.snapshot()
		return removed["a"] == notify.ReasonExpired
	}, time.Second, 5*time.Millisecond)
}

func TestArchiveService_PersistsHistory(t *testing.T) {
	tb := testbus.New(t)
	history := &memHistory{}
	NewArchiveService(nil, history).Register(context.Background(), tb.EventBus)

	tb.PublishSearchHistoryChanged(eventbus.SearchHistoryChangedPayload{History: []string{"b", "a"}})

	require.Eventually(t, func() bool {
		return assert.ObjectsAreEqual([]string{"b", "a"}, history.last())
	}, time.Second, 5*time.Millisecond)
}

func TestArchiveService_EmptyHistoryClearsStore(t *testing.T) {
	tb := testbus.New(t)
	history := &memHistory{}
	NewArchiveService(nil, history).Register(context.Background(), tb.EventBus)

	tb.PublishSearchHistoryChanged(eventbus.SearchHistoryChangedPayload{History: nil})

	require.Eventually(t, func() bool {
		return history.clearCount() == 1
	}, time.Second, 5*time.Millisecond)
	assert.Nil(t, history.last())
}

func TestArchiveService_NilSafe(t *testing.T) {
	var s *ArchiveService
	assert.False(t, s.Enabled())
	s.Register(context.Background(), nil)

	NewArchiveService(nil, nil).Register(context.Background(), nil)
}
