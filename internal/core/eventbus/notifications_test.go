package eventbus_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/pulse/internal/core/clock/clocktest"
	"github.com/colonyops/pulse/internal/core/config"
	"github.com/colonyops/pulse/internal/core/eventbus"
	"github.com/colonyops/pulse/internal/core/eventbus/testbus"
	"github.com/colonyops/pulse/internal/core/notify"
)

func newRoutedManager(t *testing.T) (*testbus.Bus, *notify.Manager) {
	t.Helper()

	tb := testbus.New(t)
	m := notify.NewManager(
		notify.WithClock(clocktest.New(time.Time{})),
		notify.WithSink(eventbus.NotifySink(tb.EventBus)),
	)
	eventbus.NewNotificationRouter(tb.EventBus, m).Register()
	return tb, m
}

func latestAdded(t *testing.T, tb *testbus.Bus) notify.Notification {
	t.Helper()
	tb.AssertPublished(t, eventbus.EventNotificationAdded)

	var n notify.Notification
	for _, e := range tb.Events() {
		if p, ok := e.Payload.(eventbus.NotificationAddedPayload); ok {
			n = p.Notification
		}
	}
	return n
}

func TestNotificationRouter_ConfigReloaded(t *testing.T) {
	tb, m := newRoutedManager(t)

	tb.PublishConfigReloaded(eventbus.ConfigReloadedPayload{Config: &config.Config{}})
	n := latestAdded(t, tb)

	assert.Equal(t, notify.KindSuccess, n.Kind)
	assert.Equal(t, "Configuration reloaded", n.Title)
	assert.Equal(t, 1, m.Len())
}

func TestNotificationRouter_ConfigReloadFailed(t *testing.T) {
	tb, _ := newRoutedManager(t)

	tb.PublishConfigReloadFailed(eventbus.ConfigReloadFailedPayload{
		Path: "/tmp/config.yaml",
		Err:  errors.New("yaml: line 3"),
	})
	n := latestAdded(t, tb)

	assert.Equal(t, notify.KindError, n.Kind)
	assert.Contains(t, n.Message, "/tmp/config.yaml")
	assert.Contains(t, n.Message, "yaml: line 3")
}

func TestNotificationRouter_ArchivePruned(t *testing.T) {
	tb, _ := newRoutedManager(t)

	tb.PublishArchivePruned(eventbus.ArchivePrunedPayload{Count: 4})
	n := latestAdded(t, tb)

	assert.Equal(t, notify.KindInfo, n.Kind)
	assert.Contains(t, n.Message, "4")
}

func TestNotificationRouter_ArchivePrunedZeroDoesNotNotify(t *testing.T) {
	tb, m := newRoutedManager(t)

	tb.PublishArchivePruned(eventbus.ArchivePrunedPayload{Count: 0})
	require.True(t, tb.WaitFor(eventbus.EventArchivePruned, time.Second))

	tb.AssertNotPublished(t, eventbus.EventNotificationAdded, 100*time.Millisecond)
	assert.Zero(t, m.Len())
}

func TestNotificationRouter_UpdateAvailable(t *testing.T) {
	tb, _ := newRoutedManager(t)

	tb.PublishUpdateAvailable(eventbus.UpdateAvailablePayload{Current: "v0.3.0", Latest: "v0.4.0"})
	n := latestAdded(t, tb)

	assert.Equal(t, notify.KindInfo, n.Kind)
	assert.Equal(t, "Update available", n.Title)
	assert.Contains(t, n.Message, "v0.4.0")
	assert.Contains(t, n.Message, "v0.3.0")
}

func TestNotificationRouter_NilSafe(t *testing.T) {
	var r *eventbus.NotificationRouter
	r.Register()
	eventbus.NewNotificationRouter(nil, nil).Register()
}
