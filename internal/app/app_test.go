package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/pulse/internal/core/clock/clocktest"
	"github.com/colonyops/pulse/internal/core/config"
	"github.com/colonyops/pulse/internal/core/doctor"
	"github.com/colonyops/pulse/internal/core/eventbus"
	"github.com/colonyops/pulse/internal/core/eventbus/testbus"
	"github.com/colonyops/pulse/internal/core/notify"
	"github.com/colonyops/pulse/internal/core/search"
	"github.com/colonyops/pulse/internal/data/db"
	"github.com/colonyops/pulse/internal/data/stores"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()
	return &cfg
}

func openDB(t *testing.T, dir string) *db.DB {
	t.Helper()
	database, err := db.Open(dir, db.DefaultOpenOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func TestNewApp_WithoutDatabase(t *testing.T) {
	tb := testbus.New(t)
	cfg := testConfig(t)

	a, err := NewApp(context.Background(), cfg, tb.EventBus, nil, nil, clocktest.New(time.Time{}))
	require.NoError(t, err)

	assert.Equal(t, search.DefaultSeedHistory, a.Search.Snapshot().History)
	assert.Equal(t, search.DefaultCorpus, a.Corpus)
	assert.False(t, a.Archive.Enabled())
}

func TestNewApp_NotificationsFlowToBus(t *testing.T) {
	tb := testbus.New(t)
	clk := clocktest.New(time.Time{})

	a, err := NewApp(context.Background(), testConfig(t), tb.EventBus, nil, nil, clk)
	require.NoError(t, err)

	a.Notifications.Add(notify.Request{Kind: notify.KindSuccess, Title: "saved"})
	clk.Advance(notify.DefaultDuration)

	require.True(t, tb.WaitFor(eventbus.EventNotificationRemoved, time.Second))
	tb.AssertPublished(t, eventbus.EventNotificationAdded)
}

func TestNewApp_ArchivesNotifications(t *testing.T) {
	tb := testbus.New(t)
	cfg := testConfig(t)
	database := openDB(t, cfg.DataDir)
	ctx := context.Background()

	a, err := NewApp(ctx, cfg, tb.EventBus, database, nil, clocktest.New(time.Time{}))
	require.NoError(t, err)
	require.True(t, a.Archive.Enabled())

	id := a.Notifications.Add(notify.Request{Kind: notify.KindWarning, Title: "disk"})
	a.Notifications.Remove(id)

	store := stores.NewNotifyStore(database)
	require.Eventually(t, func() bool {
		records, err := store.List(ctx)
		return err == nil && len(records) == 1 && records[0].Reason == notify.ReasonDismissed
	}, time.Second, 10*time.Millisecond)
}

func TestNewApp_ArchiveDisabledByConfig(t *testing.T) {
	tb := testbus.New(t)
	cfg := testConfig(t)
	cfg.Notifications.Archive = false
	database := openDB(t, cfg.DataDir)

	a, err := NewApp(context.Background(), cfg, tb.EventBus, database, nil, clocktest.New(time.Time{}))
	require.NoError(t, err)
	assert.False(t, a.Archive.Enabled())
}

func TestNewApp_PersistsAndRestoresHistory(t *testing.T) {
	cfg := testConfig(t)
	database := openDB(t, cfg.DataDir)
	ctx := context.Background()

	first, err := NewApp(ctx, cfg, testbus.New(t).EventBus, database, nil, clocktest.New(time.Time{}))
	require.NoError(t, err)
	assert.Equal(t, search.DefaultSeedHistory, first.Search.Snapshot().History, "empty store falls back to seed")

	first.Search.CommitQuery("wallet connect")

	store := stores.NewHistoryStore(database)
	want := []string{"wallet connect", "Next.js authentication", "Solidity best practices", "Tailwind dark mode"}
	require.Eventually(t, func() bool {
		got, err := store.Load(ctx)
		return err == nil && assert.ObjectsAreEqual(want, got)
	}, time.Second, 10*time.Millisecond)

	second, err := NewApp(ctx, cfg, testbus.New(t).EventBus, database, nil, clocktest.New(time.Time{}))
	require.NoError(t, err)
	assert.Equal(t, want, second.Search.Snapshot().History)
}

func TestNewApp_CustomCorpus(t *testing.T) {
	corpus := []search.Candidate{{ID: "x", Title: "Custom", Category: search.CategoryDocs, Relevance: 10}}
	clk := clocktest.New(time.Time{})

	a, err := NewApp(context.Background(), testConfig(t), testbus.New(t).EventBus, nil, corpus, clk)
	require.NoError(t, err)

	a.Search.SetQuery("custom")
	clk.Advance(search.DefaultDebounce)
	results := a.Search.Snapshot().Results
	require.Len(t, results, 1)
	assert.Equal(t, "x", results[0].ID)
}

func TestApp_ConfigReloadAppliesDefaults(t *testing.T) {
	tb := testbus.New(t)
	clk := clocktest.New(time.Time{})

	a, err := NewApp(context.Background(), testConfig(t), tb.EventBus, nil, nil, clk)
	require.NoError(t, err)

	reloaded := testConfig(t)
	reloaded.Notifications.DefaultDuration = time.Second
	tb.PublishConfigReloaded(eventbus.ConfigReloadedPayload{Config: reloaded})

	// The router's toast is raised while the reload is dispatched, so once
	// its added event is seen every reload subscriber has run.
	require.True(t, tb.WaitFor(eventbus.EventNotificationAdded, time.Second))

	id := a.Notifications.Add(notify.Request{Title: "short"})
	clk.Advance(time.Second)
	_, ok := a.Notifications.Get(id)
	assert.False(t, ok)
}

func TestApp_ApplyConfigNil(t *testing.T) {
	a, err := NewApp(context.Background(), testConfig(t), testbus.New(t).EventBus, nil, nil, clocktest.New(time.Time{}))
	require.NoError(t, err)

	a.ApplyConfig(nil)
	assert.NotNil(t, a.Config)
}

func TestApp_State(t *testing.T) {
	a, err := NewApp(context.Background(), testConfig(t), testbus.New(t).EventBus, nil, nil, clocktest.New(time.Time{}))
	require.NoError(t, err)

	a.Demo.Trigger(DemoPersistent)
	a.Search.SetQuery("rust")

	st := a.State()
	require.Len(t, st.Notifications, 1)
	assert.Equal(t, "1", st.Badge)
	assert.Equal(t, "rust", st.Search.Query)
	assert.Equal(t, search.StatusLoading, st.Search.Status)
}

func TestApp_DoctorChecks(t *testing.T) {
	cfg := testConfig(t)
	database := openDB(t, cfg.DataDir)

	a, err := NewApp(context.Background(), cfg, testbus.New(t).EventBus, database, nil, clocktest.New(time.Time{}))
	require.NoError(t, err)

	results := doctor.RunAll(context.Background(), a.DoctorChecks("", false))
	require.Len(t, results, 3)

	_, _, failed := doctor.Summary(results)
	assert.Equal(t, 0, failed)
	assert.Equal(t, "0 archived", results[1].Items[0].Detail)
}
