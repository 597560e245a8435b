// Package app wires the notification manager and search pipeline to the event
// bus, the sqlite archive and configuration.
package app

import (
	"context"
	"fmt"

	"github.com/colonyops/pulse/internal/core/clock"
	"github.com/colonyops/pulse/internal/core/config"
	"github.com/colonyops/pulse/internal/core/doctor"
	"github.com/colonyops/pulse/internal/core/eventbus"
	"github.com/colonyops/pulse/internal/core/notify"
	"github.com/colonyops/pulse/internal/core/search"
	"github.com/colonyops/pulse/internal/data/db"
	"github.com/colonyops/pulse/internal/data/stores"
)

// App is the central entry point for all pulse operations.
// Commands and TUI consume App instead of cherry-picking raw dependencies.
type App struct {
	Notifications *notify.Manager
	Search        *search.Pipeline
	Archive       *ArchiveService
	Demo          *DemoService

	Bus    *eventbus.EventBus
	Config *config.Config
	DB     *db.DB
	// KV is the expiring key/value cache. Nil when there is no database.
	KV     *stores.KVStore
	Corpus []search.Candidate
}

// NewApp constructs an App from explicit dependencies. database may be nil,
// in which case nothing is archived and search history lives only in memory.
func NewApp(
	ctx context.Context,
	cfg *config.Config,
	bus *eventbus.EventBus,
	database *db.DB,
	corpus []search.Candidate,
	clk clock.Clock,
) (*App, error) {
	if clk == nil {
		clk = clock.Real()
	}
	if corpus == nil {
		corpus = search.DefaultCorpus
	}

	var (
		notifyStore  notify.Store
		historyStore search.HistoryStore
		kvStore      *stores.KVStore
	)
	if database != nil {
		kvStore = stores.NewKVStore(database)
		if cfg.Notifications.Archive {
			notifyStore = stores.NewNotifyStore(database)
		}
		if cfg.Search.Persist {
			historyStore = stores.NewHistoryStore(database)
		}
	}

	history, err := initialHistory(ctx, cfg, historyStore)
	if err != nil {
		return nil, err
	}

	manager := notify.NewManager(
		notify.WithClock(clk),
		notify.WithSink(eventbus.NotifySink(bus)),
		notify.WithDefaultDuration(cfg.Notifications.DefaultDuration),
		notify.WithDragThreshold(cfg.Notifications.DragThreshold),
	)

	pipeline := search.NewPipeline(corpus,
		search.WithClock(clk),
		search.WithSink(eventbus.SearchSink(bus)),
		search.WithDebounce(cfg.Search.Debounce),
		search.WithHistoryLimit(cfg.Search.HistoryLimit),
		search.WithHistory(history),
	)

	archive := NewArchiveService(notifyStore, historyStore)
	archive.Register(ctx, bus)

	eventbus.NewNotificationRouter(bus, manager).Register()

	a := &App{
		Notifications: manager,
		Search:        pipeline,
		Archive:       archive,
		Demo:          NewDemoService(manager),
		Bus:           bus,
		Config:        cfg,
		DB:            database,
		KV:            kvStore,
		Corpus:        corpus,
	}

	bus.SubscribeConfigReloaded(func(p eventbus.ConfigReloadedPayload) {
		a.ApplyConfig(p.Config)
	})

	return a, nil
}

// ApplyConfig pushes the runtime-tunable settings of cfg into the manager and
// pipeline. Live notifications and open debounce windows are left alone.
// a.Config keeps the startup configuration.
func (a *App) ApplyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	a.Notifications.SetDefaults(cfg.Notifications.DefaultDuration, cfg.Notifications.DragThreshold)
	a.Search.SetDebounce(cfg.Search.Debounce)
}

// StateSnapshot is a point-in-time view of the live notifications and the
// search session.
type StateSnapshot struct {
	Notifications []notify.Notification `json:"notifications"`
	Badge         string                `json:"badge"`
	Search        search.State          `json:"search"`
}

// State returns a snapshot of the live state.
func (a *App) State() StateSnapshot {
	return StateSnapshot{
		Notifications: a.Notifications.Active(),
		Badge:         a.Notifications.BadgeLabel(),
		Search:        a.Search.Snapshot(),
	}
}

// DoctorChecks returns the health checks for this installation. With autofix
// the archive check prunes notifications past retention.
func (a *App) DoctorChecks(configPath string, autofix bool) []doctor.Check {
	var archive doctor.ArchiveStore
	if notes := a.Archive.Notes(); notes != nil {
		archive = notes
	}

	return []doctor.Check{
		doctor.NewConfigCheck(a.Config, configPath),
		doctor.NewArchiveCheck(archive, a.Config.Database.Retention, autofix),
		doctor.NewCorpusCheck(a.Corpus),
	}
}

// initialHistory returns the persisted history when there is one, and the
// configured seed otherwise.
func initialHistory(ctx context.Context, cfg *config.Config, store search.HistoryStore) ([]string, error) {
	if store == nil {
		return cfg.Search.SeedHistory, nil
	}

	entries, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load search history: %w", err)
	}
	if len(entries) == 0 {
		return cfg.Search.SeedHistory, nil
	}
	return entries, nil
}
