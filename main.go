package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/pulse/internal/app"
	"github.com/colonyops/pulse/internal/app/sweep"
	"github.com/colonyops/pulse/internal/app/updatecheck"
	"github.com/colonyops/pulse/internal/commands"
	"github.com/colonyops/pulse/internal/core/config"
	"github.com/colonyops/pulse/internal/core/eventbus"
	"github.com/colonyops/pulse/internal/core/logging"
	"github.com/colonyops/pulse/internal/core/search"
	"github.com/colonyops/pulse/internal/core/styles"
	"github.com/colonyops/pulse/internal/data/db"
	"github.com/colonyops/pulse/internal/data/stores"
	"github.com/colonyops/pulse/internal/printer"
	"github.com/colonyops/pulse/internal/tui"
	"github.com/colonyops/pulse/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, init() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	// When installed via `go install module@version`, ldflags aren't set
	// so version remains "dev". Fall back to runtime/debug.BuildInfo which
	// Go populates automatically with the module version and VCS metadata.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var (
		logCloser   func()
		pulseApp    = &app.App{}
		database    *db.DB
		watcher     *config.Watcher
		sweepCancel context.CancelFunc
		busCancel   context.CancelFunc
		busDone     chan struct{}
		bus         *eventbus.EventBus
	)

	flags := &commands.Flags{}

	root := &cli.Command{
		Name:      "pulse",
		Usage:     "Toast notifications and debounced search for the terminal",
		UsageText: "pulse [global options] command [command options]",
		Description: `Pulse shows timed toast notifications with pause on focus, drag to dismiss
and a notification center, next to a debounced search with category filters
and recent searches.

Run 'pulse' with no arguments to open the interactive demo.
Run 'pulse search <query>' to query the corpus from the shell.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("PULSE_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <data-dir>/pulse.log)",
				Sources:     cli.EnvVars("PULSE_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("PULSE_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("PULSE_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			// Always log to a file; use explicit path or default to <datadir>/pulse.log
			logFile := flags.LogFile
			if logFile == "" {
				logFile = filepath.Join(flags.DataDir, "pulse.log")
			}

			logger, closer, err := logutils.New(flags.LogLevel, logFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			logging.Install(logger)
			logCloser = closer

			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			flags.Config = cfg

			// Apply configured theme (validation ensures name is valid)
			styles.SetThemeByName(cfg.TUI.Theme)

			dbOpts := db.OpenOptions{
				MaxOpenConns: cfg.Database.MaxOpenConns,
				MaxIdleConns: cfg.Database.MaxIdleConns,
				BusyTimeout:  cfg.Database.BusyTimeout,
			}
			database, err = stores.OpenWithRecovery(cfg.DataDir, dbOpts)
			if err != nil {
				return ctx, fmt.Errorf("open database: %w", err)
			}

			bus = eventbus.New(256)
			eventbus.RegisterDebugLogger(bus, logging.Component("eventbus"))

			busCtx, cancel := context.WithCancel(context.Background())
			busCancel = cancel
			busDone = make(chan struct{})
			go func() {
				defer close(busDone)
				bus.Start(busCtx)
			}()

			var corpus []search.Candidate
			if cfg.Search.CorpusFile != "" {
				corpus, err = search.LoadCorpusGlob(cfg.Search.CorpusFile)
				if err != nil {
					return ctx, fmt.Errorf("load corpus: %w", err)
				}
			}

			a, err := app.NewApp(ctx, cfg, bus, database, corpus, nil)
			if err != nil {
				return ctx, err
			}
			// Populate the pre-allocated App struct (commands already hold a pointer to it)
			*pulseApp = *a

			sweepCtx, cancelSweep := context.WithCancel(context.Background())
			sweepCancel = cancelSweep
			go sweep.Start(sweepCtx, pulseApp.Archive.Notes(), bus, sweep.Options{
				Interval:  cfg.Database.SweepInterval,
				Retention: cfg.Database.Retention,
				Expirer:   pulseApp.KV,
			})

			watcher, err = config.NewWatcher(flags.ConfigPath, flags.DataDir,
				func(next *config.Config) {
					bus.PublishConfigReloaded(eventbus.ConfigReloadedPayload{Config: next})
				},
				func(path string, err error) {
					bus.PublishConfigReloadFailed(eventbus.ConfigReloadFailedPayload{Path: path, Err: err})
				},
			)
			if err != nil {
				log.Warn().Err(err).Msg("config watcher disabled")
			}

			go updatecheck.Announce(sweepCtx, bus, pulseApp.KV, version)

			return printer.NewContext(ctx, printer.New(c.Root().ErrWriter)), nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			// Stop background sweep and update check
			if sweepCancel != nil {
				sweepCancel()
			}

			if watcher != nil {
				if err := watcher.Close(); err != nil {
					log.Warn().Err(err).Msg("failed to close config watcher")
				}
			}

			// Stop the bus, then run whatever was queued during shutdown so the
			// archive sees the final history before the database closes.
			if busCancel != nil {
				busCancel()
				<-busDone
				bus.Drain()
			}

			// Close database connection
			if database != nil {
				if err := database.Close(); err != nil {
					log.Error().Err(err).Msg("failed to close database")
					return err
				}
			}

			// Close log file
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	tuiCmd := commands.NewTuiCmd(flags, pulseApp, tui.BuildInfo{Version: version, Commit: commit, Date: date})

	root = commands.NewSearchCmd(flags, pulseApp).Register(root)
	root = commands.NewBatchCmd(flags, pulseApp).Register(root)
	root = commands.NewHistoryCmd(flags, pulseApp).Register(root)
	root = commands.NewNotificationsCmd(flags, pulseApp).Register(root)
	root = commands.NewDoctorCmd(flags, pulseApp).Register(root)
	root = commands.NewDBCmd(flags, pulseApp).Register(root)
	root = commands.NewConfigValidateCmd(flags).Register(root)

	// Register TUI flags on root command
	root.Flags = append(root.Flags, tuiCmd.Flags()...)

	// Set TUI as default action when no subcommand is provided
	root.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'pulse --help' for usage", c.Args().First())
		}
		return tuiCmd.Run(ctx, c)
	}

	exitCode := 0
	runErr := root.Run(ctx, os.Args)
	if runErr != nil {
		fmt.Println()
		fmt.Println(runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
