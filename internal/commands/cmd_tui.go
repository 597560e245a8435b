package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/pulse/internal/app"
	"github.com/colonyops/pulse/internal/core/eventbus"
	"github.com/colonyops/pulse/internal/profiler"
	"github.com/colonyops/pulse/internal/tui"
	"github.com/colonyops/pulse/pkg/utils"
)

type TuiCmd struct {
	flags *Flags
	app   *app.App
	build tui.BuildInfo
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags, app *app.App, build tui.BuildInfo) *TuiCmd {
	return &TuiCmd{
		flags: flags,
		app:   app,
		build: build,
	}
}

// Flags returns the TUI-specific flags for registration on the root command
func (cmd *TuiCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "profiler-port",
			Usage:       "enable pprof and state HTTP endpoints on specified port (e.g., 6060)",
			Sources:     cli.EnvVars("PULSE_PROFILER_PORT"),
			Destination: &cmd.flags.ProfilerPort,
		},
	}
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *TuiCmd) run(ctx context.Context, c *cli.Command) error {
	if cmd.flags.ProfilerPort > 0 {
		profServer := profiler.New(cmd.flags.ProfilerPort, func() any { return cmd.app.State() })
		if err := profServer.Start(ctx); err != nil {
			return fmt.Errorf("failed to start profiler: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := profServer.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("failed to shutdown profiler server")
			}
		}()
		log.Info().
			Str("url", fmt.Sprintf("http://%s%s", profServer.Addr(), profiler.StatePath)).
			Msg("profiler endpoint available")
	}

	// Anything worth telling the user after the alt screen closes is held
	// here until the program exits.
	deferred := &utils.DeferredWriter{}
	cmd.app.Bus.SubscribeUpdateAvailable(func(p eventbus.UpdateAvailablePayload) {
		_, _ = fmt.Fprintf(deferred, "pulse %s is available (running %s)\n", p.Latest, p.Current)
	})
	defer func() { _ = deferred.Flush(c.Root().ErrWriter) }()

	cfg := cmd.app.Config
	return tui.Run(ctx, cmd.app, tui.Options{
		TickInterval: cfg.Notifications.TickInterval,
		RecentLimit:  cfg.Notifications.RecentLimit,
		Build:        cmd.build,
	})
}
