package commands

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/pulse/internal/app"
	"github.com/colonyops/pulse/internal/core/notify"
	"github.com/colonyops/pulse/internal/printer"
	"github.com/colonyops/pulse/pkg/iojson"
)

var errArchiveDisabled = errors.New("notification archive is disabled (set notifications.archive: true)")

type NotificationsCmd struct {
	flags *Flags
	app   *app.App

	// flags
	jsonOutput bool
	limit      int
	yes        bool
	olderThan  time.Duration
}

// NewNotificationsCmd creates the notifications archive command.
func NewNotificationsCmd(flags *Flags, app *app.App) *NotificationsCmd {
	return &NotificationsCmd{flags: flags, app: app}
}

// Register adds the notifications command to the application
func (cmd *NotificationsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:    "notifications",
		Aliases: []string{"n"},
		Usage:   "Inspect the notification archive",
		Description: `Every notification raised in the TUI is archived with how it left the
screen: expired, dismissed, dragged away or cleared.`,
		Commands: []*cli.Command{
			{
				Name:      "ls",
				Usage:     "List archived notifications, newest first",
				UsageText: "pulse notifications ls [--json] [--limit n]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:        "json",
						Usage:       "output as JSON lines",
						Destination: &cmd.jsonOutput,
					},
					&cli.IntFlag{
						Name:        "limit",
						Aliases:     []string{"n"},
						Usage:       "maximum rows to print (0 for all)",
						Destination: &cmd.limit,
					},
				},
				Action: cmd.runList,
			},
			{
				Name:      "clear",
				Usage:     "Delete every archived notification",
				UsageText: "pulse notifications clear [--yes]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:        "yes",
						Aliases:     []string{"y"},
						Usage:       "skip confirmation",
						Destination: &cmd.yes,
					},
				},
				Action: cmd.runClear,
			},
			{
				Name:      "prune",
				Usage:     "Delete archived notifications older than a cutoff",
				UsageText: "pulse notifications prune [--older-than 168h]",
				Description: `Deletes archived notifications created before now minus --older-than.
Defaults to database.retention from the config.`,
				Flags: []cli.Flag{
					&cli.DurationFlag{
						Name:        "older-than",
						Usage:       "age cutoff (defaults to database.retention)",
						Destination: &cmd.olderThan,
					},
				},
				Action: cmd.runPrune,
			},
		},
	})

	return app
}

func (cmd *NotificationsCmd) store() (notify.Store, error) {
	store := cmd.app.Archive.Notes()
	if store == nil {
		return nil, errArchiveDisabled
	}
	return store, nil
}

func (cmd *NotificationsCmd) runList(ctx context.Context, c *cli.Command) error {
	store, err := cmd.store()
	if err != nil {
		return err
	}

	records, err := store.List(ctx)
	if err != nil {
		return fmt.Errorf("list notifications: %w", err)
	}
	if cmd.limit > 0 && len(records) > cmd.limit {
		records = records[:cmd.limit]
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		for _, r := range records {
			if err := iojson.WriteLine(out, r); err != nil {
				return fmt.Errorf("encode notification: %w", err)
			}
		}
		return nil
	}

	if len(records) == 0 {
		printer.Ctx(ctx).Infof("No archived notifications")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "CREATED\tKIND\tTITLE\tDURATION\tREASON")
	for _, r := range records {
		duration := "persistent"
		if !r.Persistent() {
			duration = r.Duration.String()
		}
		reason := string(r.Reason)
		if reason == "" {
			reason = "live"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			r.CreatedAt.Format(time.DateTime), r.Kind, r.Title, duration, reason)
	}
	_ = w.Flush()

	return nil
}

func (cmd *NotificationsCmd) runClear(ctx context.Context, _ *cli.Command) error {
	p := printer.Ctx(ctx)

	store, err := cmd.store()
	if err != nil {
		return err
	}

	count, err := store.Count(ctx)
	if err != nil {
		return fmt.Errorf("count notifications: %w", err)
	}
	if count == 0 {
		p.Infof("No archived notifications to clear")
		return nil
	}

	if !cmd.yes {
		ok, err := confirm(fmt.Sprintf("Delete %d archived notification(s)?", count))
		if err != nil {
			return err
		}
		if !ok {
			p.Infof("Clear cancelled")
			return nil
		}
	}

	if err := store.Clear(ctx); err != nil {
		return fmt.Errorf("clear notifications: %w", err)
	}

	p.Successf("Cleared %d notification(s)", count)
	return nil
}

func (cmd *NotificationsCmd) runPrune(ctx context.Context, _ *cli.Command) error {
	p := printer.Ctx(ctx)

	store, err := cmd.store()
	if err != nil {
		return err
	}

	age := cmd.olderThan
	if age <= 0 {
		age = cmd.app.Config.Database.Retention
	}
	if age <= 0 {
		return fmt.Errorf("no cutoff: pass --older-than or set database.retention")
	}

	count, err := store.Prune(ctx, time.Now().Add(-age))
	if err != nil {
		return fmt.Errorf("prune notifications: %w", err)
	}

	if count == 0 {
		p.Infof("No notifications older than %s", age)
		return nil
	}

	p.Successf("Pruned %d notification(s)", count)
	return nil
}

// confirm asks a yes/no question on the terminal. An aborted prompt counts as
// no.
func confirm(title string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("confirm: %w", err)
	}
	return ok, nil
}
