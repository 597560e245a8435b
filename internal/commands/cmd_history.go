package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/pulse/internal/app"
	"github.com/colonyops/pulse/internal/printer"
)

type HistoryCmd struct {
	flags *Flags
	app   *app.App

	// flags
	jsonOutput bool
	yes        bool
}

// NewHistoryCmd creates the search history command.
func NewHistoryCmd(flags *Flags, app *app.App) *HistoryCmd {
	return &HistoryCmd{flags: flags, app: app}
}

// Register adds the history command to the application
func (cmd *HistoryCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "history",
		Usage: "Manage recent searches",
		Commands: []*cli.Command{
			{
				Name:      "ls",
				Usage:     "List recent searches, most recent first",
				UsageText: "pulse history ls [--json]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:        "json",
						Usage:       "output as JSON",
						Destination: &cmd.jsonOutput,
					},
				},
				Action: cmd.runList,
			},
			{
				Name:          "rm",
				Usage:         "Remove a recent search",
				UsageText:     "pulse history rm <query>",
				ShellComplete: HistoryCompleter(cmd.app),
				Action:        cmd.runRemove,
			},
			{
				Name:      "clear",
				Usage:     "Remove every recent search",
				UsageText: "pulse history clear [--yes]",
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
		},
	})

	return app
}

func (cmd *HistoryCmd) warnIfVolatile(p *printer.Printer) {
	if cmd.app.Archive.History() == nil {
		p.Warnf("search history is not persisted (search.persist is off); the change lasts until exit")
	}
}

func (cmd *HistoryCmd) runList(ctx context.Context, c *cli.Command) error {
	history := cmd.app.Search.Snapshot().History

	if cmd.jsonOutput {
		if history == nil {
			history = []string{}
		}
		return writeJSON(c.Root().Writer, history)
	}

	if len(history) == 0 {
		printer.Ctx(ctx).Infof("No recent searches")
		return nil
	}
	for _, q := range history {
		_, _ = fmt.Fprintln(c.Root().Writer, q)
	}
	return nil
}

func (cmd *HistoryCmd) runRemove(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	query := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("a query is required. Run 'pulse history rm --help' for usage")
	}

	before := len(cmd.app.Search.Snapshot().History)
	cmd.app.Search.RemoveHistoryItem(query)
	if len(cmd.app.Search.Snapshot().History) == before {
		return fmt.Errorf("%q is not in recent searches", query)
	}

	cmd.warnIfVolatile(p)
	p.Successf("Removed %q", query)
	return nil
}

func (cmd *HistoryCmd) runClear(ctx context.Context, _ *cli.Command) error {
	p := printer.Ctx(ctx)

	count := len(cmd.app.Search.Snapshot().History)
	if count == 0 {
		p.Infof("No recent searches to clear")
		return nil
	}

	if !cmd.yes {
		ok, err := confirm(fmt.Sprintf("Remove %d recent search(es)?", count))
		if err != nil {
			return err
		}
		if !ok {
			p.Infof("Clear cancelled")
			return nil
		}
	}

	cmd.app.Search.ClearHistory()
	cmd.warnIfVolatile(p)
	p.Successf("Cleared %d recent search(es)", count)
	return nil
}
