package commands

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/pulse/internal/app"
	"github.com/colonyops/pulse/internal/data/db"
	"github.com/colonyops/pulse/internal/printer"
)

type DBCmd struct {
	flags *Flags
	app   *app.App

	// flags
	jsonOutput bool
	steps      int
	yes        bool
}

// NewDBCmd creates the database maintenance command.
func NewDBCmd(flags *Flags, app *app.App) *DBCmd {
	return &DBCmd{flags: flags, app: app}
}

// Register adds the db command to the application
func (cmd *DBCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "db",
		Usage: "Inspect and reset the local database schema",
		Commands: []*cli.Command{
			{
				Name:      "status",
				Usage:     "List schema migrations and whether each is applied",
				UsageText: "pulse db status [--json]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:        "json",
						Usage:       "output as JSON",
						Destination: &cmd.jsonOutput,
					},
				},
				Action: cmd.runStatus,
			},
			{
				Name:  "rollback",
				Usage: "Revert the newest migrations, dropping their tables",
				Description: `Reverts the newest applied migrations in reverse order. The tables they
created are dropped with their data. The next start re-applies them on an
empty schema, so this also resets the search history or cache tables.`,
				UsageText: "pulse db rollback [--steps n] [--yes]",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:        "steps",
						Aliases:     []string{"n"},
						Usage:       "number of migrations to revert",
						Value:       1,
						Destination: &cmd.steps,
					},
					&cli.BoolFlag{
						Name:        "yes",
						Aliases:     []string{"y"},
						Usage:       "skip confirmation",
						Destination: &cmd.yes,
					},
				},
				Action: cmd.runRollback,
			},
		},
	})

	return app
}

func (cmd *DBCmd) database() (*db.DB, error) {
	if cmd.app.DB == nil {
		return nil, fmt.Errorf("database is not open")
	}
	return cmd.app.DB, nil
}

func (cmd *DBCmd) runStatus(ctx context.Context, c *cli.Command) error {
	database, err := cmd.database()
	if err != nil {
		return err
	}

	status, err := database.Migrations(ctx)
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}

	if cmd.jsonOutput {
		return writeJSON(c.Root().Writer, status)
	}
	return writeMigrationTable(c.Root().Writer, status)
}

func (cmd *DBCmd) runRollback(ctx context.Context, _ *cli.Command) error {
	p := printer.Ctx(ctx)

	database, err := cmd.database()
	if err != nil {
		return err
	}
	if cmd.steps <= 0 {
		return fmt.Errorf("--steps must be positive, got %d", cmd.steps)
	}

	if !cmd.yes {
		ok, err := confirm(fmt.Sprintf("Revert %d migration(s) and drop their data?", cmd.steps))
		if err != nil {
			return err
		}
		if !ok {
			p.Infof("Rollback cancelled")
			return nil
		}
	}

	reverted, err := database.Rollback(ctx, cmd.steps)
	for _, m := range reverted {
		p.Successf("Reverted %04d_%s", m.Version, m.Name)
	}
	if err != nil {
		return fmt.Errorf("rollback: %w", err)
	}
	return nil
}

func writeMigrationTable(out io.Writer, status []db.MigrationStatus) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "VERSION\tNAME\tSTATE\tAPPLIED")
	for _, st := range status {
		state, at := "pending", "-"
		if st.Applied {
			state = "applied"
			at = st.AppliedAt.Local().Format(time.DateTime)
		}
		_, _ = fmt.Fprintf(w, "%04d\t%s\t%s\t%s\n", st.Version, st.Name, state, at)
	}
	return w.Flush()
}
