package commands

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/pulse/internal/app"
	"github.com/colonyops/pulse/internal/core/search"
	"github.com/colonyops/pulse/internal/core/validate"
	"github.com/colonyops/pulse/internal/printer"
)

type SearchCmd struct {
	flags *Flags
	app   *app.App

	// flags
	filters    []string
	jsonOutput bool
	commit     bool
	limit      int
}

// NewSearchCmd creates a new search command
func NewSearchCmd(flags *Flags, app *app.App) *SearchCmd {
	return &SearchCmd{flags: flags, app: app}
}

// Register adds the search command to the application
func (cmd *SearchCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "search",
		Usage:     "Search the corpus",
		UsageText: "pulse search [--filter project,code,docs] [--json] [--commit] <query>",
		Description: `Runs a single search over the configured corpus and prints the ranked results.

Matching is a case-insensitive substring test on title and description.
Filters restrict results to the given categories. Use --commit to record the
query in the recent searches list shown by the TUI.`,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:        "filter",
				Aliases:     []string{"f"},
				Usage:       "restrict to categories (" + validate.CategoryList() + ")",
				Destination: &cmd.filters,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.jsonOutput,
			},
			&cli.BoolFlag{
				Name:        "commit",
				Usage:       "record the query in search history",
				Destination: &cmd.commit,
			},
			&cli.IntFlag{
				Name:        "limit",
				Aliases:     []string{"n"},
				Usage:       "maximum results to print (0 for all)",
				Destination: &cmd.limit,
			},
		},
		ShellComplete: HistoryCompleter(cmd.app),
		Action:        cmd.run,
	})

	return app
}

// SearchOutput is the JSON output schema.
type SearchOutput struct {
	Query   string            `json:"query"`
	Filters []search.Category `json:"filters"`
	Total   int               `json:"total"`
	Results []search.Result   `json:"results"`
}

func (cmd *SearchCmd) run(ctx context.Context, c *cli.Command) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("a query is required. Run 'pulse search --help' for usage")
	}

	filters, err := parseFilters(cmd.filters)
	if err != nil {
		return err
	}

	results := search.Match(cmd.app.Corpus, query, filters)
	total := len(results)
	if cmd.limit > 0 && len(results) > cmd.limit {
		results = results[:cmd.limit]
	}

	if cmd.commit {
		cmd.app.Search.CommitQuery(query)
	}

	out := c.Root().Writer
	if cmd.jsonOutput {
		if filters == nil {
			filters = []search.Category{}
		}
		return writeJSON(out, SearchOutput{Query: query, Filters: filters, Total: total, Results: results})
	}

	if total == 0 {
		printer.Ctx(ctx).Infof("No results found for %q", query)
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "SCORE\tCATEGORY\tTITLE\tDESCRIPTION")
	for _, r := range results {
		_, _ = fmt.Fprintf(w, "%.1f\t%s\t%s\t%s\n", r.Score, r.Category, r.Title, r.Description)
	}
	_ = w.Flush()

	if total > len(results) {
		printer.Ctx(ctx).Printf("%d more result(s) not shown", total-len(results))
	}

	return nil
}
