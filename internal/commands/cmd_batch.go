package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/pulse/internal/app"
	"github.com/colonyops/pulse/internal/core/search"
	"github.com/colonyops/pulse/internal/core/validate"
	"github.com/colonyops/pulse/pkg/iojson"
	"github.com/colonyops/pulse/pkg/logutils"
	"github.com/colonyops/pulse/pkg/randid"
)

// maxBatchSearches bounds a single batch.
const maxBatchSearches = 100

type BatchCmd struct {
	flags *Flags
	app   *app.App
	fr    *iojson.FileReader[BatchInput]
}

func NewBatchCmd(flags *Flags, app *app.App) *BatchCmd {
	return &BatchCmd{
		flags: flags,
		app:   app,
		fr:    &iojson.FileReader[BatchInput]{},
	}
}

func (cmd *BatchCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "batch",
		Usage: "Run multiple searches from JSON input",
		UsageText: `pulse batch [options]

Read from stdin:
  echo '{"searches":[{"query":"react","filters":["project"]}]}' | pulse batch

Read from file:
  pulse batch -f searches.json`,
		Description: `Runs every search in the input against the corpus and prints the results
as JSON. Input is validated as a whole before any search runs.

Input JSON schema:
  {
    "searches": [
      {
        "query": "text to match",
        "filters": ["project", "code", "docs"],
        "commit": false
      }
    ]
  }

Fields:
  query   - Required. Non-blank search text.
  filters - Optional. Categories to restrict results to.
  commit  - Optional. Record the query in search history.

Output is JSON with a batch ID, log file path, and results for each search.`,
		Flags: []cli.Flag{
			cmd.fr.Flag(),
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *BatchCmd) run(ctx context.Context, c *cli.Command) error {
	batchID := randid.Generate(6)
	logFile := filepath.Join(cmd.app.Config.DataDir, "logs", "batch-"+batchID+".log")

	logger, closer, err := logutils.New(cmd.flags.LogLevel, logFile)
	if err != nil {
		return iojson.WriteError(fmt.Sprintf("setup logger: %s", err), nil)
	}
	defer closer()

	logger.Info().Str("batch_id", batchID).Msg("starting batch search")

	input, err := cmd.fr.Read()
	if err != nil {
		logger.Error().Err(err).Msg("failed to read input")
		return iojson.WriteError(fmt.Sprintf("read input: %s", err), nil)
	}

	if err := input.Validate(); err != nil {
		logger.Error().Err(err).Msg("input validation failed")
		return iojson.WriteError(fmt.Sprintf("invalid input: %s", err), nil)
	}

	output := BatchOutput{
		BatchID: batchID,
		LogFile: logFile,
		Results: make([]BatchResult, 0, len(input.Searches)),
	}

	for i, s := range input.Searches {
		filters := make([]search.Category, len(s.Filters))
		for j, f := range s.Filters {
			filters[j] = search.Category(strings.ToLower(f))
		}

		results := search.Match(cmd.app.Corpus, s.Query, filters)
		if s.Commit {
			cmd.app.Search.CommitQuery(s.Query)
		}

		logger.Info().Int("index", i).Str("query", s.Query).Int("results", len(results)).Msg("search complete")
		output.Results = append(output.Results, BatchResult{
			Query:   s.Query,
			Filters: filters,
			Total:   len(results),
			Results: results,
		})
	}

	logger.Info().Int("total", len(input.Searches)).Msg("batch search complete")

	return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, output)
}

// BatchInput is the JSON input schema for batch search.
type BatchInput struct {
	Searches []BatchSearch `json:"searches"`
}

// BatchSearch defines a single search to run.
type BatchSearch struct {
	Query   string   `json:"query"`
	Filters []string `json:"filters,omitempty"`
	Commit  bool     `json:"commit,omitempty"`
}

// Validate checks the batch input for errors using criterio.
func (b BatchInput) Validate() error {
	if len(b.Searches) == 0 {
		return criterio.NewFieldErrors("searches", fmt.Errorf("array is empty"))
	}
	if len(b.Searches) > maxBatchSearches {
		return criterio.NewFieldErrors("searches", fmt.Errorf("at most %d searches per batch, got %d", maxBatchSearches, len(b.Searches)))
	}

	var errs criterio.FieldErrorsBuilder
	for i, s := range b.Searches {
		field := fmt.Sprintf("searches[%d]", i)

		if err := validate.Query(s.Query); err != nil {
			errs = errs.Append(field+".query", err)
			continue
		}

		seen := make(map[search.Category]bool)
		for j, f := range s.Filters {
			if err := validate.Category(f); err != nil {
				errs = errs.Append(fmt.Sprintf("%s.filters[%d]", field, j), err)
				continue
			}
			cat := search.Category(strings.ToLower(strings.TrimSpace(f)))
			if seen[cat] {
				errs = errs.Append(fmt.Sprintf("%s.filters[%d]", field, j), fmt.Errorf("duplicate category %q", f))
				continue
			}
			seen[cat] = true
		}
	}

	return errs.ToError()
}

// BatchResult is the output for a single search.
type BatchResult struct {
	Query   string            `json:"query"`
	Filters []search.Category `json:"filters"`
	Total   int               `json:"total"`
	Results []search.Result   `json:"results"`
}

// BatchOutput is the JSON output schema.
type BatchOutput struct {
	BatchID string        `json:"batch_id"`
	LogFile string        `json:"log_file"`
	Results []BatchResult `json:"results"`
}
