package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/pulse/internal/app"
)

// HistoryCompleter returns a ShellCompleteFunc that suggests recent search
// queries as positional completions.
//
// When the user's last typed argument starts with "-", it falls back to the
// default flag completion behavior.
func HistoryCompleter(a *app.App) cli.ShellCompleteFunc {
	return func(ctx context.Context, cmd *cli.Command) {
		if args := cmd.Args(); args.Present() {
			last := args.Slice()[args.Len()-1]
			if len(last) > 0 && last[0] == '-' {
				cli.DefaultCompleteWithFlags(ctx, cmd)
				return
			}
		}

		if a == nil || a.Search == nil {
			return
		}

		w := cmd.Root().Writer
		for _, q := range a.Search.Snapshot().History {
			_, _ = fmt.Fprintln(w, q)
		}
	}
}
