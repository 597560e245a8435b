package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/colonyops/pulse/internal/core/search"
	"github.com/colonyops/pulse/internal/core/validate"
	"github.com/colonyops/pulse/internal/tui/jsoncolor"
	"github.com/colonyops/pulse/pkg/iojson"
)

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// writeJSON writes obj as indented JSON, colorized when w is a terminal.
func writeJSON(w io.Writer, obj any) error {
	if !isTerminal(w) {
		return iojson.WriteWith(w, os.Stderr, obj)
	}

	bits, err := json.Marshal(obj)
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	_, err = fmt.Fprintln(w, jsoncolor.Colorize(bits))
	return err
}

// parseFilters turns --filter values into categories. Values may be comma
// separated.
func parseFilters(values []string) ([]search.Category, error) {
	var out []search.Category
	for _, v := range values {
		for part := range strings.SplitSeq(v, ",") {
			part = strings.ToLower(strings.TrimSpace(part))
			if part == "" {
				continue
			}
			if err := validate.Category(part); err != nil {
				return nil, fmt.Errorf("filter: %w", err)
			}
			out = append(out, search.Category(part))
		}
	}
	return out, nil
}
