package search

import "context"

// HistoryStore persists the committed query history between sessions. The
// Pipeline never talks to a store directly; the application loads history
// into WithHistory at startup and writes back on history events.
type HistoryStore interface {
	// Load returns the saved history, most recent first.
	Load(ctx context.Context) ([]string, error)
	// Replace overwrites the saved history with entries, most recent first.
	Replace(ctx context.Context, entries []string) error
	Clear(ctx context.Context) error
}
