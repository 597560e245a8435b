package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// ContextHook extracts notification_id and search_query from context and adds them to log events.
type ContextHook struct{}

// Run adds contextual fields to the zerolog event.
func (h ContextHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	ctx := e.GetCtx()
	if ctx == context.Background() || ctx == nil {
		return
	}

	if id := GetNotificationID(ctx); id != "" {
		e.Str("notification_id", id)
	}

	if q := GetSearchQuery(ctx); q != "" {
		e.Str("search_query", q)
	}
}
