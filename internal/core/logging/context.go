package logging

import "context"

type contextKey string

const (
	notificationIDKey contextKey = "notification_id"
	searchQueryKey    contextKey = "search_query"
)

// WithNotificationID adds a notification ID to the context.
func WithNotificationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, notificationIDKey, id)
}

// WithSearchQuery adds the active search query to the context.
func WithSearchQuery(ctx context.Context, query string) context.Context {
	return context.WithValue(ctx, searchQueryKey, query)
}

// GetNotificationID retrieves the notification ID from the context.
// Returns empty string if not present.
func GetNotificationID(ctx context.Context) string {
	if id, ok := ctx.Value(notificationIDKey).(string); ok {
		return id
	}
	return ""
}

// GetSearchQuery retrieves the search query from the context.
// Returns empty string if not present.
func GetSearchQuery(ctx context.Context) string {
	if q, ok := ctx.Value(searchQueryKey).(string); ok {
		return q
	}
	return ""
}
