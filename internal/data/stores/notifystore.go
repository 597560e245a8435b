package stores

import (
	"context"
	"fmt"
	"time"

	"github.com/colonyops/pulse/internal/core/notify"
	"github.com/colonyops/pulse/internal/data/db"
)

// NotifyStore implements notify.Store using SQLite.
type NotifyStore struct {
	db *db.DB
}

var _ notify.Store = (*NotifyStore)(nil)

// NewNotifyStore creates a new SQLite-backed notification store.
func NewNotifyStore(db *db.DB) *NotifyStore {
	return &NotifyStore{db: db}
}

// Save archives a notification. Saving an id twice overwrites the first row.
func (s *NotifyStore) Save(ctx context.Context, n notify.Notification) error {
	err := s.db.Queries().InsertNotification(ctx, db.InsertNotificationParams{
		ID:         n.ID,
		Kind:       string(n.Kind),
		Title:      n.Title,
		Message:    n.Message,
		DurationMs: n.Duration.Milliseconds(),
		CreatedAt:  n.CreatedAt.UnixNano(),
	})
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}

	return nil
}

// MarkRemoved records why and when a notification left the active set.
func (s *NotifyStore) MarkRemoved(ctx context.Context, id string, reason notify.Reason, at time.Time) error {
	_, err := s.db.Queries().MarkNotificationRemoved(ctx, db.MarkNotificationRemovedParams{
		ID:        id,
		Reason:    string(reason),
		RemovedAt: at.UnixNano(),
	})
	if err != nil {
		return fmt.Errorf("mark notification removed: %w", err)
	}
	return nil
}

// MarkAllRemoved closes every record that is still live.
func (s *NotifyStore) MarkAllRemoved(ctx context.Context, reason notify.Reason, at time.Time) error {
	if _, err := s.db.Queries().MarkAllNotificationsRemoved(ctx, string(reason), at.UnixNano()); err != nil {
		return fmt.Errorf("mark all notifications removed: %w", err)
	}
	return nil
}

// List returns all archived notifications ordered by newest first.
func (s *NotifyStore) List(ctx context.Context) ([]notify.Record, error) {
	rows, err := s.db.Queries().ListNotifications(ctx)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	result := make([]notify.Record, 0, len(rows))
	for _, row := range rows {
		result = append(result, rowToRecord(row))
	}

	return result, nil
}

// Clear deletes all notifications.
func (s *NotifyStore) Clear(ctx context.Context) error {
	if err := s.db.Queries().DeleteAllNotifications(ctx); err != nil {
		return fmt.Errorf("clear notifications: %w", err)
	}
	return nil
}

// Count returns the total number of notifications.
func (s *NotifyStore) Count(ctx context.Context) (int64, error) {
	count, err := s.db.Queries().CountNotifications(ctx)
	if err != nil {
		return 0, fmt.Errorf("count notifications: %w", err)
	}
	return count, nil
}

// CountBefore returns the number of notifications created before the cutoff.
func (s *NotifyStore) CountBefore(ctx context.Context, before time.Time) (int64, error) {
	count, err := s.db.Queries().CountNotificationsBefore(ctx, before.UnixNano())
	if err != nil {
		return 0, fmt.Errorf("count notifications before: %w", err)
	}
	return count, nil
}

// Prune deletes notifications created before the cutoff.
func (s *NotifyStore) Prune(ctx context.Context, before time.Time) (int64, error) {
	n, err := s.db.Queries().DeleteNotificationsBefore(ctx, before.UnixNano())
	if err != nil {
		return 0, fmt.Errorf("prune notifications: %w", err)
	}
	return n, nil
}

func rowToRecord(row db.Notification) notify.Record {
	rec := notify.Record{
		Notification: notify.Notification{
			ID:        row.ID,
			Kind:      notify.Kind(row.Kind),
			Title:     row.Title,
			Message:   row.Message,
			Duration:  time.Duration(row.DurationMs) * time.Millisecond,
			CreatedAt: time.Unix(0, row.CreatedAt),
		},
		Reason: notify.Reason(row.Reason),
	}
	if row.RemovedAt.Valid {
		rec.RemovedAt = time.Unix(0, row.RemovedAt.Int64)
	}
	return rec
}
