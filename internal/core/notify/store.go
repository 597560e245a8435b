package notify

import (
	"context"
	"time"
)

// Record is an archived notification together with how it left the screen.
// Reason is empty and RemovedAt zero while it is still live.
type Record struct {
	Notification
	Reason    Reason    `json:"reason,omitempty"`
	RemovedAt time.Time `json:"removed_at,omitzero"`
}

// Store archives notifications to durable storage. The Manager never talks to
// a Store directly; the application wires one in through an event subscriber.
type Store interface {
	Save(ctx context.Context, n Notification) error
	// MarkRemoved records the first removal of a live record. Unknown or
	// already removed ids are ignored.
	MarkRemoved(ctx context.Context, id string, reason Reason, at time.Time) error
	// MarkAllRemoved closes every live record, used when the active set is cleared.
	MarkAllRemoved(ctx context.Context, reason Reason, at time.Time) error
	List(ctx context.Context) ([]Record, error)
	Clear(ctx context.Context) error
	Count(ctx context.Context) (int64, error)
	// CountBefore reports how many archived notifications were created
	// before the cutoff.
	CountBefore(ctx context.Context, before time.Time) (int64, error)
	// Prune deletes archived notifications created before the cutoff and
	// returns how many were removed.
	Prune(ctx context.Context, before time.Time) (int64, error)
}
