// Package notify owns the lifecycle of user-facing notifications: creation,
// timed expiry, pause/resume while hovered, and manual or gesture dismissal.
package notify

import (
	"time"
)

// Kind is the visual category of a notification.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindWarning Kind = "warning"
	KindInfo    Kind = "info"
)

// Kinds lists every supported kind.
var Kinds = []Kind{KindSuccess, KindError, KindWarning, KindInfo}

// Valid reports whether k is one of the supported kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindSuccess, KindError, KindWarning, KindInfo:
		return true
	}
	return false
}

const (
	// DefaultDuration is applied when a request leaves Duration unset or
	// supplies a negative value.
	DefaultDuration = 5 * time.Second
	// DefaultDragThreshold is the horizontal offset past which a drag
	// gesture dismisses a notification.
	DefaultDragThreshold = 100.0
	// DefaultRecentLimit is the size of the toast stack projection.
	DefaultRecentLimit = 3
)

// Action is an optional user-activatable effect attached to a notification.
type Action struct {
	Label string
	Run   func()
}

// Request describes a notification to be created.
type Request struct {
	Kind    Kind
	Title   string
	Message string
	// Duration is the time-to-live. Persistent must be set to create a
	// notification that never expires; a zero Duration without Persistent
	// falls back to DefaultDuration.
	Duration   time.Duration
	Persistent bool
	Action     *Action
}

// Notification is a snapshot of a live notification.
type Notification struct {
	ID        string        `json:"id"`
	Kind      Kind          `json:"kind"`
	Title     string        `json:"title"`
	Message   string        `json:"message"`
	Duration  time.Duration `json:"duration"` // 0 means persistent
	CreatedAt time.Time     `json:"created_at"`
	Action    *Action       `json:"-"`

	Paused    bool          `json:"-"`
	Remaining time.Duration `json:"-"`
	// RemainingRatio is the fraction of the countdown still left, from 1
	// at creation down to 0 at expiry. Always 1 for persistent notifications.
	RemainingRatio float64 `json:"-"`
}

// Persistent reports whether the notification never auto-expires.
func (n Notification) Persistent() bool {
	return n.Duration == 0
}

// HasAction reports whether the notification carries an activatable action.
func (n Notification) HasAction() bool {
	return n.Action != nil && n.Action.Run != nil
}

// EventKind identifies a lifecycle transition.
type EventKind string

const (
	EventAdded   EventKind = "added"
	EventRemoved EventKind = "removed"
	EventUpdated EventKind = "updated"
	EventCleared EventKind = "cleared"
)

// Reason explains why a notification left the active set.
type Reason string

const (
	ReasonDismissed Reason = "dismissed"
	ReasonDragged   Reason = "dragged"
	ReasonExpired   Reason = "expired"
	ReasonCleared   Reason = "cleared"
)

// Event is emitted to the manager's sink after every state transition.
// For EventCleared, Notification is zero and Count holds the number of
// notifications that were removed.
type Event struct {
	Kind         EventKind
	Notification Notification
	Reason       Reason
	Count        int
}

// Sink receives lifecycle events. It is invoked while the manager's lock is
// held, so it must not block or call back into the Manager.
type Sink func(Event)
