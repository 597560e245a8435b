package notify

import (
	"math"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/colonyops/pulse/internal/core/clock"
)

// entry is the mutable bookkeeping for one live notification.
type entry struct {
	n Notification

	// remaining is the unpaused time left as of resumedAt.
	remaining time.Duration
	resumedAt time.Time
	paused    bool

	// expiry is the handle for the pending auto-dismiss callback. A callback
	// only acts when the handle it was created with is still current.
	expiry *expiry
}

type expiry struct {
	timer     clock.Timer
	cancelled bool
}

func (e *expiry) cancel() {
	if e == nil {
		return
	}
	e.cancelled = true
	e.timer.Stop()
}

// Manager is the authoritative, ordered collection of active notifications.
// It is safe for concurrent use; timer callbacks and caller operations are
// serialised by an internal lock.
type Manager struct {
	mu      sync.Mutex
	entries []*entry

	clock           clock.Clock
	sink            Sink
	newID           func() string
	defaultDuration time.Duration
	dragThreshold   float64
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock sets the clock used for timestamps and expiry timers.
func WithClock(c clock.Clock) Option {
	return func(m *Manager) { m.clock = c }
}

// WithSink sets the receiver of lifecycle events.
func WithSink(s Sink) Option {
	return func(m *Manager) { m.sink = s }
}

// WithDefaultDuration overrides DefaultDuration. Non-positive values are ignored.
func WithDefaultDuration(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.defaultDuration = d
		}
	}
}

// WithDragThreshold overrides DefaultDragThreshold. Non-positive values are ignored.
func WithDragThreshold(px float64) Option {
	return func(m *Manager) {
		if px > 0 {
			m.dragThreshold = px
		}
	}
}

// WithIDGenerator replaces the uuid-based id generator.
func WithIDGenerator(fn func() string) Option {
	return func(m *Manager) { m.newID = fn }
}

// NewManager creates an empty Manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		clock:           clock.Real(),
		newID:           uuid.NewString,
		defaultDuration: DefaultDuration,
		dragThreshold:   DefaultDragThreshold,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetDefaults replaces the default duration and drag threshold used from now
// on. Live notifications keep their countdowns. Non-positive values are ignored.
func (m *Manager) SetDefaults(duration time.Duration, dragThreshold float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if duration > 0 {
		m.defaultDuration = duration
	}
	if dragThreshold > 0 {
		m.dragThreshold = dragThreshold
	}
}

// Add creates a notification from req, appends it to the active set and
// schedules its expiry. It returns the assigned id.
func (m *Manager) Add(req Request) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	kind := req.Kind
	if !kind.Valid() {
		kind = KindInfo
	}

	var duration time.Duration
	if !req.Persistent {
		duration = req.Duration
		if duration <= 0 {
			duration = m.defaultDuration
		}
	}

	now := m.clock.Now()
	e := &entry{
		n: Notification{
			ID:        m.uniqueIDLocked(),
			Kind:      kind,
			Title:     req.Title,
			Message:   req.Message,
			Duration:  duration,
			CreatedAt: now,
			Action:    req.Action,
		},
		remaining: duration,
		resumedAt: now,
	}
	m.entries = append(m.entries, e)

	if duration > 0 {
		m.scheduleLocked(e)
	}

	m.emitLocked(Event{Kind: EventAdded, Notification: m.snapshotLocked(e, now)})
	return e.n.ID
}

// Remove dismisses the notification with the given id. Unknown ids are ignored.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.removeLocked(id, ReasonDismissed)
}

// Drag applies a horizontal drag gesture that ended at offsetX. If the
// offset exceeds the drag threshold in either direction the notification is
// dismissed and Drag returns true.
func (m *Manager) Drag(id string, offsetX float64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if math.Abs(offsetX) <= m.dragThreshold {
		return false
	}
	return m.removeLocked(id, ReasonDragged)
}

// ClearAll empties the active set and cancels every pending expiry.
func (m *Manager) ClearAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := len(m.entries)
	for _, e := range m.entries {
		e.expiry.cancel()
		e.expiry = nil
	}
	m.entries = nil

	m.emitLocked(Event{Kind: EventCleared, Reason: ReasonCleared, Count: count})
}

// Pause freezes the countdown of a timed notification. Persistent, unknown or
// already paused notifications are left untouched.
func (m *Manager) Pause(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := m.findLocked(id)
	if e == nil || e.n.Persistent() || e.paused {
		return
	}

	now := m.clock.Now()
	e.remaining = max(e.remaining-now.Sub(e.resumedAt), 0)
	e.paused = true
	e.expiry.cancel()
	e.expiry = nil

	m.emitLocked(Event{Kind: EventUpdated, Notification: m.snapshotLocked(e, now)})
}

// Resume continues a paused countdown from where it stopped.
func (m *Manager) Resume(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := m.findLocked(id)
	if e == nil || e.n.Persistent() || !e.paused {
		return
	}

	now := m.clock.Now()
	e.paused = false
	e.resumedAt = now
	m.scheduleLocked(e)

	m.emitLocked(Event{Kind: EventUpdated, Notification: m.snapshotLocked(e, now)})
}

// Activate runs the notification's action, if any. The lifecycle is not
// affected. It reports whether an action was run.
func (m *Manager) Activate(id string) bool {
	m.mu.Lock()
	e := m.findLocked(id)
	var action *Action
	if e != nil {
		action = e.n.Action
	}
	m.mu.Unlock()

	if action == nil || action.Run == nil {
		return false
	}
	action.Run()
	return true
}

// Get returns a snapshot of the notification with the given id.
func (m *Manager) Get(id string) (Notification, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := m.findLocked(id)
	if e == nil {
		return Notification{}, false
	}
	return m.snapshotLocked(e, m.clock.Now()), true
}

// Len returns the number of active notifications.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Active returns the active notifications in arrival order.
func (m *Manager) Active() []Notification {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock.Now()
	out := make([]Notification, len(m.entries))
	for i, e := range m.entries {
		out[i] = m.snapshotLocked(e, now)
	}
	return out
}

// Recent returns the last n active notifications in arrival order. This is
// the toast stack projection.
func (m *Manager) Recent(n int) []Notification {
	all := m.Active()
	if n < 0 {
		n = 0
	}
	if len(all) > n {
		all = all[len(all)-n:]
	}
	return all
}

// Center returns every active notification, most recent first.
func (m *Manager) Center() []Notification {
	all := m.Active()
	slices.Reverse(all)
	return all
}

// BadgeLabel returns the count label for a notification bell: empty when
// there is nothing to show and "9+" past nine.
func (m *Manager) BadgeLabel() string {
	return badgeLabel(m.Len())
}

func badgeLabel(n int) string {
	switch {
	case n <= 0:
		return ""
	case n > 9:
		return "9+"
	default:
		return string(rune('0' + n))
	}
}

// scheduleLocked arms the expiry timer for e using its remaining time.
func (m *Manager) scheduleLocked(e *entry) {
	e.expiry.cancel()

	h := &expiry{}
	id := e.n.ID
	h.timer = m.clock.AfterFunc(e.remaining, func() {
		m.expire(id, h)
	})
	e.expiry = h
}

func (m *Manager) expire(id string, h *expiry) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := m.findLocked(id)
	if e == nil || h.cancelled || e.expiry != h {
		return
	}
	m.removeLocked(id, ReasonExpired)
}

func (m *Manager) removeLocked(id string, reason Reason) bool {
	idx := slices.IndexFunc(m.entries, func(e *entry) bool { return e.n.ID == id })
	if idx < 0 {
		return false
	}

	e := m.entries[idx]
	e.expiry.cancel()
	e.expiry = nil
	m.entries = slices.Delete(m.entries, idx, idx+1)

	m.emitLocked(Event{Kind: EventRemoved, Notification: m.snapshotLocked(e, m.clock.Now()), Reason: reason})
	return true
}

func (m *Manager) findLocked(id string) *entry {
	for _, e := range m.entries {
		if e.n.ID == id {
			return e
		}
	}
	return nil
}

func (m *Manager) uniqueIDLocked() string {
	for {
		id := m.newID()
		if id != "" && m.findLocked(id) == nil {
			return id
		}
	}
}

func (m *Manager) snapshotLocked(e *entry, now time.Time) Notification {
	n := e.n
	n.Paused = e.paused

	if n.Persistent() {
		n.RemainingRatio = 1
		return n
	}

	remaining := e.remaining
	if !e.paused {
		remaining -= now.Sub(e.resumedAt)
	}
	remaining = max(remaining, 0)

	n.Remaining = remaining
	n.RemainingRatio = float64(remaining) / float64(n.Duration)
	return n
}

func (m *Manager) emitLocked(ev Event) {
	if m.sink != nil {
		m.sink(ev)
	}
}
