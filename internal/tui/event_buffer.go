package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/colonyops/pulse/internal/core/eventbus"
)

// drainEventsMsg tells the model that core state changed off the UI goroutine.
type drainEventsMsg struct{}

// EventBuffer collects bus events that affect the screen and emits coalesced
// drain signals, so timer-driven changes (expiry, debounce settle) repaint
// without waiting for the next tick.
type EventBuffer struct {
	mu     sync.Mutex
	events []eventbus.Event
	signal chan struct{}
}

// NewEventBuffer constructs an empty buffer.
func NewEventBuffer() *EventBuffer {
	return &EventBuffer{
		signal: make(chan struct{}, 1),
	}
}

// Subscribe registers the buffer on every event that changes what the TUI shows.
func (b *EventBuffer) Subscribe(bus *eventbus.EventBus) {
	bus.SubscribeNotificationAdded(func(eventbus.NotificationAddedPayload) { b.Push(eventbus.EventNotificationAdded) })
	bus.SubscribeNotificationRemoved(func(eventbus.NotificationRemovedPayload) { b.Push(eventbus.EventNotificationRemoved) })
	bus.SubscribeNotificationUpdated(func(eventbus.NotificationUpdatedPayload) { b.Push(eventbus.EventNotificationUpdated) })
	bus.SubscribeNotificationsCleared(func(eventbus.NotificationsClearedPayload) { b.Push(eventbus.EventNotificationsCleared) })
	bus.SubscribeSearchSettled(func(eventbus.SearchSettledPayload) { b.Push(eventbus.EventSearchSettled) })
	bus.SubscribeSearchStatusChanged(func(eventbus.SearchStatusChangedPayload) { b.Push(eventbus.EventSearchStatusChanged) })
	bus.SubscribeSearchHistoryChanged(func(eventbus.SearchHistoryChangedPayload) { b.Push(eventbus.EventSearchHistoryChanged) })
}

// Push records an event and emits a non-blocking drain signal.
func (b *EventBuffer) Push(ev eventbus.Event) {
	b.mu.Lock()
	b.events = append(b.events, ev)
	b.mu.Unlock()

	select {
	case b.signal <- struct{}{}:
	default:
	}
}

// Drain returns all buffered events and clears the buffer.
func (b *EventBuffer) Drain() []eventbus.Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.events) == 0 {
		return nil
	}

	out := make([]eventbus.Event, len(b.events))
	copy(out, b.events)
	b.events = b.events[:0]
	return out
}

// WaitForSignal blocks until there are events ready to drain.
func (b *EventBuffer) WaitForSignal() tea.Cmd {
	return func() tea.Msg {
		<-b.signal
		return drainEventsMsg{}
	}
}
