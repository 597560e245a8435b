package eventbus

import (
	"context"
	"sync"
)

type envelope struct {
	event   Event
	payload any
}

// EventBus is an asynchronous, buffered event bus. Publishing never blocks:
// when the buffer is full the event is dropped and OnDrop hooks fire.
// Subscribers run sequentially on the goroutine running Start, in publish
// order.
type EventBus struct {
	ch    chan envelope
	hooks hooks

	mu   sync.RWMutex
	subs map[Event][]func(any)
}

// New creates a bus with the given buffer size.
func New(size int) *EventBus {
	if size <= 0 {
		size = 1
	}
	return &EventBus{
		ch:   make(chan envelope, size),
		subs: make(map[Event][]func(any)),
	}
}

// Start dispatches events to subscribers until ctx is cancelled.
func (bus *EventBus) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case env := <-bus.ch:
			bus.dispatch(env)
		}
	}
}

// Drain dispatches every queued event on the calling goroutine and reports
// how many ran. It must not run concurrently with Start; call it after Start
// has returned to flush events published during shutdown.
func (bus *EventBus) Drain() int {
	n := 0
	for {
		select {
		case env := <-bus.ch:
			bus.dispatch(env)
			n++
		default:
			return n
		}
	}
}

func (bus *EventBus) dispatch(env envelope) {
	bus.mu.RLock()
	subs := make([]func(any), len(bus.subs[env.event]))
	copy(subs, bus.subs[env.event])
	bus.mu.RUnlock()

	for _, fn := range subs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					bus.runOnPanic(env.event, env.payload, r)
				}
			}()
			fn(env.payload)
		}()
	}
}

func (bus *EventBus) subscribe(event Event, fn func(any)) {
	bus.mu.Lock()
	bus.subs[event] = append(bus.subs[event], fn)
	bus.mu.Unlock()

	bus.hooks.mu.RLock()
	hooks := make([]func(Event), len(bus.hooks.onSubscribe))
	copy(hooks, bus.hooks.onSubscribe)
	bus.hooks.mu.RUnlock()
	for _, h := range hooks {
		h(event)
	}
}

func (bus *EventBus) PublishArchivePruned(p ArchivePrunedPayload) {
	bus.send(EventArchivePruned, p)
}

func (bus *EventBus) SubscribeArchivePruned(fn func(ArchivePrunedPayload)) {
	bus.subscribe(EventArchivePruned, func(p any) { fn(p.(ArchivePrunedPayload)) })
}

func (bus *EventBus) PublishConfigReloadFailed(p ConfigReloadFailedPayload) {
	bus.send(EventConfigReloadFailed, p)
}

func (bus *EventBus) SubscribeConfigReloadFailed(fn func(ConfigReloadFailedPayload)) {
	bus.subscribe(EventConfigReloadFailed, func(p any) { fn(p.(ConfigReloadFailedPayload)) })
}

func (bus *EventBus) PublishConfigReloaded(p ConfigReloadedPayload) {
	bus.send(EventConfigReloaded, p)
}

func (bus *EventBus) SubscribeConfigReloaded(fn func(ConfigReloadedPayload)) {
	bus.subscribe(EventConfigReloaded, func(p any) { fn(p.(ConfigReloadedPayload)) })
}

func (bus *EventBus) PublishNotificationAdded(p NotificationAddedPayload) {
	bus.send(EventNotificationAdded, p)
}

func (bus *EventBus) SubscribeNotificationAdded(fn func(NotificationAddedPayload)) {
	bus.subscribe(EventNotificationAdded, func(p any) { fn(p.(NotificationAddedPayload)) })
}

func (bus *EventBus) PublishNotificationRemoved(p NotificationRemovedPayload) {
	bus.send(EventNotificationRemoved, p)
}

func (bus *EventBus) SubscribeNotificationRemoved(fn func(NotificationRemovedPayload)) {
	bus.subscribe(EventNotificationRemoved, func(p any) { fn(p.(NotificationRemovedPayload)) })
}

func (bus *EventBus) PublishNotificationUpdated(p NotificationUpdatedPayload) {
	bus.send(EventNotificationUpdated, p)
}

func (bus *EventBus) SubscribeNotificationUpdated(fn func(NotificationUpdatedPayload)) {
	bus.subscribe(EventNotificationUpdated, func(p any) { fn(p.(NotificationUpdatedPayload)) })
}

func (bus *EventBus) PublishNotificationsCleared(p NotificationsClearedPayload) {
	bus.send(EventNotificationsCleared, p)
}

func (bus *EventBus) SubscribeNotificationsCleared(fn func(NotificationsClearedPayload)) {
	bus.subscribe(EventNotificationsCleared, func(p any) { fn(p.(NotificationsClearedPayload)) })
}

func (bus *EventBus) PublishSearchHistoryChanged(p SearchHistoryChangedPayload) {
	bus.send(EventSearchHistoryChanged, p)
}

func (bus *EventBus) SubscribeSearchHistoryChanged(fn func(SearchHistoryChangedPayload)) {
	bus.subscribe(EventSearchHistoryChanged, func(p any) { fn(p.(SearchHistoryChangedPayload)) })
}

func (bus *EventBus) PublishSearchSettled(p SearchSettledPayload) {
	bus.send(EventSearchSettled, p)
}

func (bus *EventBus) SubscribeSearchSettled(fn func(SearchSettledPayload)) {
	bus.subscribe(EventSearchSettled, func(p any) { fn(p.(SearchSettledPayload)) })
}

func (bus *EventBus) PublishSearchStatusChanged(p SearchStatusChangedPayload) {
	bus.send(EventSearchStatusChanged, p)
}

func (bus *EventBus) SubscribeSearchStatusChanged(fn func(SearchStatusChangedPayload)) {
	bus.subscribe(EventSearchStatusChanged, func(p any) { fn(p.(SearchStatusChangedPayload)) })
}

func (bus *EventBus) PublishTuiStarted(p TUIStartedPayload) {
	bus.send(EventTuiStarted, p)
}

func (bus *EventBus) SubscribeTuiStarted(fn func(TUIStartedPayload)) {
	bus.subscribe(EventTuiStarted, func(p any) { fn(p.(TUIStartedPayload)) })
}

func (bus *EventBus) PublishTuiStopped(p TUIStoppedPayload) {
	bus.send(EventTuiStopped, p)
}

func (bus *EventBus) SubscribeTuiStopped(fn func(TUIStoppedPayload)) {
	bus.subscribe(EventTuiStopped, func(p any) { fn(p.(TUIStoppedPayload)) })
}

func (bus *EventBus) PublishUpdateAvailable(p UpdateAvailablePayload) {
	bus.send(EventUpdateAvailable, p)
}

func (bus *EventBus) SubscribeUpdateAvailable(fn func(UpdateAvailablePayload)) {
	bus.subscribe(EventUpdateAvailable, func(p any) { fn(p.(UpdateAvailablePayload)) })
}
