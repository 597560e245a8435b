package eventbus

import (
	"github.com/colonyops/pulse/internal/core/notify"
	"github.com/colonyops/pulse/internal/core/search"
)

// NotifySink adapts the bus into a notify.Sink. Publishing is a non-blocking
// enqueue, so it is safe to call from inside the manager's lock.
func NotifySink(bus *EventBus) notify.Sink {
	return func(ev notify.Event) {
		switch ev.Kind {
		case notify.EventAdded:
			bus.PublishNotificationAdded(NotificationAddedPayload{Notification: ev.Notification})
		case notify.EventRemoved:
			bus.PublishNotificationRemoved(NotificationRemovedPayload{Notification: ev.Notification, Reason: ev.Reason})
		case notify.EventUpdated:
			bus.PublishNotificationUpdated(NotificationUpdatedPayload{Notification: ev.Notification})
		case notify.EventCleared:
			bus.PublishNotificationsCleared(NotificationsClearedPayload{Count: ev.Count})
		}
	}
}

// SearchSink adapts the bus into a search.Sink.
func SearchSink(bus *EventBus) search.Sink {
	return func(ev search.Event) {
		switch ev.Kind {
		case search.EventSettled:
			bus.PublishSearchSettled(SearchSettledPayload{State: ev.State})
		case search.EventStatusChanged:
			bus.PublishSearchStatusChanged(SearchStatusChangedPayload{State: ev.State})
		case search.EventHistoryChanged:
			bus.PublishSearchHistoryChanged(SearchHistoryChangedPayload{History: ev.State.History})
		}
	}
}
