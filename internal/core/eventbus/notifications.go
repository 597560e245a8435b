package eventbus

import (
	"fmt"

	"github.com/colonyops/pulse/internal/core/notify"
)

// NotificationRouter maps application events to user-facing notifications.
type NotificationRouter struct {
	bus     *EventBus
	manager *notify.Manager
}

// NewNotificationRouter constructs a router that raises notifications on manager.
func NewNotificationRouter(bus *EventBus, manager *notify.Manager) *NotificationRouter {
	return &NotificationRouter{bus: bus, manager: manager}
}

// Register subscribes all supported event mappings.
func (r *NotificationRouter) Register() {
	if r == nil || r.bus == nil || r.manager == nil {
		return
	}

	r.bus.SubscribeConfigReloaded(func(p ConfigReloadedPayload) {
		r.notify(notify.KindSuccess, "Configuration reloaded", "New settings apply to notifications created from now on.")
	})

	r.bus.SubscribeConfigReloadFailed(func(p ConfigReloadFailedPayload) {
		r.notify(notify.KindError, "Configuration error", fmt.Sprintf("%s: %v", p.Path, p.Err))
	})

	r.bus.SubscribeArchivePruned(func(p ArchivePrunedPayload) {
		if p.Count == 0 {
			return
		}
		r.notify(notify.KindInfo, "Archive pruned", fmt.Sprintf("%d old notification(s) removed", p.Count))
	})

	r.bus.SubscribeUpdateAvailable(func(p UpdateAvailablePayload) {
		r.notify(notify.KindInfo, "Update available", fmt.Sprintf("pulse %s is out (running %s)", p.Latest, p.Current))
	})
}

func (r *NotificationRouter) notify(kind notify.Kind, title, message string) {
	r.manager.Add(notify.Request{Kind: kind, Title: title, Message: message})
}
