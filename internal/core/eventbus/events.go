// Package eventbus provides a typed publish/subscribe event bus for
// cross-component communication within pulse.
package eventbus

import (
	"github.com/colonyops/pulse/internal/core/config"
	"github.com/colonyops/pulse/internal/core/notify"
	"github.com/colonyops/pulse/internal/core/search"
)

// Event names a bus topic.
type Event string

// Keep list sorted A-Z
const (
	EventArchivePruned        Event = "archive.pruned"
	EventConfigReloadFailed   Event = "config.reload-failed"
	EventConfigReloaded       Event = "config.reloaded"
	EventNotificationAdded    Event = "notification.added"
	EventNotificationRemoved  Event = "notification.removed"
	EventNotificationUpdated  Event = "notification.updated"
	EventNotificationsCleared Event = "notifications.cleared"
	EventSearchHistoryChanged Event = "search.history-changed"
	EventSearchSettled        Event = "search.settled"
	EventSearchStatusChanged  Event = "search.status-changed"
	EventTuiStarted           Event = "tui.started"
	EventTuiStopped           Event = "tui.stopped"
	EventUpdateAvailable      Event = "update.available"
)

// ArchivePrunedPayload is emitted after the retention sweep deletes archived
// notifications.
type ArchivePrunedPayload struct {
	Count int64
}

// ConfigReloadedPayload is emitted when configuration is reloaded.
type ConfigReloadedPayload struct {
	Config *config.Config
}

// ConfigReloadFailedPayload is emitted when a changed config file could not
// be loaded. The previous configuration stays in effect.
type ConfigReloadFailedPayload struct {
	Path string
	Err  error
}

// NotificationAddedPayload is emitted when a notification enters the active set.
type NotificationAddedPayload struct {
	Notification notify.Notification
}

// NotificationRemovedPayload is emitted when a notification leaves the active set.
type NotificationRemovedPayload struct {
	Notification notify.Notification
	Reason       notify.Reason
}

// NotificationUpdatedPayload is emitted when a notification is paused or resumed.
type NotificationUpdatedPayload struct {
	Notification notify.Notification
}

// NotificationsClearedPayload is emitted when every notification is cleared.
type NotificationsClearedPayload struct {
	Count int
}

// SearchHistoryChangedPayload is emitted when the search history list changes.
type SearchHistoryChangedPayload struct {
	History []string
}

// SearchSettledPayload is emitted when a debounced search computation completes.
type SearchSettledPayload struct {
	State search.State
}

// SearchStatusChangedPayload is emitted when the search status changes.
type SearchStatusChangedPayload struct {
	State search.State
}

// TUIStartedPayload is emitted when the TUI starts.
type TUIStartedPayload struct{}

// TUIStoppedPayload is emitted when the TUI stops.
type TUIStoppedPayload struct{}

// UpdateAvailablePayload is emitted when a newer release than the running
// build has been published.
type UpdateAvailablePayload struct {
	Current string
	Latest  string
}
