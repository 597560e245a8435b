package app

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/pulse/internal/core/eventbus"
	"github.com/colonyops/pulse/internal/core/logging"
	"github.com/colonyops/pulse/internal/core/notify"
	"github.com/colonyops/pulse/internal/core/search"
)

// ArchiveService mirrors notification lifecycle and search history changes
// into durable storage. It only listens to the bus; the core never waits on
// a write. Either store may be nil to disable that half.
type ArchiveService struct {
	notes   notify.Store
	history search.HistoryStore
	now     func() time.Time
	log     zerolog.Logger
}

// NewArchiveService creates an archive service over the given stores.
func NewArchiveService(notes notify.Store, history search.HistoryStore) *ArchiveService {
	return &ArchiveService{
		notes:   notes,
		history: history,
		now:     time.Now,
		log:     logging.Component("archive"),
	}
}

// Enabled reports whether notifications are being archived.
func (s *ArchiveService) Enabled() bool {
	return s != nil && s.notes != nil
}

// Notes returns the notification archive, or nil when archiving is off.
func (s *ArchiveService) Notes() notify.Store {
	if s == nil {
		return nil
	}
	return s.notes
}

// History returns the search history store, or nil when history is not
// persisted.
func (s *ArchiveService) History() search.HistoryStore {
	if s == nil {
		return nil
	}
	return s.history
}

// Register subscribes the service to bus. ctx bounds every store call.
func (s *ArchiveService) Register(ctx context.Context, bus *eventbus.EventBus) {
	if s == nil || bus == nil {
		return
	}

	if s.notes != nil {
		bus.SubscribeNotificationAdded(func(p eventbus.NotificationAddedPayload) {
			s.saveNotification(ctx, p.Notification)
		})
		bus.SubscribeNotificationRemoved(func(p eventbus.NotificationRemovedPayload) {
			s.markRemoved(ctx, p.Notification.ID, p.Reason)
		})
		bus.SubscribeNotificationsCleared(func(p eventbus.NotificationsClearedPayload) {
			if p.Count == 0 {
				return
			}
			if err := s.notes.MarkAllRemoved(ctx, notify.ReasonCleared, s.now()); err != nil {
				s.log.Error().Err(err).Msg("archive clear failed")
			}
		})
	}

	if s.history != nil {
		bus.SubscribeSearchHistoryChanged(func(p eventbus.SearchHistoryChangedPayload) {
			if len(p.History) == 0 {
				if err := s.history.Clear(ctx); err != nil {
					s.log.Error().Err(err).Msg("clear search history failed")
				}
				return
			}
			if err := s.history.Replace(ctx, p.History); err != nil {
				s.log.Error().Err(err).Int("entries", len(p.History)).Msg("persist search history failed")
			}
		})
	}
}

func (s *ArchiveService) saveNotification(ctx context.Context, n notify.Notification) {
	ctx = logging.WithNotificationID(ctx, n.ID)
	if err := s.notes.Save(ctx, n); err != nil {
		s.log.Error().Ctx(ctx).Err(err).Msg("archive notification failed")
		return
	}
	s.log.Debug().Ctx(ctx).Str("kind", string(n.Kind)).Msg("notification archived")
}

func (s *ArchiveService) markRemoved(ctx context.Context, id string, reason notify.Reason) {
	ctx = logging.WithNotificationID(ctx, id)
	if err := s.notes.MarkRemoved(ctx, id, reason, s.now()); err != nil {
		s.log.Error().Ctx(ctx).Err(err).Str("reason", string(reason)).Msg("archive removal failed")
	}
}
