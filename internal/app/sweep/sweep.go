// Package sweep prunes the notification archive and expired cache entries on
// a fixed interval.
package sweep

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/colonyops/pulse/internal/core/eventbus"
	"github.com/colonyops/pulse/internal/core/notify"
)

// Pruner deletes archived records created before a cutoff.
type Pruner interface {
	Prune(ctx context.Context, before time.Time) (int64, error)
}

// Expirer drops cache entries whose TTL has passed.
type Expirer interface {
	SweepExpired(ctx context.Context) (int64, error)
}

// Options configures a sweep loop.
type Options struct {
	Interval  time.Duration
	Retention time.Duration
	// Expirer is swept on every pass when set, regardless of Retention.
	Expirer Expirer
	// Now defaults to time.Now.
	Now func() time.Time
}

var _ Pruner = (notify.Store)(nil)

func (o Options) pruning(store Pruner) bool {
	return store != nil && o.Retention > 0
}

// Start launches a background loop that periodically prunes archived
// notifications older than the retention window and drops expired cache
// entries. It runs one pass immediately and blocks until the context is
// cancelled. A non-positive retention disables pruning; the loop returns at
// once when there is nothing to sweep.
func Start(ctx context.Context, store Pruner, bus *eventbus.EventBus, opts Options) {
	if opts.Interval <= 0 || (!opts.pruning(store) && opts.Expirer == nil) {
		return
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	ticker := time.NewTicker(opts.Interval)
	defer ticker.Stop()

	for {
		Once(ctx, store, bus, opts)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Once runs a single pass and returns the number of deleted archive records.
func Once(ctx context.Context, store Pruner, bus *eventbus.EventBus, opts Options) int64 {
	if opts.Now == nil {
		opts.Now = time.Now
	}

	if opts.Expirer != nil {
		if n, err := opts.Expirer.SweepExpired(ctx); err != nil {
			log.Debug().Err(err).Msg("kv sweep failed")
		} else if n > 0 {
			log.Debug().Int64("expired", n).Msg("kv sweep")
		}
	}

	if !opts.pruning(store) {
		return 0
	}

	cutoff := opts.Now().Add(-opts.Retention)
	n, err := store.Prune(ctx, cutoff)
	if err != nil {
		log.Debug().Err(err).Msg("archive sweep failed")
		return 0
	}

	log.Debug().Int64("deleted", n).Time("cutoff", cutoff).Msg("archive sweep")
	if bus != nil && n > 0 {
		bus.PublishArchivePruned(eventbus.ArchivePrunedPayload{Count: n})
	}
	return n
}
