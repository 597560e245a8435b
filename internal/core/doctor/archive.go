package doctor

import (
	"context"
	"fmt"
	"time"
)

// ArchiveStore is the part of the notification archive the check inspects.
type ArchiveStore interface {
	Count(ctx context.Context) (int64, error)
	CountBefore(ctx context.Context, before time.Time) (int64, error)
	Prune(ctx context.Context, before time.Time) (int64, error)
}

// ArchiveCheck verifies the notification archive is reachable and reports
// rows that outlived the retention window. With autofix those rows are
// pruned.
type ArchiveCheck struct {
	store     ArchiveStore
	retention time.Duration
	autofix   bool
	now       func() time.Time
}

// NewArchiveCheck creates an archive check. A nil store reports the archive
// as disabled.
func NewArchiveCheck(store ArchiveStore, retention time.Duration, autofix bool) *ArchiveCheck {
	return &ArchiveCheck{store: store, retention: retention, autofix: autofix, now: time.Now}
}

func (c *ArchiveCheck) Name() string {
	return "Notification Archive"
}

func (c *ArchiveCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}

	if c.store == nil {
		result.add("archive", StatusPass, "disabled")
		return result
	}

	total, err := c.store.Count(ctx)
	if err != nil {
		result.add("database", StatusFail, err.Error())
		return result
	}
	result.add("database", StatusPass, fmt.Sprintf("%d archived", total))

	if c.retention <= 0 {
		result.add("retention", StatusPass, "keep forever")
		return result
	}

	cutoff := c.now().Add(-c.retention)
	stale, err := c.store.CountBefore(ctx, cutoff)
	if err != nil {
		result.add("retention", StatusFail, err.Error())
		return result
	}

	switch {
	case stale == 0:
		result.add("retention", StatusPass, "nothing past "+c.retention.String())
	case c.autofix:
		pruned, err := c.store.Prune(ctx, cutoff)
		if err != nil {
			result.add("retention", StatusFail, fmt.Sprintf("prune failed: %v", err))
			return result
		}
		result.add("retention", StatusPass, fmt.Sprintf("pruned %d past %s", pruned, c.retention))
	default:
		result.Items = append(result.Items, CheckItem{
			Label:   "retention",
			Status:  StatusWarn,
			Detail:  fmt.Sprintf("%d notifications past %s", stale, c.retention),
			Fixable: true,
		})
	}

	return result
}
