package search

import (
	"slices"
	"strings"
)

// DefaultHistoryLimit caps the number of remembered queries.
const DefaultHistoryLimit = 5

// History is a bounded, most-recent-first list of committed queries without
// duplicates. The zero value is unusable; use NewHistory.
type History struct {
	limit   int
	entries []string
}

// NewHistory creates a history capped at limit entries, seeded with seed in
// most-recent-first order. Blank and duplicate seed entries are dropped.
func NewHistory(limit int, seed []string) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	h := &History{limit: limit}
	for _, s := range seed {
		s = strings.TrimSpace(s)
		if s == "" || slices.Contains(h.entries, s) {
			continue
		}
		h.entries = append(h.entries, s)
	}
	h.truncate()
	return h
}

// Commit records q at the front. A query already present elsewhere is moved
// to the front. Blank queries are ignored. It reports whether the history
// changed.
func (h *History) Commit(q string) bool {
	q = strings.TrimSpace(q)
	if q == "" {
		return false
	}
	if len(h.entries) > 0 && h.entries[0] == q {
		return false
	}

	if idx := slices.Index(h.entries, q); idx >= 0 {
		h.entries = slices.Delete(h.entries, idx, idx+1)
	}
	h.entries = slices.Insert(h.entries, 0, q)
	h.truncate()
	return true
}

// Remove deletes q by exact match. It reports whether anything was removed.
func (h *History) Remove(q string) bool {
	idx := slices.Index(h.entries, q)
	if idx < 0 {
		return false
	}
	h.entries = slices.Delete(h.entries, idx, idx+1)
	return true
}

// Clear removes every entry.
func (h *History) Clear() {
	h.entries = nil
}

// Entries returns a copy of the history, most recent first.
func (h *History) Entries() []string {
	return slices.Clone(h.entries)
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.entries)
}

func (h *History) truncate() {
	if len(h.entries) > h.limit {
		h.entries = h.entries[:h.limit]
	}
}
