package search

import (
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/colonyops/pulse/internal/core/clock"
)

// DefaultDebounce is the quiet period after the last change before results
// are computed.
const DefaultDebounce = 300 * time.Millisecond

// EventKind identifies a pipeline transition.
type EventKind string

const (
	// EventStatusChanged fires whenever Status changes.
	EventStatusChanged EventKind = "status-changed"
	// EventSettled fires once per completed result computation.
	EventSettled EventKind = "settled"
	// EventHistoryChanged fires whenever the history list changes.
	EventHistoryChanged EventKind = "history-changed"
)

// Event carries a snapshot of the session taken right after the transition.
type Event struct {
	Kind  EventKind
	State State
}

// Sink receives pipeline events. It is invoked while the pipeline's lock is
// held, so it must not block or call back into the Pipeline.
type Sink func(Event)

// window is the cancellation handle for one debounce period.
type window struct {
	timer     clock.Timer
	cancelled bool
	query     string
	filters   []Category
}

func (w *window) cancel() {
	if w == nil {
		return
	}
	w.cancelled = true
	w.timer.Stop()
}

// Pipeline owns one search session: query text, active filters, debounced
// results and history. It is safe for concurrent use.
type Pipeline struct {
	mu sync.Mutex

	corpus  []Candidate
	query   string
	filters []Category
	results []Result
	status  Status
	history *History
	pending *window

	clock        clock.Clock
	debounce     time.Duration
	historyLimit int
	seed         []string
	sink         Sink
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithClock sets the clock used for debounce timers.
func WithClock(c clock.Clock) Option {
	return func(p *Pipeline) { p.clock = c }
}

// WithDebounce overrides DefaultDebounce. Non-positive values are ignored.
func WithDebounce(d time.Duration) Option {
	return func(p *Pipeline) {
		if d > 0 {
			p.debounce = d
		}
	}
}

// WithHistoryLimit overrides DefaultHistoryLimit.
func WithHistoryLimit(n int) Option {
	return func(p *Pipeline) { p.historyLimit = n }
}

// WithHistory seeds the history, most recent first.
func WithHistory(seed []string) Option {
	return func(p *Pipeline) { p.seed = slices.Clone(seed) }
}

// WithSink sets the receiver of pipeline events.
func WithSink(s Sink) Option {
	return func(p *Pipeline) { p.sink = s }
}

// NewPipeline creates an idle pipeline over corpus.
func NewPipeline(corpus []Candidate, opts ...Option) *Pipeline {
	p := &Pipeline{
		corpus:       slices.Clone(corpus),
		status:       StatusIdle,
		clock:        clock.Real(),
		debounce:     DefaultDebounce,
		historyLimit: DefaultHistoryLimit,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.history = NewHistory(p.historyLimit, p.seed)
	return p
}

// SetQuery updates the query text immediately and schedules a recomputation.
// A blank query cancels any pending computation and returns to idle at once.
func (p *Pipeline) SetQuery(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.query = text
	p.changedLocked()
}

// SetFilters replaces the active filter set. Unknown and duplicate tags are
// dropped.
func (p *Pipeline) SetFilters(tags []Category) {
	p.mu.Lock()
	defer p.mu.Unlock()

	filters := make([]Category, 0, len(tags))
	for _, t := range tags {
		if t.Valid() && !slices.Contains(filters, t) {
			filters = append(filters, t)
		}
	}
	p.filters = filters
	p.changedLocked()
}

// ToggleFilter adds tag to the active filters, or removes it if present.
// Unknown tags are ignored.
func (p *Pipeline) ToggleFilter(tag Category) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !tag.Valid() {
		return
	}
	if idx := slices.Index(p.filters, tag); idx >= 0 {
		p.filters = slices.Delete(slices.Clone(p.filters), idx, idx+1)
	} else {
		p.filters = append(slices.Clone(p.filters), tag)
	}
	p.changedLocked()
}

// CommitQuery records text in the history. Blank text is ignored; text already
// in the history is moved to the front.
func (p *Pipeline) CommitQuery(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.history.Commit(text) {
		p.emitLocked(EventHistoryChanged)
	}
}

// RemoveHistoryItem deletes text from the history by exact match.
func (p *Pipeline) RemoveHistoryItem(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.history.Remove(text) {
		p.emitLocked(EventHistoryChanged)
	}
}

// ClearHistory removes every history entry.
func (p *Pipeline) ClearHistory() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.history.Len() == 0 {
		return
	}
	p.history.Clear()
	p.emitLocked(EventHistoryChanged)
}

// Close cancels any pending computation. It is called when the search view is
// dismissed so that no timer acts on a session nobody is looking at. The
// query is kept, but a session left loading falls back to idle.
func (p *Pipeline) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.pending.cancel()
	p.pending = nil
	if p.status == StatusLoading {
		p.results = nil
		p.setStatusLocked(StatusIdle)
	}
}

// Reset clears query, filters and results, keeping the history.
func (p *Pipeline) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.query = ""
	p.filters = nil
	p.changedLocked()
}

// SetDebounce changes the quiet period for windows opened from now on. A
// window already open keeps its deadline. Non-positive values are ignored.
func (p *Pipeline) SetDebounce(d time.Duration) {
	if d <= 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.debounce = d
}

// Snapshot returns a copy of the current session state.
func (p *Pipeline) Snapshot() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshotLocked()
}

// Pending reports whether a debounce window is open.
func (p *Pipeline) Pending() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pending != nil
}

// changedLocked reacts to any change of (query, filters).
func (p *Pipeline) changedLocked() {
	p.pending.cancel()
	p.pending = nil

	if strings.TrimSpace(p.query) == "" {
		p.results = nil
		p.setStatusLocked(StatusIdle)
		return
	}

	w := &window{query: p.query, filters: slices.Clone(p.filters)}
	w.timer = p.clock.AfterFunc(p.debounce, func() {
		p.settle(w)
	})
	p.pending = w
	p.setStatusLocked(StatusLoading)
}

func (p *Pipeline) settle(w *window) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if w.cancelled || p.pending != w {
		return
	}
	p.pending = nil

	p.results = Match(p.corpus, w.query, w.filters)
	p.status = StatusSettled
	p.emitLocked(EventSettled)
}

func (p *Pipeline) setStatusLocked(s Status) {
	if p.status == s {
		return
	}
	p.status = s
	p.emitLocked(EventStatusChanged)
}

func (p *Pipeline) snapshotLocked() State {
	results := slices.Clone(p.results)
	if results == nil {
		results = []Result{}
	}
	filters := slices.Clone(p.filters)
	if filters == nil {
		filters = []Category{}
	}
	history := p.history.Entries()
	if history == nil {
		history = []string{}
	}
	return State{
		Query:   p.query,
		Filters: filters,
		Results: results,
		Status:  p.status,
		History: history,
	}
}

func (p *Pipeline) emitLocked(kind EventKind) {
	if p.sink != nil {
		p.sink(Event{Kind: kind, State: p.snapshotLocked()})
	}
}
