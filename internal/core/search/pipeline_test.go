package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/pulse/internal/core/clock/clocktest"
)

type recorder struct {
	events []Event
}

func (r *recorder) sink(ev Event) {
	r.events = append(r.events, ev)
}

func (r *recorder) settled() []State {
	var out []State
	for _, ev := range r.events {
		if ev.Kind == EventSettled {
			out = append(out, ev.State)
		}
	}
	return out
}

func newTestPipeline(t *testing.T, corpus []Candidate, opts ...Option) (*Pipeline, *clocktest.Clock, *recorder) {
	t.Helper()

	clk := clocktest.New(time.Time{})
	rec := &recorder{}
	opts = append([]Option{WithClock(clk), WithSink(rec.sink)}, opts...)
	return NewPipeline(corpus, opts...), clk, rec
}

func TestPipeline_StartsIdle(t *testing.T) {
	p, _, _ := newTestPipeline(t, DefaultCorpus)

	s := p.Snapshot()
	assert.Equal(t, StatusIdle, s.Status)
	assert.Empty(t, s.Query)
	assert.Empty(t, s.Results)
	assert.Empty(t, s.Filters)
	assert.Empty(t, s.History)
}

func TestPipeline_SetQueryDebounces(t *testing.T) {
	p, clk, rec := newTestPipeline(t, twoItemCorpus)

	p.SetQuery("token")

	s := p.Snapshot()
	assert.Equal(t, "token", s.Query, "query echoes immediately")
	assert.Equal(t, StatusLoading, s.Status)
	assert.Empty(t, s.Results)

	clk.Advance(DefaultDebounce - time.Millisecond)
	assert.Equal(t, StatusLoading, p.Snapshot().Status)

	clk.Advance(time.Millisecond)
	s = p.Snapshot()
	assert.Equal(t, StatusSettled, s.Status)
	assert.Equal(t, []string{"2"}, resultIDs(s.Results))
	assert.Len(t, rec.settled(), 1)
}

func TestPipeline_RapidTypingComputesOnce(t *testing.T) {
	corpus := []Candidate{
		{ID: "a", Title: "a", Category: CategoryDocs},
		{ID: "ab", Title: "ab", Category: CategoryDocs},
		{ID: "abc", Title: "abc", Category: CategoryDocs},
	}
	p, clk, rec := newTestPipeline(t, corpus)

	p.SetQuery("a")
	clk.Advance(100 * time.Millisecond)
	p.SetQuery("ab")
	clk.Advance(100 * time.Millisecond)
	p.SetQuery("abc")

	assert.Empty(t, rec.settled())
	assert.Equal(t, 1, clk.Pending(), "only the latest window is armed")

	clk.Advance(time.Second)

	settled := rec.settled()
	require.Len(t, settled, 1)
	assert.Equal(t, "abc", settled[0].Query)
	assert.Equal(t, []string{"abc"}, resultIDs(settled[0].Results))
}

func TestPipeline_FilterChangeRestartsWindow(t *testing.T) {
	p, clk, rec := newTestPipeline(t, twoItemCorpus)

	p.SetQuery("token")
	clk.Advance(200 * time.Millisecond)
	p.ToggleFilter(CategoryProject)
	clk.Advance(200 * time.Millisecond)

	assert.Empty(t, rec.settled(), "window restarted by filter toggle")

	clk.Advance(100 * time.Millisecond)

	s := p.Snapshot()
	assert.Equal(t, StatusSettled, s.Status)
	assert.Equal(t, []Category{CategoryProject}, s.Filters)
	assert.Empty(t, s.Results)
	assert.Len(t, rec.settled(), 1)
}

func TestPipeline_BlankQueryGoesIdleImmediately(t *testing.T) {
	p, clk, rec := newTestPipeline(t, twoItemCorpus)

	p.SetQuery("token")
	clk.Advance(DefaultDebounce)
	require.Len(t, p.Snapshot().Results, 1)

	p.SetQuery("tok")
	p.SetQuery("  ")

	s := p.Snapshot()
	assert.Equal(t, StatusIdle, s.Status)
	assert.Empty(t, s.Results)
	assert.Zero(t, clk.Pending())

	clk.Advance(time.Second)
	assert.Len(t, rec.settled(), 1, "cancelled window never settles")
}

func TestPipeline_FiltersWithoutQueryStayIdle(t *testing.T) {
	p, clk, rec := newTestPipeline(t, twoItemCorpus)

	p.ToggleFilter(CategoryCode)

	assert.Equal(t, StatusIdle, p.Snapshot().Status)
	assert.Zero(t, clk.Pending())
	assert.Empty(t, rec.events)
}

func TestPipeline_ToggleFilter(t *testing.T) {
	p, _, _ := newTestPipeline(t, twoItemCorpus)

	p.ToggleFilter(CategoryCode)
	p.ToggleFilter(CategoryDocs)
	assert.Equal(t, []Category{CategoryCode, CategoryDocs}, p.Snapshot().Filters)

	p.ToggleFilter(CategoryCode)
	assert.Equal(t, []Category{CategoryDocs}, p.Snapshot().Filters)

	p.ToggleFilter("unknown")
	assert.Equal(t, []Category{CategoryDocs}, p.Snapshot().Filters)
}

func TestPipeline_SetFiltersDropsUnknownAndDuplicates(t *testing.T) {
	p, _, _ := newTestPipeline(t, twoItemCorpus)

	p.SetFilters([]Category{CategoryCode, "bogus", CategoryCode, CategoryProject})
	assert.Equal(t, []Category{CategoryCode, CategoryProject}, p.Snapshot().Filters)
}

func TestPipeline_ResultsMatchLastSettledPair(t *testing.T) {
	p, clk, _ := newTestPipeline(t, twoItemCorpus)

	p.SetQuery("token")
	clk.Advance(DefaultDebounce)
	require.Equal(t, []string{"2"}, resultIDs(p.Snapshot().Results))

	// A pending change keeps showing the last settled results, never a
	// mix of old and new inputs.
	p.SetQuery("dash")
	s := p.Snapshot()
	assert.Equal(t, StatusLoading, s.Status)
	assert.Equal(t, []string{"2"}, resultIDs(s.Results))

	clk.Advance(DefaultDebounce)
	assert.Equal(t, []string{"1"}, resultIDs(p.Snapshot().Results))
}

func TestPipeline_CloseCancelsPending(t *testing.T) {
	p, clk, rec := newTestPipeline(t, twoItemCorpus)

	p.SetQuery("token")
	p.Close()

	assert.False(t, p.Pending())
	assert.Equal(t, StatusIdle, p.Snapshot().Status)
	assert.Equal(t, "token", p.Snapshot().Query)

	clk.Advance(time.Second)
	assert.Empty(t, rec.settled())
}

func TestPipeline_Reset(t *testing.T) {
	p, clk, _ := newTestPipeline(t, twoItemCorpus, WithHistory([]string{"kept"}))

	p.SetQuery("token")
	p.ToggleFilter(CategoryCode)
	clk.Advance(DefaultDebounce)

	p.Reset()

	s := p.Snapshot()
	assert.Equal(t, StatusIdle, s.Status)
	assert.Empty(t, s.Query)
	assert.Empty(t, s.Filters)
	assert.Empty(t, s.Results)
	assert.Equal(t, []string{"kept"}, s.History)
}

func TestPipeline_WithDebounce(t *testing.T) {
	p, clk, _ := newTestPipeline(t, twoItemCorpus, WithDebounce(50*time.Millisecond))

	p.SetQuery("token")
	clk.Advance(50 * time.Millisecond)
	assert.Equal(t, StatusSettled, p.Snapshot().Status)
}

func TestPipeline_SetDebounceAppliesToNextWindow(t *testing.T) {
	p, clk, _ := newTestPipeline(t, twoItemCorpus)

	p.SetDebounce(0)
	p.SetDebounce(50 * time.Millisecond)
	p.SetQuery("token")

	clk.Advance(50 * time.Millisecond)
	assert.Equal(t, StatusSettled, p.Snapshot().Status)
}

func TestPipeline_CommitQuery(t *testing.T) {
	p, _, rec := newTestPipeline(t, nil)

	p.CommitQuery("x")
	p.CommitQuery("x")

	assert.Equal(t, []string{"x"}, p.Snapshot().History)

	changes := 0
	for _, ev := range rec.events {
		if ev.Kind == EventHistoryChanged {
			changes++
		}
	}
	assert.Equal(t, 1, changes)
}

func TestPipeline_CommitQueryIgnoresBlank(t *testing.T) {
	p, _, rec := newTestPipeline(t, nil)

	p.CommitQuery("")
	p.CommitQuery("   \t")

	assert.Empty(t, p.Snapshot().History)
	assert.Empty(t, rec.events)
}

func TestPipeline_RemoveHistoryItem(t *testing.T) {
	p, _, _ := newTestPipeline(t, nil, WithHistory(DefaultSeedHistory))

	p.RemoveHistoryItem("Solidity best practices")
	p.RemoveHistoryItem("not there")

	assert.Equal(t, []string{"Next.js authentication", "Tailwind dark mode"}, p.Snapshot().History)
}

func TestPipeline_ClearHistory(t *testing.T) {
	p, _, rec := newTestPipeline(t, nil, WithHistory(DefaultSeedHistory))

	p.ClearHistory()
	p.ClearHistory()

	assert.Empty(t, p.Snapshot().History)
	assert.Len(t, rec.events, 1)
}

func TestPipeline_SnapshotIsIsolated(t *testing.T) {
	p, clk, _ := newTestPipeline(t, twoItemCorpus, WithHistory([]string{"a"}))

	p.SetQuery("token")
	p.ToggleFilter(CategoryCode)
	clk.Advance(DefaultDebounce)

	s := p.Snapshot()
	s.Results[0].Title = "changed"
	s.Filters[0] = CategoryDocs
	s.History[0] = "changed"

	fresh := p.Snapshot()
	assert.Equal(t, "Token.sol", fresh.Results[0].Title)
	assert.Equal(t, []Category{CategoryCode}, fresh.Filters)
	assert.Equal(t, []string{"a"}, fresh.History)
}

func TestPipeline_StatusEvents(t *testing.T) {
	p, clk, rec := newTestPipeline(t, twoItemCorpus)

	p.SetQuery("t")
	p.SetQuery("to")
	clk.Advance(DefaultDebounce)
	p.SetQuery("")

	var statuses []Status
	for _, ev := range rec.events {
		statuses = append(statuses, ev.State.Status)
	}
	assert.Equal(t, []Status{StatusLoading, StatusSettled, StatusIdle}, statuses)
}
