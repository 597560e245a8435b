package sweep

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/pulse/internal/core/eventbus"
	"github.com/colonyops/pulse/internal/core/eventbus/testbus"
)

type fakePruner struct {
	mu      sync.Mutex
	cutoffs []time.Time
	deleted int64
	err     error
}

func (f *fakePruner) Prune(_ context.Context, before time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cutoffs = append(f.cutoffs, before)
	return f.deleted, f.err
}

func (f *fakePruner) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.cutoffs)
}

type fakeExpirer struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (f *fakeExpirer) SweepExpired(context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return 1, f.err
}

func (f *fakeExpirer) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestOnce_UsesRetentionCutoff(t *testing.T) {
	tb := testbus.New(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	pruner := &fakePruner{deleted: 3}

	n := Once(context.Background(), pruner, tb.EventBus, Options{
		Retention: 24 * time.Hour,
		Now:       func() time.Time { return now },
	})

	assert.Equal(t, int64(3), n)
	require.Len(t, pruner.cutoffs, 1)
	assert.Equal(t, now.Add(-24*time.Hour), pruner.cutoffs[0])

	tb.AssertPublished(t, eventbus.EventArchivePruned)
	events := tb.Events()
	require.NotEmpty(t, events)
	assert.Equal(t, eventbus.ArchivePrunedPayload{Count: 3}, events[0].Payload)
}

func TestOnce_NothingDeleted_DoesNotPublish(t *testing.T) {
	tb := testbus.New(t)

	n := Once(context.Background(), &fakePruner{}, tb.EventBus, Options{Retention: time.Hour})

	assert.Zero(t, n)
	tb.AssertNotPublished(t, eventbus.EventArchivePruned, 50*time.Millisecond)
}

func TestOnce_ErrorIsSwallowed(t *testing.T) {
	tb := testbus.New(t)

	n := Once(context.Background(), &fakePruner{deleted: 2, err: errors.New("locked")}, tb.EventBus, Options{Retention: time.Hour})

	assert.Zero(t, n)
	tb.AssertNotPublished(t, eventbus.EventArchivePruned, 50*time.Millisecond)
}

func TestStart_RunsUntilCancelled(t *testing.T) {
	pruner := &fakePruner{}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		Start(ctx, pruner, nil, Options{Interval: 10 * time.Millisecond, Retention: time.Hour})
		close(done)
	}()

	require.Eventually(t, func() bool { return pruner.calls() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweep did not stop after cancel")
	}
}

func TestStart_DisabledRetentionReturnsImmediately(t *testing.T) {
	pruner := &fakePruner{}

	Start(context.Background(), pruner, nil, Options{Interval: time.Millisecond})

	assert.Zero(t, pruner.calls())
}

func TestOnce_SweepsExpiredCacheEntries(t *testing.T) {
	pruner := &fakePruner{}
	expirer := &fakeExpirer{}

	Once(context.Background(), pruner, nil, Options{Retention: time.Hour, Expirer: expirer})

	assert.Equal(t, 1, expirer.count())
	assert.Equal(t, 1, pruner.calls())
}

func TestOnce_ExpirerErrorDoesNotStopPrune(t *testing.T) {
	pruner := &fakePruner{deleted: 4}
	expirer := &fakeExpirer{err: errors.New("busy")}

	n := Once(context.Background(), pruner, nil, Options{Retention: time.Hour, Expirer: expirer})

	assert.Equal(t, int64(4), n)
	assert.Equal(t, 1, expirer.count())
}

func TestStart_ExpirerRunsWithoutArchive(t *testing.T) {
	expirer := &fakeExpirer{}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		Start(ctx, nil, nil, Options{Interval: 10 * time.Millisecond, Expirer: expirer})
		close(done)
	}()

	require.Eventually(t, func() bool { return expirer.count() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweep did not stop after cancel")
	}
}
