package updatecheck

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/pulse/internal/core/eventbus"
	"github.com/colonyops/pulse/internal/core/eventbus/testbus"
	"github.com/colonyops/pulse/internal/core/kv"
	"github.com/colonyops/pulse/internal/data/db"
	"github.com/colonyops/pulse/internal/data/stores"
)

func newTestCache(t *testing.T) kv.KV {
	t.Helper()
	database, err := db.Open(t.TempDir(), db.DefaultOpenOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return stores.NewKVStore(database)
}

func cacheRelease(t *testing.T, store kv.KV, tag string) {
	t.Helper()
	cache := kv.Scoped[ReleaseInfo](store, cacheNamespace)
	require.NoError(t, cache.SetTTL(context.Background(), cacheKey, ReleaseInfo{TagName: tag}, cacheTTL))
}

func withStubbedFetch(t *testing.T, body []byte, err error) *int {
	t.Helper()
	calls := 0
	prevFetch := fetchLatestReleaseJSON
	fetchLatestReleaseJSON = func(context.Context) ([]byte, error) {
		calls++
		return body, err
	}
	t.Cleanup(func() {
		fetchLatestReleaseJSON = prevFetch
	})
	return &calls
}

func TestCheck_DevVersion(t *testing.T) {
	result, err := Check(context.Background(), nil, "dev")
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestCheck_EmptyVersion(t *testing.T) {
	result, err := Check(context.Background(), newTestCache(t), "")
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestCheck_InvalidVersion(t *testing.T) {
	result, err := Check(context.Background(), newTestCache(t), "not-semver")
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestCheck_CurrentIsLatest(t *testing.T) {
	cache := newTestCache(t)
	cacheRelease(t, cache, "v1.3.0")
	lookups := withStubbedFetch(t, nil, nil)

	result, err := Check(context.Background(), cache, "v1.3.0")
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.Equal(t, 0, *lookups)
}

func TestCheck_UpdateAvailable(t *testing.T) {
	cache := newTestCache(t)
	cacheRelease(t, cache, "v2.0.0")
	lookups := withStubbedFetch(t, nil, nil)

	result, err := Check(context.Background(), cache, "v1.0.0")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "v1.0.0", result.Current)
	assert.Equal(t, "v2.0.0", result.Latest)
	assert.Equal(t, 0, *lookups)
}

func TestCheck_NormalizesVersionPrefix(t *testing.T) {
	cache := newTestCache(t)
	cacheRelease(t, cache, "v1.3.0")
	withStubbedFetch(t, nil, nil)

	result, err := Check(context.Background(), cache, "1.2.3")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "v1.2.3", result.Current)
	assert.Equal(t, "v1.3.0", result.Latest)
}

func TestCheck_FetchesAndCachesOnMiss(t *testing.T) {
	cache := newTestCache(t)
	lookups := withStubbedFetch(t, []byte(`{"tag_name":"v0.9.0","published_at":"2025-01-01T00:00:00Z"}`), nil)

	result, err := Check(context.Background(), cache, "v0.8.1")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "v0.9.0", result.Latest)
	assert.Equal(t, 1, *lookups)

	_, err = Check(context.Background(), cache, "v0.8.1")
	require.NoError(t, err)
	assert.Equal(t, 1, *lookups, "second check is served from the cache")
}

func TestCheck_FetchErrorIsSilent(t *testing.T) {
	withStubbedFetch(t, nil, errors.New("offline"))

	result, err := Check(context.Background(), newTestCache(t), "v1.0.0")
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestCheck_InvalidCachedTag(t *testing.T) {
	cache := newTestCache(t)
	cacheRelease(t, cache, "not-semver")

	result, err := Check(context.Background(), cache, "v1.0.0")
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestCheck_CachesUnderNamespacedKey(t *testing.T) {
	cache := newTestCache(t)
	withStubbedFetch(t, []byte(`{"tag_name":"v3.0.0"}`), nil)

	_, err := Check(context.Background(), cache, "v2.0.0")
	require.NoError(t, err)

	var info ReleaseInfo
	require.NoError(t, cache.Get(context.Background(), "update-check:latest", &info))
	assert.Equal(t, "v3.0.0", info.TagName)
}

func TestAnnounce_PublishesUpdateAvailable(t *testing.T) {
	tb := testbus.New(t)
	cache := newTestCache(t)
	cacheRelease(t, cache, "v1.1.0")

	Announce(context.Background(), tb.EventBus, cache, "v1.0.0")

	tb.AssertPublished(t, eventbus.EventUpdateAvailable)
	events := tb.Events()
	require.Len(t, events, 1)
	assert.Equal(t, eventbus.UpdateAvailablePayload{Current: "v1.0.0", Latest: "v1.1.0"}, events[0].Payload)
}

func TestAnnounce_UpToDateIsQuiet(t *testing.T) {
	tb := testbus.New(t)
	cache := newTestCache(t)
	cacheRelease(t, cache, "v1.0.0")

	Announce(context.Background(), tb.EventBus, cache, "v1.0.0")

	tb.AssertNotPublished(t, eventbus.EventUpdateAvailable, 50*time.Millisecond)
}
