package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/jonathan/career-compass/internal/cache"
)

func countingServer(t *testing.T, status int, body string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server, &hits
}

func TestCachedFetcher_SecondFetchIsCached(t *testing.T) {
	server, hits := countingServer(t, http.StatusOK, "<html><body>posting</body></html>")
	store := cache.NewMemoryStore()
	cfg := DefaultCachedFetcherConfig()
	cfg.Logger = zaptest.NewLogger(t)
	f := NewCachedFetcher(store, cfg)

	first, err := f.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.False(t, first.FromCache)

	second, err := f.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	assert.Equal(t, first.HTML, second.HTML)
	assert.Equal(t, http.StatusOK, second.StatusCode)

	assert.Equal(t, int32(1), hits.Load())
	assert.Equal(t, 1, store.Len())
}

func TestCachedFetcher_FailuresAreNotCached(t *testing.T) {
	server, hits := countingServer(t, http.StatusInternalServerError, "boom")
	store := cache.NewMemoryStore()
	f := NewCachedFetcher(store, DefaultCachedFetcherConfig())

	for range 2 {
		_, err := f.Fetch(context.Background(), server.URL)
		require.Error(t, err)
	}
	assert.Equal(t, int32(2), hits.Load())
	assert.Zero(t, store.Len())
}

func TestCachedFetcher_NilStore(t *testing.T) {
	server, hits := countingServer(t, http.StatusOK, "ok")
	f := NewCachedFetcher(nil, CachedFetcherConfig{})

	for range 2 {
		res, err := f.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.False(t, res.FromCache)
	}
	assert.Equal(t, int32(2), hits.Load())
}

type brokenStore struct{}

func (brokenStore) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("store down")
}

func (brokenStore) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("store down")
}

func TestCachedFetcher_StoreFailureFallsBackToNetwork(t *testing.T) {
	server, _ := countingServer(t, http.StatusOK, "ok")
	f := NewCachedFetcher(brokenStore{}, CachedFetcherConfig{Logger: zaptest.NewLogger(t)})

	res, err := f.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "ok", res.HTML)
}

func TestCachedFetcher_CorruptEntryIsRefetched(t *testing.T) {
	server, hits := countingServer(t, http.StatusOK, "fresh")
	store := cache.NewMemoryStore()
	require.NoError(t, store.Set(context.Background(), PageKey(server.URL), []byte("{not json"), time.Hour))

	f := NewCachedFetcher(store, DefaultCachedFetcherConfig())
	res, err := f.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.False(t, res.FromCache)
	assert.Equal(t, "fresh", res.HTML)
	assert.Equal(t, int32(1), hits.Load())
}

func TestPageKey(t *testing.T) {
	a := PageKey("https://example.com/a")
	assert.Equal(t, a, PageKey("https://example.com/a"))
	assert.NotEqual(t, a, PageKey("https://example.com/b"))
	assert.Regexp(t, `^page:[0-9a-f]{64}$`, a)
}
