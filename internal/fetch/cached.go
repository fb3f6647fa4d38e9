package fetch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/career-compass/internal/cache"
)

// DefaultPageTTL is how long a fetched posting page stays cached.
const DefaultPageTTL = 24 * time.Hour

// pageKeyPrefix separates page entries from match entries sharing a store
const pageKeyPrefix = "page:"

// CachedFetcher fetches URLs through a byte store, so repeated assessments of the same posting
// do not hit the network. Only successful fetches are cached.
type CachedFetcher struct {
	store   cache.Store
	ttl     time.Duration
	options *Options
	logger  *zap.Logger
}

// CachedFetcherConfig configures a CachedFetcher.
type CachedFetcherConfig struct {
	TTL     time.Duration
	Options *Options
	Logger  *zap.Logger
}

// DefaultCachedFetcherConfig returns the default configuration.
func DefaultCachedFetcherConfig() CachedFetcherConfig {
	return CachedFetcherConfig{TTL: DefaultPageTTL, Options: DefaultOptions()}
}

// NewCachedFetcher wraps store. A nil store disables caching.
func NewCachedFetcher(store cache.Store, cfg CachedFetcherConfig) *CachedFetcher {
	if cfg.Options == nil {
		cfg.Options = DefaultOptions()
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultPageTTL
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &CachedFetcher{store: store, ttl: cfg.TTL, options: cfg.Options, logger: cfg.Logger}
}

// CachedResult is a fetch result with its cache status.
type CachedResult struct {
	*Result
	FromCache bool
}

// Fetch retrieves a URL, serving a cached copy when one exists. Store failures are logged and
// the network is used instead.
func (f *CachedFetcher) Fetch(ctx context.Context, urlStr string) (*CachedResult, error) {
	key := PageKey(urlStr)
	if cached, ok := f.lookup(ctx, key, urlStr); ok {
		return &CachedResult{Result: cached, FromCache: true}, nil
	}

	result, err := URL(ctx, urlStr, f.options)
	if err != nil {
		return nil, err
	}
	f.save(ctx, key, result)
	return &CachedResult{Result: result}, nil
}

// PageKey is the store key of a URL.
func PageKey(urlStr string) string {
	sum := sha256.Sum256([]byte(urlStr))
	return pageKeyPrefix + hex.EncodeToString(sum[:])
}

func (f *CachedFetcher) lookup(ctx context.Context, key, urlStr string) (*Result, bool) {
	if f.store == nil {
		return nil, false
	}
	data, ok, err := f.store.Get(ctx, key)
	if err != nil {
		f.logger.Warn("page cache read failed", zap.String("url", urlStr), zap.Error(err))
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var result Result
	if err := json.Unmarshal(data, &result); err != nil {
		f.logger.Warn("discarding undecodable page cache entry", zap.String("url", urlStr), zap.Error(err))
		return nil, false
	}
	f.logger.Debug("page cache hit", zap.String("url", urlStr))
	return &result, true
}

func (f *CachedFetcher) save(ctx context.Context, key string, result *Result) {
	if f.store == nil {
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		f.logger.Warn("failed to encode page", zap.String("url", result.URL), zap.Error(err))
		return
	}
	if err := f.store.Set(ctx, key, data, f.ttl); err != nil {
		f.logger.Warn("page cache write failed", zap.String("url", result.URL), zap.Error(err))
	}
}
