package cache

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/jonathan/career-compass/internal/logging"
	"github.com/jonathan/career-compass/internal/types"
)

// MatchCache memoizes match result sets. At most one computation runs per fingerprint at a
// time; concurrent callers for the same fingerprint wait for it and share the result.
type MatchCache struct {
	store  Store
	ttl    time.Duration
	group  singleflight.Group
	logger *zap.Logger
}

// NewMatchCache wraps store.
func NewMatchCache(store Store, ttl time.Duration, logger *zap.Logger) *MatchCache {
	return &MatchCache{store: store, ttl: ttl, logger: logging.OrNop(logger)}
}

type flightResult struct {
	results []types.MatchResult
	hit     bool
}

// GetOrCompute returns the cached results for fingerprint, or runs compute and stores its
// output. hit reports whether the results came from the store. Every caller gets its own deep
// copy. Store failures are logged and never fail the call.
func (c *MatchCache) GetOrCompute(ctx context.Context, fingerprint string, compute func() ([]types.MatchResult, error)) (results []types.MatchResult, hit bool, err error) {
	v, err, _ := c.group.Do(fingerprint, func() (any, error) {
		if cached, ok := c.lookup(ctx, fingerprint); ok {
			return flightResult{results: cached, hit: true}, nil
		}

		computed, err := compute()
		if err != nil {
			return nil, err
		}
		c.save(ctx, fingerprint, computed)
		return flightResult{results: computed}, nil
	})
	if err != nil {
		return nil, false, err
	}

	fr := v.(flightResult)
	out := make([]types.MatchResult, len(fr.results))
	for i, r := range fr.results {
		out[i] = r.Clone()
	}
	return out, fr.hit, nil
}

func (c *MatchCache) lookup(ctx context.Context, fingerprint string) ([]types.MatchResult, bool) {
	data, ok, err := c.store.Get(ctx, fingerprint)
	if err != nil {
		c.logger.Warn("match cache read failed", zap.String("fingerprint", fingerprint), zap.Error(err))
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var results []types.MatchResult
	if err := json.Unmarshal(data, &results); err != nil {
		c.logger.Warn("discarding undecodable match cache entry", zap.String("fingerprint", fingerprint), zap.Error(err))
		return nil, false
	}
	c.logger.Debug("match cache hit", zap.String("fingerprint", fingerprint))
	return results, true
}

func (c *MatchCache) save(ctx context.Context, fingerprint string, results []types.MatchResult) {
	data, err := json.Marshal(results)
	if err != nil {
		c.logger.Warn("failed to encode match results", zap.String("fingerprint", fingerprint), zap.Error(err))
		return
	}
	if err := c.store.Set(ctx, fingerprint, data, c.ttl); err != nil {
		c.logger.Warn("match cache write failed", zap.String("fingerprint", fingerprint), zap.Error(err))
	}
}
