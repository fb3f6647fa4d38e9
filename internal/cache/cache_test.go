package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/jonathan/career-compass/internal/types"
)

func sampleResults() []types.MatchResult {
	return []types.MatchResult{
		{
			CareerID:       1,
			CareerName:     "Data Scientist",
			Category:       "technology",
			CompositeScore: 81.4,
			SkillScore:     0.91,
			SkillGaps:      []types.SkillGap{{Skill: "statistics", Current: 0.5, Required: 0.9, Deficit: 0.4}},
			Confidence:     types.ConfidenceHigh,
			Notes:          "Strong skill match",
		},
	}
}

func sampleProfile(t *testing.T) types.StudentProfile {
	t.Helper()
	p, err := types.NewStudentProfile(types.StudentProfile{
		Skills:    map[string]float64{"python": 0.9, "statistics": 0.5},
		Academics: map[string]float64{"math": 0.8},
	})
	require.NoError(t, err)
	return p
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	now := time.Unix(1000, 0)
	s.now = func() time.Time { return now }

	require.NoError(t, s.Set(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, s.Set(ctx, "b", []byte("2"), 0))

	v, ok, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("1"), v)

	now = now.Add(time.Minute)
	_, ok, err = s.Get(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, _ = s.Get(ctx, "b")
	assert.True(t, ok, "entries without ttl never expire")
	assert.Equal(t, 1, s.Len())
}

func TestMemoryStore_CopiesValues(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	buf := []byte("abc")
	require.NoError(t, s.Set(ctx, "k", buf, 0))
	buf[0] = 'x'

	v, _, _ := s.Get(ctx, "k")
	assert.Equal(t, "abc", string(v))
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := NewRedisStoreFromClient(client, "career:match:")
	t.Cleanup(func() { _ = s.Close() })
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "abc", []byte(`{"x":1}`), time.Hour))
	assert.True(t, mr.Exists("career:match:abc"))

	v, ok, err := s.Get(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"x":1}`, string(v))

	mr.FastForward(2 * time.Hour)
	_, ok, err = s.Get(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNewRedisStore_Ping(t *testing.T) {
	mr := miniredis.RunT(t)

	s, err := NewRedisStore(context.Background(), RedisOptions{Addr: mr.Addr(), KeyPrefix: "p:"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	addr := mr.Addr()
	mr.Close()
	_, err = NewRedisStore(context.Background(), RedisOptions{Addr: addr})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis ping failed")
}

func TestFingerprint(t *testing.T) {
	p := sampleProfile(t)

	a, err := Fingerprint(p, "cat1", "v1", 5)
	require.NoError(t, err)
	b, err := Fingerprint(sampleProfile(t), "cat1", "v1", 5)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)

	for _, other := range []struct {
		catalog, weights string
		topN             int
	}{
		{"cat2", "v1", 5},
		{"cat1", "v2", 5},
		{"cat1", "v1", 3},
	} {
		f, err := Fingerprint(p, other.catalog, other.weights, other.topN)
		require.NoError(t, err)
		assert.NotEqual(t, a, f)
	}
}

func TestMatchCache_ComputesOnceThenHits(t *testing.T) {
	ctx := context.Background()
	c := NewMatchCache(NewMemoryStore(), time.Hour, zaptest.NewLogger(t))
	calls := 0
	compute := func() ([]types.MatchResult, error) {
		calls++
		return sampleResults(), nil
	}

	first, hit, err := c.GetOrCompute(ctx, "fp", compute)
	require.NoError(t, err)
	assert.False(t, hit)

	second, hit, err := c.GetOrCompute(ctx, "fp", compute)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)
}

func TestMatchCache_ConcurrentCallersShareComputation(t *testing.T) {
	ctx := context.Background()
	c := NewMatchCache(NewMemoryStore(), time.Hour, nil)
	var calls atomic.Int32
	compute := func() ([]types.MatchResult, error) {
		calls.Add(1)
		time.Sleep(10 * time.Millisecond)
		return sampleResults(), nil
	}

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results, _, err := c.GetOrCompute(ctx, "fp", compute)
			assert.NoError(t, err)
			assert.Len(t, results, 1)
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), calls.Load())
}

func TestMatchCache_CallersDoNotShareSlices(t *testing.T) {
	ctx := context.Background()
	c := NewMatchCache(NewMemoryStore(), time.Hour, nil)
	computed := sampleResults()
	computed[0].ConfidenceReasons = []string{"personality: neutral"}

	var (
		wg      sync.WaitGroup
		release = make(chan struct{})
		got     [2][]types.MatchResult
	)
	compute := func() ([]types.MatchResult, error) {
		<-release
		return computed, nil
	}
	for i := range got {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results, _, err := c.GetOrCompute(ctx, "fp", compute)
			assert.NoError(t, err)
			got[i] = results
		}()
	}
	time.Sleep(10 * time.Millisecond)
	close(release)
	wg.Wait()

	require.Len(t, got[0], 1)
	require.Len(t, got[1], 1)
	got[0][0].SkillGaps[0].Skill = "changed"
	got[0][0].ConfidenceReasons[0] = "changed"

	assert.Equal(t, "statistics", got[1][0].SkillGaps[0].Skill)
	assert.Equal(t, "personality: neutral", got[1][0].ConfidenceReasons[0])
	assert.Equal(t, "statistics", computed[0].SkillGaps[0].Skill)
}

func TestMatchCache_ComputeErrorNotCached(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	c := NewMatchCache(store, time.Hour, nil)

	_, _, err := c.GetOrCompute(ctx, "fp", func() ([]types.MatchResult, error) {
		return nil, errors.New("boom")
	})
	require.Error(t, err)
	assert.Equal(t, 0, store.Len())
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("read failed")
}

func (failingStore) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("write failed")
}

func TestMatchCache_StoreFailuresBypassed(t *testing.T) {
	c := NewMatchCache(failingStore{}, time.Hour, zaptest.NewLogger(t))

	results, hit, err := c.GetOrCompute(context.Background(), "fp", func() ([]types.MatchResult, error) {
		return sampleResults(), nil
	})
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, sampleResults(), results)
}

func TestMatchCache_CorruptEntryRecomputed(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Set(ctx, "fp", []byte("not json"), 0))
	c := NewMatchCache(store, time.Hour, nil)

	results, hit, err := c.GetOrCompute(ctx, "fp", func() ([]types.MatchResult, error) {
		return sampleResults(), nil
	})
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Len(t, results, 1)
}
