package cache

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/FACorreiaa/go-photoshare/internal/app/observability/metrics"
)

// CacheMetrics tracks cache performance
type CacheMetrics struct {
	Hits          int64
	Misses        int64
	Sets          int64
	Invalidations int64
	// Discarded counts loads that finished after their key was invalidated.
	Discarded int64
}

// QueryCache holds server responses shared by every screen of a session.
// Concurrent loads of the same key collapse into one upstream call, and a
// load that overlaps an invalidation of its key never writes its result.
type QueryCache struct {
	store  *gocache.Cache
	group  singleflight.Group
	name   string
	logger *zap.Logger

	mu    sync.Mutex
	epoch uint64
	// loads tracks keys with a load in flight. Entries leave when the last
	// load of the key finishes, so the map never outgrows the concurrent loads.
	loads map[string]*pendingLoad

	hits, misses, sets, invalidations, discarded atomic.Int64
}

type pendingLoad struct {
	running int
	// gen changes whenever the key is invalidated while loads are running.
	gen uint64
}

// NewQueryCache creates a cache whose entries live for ttl.
func NewQueryCache(ttl time.Duration, name string, logger *zap.Logger) *QueryCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QueryCache{
		store:  gocache.New(ttl, 2*ttl),
		name:   name,
		logger: logger,
		loads:  make(map[string]*pendingLoad),
	}
}

// Fetch returns the cached value for key or loads it. The load runs detached
// from the caller's cancellation because other callers may be waiting on it;
// a caller whose context ends stops waiting and gets ctx.Err().
func Fetch[T any](ctx context.Context, c *QueryCache, key string, load func(context.Context) (T, error)) (T, error) {
	var zero T
	if v, ok := c.store.Get(key); ok {
		if typed, ok := v.(T); ok {
			c.record(ctx, "hit")
			c.hits.Add(1)
			c.logger.Debug("Cache hit", zap.String("cache", c.name), zap.String("key", key))
			return typed, nil
		}
	}
	c.record(ctx, "miss")
	c.misses.Add(1)

	loadCtx := context.WithoutCancel(ctx)

	ch := c.group.DoChan(key, func() (any, error) {
		gen := c.begin(key)
		val, err := load(loadCtx)
		c.finish(key, gen, val, err == nil)
		if err != nil {
			return nil, err
		}
		return val, nil
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		typed, ok := res.Val.(T)
		if !ok {
			return zero, nil
		}
		return typed, nil
	}
}

// Get returns the cached value for key without loading.
func Get[T any](c *QueryCache, key string) (T, bool) {
	var zero T
	v, ok := c.store.Get(key)
	if !ok {
		return zero, false
	}
	typed, ok := v.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}

// Patch rewrites a cached value in place. In-flight loads of key are
// discarded so they cannot overwrite the patched value. It reports whether
// a value was present.
func Patch[T any](c *QueryCache, key string, update func(T) T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.supersedeLocked(key)

	v, ok := c.store.Get(key)
	if !ok {
		return false
	}
	typed, ok := v.(T)
	if !ok {
		c.store.Delete(key)
		return false
	}
	c.store.SetDefault(key, update(typed))
	c.sets.Add(1)
	c.logger.Debug("Cache patch", zap.String("cache", c.name), zap.String("key", key))
	return true
}

// Set stores value under key unconditionally.
func (c *QueryCache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store.SetDefault(key, value)
	c.sets.Add(1)
}

// Invalidate drops the given keys and any in-flight loads of them.
func (c *QueryCache) Invalidate(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		c.supersedeLocked(key)
		c.store.Delete(key)
		c.invalidations.Add(1)
	}
	c.logger.Debug("Cache invalidate", zap.String("cache", c.name), zap.Strings("keys", keys))
}

// InvalidatePrefix drops every key starting with prefix.
func (c *QueryCache) InvalidatePrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	dropped := 0
	for key := range c.store.Items() {
		if strings.HasPrefix(key, prefix) {
			c.store.Delete(key)
			dropped++
		}
	}
	for key := range c.loads {
		if strings.HasPrefix(key, prefix) {
			c.supersedeLocked(key)
		}
	}
	c.invalidations.Add(int64(dropped))
	c.logger.Debug("Cache invalidate prefix",
		zap.String("cache", c.name),
		zap.Int("dropped", dropped))
}

// GetMetrics returns current cache metrics
func (c *QueryCache) GetMetrics() CacheMetrics {
	return CacheMetrics{
		Hits:          c.hits.Load(),
		Misses:        c.misses.Load(),
		Sets:          c.sets.Load(),
		Invalidations: c.invalidations.Load(),
		Discarded:     c.discarded.Load(),
	}
}

// Size returns the number of items in the cache
func (c *QueryCache) Size() int {
	return c.store.ItemCount()
}

// Clear removes all items from the cache
func (c *QueryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.loads {
		c.supersedeLocked(key)
	}
	c.store.Flush()
	c.logger.Info("Cache cleared", zap.String("cache", c.name))
}

// begin registers a load of key and returns the generation it must still
// hold when it finishes for its result to be stored.
func (c *QueryCache) begin(key string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.loads[key]
	if !ok {
		p = &pendingLoad{gen: c.epoch}
		c.loads[key] = p
	}
	p.running++
	return p.gen
}

// finish stores val when no invalidation of key happened since begin, and
// drops the bookkeeping of key once its last load is done.
func (c *QueryCache) finish(key string, gen uint64, val any, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p := c.loads[key]
	if p == nil {
		return
	}
	p.running--
	if p.running <= 0 {
		delete(c.loads, key)
	}
	if !ok {
		return
	}
	if p.gen != gen {
		c.discarded.Add(1)
		c.logger.Debug("Cache load discarded after invalidation",
			zap.String("cache", c.name), zap.String("key", key))
		return
	}
	c.store.SetDefault(key, val)
	c.sets.Add(1)
}

// supersedeLocked marks running loads of key as stale and detaches them from
// the flight group, so later callers start a fresh load instead of joining.
func (c *QueryCache) supersedeLocked(key string) {
	p, ok := c.loads[key]
	if !ok {
		return
	}
	c.epoch++
	p.gen = c.epoch
	c.group.Forget(key)
}

// pending reports how many keys have a load in flight.
func (c *QueryCache) pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.loads)
}

func (c *QueryCache) record(ctx context.Context, result string) {
	metrics.Get().CacheLookupsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("cache", c.name),
		attribute.String("result", result),
	))
}
