// Package cache memoizes the warehouse result for a fixed time-to-live.
//
// The cache holds at most one entry: the whole inventory table as returned by
// the fixed query. Entries are replaced as a unit and never patched.
//
// # Failure policy
//
// A fetch that fails is reported to the caller unchanged and leaves the
// current entry untouched. An expired entry is never served as a fallback,
// so a warehouse outage shows up on the next read past the TTL and every
// read after an explicit Invalidate.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"

	"github.com/01moynul/healthsync-golang/internal/models"
	"github.com/01moynul/healthsync-golang/internal/observability"
)

// DefaultTTL is how long a fetched table stays fresh.
const DefaultTTL = 600 * time.Second

// flightKey is the singleflight key for the one fixed query.
const flightKey = "inventory_health"

// Fetcher loads the full inventory table from the backing store.
type Fetcher interface {
	Fetch(ctx context.Context) (models.InventoryTable, error)
}

// Option configures a ResultCache.
type Option func(*ResultCache)

// WithClock sets the clock used for TTL decisions.
func WithClock(clock clockwork.Clock) Option {
	return func(c *ResultCache) { c.clock = clock }
}

// WithTTL sets the entry lifetime. Non-positive values keep the default.
func WithTTL(ttl time.Duration) Option {
	return func(c *ResultCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithMetrics records cache and fetch activity on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(c *ResultCache) { c.metrics = m }
}

type entry struct {
	table      models.InventoryTable
	fetchedAt  time.Time
	generation uuid.UUID
}

// ResultCache memoizes Fetcher output.
//
// Thread Safety: safe for concurrent use. Concurrent misses share one fetch.
type ResultCache struct {
	fetcher Fetcher
	clock   clockwork.Clock
	ttl     time.Duration
	metrics *observability.Metrics

	flight singleflight.Group

	mu       sync.RWMutex
	current  *entry
	hits     uint64
	misses   uint64
	failures uint64
	lastErr  string
	// epoch is bumped by Invalidate; a fetch that started under an older
	// epoch must not overwrite a newer entry.
	epoch uint64
}

// New creates an empty cache in front of fetcher.
func New(fetcher Fetcher, opts ...Option) *ResultCache {
	c := &ResultCache{
		fetcher: fetcher,
		clock:   clockwork.NewRealClock(),
		ttl:     DefaultTTL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TTL returns the configured entry lifetime.
func (c *ResultCache) TTL() time.Duration {
	return c.ttl
}

// Get returns the cached table while it is younger than the TTL, otherwise
// fetches a new one. The returned table is shared and must not be modified.
func (c *ResultCache) Get(ctx context.Context) (models.InventoryTable, error) {
	if table, ok := c.lookup(); ok {
		c.recordHit()
		return table, nil
	}
	c.recordMiss()

	v, err, shared := c.flight.Do(flightKey, func() (any, error) {
		// Another caller may have stored a fresh entry while we queued.
		if table, ok := c.lookup(); ok {
			return table, nil
		}
		// Joined callers must not inherit the first caller's cancellation;
		// the fetcher bounds the round-trip with its own timeout.
		return c.refill(context.WithoutCancel(ctx))
	})
	if err != nil {
		return nil, err
	}

	table, ok := v.(models.InventoryTable)
	if !ok {
		return nil, fmt.Errorf("cache: unexpected type from fetch group: %T", v)
	}
	if shared {
		slog.Debug("inventory fetch shared between callers", "rows", len(table))
	}
	return table, nil
}

// Invalidate drops the current entry. The next Get fetches regardless of age.
func (c *ResultCache) Invalidate() {
	c.mu.Lock()
	c.current = nil
	c.epoch++
	c.mu.Unlock()

	// Callers arriving after this point must not join a fetch that started
	// before the invalidation.
	c.flight.Forget(flightKey)

	if c.metrics != nil {
		c.metrics.CachedRows.Set(0)
	}
	slog.Info("inventory cache invalidated")
}

func (c *ResultCache) lookup() (models.InventoryTable, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.current == nil {
		return nil, false
	}
	if c.clock.Since(c.current.fetchedAt) >= c.ttl {
		return nil, false
	}
	return c.current.table, true
}

func (c *ResultCache) refill(ctx context.Context) (models.InventoryTable, error) {
	c.mu.RLock()
	epoch := c.epoch
	c.mu.RUnlock()

	start := c.clock.Now()
	table, err := c.fetcher.Fetch(ctx)
	elapsed := c.clock.Since(start)

	if err != nil {
		c.mu.Lock()
		c.failures++
		c.lastErr = err.Error()
		c.mu.Unlock()

		if c.metrics != nil {
			c.metrics.FetchFailuresTotal.Inc()
			c.metrics.FetchDurationSeconds.WithLabelValues("error").Observe(elapsed.Seconds())
		}
		slog.Error("inventory fetch failed", "error", err, "duration_ms", elapsed.Milliseconds())
		return nil, err
	}

	if table == nil {
		table = models.InventoryTable{}
	}
	e := &entry{
		table:      table,
		fetchedAt:  c.clock.Now(),
		generation: uuid.New(),
	}

	c.mu.Lock()
	if c.epoch != epoch {
		c.mu.Unlock()
		slog.Info("discarding inventory fetch started before invalidation", "rows", len(table))
		return table, nil
	}
	c.current = e
	c.lastErr = ""
	c.mu.Unlock()

	if c.metrics != nil {
		c.metrics.FetchDurationSeconds.WithLabelValues("success").Observe(elapsed.Seconds())
		c.metrics.CachedRows.Set(float64(len(table)))
	}
	slog.Info("inventory cache refreshed",
		"generation", e.generation.String(),
		"rows", len(table),
		"ttl", c.ttl.String())
	return table, nil
}

func (c *ResultCache) recordHit() {
	c.mu.Lock()
	c.hits++
	c.mu.Unlock()
	if c.metrics != nil {
		c.metrics.CacheHitsTotal.Inc()
	}
}

func (c *ResultCache) recordMiss() {
	c.mu.Lock()
	c.misses++
	c.mu.Unlock()
	if c.metrics != nil {
		c.metrics.CacheMissesTotal.Inc()
	}
	slog.Debug("inventory cache miss")
}
