package cache

import "time"

// Snapshot describes the cache state at one instant.
type Snapshot struct {
	Cached     bool      `json:"cached"`
	Fresh      bool      `json:"fresh"`
	Generation string    `json:"generation,omitempty"`
	FetchedAt  time.Time `json:"fetchedAt,omitzero"`
	ExpiresAt  time.Time `json:"expiresAt,omitzero"`
	Rows       int       `json:"rows"`
	TTLSeconds float64   `json:"ttlSeconds"`
	Hits       uint64    `json:"hits"`
	Misses     uint64    `json:"misses"`
	Failures   uint64    `json:"failures"`
	LastError  string    `json:"lastError,omitempty"`
}

// Snapshot reports the current entry and counters without triggering a fetch.
func (c *ResultCache) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := Snapshot{
		TTLSeconds: c.ttl.Seconds(),
		Hits:       c.hits,
		Misses:     c.misses,
		Failures:   c.failures,
		LastError:  c.lastErr,
	}
	if c.current != nil {
		s.Cached = true
		s.Generation = c.current.generation.String()
		s.FetchedAt = c.current.fetchedAt
		s.ExpiresAt = c.current.fetchedAt.Add(c.ttl)
		s.Rows = len(c.current.table)
		s.Fresh = c.clock.Since(c.current.fetchedAt) < c.ttl
	}
	return s
}
