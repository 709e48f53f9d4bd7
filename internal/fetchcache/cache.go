// Package fetchcache keeps recently fetched feed bodies in memory so bursts
// of searches over the same feeds do not re-download them. Entries live only
// for the configured ttl; nothing is ever written to disk.
package fetchcache

import (
	"sync"
	"time"
)

type entry struct {
	url string
	ts  time.Time
}

// Cache is a fixed-capacity TTL cache of feed bodies keyed by feed URL.
type Cache struct {
	mu       sync.Mutex
	bodies   map[string][]byte
	stamps   map[string]time.Time
	order    []entry
	capacity int
	ttl      time.Duration
}

// New creates a cache with the provided capacity and ttl.
func New(capacity int, ttl time.Duration) *Cache {
	if capacity <= 0 {
		capacity = 1
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Cache{
		bodies:   make(map[string][]byte, capacity),
		stamps:   make(map[string]time.Time, capacity),
		order:    make([]entry, 0, capacity),
		capacity: capacity,
		ttl:      ttl,
	}
}

// Get returns the cached body for url when it is still inside the ttl window.
func (c *Cache) Get(url string) ([]byte, bool) {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	ts, ok := c.stamps[url]
	if !ok || now.Sub(ts) > c.ttl {
		return nil, false
	}
	return c.bodies[url], true
}

// Put stores a fetched body, evicting expired entries and the oldest ones
// beyond capacity.
func (c *Cache) Put(url string, body []byte) {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.bodies[url] = body
	c.stamps[url] = now
	c.order = append(c.order, entry{url: url, ts: now})
	c.compact(now)
}

func (c *Cache) compact(now time.Time) {
	cutoff := now.Add(-c.ttl)

	for len(c.order) > 0 && (len(c.stamps) > c.capacity || c.order[0].ts.Before(cutoff)) {
		oldest := c.order[0]
		c.order = c.order[1:]

		if ts, ok := c.stamps[oldest.url]; ok && ts.Equal(oldest.ts) {
			delete(c.stamps, oldest.url)
			delete(c.bodies, oldest.url)
		}
	}
}
