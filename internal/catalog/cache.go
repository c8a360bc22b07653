package catalog

import (
	"sync"
	"time"

	"github.com/hassaancode/CineSage/internal/media"
)

// searchCache provides in-memory caching with TTL for catalog search
// results. Repeat autocomplete queries and title resolutions for the same
// candidate hit the cache instead of TMDB.
type searchCache struct {
	mu       sync.RWMutex
	items    map[string]cacheEntry
	ttl      time.Duration
	maxItems int
}

type cacheEntry struct {
	results   []media.Item
	expiresAt time.Time
}

func newSearchCache(ttl time.Duration, maxItems int) *searchCache {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	if maxItems <= 0 {
		maxItems = 1000
	}
	return &searchCache{
		items:    make(map[string]cacheEntry),
		ttl:      ttl,
		maxItems: maxItems,
	}
}

// get retrieves cached results for a key, or false when absent/expired.
func (c *searchCache) get(key string) ([]media.Item, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.items[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.results, true
}

// set stores results for a key, evicting expired entries at capacity.
func (c *searchCache) set(key string, results []media.Item) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.items) >= c.maxItems {
		c.evictExpired()
	}
	if len(c.items) >= c.maxItems {
		// Still full: drop an arbitrary entry rather than grow unbounded.
		for k := range c.items {
			delete(c.items, k)
			break
		}
	}

	c.items[key] = cacheEntry{
		results:   results,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// clear removes all items from the cache.
func (c *searchCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]cacheEntry)
}

// evictExpired removes expired entries (must be called with lock held).
func (c *searchCache) evictExpired() {
	now := time.Now()
	for key, entry := range c.items {
		if now.After(entry.expiresAt) {
			delete(c.items, key)
		}
	}
}
