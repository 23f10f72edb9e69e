package embedding

import (
	"sync"
	"time"
)

// cacheEntry represents a memoized vector.
type cacheEntry struct {
	expiry time.Time
	vector []float64
}

// vectorCache provides thread-safe in-process memoization of embeddings.
type vectorCache struct {
	entries map[string]cacheEntry
	stopCh  chan struct{}
	ttl     time.Duration
	mu      sync.RWMutex
	once    sync.Once
}

// defaultCacheTTL applies when the configured TTL is not positive.
const defaultCacheTTL = time.Hour

// newVectorCache creates a new cache with the specified TTL.
func newVectorCache(ttl time.Duration) *vectorCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}

	cache := &vectorCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		stopCh:  make(chan struct{}),
	}

	go cache.cleanup()

	return cache
}

// get returns a copy of the vector for key if it exists and hasn't expired.
func (c *vectorCache) get(key string) ([]float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.entries[key]
	if !exists || time.Now().After(entry.expiry) {
		return nil, false
	}

	return append([]float64(nil), entry.vector...), true
}

// set stores a copy of vector under key.
func (c *vectorCache) set(key string, vector []float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{
		vector: append([]float64(nil), vector...),
		expiry: time.Now().Add(c.ttl),
	}
}

// cleanup periodically removes expired entries.
func (c *vectorCache) cleanup() {
	interval := c.ttl
	if interval <= 0 {
		interval = defaultCacheTTL
	}
	if interval > 5*time.Minute {
		interval = 5 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.mu.Lock()
			now := time.Now()
			for key, entry := range c.entries {
				if now.After(entry.expiry) {
					delete(c.entries, key)
				}
			}
			c.mu.Unlock()
		}
	}
}

// size returns the number of entries in the cache.
func (c *vectorCache) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// close stops the cleanup goroutine.
func (c *vectorCache) close() {
	c.once.Do(func() { close(c.stopCh) })
}
