package cache

import (
	"sync"
	"time"

	"sage-portal/geo"
)

// LocationCache remembers recent geolocation answers so repeated detection
// passes from the same visitor do not hit the external providers again.
type LocationCache interface {
	Get(key string) (*geo.Location, bool)
	Set(key string, loc *geo.Location)
}

type locationEntry struct {
	Location  geo.Location
	ExpiresAt time.Time
}

// MemoryLocationCache is an in-process TTL cache.
type MemoryLocationCache struct {
	mu      sync.RWMutex
	entries map[string]locationEntry
	ttl     time.Duration
	now     func() time.Time
	hits    int
	misses  int
}

func NewMemoryLocationCache(ttl time.Duration) *MemoryLocationCache {
	return &MemoryLocationCache{
		entries: make(map[string]locationEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns a copy of the cached location if it has not expired.
func (c *MemoryLocationCache) Get(key string) (*geo.Location, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok || !c.now().Before(entry.ExpiresAt) {
		c.misses++
		return nil, false
	}
	c.hits++
	loc := entry.Location
	return &loc, true
}

// Set stores a copy of loc. A nil location or a non-positive TTL is ignored.
func (c *MemoryLocationCache) Set(key string, loc *geo.Location) {
	if loc == nil || c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = locationEntry{
		Location:  *loc,
		ExpiresAt: c.now().Add(c.ttl),
	}
}

// Purge drops expired entries and returns how many were removed.
func (c *MemoryLocationCache) Purge() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	now := c.now()
	for key, entry := range c.entries {
		if !now.Before(entry.ExpiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Stats returns statistics about the current cache
func (c *MemoryLocationCache) Stats() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return map[string]interface{}{
		"entries":     len(c.entries),
		"hits":        c.hits,
		"misses":      c.misses,
		"ttl_seconds": int(c.ttl.Seconds()),
	}
}
