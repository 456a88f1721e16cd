// Package state provides thread-safe caching of completed isochrone sweeps.
package state

import (
	"sync"

	"github.com/anis00/mawaquit/internal/isochrone"
	"github.com/anis00/mawaquit/internal/praytimes"
)

// SweepKey identifies one sweep selection. Two selections that agree on
// every field produce the same geometry, so their results are
// interchangeable. The country code stands in for both the bounding box
// and the fixed UTC offset, which the gazetteer derives from it.
type SweepKey struct {
	Date    string // civil date, "2006-01-02"
	Country string // gazetteer country code
	Prayer  praytimes.Event
	Method  praytimes.MethodID
	Bands   bool
}

// SweepResult holds the output of one completed sweep. Exactly one of
// Curves and Bands is populated, matching the key's Bands flag.
type SweepResult struct {
	Curves []isochrone.Curve
	Bands  []isochrone.Band
}

// Cache is a bounded sweep-result cache with thread-safe access. Sweeps
// complete on background goroutines while the UI loop reads on its own,
// so both sides go through the lock. When full, the oldest entry is
// evicted first.
type Cache struct {
	mu      sync.RWMutex
	entries map[SweepKey]SweepResult
	order   []SweepKey // insertion order, oldest first
	max     int
}

// NewCache creates a cache holding at most max results.
func NewCache(max int) *Cache {
	if max <= 0 {
		max = 32
	}
	return &Cache{
		entries: make(map[SweepKey]SweepResult, max),
		max:     max,
	}
}

// Get returns the cached result for key, if present. The returned slices
// are copies; the caller may append to them without affecting the cache.
func (c *Cache) Get(key SweepKey) (SweepResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	res, ok := c.entries[key]
	if !ok {
		return SweepResult{}, false
	}

	out := SweepResult{}
	if res.Curves != nil {
		out.Curves = make([]isochrone.Curve, len(res.Curves))
		copy(out.Curves, res.Curves)
	}
	if res.Bands != nil {
		out.Bands = make([]isochrone.Band, len(res.Bands))
		copy(out.Bands, res.Bands)
	}
	return out, true
}

// Put stores a result, evicting the oldest entry when the cache is full.
// Storing an existing key overwrites it without affecting eviction order.
func (c *Cache) Put(key SweepKey, res SweepResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists {
		c.order = append(c.order, key)
		if len(c.order) > c.max {
			oldest := c.order[0]
			c.order = c.order[1:]
			delete(c.entries, oldest)
		}
	}
	c.entries[key] = res
}

// Len returns the number of cached results.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
