package services

import (
	"slices"
	"sync"

	"github.com/kubev2v/migration-sizer/internal/models"
	"github.com/kubev2v/migration-sizer/pkg/sizing"
)

type cacheKey struct {
	demand  sizing.ResourceDemand
	profile sizing.NodeProfile
	config  sizing.SizingConfig
	failed  int
}

// resultCache memoizes sizing results. The computation is a pure function of
// the key so entries never go stale; Invalidate only bounds growth. Results
// are copied in and out so callers never share the sweep slice.
type resultCache struct {
	mu      sync.RWMutex
	entries map[cacheKey]models.SizingResult
}

func newResultCache() *resultCache {
	return &resultCache{entries: make(map[cacheKey]models.SizingResult)}
}

func (c *resultCache) get(k cacheKey) (models.SizingResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.entries[k]
	if ok {
		r.Sweep = slices.Clone(r.Sweep)
	}
	return r, ok
}

func (c *resultCache) put(k cacheKey, r models.SizingResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r.Sweep = slices.Clone(r.Sweep)
	c.entries[k] = r
}

func (c *resultCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
}

func (c *resultCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
