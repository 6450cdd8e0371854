package cache

import (
	"sync"
	"time"

	"github.com/javajoker/storefront-backend/internal/metrics"
	"github.com/javajoker/storefront-backend/internal/models"
)

type entry struct {
	products    []models.Product
	populatedAt time.Time
}

// ProductCache holds a single snapshot of the full product list for at most ttl.
//
// Every Invalidate bumps a version counter. Readers take Version before querying the
// store and hand it back to Populate, so a slow read that started before a write can
// never resurrect a snapshot that the write already invalidated.
type ProductCache struct {
	mu      sync.RWMutex
	entry   *entry
	version uint64
	ttl     time.Duration
	now     func() time.Time
}

func NewProductCache(ttl time.Duration) *ProductCache {
	return &ProductCache{
		ttl: ttl,
		now: time.Now,
	}
}

// Get returns a copy of the cached list if it is younger than the freshness window.
func (c *ProductCache) Get() ([]models.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.entry == nil || c.now().Sub(c.entry.populatedAt) >= c.ttl {
		metrics.ProductCacheMisses.Inc()
		return nil, false
	}
	metrics.ProductCacheHits.Inc()
	return cloneProducts(c.entry.products), true
}

// Version returns the current invalidation generation.
func (c *ProductCache) Version() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}

// Populate stores products as the new snapshot if no Invalidate happened since version
// was read. It reports whether the snapshot was accepted.
func (c *ProductCache) Populate(version uint64, products []models.Product) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if version != c.version {
		metrics.ProductCacheStalePopulates.Inc()
		return false
	}
	c.entry = &entry{
		products:    cloneProducts(products),
		populatedAt: c.now(),
	}
	return true
}

// Invalidate drops the snapshot regardless of its age.
func (c *ProductCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entry = nil
	c.version++
	metrics.ProductCacheInvalidations.Inc()
}

func cloneProducts(products []models.Product) []models.Product {
	out := make([]models.Product, len(products))
	for i, p := range products {
		out[i] = p.Clone()
	}
	return out
}
