package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/storefront-backend/internal/models"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func newTestCache(ttl time.Duration) (*ProductCache, *fakeClock) {
	clock := &fakeClock{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	c := NewProductCache(ttl)
	c.now = clock.Now
	return c, clock
}

func sampleProducts() []models.Product {
	return []models.Product{
		{ID: "p2", Name: "Gadget", Price: 20},
		{ID: "p1", Name: "Widget", Price: 10},
	}
}

func TestGetOnEmptyCacheMisses(t *testing.T) {
	c, _ := newTestCache(time.Minute)

	products, ok := c.Get()
	assert.False(t, ok)
	assert.Nil(t, products)
}

func TestPopulateThenGetWithinWindow(t *testing.T) {
	c, clock := newTestCache(time.Minute)

	require.True(t, c.Populate(c.Version(), sampleProducts()))
	clock.Advance(59 * time.Second)

	first, ok := c.Get()
	require.True(t, ok)
	second, ok := c.Get()
	require.True(t, ok)
	assert.Equal(t, sampleProducts(), first)
	assert.Equal(t, first, second)
}

func TestEntryExpiresAtWindow(t *testing.T) {
	c, clock := newTestCache(time.Minute)

	c.Populate(c.Version(), sampleProducts())
	clock.Advance(time.Minute)

	_, ok := c.Get()
	assert.False(t, ok)
}

func TestPopulateResetsAge(t *testing.T) {
	c, clock := newTestCache(time.Minute)

	c.Populate(c.Version(), sampleProducts())
	clock.Advance(50 * time.Second)
	c.Populate(c.Version(), sampleProducts()[:1])
	clock.Advance(50 * time.Second)

	products, ok := c.Get()
	require.True(t, ok)
	assert.Len(t, products, 1)
}

func TestInvalidateClearsRegardlessOfAge(t *testing.T) {
	c, _ := newTestCache(time.Hour)

	c.Populate(c.Version(), sampleProducts())
	c.Invalidate()

	_, ok := c.Get()
	assert.False(t, ok)
}

func TestInvalidateIsIdempotent(t *testing.T) {
	once, _ := newTestCache(time.Minute)
	twice, _ := newTestCache(time.Minute)
	once.Populate(once.Version(), sampleProducts())
	twice.Populate(twice.Version(), sampleProducts())

	once.Invalidate()
	twice.Invalidate()
	twice.Invalidate()

	_, okOnce := once.Get()
	_, okTwice := twice.Get()
	assert.Equal(t, okOnce, okTwice)

	// Both accept a populate tagged with their current version.
	assert.True(t, once.Populate(once.Version(), sampleProducts()))
	assert.True(t, twice.Populate(twice.Version(), sampleProducts()))
}

func TestStalePopulateIsDiscarded(t *testing.T) {
	c, _ := newTestCache(time.Minute)

	version := c.Version()
	// A write lands while the read is still talking to the store.
	c.Invalidate()

	assert.False(t, c.Populate(version, sampleProducts()))
	_, ok := c.Get()
	assert.False(t, ok)
}

func TestGetReturnsDefensiveCopy(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	input := sampleProducts()
	c.Populate(c.Version(), input)
	input[0].Name = "changed by caller"

	products, ok := c.Get()
	require.True(t, ok)
	products[1].Name = "changed by reader"

	again, ok := c.Get()
	require.True(t, ok)
	assert.Equal(t, "Gadget", again[0].Name)
	assert.Equal(t, "Widget", again[1].Name)
}

func TestConcurrentAccess(t *testing.T) {
	c := NewProductCache(time.Minute)
	var wg sync.WaitGroup

	for i := 0; i < 16; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			c.Populate(c.Version(), sampleProducts())
		}()
		go func() {
			defer wg.Done()
			c.Get()
		}()
		go func() {
			defer wg.Done()
			c.Invalidate()
		}()
	}
	wg.Wait()

	c.Invalidate()
	_, ok := c.Get()
	assert.False(t, ok)
}
