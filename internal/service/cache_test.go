package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/guttosm/loadsim-service/internal/geometry"
	"github.com/guttosm/loadsim-service/internal/scene"
	"github.com/guttosm/loadsim-service/internal/service/cache"
)

// sceneNodes builds a minimal flattened scene for cache tests.
func sceneNodes(itemID string) []scene.Node {
	return []scene.Node{
		{
			ItemID: itemID,
			Kind:   scene.KindBox,
			Dims:   geometry.Vec3{X: 100, Y: 100, Z: 100},
		},
	}
}

func TestTTLCache_Get(t *testing.T) {
	tests := []struct {
		name          string
		setupCache    func() *ttlCache
		key           string
		expectedValue []scene.Node
		expectedFound bool
	}{
		{
			name: "returns value when exists and not expired",
			setupCache: func() *ttlCache {
				c := newTTLCache(10, time.Minute)
				c.Set("sim-1/1", sceneNodes("box-1"))
				return c
			},
			key:           "sim-1/1",
			expectedValue: sceneNodes("box-1"),
			expectedFound: true,
		},
		{
			name: "returns false when key not found",
			setupCache: func() *ttlCache {
				return newTTLCache(10, time.Minute)
			},
			key:           "sim-missing/9",
			expectedFound: false,
		},
		{
			name: "returns false when expired",
			setupCache: func() *ttlCache {
				c := newTTLCache(10, 50*time.Millisecond)
				c.Set("sim-1/1", sceneNodes("box-1"))
				time.Sleep(100 * time.Millisecond)
				return c
			},
			key:           "sim-1/1",
			expectedFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache := tt.setupCache()
			value, found := cache.Get(tt.key)

			assert.Equal(t, tt.expectedFound, found)
			if tt.expectedFound {
				assert.Equal(t, tt.expectedValue, value)
			}
		})
	}
}

func TestTTLCache_Set(t *testing.T) {
	t.Run("evicts LRU when at capacity", func(t *testing.T) {
		c := newTTLCache(2, time.Minute)
		defer c.Stop()

		c.Set("sim/1", sceneNodes("box-1"))
		c.Set("sim/2", sceneNodes("box-2"))
		c.Set("sim/3", sceneNodes("box-3"))

		_, ok1 := c.Get("sim/1")
		_, ok2 := c.Get("sim/2")
		_, ok3 := c.Get("sim/3")
		assert.False(t, ok1, "first entry evicted")
		assert.True(t, ok2)
		assert.True(t, ok3)
	})

	t.Run("updates existing entry", func(t *testing.T) {
		c := newTTLCache(10, time.Minute)
		defer c.Stop()

		c.Set("sim/1", sceneNodes("box-1"))
		c.Set("sim/1", sceneNodes("box-1-moved"))

		value, ok := c.Get("sim/1")
		assert.True(t, ok)
		assert.Equal(t, "box-1-moved", value[0].ItemID)
	})
}

func TestTTLCache_Stop(t *testing.T) {
	cache := newTTLCache(10, time.Minute)
	cache.Set("sim/1", sceneNodes("box-1"))

	// Stop should not panic
	assert.NotPanics(t, func() {
		cache.Stop()
	})
}

func TestTTLCache_Metrics(t *testing.T) {
	cache := newTTLCache(10, time.Minute)

	// Perform operations
	cache.Set("sim/1", sceneNodes("box-1"))
	cache.Get("sim/1") // hit
	cache.Get("sim/2") // miss
	cache.Set("sim/2", sceneNodes("box-2"))
	cache.Set("sim/3", sceneNodes("box-3"))

	metrics := cache.Metrics()
	assert.Greater(t, metrics.Hits, int64(0))
	assert.Greater(t, metrics.Misses, int64(0))
	assert.Equal(t, 3, metrics.Size)
	assert.Equal(t, 10, metrics.Capacity)
}

func TestTTLCache_ImplementsInterface(t *testing.T) {
	var _ cache.Cache = (*ttlCache)(nil)
	var _ cache.CacheWithMetrics = (*ttlCache)(nil)
}

func TestTTLCache_Concurrency(t *testing.T) {
	cache := newTTLCache(100, time.Minute)
	defer cache.Stop()

	// Test concurrent access
	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func(worker int) {
			for j := 0; j < 10; j++ {
				key := fmt.Sprintf("sim-%d/%d", worker, j)
				cache.Set(key, sceneNodes(key))
				cache.Get(key)
			}
			done <- true
		}(i)
	}

	// Wait for all goroutines
	for i := 0; i < 10; i++ {
		<-done
	}

	metrics := cache.Metrics()
	assert.Greater(t, metrics.Size, 0)
}

func TestTTLCache_Eviction(t *testing.T) {
	cache := newTTLCache(3, time.Minute)
	defer cache.Stop()

	// Fill cache to capacity
	cache.Set("sim/1", sceneNodes("box-1"))
	cache.Set("sim/2", sceneNodes("box-2"))
	cache.Set("sim/3", sceneNodes("box-3"))

	// Access 2 and 3 to make 1 the LRU
	cache.Get("sim/2")
	cache.Get("sim/3")

	// Add 4, should evict 1
	cache.Set("sim/4", sceneNodes("box-4"))

	_, ok1 := cache.Get("sim/1")
	_, ok2 := cache.Get("sim/2")
	_, ok3 := cache.Get("sim/3")
	_, ok4 := cache.Get("sim/4")

	assert.False(t, ok1, "entry 1 should be evicted")
	assert.True(t, ok2)
	assert.True(t, ok3)
	assert.True(t, ok4)

	metrics := cache.Metrics()
	assert.Equal(t, int64(1), metrics.Evictions)
}

func TestTTLCache_Cleanup(t *testing.T) {
	cache := newTTLCache(10, 50*time.Millisecond)
	defer cache.Stop()

	// Add entries
	cache.Set("sim/1", sceneNodes("box-1"))
	cache.Set("sim/2", sceneNodes("box-2"))

	// Wait for expiration (must be > TTL + cachedTime update interval of 100ms)
	time.Sleep(200 * time.Millisecond)

	// Manually trigger cleanup
	cache.cleanup()

	// Entries should be removed
	metrics := cache.Metrics()
	assert.Equal(t, 0, metrics.Size)
}

func TestTTLCache_RemoveTail(t *testing.T) {
	cache := newTTLCache(2, time.Minute)
	defer cache.Stop()

	cache.Set("sim/1", sceneNodes("box-1"))
	cache.Set("sim/2", sceneNodes("box-2"))

	// Force eviction by adding third item
	cache.Set("sim/3", sceneNodes("box-3"))

	// First item should be evicted (LRU)
	_, ok := cache.Get("sim/1")
	assert.False(t, ok)
}

func TestTTLCache_MoveToFront(t *testing.T) {
	cache := newTTLCache(3, time.Minute)
	defer cache.Stop()

	cache.Set("sim/1", sceneNodes("box-1"))
	cache.Set("sim/2", sceneNodes("box-2"))
	cache.Set("sim/3", sceneNodes("box-3"))

	// Access 1 to move it to front (making 2 the LRU)
	cache.Get("sim/1")

	// Add 4, should evict 2 (LRU) since capacity is 3
	cache.Set("sim/4", sceneNodes("box-4"))

	_, ok1 := cache.Get("sim/1")
	_, ok2 := cache.Get("sim/2")
	_, ok3 := cache.Get("sim/3")
	_, ok4 := cache.Get("sim/4")

	assert.True(t, ok1, "entry 1 should still exist (was accessed)")
	assert.False(t, ok2, "entry 2 should be evicted (was LRU)")
	assert.True(t, ok3, "entry 3 should still exist")
	assert.True(t, ok4, "entry 4 should exist")
}

func TestTTLCache_ExpiredEntryRemoval(t *testing.T) {
	cache := newTTLCache(10, 50*time.Millisecond)
	defer cache.Stop()

	cache.Set("sim/1", sceneNodes("box-1"))

	// Wait for expiration
	time.Sleep(100 * time.Millisecond)

	// Get should return false and remove expired entry
	value, found := cache.Get("sim/1")
	assert.False(t, found)
	assert.Nil(t, value)

	metrics := cache.Metrics()
	assert.Equal(t, 0, metrics.Size)
}

func TestTTLCache_Invalidate(t *testing.T) {
	cache := newTTLCache(10, time.Minute)
	defer cache.Stop()

	cache.Set("sim/1", sceneNodes("box-1"))
	cache.Set("sim/2", sceneNodes("box-2"))

	cache.Invalidate("sim/1")

	_, ok1 := cache.Get("sim/1")
	_, ok2 := cache.Get("sim/2")
	assert.False(t, ok1, "invalidated entry should be gone")
	assert.True(t, ok2)
}

func TestTTLCache_UpdateExistingEntry(t *testing.T) {
	cache := newTTLCache(10, time.Minute)
	defer cache.Stop()

	cache.Set("sim/1", sceneNodes("box-1"))
	value1, _ := cache.Get("sim/1")
	assert.Equal(t, "box-1", value1[0].ItemID)

	// Update same key
	cache.Set("sim/1", sceneNodes("box-1-v2"))
	value2, found := cache.Get("sim/1")

	assert.True(t, found)
	assert.Equal(t, "box-1-v2", value2[0].ItemID)

	metrics := cache.Metrics()
	assert.Equal(t, 1, metrics.Size, "should still have only one entry")
}
