package cache

import "github.com/guttosm/loadsim-service/internal/scene"

// Cache defines the interface for scene cache operations. Keys identify
// one batch within one simulation; values are its flattened render nodes.
type Cache interface {
	Get(key string) ([]scene.Node, bool)
	Set(key string, value []scene.Node)
	Invalidate(key string)
	Clear()
	Stop()
}

// Metrics provides cache performance metrics.
type Metrics struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
	Capacity  int
}

// CacheWithMetrics extends Cache with metrics reporting.
type CacheWithMetrics interface {
	Cache
	Metrics() Metrics
}
