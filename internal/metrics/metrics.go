// Package metrics provides Prometheus metrics collection for the load simulation service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks HTTP request duration by method, path, and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal tracks total HTTP requests by method, path, and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// DragResolutionsTotal tracks drag resolutions by outcome
	// ("resolved" or "fallback").
	DragResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "drag_resolutions_total",
			Help: "Total number of drag collision resolutions",
		},
		[]string{"status"},
	)

	// DragResolutionDepth tracks how many corrections each resolution needed.
	DragResolutionDepth = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "drag_resolution_depth",
			Help:    "Number of single-axis corrections per drag resolution",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 13, 21, 32},
		},
	)

	// DragResolutionDuration tracks drag resolution duration.
	DragResolutionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "drag_resolution_duration_seconds",
			Help:    "Drag collision resolution duration in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1},
		},
	)

	// CacheOperationsTotal tracks cache operations.
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Total number of cache operations",
		},
		[]string{"operation", "result"},
	)

	// CacheSize tracks current cache size.
	CacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Current cache size",
		},
	)

	// CacheCapacity tracks cache capacity.
	CacheCapacity = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_capacity",
			Help: "Cache capacity",
		},
	)
)

// PrometheusMiddleware returns a Gin middleware that collects HTTP metrics.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration)
		HTTPRequestTotal.WithLabelValues(method, path, statusCode).Inc()
	}
}

// RecordDragResolution records metrics for one drag resolution.
func RecordDragResolution(duration time.Duration, depth int, resolved bool) {
	status := "resolved"
	if !resolved {
		status = "fallback"
	}
	DragResolutionsTotal.WithLabelValues(status).Inc()
	DragResolutionDepth.Observe(float64(depth))
	DragResolutionDuration.Observe(duration.Seconds())
}

// RecordCacheOperation records metrics for a cache operation.
func RecordCacheOperation(operation, result string) {
	CacheOperationsTotal.WithLabelValues(operation, result).Inc()
}

// UpdateCacheMetrics updates cache size and capacity metrics.
func UpdateCacheMetrics(size, capacity int) {
	CacheSize.Set(float64(size))
	CacheCapacity.Set(float64(capacity))
}
