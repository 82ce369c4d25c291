// Package metrics Prometheus 指标
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ecohub_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ecohub_api_request_duration_seconds",
			Help:    "API request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ecohub_api_active_requests",
			Help: "Number of requests currently being served",
		},
	)

	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ecohub_cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ecohub_cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache"},
	)

	EntitiesCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ecohub_entities_created_total",
			Help: "Total number of directory entities created",
		},
		[]string{"entity_type"},
	)

	RatingsSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ecohub_ratings_submitted_total",
			Help: "Total number of ratings accepted",
		},
		[]string{"entity_type"},
	)

	StorageErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ecohub_storage_errors_total",
			Help: "Object storage failures by operation",
		},
		[]string{"operation"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

func RecordCacheHit(cache string) {
	CacheHits.WithLabelValues(cache).Inc()
}

func RecordCacheMiss(cache string) {
	CacheMisses.WithLabelValues(cache).Inc()
}

func RecordEntityCreated(entityType string) {
	EntitiesCreated.WithLabelValues(entityType).Inc()
}

func RecordRating(entityType string) {
	RatingsSubmitted.WithLabelValues(entityType).Inc()
}

func RecordStorageError(operation string) {
	StorageErrors.WithLabelValues(operation).Inc()
}
