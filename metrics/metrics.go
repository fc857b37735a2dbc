package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code", "service"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "service"},
	)

	// Aggregation pipeline metrics
	AccountFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "account_fetches_total",
			Help: "Total number of per-account provider fetches",
		},
		[]string{"status"},
	)

	RecordsAggregated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "records_aggregated_total",
			Help: "Total number of canonical records merged by the aggregator",
		},
	)

	SearchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trend_searches_total",
			Help: "Total number of trend searches run end to end",
		},
		[]string{"sort_by"},
	)

	// Cache metrics
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of response cache hits",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of response cache misses",
		},
	)

	// Business metrics
	TokensSpent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tokens_spent_total",
			Help: "Total number of user tokens deducted",
		},
		[]string{"action"},
	)

	RadarScansTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "radar_scans_total",
			Help: "Total number of radar keyword scans",
		},
		[]string{"status"},
	)

	// Application health metrics
	ApplicationInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "application_info",
			Help: "Application information",
		},
		[]string{"service", "version", "environment"},
	)
)

// Initialize metrics with default values
func Init(serviceName, version, environment string) {
	ApplicationInfo.WithLabelValues(serviceName, version, environment).Set(1)
}
