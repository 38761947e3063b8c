package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "damda_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "damda_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	MutationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "damda_mutations_total",
			Help: "Total number of entity mutations by action and target type.",
		},
		[]string{"action", "target_type", "status"},
	)

	AuditEventsPublished = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "damda_audit_events_published_total",
			Help: "Total number of audit events handed to the sink.",
		},
	)

	AuditEventsDropped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "damda_audit_events_dropped_total",
			Help: "Total number of audit events the sink failed to deliver.",
		},
	)

	ListCacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "damda_list_cache_hits_total",
			Help: "Total number of list responses served from cache.",
		},
	)

	ListCacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "damda_list_cache_misses_total",
			Help: "Total number of list requests that missed the cache.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		MutationsTotal,
		AuditEventsPublished,
		AuditEventsDropped,
		ListCacheHits,
		ListCacheMisses,
	)
}
