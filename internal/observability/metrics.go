// Package observability provides Prometheus metrics and the structured
// logger for the dashboard service.
//
// Metrics are created against an explicit prometheus.Registerer so tests can
// use a private registry without colliding with the default one.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "healthsync"

// Metrics holds every collector the service exports.
type Metrics struct {
	// CacheHitsTotal counts reads served from the result cache.
	CacheHitsTotal prometheus.Counter

	// CacheMissesTotal counts reads that had to go to the warehouse.
	CacheMissesTotal prometheus.Counter

	// FetchFailuresTotal counts warehouse fetches that returned an error.
	FetchFailuresTotal prometheus.Counter

	// FetchDurationSeconds measures warehouse round-trips.
	// Labels: outcome (success, error)
	FetchDurationSeconds *prometheus.HistogramVec

	// CachedRows is the row count of the current cache entry, 0 when empty.
	CachedRows prometheus.Gauge

	// RequestsTotal counts HTTP requests.
	// Labels: route, status
	RequestsTotal *prometheus.CounterVec
}

// NewMetrics registers all collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		CacheHitsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Inventory reads served from the result cache.",
		}),
		CacheMissesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "cache",
			Name:      "misses_total",
			Help:      "Inventory reads that required a warehouse fetch.",
		}),
		FetchFailuresTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "warehouse",
			Name:      "fetch_failures_total",
			Help:      "Warehouse fetches that failed.",
		}),
		FetchDurationSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "warehouse",
			Name:      "fetch_duration_seconds",
			Help:      "Duration of warehouse fetches.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"outcome"}),
		CachedRows: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: "cache",
			Name:      "rows",
			Help:      "Rows held by the current cache entry.",
		}),
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "status"}),
	}
}
