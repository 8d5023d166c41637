// Package metrics holds the prometheus collectors exposed at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sunburst_http_requests_total",
		Help: "HTTP requests by method, route and status class",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sunburst_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14), // 0.5ms to ~4s
	}, []string{"method", "route"})

	AggregationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sunburst_aggregation_duration_seconds",
		Help:    "Time spent in each pipeline stage",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14),
	}, []string{"stage"})

	AggregationGroups = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "sunburst_aggregation_groups",
		Help:    "Distinct value combinations produced per aggregation",
		Buckets: prometheus.ExponentialBuckets(1, 2, 14),
	})

	DatasetsLoaded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sunburst_datasets_loaded_total",
		Help: "Tables loaded by source",
	}, []string{"source"})

	DatasetRows = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "sunburst_dataset_rows",
		Help: "Row count of the most recently loaded table per source",
	}, []string{"source"})
)

// StatusClass collapses a status code into "2xx", "4xx", ...
func StatusClass(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	case code >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
