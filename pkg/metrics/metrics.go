// Package metrics exposes Prometheus instruments for the HTTP API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "backend",
			Name:      "http_requests_total",
			Help:      "HTTP requests by endpoint, method and status code.",
		},
		[]string{"endpoint", "method", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "backend",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by endpoint and method.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint", "method"},
	)

	httpErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "backend",
			Name:      "http_errors_total",
			Help:      "HTTP responses with status >= 400 by endpoint and class.",
		},
		[]string{"endpoint", "class"},
	)
)

func init() {
	registry.MustRegister(
		httpRequests,
		httpDuration,
		httpErrors,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// Registry returns the service registry for promhttp exposition.
func Registry() *prometheus.Registry {
	return registry
}

// RecordRequest records one completed HTTP request.
func RecordRequest(endpoint, method, status string) {
	httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// RecordDuration records the latency of one HTTP request in seconds.
func RecordDuration(endpoint, method string, seconds float64) {
	httpDuration.WithLabelValues(endpoint, method).Observe(seconds)
}

// RecordError records an error response. Class is "client" for 4xx and
// "server" for 5xx.
func RecordError(endpoint string, statusCode int) {
	class := "client"
	if statusCode >= 500 {
		class = "server"
	}
	httpErrors.WithLabelValues(endpoint, class).Inc()
}
