// Package telemetry counts transport requests per operation and
// outcome. Metrics are registered on the default Prometheus registry;
// long-running invocations can expose them via Handler.
package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkpress_requests_total",
		Help: "Transport requests by operation and outcome.",
	}, []string{"op", "outcome"})

	duration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "inkpress_request_duration_seconds",
		Help:    "Transport request latency by operation.",
		Buckets: prometheus.DefBuckets,
	}, []string{"op"})
)

// ObserveRequest records one completed transport call.
func ObserveRequest(op, outcome string, d time.Duration) {
	requests.WithLabelValues(op, outcome).Inc()
	duration.WithLabelValues(op).Observe(d.Seconds())
}

// Handler serves the default registry, for --metrics-addr runs.
func Handler() http.Handler {
	return promhttp.Handler()
}
