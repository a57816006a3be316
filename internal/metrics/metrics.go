// Package metrics registers the Prometheus instruments exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total HTTP requests handled, by method, route and status code.",
	}, []string{"method", "route", "status"})

	HTTPRequestsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "http_requests_in_flight",
		Help: "HTTP requests currently being served.",
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	PropagationRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cost_propagation_runs_total",
		Help: "Cost propagation runs, by originating tier and outcome.",
	}, []string{"origin", "outcome"})

	PropagationUpdatedEntities = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cost_propagation_updated_entities_total",
		Help: "Entities persisted with a recomputed cost, by tier.",
	}, []string{"tier"})

	PropagationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "cost_propagation_duration_seconds",
		Help:    "Wall time of one full propagation cascade.",
		Buckets: prometheus.DefBuckets,
	})
)
