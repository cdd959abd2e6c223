// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rental_admin_http_requests_total",
			Help: "HTTP requests served, by method, route and status code",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rental_admin_http_request_duration_seconds",
			Help:    "HTTP request latency, by method and route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	ChartQueries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rental_admin_chart_queries_total",
			Help: "Dashboard aggregations executed, by chart and outcome",
		},
		[]string{"chart", "outcome"},
	)

	StatusUpdates = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rental_admin_status_updates_total",
			Help: "Successful active flag updates, by user type and new value",
		},
		[]string{"type", "active"},
	)

	EventsPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rental_admin_status_events_total",
			Help: "Status change events handed to the broker, by outcome",
		},
		[]string{"outcome"},
	)
)

// Register adds every collector to reg.  It panics on duplicate registration,
// so call it once at startup.
func Register(reg prometheus.Registerer) {
	reg.MustRegister(HTTPRequests, HTTPDuration, ChartQueries, StatusUpdates, EventsPublished)
}

// Outcome maps an error to the "ok"/"error" label value.
func Outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
