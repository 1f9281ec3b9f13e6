package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fulfillment_http_requests_total",
		Help: "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "code"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fulfillment_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	ShippingTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fulfillment_shipping_status_changes_total",
		Help: "Shipping status changes by target status.",
	}, []string{"status"})

	ReturnsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fulfillment_returns_processed_total",
		Help: "Return requests processed by admins, by resulting status.",
	}, []string{"status"})

	EventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fulfillment_events_published_total",
		Help: "Events published to RabbitMQ by exchange and result.",
	}, []string{"exchange", "result"})

	EventsConsumed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fulfillment_events_consumed_total",
		Help: "Events consumed from RabbitMQ by queue and result.",
	}, []string{"queue", "result"})
)

// Handler expone el registro por defecto para /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
