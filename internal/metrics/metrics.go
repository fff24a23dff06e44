package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeFulfilled = "fulfilled"
	OutcomeRejected  = "rejected"
	OutcomeError     = "error"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pizza_http_requests_total",
			Help: "Total number of HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pizza_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	OrdersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pizza_orders_total",
			Help: "Total number of orders by factory outcome",
		},
		[]string{"outcome"},
	)

	PizzasSold = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pizza_items_sold_total",
			Help: "Total number of order items accepted by the factory",
		},
	)

	Revenue = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pizza_revenue_total",
			Help: "Sum of item prices of orders accepted by the factory",
		},
	)

	FactoryLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pizza_factory_request_duration_seconds",
			Help:    "Duration of order submissions to the factory in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pizza_auth_attempts_total",
			Help: "Login and registration attempts by result",
		},
		[]string{"result"},
	)

	SessionsPurged = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pizza_sessions_purged_last",
			Help: "Number of expired sessions removed by the last purge",
		},
	)
)
