package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pos_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pos_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	CheckoutsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pos_checkouts_total",
			Help: "Checkout attempts by result",
		},
		[]string{"result"},
	)

	RevenueTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pos_revenue_total",
			Help: "Sum of invoice totals",
		},
	)

	ItemsSoldTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pos_items_sold_total",
			Help: "Units sold per menu item",
		},
		[]string{"item"},
	)

	StockAdjustmentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pos_stock_adjustments_total",
			Help: "Manual stock adjustments by type",
		},
		[]string{"type"},
	)
)

// Checkout results
const (
	ResultSuccess  = "success"
	ResultRejected = "rejected"
	ResultError    = "error"
)

// EventsConsumedTotal counts events seen by the audit consumer
var EventsConsumedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "pos_events_consumed_total",
		Help: "Domain events consumed by type and result",
	},
	[]string{"event_type", "result"},
)
