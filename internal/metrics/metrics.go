// Package metrics содержит prometheus-метрики сервиса
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// значения метки result для OrdersSubmitted
const (
	ResultAccepted   = "accepted"
	ResultEmptyItems = "empty_items"
	ResultDuplicate  = "duplicate_id"
	ResultInvalid    = "invalid"
)

var (
	OrdersSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_submitted_total",
			Help: "Total number of order submissions by result",
		},
		[]string{"result"},
	)

	OrdersStored = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "orders_stored",
			Help: "Current number of orders held in memory",
		},
	)

	OrdersResets = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_resets_total",
			Help: "Total number of order store resets",
		},
	)

	BoughtTogetherRequests = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bought_together_requests_total",
			Help: "Total number of bought-together queries",
		},
	)

	BoughtTogetherResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bought_together_results",
			Help:    "Number of products returned by a bought-together query",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 10},
		},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"method", "route"},
	)
)
