package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ResponseTimeHistogram = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_time_seconds",
			Help:    "Histogram of response times",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	OrdersGrabbedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_grabbed_total",
			Help: "Number of successful order grabs",
		},
	)

	BalancesFrozenTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "balances_frozen_total",
			Help: "Number of grabs that moved a balance into the frozen state",
		},
	)

	TransactionsReviewedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transactions_reviewed_total",
			Help: "Recharge and withdraw requests reviewed by admins",
		},
		[]string{"type", "status"},
	)
)
