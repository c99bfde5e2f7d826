package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "biztracker_http_requests_total",
			Help: "Total number of HTTP requests by method, path and status code",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "biztracker_http_request_duration_seconds",
			Help:    "HTTP request latency by method and path",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	SalesRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "biztracker_sales_recorded_total",
			Help: "Total number of sales recorded",
		},
	)

	RepaymentsRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "biztracker_debt_repayments_total",
			Help: "Total number of debt repayment events recorded",
		},
	)

	PaymentsAllocated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "biztracker_customer_payments_allocated_total",
			Help: "Total number of customer payments run through FIFO allocation",
		},
	)
)
