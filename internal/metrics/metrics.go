package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "staysboard_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "route", "status"})

	UpstreamRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "staysboard_upstream_requests_total",
		Help: "Requests issued to the Stays API by endpoint and status",
	}, []string{"endpoint", "status"})

	UpstreamRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "staysboard_upstream_request_duration_seconds",
		Help:    "Stays API request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})

	SearchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "staysboard_searches_total",
		Help: "Dashboard search outcomes",
	}, []string{"outcome"})

	BlocksCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "staysboard_blocks_created_total",
		Help: "Calendar blocks created through the dashboard",
	})

	BlockValidationFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "staysboard_block_validation_failures_total",
		Help: "Rejected block requests by reason",
	}, []string{"reason"})
)
