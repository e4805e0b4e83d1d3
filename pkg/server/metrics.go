package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "conch_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "code"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "conch_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "conch_http_requests_in_flight",
			Help: "Number of HTTP requests currently being served",
		},
	)

	serverUp = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "conch_server_up",
			Help: "Whether the listener is bound and serving (1) or not (0)",
		},
		[]string{"name", "version"},
	)
)
