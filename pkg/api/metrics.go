package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

var (
	startupTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "conch_startup_total",
			Help: "Total number of service startups by outcome",
		},
		[]string{"status"}, // success or error
	)

	startupDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "conch_startup_duration_seconds",
			Help:    "Time from flag parsing to listener start, including hooks",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
		},
	)
)
