// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package metrics defines the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	StreamConnections = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "askup_stream_connections",
		Help: "Current number of active question stream subscribers",
	})
	SnapshotsDelivered = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "askup_snapshots_delivered_total",
		Help: "Total number of question snapshots pushed to subscribers",
	})
	QuestionsSubmitted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "askup_questions_submitted_total",
		Help: "Total number of questions submitted",
	})
	VotesToggled = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "askup_votes_toggled_total",
		Help: "Total number of vote toggle operations",
	})
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})
)

func init() {
	prometheus.MustRegister(
		StreamConnections,
		SnapshotsDelivered,
		QuestionsSubmitted,
		VotesToggled,
		HTTPRequestsTotal,
		HTTPRequestDuration,
	)
}
