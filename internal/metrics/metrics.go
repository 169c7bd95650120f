// Segue - Listening Transition Analytics and Next-Track Recommendation
// Copyright 2026 Segue Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/segue-fm/segue

// Package metrics provides Prometheus metrics collection and export.
//
// Metrics are exposed at the /metrics endpoint in Prometheus text format.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Recommendation metrics

	// RecommendationsTotal counts recommendations served, partitioned by
	// mode ("frequency" or "cold_start").
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "segue_recommendations_total",
			Help: "Total number of recommendations served",
		},
		[]string{"mode"},
	)

	// RecommendationDuration measures recommendation latency.
	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "segue_recommendation_duration_seconds",
			Help:    "Duration of recommendation selection in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
	)

	// Simulator metrics

	// SimulatorSteps counts simulation ticks run.
	SimulatorSteps = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "segue_simulator_steps_total",
			Help: "Total number of simulation steps run",
		},
	)

	// TransitionsRecorded counts transitions folded into the table.
	TransitionsRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "segue_transitions_recorded_total",
			Help: "Total number of song transitions recorded",
		},
	)

	// StatisticsResets counts reset-statistics operations.
	StatisticsResets = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "segue_statistics_resets_total",
			Help: "Total number of statistics resets",
		},
	)

	// API metrics

	// APIRequestsTotal counts API requests.
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "segue_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	// APIRequestDuration measures API request latency.
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "segue_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"method", "endpoint"},
	)
)

// RecordAPIRequest records one completed API request.
func RecordAPIRequest(method, endpoint string, status int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}
