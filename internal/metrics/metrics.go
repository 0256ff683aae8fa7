// Garderobe - Wardrobe Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/garderobe

// Package metrics provides Prometheus instrumentation for Garderobe:
// generation latency and outcomes, per-strategy results, store operations,
// and weather provider health. Collectors register on the default registry
// via promauto; the /metrics endpoint exposes them.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Generation metrics.

	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "garderobe_generation_duration_seconds",
			Help:    "End-to-end outfit generation latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"occasion", "outcome"}, // outcome: ok, fallback, unsatisfiable, error
	)

	StrategyOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "garderobe_strategy_outcomes_total",
			Help: "Per-strategy composition outcomes",
		},
		[]string{"strategy", "outcome"}, // outcome: won, lost, failed
	)

	FallbackTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "garderobe_fallback_outfits_total",
			Help: "Outfits produced by the guaranteed-minimal fallback",
		},
	)

	// HTTP metrics.

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "garderobe_api_request_duration_seconds",
			Help:    "API endpoint latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "status"},
	)

	ActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "garderobe_api_active_requests",
			Help: "Number of in-flight API requests",
		},
	)

	// Store metrics.

	StoreOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "garderobe_store_operations_total",
			Help: "Badger store operations by store and result",
		},
		[]string{"store", "operation", "result"}, // store: wardrobe, feedback
	)

	StoreGCRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "garderobe_store_gc_runs_total",
			Help: "Badger value-log GC runs by result",
		},
		[]string{"result"}, // reclaimed, noop, error
	)

	// Weather provider metrics.

	WeatherLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "garderobe_weather_lookups_total",
			Help: "Weather snapshot lookups by source",
		},
		[]string{"source"}, // cache, upstream, static, error
	)

	WeatherBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "garderobe_weather_breaker_open",
			Help: "1 when the weather circuit breaker is open",
		},
	)
)

// RecordGeneration records one generation request.
func RecordGeneration(occasion, outcome string, duration time.Duration) {
	GenerationDuration.WithLabelValues(occasion, outcome).Observe(duration.Seconds())
	if outcome == "fallback" {
		FallbackTotal.Inc()
	}
}

// RecordStrategy records one strategy's outcome within a generation.
func RecordStrategy(strategy, outcome string) {
	StrategyOutcomes.WithLabelValues(strategy, outcome).Inc()
}

// RecordAPIRequest records one completed HTTP request.
func RecordAPIRequest(method, endpoint string, status int, duration time.Duration) {
	APIRequestDuration.WithLabelValues(method, endpoint, strconv.Itoa(status)).Observe(duration.Seconds())
}

// RecordStoreOperation records one store operation.
func RecordStoreOperation(store, operation string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	StoreOperations.WithLabelValues(store, operation, result).Inc()
}

// TrackActiveRequest adjusts the in-flight request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		ActiveRequests.Inc()
	} else {
		ActiveRequests.Dec()
	}
}
