// Package metrics defines the Prometheus collectors for the gateway.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/unclebandit/recommend-gateway/internal/model"
)

var (
	// RecommendRequests counts /recommend_by_customer_id calls by outcome.
	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_recommend_requests_total",
			Help: "Recommend requests by outcome",
		},
		[]string{"outcome"},
	)

	// LookupDuration tracks record store lookup latency.
	LookupDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gateway_lookup_duration_seconds",
			Help:    "Customer product code lookup duration",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"result"},
	)

	// WorkerCallDuration tracks the downstream worker round trip.
	WorkerCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gateway_worker_call_duration_seconds",
			Help:    "Recommendation worker call duration",
			Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"outcome"},
	)
)

// RecordOutcome increments the request counter for outcome.
func RecordOutcome(outcome model.Outcome) {
	RecommendRequests.WithLabelValues(string(outcome)).Inc()
}

// ObserveLookup records a lookup that started at start.
func ObserveLookup(start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	LookupDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
}

// ObserveWorkerCall records a worker call that started at start.
func ObserveWorkerCall(start time.Time, outcome model.Outcome) {
	WorkerCallDuration.WithLabelValues(string(outcome)).Observe(time.Since(start).Seconds())
}
