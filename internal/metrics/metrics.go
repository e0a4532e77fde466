// Package metrics defines the Prometheus collectors shared across the
// service. All collectors are registered on the default registry via
// promauto at package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Play command metrics
var (
	// PlaysTotal tracks play commands by outcome
	PlaysTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plays_total",
			Help: "Total play commands by outcome",
		},
		[]string{"status"},
	)

	// ResolveDuration tracks track resolution latency in seconds
	ResolveDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "track_resolve_duration_seconds",
			Help:    "Track resolution duration in seconds",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30},
		},
	)

	// UserExistsChecksTotal tracks user existence checks by result
	UserExistsChecksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "user_exists_checks_total",
			Help: "Total user existence checks by result",
		},
		[]string{"result"},
	)
)

// Hub metrics
var (
	// HubConnectedClients tracks the number of connected WebSocket subscribers
	HubConnectedClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hub_connected_clients",
			Help: "Currently connected WebSocket subscribers",
		},
	)

	// HubSlowClientsEvicted tracks subscribers evicted due to a full send buffer
	HubSlowClientsEvicted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hub_slow_clients_evicted_total",
			Help: "Total subscribers evicted because their send buffer was full",
		},
	)

	// HubMessageSendDuration tracks WebSocket message send latency in seconds
	HubMessageSendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hub_message_send_duration_seconds",
			Help:    "WebSocket message send duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
	)

	// BroadcastsTotal tracks accepted tracks fanned out to subscribers
	BroadcastsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "broadcasts_total",
			Help: "Total accepted tracks fanned out to subscribers",
		},
	)
)

// External collaborator metrics
var (
	// CircuitBreakerStateChanges tracks circuit breaker state transitions
	CircuitBreakerStateChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_changes_total",
			Help: "Circuit breaker state transitions by component and new state",
		},
		[]string{"component", "state"},
	)
)
