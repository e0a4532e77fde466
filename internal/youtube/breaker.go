package youtube

import (
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"github.com/harshprakash01/music-share-backend/internal/metrics"
)

const (
	breakerFailureThreshold = 5
	breakerOpenDuration     = 30 * time.Second
)

// newBreaker builds the circuit breaker both collaborator clients use. After
// breakerFailureThreshold consecutive failures the breaker opens and calls
// fail fast for breakerOpenDuration instead of tying up play commands.
func newBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    name,
		Timeout: breakerOpenDuration,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerFailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("Circuit breaker state change", "component", name, "from", from.String(), "to", to.String())
			metrics.CircuitBreakerStateChanges.WithLabelValues(name, to.String()).Inc()
		},
	})
}
