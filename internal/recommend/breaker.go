package recommend

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/sebastiantruijens/movierec/internal/config"
	"github.com/sebastiantruijens/movierec/internal/logging"
	"github.com/sebastiantruijens/movierec/internal/metrics"
)

// newBreaker builds the circuit breaker guarding the backend. It opens once
// the failure ratio reaches BreakerFailureRatio over at least
// BreakerMinRequests calls and probes again after BreakerOpenTimeout.
func newBreaker(cfg config.APIConfig) *gobreaker.CircuitBreaker[*rawResponse] {
	metrics.BreakerState.Set(stateToFloat(gobreaker.StateClosed))

	return gobreaker.NewCircuitBreaker[*rawResponse](gobreaker.Settings{
		Name:        "recommend-backend",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     cfg.BreakerOpenTimeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.BreakerMinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= cfg.BreakerFailureRatio
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			log := logging.Logger()
			log.Info().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state change")
			metrics.BreakerState.Set(stateToFloat(to))
		},

		// Cancelled calls do not count against the backend.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
