// Package breaker wraps sony/gobreaker for calls whose failure must not fail
// the caller, such as post-commit budget recomputes.
package breaker

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"

	"github.com/iho/budgetledger/internal/infrastructure/metrics"
)

// Config tunes when the breaker opens and how long it stays open.
type Config struct {
	Name                string
	MaxRequests         uint32
	Interval            time.Duration
	Timeout             time.Duration
	ConsecutiveFailures uint32
}

// DefaultConfig opens after five consecutive failures and probes again after 30s.
func DefaultConfig(name string) Config {
	return Config{
		Name:                name,
		MaxRequests:         1,
		Interval:            time.Minute,
		Timeout:             30 * time.Second,
		ConsecutiveFailures: 5,
	}
}

// Breaker implements usecase.CircuitBreaker.
type Breaker struct {
	cb *gobreaker.CircuitBreaker
}

// New creates a breaker. m may be nil.
func New(cfg Config, m *metrics.Metrics, log zerolog.Logger) *Breaker {
	log = log.With().Str("component", "breaker").Str("breaker", cfg.Name).Logger()
	if m != nil {
		m.BreakerState.WithLabelValues(cfg.Name).Set(stateValue(gobreaker.StateClosed))
	}

	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.ConsecutiveFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
			if m != nil {
				m.BreakerState.WithLabelValues(name).Set(stateValue(to))
			}
		},
	}

	return &Breaker{cb: gobreaker.NewCircuitBreaker(settings)}
}

// Execute runs fn unless the breaker is open, in which case it returns
// gobreaker.ErrOpenState without calling fn.
func (b *Breaker) Execute(fn func() error) error {
	_, err := b.cb.Execute(func() (interface{}, error) {
		return nil, fn()
	})
	return err
}

// State returns the current state name.
func (b *Breaker) State() string {
	return b.cb.State().String()
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
