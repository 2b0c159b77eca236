package breaker

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/budgetledger/internal/infrastructure/metrics"
)

func TestBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	m := metrics.NewWith(prometheus.NewRegistry())
	cfg := DefaultConfig("budget-recompute")
	cfg.ConsecutiveFailures = 2
	cfg.Timeout = time.Hour
	b := New(cfg, m, zerolog.Nop())

	failure := errors.New("store down")
	for i := 0; i < 2; i++ {
		assert.ErrorIs(t, b.Execute(func() error { return failure }), failure)
	}
	assert.Equal(t, "open", b.State())
	assert.Equal(t, float64(2), testutil.ToFloat64(m.BreakerState.WithLabelValues("budget-recompute")))

	called := false
	err := b.Execute(func() error { called = true; return nil })
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.False(t, called)
}

func TestBreaker_SuccessResetsFailureCount(t *testing.T) {
	cfg := DefaultConfig("test")
	cfg.ConsecutiveFailures = 2
	b := New(cfg, nil, zerolog.Nop())

	failure := errors.New("boom")
	_ = b.Execute(func() error { return failure })
	require.NoError(t, b.Execute(func() error { return nil }))
	_ = b.Execute(func() error { return failure })

	assert.Equal(t, "closed", b.State())
}
