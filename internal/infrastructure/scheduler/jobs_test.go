package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type budgetsStub struct {
	expired   int
	reconcile int
	batch     int
	err       error
}

func (b *budgetsStub) ExpireBudgets(context.Context) (int, error) { return b.expired, b.err }

func (b *budgetsStub) ReconcilePending(_ context.Context, max int) (int, error) {
	b.batch = max
	return b.reconcile, b.err
}

type limiterStub struct{ maxIdle time.Duration }

func (l *limiterStub) CleanupLimiters(maxIdle time.Duration) int {
	l.maxIdle = maxIdle
	return 0
}

type outboxStub struct{ before time.Time }

func (o *outboxStub) DeletePublished(_ context.Context, before time.Time) error {
	o.before = before
	return nil
}

func TestJobs(t *testing.T) {
	failure := errors.New("boom")

	t.Run("expiry propagates errors", func(t *testing.T) {
		job := &ExpiryJob{Budgets: &budgetsStub{expired: 1, err: failure}, Log: zerolog.Nop()}
		assert.Equal(t, "budget-expiry", job.Name())
		assert.ErrorIs(t, job.Run(context.Background()), failure)
	})

	t.Run("reconcile passes the batch size", func(t *testing.T) {
		budgets := &budgetsStub{reconcile: 3}
		job := &ReconcileJob{Budgets: budgets, Batch: 50, Log: zerolog.Nop()}
		assert.NoError(t, job.Run(context.Background()))
		assert.Equal(t, 50, budgets.batch)
	})

	t.Run("outbox cleanup keeps the retention window", func(t *testing.T) {
		now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
		outbox := &outboxStub{}
		job := &OutboxCleanupJob{Outbox: outbox, Retention: 48 * time.Hour, Now: func() time.Time { return now }}
		assert.NoError(t, job.Run(context.Background()))
		assert.Equal(t, now.Add(-48*time.Hour), outbox.before)
	})

	t.Run("rate limit cleanup passes the idle window", func(t *testing.T) {
		limiter := &limiterStub{}
		job := &RateLimitCleanupJob{Limiter: limiter, MaxIdle: 10 * time.Minute}
		assert.NoError(t, job.Run(context.Background()))
		assert.Equal(t, 10*time.Minute, limiter.maxIdle)
	})
}
