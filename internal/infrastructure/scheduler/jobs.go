package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// BudgetExpirer deactivates budgets whose window has ended.
type BudgetExpirer interface {
	ExpireBudgets(ctx context.Context) (int, error)
}

// PendingReconciler drains queued budget recomputes.
type PendingReconciler interface {
	ReconcilePending(ctx context.Context, max int) (int, error)
}

// OutboxCleaner removes published outbox events.
type OutboxCleaner interface {
	DeletePublished(ctx context.Context, before time.Time) error
}

// ExpiryJob runs the budget-expiry sweep.
type ExpiryJob struct {
	Budgets BudgetExpirer
	Log     zerolog.Logger
}

func (j *ExpiryJob) Name() string { return "budget-expiry" }

func (j *ExpiryJob) Run(ctx context.Context) error {
	n, err := j.Budgets.ExpireBudgets(ctx)
	if n > 0 {
		j.Log.Info().Int("expired", n).Msg("budget expiry sweep")
	}
	return err
}

// ReconcileJob retries budget recomputes that failed after commit.
type ReconcileJob struct {
	Budgets PendingReconciler
	Batch   int
	Log     zerolog.Logger
}

func (j *ReconcileJob) Name() string { return "budget-reconcile" }

func (j *ReconcileJob) Run(ctx context.Context) error {
	n, err := j.Budgets.ReconcilePending(ctx, j.Batch)
	if n > 0 {
		j.Log.Info().Int("recomputed", n).Msg("pending budget recomputes reconciled")
	}
	return err
}

// OutboxCleanupJob deletes events published longer than Retention ago.
type OutboxCleanupJob struct {
	Outbox    OutboxCleaner
	Retention time.Duration
	Now       func() time.Time
}

func (j *OutboxCleanupJob) Name() string { return "outbox-cleanup" }

func (j *OutboxCleanupJob) Run(ctx context.Context) error {
	now := time.Now
	if j.Now != nil {
		now = j.Now
	}
	return j.Outbox.DeletePublished(ctx, now().UTC().Add(-j.Retention))
}

// LimiterCleaner forgets idle rate-limit buckets.
type LimiterCleaner interface {
	CleanupLimiters(maxIdle time.Duration) int
}

// RateLimitCleanupJob bounds the memory held by per-client limiters.
type RateLimitCleanupJob struct {
	Limiter LimiterCleaner
	MaxIdle time.Duration
}

func (j *RateLimitCleanupJob) Name() string { return "ratelimit-cleanup" }

func (j *RateLimitCleanupJob) Run(context.Context) error {
	j.Limiter.CleanupLimiters(j.MaxIdle)
	return nil
}
