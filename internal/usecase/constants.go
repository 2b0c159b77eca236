package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction
	// This prevents long-running transactions from blocking tables
	DefaultTransactionTimeout = 10 * time.Second

	// DefaultRecomputeTimeout bounds a post-commit budget re-scan.
	DefaultRecomputeTimeout = 5 * time.Second

	// DefaultMaxAccountsPerOwner is the account quota when none is configured.
	DefaultMaxAccountsPerOwner = 20

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// reconcileBatchSize is the page size used by sweeps over all budgets or accounts.
	reconcileBatchSize = 500
)
