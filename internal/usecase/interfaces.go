package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/budgetledger/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, tx Transaction, account *domain.Account) error
	GetByID(ctx context.Context, ownerID, id string) (*domain.Account, error)
	GetByIDsForUpdate(ctx context.Context, tx Transaction, ownerID string, ids []string) ([]*domain.Account, error)
	// LockOwner serializes account creation per owner so the quota check holds.
	LockOwner(ctx context.Context, tx Transaction, ownerID string) error
	CountByOwner(ctx context.Context, tx Transaction, ownerID string) (int, error)
	// AdjustBalance applies delta with an atomic increment and returns the new balance.
	AdjustBalance(ctx context.Context, tx Transaction, id string, delta decimal.Decimal, updatedAt time.Time) (decimal.Decimal, error)
	Delete(ctx context.Context, tx Transaction, id string) error
	ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Account, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Account, error)
}

// MovementRepository defines data access for movements.
type MovementRepository interface {
	Create(ctx context.Context, tx Transaction, movement *domain.Movement) error
	GetByID(ctx context.Context, ownerID, id string) (*domain.Movement, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, ownerID, id string) (*domain.Movement, error)
	// GetTransferLegs returns every movement of a transfer group.
	GetTransferLegs(ctx context.Context, tx Transaction, transferID string) ([]*domain.Movement, error)
	ListByAccount(ctx context.Context, tx Transaction, accountID string) ([]*domain.Movement, error)
	UpdateDetails(ctx context.Context, tx Transaction, id, categoryID, description string) error
	SetRectifyingID(ctx context.Context, tx Transaction, id string, rectifyingID *string) error
	Delete(ctx context.Context, tx Transaction, id string) error
	List(ctx context.Context, filter domain.MovementFilter) ([]*domain.Movement, error)
	// SumBudgetSpend sums expense movements of owner/category in [from, to] that
	// are neither rectified nor rectifications.
	SumBudgetSpend(ctx context.Context, ownerID, categoryID string, from, to time.Time) (decimal.Decimal, error)
	// SumSigned returns the signed sum of all movements posted to an account.
	SumSigned(ctx context.Context, accountID string) (decimal.Decimal, error)
}

// BudgetRepository defines data access for budgets.
type BudgetRepository interface {
	Create(ctx context.Context, tx Transaction, budget *domain.Budget) error
	GetByID(ctx context.Context, ownerID, id string) (*domain.Budget, error)
	GetByIDAny(ctx context.Context, id string) (*domain.Budget, error)
	// GetActiveByCategory returns the single active budget of owner/category, or
	// domain.ErrBudgetNotFound.
	GetActiveByCategory(ctx context.Context, ownerID, categoryID string) (*domain.Budget, error)
	ListByOwner(ctx context.Context, ownerID string, activeOnly bool, limit, offset int) ([]*domain.Budget, error)
	ListActive(ctx context.Context, limit, offset int) ([]*domain.Budget, error)
	UpdateProgress(ctx context.Context, id string, progress decimal.Decimal, updatedAt time.Time) error
	Deactivate(ctx context.Context, id string, updatedAt time.Time) error
	Delete(ctx context.Context, ownerID, id string) error
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublished(ctx context.Context, before time.Time) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Retrier re-runs an operation that failed with a retryable storage error.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// TimeResolver converts local calendar dates into instants.
type TimeResolver interface {
	DayStart(d domain.Date) time.Time
	DayEnd(d domain.Date) time.Time
	Contains(from, to domain.Date, t time.Time) bool
	DateOf(t time.Time) domain.Date
}

// RecomputeQueue holds owner/category keys whose budget recompute failed and
// must be retried. Pushing a key that is already queued is a no-op.
type RecomputeQueue interface {
	Push(ctx context.Context, keys ...string) error
	Pop(ctx context.Context, max int) ([]string, error)
}

// CircuitBreaker guards calls to a dependency that may be failing.
type CircuitBreaker interface {
	Execute(fn func() error) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

// BudgetTracker is notified after committed movement changes and answers
// budget linkage questions for the ledger.
type BudgetTracker interface {
	OnMovementChange(ctx context.Context, ownerID, categoryID string, occurredAt time.Time) error
	RecomputeOwner(ctx context.Context, ownerID string) error
	CoveringBudget(ctx context.Context, ownerID, categoryID string, at time.Time) (*domain.Budget, error)
	MarkPending(ctx context.Context, ownerID, categoryID string)
}

// LedgerRepository defines data access for ledger-wide checks.
type LedgerRepository interface {
	// CheckConsistency returns the sum of all account balances and the signed
	// sum of all movements; they are equal in a consistent ledger.
	CheckConsistency(ctx context.Context) (totalBalance, totalSigned decimal.Decimal, err error)
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// SystemClock is the wall clock in UTC.
var SystemClock Clock = systemClock{}

type noRetry struct{}

func (noRetry) Retry(_ context.Context, operation func() error) error { return operation() }

type passThroughBreaker struct{}

func (passThroughBreaker) Execute(fn func() error) error { return fn() }
