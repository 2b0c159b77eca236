package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/iho/budgetledger/internal/adapter/repository/memory"
	"github.com/iho/budgetledger/internal/domain"
	"github.com/iho/budgetledger/internal/infrastructure/metrics"
	"github.com/iho/budgetledger/internal/infrastructure/timezone"
	"github.com/iho/budgetledger/internal/usecase"
	"github.com/iho/budgetledger/internal/usecase/mocks"
)

const owner = "owner-1"

// ledgerFixture wires every use case onto one in-memory store.
type ledgerFixture struct {
	store     *memory.Store
	clock     *mocks.ClockStub
	queue     *memory.RecomputeQueue
	resolver  *timezone.Resolver
	movements usecase.MovementRepository
	budgetsDB *memory.BudgetRepository

	ledger   *usecase.LedgerUseCase
	accounts *usecase.AccountUseCase
	budgets  *usecase.BudgetUseCase
	recon    *usecase.ReconciliationUseCase
}

type fixtureOption func(*fixtureConfig)

type fixtureConfig struct {
	wrapMovements func(usecase.MovementRepository) usecase.MovementRepository
	wrapTx        func(usecase.TransactionManager) usecase.TransactionManager
	tracker       func(*usecase.BudgetUseCase) usecase.BudgetTracker
	maxAccounts   int
}

func withMovementRepo(wrap func(usecase.MovementRepository) usecase.MovementRepository) fixtureOption {
	return func(c *fixtureConfig) { c.wrapMovements = wrap }
}

func withTxManager(wrap func(usecase.TransactionManager) usecase.TransactionManager) fixtureOption {
	return func(c *fixtureConfig) { c.wrapTx = wrap }
}

func withTracker(fn func(*usecase.BudgetUseCase) usecase.BudgetTracker) fixtureOption {
	return func(c *fixtureConfig) { c.tracker = fn }
}

func withMaxAccounts(n int) fixtureOption {
	return func(c *fixtureConfig) { c.maxAccounts = n }
}

func newLedgerFixture(t *testing.T, now time.Time, opts ...fixtureOption) *ledgerFixture {
	t.Helper()

	cfg := fixtureConfig{}
	for _, o := range opts {
		o(&cfg)
	}

	store := memory.NewStore()
	var txManager usecase.TransactionManager = memory.NewTxManager(store)
	if cfg.wrapTx != nil {
		txManager = cfg.wrapTx(txManager)
	}
	accountRepo := memory.NewAccountRepository(store)
	budgetRepo := memory.NewBudgetRepository(store)
	outboxRepo := memory.NewOutboxRepository(store)
	var movementRepo usecase.MovementRepository = memory.NewMovementRepository(store)
	if cfg.wrapMovements != nil {
		movementRepo = cfg.wrapMovements(movementRepo)
	}

	clock := mocks.NewClockStub(now)
	idGen := mocks.NewIDGeneratorStub()
	queue := memory.NewRecomputeQueue()
	resolver := timezone.Default()
	m := metrics.NewWith(prometheus.NewRegistry())
	log := zerolog.Nop()

	budgets := usecase.NewBudgetUseCase(txManager, budgetRepo, movementRepo, outboxRepo, idGen, resolver, queue, m, log).
		WithClock(clock)

	var tracker usecase.BudgetTracker = budgets
	if cfg.tracker != nil {
		tracker = cfg.tracker(budgets)
	}

	return &ledgerFixture{
		store:     store,
		clock:     clock,
		queue:     queue,
		resolver:  resolver,
		movements: movementRepo,
		budgetsDB: budgetRepo,
		ledger: usecase.NewLedgerUseCase(txManager, accountRepo, movementRepo, outboxRepo, idGen, tracker, resolver, m, log).
			WithClock(clock),
		accounts: usecase.NewAccountUseCase(txManager, accountRepo, movementRepo, outboxRepo, idGen, tracker, cfg.maxAccounts, m, log),
		budgets:  budgets,
		recon: usecase.NewReconciliationUseCase(
			accountRepo, movementRepo, budgetRepo, memory.NewLedgerRepository(store), resolver, m,
		),
	}
}

func (f *ledgerFixture) account(t *testing.T, name string) *domain.Account {
	t.Helper()
	a, err := f.accounts.CreateAccount(context.Background(), usecase.CreateAccountInput{
		OwnerID: owner,
		Name:    name,
		Type:    domain.AccountTypeChecking,
	})
	require.NoError(t, err)
	return a
}

func (f *ledgerFixture) post(t *testing.T, accountID string, kind domain.MovementKind, amount int64, category string, at time.Time) *domain.Movement {
	t.Helper()
	m, err := f.ledger.PostMovement(context.Background(), usecase.PostMovementInput{
		OwnerID:    owner,
		AccountID:  accountID,
		Kind:       kind,
		Amount:     decimal.NewFromInt(amount),
		CategoryID: category,
		OccurredAt: &at,
	})
	require.NoError(t, err)
	return m
}

func (f *ledgerFixture) transfer(t *testing.T, from, to string, amount int64, at time.Time) *domain.Movement {
	t.Helper()
	m, err := f.ledger.PostMovement(context.Background(), usecase.PostMovementInput{
		OwnerID:              owner,
		AccountID:            from,
		Kind:                 domain.KindExpense,
		Amount:               decimal.NewFromInt(amount),
		CategoryID:           domain.CategoryTransferOut,
		OccurredAt:           &at,
		CounterpartAccountID: &to,
	})
	require.NoError(t, err)
	return m
}

func (f *ledgerFixture) budget(t *testing.T, category string, limit int64, start, end string) *domain.Budget {
	t.Helper()
	b, err := f.budgets.CreateBudget(context.Background(), usecase.CreateBudgetInput{
		OwnerID:    owner,
		CategoryID: category,
		Limit:      decimal.NewFromInt(limit),
		StartDate:  domain.MustParseDate(start),
		EndDate:    domain.MustParseDate(end),
	})
	require.NoError(t, err)
	return b
}

func (f *ledgerFixture) balance(t *testing.T, accountID string) decimal.Decimal {
	t.Helper()
	a, err := f.accounts.GetAccount(context.Background(), owner, accountID)
	require.NoError(t, err)
	return a.Balance
}

func (f *ledgerFixture) progress(t *testing.T, budgetID string) decimal.Decimal {
	t.Helper()
	b, err := f.budgets.GetBudget(context.Background(), owner, budgetID)
	require.NoError(t, err)
	return b.Progress
}

// requireConsistent checks every account balance against its movements and
// every active budget against an independent re-scan.
func (f *ledgerFixture) requireConsistent(t *testing.T) {
	t.Helper()
	report, err := f.recon.ReconcileOwner(context.Background(), owner)
	require.NoError(t, err)
	require.Empty(t, report.AccountDiscrepancies, "account balances drifted from movements")
	require.Empty(t, report.BudgetDiscrepancies, "budget progress drifted from the ledger")
	require.NoError(t, f.recon.CheckLedgerConsistency(context.Background()))
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func requireDecimal(t *testing.T, want int64, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	require.Truef(t, got.Equal(dec(want)), "want %d, got %s %v", want, got, msgAndArgs)
}

// failingMovements fails Create for movements matching fail.
type failingMovements struct {
	usecase.MovementRepository
	fail func(*domain.Movement) bool
	err  error
}

func (r *failingMovements) Create(ctx context.Context, tx usecase.Transaction, m *domain.Movement) error {
	if r.fail(m) {
		return r.err
	}
	return r.MovementRepository.Create(ctx, tx, m)
}

var errInjected = errors.New("injected failure")
