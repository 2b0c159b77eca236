package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/budgetledger/internal/domain"
	"github.com/iho/budgetledger/internal/infrastructure/metrics"
)

// BudgetUseCase tracks budget consumption. Progress is always a full re-scan of
// the ledger so edits, deletes and rectifications need no delta bookkeeping.
type BudgetUseCase struct {
	txManager    TransactionManager
	budgetRepo   BudgetRepository
	movementRepo MovementRepository
	outboxRepo   OutboxRepository
	idGen        IDGenerator
	resolver     TimeResolver
	clock        Clock
	queue        RecomputeQueue
	metrics      *metrics.Metrics
	log          zerolog.Logger
}

// NewBudgetUseCase creates a new BudgetUseCase.
func NewBudgetUseCase(
	txManager TransactionManager,
	budgetRepo BudgetRepository,
	movementRepo MovementRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	resolver TimeResolver,
	queue RecomputeQueue,
	metrics *metrics.Metrics,
	log zerolog.Logger,
) *BudgetUseCase {
	return &BudgetUseCase{
		txManager:    txManager,
		budgetRepo:   budgetRepo,
		movementRepo: movementRepo,
		outboxRepo:   outboxRepo,
		idGen:        idGen,
		resolver:     resolver,
		clock:        SystemClock,
		queue:        queue,
		metrics:      metrics,
		log:          log.With().Str("component", "budget_tracker").Logger(),
	}
}

// WithClock replaces the wall clock, mainly for tests.
func (uc *BudgetUseCase) WithClock(c Clock) *BudgetUseCase {
	uc.clock = c
	return uc
}

// CreateBudgetInput represents input for creating a budget.
type CreateBudgetInput struct {
	OwnerID    string
	CategoryID string
	Limit      decimal.Decimal
	StartDate  domain.Date
	EndDate    domain.Date
}

// CreateBudget creates an active budget and computes its initial progress.
func (uc *BudgetUseCase) CreateBudget(ctx context.Context, input CreateBudgetInput) (*domain.Budget, error) {
	now := uc.clock.Now()
	budget := &domain.Budget{
		ID:         uc.idGen.Generate(),
		OwnerID:    input.OwnerID,
		CategoryID: input.CategoryID,
		Limit:      input.Limit,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		Active:     true,
		Progress:   decimal.Zero,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := budget.Validate(); err != nil {
		return nil, err
	}
	if budget.ExpiredOn(uc.resolver.DateOf(now)) {
		return nil, domain.Validationf("budget window ended on %s", budget.EndDate)
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	existing, err := uc.budgetRepo.GetActiveByCategory(txCtx, input.OwnerID, input.CategoryID)
	if err != nil && !errors.Is(err, domain.ErrBudgetNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrBudgetActiveExists
	}

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	if err := uc.budgetRepo.Create(txCtx, tx, budget); err != nil {
		return nil, err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   budget.ID,
		AggregateType: domain.AggregateTypeBudget,
		EventType:     domain.EventTypeBudgetCreated,
		Payload: map[string]any{
			"budget_id":   budget.ID,
			"owner_id":    budget.OwnerID,
			"category_id": budget.CategoryID,
			"limit":       budget.Limit.String(),
			"start_date":  budget.StartDate.String(),
			"end_date":    budget.EndDate.String(),
		},
		CreatedAt: now,
	}
	if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	if _, err := uc.recompute(ctx, budget); err != nil {
		uc.log.Error().Err(err).Str("budget_id", budget.ID).Msg("initial budget recompute failed")
		uc.enqueue(ctx, budget.OwnerID, budget.CategoryID)
	}

	return budget, nil
}

// GetBudget returns one of the owner's budgets.
func (uc *BudgetUseCase) GetBudget(ctx context.Context, ownerID, id string) (*domain.Budget, error) {
	return uc.budgetRepo.GetByID(ctx, ownerID, id)
}

// ListBudgetsInput represents input for listing budgets.
type ListBudgetsInput struct {
	OwnerID    string
	ActiveOnly bool
	Limit      int
	Offset     int
}

// ListBudgets lists the owner's budgets.
func (uc *BudgetUseCase) ListBudgets(ctx context.Context, input ListBudgetsInput) ([]*domain.Budget, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)
	return uc.budgetRepo.ListByOwner(ctx, input.OwnerID, input.ActiveOnly, limit, offset)
}

// DeleteBudget removes one of the owner's budgets.
func (uc *BudgetUseCase) DeleteBudget(ctx context.Context, ownerID, id string) error {
	return uc.budgetRepo.Delete(ctx, ownerID, id)
}

// RecomputeBudget re-scans the ledger for one budget and stores the result.
// Inactive budgets are returned unchanged; a budget past its end date is
// deactivated instead of recomputed.
func (uc *BudgetUseCase) RecomputeBudget(ctx context.Context, budgetID string) (*domain.Budget, error) {
	budget, err := uc.budgetRepo.GetByIDAny(ctx, budgetID)
	if err != nil {
		return nil, err
	}
	return uc.recompute(ctx, budget)
}

// RecomputeOwnedBudget is RecomputeBudget restricted to the owner's budgets.
func (uc *BudgetUseCase) RecomputeOwnedBudget(ctx context.Context, ownerID, budgetID string) (*domain.Budget, error) {
	budget, err := uc.budgetRepo.GetByID(ctx, ownerID, budgetID)
	if err != nil {
		return nil, err
	}
	return uc.recompute(ctx, budget)
}

// CoveringBudget returns the live active budget of owner/category whose window
// contains at, or nil when there is none.
func (uc *BudgetUseCase) CoveringBudget(ctx context.Context, ownerID, categoryID string, at time.Time) (*domain.Budget, error) {
	if domain.IsTransferCategory(categoryID) {
		return nil, nil
	}

	budget, err := uc.budgetRepo.GetActiveByCategory(ctx, ownerID, categoryID)
	if errors.Is(err, domain.ErrBudgetNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if budget.ExpiredOn(uc.resolver.DateOf(uc.clock.Now())) {
		return nil, nil
	}
	if !uc.resolver.Contains(budget.StartDate, budget.EndDate, at) {
		return nil, nil
	}
	return budget, nil
}

// OnMovementChange recomputes the active budget affected by a movement of
// owner/category that occurred at occurredAt. A failed recompute is queued for
// the reconcile job and returned to the caller for logging.
func (uc *BudgetUseCase) OnMovementChange(ctx context.Context, ownerID, categoryID string, occurredAt time.Time) error {
	budget, err := uc.CoveringBudget(ctx, ownerID, categoryID, occurredAt)
	if err != nil {
		uc.enqueue(ctx, ownerID, categoryID)
		return err
	}
	if budget == nil {
		return nil
	}

	if _, err := uc.recompute(ctx, budget); err != nil {
		uc.enqueue(ctx, ownerID, categoryID)
		return err
	}
	return nil
}

// RecomputeOwner recomputes every active budget of an owner.
func (uc *BudgetUseCase) RecomputeOwner(ctx context.Context, ownerID string) error {
	var budgets []*domain.Budget
	for offset := 0; ; offset += reconcileBatchSize {
		page, err := uc.budgetRepo.ListByOwner(ctx, ownerID, true, reconcileBatchSize, offset)
		if err != nil {
			return err
		}
		budgets = append(budgets, page...)
		if len(page) < reconcileBatchSize {
			break
		}
	}

	var errs []error
	for _, b := range budgets {
		if _, err := uc.recompute(ctx, b); err != nil {
			uc.enqueue(ctx, b.OwnerID, b.CategoryID)
			errs = append(errs, fmt.Errorf("budget %s: %w", b.ID, err))
		}
	}
	return errors.Join(errs...)
}

// RecomputeAllActive recomputes every active budget and returns how many were processed.
func (uc *BudgetUseCase) RecomputeAllActive(ctx context.Context) (int, error) {
	budgets, err := uc.allActive(ctx)
	if err != nil {
		return 0, err
	}

	var errs []error
	for _, b := range budgets {
		if _, err := uc.recompute(ctx, b); err != nil {
			uc.enqueue(ctx, b.OwnerID, b.CategoryID)
			errs = append(errs, fmt.Errorf("budget %s: %w", b.ID, err))
		}
	}
	return len(budgets), errors.Join(errs...)
}

// ExpireBudgets deactivates every active budget whose end date has passed.
func (uc *BudgetUseCase) ExpireBudgets(ctx context.Context) (int, error) {
	budgets, err := uc.allActive(ctx)
	if err != nil {
		return 0, err
	}

	now := uc.clock.Now()
	today := uc.resolver.DateOf(now)
	expired := 0
	for _, b := range budgets {
		if !b.ExpiredOn(today) {
			continue
		}
		if err := uc.budgetRepo.Deactivate(ctx, b.ID, now); err != nil {
			return expired, fmt.Errorf("deactivate budget %s: %w", b.ID, err)
		}
		expired++
	}

	if uc.metrics != nil {
		uc.metrics.BudgetsExpired.Add(float64(expired))
	}
	if expired > 0 {
		uc.log.Info().Int("count", expired).Str("today", today.String()).Msg("budgets expired")
	}
	return expired, nil
}

// ReconcilePending drains the recompute queue. Entries that fail again are re-queued.
func (uc *BudgetUseCase) ReconcilePending(ctx context.Context, max int) (int, error) {
	if uc.queue == nil {
		return 0, nil
	}

	keys, err := uc.queue.Pop(ctx, max)
	if err != nil {
		return 0, err
	}
	if uc.metrics != nil {
		uc.metrics.BudgetsPendingRecompute.Set(float64(len(keys)))
	}

	var errs []error
	done := 0
	for _, key := range keys {
		ownerID, categoryID, ok := parsePendingKey(key)
		if !ok {
			uc.log.Warn().Str("key", key).Msg("dropping malformed pending recompute entry")
			continue
		}

		budget, err := uc.budgetRepo.GetActiveByCategory(ctx, ownerID, categoryID)
		if errors.Is(err, domain.ErrBudgetNotFound) {
			done++
			continue
		}
		if err == nil {
			_, err = uc.recompute(ctx, budget)
		}
		if err != nil {
			uc.enqueue(ctx, ownerID, categoryID)
			errs = append(errs, err)
			continue
		}
		done++
	}
	return done, errors.Join(errs...)
}

func (uc *BudgetUseCase) recompute(ctx context.Context, budget *domain.Budget) (*domain.Budget, error) {
	if !budget.Active {
		return budget, nil
	}

	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, DefaultRecomputeTimeout)
	defer cancel()

	now := uc.clock.Now()
	if budget.ExpiredOn(uc.resolver.DateOf(now)) {
		if err := uc.budgetRepo.Deactivate(ctx, budget.ID, now); err != nil {
			uc.observe("error", start)
			return nil, err
		}
		budget.Active = false
		budget.UpdatedAt = now
		if uc.metrics != nil {
			uc.metrics.BudgetsExpired.Inc()
		}
		uc.observe("expired", start)
		return budget, nil
	}

	from, to := uc.resolver.DayStart(budget.StartDate), uc.resolver.DayEnd(budget.EndDate)
	progress, err := uc.movementRepo.SumBudgetSpend(ctx, budget.OwnerID, budget.CategoryID, from, to)
	if err != nil {
		uc.observe("error", start)
		return nil, err
	}

	if err := uc.budgetRepo.UpdateProgress(ctx, budget.ID, progress, now); err != nil {
		uc.observe("error", start)
		return nil, err
	}

	budget.Progress = progress
	budget.UpdatedAt = now
	uc.observe("ok", start)

	uc.log.Debug().
		Str("budget_id", budget.ID).
		Str("category_id", budget.CategoryID).
		Str("progress", progress.String()).
		Msg("budget recomputed")

	return budget, nil
}

func (uc *BudgetUseCase) allActive(ctx context.Context) ([]*domain.Budget, error) {
	var all []*domain.Budget
	for offset := 0; ; offset += reconcileBatchSize {
		page, err := uc.budgetRepo.ListActive(ctx, reconcileBatchSize, offset)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < reconcileBatchSize {
			return all, nil
		}
	}
}

// MarkPending queues owner/category for the reconcile job.
func (uc *BudgetUseCase) MarkPending(ctx context.Context, ownerID, categoryID string) {
	uc.enqueue(ctx, ownerID, categoryID)
}

func (uc *BudgetUseCase) enqueue(ctx context.Context, ownerID, categoryID string) {
	if uc.queue == nil {
		return
	}
	if err := uc.queue.Push(context.WithoutCancel(ctx), pendingKey(ownerID, categoryID)); err != nil {
		uc.log.Error().Err(err).
			Str("owner_id", ownerID).
			Str("category_id", categoryID).
			Msg("failed to queue budget for recompute")
	}
}

func (uc *BudgetUseCase) observe(result string, start time.Time) {
	if uc.metrics == nil {
		return
	}
	uc.metrics.BudgetRecomputes.WithLabelValues(result).Inc()
	uc.metrics.BudgetRecomputeDuration.Observe(time.Since(start).Seconds())
}

const pendingKeySep = "\x1f"

func pendingKey(ownerID, categoryID string) string {
	return ownerID + pendingKeySep + categoryID
}

func parsePendingKey(key string) (ownerID, categoryID string, ok bool) {
	ownerID, categoryID, ok = strings.Cut(key, pendingKeySep)
	return ownerID, categoryID, ok && ownerID != "" && categoryID != ""
}
