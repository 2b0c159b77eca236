package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/budgetledger/internal/domain"
	"github.com/iho/budgetledger/internal/infrastructure/metrics"
)

// LedgerUseCase is the entry point for every movement mutation. Balance and
// movement writes share one transaction; budget recomputation runs after commit
// and never undoes a committed posting.
type LedgerUseCase struct {
	txManager    TransactionManager
	accountRepo  AccountRepository
	movementRepo MovementRepository
	outboxRepo   OutboxRepository
	idGen        IDGenerator
	budgets      BudgetTracker
	resolver     TimeResolver
	retrier      Retrier
	breaker      CircuitBreaker
	clock        Clock
	metrics      *metrics.Metrics
	log          zerolog.Logger
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	movementRepo MovementRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	budgets BudgetTracker,
	resolver TimeResolver,
	metrics *metrics.Metrics,
	log zerolog.Logger,
) *LedgerUseCase {
	return &LedgerUseCase{
		txManager:    txManager,
		accountRepo:  accountRepo,
		movementRepo: movementRepo,
		outboxRepo:   outboxRepo,
		idGen:        idGen,
		budgets:      budgets,
		resolver:     resolver,
		retrier:      noRetry{},
		breaker:      passThroughBreaker{},
		clock:        SystemClock,
		metrics:      metrics,
		log:          log.With().Str("component", "ledger").Logger(),
	}
}

// WithRetrier retries transactions that fail with serialization or deadlock errors.
func (uc *LedgerUseCase) WithRetrier(r Retrier) *LedgerUseCase {
	uc.retrier = r
	return uc
}

// WithBreaker guards post-commit budget recomputation.
func (uc *LedgerUseCase) WithBreaker(b CircuitBreaker) *LedgerUseCase {
	uc.breaker = b
	return uc
}

// WithClock replaces the wall clock, mainly for tests.
func (uc *LedgerUseCase) WithClock(c Clock) *LedgerUseCase {
	uc.clock = c
	return uc
}

// PostMovementInput represents input for posting a movement.
type PostMovementInput struct {
	OwnerID              string
	AccountID            string
	Kind                 domain.MovementKind
	Amount               decimal.Decimal
	CategoryID           string
	Description          string
	OccurredAt           *time.Time
	CounterpartAccountID *string
}

// PostMovement records a movement and applies it to the account balance. A
// movement with a counterpart account in the transfer-out category is posted
// as a mirrored transfer.
func (uc *LedgerUseCase) PostMovement(ctx context.Context, input PostMovementInput) (*domain.Movement, error) {
	start := time.Now()

	if input.CounterpartAccountID != nil && *input.CounterpartAccountID != "" {
		m, err := uc.postTransfer(ctx, input)
		uc.observe("post_transfer", start, err)
		return m, err
	}

	m, err := uc.postSimple(ctx, input)
	uc.observe("post", start, err)
	return m, err
}

func (uc *LedgerUseCase) postSimple(ctx context.Context, input PostMovementInput) (*domain.Movement, error) {
	switch input.CategoryID {
	case domain.CategoryTransferOut:
		return nil, domain.ErrCounterpartRequired
	case domain.CategoryTransferReceived:
		return nil, domain.ErrReservedCategory
	}

	now := uc.clock.Now()
	movement := &domain.Movement{
		ID:          uc.idGen.Generate(),
		OwnerID:     input.OwnerID,
		AccountID:   input.AccountID,
		Kind:        input.Kind,
		Amount:      input.Amount,
		CategoryID:  input.CategoryID,
		Description: input.Description,
		OccurredAt:  occurredAt(input.OccurredAt, now),
		CreatedAt:   now,
		Link:        domain.Simple{},
	}
	if err := movement.Validate(); err != nil {
		return nil, err
	}

	err := uc.inTx(ctx, func(ctx context.Context, tx Transaction) error {
		if _, err := uc.lockAccounts(ctx, tx, input.OwnerID, input.AccountID); err != nil {
			return err
		}
		if err := uc.writeMovement(ctx, tx, movement, now); err != nil {
			return err
		}
		return uc.emit(ctx, tx, movement, domain.AggregateTypeMovement, domain.EventTypeMovementPosted, now)
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.MovementsPosted.WithLabelValues(string(movement.Kind)).Inc()
		uc.metrics.MovementAmount.Observe(movement.Amount.InexactFloat64())
	}

	uc.afterCommit(ctx, movement.OwnerID, touchOf(movement))
	return movement, nil
}

// EditMovementInput represents input for editing a movement. Nil fields are left unchanged.
type EditMovementInput struct {
	OwnerID     string
	MovementID  string
	CategoryID  *string
	Description *string
}

// EditMovement changes the category and/or description of a movement. A
// category change is refused while the movement counts toward an active budget.
func (uc *LedgerUseCase) EditMovement(ctx context.Context, input EditMovementInput) (*domain.Movement, error) {
	start := time.Now()

	if input.CategoryID == nil && input.Description == nil {
		return nil, domain.ErrEmptyEdit
	}
	if input.CategoryID != nil && *input.CategoryID == "" {
		return nil, domain.ErrMissingCategory
	}
	if input.Description != nil {
		if err := domain.ValidateDescription(*input.Description); err != nil {
			return nil, err
		}
	}

	var (
		edited  *domain.Movement
		touches []budgetTouch
	)
	err := uc.inTx(ctx, func(ctx context.Context, tx Transaction) error {
		edited, touches = nil, nil

		m, err := uc.movementRepo.GetByIDForUpdate(ctx, tx, input.OwnerID, input.MovementID)
		if err != nil {
			return err
		}

		oldCategory := m.CategoryID
		if input.CategoryID != nil && *input.CategoryID != m.CategoryID {
			if err := uc.checkCategoryChange(ctx, m, *input.CategoryID); err != nil {
				return err
			}
			m.CategoryID = *input.CategoryID
		}
		if input.Description != nil {
			m.Description = *input.Description
		}

		if err := uc.movementRepo.UpdateDetails(ctx, tx, m.ID, m.CategoryID, m.Description); err != nil {
			return err
		}

		event := &domain.OutboxEvent{
			ID:            uc.idGen.Generate(),
			AggregateID:   m.ID,
			AggregateType: domain.AggregateTypeMovement,
			EventType:     domain.EventTypeMovementEdited,
			Payload: map[string]any{
				"movement_id":          m.ID,
				"owner_id":             m.OwnerID,
				"previous_category_id": oldCategory,
				"category_id":          m.CategoryID,
				"description_changed":  input.Description != nil,
			},
			CreatedAt: uc.clock.Now(),
		}
		if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
			return err
		}

		edited = m
		if oldCategory != m.CategoryID {
			touches = []budgetTouch{
				{categoryID: oldCategory, at: m.OccurredAt},
				{categoryID: m.CategoryID, at: m.OccurredAt},
			}
		}
		return nil
	})
	uc.observe("edit", start, err)
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.MovementsEdited.Inc()
	}

	uc.afterCommit(ctx, edited.OwnerID, touches...)
	return edited, nil
}

func (uc *LedgerUseCase) checkCategoryChange(ctx context.Context, m *domain.Movement, newCategory string) error {
	if _, isTransfer := m.Transfer(); isTransfer || m.IsRectification() {
		return domain.ErrCategoryImmutable
	}
	if domain.IsTransferCategory(newCategory) {
		return domain.ErrReservedCategory
	}
	if m.Kind != domain.KindExpense {
		return nil
	}

	linked, err := uc.budgets.CoveringBudget(ctx, m.OwnerID, m.CategoryID, m.OccurredAt)
	if err != nil {
		return err
	}
	if linked != nil {
		return domain.ErrCategoryLinkedToBudget
	}
	return nil
}

// DeleteMovement removes a movement and reverses its balance effect. Deleting a
// transfer leg deletes its sibling too; deleting a rectification reopens the
// original; a rectified original cannot be deleted.
func (uc *LedgerUseCase) DeleteMovement(ctx context.Context, ownerID, movementID string) error {
	start := time.Now()

	var (
		removed []*domain.Movement
		touches []budgetTouch
	)
	err := uc.inTx(ctx, func(ctx context.Context, tx Transaction) error {
		removed, touches = nil, nil

		m, err := uc.movementRepo.GetByIDForUpdate(ctx, tx, ownerID, movementID)
		if err != nil {
			return err
		}

		group, err := uc.collectGroup(ctx, tx, m)
		if err != nil {
			return err
		}
		for _, g := range group {
			if g.IsRectified() {
				return domain.ErrRectifiedNotDeletable
			}
		}

		if _, err := uc.lockAccounts(ctx, tx, ownerID, accountIDs(group)...); err != nil {
			return err
		}

		now := uc.clock.Now()
		for _, g := range group {
			if originalID, ok := g.OriginalMovementID(); ok {
				original, err := uc.movementRepo.GetByIDForUpdate(ctx, tx, ownerID, originalID)
				if err != nil {
					return err
				}
				if err := uc.movementRepo.SetRectifyingID(ctx, tx, originalID, nil); err != nil {
					return err
				}
				touches = append(touches, touchOf(original))
			}

			if err := uc.movementRepo.Delete(ctx, tx, g.ID); err != nil {
				return err
			}
			if _, err := uc.accountRepo.AdjustBalance(ctx, tx, g.AccountID, g.SignedAmount().Neg(), now); err != nil {
				return err
			}
			if err := uc.emit(ctx, tx, g, domain.AggregateTypeMovement, domain.EventTypeMovementDeleted, now); err != nil {
				return err
			}
			touches = append(touches, touchOf(g))
		}

		removed = group
		return nil
	})
	uc.observe("delete", start, err)
	if err != nil {
		return err
	}

	if uc.metrics != nil {
		uc.metrics.MovementsDeleted.Add(float64(len(removed)))
	}

	uc.afterCommit(ctx, ownerID, touches...)
	return nil
}

// GetMovement returns one of the owner's movements.
func (uc *LedgerUseCase) GetMovement(ctx context.Context, ownerID, id string) (*domain.Movement, error) {
	return uc.movementRepo.GetByID(ctx, ownerID, id)
}

// ListMovementsInput represents input for the paged movement query. Dates are
// local calendar days and are inclusive.
type ListMovementsInput struct {
	OwnerID     string
	AccountID   string
	CategoryID  string
	Kind        domain.MovementKind
	Description string
	From        *domain.Date
	To          *domain.Date
	Limit       int
	Offset      int
}

// ListMovements returns the owner's movements, newest first.
func (uc *LedgerUseCase) ListMovements(ctx context.Context, input ListMovementsInput) ([]*domain.Movement, error) {
	if input.Kind != "" && !input.Kind.Valid() {
		return nil, domain.ErrInvalidKind
	}
	if input.From != nil && input.To != nil && input.From.After(*input.To) {
		return nil, domain.Validationf("from date %s is after to date %s", input.From, input.To)
	}
	if input.AccountID != "" {
		if _, err := uc.accountRepo.GetByID(ctx, input.OwnerID, input.AccountID); err != nil {
			return nil, err
		}
	}

	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)
	filter := domain.MovementFilter{
		OwnerID:     input.OwnerID,
		AccountID:   input.AccountID,
		CategoryID:  input.CategoryID,
		Kind:        input.Kind,
		Description: input.Description,
		Limit:       limit,
		Offset:      offset,
	}
	if input.From != nil {
		from := uc.resolver.DayStart(*input.From)
		filter.From = &from
	}
	if input.To != nil {
		to := uc.resolver.DayEnd(*input.To)
		filter.To = &to
	}

	return uc.movementRepo.List(ctx, filter)
}

// inTx runs fn in a transaction under DefaultTransactionTimeout, retrying the
// whole transaction on retryable storage errors.
func (uc *LedgerUseCase) inTx(ctx context.Context, fn func(ctx context.Context, tx Transaction) error) error {
	return uc.retrier.Retry(ctx, func() error {
		txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
		defer cancel()

		tx, err := uc.txManager.Begin(txCtx)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback(txCtx) }()

		if err := fn(txCtx, tx); err != nil {
			return err
		}
		return tx.Commit(txCtx)
	})
}

// lockAccounts locks the owner's accounts in sorted id order (deadlock prevention).
func (uc *LedgerUseCase) lockAccounts(ctx context.Context, tx Transaction, ownerID string, ids ...string) (map[string]*domain.Account, error) {
	ids = uniqueSorted(ids)

	accounts, err := uc.accountRepo.GetByIDsForUpdate(ctx, tx, ownerID, ids)
	if err != nil {
		return nil, err
	}
	if len(accounts) != len(ids) {
		return nil, domain.ErrAccountNotFound
	}

	byID := make(map[string]*domain.Account, len(accounts))
	for _, a := range accounts {
		byID[a.ID] = a
	}
	return byID, nil
}

// collectGroup returns m plus the other legs of its transfer group, if any.
func (uc *LedgerUseCase) collectGroup(ctx context.Context, tx Transaction, m *domain.Movement) ([]*domain.Movement, error) {
	leg, ok := m.Transfer()
	if !ok {
		return []*domain.Movement{m}, nil
	}

	legs, err := uc.movementRepo.GetTransferLegs(ctx, tx, leg.TransferID)
	if err != nil {
		return nil, err
	}

	group := []*domain.Movement{m}
	for _, l := range legs {
		if l.ID != m.ID {
			group = append(group, l)
		}
	}
	return group, nil
}

func (uc *LedgerUseCase) writeMovement(ctx context.Context, tx Transaction, m *domain.Movement, now time.Time) error {
	if err := uc.movementRepo.Create(ctx, tx, m); err != nil {
		return err
	}
	_, err := uc.accountRepo.AdjustBalance(ctx, tx, m.AccountID, m.SignedAmount(), now)
	return err
}

func (uc *LedgerUseCase) emit(ctx context.Context, tx Transaction, m *domain.Movement, aggregateType, eventType string, now time.Time) error {
	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   m.ID,
		AggregateType: aggregateType,
		EventType:     eventType,
		Payload:       domain.NewMovementEvent(m).Map(),
		CreatedAt:     now,
	}
	return uc.outboxRepo.Create(ctx, tx, event)
}

type budgetTouch struct {
	categoryID string
	at         time.Time
}

func touchOf(m *domain.Movement) budgetTouch {
	return budgetTouch{categoryID: m.CategoryID, at: m.OccurredAt}
}

// afterCommit recomputes the budgets touched by a committed change. Failures are
// logged and queued; the committed change stands.
func (uc *LedgerUseCase) afterCommit(ctx context.Context, ownerID string, touches ...budgetTouch) {
	if uc.budgets == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)

	seen := make(map[budgetTouch]bool, len(touches))
	for _, t := range touches {
		if seen[t] || domain.IsTransferCategory(t.categoryID) {
			continue
		}
		seen[t] = true

		err := uc.breaker.Execute(func() error {
			return uc.budgets.OnMovementChange(ctx, ownerID, t.categoryID, t.at)
		})
		if err != nil {
			uc.budgets.MarkPending(ctx, ownerID, t.categoryID)
			uc.log.Error().Err(err).
				Str("owner_id", ownerID).
				Str("category_id", t.categoryID).
				Msg("budget recompute after commit failed, queued for reconciliation")
		}
	}
}

func (uc *LedgerUseCase) observe(op string, start time.Time, err error) {
	if uc.metrics == nil {
		return
	}
	uc.metrics.LedgerDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		kind := string(domain.KindOf(err))
		if kind == "" {
			kind = "internal"
		}
		uc.metrics.LedgerErrors.WithLabelValues(op, kind).Inc()
	}
}

func occurredAt(requested *time.Time, now time.Time) time.Time {
	if requested == nil || requested.IsZero() {
		return now
	}
	return requested.UTC()
}

func accountIDs(movements []*domain.Movement) []string {
	ids := make([]string, 0, len(movements))
	for _, m := range movements {
		ids = append(ids, m.AccountID)
	}
	return ids
}

func uniqueSorted(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}
