package usecase

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/budgetledger/internal/domain"
	"github.com/iho/budgetledger/internal/infrastructure/metrics"
)

// AccountUseCase handles account business logic.
type AccountUseCase struct {
	txManager    TransactionManager
	accountRepo  AccountRepository
	movementRepo MovementRepository
	outboxRepo   OutboxRepository
	idGen        IDGenerator
	budgets      BudgetTracker
	retrier      Retrier
	clock        Clock
	maxPerOwner  int
	metrics      *metrics.Metrics
	log          zerolog.Logger
}

// NewAccountUseCase creates a new AccountUseCase. maxPerOwner <= 0 selects
// DefaultMaxAccountsPerOwner.
func NewAccountUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	movementRepo MovementRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	budgets BudgetTracker,
	maxPerOwner int,
	metrics *metrics.Metrics,
	log zerolog.Logger,
) *AccountUseCase {
	if maxPerOwner <= 0 {
		maxPerOwner = DefaultMaxAccountsPerOwner
	}
	return &AccountUseCase{
		txManager:    txManager,
		accountRepo:  accountRepo,
		movementRepo: movementRepo,
		outboxRepo:   outboxRepo,
		idGen:        idGen,
		budgets:      budgets,
		retrier:      noRetry{},
		clock:        SystemClock,
		maxPerOwner:  maxPerOwner,
		metrics:      metrics,
		log:          log.With().Str("component", "accounts").Logger(),
	}
}

// WithRetrier retries transactions that fail with serialization or deadlock errors.
func (uc *AccountUseCase) WithRetrier(r Retrier) *AccountUseCase {
	uc.retrier = r
	return uc
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	OwnerID string
	Name    string
	Type    domain.AccountType
}

// CreateAccount creates a new account with a zero balance, subject to the
// per-owner quota.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	now := uc.clock.Now()

	account := &domain.Account{
		ID:        uc.idGen.Generate(),
		OwnerID:   input.OwnerID,
		Name:      input.Name,
		Type:      input.Type,
		Balance:   decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := account.Validate(); err != nil {
		return nil, err
	}

	err := uc.retrier.Retry(ctx, func() error {
		txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
		defer cancel()

		tx, err := uc.txManager.Begin(txCtx)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback(txCtx) }()

		if err := uc.accountRepo.LockOwner(txCtx, tx, input.OwnerID); err != nil {
			return err
		}

		count, err := uc.accountRepo.CountByOwner(txCtx, tx, input.OwnerID)
		if err != nil {
			return err
		}
		if count >= uc.maxPerOwner {
			return domain.ErrAccountQuotaExceeded
		}

		if err := uc.accountRepo.Create(txCtx, tx, account); err != nil {
			return err
		}

		event := &domain.OutboxEvent{
			ID:            uc.idGen.Generate(),
			AggregateID:   account.ID,
			AggregateType: domain.AggregateTypeAccount,
			EventType:     domain.EventTypeAccountCreated,
			Payload: map[string]any{
				"account_id": account.ID,
				"owner_id":   account.OwnerID,
				"name":       account.Name,
				"type":       string(account.Type),
			},
			CreatedAt: now,
		}
		if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
			return err
		}

		return tx.Commit(txCtx)
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.AccountsCreated.Inc()
	}

	return account, nil
}

// GetAccount retrieves one of the owner's accounts.
func (uc *AccountUseCase) GetAccount(ctx context.Context, ownerID, id string) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, ownerID, id)
}

// ListAccountsInput represents input for listing accounts.
type ListAccountsInput struct {
	OwnerID string
	Limit   int
	Offset  int
}

// ListAccounts lists the owner's accounts with pagination.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, input ListAccountsInput) ([]*domain.Account, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)
	return uc.accountRepo.ListByOwner(ctx, input.OwnerID, limit, offset)
}

// DeleteAccount deletes an account and its movements. Transfer legs on other
// accounts that mirror the deleted movements are deleted as well, with their
// balance effect reversed, so every remaining balance still equals the sum of
// its movements. The owner's active budgets are recomputed afterwards.
func (uc *AccountUseCase) DeleteAccount(ctx context.Context, ownerID, id string) error {
	err := uc.retrier.Retry(ctx, func() error {
		txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
		defer cancel()

		tx, err := uc.txManager.Begin(txCtx)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback(txCtx) }()

		locked, err := uc.accountRepo.GetByIDsForUpdate(txCtx, tx, ownerID, []string{id})
		if err != nil {
			return err
		}
		if len(locked) != 1 {
			return domain.ErrAccountNotFound
		}

		siblings, err := uc.mirroredLegs(txCtx, tx, id)
		if err != nil {
			return err
		}

		if len(siblings) > 0 {
			counterparts := make([]string, 0, len(siblings))
			for _, s := range siblings {
				counterparts = append(counterparts, s.AccountID)
			}
			counterparts = uniqueSorted(counterparts)
			others, err := uc.accountRepo.GetByIDsForUpdate(txCtx, tx, ownerID, counterparts)
			if err != nil {
				return err
			}
			if len(others) != len(counterparts) {
				return domain.ErrAccountNotFound
			}
		}

		now := uc.clock.Now()
		for _, s := range siblings {
			if err := uc.movementRepo.Delete(txCtx, tx, s.ID); err != nil {
				return err
			}
			if _, err := uc.accountRepo.AdjustBalance(txCtx, tx, s.AccountID, s.SignedAmount().Neg(), now); err != nil {
				return err
			}
		}

		if err := uc.accountRepo.Delete(txCtx, tx, id); err != nil {
			return err
		}

		event := &domain.OutboxEvent{
			ID:            uc.idGen.Generate(),
			AggregateID:   id,
			AggregateType: domain.AggregateTypeAccount,
			EventType:     domain.EventTypeAccountDeleted,
			Payload: map[string]any{
				"account_id":          id,
				"owner_id":            ownerID,
				"mirrored_legs_count": len(siblings),
			},
			CreatedAt: now,
		}
		if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
			return err
		}

		return tx.Commit(txCtx)
	})
	if err != nil {
		return err
	}

	if uc.metrics != nil {
		uc.metrics.AccountsDeleted.Inc()
	}

	if uc.budgets != nil {
		if err := uc.budgets.RecomputeOwner(context.WithoutCancel(ctx), ownerID); err != nil {
			uc.log.Error().Err(err).Str("owner_id", ownerID).Msg("budget recompute after account deletion failed")
		}
	}
	return nil
}

// mirroredLegs returns the transfer legs on other accounts whose sibling lives
// on accountID.
func (uc *AccountUseCase) mirroredLegs(ctx context.Context, tx Transaction, accountID string) ([]*domain.Movement, error) {
	movements, err := uc.movementRepo.ListByAccount(ctx, tx, accountID)
	if err != nil {
		return nil, err
	}

	seenGroup := make(map[string]bool)
	var out []*domain.Movement
	for _, m := range movements {
		leg, ok := m.Transfer()
		if !ok || seenGroup[leg.TransferID] {
			continue
		}
		seenGroup[leg.TransferID] = true

		legs, err := uc.movementRepo.GetTransferLegs(ctx, tx, leg.TransferID)
		if err != nil {
			return nil, err
		}
		for _, l := range legs {
			if l.AccountID != accountID {
				out = append(out, l)
			}
		}
	}
	return out, nil
}
