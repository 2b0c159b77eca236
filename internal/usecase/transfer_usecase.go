package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/budgetledger/internal/domain"
)

// postTransfer posts an expense leg on the source account and a mirrored income
// leg on the counterpart. Both legs and both balance increments share one
// transaction; if the mirrored leg fails the transaction is rolled back and a
// PartialFailureError reports whether the rollback succeeded.
func (uc *LedgerUseCase) postTransfer(ctx context.Context, input PostMovementInput) (*domain.Movement, error) {
	counterpartID := *input.CounterpartAccountID

	// Validate inputs before starting transaction
	if input.CategoryID != domain.CategoryTransferOut {
		return nil, domain.ErrCounterpartNotAllowed
	}
	if input.Kind != domain.KindExpense {
		return nil, domain.ErrTransferKind
	}
	if counterpartID == input.AccountID {
		return nil, domain.ErrSameAccount
	}

	now := uc.clock.Now()
	at := occurredAt(input.OccurredAt, now)

	// Ids are fixed before the first attempt so a retried transaction writes
	// the same transfer.
	transferID := uc.idGen.Generate()
	outLeg := uc.newLeg(input, transferID, input.AccountID, counterpartID, domain.KindExpense, domain.CategoryTransferOut, at, now)
	inLeg := uc.newLeg(input, transferID, counterpartID, input.AccountID, domain.KindIncome, domain.CategoryTransferReceived, at, now)
	if err := outLeg.Validate(); err != nil {
		return nil, err
	}
	if err := inLeg.Validate(); err != nil {
		return nil, err
	}
	eventID := uc.idGen.Generate()

	var out *domain.Movement
	err := uc.retrier.Retry(ctx, func() error {
		out = nil

		txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
		defer cancel()

		tx, err := uc.txManager.Begin(txCtx)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback(txCtx) }()

		if _, err := uc.lockAccounts(txCtx, tx, input.OwnerID, input.AccountID, counterpartID); err != nil {
			return err
		}

		if err := uc.writeMovement(txCtx, tx, outLeg, now); err != nil {
			return err
		}
		if err := uc.writeMovement(txCtx, tx, inLeg, now); err != nil {
			return uc.compensateTransfer(txCtx, tx, transferID, err)
		}

		event := &domain.OutboxEvent{
			ID:            eventID,
			AggregateID:   transferID,
			AggregateType: domain.AggregateTypeTransfer,
			EventType:     domain.EventTypeTransferPosted,
			Payload: map[string]any{
				"transfer_id":     transferID,
				"owner_id":        input.OwnerID,
				"from_account_id": input.AccountID,
				"to_account_id":   counterpartID,
				"out_movement_id": outLeg.ID,
				"in_movement_id":  inLeg.ID,
				"amount":          input.Amount.String(),
				"occurred_at":     at.Format(time.RFC3339Nano),
			},
			CreatedAt: now,
		}
		if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
			return err
		}

		if err := tx.Commit(txCtx); err != nil {
			return err
		}

		out = outLeg
		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.TransfersMirrored.Inc()
		uc.metrics.MovementsPosted.WithLabelValues(string(domain.KindExpense)).Inc()
		uc.metrics.MovementsPosted.WithLabelValues(string(domain.KindIncome)).Inc()
		uc.metrics.MovementAmount.Observe(out.Amount.InexactFloat64())
	}

	return out, nil
}

func (uc *LedgerUseCase) newLeg(
	input PostMovementInput,
	transferID, accountID, counterpartID string,
	kind domain.MovementKind,
	categoryID string,
	at, now time.Time,
) *domain.Movement {
	return &domain.Movement{
		ID:          uc.idGen.Generate(),
		OwnerID:     input.OwnerID,
		AccountID:   accountID,
		Kind:        kind,
		Amount:      input.Amount,
		CategoryID:  categoryID,
		Description: input.Description,
		OccurredAt:  at,
		CreatedAt:   now,
		Link:        domain.TransferLeg{TransferID: transferID, CounterpartAccountID: counterpartID},
	}
}

// compensateTransfer rolls back a transfer whose mirrored leg failed. A failed
// rollback leaves the store needing manual reconciliation and is logged at the
// highest severity without stopping the process.
func (uc *LedgerUseCase) compensateTransfer(ctx context.Context, tx Transaction, transferID string, cause error) error {
	if rbErr := tx.Rollback(ctx); rbErr != nil {
		uc.log.WithLevel(zerolog.FatalLevel).
			Err(rbErr).
			AnErr("cause", cause).
			Str("transfer_id", transferID).
			Msg("transfer rollback failed, ledger needs manual reconciliation")
		if uc.metrics != nil {
			uc.metrics.TransferRollbacks.WithLabelValues("failed").Inc()
		}
		return &domain.PartialFailureError{Op: "transfer", RolledBack: false, Err: errors.Join(cause, rbErr)}
	}

	uc.log.Warn().
		Err(cause).
		Str("transfer_id", transferID).
		Msg("mirrored transfer leg failed, transfer rolled back")
	if uc.metrics != nil {
		uc.metrics.TransferRollbacks.WithLabelValues("rolled_back").Inc()
	}
	return &domain.PartialFailureError{Op: "transfer", RolledBack: true, Err: cause}
}
