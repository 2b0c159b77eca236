package usecase

import (
	"context"
	"time"

	"github.com/iho/budgetledger/internal/domain"
)

// Rectify posts a reversal of a movement: same account, amount and category with
// the kind flipped. The original stays in place, linked to its rectification;
// both affect the balance (net zero) and neither counts toward a budget. A
// transfer leg is rectified together with its sibling so the reversal is
// mirrored too. The first returned movement reverses the requested one.
func (uc *LedgerUseCase) Rectify(ctx context.Context, ownerID, movementID string) (*domain.Movement, error) {
	start := time.Now()

	var (
		rectification *domain.Movement
		touches       []budgetTouch
		posted        int
	)
	err := uc.inTx(ctx, func(ctx context.Context, tx Transaction) error {
		rectification, touches, posted = nil, nil, 0

		m, err := uc.movementRepo.GetByIDForUpdate(ctx, tx, ownerID, movementID)
		if err != nil {
			return err
		}

		originals, err := uc.rectifiable(ctx, tx, m)
		if err != nil {
			return err
		}

		if _, err := uc.lockAccounts(ctx, tx, ownerID, accountIDs(originals)...); err != nil {
			return err
		}

		now := uc.clock.Now()
		var reversalTransferID string
		if len(originals) > 1 {
			reversalTransferID = uc.idGen.Generate()
		}

		for i, original := range originals {
			r := uc.reversalOf(original, reversalTransferID, now)
			if err := r.Validate(); err != nil {
				return err
			}

			if err := uc.writeMovement(ctx, tx, r, now); err != nil {
				return err
			}
			if err := uc.movementRepo.SetRectifyingID(ctx, tx, original.ID, &r.ID); err != nil {
				return err
			}
			if err := uc.emit(ctx, tx, r, domain.AggregateTypeMovement, domain.EventTypeMovementRectified, now); err != nil {
				return err
			}

			original.RectifyingMovementID = &r.ID
			touches = append(touches, touchOf(original))
			posted++
			if i == 0 {
				rectification = r
			}
		}
		return nil
	})
	uc.observe("rectify", start, err)
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.Rectifications.Add(float64(posted))
	}

	uc.afterCommit(ctx, ownerID, touches...)
	return rectification, nil
}

// rectifiable checks the rectification preconditions on m and returns the
// movements to reverse: m itself, followed by its sibling leg for transfers.
func (uc *LedgerUseCase) rectifiable(ctx context.Context, tx Transaction, m *domain.Movement) ([]*domain.Movement, error) {
	if m.IsRectification() {
		return nil, domain.ErrRectifyRectification
	}
	if m.IsRectified() {
		return nil, domain.ErrAlreadyRectified
	}

	group, err := uc.collectGroup(ctx, tx, m)
	if err != nil {
		return nil, err
	}
	if _, isTransfer := m.Transfer(); isTransfer && len(group) != 2 {
		return nil, domain.ErrTransferLegMissing
	}
	for _, g := range group[1:] {
		if g.IsRectified() {
			return nil, domain.ErrAlreadyRectified
		}
	}
	return group, nil
}

func (uc *LedgerUseCase) reversalOf(original *domain.Movement, transferID string, now time.Time) *domain.Movement {
	link := domain.Rectification{OriginalMovementID: original.ID}
	if leg, ok := original.Transfer(); ok && transferID != "" {
		link.Transfer = &domain.TransferLeg{
			TransferID:           transferID,
			CounterpartAccountID: leg.CounterpartAccountID,
		}
	}

	return &domain.Movement{
		ID:          uc.idGen.Generate(),
		OwnerID:     original.OwnerID,
		AccountID:   original.AccountID,
		Kind:        original.Kind.Opposite(),
		Amount:      original.Amount,
		CategoryID:  original.CategoryID,
		Description: original.Description,
		OccurredAt:  now,
		CreatedAt:   now,
		Link:        link,
	}
}
