package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/budgetledger/internal/domain"
	"github.com/iho/budgetledger/internal/usecase"
)

// MovementRepository implements usecase.MovementRepository.
type MovementRepository struct {
	store *Store
}

// NewMovementRepository creates a new MovementRepository.
func NewMovementRepository(store *Store) *MovementRepository {
	return &MovementRepository{store: store}
}

// Create inserts a movement. The account must exist.
func (r *MovementRepository) Create(_ context.Context, tx usecase.Transaction, movement *domain.Movement) error {
	st, err := txState(tx)
	if err != nil {
		return err
	}
	if _, ok := st.accounts[movement.AccountID]; !ok {
		return domain.ErrAccountNotFound
	}
	if _, exists := st.movements[movement.ID]; exists {
		return domain.ErrConflict
	}
	st.movements[movement.ID] = cloneMovement(movement)
	return nil
}

// GetByID retrieves one of the owner's movements.
func (r *MovementRepository) GetByID(_ context.Context, ownerID, id string) (*domain.Movement, error) {
	var out *domain.Movement
	r.store.read(func(st *state) {
		if m, ok := st.movements[id]; ok && m.OwnerID == ownerID {
			out = cloneMovement(m)
		}
	})
	if out == nil {
		return nil, domain.ErrMovementNotFound
	}
	return out, nil
}

// GetByIDForUpdate retrieves one of the owner's movements inside tx.
func (r *MovementRepository) GetByIDForUpdate(_ context.Context, tx usecase.Transaction, ownerID, id string) (*domain.Movement, error) {
	st, err := txState(tx)
	if err != nil {
		return nil, err
	}
	m, ok := st.movements[id]
	if !ok || m.OwnerID != ownerID {
		return nil, domain.ErrMovementNotFound
	}
	return cloneMovement(m), nil
}

// GetTransferLegs returns every movement of a transfer group, ordered by id.
func (r *MovementRepository) GetTransferLegs(_ context.Context, tx usecase.Transaction, transferID string) ([]*domain.Movement, error) {
	st, err := txState(tx)
	if err != nil {
		return nil, err
	}
	legs := make([]*domain.Movement, 0, 2)
	for _, m := range st.movements {
		if leg, ok := m.Transfer(); ok && leg.TransferID == transferID {
			legs = append(legs, cloneMovement(m))
		}
	}
	sort.Slice(legs, func(i, j int) bool { return legs[i].ID < legs[j].ID })
	return legs, nil
}

// ListByAccount returns every movement posted to an account inside tx.
func (r *MovementRepository) ListByAccount(_ context.Context, tx usecase.Transaction, accountID string) ([]*domain.Movement, error) {
	st, err := txState(tx)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Movement, 0)
	for _, m := range st.movements {
		if m.AccountID == accountID {
			out = append(out, cloneMovement(m))
		}
	}
	sortNewestFirst(out)
	return out, nil
}

// UpdateDetails sets the category and description of a movement.
func (r *MovementRepository) UpdateDetails(_ context.Context, tx usecase.Transaction, id, categoryID, description string) error {
	st, err := txState(tx)
	if err != nil {
		return err
	}
	m, ok := st.movements[id]
	if !ok {
		return domain.ErrMovementNotFound
	}
	m.CategoryID = categoryID
	m.Description = description
	return nil
}

// SetRectifyingID links (or, with nil, unlinks) a movement to its rectification.
func (r *MovementRepository) SetRectifyingID(_ context.Context, tx usecase.Transaction, id string, rectifyingID *string) error {
	st, err := txState(tx)
	if err != nil {
		return err
	}
	m, ok := st.movements[id]
	if !ok {
		return domain.ErrMovementNotFound
	}
	if rectifyingID == nil {
		m.RectifyingMovementID = nil
		return nil
	}
	rid := *rectifyingID
	m.RectifyingMovementID = &rid
	return nil
}

// Delete removes a movement.
func (r *MovementRepository) Delete(_ context.Context, tx usecase.Transaction, id string) error {
	st, err := txState(tx)
	if err != nil {
		return err
	}
	if _, ok := st.movements[id]; !ok {
		return domain.ErrMovementNotFound
	}
	delete(st.movements, id)
	return nil
}

// List returns the movements matching filter, newest first.
func (r *MovementRepository) List(_ context.Context, filter domain.MovementFilter) ([]*domain.Movement, error) {
	desc := strings.ToLower(filter.Description)

	out := make([]*domain.Movement, 0)
	r.store.read(func(st *state) {
		for _, m := range st.movements {
			switch {
			case filter.OwnerID != "" && m.OwnerID != filter.OwnerID,
				filter.AccountID != "" && m.AccountID != filter.AccountID,
				filter.CategoryID != "" && m.CategoryID != filter.CategoryID,
				filter.Kind != "" && m.Kind != filter.Kind,
				desc != "" && !strings.Contains(strings.ToLower(m.Description), desc),
				filter.From != nil && m.OccurredAt.Before(*filter.From),
				filter.To != nil && m.OccurredAt.After(*filter.To):
				continue
			}
			out = append(out, cloneMovement(m))
		}
	})

	sortNewestFirst(out)
	return paginate(out, filter.Limit, filter.Offset), nil
}

// SumBudgetSpend sums the owner's qualifying expenses in categoryID within [from, to].
func (r *MovementRepository) SumBudgetSpend(_ context.Context, ownerID, categoryID string, from, to time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	r.store.read(func(st *state) {
		for _, m := range st.movements {
			if m.OwnerID != ownerID || m.CategoryID != categoryID || !m.CountsTowardBudget() {
				continue
			}
			if m.OccurredAt.Before(from) || m.OccurredAt.After(to) {
				continue
			}
			total = total.Add(m.Amount)
		}
	})
	return total, nil
}

// SumSigned returns the signed sum of the movements posted to an account.
func (r *MovementRepository) SumSigned(_ context.Context, accountID string) (decimal.Decimal, error) {
	total := decimal.Zero
	r.store.read(func(st *state) {
		for _, m := range st.movements {
			if m.AccountID == accountID {
				total = total.Add(m.SignedAmount())
			}
		}
	})
	return total, nil
}

func sortNewestFirst(ms []*domain.Movement) {
	sort.Slice(ms, func(i, j int) bool {
		if !ms[i].OccurredAt.Equal(ms[j].OccurredAt) {
			return ms[i].OccurredAt.After(ms[j].OccurredAt)
		}
		return ms[i].ID > ms[j].ID
	})
}
