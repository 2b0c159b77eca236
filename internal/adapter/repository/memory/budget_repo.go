package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/budgetledger/internal/domain"
	"github.com/iho/budgetledger/internal/usecase"
)

// BudgetRepository implements usecase.BudgetRepository.
type BudgetRepository struct {
	store *Store
}

// NewBudgetRepository creates a new BudgetRepository.
func NewBudgetRepository(store *Store) *BudgetRepository {
	return &BudgetRepository{store: store}
}

// Create inserts a budget. At most one active budget may exist per owner and category.
func (r *BudgetRepository) Create(_ context.Context, tx usecase.Transaction, budget *domain.Budget) error {
	st, err := txState(tx)
	if err != nil {
		return err
	}
	if budget.Active {
		for _, b := range st.budgets {
			if b.Active && b.OwnerID == budget.OwnerID && b.CategoryID == budget.CategoryID {
				return domain.ErrBudgetActiveExists
			}
		}
	}
	st.budgets[budget.ID] = cloneBudget(budget)
	return nil
}

// GetByID retrieves one of the owner's budgets.
func (r *BudgetRepository) GetByID(_ context.Context, ownerID, id string) (*domain.Budget, error) {
	var out *domain.Budget
	r.store.read(func(st *state) {
		if b, ok := st.budgets[id]; ok && b.OwnerID == ownerID {
			out = cloneBudget(b)
		}
	})
	if out == nil {
		return nil, domain.ErrBudgetNotFound
	}
	return out, nil
}

// GetByIDAny retrieves a budget regardless of owner.
func (r *BudgetRepository) GetByIDAny(_ context.Context, id string) (*domain.Budget, error) {
	var out *domain.Budget
	r.store.read(func(st *state) {
		if b, ok := st.budgets[id]; ok {
			out = cloneBudget(b)
		}
	})
	if out == nil {
		return nil, domain.ErrBudgetNotFound
	}
	return out, nil
}

// GetActiveByCategory returns the active budget of owner/category.
func (r *BudgetRepository) GetActiveByCategory(_ context.Context, ownerID, categoryID string) (*domain.Budget, error) {
	var out *domain.Budget
	r.store.read(func(st *state) {
		for _, b := range st.budgets {
			if b.Active && b.OwnerID == ownerID && b.CategoryID == categoryID {
				out = cloneBudget(b)
				return
			}
		}
	})
	if out == nil {
		return nil, domain.ErrBudgetNotFound
	}
	return out, nil
}

// ListByOwner lists the owner's budgets, oldest first.
func (r *BudgetRepository) ListByOwner(_ context.Context, ownerID string, activeOnly bool, limit, offset int) ([]*domain.Budget, error) {
	var out []*domain.Budget
	r.store.read(func(st *state) {
		out = listBudgets(st, func(b *domain.Budget) bool {
			return b.OwnerID == ownerID && (!activeOnly || b.Active)
		})
	})
	return paginate(out, limit, offset), nil
}

// ListActive lists every active budget.
func (r *BudgetRepository) ListActive(_ context.Context, limit, offset int) ([]*domain.Budget, error) {
	var out []*domain.Budget
	r.store.read(func(st *state) {
		out = listBudgets(st, func(b *domain.Budget) bool { return b.Active })
	})
	return paginate(out, limit, offset), nil
}

// UpdateProgress stores a recomputed progress value.
func (r *BudgetRepository) UpdateProgress(_ context.Context, id string, progress decimal.Decimal, updatedAt time.Time) error {
	return r.store.write(func(st *state) error {
		b, ok := st.budgets[id]
		if !ok {
			return domain.ErrBudgetNotFound
		}
		b.Progress = progress
		b.UpdatedAt = updatedAt
		return nil
	})
}

// Deactivate marks a budget inactive.
func (r *BudgetRepository) Deactivate(_ context.Context, id string, updatedAt time.Time) error {
	return r.store.write(func(st *state) error {
		b, ok := st.budgets[id]
		if !ok {
			return domain.ErrBudgetNotFound
		}
		b.Active = false
		b.UpdatedAt = updatedAt
		return nil
	})
}

// Delete removes one of the owner's budgets.
func (r *BudgetRepository) Delete(_ context.Context, ownerID, id string) error {
	return r.store.write(func(st *state) error {
		b, ok := st.budgets[id]
		if !ok || b.OwnerID != ownerID {
			return domain.ErrBudgetNotFound
		}
		delete(st.budgets, id)
		return nil
	})
}

func listBudgets(st *state, keep func(*domain.Budget) bool) []*domain.Budget {
	out := make([]*domain.Budget, 0)
	for _, b := range st.budgets {
		if keep(b) {
			out = append(out, cloneBudget(b))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
