package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/budgetledger/internal/domain"
	"github.com/iho/budgetledger/internal/usecase"
)

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	store *Store
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(store *Store) *AccountRepository {
	return &AccountRepository{store: store}
}

// Create inserts a new account.
func (r *AccountRepository) Create(_ context.Context, tx usecase.Transaction, account *domain.Account) error {
	st, err := txState(tx)
	if err != nil {
		return err
	}
	if _, exists := st.accounts[account.ID]; exists {
		return domain.ErrConflict
	}
	st.accounts[account.ID] = cloneAccount(account)
	return nil
}

// GetByID retrieves one of the owner's accounts.
func (r *AccountRepository) GetByID(_ context.Context, ownerID, id string) (*domain.Account, error) {
	var out *domain.Account
	r.store.read(func(st *state) {
		if a, ok := st.accounts[id]; ok && a.OwnedBy(ownerID) {
			out = cloneAccount(a)
		}
	})
	if out == nil {
		return nil, domain.ErrAccountNotFound
	}
	return out, nil
}

// GetByIDsForUpdate returns the owner's accounts among ids, sorted by id.
// Missing or foreign ids are skipped.
func (r *AccountRepository) GetByIDsForUpdate(_ context.Context, tx usecase.Transaction, ownerID string, ids []string) ([]*domain.Account, error) {
	st, err := txState(tx)
	if err != nil {
		return nil, err
	}

	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)

	accounts := make([]*domain.Account, 0, len(sorted))
	for _, id := range sorted {
		if a, ok := st.accounts[id]; ok && a.OwnedBy(ownerID) {
			accounts = append(accounts, cloneAccount(a))
		}
	}
	return accounts, nil
}

// LockOwner is a no-op: transactions on the store are already serialized.
func (r *AccountRepository) LockOwner(_ context.Context, tx usecase.Transaction, _ string) error {
	_, err := txState(tx)
	return err
}

// CountByOwner counts the owner's accounts.
func (r *AccountRepository) CountByOwner(_ context.Context, tx usecase.Transaction, ownerID string) (int, error) {
	st, err := txState(tx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, a := range st.accounts {
		if a.OwnerID == ownerID {
			n++
		}
	}
	return n, nil
}

// AdjustBalance adds delta to the account balance.
func (r *AccountRepository) AdjustBalance(_ context.Context, tx usecase.Transaction, id string, delta decimal.Decimal, updatedAt time.Time) (decimal.Decimal, error) {
	st, err := txState(tx)
	if err != nil {
		return decimal.Zero, err
	}
	a, ok := st.accounts[id]
	if !ok {
		return decimal.Zero, domain.ErrAccountNotFound
	}
	a.Balance = a.Balance.Add(delta)
	a.UpdatedAt = updatedAt
	return a.Balance, nil
}

// Delete removes an account together with its movements.
func (r *AccountRepository) Delete(_ context.Context, tx usecase.Transaction, id string) error {
	st, err := txState(tx)
	if err != nil {
		return err
	}
	if _, ok := st.accounts[id]; !ok {
		return domain.ErrAccountNotFound
	}
	delete(st.accounts, id)
	for mid, m := range st.movements {
		if m.AccountID == id {
			delete(st.movements, mid)
		}
	}
	return nil
}

// ListByOwner lists the owner's accounts, oldest first.
func (r *AccountRepository) ListByOwner(_ context.Context, ownerID string, limit, offset int) ([]*domain.Account, error) {
	var out []*domain.Account
	r.store.read(func(st *state) {
		out = listAccounts(st, func(a *domain.Account) bool { return a.OwnerID == ownerID })
	})
	return paginate(out, limit, offset), nil
}

// List lists every account, oldest first.
func (r *AccountRepository) List(_ context.Context, limit, offset int) ([]*domain.Account, error) {
	var out []*domain.Account
	r.store.read(func(st *state) {
		out = listAccounts(st, func(*domain.Account) bool { return true })
	})
	return paginate(out, limit, offset), nil
}

func listAccounts(st *state, keep func(*domain.Account) bool) []*domain.Account {
	out := make([]*domain.Account, 0)
	for _, a := range st.accounts {
		if keep(a) {
			out = append(out, cloneAccount(a))
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

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
