package memory

import (
	"context"

	"github.com/shopspring/decimal"
)

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	store *Store
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(store *Store) *LedgerRepository {
	return &LedgerRepository{store: store}
}

// CheckConsistency returns the sum of all balances and the signed sum of all movements.
func (r *LedgerRepository) CheckConsistency(_ context.Context) (decimal.Decimal, decimal.Decimal, error) {
	totalBalance, totalSigned := decimal.Zero, decimal.Zero
	r.store.read(func(st *state) {
		for _, a := range st.accounts {
			totalBalance = totalBalance.Add(a.Balance)
		}
		for _, m := range st.movements {
			totalSigned = totalSigned.Add(m.SignedAmount())
		}
	})
	return totalBalance, totalSigned, nil
}
