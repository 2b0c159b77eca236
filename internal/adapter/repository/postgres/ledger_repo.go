package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/budgetledger/internal/infrastructure/postgres/generated"
)

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	queries *generated.Queries
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{queries: generated.New(pool)}
}

// CheckConsistency returns the sum of all balances and the signed sum of all movements.
func (r *LedgerRepository) CheckConsistency(ctx context.Context) (totalBalance, totalSigned decimal.Decimal, err error) {
	result, err := r.queries.CheckLedgerConsistency(ctx)
	if err != nil {
		return decimal.Zero, decimal.Zero, mapError("check ledger consistency", err, nil)
	}

	return numericToDecimal(result.TotalBalance), numericToDecimal(result.TotalSigned), nil
}
