package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/budgetledger/internal/domain"
	"github.com/iho/budgetledger/internal/infrastructure/postgres/generated"
	"github.com/iho/budgetledger/internal/usecase"
)

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create creates a new account.
func (r *AccountRepository) Create(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	q, err := queriesFor(tx)
	if err != nil {
		return err
	}

	err = q.CreateAccount(ctx, generated.CreateAccountParams{
		ID:        account.ID,
		OwnerID:   account.OwnerID,
		Name:      account.Name,
		Type:      string(account.Type),
		Balance:   decimalToNumeric(account.Balance),
		CreatedAt: timeToPgTimestamptz(account.CreatedAt),
		UpdatedAt: timeToPgTimestamptz(account.UpdatedAt),
	})
	return mapError("create account", err, nil)
}

// GetByID retrieves one of the owner's accounts.
func (r *AccountRepository) GetByID(ctx context.Context, ownerID, id string) (*domain.Account, error) {
	row, err := r.queries.GetAccountByOwner(ctx, generated.GetAccountByOwnerParams{ID: id, OwnerID: ownerID})
	if err != nil {
		return nil, mapError("get account", err, domain.ErrAccountNotFound)
	}

	return rowToAccount(row), nil
}

// GetByIDsForUpdate locks the owner's accounts among ids in id order, which
// keeps lock acquisition deadlock-free. Ids of other owners are skipped.
func (r *AccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ownerID string, ids []string) ([]*domain.Account, error) {
	q, err := queriesFor(tx)
	if err != nil {
		return nil, err
	}

	rows, err := q.GetAccountsByIDsForUpdate(ctx, generated.GetAccountsByIDsForUpdateParams{
		OwnerID: ownerID,
		Ids:     ids,
	})
	if err != nil {
		return nil, mapError("lock accounts", err, nil)
	}

	accounts := make([]*domain.Account, 0, len(rows))
	for _, row := range rows {
		accounts = append(accounts, rowToAccount(row))
	}

	return accounts, nil
}

// LockOwner takes a transaction-scoped advisory lock on the owner.
func (r *AccountRepository) LockOwner(ctx context.Context, tx usecase.Transaction, ownerID string) error {
	q, err := queriesFor(tx)
	if err != nil {
		return err
	}
	return mapError("lock owner", q.LockOwner(ctx, ownerID), nil)
}

// CountByOwner counts the owner's accounts.
func (r *AccountRepository) CountByOwner(ctx context.Context, tx usecase.Transaction, ownerID string) (int, error) {
	q, err := queriesFor(tx)
	if err != nil {
		return 0, err
	}

	n, err := q.CountAccountsByOwner(ctx, ownerID)
	if err != nil {
		return 0, mapError("count accounts", err, nil)
	}
	return int(n), nil
}

// AdjustBalance adds delta to the stored balance in a single UPDATE.
func (r *AccountRepository) AdjustBalance(ctx context.Context, tx usecase.Transaction, id string, delta decimal.Decimal, updatedAt time.Time) (decimal.Decimal, error) {
	q, err := queriesFor(tx)
	if err != nil {
		return decimal.Zero, err
	}

	balance, err := q.AdjustAccountBalance(ctx, generated.AdjustAccountBalanceParams{
		Delta:     decimalToNumeric(delta),
		UpdatedAt: timeToPgTimestamptz(updatedAt),
		ID:        id,
	})
	if err != nil {
		return decimal.Zero, mapError("adjust balance", err, domain.ErrAccountNotFound)
	}
	return numericToDecimal(balance), nil
}

// Delete removes an account; its movements go with it through the foreign key.
func (r *AccountRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	q, err := queriesFor(tx)
	if err != nil {
		return err
	}

	n, err := q.DeleteAccount(ctx, id)
	if err != nil {
		return mapError("delete account", err, nil)
	}
	if n == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// ListByOwner lists the owner's accounts, oldest first.
func (r *AccountRepository) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Account, error) {
	rows, err := r.queries.ListAccountsByOwner(ctx, generated.ListAccountsByOwnerParams{
		OwnerID: ownerID,
		Limit:   int32(limit),
		Offset:  int32(offset),
	})
	if err != nil {
		return nil, mapError("list accounts", err, nil)
	}

	accounts := make([]*domain.Account, 0, len(rows))
	for _, row := range rows {
		accounts = append(accounts, rowToAccount(row))
	}

	return accounts, nil
}

// List lists every account with pagination.
func (r *AccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	rows, err := r.queries.ListAccounts(ctx, generated.ListAccountsParams{
		Limit:  int32(limit),
		Offset: int32(offset),
	})
	if err != nil {
		return nil, mapError("list accounts", err, nil)
	}

	accounts := make([]*domain.Account, 0, len(rows))
	for _, row := range rows {
		accounts = append(accounts, rowToAccount(row))
	}

	return accounts, nil
}

func rowToAccount(row generated.Account) *domain.Account {
	return &domain.Account{
		ID:        row.ID,
		OwnerID:   row.OwnerID,
		Name:      row.Name,
		Type:      domain.AccountType(row.Type),
		Balance:   numericToDecimal(row.Balance),
		CreatedAt: row.CreatedAt.Time,
		UpdatedAt: row.UpdatedAt.Time,
	}
}
