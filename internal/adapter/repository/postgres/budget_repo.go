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

// BudgetRepository implements usecase.BudgetRepository. A partial unique index
// keeps at most one active budget per owner and category.
type BudgetRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewBudgetRepository creates a new BudgetRepository.
func NewBudgetRepository(pool *pgxpool.Pool) *BudgetRepository {
	return &BudgetRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create inserts a budget.
func (r *BudgetRepository) Create(ctx context.Context, tx usecase.Transaction, b *domain.Budget) error {
	q, err := queriesFor(tx)
	if err != nil {
		return err
	}

	err = q.CreateBudget(ctx, generated.CreateBudgetParams{
		ID:          b.ID,
		OwnerID:     b.OwnerID,
		CategoryID:  b.CategoryID,
		LimitAmount: decimalToNumeric(b.Limit),
		StartDate:   dateToPgDate(b.StartDate),
		EndDate:     dateToPgDate(b.EndDate),
		Active:      b.Active,
		Progress:    decimalToNumeric(b.Progress),
		CreatedAt:   timeToPgTimestamptz(b.CreatedAt),
		UpdatedAt:   timeToPgTimestamptz(b.UpdatedAt),
	})
	return mapError("create budget", err, nil)
}

// GetByID retrieves one of the owner's budgets.
func (r *BudgetRepository) GetByID(ctx context.Context, ownerID, id string) (*domain.Budget, error) {
	row, err := r.queries.GetBudgetByOwner(ctx, generated.GetBudgetByOwnerParams{ID: id, OwnerID: ownerID})
	if err != nil {
		return nil, mapError("get budget", err, domain.ErrBudgetNotFound)
	}
	return rowToBudget(row), nil
}

// GetByIDAny retrieves a budget regardless of owner.
func (r *BudgetRepository) GetByIDAny(ctx context.Context, id string) (*domain.Budget, error) {
	row, err := r.queries.GetBudgetByID(ctx, id)
	if err != nil {
		return nil, mapError("get budget", err, domain.ErrBudgetNotFound)
	}
	return rowToBudget(row), nil
}

// GetActiveByCategory returns the active budget of owner/category.
func (r *BudgetRepository) GetActiveByCategory(ctx context.Context, ownerID, categoryID string) (*domain.Budget, error) {
	row, err := r.queries.GetActiveBudgetByCategory(ctx, generated.GetActiveBudgetByCategoryParams{
		OwnerID:    ownerID,
		CategoryID: categoryID,
	})
	if err != nil {
		return nil, mapError("get active budget", err, domain.ErrBudgetNotFound)
	}
	return rowToBudget(row), nil
}

// ListByOwner lists the owner's budgets, oldest first.
func (r *BudgetRepository) ListByOwner(ctx context.Context, ownerID string, activeOnly bool, limit, offset int) ([]*domain.Budget, error) {
	rows, err := r.queries.ListBudgetsByOwner(ctx, generated.ListBudgetsByOwnerParams{
		OwnerID:    ownerID,
		ActiveOnly: activeOnly,
		Lim:        int32(limit),
		Off:        int32(offset),
	})
	if err != nil {
		return nil, mapError("list budgets", err, nil)
	}
	return rowsToBudgets(rows), nil
}

// ListActive lists every active budget.
func (r *BudgetRepository) ListActive(ctx context.Context, limit, offset int) ([]*domain.Budget, error) {
	rows, err := r.queries.ListActiveBudgets(ctx, generated.ListActiveBudgetsParams{
		Limit:  int32(limit),
		Offset: int32(offset),
	})
	if err != nil {
		return nil, mapError("list active budgets", err, nil)
	}
	return rowsToBudgets(rows), nil
}

// UpdateProgress stores a recomputed progress. Inactive budgets are left as they are.
func (r *BudgetRepository) UpdateProgress(ctx context.Context, id string, progress decimal.Decimal, updatedAt time.Time) error {
	err := r.queries.UpdateBudgetProgress(ctx, generated.UpdateBudgetProgressParams{
		ID:        id,
		Progress:  decimalToNumeric(progress),
		UpdatedAt: timeToPgTimestamptz(updatedAt),
	})
	return mapError("update budget progress", err, nil)
}

// Deactivate marks a budget inactive.
func (r *BudgetRepository) Deactivate(ctx context.Context, id string, updatedAt time.Time) error {
	err := r.queries.DeactivateBudget(ctx, generated.DeactivateBudgetParams{
		ID:        id,
		UpdatedAt: timeToPgTimestamptz(updatedAt),
	})
	return mapError("deactivate budget", err, nil)
}

// Delete removes one of the owner's budgets.
func (r *BudgetRepository) Delete(ctx context.Context, ownerID, id string) error {
	n, err := r.queries.DeleteBudget(ctx, generated.DeleteBudgetParams{ID: id, OwnerID: ownerID})
	return rowsAffected("delete budget", n, err, domain.ErrBudgetNotFound)
}

func rowToBudget(row generated.Budget) *domain.Budget {
	return &domain.Budget{
		ID:         row.ID,
		OwnerID:    row.OwnerID,
		CategoryID: row.CategoryID,
		Limit:      numericToDecimal(row.LimitAmount),
		StartDate:  pgDateToDate(row.StartDate),
		EndDate:    pgDateToDate(row.EndDate),
		Active:     row.Active,
		Progress:   numericToDecimal(row.Progress),
		CreatedAt:  row.CreatedAt.Time,
		UpdatedAt:  row.UpdatedAt.Time,
	}
}

func rowsToBudgets(rows []generated.Budget) []*domain.Budget {
	out := make([]*domain.Budget, 0, len(rows))
	for _, row := range rows {
		out = append(out, rowToBudget(row))
	}
	return out
}
