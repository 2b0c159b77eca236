package postgres

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/budgetledger/internal/domain"
	"github.com/iho/budgetledger/internal/infrastructure/postgres/generated"
	"github.com/iho/budgetledger/internal/usecase"
)

// MovementRepository implements usecase.MovementRepository.
type MovementRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewMovementRepository creates a new MovementRepository.
func NewMovementRepository(pool *pgxpool.Pool) *MovementRepository {
	return &MovementRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create inserts a movement. The account must exist.
func (r *MovementRepository) Create(ctx context.Context, tx usecase.Transaction, m *domain.Movement) error {
	q, err := queriesFor(tx)
	if err != nil {
		return err
	}

	transferID, counterpartID, originalID := m.LinkColumns()
	err = q.CreateMovement(ctx, generated.CreateMovementParams{
		ID:                   m.ID,
		OwnerID:              m.OwnerID,
		AccountID:            m.AccountID,
		Kind:                 string(m.Kind),
		Amount:               decimalToNumeric(m.Amount),
		CategoryID:           m.CategoryID,
		Description:          m.Description,
		OccurredAt:           timeToPgTimestamptz(m.OccurredAt),
		CreatedAt:            timeToPgTimestamptz(m.CreatedAt),
		TransferID:           transferID,
		CounterpartAccountID: counterpartID,
		OriginalMovementID:   originalID,
		RectifyingMovementID: m.RectifyingMovementID,
	})
	return mapError("insert movement", err, nil)
}

// GetByID retrieves one of the owner's movements.
func (r *MovementRepository) GetByID(ctx context.Context, ownerID, id string) (*domain.Movement, error) {
	row, err := r.queries.GetMovementByOwner(ctx, generated.GetMovementByOwnerParams{ID: id, OwnerID: ownerID})
	if err != nil {
		return nil, mapError("get movement", err, domain.ErrMovementNotFound)
	}
	return rowToMovement(row), nil
}

// GetByIDForUpdate retrieves one of the owner's movements with a row lock.
func (r *MovementRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, ownerID, id string) (*domain.Movement, error) {
	q, err := queriesFor(tx)
	if err != nil {
		return nil, err
	}

	row, err := q.GetMovementByOwnerForUpdate(ctx, generated.GetMovementByOwnerForUpdateParams{ID: id, OwnerID: ownerID})
	if err != nil {
		return nil, mapError("lock movement", err, domain.ErrMovementNotFound)
	}
	return rowToMovement(row), nil
}

// GetTransferLegs locks and returns every movement of a transfer group.
func (r *MovementRepository) GetTransferLegs(ctx context.Context, tx usecase.Transaction, transferID string) ([]*domain.Movement, error) {
	q, err := queriesFor(tx)
	if err != nil {
		return nil, err
	}

	rows, err := q.GetTransferLegs(ctx, &transferID)
	if err != nil {
		return nil, mapError("get transfer legs", err, nil)
	}
	return rowsToMovements(rows), nil
}

// ListByAccount returns every movement posted to an account.
func (r *MovementRepository) ListByAccount(ctx context.Context, tx usecase.Transaction, accountID string) ([]*domain.Movement, error) {
	q, err := queriesFor(tx)
	if err != nil {
		return nil, err
	}

	rows, err := q.ListMovementsByAccount(ctx, accountID)
	if err != nil {
		return nil, mapError("list account movements", err, nil)
	}
	return rowsToMovements(rows), nil
}

// UpdateDetails rewrites the editable fields of a movement.
func (r *MovementRepository) UpdateDetails(ctx context.Context, tx usecase.Transaction, id, categoryID, description string) error {
	q, err := queriesFor(tx)
	if err != nil {
		return err
	}

	n, err := q.UpdateMovementDetails(ctx, generated.UpdateMovementDetailsParams{
		ID:          id,
		CategoryID:  categoryID,
		Description: description,
	})
	return rowsAffected("update movement", n, err, domain.ErrMovementNotFound)
}

// SetRectifyingID links (or, with nil, unlinks) a movement to its rectification.
func (r *MovementRepository) SetRectifyingID(ctx context.Context, tx usecase.Transaction, id string, rectifyingID *string) error {
	q, err := queriesFor(tx)
	if err != nil {
		return err
	}

	n, err := q.SetRectifyingMovement(ctx, generated.SetRectifyingMovementParams{
		ID:                   id,
		RectifyingMovementID: rectifyingID,
	})
	return rowsAffected("set rectifying movement", n, err, domain.ErrMovementNotFound)
}

// Delete removes a movement.
func (r *MovementRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	q, err := queriesFor(tx)
	if err != nil {
		return err
	}

	n, err := q.DeleteMovement(ctx, id)
	return rowsAffected("delete movement", n, err, domain.ErrMovementNotFound)
}

// List returns the owner's movements matching filter, newest first.
func (r *MovementRepository) List(ctx context.Context, filter domain.MovementFilter) ([]*domain.Movement, error) {
	params := generated.ListMovementsParams{
		OwnerID:      filter.OwnerID,
		AccountID:    optionalString(filter.AccountID),
		CategoryID:   optionalString(filter.CategoryID),
		Kind:         optionalString(string(filter.Kind)),
		Description:  optionalString(escapeLike(filter.Description)),
		OccurredFrom: optionalTimestamptz(filter.From),
		OccurredTo:   optionalTimestamptz(filter.To),
		Lim:          int32(filter.Limit),
		Off:          int32(filter.Offset),
	}

	rows, err := r.queries.ListMovements(ctx, params)
	if err != nil {
		return nil, mapError("list movements", err, nil)
	}
	return rowsToMovements(rows), nil
}

// SumBudgetSpend sums the qualifying expenses of owner/category in [from, to].
func (r *MovementRepository) SumBudgetSpend(ctx context.Context, ownerID, categoryID string, from, to time.Time) (decimal.Decimal, error) {
	spend, err := r.queries.SumBudgetSpend(ctx, generated.SumBudgetSpendParams{
		OwnerID:      ownerID,
		CategoryID:   categoryID,
		OccurredFrom: timeToPgTimestamptz(from),
		OccurredTo:   timeToPgTimestamptz(to),
	})
	if err != nil {
		return decimal.Zero, mapError("sum budget spend", err, nil)
	}
	return numericToDecimal(spend), nil
}

// SumSigned returns the signed sum of the movements of an account.
func (r *MovementRepository) SumSigned(ctx context.Context, accountID string) (decimal.Decimal, error) {
	total, err := r.queries.SumSignedByAccount(ctx, accountID)
	if err != nil {
		return decimal.Zero, mapError("sum account movements", err, nil)
	}
	return numericToDecimal(total), nil
}

func rowToMovement(row generated.Movement) *domain.Movement {
	return &domain.Movement{
		ID:                   row.ID,
		OwnerID:              row.OwnerID,
		AccountID:            row.AccountID,
		Kind:                 domain.MovementKind(row.Kind),
		Amount:               numericToDecimal(row.Amount),
		CategoryID:           row.CategoryID,
		Description:          row.Description,
		OccurredAt:           row.OccurredAt.Time,
		CreatedAt:            row.CreatedAt.Time,
		Link:                 domain.LinkFromColumns(row.TransferID, row.CounterpartAccountID, row.OriginalMovementID),
		RectifyingMovementID: row.RectifyingMovementID,
	}
}

func rowsToMovements(rows []generated.Movement) []*domain.Movement {
	out := make([]*domain.Movement, 0, len(rows))
	for _, row := range rows {
		out = append(out, rowToMovement(row))
	}
	return out
}

func rowsAffected(op string, n int64, err error, notFound error) error {
	if err != nil {
		return mapError(op, err, nil)
	}
	if n == 0 {
		return notFound
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside an ILIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
