package postgres

import (
	"context"
	"errors"
	"net"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/iho/budgetledger/internal/domain"
)

// PostgreSQL error codes.
const (
	pgErrDeadlock             = "40P01"
	pgErrSerializationFailure = "40001"
	pgErrUniqueViolation      = "23505"
	pgErrForeignKeyViolation  = "23503"
	pgErrCheckViolation       = "23514"
	pgErrLockNotAvailable     = "55P03"
	pgErrQueryCanceled        = "57014"
	pgErrAdminShutdown        = "57P01"
	pgErrCannotConnectNow     = "57P03"

	activeBudgetIndex = "budgets_one_active_per_category"
)

// mapError translates driver errors into domain errors. notFound is returned
// for pgx.ErrNoRows; pass nil when no row is not an error for the caller.
func mapError(op string, err error, notFound error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) && notFound != nil {
		return notFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrUniqueViolation:
			if pgErr.ConstraintName == activeBudgetIndex {
				return domain.ErrBudgetActiveExists
			}
			return &domain.Error{Kind: domain.KindConflict, Message: op + ": duplicate key", Err: err}
		case pgErrForeignKeyViolation:
			return domain.ErrAccountNotFound
		case pgErrCheckViolation:
			return &domain.Error{Kind: domain.KindValidation, Message: op + ": " + pgErr.ConstraintName, Err: err}
		case pgErrDeadlock, pgErrSerializationFailure, pgErrLockNotAvailable,
			pgErrQueryCanceled, pgErrAdminShutdown, pgErrCannotConnectNow:
			return domain.NewTransientStoreError(op, err)
		}
		return err
	}

	if isConnectionError(err) {
		return domain.NewTransientStoreError(op, err)
	}
	return err
}

func isConnectionError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) || pgconn.SafeToRetry(err) {
		return true
	}
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
