package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/iho/budgetledger/internal/domain"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		notFound error
		want     error
	}{
		{name: "nil", err: nil, want: nil},
		{name: "no rows", err: pgx.ErrNoRows, notFound: domain.ErrBudgetNotFound, want: domain.ErrBudgetNotFound},
		{
			name: "second active budget",
			err:  &pgconn.PgError{Code: pgErrUniqueViolation, ConstraintName: activeBudgetIndex},
			want: domain.ErrBudgetActiveExists,
		},
		{name: "other duplicate", err: &pgconn.PgError{Code: pgErrUniqueViolation, ConstraintName: "movements_pkey"}, want: domain.ErrConflict},
		{name: "missing account", err: &pgconn.PgError{Code: pgErrForeignKeyViolation}, want: domain.ErrAccountNotFound},
		{name: "check violation", err: &pgconn.PgError{Code: pgErrCheckViolation, ConstraintName: "movements_amount_check"}, want: domain.ErrValidation},
		{name: "deadlock", err: &pgconn.PgError{Code: pgErrDeadlock}, want: domain.ErrTransient},
		{name: "server shutting down", err: &pgconn.PgError{Code: pgErrAdminShutdown}, want: domain.ErrTransient},
		{name: "deadline", err: fmt.Errorf("query: %w", context.DeadlineExceeded), want: domain.ErrTransient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapError("op", tt.err, tt.notFound)
			if tt.want == nil {
				if got != nil {
					t.Fatalf("expected nil, got %v", got)
				}
				return
			}
			if !errors.Is(got, tt.want) {
				t.Fatalf("mapError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestMapErrorKeepsUnknownErrors(t *testing.T) {
	boom := errors.New("boom")
	if got := mapError("op", boom, nil); got != boom {
		t.Fatalf("expected the original error, got %v", got)
	}
	if got := mapError("op", pgx.ErrNoRows, nil); !errors.Is(got, pgx.ErrNoRows) {
		t.Fatalf("no rows without a not-found error should pass through, got %v", got)
	}
}
