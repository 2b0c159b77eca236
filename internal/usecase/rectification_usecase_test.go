package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/budgetledger/internal/domain"
	"github.com/iho/budgetledger/internal/usecase"
)

func TestLedgerUseCase_Rectify_ExpenseNetsToZero(t *testing.T) {
	f := newLedgerFixture(t, jan15)
	acc := f.account(t, "Wallet")
	b := f.budget(t, "groceries", 500, "2025-01-01", "2025-01-31")

	original := f.post(t, acc.ID, domain.KindExpense, 100, "groceries", jan15.AddDate(0, 0, -2))
	requireDecimal(t, -100, f.balance(t, acc.ID))
	requireDecimal(t, 100, f.progress(t, b.ID))

	r, err := f.ledger.Rectify(context.Background(), owner, original.ID)
	require.NoError(t, err)

	assert.Equal(t, domain.KindIncome, r.Kind)
	assert.True(t, r.Amount.Equal(original.Amount))
	assert.Equal(t, original.CategoryID, r.CategoryID)
	assert.True(t, r.OccurredAt.Equal(jan15), "rectification happens now")
	originalID, ok := r.OriginalMovementID()
	require.True(t, ok)
	assert.Equal(t, original.ID, originalID)

	stored, err := f.ledger.GetMovement(context.Background(), owner, original.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.RectifyingMovementID)
	assert.Equal(t, r.ID, *stored.RectifyingMovementID)

	all, err := f.ledger.ListMovements(context.Background(), usecase.ListMovementsInput{OwnerID: owner})
	require.NoError(t, err)
	assert.Len(t, all, 2, "the original stays in the ledger")

	requireDecimal(t, 0, f.balance(t, acc.ID))
	requireDecimal(t, 0, f.progress(t, b.ID))
	f.requireConsistent(t)
}

func TestLedgerUseCase_Rectify_Rejects(t *testing.T) {
	f := newLedgerFixture(t, jan15)
	acc := f.account(t, "Wallet")
	original := f.post(t, acc.ID, domain.KindExpense, 25, "fuel", jan15)

	r, err := f.ledger.Rectify(context.Background(), owner, original.ID)
	require.NoError(t, err)

	tests := []struct {
		name       string
		ownerID    string
		movementID string
		wantErr    error
	}{
		{name: "already rectified", ownerID: owner, movementID: original.ID, wantErr: domain.ErrAlreadyRectified},
		{name: "rectification of a rectification", ownerID: owner, movementID: r.ID, wantErr: domain.ErrRectifyRectification},
		{name: "unknown movement", ownerID: owner, movementID: "missing", wantErr: domain.ErrMovementNotFound},
		{name: "foreign owner", ownerID: "owner-2", movementID: original.ID, wantErr: domain.ErrMovementNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.ledger.Rectify(context.Background(), tt.ownerID, tt.movementID)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	requireDecimal(t, 0, f.balance(t, acc.ID))
}

func TestLedgerUseCase_Rectify_DeleteOrder(t *testing.T) {
	f := newLedgerFixture(t, jan15)
	acc := f.account(t, "Wallet")
	b := f.budget(t, "groceries", 500, "2025-01-01", "2025-01-31")

	original := f.post(t, acc.ID, domain.KindExpense, 70, "groceries", jan15)
	r, err := f.ledger.Rectify(context.Background(), owner, original.ID)
	require.NoError(t, err)

	err = f.ledger.DeleteMovement(context.Background(), owner, original.ID)
	assert.ErrorIs(t, err, domain.ErrRectifiedNotDeletable)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))

	// Deleting the rectification reopens the original.
	require.NoError(t, f.ledger.DeleteMovement(context.Background(), owner, r.ID))
	stored, err := f.ledger.GetMovement(context.Background(), owner, original.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.RectifyingMovementID)
	requireDecimal(t, -70, f.balance(t, acc.ID))
	requireDecimal(t, 70, f.progress(t, b.ID))

	// The reopened original can be rectified again.
	_, err = f.ledger.Rectify(context.Background(), owner, original.ID)
	require.NoError(t, err)
	requireDecimal(t, 0, f.balance(t, acc.ID))
	requireDecimal(t, 0, f.progress(t, b.ID))
	f.requireConsistent(t)
}

func TestLedgerUseCase_Rectify_TransferPair(t *testing.T) {
	f := newLedgerFixture(t, jan15)
	x, y := f.account(t, "X"), f.account(t, "Y")
	out := f.transfer(t, x.ID, y.ID, 80, jan15)

	r, err := f.ledger.Rectify(context.Background(), owner, out.ID)
	require.NoError(t, err)

	requireDecimal(t, 0, f.balance(t, x.ID))
	requireDecimal(t, 0, f.balance(t, y.ID))

	assert.Equal(t, x.ID, r.AccountID)
	assert.Equal(t, domain.KindIncome, r.Kind)
	reversal, ok := r.Transfer()
	require.True(t, ok, "the reversal of a transfer leg is mirrored")
	original, _ := out.Transfer()
	assert.NotEqual(t, original.TransferID, reversal.TransferID)
	assert.Equal(t, y.ID, reversal.CounterpartAccountID)

	onY, err := f.ledger.ListMovements(context.Background(), usecase.ListMovementsInput{OwnerID: owner, AccountID: y.ID})
	require.NoError(t, err)
	require.Len(t, onY, 2)
	for _, m := range onY {
		if m.IsRectification() {
			assert.Equal(t, domain.KindExpense, m.Kind)
			continue
		}
		assert.True(t, m.IsRectified(), "the sibling leg is rectified with the pair")
	}

	// The sibling cannot be rectified on its own any more.
	for _, m := range onY {
		_, err := f.ledger.Rectify(context.Background(), owner, m.ID)
		assert.Error(t, err)
	}

	// Deleting one reversal leg removes the mirrored reversal and reopens both originals.
	require.NoError(t, f.ledger.DeleteMovement(context.Background(), owner, r.ID))
	requireDecimal(t, -80, f.balance(t, x.ID))
	requireDecimal(t, 80, f.balance(t, y.ID))

	all, err := f.ledger.ListMovements(context.Background(), usecase.ListMovementsInput{OwnerID: owner})
	require.NoError(t, err)
	require.Len(t, all, 2)
	for _, m := range all {
		assert.False(t, m.IsRectified())
	}
	f.requireConsistent(t)
}
