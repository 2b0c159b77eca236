package domain

import (
	"errors"
	"testing"
)

func TestAccount_Validate(t *testing.T) {
	tests := []struct {
		name        string
		account     Account
		expectError error
	}{
		{
			name:    "valid checking account",
			account: Account{OwnerID: "owner-1", Name: "Main", Type: AccountTypeChecking},
		},
		{
			name:        "empty name",
			account:     Account{OwnerID: "owner-1", Name: "  ", Type: AccountTypeCash},
			expectError: ErrInvalidAccountName,
		},
		{
			name:        "unknown type",
			account:     Account{OwnerID: "owner-1", Name: "Wallet", Type: "crypto"},
			expectError: ErrInvalidAccountType,
		},
		{
			name:        "missing owner",
			account:     Account{Name: "Wallet", Type: AccountTypeCash},
			expectError: ErrInvalidIDFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.account.Validate()

			if tt.expectError == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.expectError != nil && !errors.Is(err, tt.expectError) {
				t.Fatalf("expected %v, got %v", tt.expectError, err)
			}
			if tt.expectError != nil && !errors.Is(err, ErrValidation) {
				t.Fatalf("expected validation kind, got %v", err)
			}
		})
	}
}

func TestAccount_OwnedBy(t *testing.T) {
	acc := &Account{OwnerID: "owner-1"}

	if !acc.OwnedBy("owner-1") {
		t.Error("expected account to be owned by owner-1")
	}
	if acc.OwnedBy("owner-2") {
		t.Error("expected account not to be owned by owner-2")
	}
}
