package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType describes what kind of money container an account is.
type AccountType string

const (
	AccountTypeCash       AccountType = "cash"
	AccountTypeChecking   AccountType = "checking"
	AccountTypeSavings    AccountType = "savings"
	AccountTypeCredit     AccountType = "credit"
	AccountTypeInvestment AccountType = "investment"
)

// Valid reports whether t is a known account type.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeCash, AccountTypeChecking, AccountTypeSavings, AccountTypeCredit, AccountTypeInvestment:
		return true
	}
	return false
}

// Account is a user-owned container whose balance is the signed sum of the
// movements currently posted to it.
type Account struct {
	ID        string
	OwnerID   string
	Name      string
	Type      AccountType
	Balance   decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the user-supplied fields of a new account.
func (a *Account) Validate() error {
	if err := ValidateAccountName(a.Name); err != nil {
		return err
	}
	if !a.Type.Valid() {
		return ErrInvalidAccountType
	}
	return ValidateID(a.OwnerID)
}

// OwnedBy reports whether the account belongs to ownerID.
func (a *Account) OwnedBy(ownerID string) bool {
	return a.OwnerID == ownerID
}
