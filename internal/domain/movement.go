package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementKind is the direction of a movement relative to its account.
type MovementKind string

const (
	KindIncome  MovementKind = "income"
	KindExpense MovementKind = "expense"
)

// Valid reports whether k is income or expense.
func (k MovementKind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

// Opposite flips income and expense.
func (k MovementKind) Opposite() MovementKind {
	if k == KindIncome {
		return KindExpense
	}
	return KindIncome
}

// Link says how a movement relates to other movements. It is one of
// Simple, TransferLeg or Rectification.
type Link interface {
	isLink()
}

// Simple is a movement with no counterpart and no original.
type Simple struct{}

// TransferLeg is one side of a mirrored transfer. Both legs share TransferID.
type TransferLeg struct {
	TransferID           string
	CounterpartAccountID string
}

// Rectification reverses OriginalMovementID. Transfer is set when the reversed
// movement was a transfer leg, in which case the rectification is mirrored too.
type Rectification struct {
	OriginalMovementID string
	Transfer           *TransferLeg
}

func (Simple) isLink()        {}
func (TransferLeg) isLink()   {}
func (Rectification) isLink() {}

// Movement is a single ledger entry on one account.
type Movement struct {
	ID                   string
	OwnerID              string
	AccountID            string
	Kind                 MovementKind
	Amount               decimal.Decimal
	CategoryID           string
	Description          string
	OccurredAt           time.Time
	CreatedAt            time.Time
	Link                 Link
	RectifyingMovementID *string
}

// SignedAmount is the effect of the movement on its account balance.
func (m *Movement) SignedAmount() decimal.Decimal {
	if m.Kind == KindExpense {
		return m.Amount.Neg()
	}
	return m.Amount
}

// Transfer returns the transfer group the movement belongs to, if any.
func (m *Movement) Transfer() (TransferLeg, bool) {
	switch l := m.Link.(type) {
	case TransferLeg:
		return l, true
	case Rectification:
		if l.Transfer != nil {
			return *l.Transfer, true
		}
	}
	return TransferLeg{}, false
}

// OriginalMovementID returns the id of the movement this one rectifies.
func (m *Movement) OriginalMovementID() (string, bool) {
	if r, ok := m.Link.(Rectification); ok {
		return r.OriginalMovementID, true
	}
	return "", false
}

// IsRectification reports whether the movement reverses another one.
func (m *Movement) IsRectification() bool {
	_, ok := m.Link.(Rectification)
	return ok
}

// IsRectified reports whether a rectification has been posted against the movement.
func (m *Movement) IsRectified() bool {
	return m.RectifyingMovementID != nil
}

// CountsTowardBudget reports whether the movement is part of a budget's spend.
// Rectified originals and rectifications cancel out and are both excluded.
func (m *Movement) CountsTowardBudget() bool {
	return m.Kind == KindExpense && !m.IsRectification() && !m.IsRectified()
}

// Validate checks the invariants of a movement about to be stored.
func (m *Movement) Validate() error {
	if !m.Kind.Valid() {
		return ErrInvalidKind
	}
	if err := ValidateAmount(m.Amount); err != nil {
		return err
	}
	if m.CategoryID == "" {
		return ErrMissingCategory
	}
	if err := ValidateDescription(m.Description); err != nil {
		return err
	}
	if m.RectifyingMovementID != nil && *m.RectifyingMovementID == m.ID {
		return ErrSelfReference
	}
	switch l := m.Link.(type) {
	case nil:
		return Validationf("movement link is required")
	case TransferLeg:
		if l.CounterpartAccountID == m.AccountID {
			return ErrSameAccount
		}
	case Rectification:
		if l.OriginalMovementID == "" || l.OriginalMovementID == m.ID {
			return ErrSelfReference
		}
		if m.RectifyingMovementID != nil {
			return ErrRectifyRectification
		}
	}
	return nil
}

// LinkColumns flattens the link into its nullable storage columns.
func (m *Movement) LinkColumns() (transferID, counterpartID, originalID *string) {
	if leg, ok := m.Transfer(); ok {
		transferID = &leg.TransferID
		counterpartID = &leg.CounterpartAccountID
	}
	if id, ok := m.OriginalMovementID(); ok {
		originalID = &id
	}
	return transferID, counterpartID, originalID
}

// LinkFromColumns rebuilds a link from its nullable storage columns.
func LinkFromColumns(transferID, counterpartID, originalID *string) Link {
	var leg *TransferLeg
	if transferID != nil && counterpartID != nil {
		leg = &TransferLeg{TransferID: *transferID, CounterpartAccountID: *counterpartID}
	}
	switch {
	case originalID != nil:
		return Rectification{OriginalMovementID: *originalID, Transfer: leg}
	case leg != nil:
		return *leg
	default:
		return Simple{}
	}
}

// MovementFilter selects movements for paged queries. Zero values mean "any".
type MovementFilter struct {
	OwnerID     string
	AccountID   string
	CategoryID  string
	Kind        MovementKind
	Description string
	From        *time.Time
	To          *time.Time
	Limit       int
	Offset      int
}
