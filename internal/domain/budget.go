package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget caps the spend of one owner in one category over an inclusive window
// of local calendar days. Progress is derived from the ledger by re-scan.
type Budget struct {
	ID         string
	OwnerID    string
	CategoryID string
	Limit      decimal.Decimal
	StartDate  Date
	EndDate    Date
	Active     bool
	Progress   decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Validate checks a budget about to be created.
func (b *Budget) Validate() error {
	if b.CategoryID == "" {
		return ErrMissingCategory
	}
	if IsTransferCategory(b.CategoryID) {
		return ErrBudgetReservedCat
	}
	if !b.Limit.IsPositive() {
		return ErrInvalidBudgetLimit
	}
	if err := ValidateScale(b.Limit); err != nil {
		return err
	}
	if b.StartDate.IsZero() || b.EndDate.IsZero() || b.StartDate.After(b.EndDate) {
		return ErrInvalidBudgetWindow
	}
	return nil
}

// ExpiredOn reports whether today is past the last day of the window.
func (b *Budget) ExpiredOn(today Date) bool {
	return today.After(b.EndDate)
}

// Remaining is limit minus progress; negative once the budget is exceeded.
func (b *Budget) Remaining() decimal.Decimal {
	return b.Limit.Sub(b.Progress)
}

// Exceeded reports whether spend is above the limit.
func (b *Budget) Exceeded() bool {
	return b.Progress.GreaterThan(b.Limit)
}
