package domain

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// Validation constants
const (
	MaxAccountNameLength = 255
	MinAccountNameLength = 1
	MaxDescriptionLength = 1024
	MaxIDLength          = 64
	MaxMovementAmount    = "1000000000000" // 1 trillion
	MinMovementAmount    = "0.01"
	MoneyScale           = 2 // decimal places stored for every amount
	MaxPageSize          = 1000
	DefaultPageSize      = 50
)

var (
	ErrInvalidAccountName = newError(KindValidation, "invalid account name")
	ErrInvalidDescription = newError(KindValidation, "invalid description")
	ErrAmountTooLarge     = newError(KindValidation, "amount exceeds maximum allowed")
	ErrAmountTooSmall     = newError(KindValidation, "amount below minimum allowed")
	ErrAmountPrecision    = newError(KindValidation, "amount has more than 2 decimal places")
	ErrInvalidIDFormat    = newError(KindValidation, "invalid ID format")
)

var (
	minAmount = decimal.RequireFromString(MinMovementAmount)
	maxAmount = decimal.RequireFromString(MaxMovementAmount)
)

// ValidateAccountName validates account name
func ValidateAccountName(name string) error {
	name = strings.TrimSpace(name)

	if len(name) < MinAccountNameLength {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidAccountName)
	}

	if len(name) > MaxAccountNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidAccountName, MaxAccountNameLength)
	}

	return nil
}

// ValidateDescription bounds free-text descriptions.
func ValidateDescription(desc string) error {
	if len(desc) > MaxDescriptionLength {
		return fmt.Errorf("%w: exceeds %d characters", ErrInvalidDescription, MaxDescriptionLength)
	}
	return nil
}

// ValidateAmount checks that a movement amount is positive and within bounds.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if amount.LessThan(minAmount) {
		return fmt.Errorf("%w: minimum amount is %s", ErrAmountTooSmall, MinMovementAmount)
	}

	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxMovementAmount)
	}

	return ValidateScale(amount)
}

// ValidateScale rejects amounts the store would have to round. Trailing zeros
// past the scale are fine.
func ValidateScale(amount decimal.Decimal) error {
	if !amount.Equal(amount.Truncate(MoneyScale)) {
		return ErrAmountPrecision
	}
	return nil
}

// ValidateID rejects empty, oversized or whitespace-bearing identifiers.
func ValidateID(id string) error {
	if id == "" || len(id) > MaxIDLength {
		return ErrInvalidIDFormat
	}
	for _, r := range id {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return ErrInvalidIDFormat
		}
	}
	return nil
}

// ValidatePagination validates and limits pagination parameters
func ValidatePagination(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
