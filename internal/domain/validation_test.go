package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidateAccountName(t *testing.T) {
	t.Parallel()

	t.Run("valid name", func(t *testing.T) {
		if err := ValidateAccountName("Everyday Checking"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("empty name rejected", func(t *testing.T) {
		err := ValidateAccountName("   ")
		if !errors.Is(err, ErrInvalidAccountName) {
			t.Fatalf("expected ErrInvalidAccountName, got %v", err)
		}
	})

	t.Run("name too long", func(t *testing.T) {
		tooLong := strings.Repeat("a", MaxAccountNameLength+1)
		err := ValidateAccountName(tooLong)
		if !errors.Is(err, ErrInvalidAccountName) {
			t.Fatalf("expected ErrInvalidAccountName, got %v", err)
		}
	})
}

func TestValidateAmount(t *testing.T) {
	t.Parallel()

	if err := ValidateAmount(decimal.NewFromFloat(100.25)); err != nil {
		t.Fatalf("expected valid amount, got %v", err)
	}

	if err := ValidateAmount(decimal.Zero); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}

	if err := ValidateAmount(decimal.NewFromFloat(0.001)); !errors.Is(err, ErrAmountTooSmall) {
		t.Fatalf("expected ErrAmountTooSmall, got %v", err)
	}

	if err := ValidateAmount(decimal.RequireFromString("10.005")); !errors.Is(err, ErrAmountPrecision) {
		t.Fatalf("expected ErrAmountPrecision, got %v", err)
	}

	if err := ValidateAmount(decimal.RequireFromString("10.500")); err != nil {
		t.Fatalf("trailing zeros are within scale, got %v", err)
	}

	huge := decimal.RequireFromString(MaxMovementAmount).Add(decimal.NewFromInt(1))
	if err := ValidateAmount(huge); !errors.Is(err, ErrAmountTooLarge) {
		t.Fatalf("expected ErrAmountTooLarge, got %v", err)
	}
}

func TestValidateDescription(t *testing.T) {
	t.Parallel()

	if err := ValidateDescription(""); err != nil {
		t.Fatalf("empty description should be allowed, got %v", err)
	}
	if err := ValidateDescription(strings.Repeat("x", MaxDescriptionLength+1)); !errors.Is(err, ErrInvalidDescription) {
		t.Fatalf("expected ErrInvalidDescription, got %v", err)
	}
}

func TestValidateID(t *testing.T) {
	t.Parallel()

	for _, id := range []string{"01HZY3", "owner-42"} {
		if err := ValidateID(id); err != nil {
			t.Errorf("ValidateID(%q) = %v", id, err)
		}
	}
	for _, id := range []string{"", "has space", strings.Repeat("a", MaxIDLength+1)} {
		if err := ValidateID(id); !errors.Is(err, ErrInvalidIDFormat) {
			t.Errorf("ValidateID(%q) = %v, want ErrInvalidIDFormat", id, err)
		}
	}
}

func TestValidatePagination(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                  string
		limit, offset         int
		wantLimit, wantOffset int
	}{
		{"defaults", 0, -5, DefaultPageSize, 0},
		{"capped", MaxPageSize + 1, 10, MaxPageSize, 10},
		{"passthrough", 20, 40, 20, 40},
	}

	for _, tt := range tests {
		limit, offset := ValidatePagination(tt.limit, tt.offset)
		if limit != tt.wantLimit || offset != tt.wantOffset {
			t.Errorf("%s: got (%d,%d), want (%d,%d)", tt.name, limit, offset, tt.wantLimit, tt.wantOffset)
		}
	}
}
