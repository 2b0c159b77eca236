package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func strPtr(s string) *string { return &s }

func TestMovement_SignedAmount(t *testing.T) {
	expense := &Movement{Kind: KindExpense, Amount: decimal.NewFromInt(40)}
	income := &Movement{Kind: KindIncome, Amount: decimal.NewFromInt(40)}

	if !expense.SignedAmount().Equal(decimal.NewFromInt(-40)) {
		t.Errorf("expense signed amount = %s", expense.SignedAmount())
	}
	if !income.SignedAmount().Equal(decimal.NewFromInt(40)) {
		t.Errorf("income signed amount = %s", income.SignedAmount())
	}
}

func TestMovement_CountsTowardBudget(t *testing.T) {
	tests := []struct {
		name     string
		movement Movement
		want     bool
	}{
		{"plain expense", Movement{Kind: KindExpense, Link: Simple{}}, true},
		{"income", Movement{Kind: KindIncome, Link: Simple{}}, false},
		{"rectified original", Movement{Kind: KindExpense, Link: Simple{}, RectifyingMovementID: strPtr("r")}, false},
		{"rectification", Movement{Kind: KindExpense, Link: Rectification{OriginalMovementID: "o"}}, false},
		{"transfer leg", Movement{Kind: KindExpense, Link: TransferLeg{TransferID: "t", CounterpartAccountID: "b"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.movement.CountsTowardBudget(); got != tt.want {
				t.Errorf("CountsTowardBudget() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMovement_Validate(t *testing.T) {
	base := func() Movement {
		return Movement{
			ID:         "m1",
			AccountID:  "a1",
			Kind:       KindExpense,
			Amount:     decimal.NewFromInt(10),
			CategoryID: "groceries",
			Link:       Simple{},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Movement)
		want   error
	}{
		{"valid", func(*Movement) {}, nil},
		{"bad kind", func(m *Movement) { m.Kind = "refund" }, ErrInvalidKind},
		{"zero amount", func(m *Movement) { m.Amount = decimal.Zero }, ErrInvalidAmount},
		{"missing category", func(m *Movement) { m.CategoryID = "" }, ErrMissingCategory},
		{"self rectifying", func(m *Movement) { m.RectifyingMovementID = strPtr("m1") }, ErrSelfReference},
		{"rectification of itself", func(m *Movement) { m.Link = Rectification{OriginalMovementID: "m1"} }, ErrSelfReference},
		{"rectified rectification", func(m *Movement) {
			m.Link = Rectification{OriginalMovementID: "m0"}
			m.RectifyingMovementID = strPtr("m2")
		}, ErrRectifyRectification},
		{"transfer to same account", func(m *Movement) {
			m.Link = TransferLeg{TransferID: "t", CounterpartAccountID: "a1"}
		}, ErrSameAccount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := base()
			tt.mutate(&m)
			err := m.Validate()
			if tt.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestLinkColumnsRoundTrip(t *testing.T) {
	links := []Link{
		Simple{},
		TransferLeg{TransferID: "t1", CounterpartAccountID: "acc-2"},
		Rectification{OriginalMovementID: "m0"},
		Rectification{OriginalMovementID: "m0", Transfer: &TransferLeg{TransferID: "t2", CounterpartAccountID: "acc-2"}},
	}

	for _, link := range links {
		m := &Movement{Link: link}
		got := LinkFromColumns(m.LinkColumns())

		switch want := link.(type) {
		case Rectification:
			r, ok := got.(Rectification)
			if !ok || r.OriginalMovementID != want.OriginalMovementID {
				t.Fatalf("got %#v, want %#v", got, want)
			}
			if (r.Transfer == nil) != (want.Transfer == nil) || (r.Transfer != nil && *r.Transfer != *want.Transfer) {
				t.Fatalf("transfer mismatch: got %#v, want %#v", r.Transfer, want.Transfer)
			}
		default:
			if got != link {
				t.Fatalf("got %#v, want %#v", got, link)
			}
		}
	}
}

func TestMovementKind_Opposite(t *testing.T) {
	if KindIncome.Opposite() != KindExpense || KindExpense.Opposite() != KindIncome {
		t.Fatal("Opposite should flip income and expense")
	}
}
