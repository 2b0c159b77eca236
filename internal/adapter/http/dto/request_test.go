package dto

import (
	"encoding/json"
	"testing"

	"github.com/iho/budgetledger/internal/domain"
)

func TestPostMovementRequestDecodes(t *testing.T) {
	body := `{"account_id":"acc-1","kind":"expense","amount":"42.10","category_id":"transfer-out",
		"occurred_at":"2025-01-15T10:00:00Z","counterpart_account_id":"acc-2"}`

	var req PostMovementRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("decode: %v", err)
	}

	in := req.ToUseCaseInput("owner-1")
	if in.OwnerID != "owner-1" || in.Kind != domain.KindExpense || in.Amount.String() != "42.1" {
		t.Fatalf("unexpected input: %+v", in)
	}
	if in.OccurredAt == nil || in.OccurredAt.Day() != 15 {
		t.Fatalf("expected occurred_at to be parsed, got %v", in.OccurredAt)
	}
	if in.CounterpartAccountID == nil || *in.CounterpartAccountID != "acc-2" {
		t.Fatalf("expected counterpart acc-2, got %v", in.CounterpartAccountID)
	}
}

func TestCreateBudgetRequestDates(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid", body: `{"category_id":"groceries","limit":"200","start_date":"2025-01-01","end_date":"2025-01-31"}`},
		{name: "bad date", body: `{"category_id":"groceries","limit":"200","start_date":"01/01/2025","end_date":"2025-01-31"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req CreateBudgetRequest
			err := json.Unmarshal([]byte(tt.body), &req)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected decode error")
				}
				return
			}
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			in := req.ToUseCaseInput("owner-1")
			if in.StartDate != domain.MustParseDate("2025-01-01") || in.EndDate.Day() != 31 {
				t.Fatalf("unexpected dates: %v..%v", in.StartDate, in.EndDate)
			}
		})
	}
}

func TestEditMovementRequestKeepsOmittedFields(t *testing.T) {
	var req EditMovementRequest
	if err := json.Unmarshal([]byte(`{"description":"weekly shop"}`), &req); err != nil {
		t.Fatalf("decode: %v", err)
	}

	in := req.ToUseCaseInput("owner-1", "mov-1")
	if in.CategoryID != nil || in.Description == nil || *in.Description != "weekly shop" {
		t.Fatalf("unexpected input: %+v", in)
	}
}
