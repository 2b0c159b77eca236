package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/iho/budgetledger/internal/domain"
	"github.com/iho/budgetledger/internal/usecase"
)

type budgetServiceStub struct {
	BudgetService
	listFn func(ctx context.Context, input usecase.ListBudgetsInput) ([]*domain.Budget, error)
}

func (s *budgetServiceStub) ListBudgets(ctx context.Context, input usecase.ListBudgetsInput) ([]*domain.Budget, error) {
	return s.listFn(ctx, input)
}

func TestBudgetHandler_ListActiveFilter(t *testing.T) {
	tests := []struct {
		query      string
		wantActive bool
		wantStatus int
	}{
		{"", false, http.StatusOK},
		{"?active=true", true, http.StatusOK},
		{"?active=0", false, http.StatusOK},
		{"?active=maybe", false, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			var got usecase.ListBudgetsInput
			h := NewBudgetHandler(&budgetServiceStub{
				listFn: func(ctx context.Context, input usecase.ListBudgetsInput) ([]*domain.Budget, error) {
					got = input
					return nil, nil
				},
			})

			rec := httptest.NewRecorder()
			h.List(rec, withOwner(httptest.NewRequest(http.MethodGet, "/budgets"+tt.query, nil), "owner-1"))

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rec.Code)
			}
			if tt.wantStatus == http.StatusOK && (got.ActiveOnly != tt.wantActive || got.OwnerID != "owner-1") {
				t.Fatalf("unexpected input %+v", got)
			}
		})
	}
}

func TestHealthHandler_Readiness(t *testing.T) {
	failing := PingFunc(func(context.Context) error { return errors.New("connection refused") })
	healthy := PingFunc(func(context.Context) error { return nil })

	tests := []struct {
		name       string
		checks     map[string]Pinger
		wantStatus int
	}{
		{"no dependencies", nil, http.StatusOK},
		{"nil checks are skipped", map[string]Pinger{"redis": nil}, http.StatusOK},
		{"healthy", map[string]Pinger{"postgres": healthy}, http.StatusOK},
		{"failing", map[string]Pinger{"postgres": healthy, "redis": failing}, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewHealthHandler(tt.checks).Readiness(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rec.Code)
			}
		})
	}
}
