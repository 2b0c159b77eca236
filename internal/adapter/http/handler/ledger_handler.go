package handler

import (
	"context"
	"net/http"

	"github.com/iho/budgetledger/internal/adapter/http/dto"
	"github.com/iho/budgetledger/internal/usecase"
)

// Reconciler checks an owner's stored balances and progress against a re-scan.
type Reconciler interface {
	ReconcileOwner(ctx context.Context, ownerID string) (*usecase.ReconciliationReport, error)
}

// LedgerHandler handles ledger-wide operations.
type LedgerHandler struct {
	reconciler Reconciler
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(reconciler Reconciler) *LedgerHandler {
	return &LedgerHandler{reconciler: reconciler}
}

// Reconciliation reports discrepancies for the requesting owner. An
// inconsistent ledger is still a 200; the body carries consistent=false.
func (h *LedgerHandler) Reconciliation(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerOf(w, r)
	if !ok {
		return
	}

	report, err := h.reconciler.ReconcileOwner(r.Context(), owner)
	if err != nil {
		writeDomainError(w, "failed to reconcile ledger", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ReconciliationFromReport(report))
}
