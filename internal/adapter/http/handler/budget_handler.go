package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/iho/budgetledger/internal/adapter/http/dto"
	"github.com/iho/budgetledger/internal/domain"
	"github.com/iho/budgetledger/internal/usecase"
)

// BudgetService defines the behavior needed by BudgetHandler.
type BudgetService interface {
	CreateBudget(ctx context.Context, input usecase.CreateBudgetInput) (*domain.Budget, error)
	GetBudget(ctx context.Context, ownerID, id string) (*domain.Budget, error)
	ListBudgets(ctx context.Context, input usecase.ListBudgetsInput) ([]*domain.Budget, error)
	DeleteBudget(ctx context.Context, ownerID, id string) error
	RecomputeOwnedBudget(ctx context.Context, ownerID, budgetID string) (*domain.Budget, error)
}

// BudgetHandler handles budget-related HTTP requests.
type BudgetHandler struct {
	budgetUC BudgetService
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetUC BudgetService) *BudgetHandler {
	return &BudgetHandler{budgetUC: budgetUC}
}

// Create creates a budget and computes its initial progress.
func (h *BudgetHandler) Create(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerOf(w, r)
	if !ok {
		return
	}

	var req dto.CreateBudgetRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	budget, err := h.budgetUC.CreateBudget(r.Context(), req.ToUseCaseInput(owner))
	if err != nil {
		writeDomainError(w, "failed to create budget", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.BudgetFromDomain(budget))
}

// Get retrieves a budget by ID.
func (h *BudgetHandler) Get(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerOf(w, r)
	if !ok {
		return
	}

	budget, err := h.budgetUC.GetBudget(r.Context(), owner, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, "failed to get budget", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.BudgetFromDomain(budget))
}

// List lists budgets; ?active=true keeps only active ones.
func (h *BudgetHandler) List(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerOf(w, r)
	if !ok {
		return
	}

	activeOnly := false
	if v := r.URL.Query().Get("active"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid query", "active must be a boolean")
			return
		}
		activeOnly = parsed
	}

	budgets, err := h.budgetUC.ListBudgets(r.Context(), usecase.ListBudgetsInput{
		OwnerID:    owner,
		ActiveOnly: activeOnly,
		Limit:      parseIntQuery(r, "limit", defaultPageLimit),
		Offset:     parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeDomainError(w, "failed to list budgets", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListBudgetsResponse{
		Budgets: dto.BudgetsFromDomain(budgets),
		Count:   len(budgets),
	})
}

// Delete removes a budget.
func (h *BudgetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerOf(w, r)
	if !ok {
		return
	}

	if err := h.budgetUC.DeleteBudget(r.Context(), owner, chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, "failed to delete budget", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Recompute re-scans the movements in a budget's window.
func (h *BudgetHandler) Recompute(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerOf(w, r)
	if !ok {
		return
	}

	budget, err := h.budgetUC.RecomputeOwnedBudget(r.Context(), owner, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, "failed to recompute budget", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.BudgetFromDomain(budget))
}
