package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/budgetledger/internal/adapter/http/dto"
	"github.com/iho/budgetledger/internal/domain"
	"github.com/iho/budgetledger/internal/usecase"
)

// AccountService defines the behavior needed by AccountHandler.
type AccountService interface {
	CreateAccount(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error)
	GetAccount(ctx context.Context, ownerID, id string) (*domain.Account, error)
	ListAccounts(ctx context.Context, input usecase.ListAccountsInput) ([]*domain.Account, error)
	DeleteAccount(ctx context.Context, ownerID, id string) error
}

// MovementLister lists movements.
type MovementLister interface {
	ListMovements(ctx context.Context, input usecase.ListMovementsInput) ([]*domain.Movement, error)
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	accountUC  AccountService
	movementUC MovementLister
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountUC AccountService, movementUC MovementLister) *AccountHandler {
	return &AccountHandler{accountUC: accountUC, movementUC: movementUC}
}

// Create creates a new account.
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerOf(w, r)
	if !ok {
		return
	}

	var req dto.CreateAccountRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.accountUC.CreateAccount(r.Context(), req.ToUseCaseInput(owner))
	if err != nil {
		writeDomainError(w, "failed to create account", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.AccountFromDomain(account))
}

// Get retrieves an account by ID.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerOf(w, r)
	if !ok {
		return
	}

	account, err := h.accountUC.GetAccount(r.Context(), owner, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, "failed to get account", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// List lists accounts.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerOf(w, r)
	if !ok {
		return
	}

	accounts, err := h.accountUC.ListAccounts(r.Context(), usecase.ListAccountsInput{
		OwnerID: owner,
		Limit:   parseIntQuery(r, "limit", defaultPageLimit),
		Offset:  parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeDomainError(w, "failed to list accounts", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListAccountsResponse{
		Accounts: dto.AccountsFromDomain(accounts),
		Count:    len(accounts),
	})
}

// Delete deletes an account together with its movements.
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerOf(w, r)
	if !ok {
		return
	}

	if err := h.accountUC.DeleteAccount(r.Context(), owner, chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, "failed to delete account", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Movements lists the movements of one account.
func (h *AccountHandler) Movements(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerOf(w, r)
	if !ok {
		return
	}

	input, err := movementFilterFromQuery(r, owner)
	if err != nil {
		writeDomainError(w, "invalid query", err)
		return
	}
	input.AccountID = chi.URLParam(r, "id")

	movements, err := h.movementUC.ListMovements(r.Context(), input)
	if err != nil {
		writeDomainError(w, "failed to list movements", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListMovementsResponse{
		Movements: dto.MovementsFromDomain(movements),
		Count:     len(movements),
	})
}
