package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/budgetledger/internal/adapter/http/dto"
	"github.com/iho/budgetledger/internal/domain"
	"github.com/iho/budgetledger/internal/usecase"
)

// MovementService defines the behavior needed by MovementHandler.
type MovementService interface {
	MovementLister
	PostMovement(ctx context.Context, input usecase.PostMovementInput) (*domain.Movement, error)
	EditMovement(ctx context.Context, input usecase.EditMovementInput) (*domain.Movement, error)
	DeleteMovement(ctx context.Context, ownerID, movementID string) error
	GetMovement(ctx context.Context, ownerID, id string) (*domain.Movement, error)
	Rectify(ctx context.Context, ownerID, movementID string) (*domain.Movement, error)
}

// MovementHandler handles movement-related HTTP requests.
type MovementHandler struct {
	ledgerUC MovementService
}

// NewMovementHandler creates a new MovementHandler.
func NewMovementHandler(ledgerUC MovementService) *MovementHandler {
	return &MovementHandler{ledgerUC: ledgerUC}
}

// Post posts an income, an expense or a transfer.
func (h *MovementHandler) Post(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerOf(w, r)
	if !ok {
		return
	}

	var req dto.PostMovementRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	movement, err := h.ledgerUC.PostMovement(r.Context(), req.ToUseCaseInput(owner))
	if err != nil {
		writeDomainError(w, "failed to post movement", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.MovementFromDomain(movement))
}

// Get retrieves a movement by ID.
func (h *MovementHandler) Get(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerOf(w, r)
	if !ok {
		return
	}

	movement, err := h.ledgerUC.GetMovement(r.Context(), owner, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, "failed to get movement", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.MovementFromDomain(movement))
}

// List lists movements filtered by the query string.
func (h *MovementHandler) List(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerOf(w, r)
	if !ok {
		return
	}

	input, err := movementFilterFromQuery(r, owner)
	if err != nil {
		writeDomainError(w, "invalid query", err)
		return
	}
	input.AccountID = r.URL.Query().Get("account_id")

	movements, err := h.ledgerUC.ListMovements(r.Context(), input)
	if err != nil {
		writeDomainError(w, "failed to list movements", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListMovementsResponse{
		Movements: dto.MovementsFromDomain(movements),
		Count:     len(movements),
	})
}

// Edit changes the category and/or description of a movement.
func (h *MovementHandler) Edit(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerOf(w, r)
	if !ok {
		return
	}

	var req dto.EditMovementRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	movement, err := h.ledgerUC.EditMovement(r.Context(), req.ToUseCaseInput(owner, chi.URLParam(r, "id")))
	if err != nil {
		writeDomainError(w, "failed to edit movement", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.MovementFromDomain(movement))
}

// Delete deletes a movement and reverses its balance effect.
func (h *MovementHandler) Delete(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerOf(w, r)
	if !ok {
		return
	}

	if err := h.ledgerUC.DeleteMovement(r.Context(), owner, chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, "failed to delete movement", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Rectify posts the reversal of a movement.
func (h *MovementHandler) Rectify(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerOf(w, r)
	if !ok {
		return
	}

	rectification, err := h.ledgerUC.Rectify(r.Context(), owner, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, "failed to rectify movement", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.MovementFromDomain(rectification))
}

// movementFilterFromQuery reads category_id, kind, q, from, to, limit and
// offset. Dates are YYYY-MM-DD.
func movementFilterFromQuery(r *http.Request, owner string) (usecase.ListMovementsInput, error) {
	q := r.URL.Query()
	input := usecase.ListMovementsInput{
		OwnerID:     owner,
		CategoryID:  q.Get("category_id"),
		Kind:        domain.MovementKind(q.Get("kind")),
		Description: q.Get("q"),
		Limit:       parseIntQuery(r, "limit", defaultPageLimit),
		Offset:      parseIntQuery(r, "offset", 0),
	}

	if v := q.Get("from"); v != "" {
		d, err := domain.ParseDate(v)
		if err != nil {
			return input, err
		}
		input.From = &d
	}
	if v := q.Get("to"); v != "" {
		d, err := domain.ParseDate(v)
		if err != nil {
			return input, err
		}
		input.To = &d
	}

	return input, nil
}
