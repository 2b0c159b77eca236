package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/budgetledger/internal/domain"
	"github.com/iho/budgetledger/internal/usecase"
)

// CreateAccountRequest represents a request to create an account.
type CreateAccountRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput(ownerID string) usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		OwnerID: ownerID,
		Name:    r.Name,
		Type:    domain.AccountType(r.Type),
	}
}

// PostMovementRequest represents a request to post a movement. Setting
// counterpart_account_id with the transfer-out category posts a transfer.
type PostMovementRequest struct {
	AccountID            string          `json:"account_id"`
	Kind                 string          `json:"kind"`
	Amount               decimal.Decimal `json:"amount"`
	CategoryID           string          `json:"category_id"`
	Description          string          `json:"description,omitempty"`
	OccurredAt           *time.Time      `json:"occurred_at,omitempty"`
	CounterpartAccountID *string         `json:"counterpart_account_id,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *PostMovementRequest) ToUseCaseInput(ownerID string) usecase.PostMovementInput {
	return usecase.PostMovementInput{
		OwnerID:              ownerID,
		AccountID:            r.AccountID,
		Kind:                 domain.MovementKind(r.Kind),
		Amount:               r.Amount,
		CategoryID:           r.CategoryID,
		Description:          r.Description,
		OccurredAt:           r.OccurredAt,
		CounterpartAccountID: r.CounterpartAccountID,
	}
}

// EditMovementRequest changes the category and/or description of a movement.
type EditMovementRequest struct {
	CategoryID  *string `json:"category_id,omitempty"`
	Description *string `json:"description,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *EditMovementRequest) ToUseCaseInput(ownerID, movementID string) usecase.EditMovementInput {
	return usecase.EditMovementInput{
		OwnerID:     ownerID,
		MovementID:  movementID,
		CategoryID:  r.CategoryID,
		Description: r.Description,
	}
}

// CreateBudgetRequest represents a request to create a budget. Dates are
// local calendar dates in YYYY-MM-DD form.
type CreateBudgetRequest struct {
	CategoryID string          `json:"category_id"`
	Limit      decimal.Decimal `json:"limit"`
	StartDate  domain.Date     `json:"start_date"`
	EndDate    domain.Date     `json:"end_date"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateBudgetRequest) ToUseCaseInput(ownerID string) usecase.CreateBudgetInput {
	return usecase.CreateBudgetInput{
		OwnerID:    ownerID,
		CategoryID: r.CategoryID,
		Limit:      r.Limit,
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
	}
}
