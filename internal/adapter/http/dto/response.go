package dto

import (
	"time"

	"github.com/iho/budgetledger/internal/domain"
	"github.com/iho/budgetledger/internal/usecase"
)

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Balance   string    `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:        a.ID,
		OwnerID:   a.OwnerID,
		Name:      a.Name,
		Type:      string(a.Type),
		Balance:   a.Balance.String(),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// MovementResponse represents a movement in API responses. Link fields are
// set according to the movement's link: transfer legs carry transfer_id and
// counterpart_account_id, rectifications carry original_movement_id.
type MovementResponse struct {
	ID                   string    `json:"id"`
	AccountID            string    `json:"account_id"`
	Kind                 string    `json:"kind"`
	Amount               string    `json:"amount"`
	CategoryID           string    `json:"category_id"`
	Description          string    `json:"description"`
	OccurredAt           time.Time `json:"occurred_at"`
	CreatedAt            time.Time `json:"created_at"`
	TransferID           *string   `json:"transfer_id,omitempty"`
	CounterpartAccountID *string   `json:"counterpart_account_id,omitempty"`
	OriginalMovementID   *string   `json:"original_movement_id,omitempty"`
	RectifyingMovementID *string   `json:"rectifying_movement_id,omitempty"`
}

// MovementFromDomain converts domain movement to response.
func MovementFromDomain(m *domain.Movement) *MovementResponse {
	transferID, counterpartID, originalID := m.LinkColumns()
	return &MovementResponse{
		ID:                   m.ID,
		AccountID:            m.AccountID,
		Kind:                 string(m.Kind),
		Amount:               m.Amount.String(),
		CategoryID:           m.CategoryID,
		Description:          m.Description,
		OccurredAt:           m.OccurredAt,
		CreatedAt:            m.CreatedAt,
		TransferID:           transferID,
		CounterpartAccountID: counterpartID,
		OriginalMovementID:   originalID,
		RectifyingMovementID: m.RectifyingMovementID,
	}
}

// MovementsFromDomain converts domain movements to responses.
func MovementsFromDomain(movements []*domain.Movement) []*MovementResponse {
	result := make([]*MovementResponse, len(movements))
	for i, m := range movements {
		result[i] = MovementFromDomain(m)
	}
	return result
}

// BudgetResponse represents a budget in API responses.
type BudgetResponse struct {
	ID         string      `json:"id"`
	CategoryID string      `json:"category_id"`
	Limit      string      `json:"limit"`
	Progress   string      `json:"progress"`
	Remaining  string      `json:"remaining"`
	Exceeded   bool        `json:"exceeded"`
	StartDate  domain.Date `json:"start_date"`
	EndDate    domain.Date `json:"end_date"`
	Active     bool        `json:"active"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// BudgetFromDomain converts domain budget to response.
func BudgetFromDomain(b *domain.Budget) *BudgetResponse {
	return &BudgetResponse{
		ID:         b.ID,
		CategoryID: b.CategoryID,
		Limit:      b.Limit.String(),
		Progress:   b.Progress.String(),
		Remaining:  b.Remaining().String(),
		Exceeded:   b.Exceeded(),
		StartDate:  b.StartDate,
		EndDate:    b.EndDate,
		Active:     b.Active,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

// BudgetsFromDomain converts domain budgets to responses.
func BudgetsFromDomain(budgets []*domain.Budget) []*BudgetResponse {
	result := make([]*BudgetResponse, len(budgets))
	for i, b := range budgets {
		result[i] = BudgetFromDomain(b)
	}
	return result
}

// ListAccountsResponse represents a page of accounts.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Count    int                `json:"count"`
}

// ListMovementsResponse represents a page of movements.
type ListMovementsResponse struct {
	Movements []*MovementResponse `json:"movements"`
	Count     int                 `json:"count"`
}

// ListBudgetsResponse represents a page of budgets.
type ListBudgetsResponse struct {
	Budgets []*BudgetResponse `json:"budgets"`
	Count   int               `json:"count"`
}

// AccountDiscrepancyResponse is an account whose balance disagrees with its movements.
type AccountDiscrepancyResponse struct {
	AccountID         string `json:"account_id"`
	RecordedBalance   string `json:"recorded_balance"`
	CalculatedBalance string `json:"calculated_balance"`
	Difference        string `json:"difference"`
}

// BudgetDiscrepancyResponse is a budget whose progress disagrees with a re-scan.
type BudgetDiscrepancyResponse struct {
	BudgetID           string `json:"budget_id"`
	CategoryID         string `json:"category_id"`
	RecordedProgress   string `json:"recorded_progress"`
	CalculatedProgress string `json:"calculated_progress"`
}

// ReconciliationResponse represents a reconciliation report.
type ReconciliationResponse struct {
	Consistent           bool                          `json:"consistent"`
	TotalAccounts        int                           `json:"total_accounts"`
	ReconciledAccounts   int                           `json:"reconciled_accounts"`
	TotalBudgets         int                           `json:"total_budgets"`
	ReconciledBudgets    int                           `json:"reconciled_budgets"`
	AccountDiscrepancies []*AccountDiscrepancyResponse `json:"account_discrepancies"`
	BudgetDiscrepancies  []*BudgetDiscrepancyResponse  `json:"budget_discrepancies"`
	CheckedAt            time.Time                     `json:"checked_at"`
}

// ReconciliationFromReport converts a report to response.
func ReconciliationFromReport(r *usecase.ReconciliationReport) *ReconciliationResponse {
	resp := &ReconciliationResponse{
		Consistent:           r.Consistent(),
		TotalAccounts:        r.TotalAccounts,
		ReconciledAccounts:   r.ReconciledAccounts,
		TotalBudgets:         r.TotalBudgets,
		ReconciledBudgets:    r.ReconciledBudgets,
		AccountDiscrepancies: make([]*AccountDiscrepancyResponse, 0, len(r.AccountDiscrepancies)),
		BudgetDiscrepancies:  make([]*BudgetDiscrepancyResponse, 0, len(r.BudgetDiscrepancies)),
		CheckedAt:            r.CheckedAt,
	}
	for _, a := range r.AccountDiscrepancies {
		resp.AccountDiscrepancies = append(resp.AccountDiscrepancies, &AccountDiscrepancyResponse{
			AccountID:         a.AccountID,
			RecordedBalance:   a.RecordedBalance.String(),
			CalculatedBalance: a.CalculatedBalance.String(),
			Difference:        a.Difference.String(),
		})
	}
	for _, b := range r.BudgetDiscrepancies {
		resp.BudgetDiscrepancies = append(resp.BudgetDiscrepancies, &BudgetDiscrepancyResponse{
			BudgetID:           b.BudgetID,
			CategoryID:         b.CategoryID,
			RecordedProgress:   b.RecordedProgress.String(),
			CalculatedProgress: b.CalculatedProgress.String(),
		})
	}
	return resp
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
