package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/budgetledger/internal/domain"
	"github.com/iho/budgetledger/internal/infrastructure/metrics"
)

// ErrInconsistentLedger is returned when account balances and movements disagree.
var ErrInconsistentLedger = errors.New("ledger is inconsistent: balances do not equal the sum of movements")

// ReconciliationUseCase checks stored balances and budget progress against a
// fresh re-scan of the ledger.
type ReconciliationUseCase struct {
	accountRepo  AccountRepository
	movementRepo MovementRepository
	budgetRepo   BudgetRepository
	ledgerRepo   LedgerRepository
	resolver     TimeResolver
	clock        Clock
	metrics      *metrics.Metrics
}

// NewReconciliationUseCase creates a new reconciliation use case
func NewReconciliationUseCase(
	accountRepo AccountRepository,
	movementRepo MovementRepository,
	budgetRepo BudgetRepository,
	ledgerRepo LedgerRepository,
	resolver TimeResolver,
	metrics *metrics.Metrics,
) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		accountRepo:  accountRepo,
		movementRepo: movementRepo,
		budgetRepo:   budgetRepo,
		ledgerRepo:   ledgerRepo,
		resolver:     resolver,
		clock:        SystemClock,
		metrics:      metrics,
	}
}

// AccountReconciliation compares an account's stored balance with the signed
// sum of its movements.
type AccountReconciliation struct {
	AccountID         string
	RecordedBalance   decimal.Decimal
	CalculatedBalance decimal.Decimal
	Difference        decimal.Decimal
	IsReconciled      bool
}

// BudgetReconciliation compares a budget's stored progress with a re-scan.
type BudgetReconciliation struct {
	BudgetID           string
	CategoryID         string
	RecordedProgress   decimal.Decimal
	CalculatedProgress decimal.Decimal
	IsReconciled       bool
}

// ReconciliationReport is the result of a reconciliation run.
type ReconciliationReport struct {
	OwnerID              string
	TotalAccounts        int
	ReconciledAccounts   int
	AccountDiscrepancies []*AccountReconciliation
	TotalBudgets         int
	ReconciledBudgets    int
	BudgetDiscrepancies  []*BudgetReconciliation
	CheckedAt            time.Time
}

// Consistent reports whether no discrepancy was found.
func (r *ReconciliationReport) Consistent() bool {
	return len(r.AccountDiscrepancies) == 0 && len(r.BudgetDiscrepancies) == 0
}

// ReconcileAccount re-scans one account.
func (uc *ReconciliationUseCase) ReconcileAccount(ctx context.Context, account *domain.Account) (*AccountReconciliation, error) {
	calculated, err := uc.movementRepo.SumSigned(ctx, account.ID)
	if err != nil {
		return nil, err
	}

	return &AccountReconciliation{
		AccountID:         account.ID,
		RecordedBalance:   account.Balance,
		CalculatedBalance: calculated,
		Difference:        account.Balance.Sub(calculated),
		IsReconciled:      account.Balance.Equal(calculated),
	}, nil
}

// ReconcileBudget re-scans one budget without writing the result back.
func (uc *ReconciliationUseCase) ReconcileBudget(ctx context.Context, budget *domain.Budget) (*BudgetReconciliation, error) {
	from, to := uc.resolver.DayStart(budget.StartDate), uc.resolver.DayEnd(budget.EndDate)
	calculated, err := uc.movementRepo.SumBudgetSpend(ctx, budget.OwnerID, budget.CategoryID, from, to)
	if err != nil {
		return nil, err
	}

	return &BudgetReconciliation{
		BudgetID:           budget.ID,
		CategoryID:         budget.CategoryID,
		RecordedProgress:   budget.Progress,
		CalculatedProgress: calculated,
		IsReconciled:       budget.Progress.Equal(calculated),
	}, nil
}

// ReconcileOwner checks every account and active budget of one owner.
func (uc *ReconciliationUseCase) ReconcileOwner(ctx context.Context, ownerID string) (*ReconciliationReport, error) {
	report := &ReconciliationReport{
		OwnerID:              ownerID,
		AccountDiscrepancies: make([]*AccountReconciliation, 0),
		BudgetDiscrepancies:  make([]*BudgetReconciliation, 0),
		CheckedAt:            uc.clock.Now(),
	}

	for offset := 0; ; offset += reconcileBatchSize {
		accounts, err := uc.accountRepo.ListByOwner(ctx, ownerID, reconcileBatchSize, offset)
		if err != nil {
			return nil, err
		}
		if err := uc.addAccounts(ctx, report, accounts); err != nil {
			return nil, err
		}
		if len(accounts) < reconcileBatchSize {
			break
		}
	}

	for offset := 0; ; offset += reconcileBatchSize {
		budgets, err := uc.budgetRepo.ListByOwner(ctx, ownerID, true, reconcileBatchSize, offset)
		if err != nil {
			return nil, err
		}
		for _, b := range budgets {
			result, err := uc.ReconcileBudget(ctx, b)
			if err != nil {
				return nil, fmt.Errorf("failed to reconcile budget %s: %w", b.ID, err)
			}
			report.TotalBudgets++
			if result.IsReconciled {
				report.ReconciledBudgets++
			} else {
				report.BudgetDiscrepancies = append(report.BudgetDiscrepancies, result)
			}
		}
		if len(budgets) < reconcileBatchSize {
			break
		}
	}

	return report, nil
}

// GenerateReconciliationReport checks every account in the ledger.
func (uc *ReconciliationUseCase) GenerateReconciliationReport(ctx context.Context) (*ReconciliationReport, error) {
	report := &ReconciliationReport{
		AccountDiscrepancies: make([]*AccountReconciliation, 0),
		BudgetDiscrepancies:  make([]*BudgetReconciliation, 0),
		CheckedAt:            uc.clock.Now(),
	}

	for offset := 0; ; offset += reconcileBatchSize {
		accounts, err := uc.accountRepo.List(ctx, reconcileBatchSize, offset)
		if err != nil {
			return nil, err
		}
		if err := uc.addAccounts(ctx, report, accounts); err != nil {
			return nil, err
		}
		if len(accounts) < reconcileBatchSize {
			break
		}
	}

	if uc.metrics != nil {
		uc.metrics.ReconciliationDiscrepancies.WithLabelValues("account").Set(float64(len(report.AccountDiscrepancies)))
	}

	return report, nil
}

// CheckLedgerConsistency compares the sum of all balances with the signed sum of
// all movements.
func (uc *ReconciliationUseCase) CheckLedgerConsistency(ctx context.Context) error {
	totalBalance, totalSigned, err := uc.ledgerRepo.CheckConsistency(ctx)
	if err != nil {
		return err
	}

	if !totalBalance.Equal(totalSigned) {
		return fmt.Errorf(
			"%w: balances=%s movements=%s difference=%s",
			ErrInconsistentLedger,
			totalBalance.String(),
			totalSigned.String(),
			totalBalance.Sub(totalSigned).String(),
		)
	}

	return nil
}

func (uc *ReconciliationUseCase) addAccounts(ctx context.Context, report *ReconciliationReport, accounts []*domain.Account) error {
	for _, account := range accounts {
		result, err := uc.ReconcileAccount(ctx, account)
		if err != nil {
			return fmt.Errorf("failed to reconcile account %s: %w", account.ID, err)
		}
		report.TotalAccounts++
		if result.IsReconciled {
			report.ReconciledAccounts++
		} else {
			report.AccountDiscrepancies = append(report.AccountDiscrepancies, result)
		}
	}
	return nil
}
