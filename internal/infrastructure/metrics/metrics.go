package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Movement metrics
	MovementsPosted  *prometheus.CounterVec
	MovementsEdited  prometheus.Counter
	MovementsDeleted prometheus.Counter
	MovementAmount   prometheus.Histogram
	Rectifications   prometheus.Counter
	LedgerErrors     *prometheus.CounterVec
	LedgerDuration   *prometheus.HistogramVec

	// Transfer metrics
	TransfersMirrored prometheus.Counter
	TransferRollbacks *prometheus.CounterVec

	// Account metrics
	AccountsCreated prometheus.Counter
	AccountsDeleted prometheus.Counter

	// Budget metrics
	BudgetRecomputes        *prometheus.CounterVec
	BudgetRecomputeDuration prometheus.Histogram
	BudgetsExpired          prometheus.Counter
	BudgetsPendingRecompute prometheus.Gauge

	// Reconciliation metrics
	ReconciliationDiscrepancies *prometheus.GaugeVec

	// Job metrics
	JobRuns *prometheus.CounterVec

	// Circuit breaker state: 0 closed, 1 half-open, 2 open
	BreakerState *prometheus.GaugeVec

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics on the default registerer.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith creates and registers all Prometheus metrics on reg.
func NewWith(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		MovementsPosted: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "budgetledger_movements_posted_total",
				Help: "Total number of movements posted by kind",
			},
			[]string{"kind"},
		),
		MovementsEdited: f.NewCounter(prometheus.CounterOpts{
			Name: "budgetledger_movements_edited_total",
			Help: "Total number of movement edits",
		}),
		MovementsDeleted: f.NewCounter(prometheus.CounterOpts{
			Name: "budgetledger_movements_deleted_total",
			Help: "Total number of movements deleted",
		}),
		MovementAmount: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "budgetledger_movement_amount",
			Help:    "Posted movement amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),
		Rectifications: f.NewCounter(prometheus.CounterOpts{
			Name: "budgetledger_rectifications_total",
			Help: "Total number of rectifications posted",
		}),
		LedgerErrors: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "budgetledger_ledger_errors_total",
				Help: "Ledger operation errors by operation and kind",
			},
			[]string{"operation", "kind"},
		),
		LedgerDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "budgetledger_ledger_operation_duration_seconds",
				Help:    "Duration of ledger operations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),

		TransfersMirrored: f.NewCounter(prometheus.CounterOpts{
			Name: "budgetledger_transfers_mirrored_total",
			Help: "Total number of transfers posted as mirrored legs",
		}),
		TransferRollbacks: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "budgetledger_transfer_rollbacks_total",
				Help: "Transfers whose mirrored leg failed, by rollback outcome",
			},
			[]string{"outcome"},
		),

		AccountsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "budgetledger_accounts_created_total",
			Help: "Total number of accounts created",
		}),
		AccountsDeleted: f.NewCounter(prometheus.CounterOpts{
			Name: "budgetledger_accounts_deleted_total",
			Help: "Total number of accounts deleted",
		}),

		BudgetRecomputes: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "budgetledger_budget_recomputes_total",
				Help: "Budget recomputations by result",
			},
			[]string{"result"},
		),
		BudgetRecomputeDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "budgetledger_budget_recompute_duration_seconds",
			Help:    "Duration of a budget re-scan",
			Buckets: prometheus.DefBuckets,
		}),
		BudgetsExpired: f.NewCounter(prometheus.CounterOpts{
			Name: "budgetledger_budgets_expired_total",
			Help: "Budgets deactivated after their end date",
		}),
		BudgetsPendingRecompute: f.NewGauge(prometheus.GaugeOpts{
			Name: "budgetledger_budgets_pending_recompute",
			Help: "Budgets queued for a reconciling recompute at last drain",
		}),

		ReconciliationDiscrepancies: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "budgetledger_reconciliation_discrepancies",
				Help: "Discrepancies found by the last reconciliation run",
			},
			[]string{"subject"},
		),

		JobRuns: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "budgetledger_job_runs_total",
				Help: "Scheduled job runs by job and result",
			},
			[]string{"job", "result"},
		),

		BreakerState: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "budgetledger_circuit_breaker_state",
				Help: "Circuit breaker state (0 closed, 1 half-open, 2 open)",
			},
			[]string{"name"},
		),

		RateLimitHits: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "budgetledger_rate_limit_hits_total",
				Help: "Total rate limit hits",
			},
			[]string{"ip"},
		),
	}
}
