package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/budgetledger/internal/adapter/http/handler"
	"github.com/iho/budgetledger/internal/adapter/http/middleware"
)

// RouterConfig holds dependencies for the router. Optional fields may be nil.
type RouterConfig struct {
	AccountHandler  *handler.AccountHandler
	MovementHandler *handler.MovementHandler
	BudgetHandler   *handler.BudgetHandler
	LedgerHandler   *handler.LedgerHandler
	HealthHandler   *handler.HealthHandler

	// TokenVerifier switches owner resolution from the X-Owner-ID header to
	// bearer tokens.
	TokenVerifier    middleware.TokenVerifier
	IdempotencyStore middleware.IdempotencyStore
	IdempotencyTTL   time.Duration
	RateLimiter      *middleware.RateLimiter
	HTTPMetrics      *middleware.HTTPMetrics
	MetricsGatherer  prometheus.Gatherer
	Logger           zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery(cfg.Logger))
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}
	if cfg.HTTPMetrics != nil {
		r.Use(cfg.HTTPMetrics.Wrap)
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	if cfg.MetricsGatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.MetricsGatherer, promhttp.HandlerOpts{}))
	}

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Owner(cfg.TokenVerifier))
		r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)

		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL, cfg.Logger)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Accounts
		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", cfg.AccountHandler.Create)
			r.Get("/", cfg.AccountHandler.List)
			r.Get("/{id}", cfg.AccountHandler.Get)
			r.Delete("/{id}", cfg.AccountHandler.Delete)
			r.Get("/{id}/movements", cfg.AccountHandler.Movements)
		})

		// Movements
		r.Route("/movements", func(r chi.Router) {
			r.Post("/", cfg.MovementHandler.Post)
			r.Get("/", cfg.MovementHandler.List)
			r.Get("/{id}", cfg.MovementHandler.Get)
			r.Patch("/{id}", cfg.MovementHandler.Edit)
			r.Delete("/{id}", cfg.MovementHandler.Delete)
			r.Post("/{id}/rectify", cfg.MovementHandler.Rectify)
		})

		// Budgets
		r.Route("/budgets", func(r chi.Router) {
			r.Post("/", cfg.BudgetHandler.Create)
			r.Get("/", cfg.BudgetHandler.List)
			r.Get("/{id}", cfg.BudgetHandler.Get)
			r.Delete("/{id}", cfg.BudgetHandler.Delete)
			r.Post("/{id}/recompute", cfg.BudgetHandler.Recompute)
		})

		r.Get("/ledger/reconciliation", cfg.LedgerHandler.Reconciliation)
	})

	return r
}
