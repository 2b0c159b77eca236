package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	httpAdapter "github.com/iho/budgetledger/internal/adapter/http"
	"github.com/iho/budgetledger/internal/adapter/http/handler"
	"github.com/iho/budgetledger/internal/adapter/http/middleware"
	"github.com/iho/budgetledger/internal/adapter/repository/memory"
	postgresRepo "github.com/iho/budgetledger/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/budgetledger/internal/adapter/repository/redis"
	"github.com/iho/budgetledger/internal/infrastructure/auth"
	"github.com/iho/budgetledger/internal/infrastructure/breaker"
	"github.com/iho/budgetledger/internal/infrastructure/config"
	"github.com/iho/budgetledger/internal/infrastructure/eventpublisher"
	"github.com/iho/budgetledger/internal/infrastructure/logger"
	"github.com/iho/budgetledger/internal/infrastructure/metrics"
	"github.com/iho/budgetledger/internal/infrastructure/postgres"
	"github.com/iho/budgetledger/internal/infrastructure/redis"
	"github.com/iho/budgetledger/internal/infrastructure/scheduler"
	"github.com/iho/budgetledger/internal/infrastructure/timezone"
	"github.com/iho/budgetledger/internal/usecase"
)

const (
	reconcileBatch     = 500
	jobLockTTL         = 5 * time.Minute
	jobTimeout         = 2 * time.Minute
	rateLimiterMaxIdle = 10 * time.Minute
)

// storage is the set of repositories behind one STORE_DRIVER.
type storage struct {
	txManager  usecase.TransactionManager
	accounts   usecase.AccountRepository
	movements  usecase.MovementRepository
	budgets    usecase.BudgetRepository
	outbox     usecase.OutboxRepository
	ledger     usecase.LedgerRepository
	pool       *pgxpool.Pool
}

// app holds the wired server and its background workers.
type app struct {
	handler   http.Handler
	scheduler *scheduler.Scheduler
	publisher *eventpublisher.EventPublisher
	budgets   *usecase.BudgetUseCase
	closers   []func()
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func openStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*storage, error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		store := memory.NewStore()
		return &storage{
			txManager: memory.NewTxManager(store),
			accounts:  memory.NewAccountRepository(store),
			movements: memory.NewMovementRepository(store),
			budgets:   memory.NewBudgetRepository(store),
			outbox:    memory.NewOutboxRepository(store),
			ledger:    memory.NewLedgerRepository(store),
		}, nil
	}

	if cfg.MigrationsAuto {
		if err := postgres.RunMigrations(cfg.DatabaseURL, log); err != nil {
			return nil, fmt.Errorf("run migrations: %w", err)
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		return nil, err
	}

	return &storage{
		txManager: postgresRepo.NewTxManager(pool),
		accounts:  postgresRepo.NewAccountRepository(pool),
		movements: postgresRepo.NewMovementRepository(pool),
		budgets:   postgresRepo.NewBudgetRepository(pool),
		outbox:    postgresRepo.NewOutboxRepository(pool),
		ledger:    postgresRepo.NewLedgerRepository(pool),
		pool:      pool,
	}, nil
}

// newApp wires storage, use cases, background jobs and the HTTP router.
func newApp(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*app, error) {
	a := &app{}

	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	if store.pool != nil {
		a.closers = append(a.closers, store.pool.Close)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.NewWith(reg)

	// Redis is optional: without it there is no idempotency replay, the
	// recompute queue is process-local and jobs run unlocked.
	var (
		redisClient *goredis.Client
		queue       usecase.RecomputeQueue = memory.NewRecomputeQueue()
		idempotency middleware.IdempotencyStore
		schedOpts   = []scheduler.Option{scheduler.WithMetrics(m), scheduler.WithTimeout(jobTimeout)}
	)
	if cfg.RedisURL != "" {
		redisClient, err = redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			a.close()
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = redisClient.Close() })

		queue = redisRepo.NewRecomputeQueue(redisClient)
		idempotency = redisRepo.NewIdempotencyStore(redisClient)
		schedOpts = append(schedOpts, scheduler.WithLocker(
			redisRepo.NewLocker(redisClient, logger.Component(log, "locker")), jobLockTTL,
		))
	}

	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier(logger.Component(log, "retrier"))
	resolver := timezone.NewResolver(cfg.TZStandardOffset, cfg.TZSummerOffset)

	budgetUC := usecase.NewBudgetUseCase(
		store.txManager, store.budgets, store.movements, store.outbox, idGen, resolver, queue, m, log,
	)
	ledgerUC := usecase.NewLedgerUseCase(
		store.txManager, store.accounts, store.movements, store.outbox, idGen, budgetUC, resolver, m, log,
	).
		WithRetrier(retrier).
		WithBreaker(breaker.New(breaker.DefaultConfig("budget-recompute"), m, log))
	accountUC := usecase.NewAccountUseCase(
		store.txManager, store.accounts, store.movements, store.outbox, idGen, budgetUC, cfg.MaxAccountsPerOwner, m, log,
	).WithRetrier(retrier)
	reconUC := usecase.NewReconciliationUseCase(
		store.accounts, store.movements, store.budgets, store.ledger, resolver, m,
	)
	a.budgets = budgetUC

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, m.RateLimitHits)

	// Background jobs
	sched := scheduler.New(logger.Component(log, "scheduler"), schedOpts...)
	jobs := []struct {
		spec string
		job  scheduler.Job
	}{
		{cfg.ExpirySchedule, &scheduler.ExpiryJob{Budgets: budgetUC, Log: log}},
		{cfg.ReconcileSchedule, &scheduler.ReconcileJob{Budgets: budgetUC, Batch: reconcileBatch, Log: log}},
		{cfg.OutboxCleanupSchedule, &scheduler.OutboxCleanupJob{Outbox: store.outbox, Retention: cfg.OutboxRetention}},
		{"@every 5m", &scheduler.RateLimitCleanupJob{Limiter: rateLimiter, MaxIdle: rateLimiterMaxIdle}},
	}
	for _, j := range jobs {
		if err := sched.AddJob(j.spec, j.job); err != nil {
			a.close()
			return nil, err
		}
	}
	a.scheduler = sched

	a.publisher = eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: store.outbox,
		Publisher:  eventpublisher.NewLogPublisher(log),
		Logger:     log,
		Interval:   cfg.OutboxPollInterval,
	})

	// HTTP
	checks := map[string]handler.Pinger{}
	if store.pool != nil {
		checks["postgres"] = store.pool
	}
	if redisClient != nil {
		checks["redis"] = handler.PingFunc(func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
	}

	var verifier middleware.TokenVerifier
	if cfg.AuthEnabled {
		verifier = auth.NewVerifier(cfg.JWTSecret)
	}

	routerCfg := httpAdapter.RouterConfig{
		AccountHandler:  handler.NewAccountHandler(accountUC, ledgerUC),
		MovementHandler: handler.NewMovementHandler(ledgerUC),
		BudgetHandler:   handler.NewBudgetHandler(budgetUC),
		LedgerHandler:   handler.NewLedgerHandler(reconUC),
		HealthHandler:   handler.NewHealthHandler(checks),
		TokenVerifier:   verifier,
		IdempotencyTTL:  cfg.IdempotencyTTL,
		RateLimiter:     rateLimiter,
		HTTPMetrics:     middleware.NewHTTPMetrics(reg),
		MetricsGatherer: reg,
		Logger:          logger.Component(log, "http"),
	}
	if idempotency != nil {
		routerCfg.IdempotencyStore = idempotency
	}
	a.handler = httpAdapter.NewRouter(routerCfg)

	return a, nil
}
