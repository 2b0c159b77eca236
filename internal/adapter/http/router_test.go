package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/iho/budgetledger/internal/adapter/http/dto"
	"github.com/iho/budgetledger/internal/adapter/http/handler"
	apimiddleware "github.com/iho/budgetledger/internal/adapter/http/middleware"
	"github.com/iho/budgetledger/internal/adapter/repository/memory"
	"github.com/iho/budgetledger/internal/infrastructure/metrics"
	"github.com/iho/budgetledger/internal/infrastructure/timezone"
	"github.com/iho/budgetledger/internal/usecase"
	"github.com/iho/budgetledger/internal/usecase/mocks"
)

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_RateLimiterBlocksExcessRequests(t *testing.T) {
	rl := apimiddleware.NewRateLimiter(1, 1, nil)
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.RateLimiter = rl
	}))

	req1 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req1.RemoteAddr = "1.2.3.4:1234"
	rec1 := httptest.NewRecorder()
	router.ServeHTTP(rec1, req1)
	if rec1.Code != http.StatusOK {
		t.Fatalf("expected first request to succeed, got %d", rec1.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req2.RemoteAddr = "1.2.3.4:1234"
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled, got %d", rec2.Code)
	}
}

func TestNewRouter_IdempotencyMiddlewareInvokesStore(t *testing.T) {
	store := &stubIdempotencyStore{}
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.IdempotencyStore = store
	}))

	body := `{"name":"Main","type":"checking"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apimiddleware.OwnerHeader, "alice")
	req.Header.Set(apimiddleware.IdempotencyKeyHeader, "key-123")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.HasPrefix(store.checkedKey, "alice:POST:") {
		t.Fatalf("expected an owner scoped idempotency key, got %q", store.checkedKey)
	}
	if !store.updated {
		t.Fatalf("expected the successful response to be stored")
	}
}

func TestNewRouter_MetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.HTTPMetrics = apimiddleware.NewHTTPMetrics(reg)
		cfg.MetricsGatherer = reg
	}))

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "http_requests_total") {
		t.Fatalf("expected http metrics in exposition output")
	}
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig())

	chiRoutes, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Routes")
	}

	seen := map[string]bool{}
	if err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"POST /api/v1/accounts/",
		"GET /api/v1/accounts/",
		"GET /api/v1/accounts/{id}",
		"DELETE /api/v1/accounts/{id}",
		"GET /api/v1/accounts/{id}/movements",
		"POST /api/v1/movements/",
		"GET /api/v1/movements/",
		"PATCH /api/v1/movements/{id}",
		"DELETE /api/v1/movements/{id}",
		"POST /api/v1/movements/{id}/rectify",
		"POST /api/v1/budgets/",
		"GET /api/v1/budgets/",
		"DELETE /api/v1/budgets/{id}",
		"POST /api/v1/budgets/{id}/recompute",
		"GET /api/v1/ledger/reconciliation",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}

func TestNewRouter_LedgerScenario(t *testing.T) {
	router := NewRouter(newRouterConfig())
	c := &apiClient{t: t, router: router, owner: "alice"}

	var main, savings dto.AccountResponse
	c.do(http.MethodPost, "/api/v1/accounts", `{"name":"Main","type":"checking"}`, http.StatusCreated, &main)
	c.do(http.MethodPost, "/api/v1/accounts", `{"name":"Savings","type":"savings"}`, http.StatusCreated, &savings)

	var budget dto.BudgetResponse
	c.do(http.MethodPost, "/api/v1/budgets",
		`{"category_id":"groceries","limit":"100","start_date":"2000-01-01","end_date":"2099-12-31"}`,
		http.StatusCreated, &budget)

	c.do(http.MethodPost, "/api/v1/movements",
		`{"account_id":"`+main.ID+`","kind":"income","amount":"1000","category_id":"salary"}`,
		http.StatusCreated, nil)

	var groceries dto.MovementResponse
	c.do(http.MethodPost, "/api/v1/movements",
		`{"account_id":"`+main.ID+`","kind":"expense","amount":"70","category_id":"groceries","description":"weekly shop"}`,
		http.StatusCreated, &groceries)

	var leg dto.MovementResponse
	c.do(http.MethodPost, "/api/v1/movements",
		`{"account_id":"`+main.ID+`","kind":"expense","amount":"300","category_id":"transfer-out","counterpart_account_id":"`+savings.ID+`"}`,
		http.StatusCreated, &leg)
	if leg.TransferID == nil || leg.CounterpartAccountID == nil || *leg.CounterpartAccountID != savings.ID {
		t.Fatalf("expected transfer link on the outgoing leg, got %+v", leg)
	}

	var acc dto.AccountResponse
	c.do(http.MethodGet, "/api/v1/accounts/"+main.ID, "", http.StatusOK, &acc)
	if acc.Balance != "630" {
		t.Fatalf("expected balance 630, got %s", acc.Balance)
	}
	c.do(http.MethodGet, "/api/v1/accounts/"+savings.ID, "", http.StatusOK, &acc)
	if acc.Balance != "300" {
		t.Fatalf("expected savings balance 300, got %s", acc.Balance)
	}

	c.do(http.MethodGet, "/api/v1/budgets/"+budget.ID, "", http.StatusOK, &budget)
	if budget.Progress != "70" || budget.Remaining != "30" {
		t.Fatalf("expected progress 70 remaining 30, got %+v", budget)
	}

	var page dto.ListMovementsResponse
	c.do(http.MethodGet, "/api/v1/movements?category_id=groceries", "", http.StatusOK, &page)
	if page.Count != 1 || page.Movements[0].ID != groceries.ID {
		t.Fatalf("expected the groceries movement, got %+v", page)
	}

	// Editing the category away from an active budget is blocked.
	c.do(http.MethodPatch, "/api/v1/movements/"+groceries.ID, `{"category_id":"dining"}`, http.StatusConflict, nil)
	c.do(http.MethodPatch, "/api/v1/movements/"+groceries.ID, `{"description":"monthly shop"}`, http.StatusOK, nil)

	var rectification dto.MovementResponse
	c.do(http.MethodPost, "/api/v1/movements/"+groceries.ID+"/rectify", "", http.StatusCreated, &rectification)
	if rectification.OriginalMovementID == nil || *rectification.OriginalMovementID != groceries.ID {
		t.Fatalf("expected rectification to point at the original, got %+v", rectification)
	}
	c.do(http.MethodPost, "/api/v1/movements/"+groceries.ID+"/rectify", "", http.StatusConflict, nil)
	c.do(http.MethodDelete, "/api/v1/movements/"+groceries.ID, "", http.StatusConflict, nil)

	c.do(http.MethodPost, "/api/v1/budgets/"+budget.ID+"/recompute", "", http.StatusOK, &budget)
	if budget.Progress != "0" {
		t.Fatalf("expected progress 0 after rectification, got %s", budget.Progress)
	}

	var report dto.ReconciliationResponse
	c.do(http.MethodGet, "/api/v1/ledger/reconciliation", "", http.StatusOK, &report)
	if !report.Consistent || report.TotalAccounts != 2 {
		t.Fatalf("expected a consistent report over 2 accounts, got %+v", report)
	}

	// Other owners cannot see alice's data.
	bob := &apiClient{t: t, router: router, owner: "bob"}
	bob.do(http.MethodGet, "/api/v1/accounts/"+main.ID, "", http.StatusNotFound, nil)

	anonymous := &apiClient{t: t, router: router}
	anonymous.do(http.MethodGet, "/api/v1/accounts", "", http.StatusUnauthorized, nil)
}

type apiClient struct {
	t      *testing.T
	router http.Handler
	owner  string
}

func (c *apiClient) do(method, path, body string, wantStatus int, out any) {
	c.t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if c.owner != "" {
		req.Header.Set(apimiddleware.OwnerHeader, c.owner)
	}
	rec := httptest.NewRecorder()

	c.router.ServeHTTP(rec, req)

	if rec.Code != wantStatus {
		c.t.Fatalf("%s %s: expected %d, got %d: %s", method, path, wantStatus, rec.Code, rec.Body.String())
	}
	if out != nil {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			c.t.Fatalf("%s %s: failed to decode response: %v", method, path, err)
		}
	}
}

func newRouterConfig(opts ...func(*RouterConfig)) RouterConfig {
	store := memory.NewStore()
	txManager := memory.NewTxManager(store)
	accountRepo := memory.NewAccountRepository(store)
	movementRepo := memory.NewMovementRepository(store)
	budgetRepo := memory.NewBudgetRepository(store)
	outboxRepo := memory.NewOutboxRepository(store)
	idGen := mocks.NewIDGeneratorStub()
	resolver := timezone.Default()
	m := metrics.NewWith(prometheus.NewRegistry())
	log := zerolog.Nop()

	budgets := usecase.NewBudgetUseCase(txManager, budgetRepo, movementRepo, outboxRepo, idGen, resolver, memory.NewRecomputeQueue(), m, log)
	ledger := usecase.NewLedgerUseCase(txManager, accountRepo, movementRepo, outboxRepo, idGen, budgets, resolver, m, log)
	accounts := usecase.NewAccountUseCase(txManager, accountRepo, movementRepo, outboxRepo, idGen, budgets, 0, m, log)
	recon := usecase.NewReconciliationUseCase(accountRepo, movementRepo, budgetRepo, memory.NewLedgerRepository(store), resolver, m)

	cfg := RouterConfig{
		AccountHandler:  handler.NewAccountHandler(accounts, ledger),
		MovementHandler: handler.NewMovementHandler(ledger),
		BudgetHandler:   handler.NewBudgetHandler(budgets),
		LedgerHandler:   handler.NewLedgerHandler(recon),
		HealthHandler:   handler.NewHealthHandler(nil),
		Logger:          log,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

type stubIdempotencyStore struct {
	checkedKey string
	updated    bool
}

func (s *stubIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	s.checkedKey = key
	return false, nil, nil
}

func (s *stubIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	s.updated = true
	return nil
}

func (s *stubIdempotencyStore) Release(ctx context.Context, key string) error {
	return nil
}
