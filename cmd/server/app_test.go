package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/budgetledger/internal/adapter/http/middleware"
	"github.com/iho/budgetledger/internal/infrastructure/config"
)

func memoryConfig(t *testing.T, redisURL string) *config.Config {
	t.Helper()
	t.Setenv("STORE_DRIVER", config.StoreDriverMemory)
	t.Setenv("REDIS_URL", redisURL)
	cfg, err := config.Load(t.TempDir() + "/missing.env")
	require.NoError(t, err)
	return cfg
}

func TestNewAppMemoryWithoutRedis(t *testing.T) {
	a, err := newApp(context.Background(), memoryConfig(t, ""), zerolog.Nop())
	require.NoError(t, err)
	defer a.close()

	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	n, err := a.budgets.RecomputeAllActive(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestNewAppReplaysIdempotentRequestsWithRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	a, err := newApp(context.Background(), memoryConfig(t, "redis://"+mr.Addr()), zerolog.Nop())
	require.NoError(t, err)
	defer a.close()

	post := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts", strings.NewReader(`{"name":"Main","type":"cash"}`))
		req.Header.Set(middleware.OwnerHeader, "alice")
		req.Header.Set(middleware.IdempotencyKeyHeader, "create-main")
		rec := httptest.NewRecorder()
		a.handler.ServeHTTP(rec, req)
		return rec
	}

	first := post()
	require.Equal(t, http.StatusCreated, first.Code, first.Body.String())

	second := post()
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, "true", second.Header().Get(middleware.IdempotencyReplayHeader))
	assert.JSONEq(t, first.Body.String(), second.Body.String())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	req.Header.Set(middleware.OwnerHeader, "alice")
	a.handler.ServeHTTP(rec, req)
	assert.Contains(t, rec.Body.String(), `"count":1`)

	ready := httptest.NewRecorder()
	a.handler.ServeHTTP(ready, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, ready.Code)
	assert.Contains(t, ready.Body.String(), `"redis":"ok"`)
}

func TestNewAppRejectsBadSchedule(t *testing.T) {
	cfg := memoryConfig(t, "")
	cfg.ExpirySchedule = "not a cron spec"

	_, err := newApp(context.Background(), cfg, zerolog.Nop())
	assert.Error(t, err)
}
