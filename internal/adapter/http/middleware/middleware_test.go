package middleware

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/iho/budgetledger/internal/infrastructure/auth"
)

type stubVerifier struct {
	owner string
	err   error
}

func (s stubVerifier) Verify(string) (*auth.Claims, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &auth.Claims{OwnerID: s.owner}, nil
}

func TestOwnerMiddleware(t *testing.T) {
	testCases := []struct {
		name       string
		verifier   TokenVerifier
		headers    map[string]string
		wantStatus int
		wantOwner  string
	}{
		{
			name:       "header owner",
			headers:    map[string]string{OwnerHeader: "alice"},
			wantStatus: http.StatusOK,
			wantOwner:  "alice",
		},
		{
			name:       "missing header",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "owner with control characters",
			headers:    map[string]string{OwnerHeader: "al\tice"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "bearer token",
			verifier:   stubVerifier{owner: "bob"},
			headers:    map[string]string{"Authorization": "Bearer abc"},
			wantStatus: http.StatusOK,
			wantOwner:  "bob",
		},
		{
			name:       "header ignored when tokens are required",
			verifier:   stubVerifier{owner: "bob"},
			headers:    map[string]string{OwnerHeader: "alice"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "malformed authorization",
			verifier:   stubVerifier{owner: "bob"},
			headers:    map[string]string{"Authorization": "Basic abc"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "rejected token",
			verifier:   stubVerifier{err: auth.ErrExpiredToken},
			headers:    map[string]string{"Authorization": "Bearer abc"},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var gotOwner string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotOwner, _ = OwnerFromContext(r.Context())
			})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			rr := httptest.NewRecorder()

			Owner(tc.verifier)(next).ServeHTTP(rr, req)

			if rr.Code != tc.wantStatus {
				t.Fatalf("expected status %d, got %d", tc.wantStatus, rr.Code)
			}
			if gotOwner != tc.wantOwner {
				t.Fatalf("expected owner %q, got %q", tc.wantOwner, gotOwner)
			}
		})
	}
}

func TestRateLimiterRejectsBurstOverflow(t *testing.T) {
	hits := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "hits"}, []string{"ip"})
	rl := NewRateLimiter(0.001, 2, hits)
	handler := rl.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("unexpected status sequence %v", codes)
	}
	if got := testutil.ToFloat64(hits.WithLabelValues("10.0.0.1")); got != 1 {
		t.Fatalf("expected one recorded hit, got %v", got)
	}

	// A different client has its own bucket.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "10.0.0.2, 172.16.0.1")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected other client to pass, got %d", rr.Code)
	}
}

func TestRateLimiterCleanupDropsIdleVisitors(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(10, 10, nil)
	rl.now = func() time.Time { return now }

	rl.getLimiter("old")
	now = now.Add(time.Hour)
	rl.getLimiter("fresh")

	if removed := rl.CleanupLimiters(30 * time.Minute); removed != 1 {
		t.Fatalf("expected 1 removed limiter, got %d", removed)
	}
	if _, ok := rl.visitors["fresh"]; !ok {
		t.Fatalf("fresh visitor should survive cleanup")
	}
}

func TestRecoveryTurnsPanicIntoJSON500(t *testing.T) {
	var buf bytes.Buffer
	handler := Recovery(zerolog.New(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(errors.New("boom"))
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/x", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "internal server error") {
		t.Fatalf("unexpected body %s", rr.Body.String())
	}
	if !strings.Contains(buf.String(), "panic recovered") {
		t.Fatalf("expected panic to be logged, got %s", buf.String())
	}
}

func TestLoggingIncludesOwnerAndStatus(t *testing.T) {
	var buf bytes.Buffer
	logging := NewLoggingMiddleware(zerolog.New(&buf))
	handler := Owner(nil)(logging.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/budgets/b1", nil)
	req.Header.Set(OwnerHeader, "alice")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	for _, want := range []string{`"owner_id":"alice"`, `"status":404`, `"level":"warn"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in log line %s", want, out)
		}
	}
}
