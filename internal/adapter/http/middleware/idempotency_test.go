package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type fakeIdempotencyStore struct {
	checkAndSetFn func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	updateFn      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
	released      []string
}

func (f *fakeIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if f.checkAndSetFn != nil {
		return f.checkAndSetFn(ctx, key, response, ttl)
	}
	return false, nil, nil
}

func (f *fakeIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, key, response, ttl)
	}
	return nil
}

func (f *fakeIdempotencyStore) Release(_ context.Context, key string) error {
	f.released = append(f.released, key)
	return nil
}

func newOwnedRequest(method, path, key string) *http.Request {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(`{}`))
	if key != "" {
		req.Header.Set(IdempotencyKeyHeader, key)
	}
	ctx := context.WithValue(req.Context(), OwnerContextKey, "owner-1")
	return req.WithContext(ctx)
}

func TestIdempotencyMiddleware_StoreErrorIsUnavailable(t *testing.T) {
	var called bool
	store := &fakeIdempotencyStore{
		checkAndSetFn: func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
			return false, nil, context.DeadlineExceeded
		},
	}
	mw := NewIdempotencyMiddleware(store, time.Hour, zerolog.Nop())

	rr := httptest.NewRecorder()
	mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})).ServeHTTP(rr, newOwnedRequest(http.MethodPost, "/api/v1/movements", "key-err"))

	if called {
		t.Fatalf("handler should not be called when store errors")
	}
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rr.Code)
	}
}

func TestIdempotencyMiddleware_FailedResponses(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		released bool
	}{
		{name: "validation error", status: http.StatusBadRequest, released: true},
		{name: "conflict", status: http.StatusConflict, released: true},
		{name: "failed before commit", status: http.StatusServiceUnavailable, released: true},
		{name: "commit outcome unknown", status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stored []byte
			store := &fakeIdempotencyStore{
				updateFn: func(ctx context.Context, key string, response []byte, ttl time.Duration) error {
					stored = append([]byte(nil), response...)
					return nil
				},
			}
			mw := NewIdempotencyMiddleware(store, time.Hour, zerolog.Nop())

			rr := httptest.NewRecorder()
			mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeJSONError(w, tt.status, "failed")
			})).ServeHTTP(rr, newOwnedRequest(http.MethodPost, "/api/v1/movements", "key-fail"))

			if tt.released {
				if len(store.released) != 1 || stored != nil {
					t.Fatalf("expected the claim to be released, released=%v stored=%s", store.released, stored)
				}
				return
			}

			if len(store.released) != 0 {
				t.Fatalf("claim must be kept when the write may have been applied, released %v", store.released)
			}
			var got storedResponse
			if err := json.Unmarshal(stored, &got); err != nil {
				t.Fatalf("stored payload is not json: %v", err)
			}
			if got.Status != tt.status {
				t.Fatalf("expected stored status %d, got %d", tt.status, got.Status)
			}
		})
	}
}

func TestIdempotencyMiddleware_SkipsReadsAndKeylessRequests(t *testing.T) {
	testCases := []struct {
		name   string
		method string
		key    string
	}{
		{name: "get with key", method: http.MethodGet, key: "key-1"},
		{name: "post without key", method: http.MethodPost},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store := &fakeIdempotencyStore{
				checkAndSetFn: func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
					t.Fatalf("store should not be consulted")
					return false, nil, nil
				},
			}
			mw := NewIdempotencyMiddleware(store, time.Hour, zerolog.Nop())

			called := false
			rr := httptest.NewRecorder()
			mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			})).ServeHTTP(rr, newOwnedRequest(tc.method, "/api/v1/accounts", tc.key))

			if !called {
				t.Fatalf("expected next handler to be called")
			}
		})
	}
}

func TestIdempotencyMiddleware_ReplaysStoredResponse(t *testing.T) {
	stored, _ := json.Marshal(storedResponse{Status: http.StatusCreated, Body: json.RawMessage(`{"cached":true}`)})
	store := &fakeIdempotencyStore{
		checkAndSetFn: func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
			return true, stored, nil
		},
	}
	mw := NewIdempotencyMiddleware(store, time.Hour, zerolog.Nop())

	rr := httptest.NewRecorder()
	mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler should not be called when cached response exists")
	})).ServeHTTP(rr, newOwnedRequest(http.MethodPost, "/api/v1/movements", "key-123"))

	if rr.Header().Get(IdempotencyReplayHeader) != "true" {
		t.Fatalf("expected %s header to be set", IdempotencyReplayHeader)
	}
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected replayed status 201, got %d", rr.Code)
	}
	if got := rr.Body.String(); got != `{"cached":true}` {
		t.Fatalf("unexpected cached body: %s", got)
	}
}

func TestIdempotencyMiddleware_PendingKeyConflicts(t *testing.T) {
	store := &fakeIdempotencyStore{
		checkAndSetFn: func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
			return true, []byte(pendingMarker), nil
		},
	}
	mw := NewIdempotencyMiddleware(store, time.Hour, zerolog.Nop())

	rr := httptest.NewRecorder()
	mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler should not run while the key is pending")
	})).ServeHTTP(rr, newOwnedRequest(http.MethodPatch, "/api/v1/movements/m1", "key-1"))

	if rr.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", rr.Code)
	}
}

func TestIdempotencyMiddleware_StoresSuccessfulResponse(t *testing.T) {
	var (
		storedKey  string
		storedBody []byte
		storedTTL  time.Duration
	)
	store := &fakeIdempotencyStore{
		updateFn: func(ctx context.Context, key string, response []byte, ttl time.Duration) error {
			storedKey = key
			storedBody = append([]byte(nil), response...)
			storedTTL = ttl
			return nil
		},
	}
	mw := NewIdempotencyMiddleware(store, 2*time.Hour, zerolog.Nop())

	rr := httptest.NewRecorder()
	mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})).ServeHTTP(rr, newOwnedRequest(http.MethodPost, "/api/v1/movements", "key-456"))

	if rr.Code != http.StatusCreated {
		t.Fatalf("unexpected status code: %d", rr.Code)
	}
	if !strings.HasPrefix(storedKey, "owner-1:POST:/api/v1/movements:") {
		t.Fatalf("expected an owner scoped key, got %q", storedKey)
	}
	if storedTTL != 2*time.Hour {
		t.Fatalf("expected configured ttl, got %s", storedTTL)
	}

	var got storedResponse
	if err := json.Unmarshal(storedBody, &got); err != nil {
		t.Fatalf("stored payload is not json: %v", err)
	}
	if got.Status != http.StatusCreated || string(got.Body) != `{"ok":true}` {
		t.Fatalf("unexpected stored response: %+v", got)
	}
}
