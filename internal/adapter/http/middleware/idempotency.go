package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/budgetledger/internal/usecase"
)

const (
	// IdempotencyKeyHeader is the header name for idempotency keys.
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyReplayHeader marks a replayed response.
	IdempotencyReplayHeader = "X-Idempotency-Replay"

	defaultIdempotencyTTL = 24 * time.Hour
	pendingMarker         = "processing"
)

// IdempotencyStore is a usecase.IdempotencyStore that can also drop a claim,
// so a request that failed may be retried with the same key.
type IdempotencyStore interface {
	usecase.IdempotencyStore
	Release(ctx context.Context, key string) error
}

// storedResponse is what gets replayed for a repeated key.
type storedResponse struct {
	Status int             `json:"status"`
	Body   json.RawMessage `json:"body"`
}

// IdempotencyMiddleware replays the stored response for a repeated
// Idempotency-Key. Keys are scoped to the owner, method and path.
type IdempotencyMiddleware struct {
	store IdempotencyStore
	ttl   time.Duration
	log   zerolog.Logger
}

// NewIdempotencyMiddleware creates a new IdempotencyMiddleware.
func NewIdempotencyMiddleware(store IdempotencyStore, ttl time.Duration, log zerolog.Logger) *IdempotencyMiddleware {
	if ttl <= 0 {
		ttl = defaultIdempotencyTTL
	}
	return &IdempotencyMiddleware{store: store, ttl: ttl, log: log}
}

// Wrap wraps an http.Handler with idempotency checking.
func (m *IdempotencyMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		default:
			next.ServeHTTP(w, r)
			return
		}

		key := r.Header.Get(IdempotencyKeyHeader)
		if key == "" {
			next.ServeHTTP(w, r)
			return
		}
		owner, _ := OwnerFromContext(r.Context())
		scoped := owner + ":" + r.Method + ":" + r.URL.Path + ":" + key

		exists, cached, err := m.store.CheckAndSet(r.Context(), scoped, nil, m.ttl)
		if err != nil {
			m.log.Error().Err(err).Msg("idempotency check failed")
			writeJSONError(w, http.StatusServiceUnavailable, "idempotency check failed")
			return
		}

		if exists {
			if cached == nil || string(cached) == pendingMarker {
				writeJSONError(w, http.StatusConflict, "a request with this idempotency key is in progress")
				return
			}
			var stored storedResponse
			if err := json.Unmarshal(cached, &stored); err != nil || stored.Status == 0 {
				writeJSONError(w, http.StatusConflict, "idempotency key reused with an unreadable response")
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set(IdempotencyReplayHeader, "true")
			w.WriteHeader(stored.Status)
			_, _ = w.Write(stored.Body)
			return
		}

		recorder := &responseRecorder{
			ResponseWriter: w,
			body:           &bytes.Buffer{},
			statusCode:     http.StatusOK,
		}
		next.ServeHTTP(recorder, r)

		// The request is done; a cancelled client must not leave the key claimed.
		ctx := context.WithoutCancel(r.Context())
		if releasable(recorder.statusCode) {
			if err := m.store.Release(ctx, scoped); err != nil {
				m.log.Warn().Err(err).Msg("failed to release idempotency key")
			}
			return
		}

		body := recorder.body.Bytes()
		if len(body) == 0 {
			body = []byte("null")
		}
		payload, err := json.Marshal(storedResponse{Status: recorder.statusCode, Body: body})
		if err != nil {
			// Non-JSON bodies cannot be replayed.
			_ = m.store.Release(ctx, scoped)
			return
		}
		if err := m.store.Update(ctx, scoped, payload, m.ttl); err != nil {
			m.log.Warn().Err(err).Msg("failed to store idempotent response")
		}
	})
}

// releasable reports whether a response proves the request changed nothing, so
// the key may be reused. Client errors and 503 (failed before commit) qualify.
// Any other server error may follow an applied write and is kept for replay.
func releasable(status int) bool {
	switch {
	case status >= 200 && status < 300:
		return false
	case status == http.StatusServiceUnavailable:
		return true
	case status >= 500:
		return false
	default:
		return true
	}
}

type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	body       *bytes.Buffer
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *responseRecorder) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
