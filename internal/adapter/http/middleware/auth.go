package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/iho/budgetledger/internal/domain"
	"github.com/iho/budgetledger/internal/infrastructure/auth"
)

// ContextKey is the type for context keys
type ContextKey string

const (
	// OwnerContextKey is the context key for the owner a request acts for.
	OwnerContextKey ContextKey = "owner"

	// OwnerHeader carries the owner id when token authentication is disabled.
	OwnerHeader = "X-Owner-ID"
)

// TokenVerifier verifies bearer tokens.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// Owner resolves the owner of every request. With a verifier the owner comes
// from the bearer token; without one the X-Owner-ID header is trusted.
func Owner(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var ownerID string
			if verifier != nil {
				authHeader := r.Header.Get("Authorization")
				if authHeader == "" {
					unauthorized(w, "missing authorization header")
					return
				}

				parts := strings.SplitN(authHeader, " ", 2)
				if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
					unauthorized(w, "invalid authorization header format")
					return
				}

				claims, err := verifier.Verify(parts[1])
				if err != nil {
					unauthorized(w, "invalid or expired token")
					return
				}
				ownerID = claims.OwnerID
			} else {
				ownerID = strings.TrimSpace(r.Header.Get(OwnerHeader))
				if ownerID == "" {
					unauthorized(w, "missing "+OwnerHeader+" header")
					return
				}
			}

			if err := domain.ValidateID(ownerID); err != nil {
				unauthorized(w, "invalid owner id")
				return
			}

			ctx := context.WithValue(r.Context(), OwnerContextKey, ownerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OwnerFromContext returns the owner set by Owner.
func OwnerFromContext(ctx context.Context) (string, bool) {
	owner, ok := ctx.Value(OwnerContextKey).(string)
	return owner, ok && owner != ""
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
