package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/iho/budgetledger/internal/adapter/http/dto"
	"github.com/iho/budgetledger/internal/adapter/http/middleware"
	"github.com/iho/budgetledger/internal/domain"
)

const (
	defaultPageLimit = 20
	maxRequestBody   = 1 << 20
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// writeDomainError maps err to a status. Storage details of transient and
// server-side failures stay in the logs.
func writeDomainError(w http.ResponseWriter, message string, err error) {
	status := mapDomainError(err)
	if domain.KindOf(err) == domain.KindIndeterminate {
		writeError(w, status, message, "outcome unknown, check before retrying")
		return
	}
	switch status {
	case http.StatusServiceUnavailable:
		writeError(w, status, message, "temporarily unavailable, retry later")
	case http.StatusInternalServerError:
		writeError(w, status, message, "internal error")
	default:
		writeError(w, status, message, err.Error())
	}
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	var pf *domain.PartialFailureError
	if errors.As(err, &pf) {
		if pf.RolledBack {
			return http.StatusServiceUnavailable
		}
		return http.StatusInternalServerError
	}

	switch domain.KindOf(err) {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	case domain.KindTransient:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}

// decodeJSON decodes a bounded request body, rejecting unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// ownerOf returns the owner resolved by the Owner middleware, writing a 401
// when it is missing.
func ownerOf(w http.ResponseWriter, r *http.Request) (string, bool) {
	owner, ok := middleware.OwnerFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "owner is not set")
	}
	return owner, ok
}
