package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

type contextKey string

// UserIDKey is the context key under which the authenticated user's ID is stored.
const UserIDKey = contextKey("userID")

// UserIDFromContext extracts the authenticated user's ID from a request context.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDKey).(int64)
	return userID, ok
}

// Middleware protects routes with bearer token authentication. Every
// failure short-circuits before the wrapped handler runs and is mapped
// to a fixed status and message, so an auth problem can never surface
// as a 500.
func (m *TokenManager) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := bearerToken(r)
			if tokenStr == "" {
				writeAuthError(w, http.StatusUnauthorized, "Missing Authorization Header")
				return
			}

			userID, err := m.Validate(tokenStr)
			if err != nil {
				status, msg := classify(err)
				writeAuthError(w, status, msg)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the credential from the Authorization header.
// A header without the Bearer scheme carries no credential and counts
// as missing.
func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// classify maps every validation failure to a status and message. The
// mapping is total over the token error sentinels; anything unexpected
// falls back to the malformed classification rather than a 500.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, ErrTokenExpired):
		return http.StatusUnauthorized, "Token has expired"
	case errors.Is(err, ErrTokenRevoked):
		return http.StatusUnauthorized, "Token has been revoked"
	case errors.Is(err, ErrTokenNotFresh):
		return http.StatusUnauthorized, "Fresh token required"
	default:
		return http.StatusUnprocessableEntity, "Invalid token"
	}
}

func writeAuthError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
