package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

// UsernameContextKey is the key under which the authenticated username is
// stored in the request context.
const UsernameContextKey ContextKey = "username"

// RequireAuth verifies the bearer token against the shared secret. The check
// is signature + expiry only; no credential lookup happens per request.
func RequireAuth(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Authorization header required"})
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Authorization header format must be Bearer {token}"})
				return
			}

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
				}
				return secret, nil
			})
			if err != nil {
				if errors.Is(err, jwt.ErrSignatureInvalid) {
					writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid token signature"})
					return
				}
				writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid token: " + err.Error()})
				return
			}
			if !token.Valid {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid token"})
				return
			}

			ctx := context.WithValue(r.Context(), UsernameContextKey, claims.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
