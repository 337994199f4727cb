package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/Girthywoody/law-loyalty-backend/internal/domain"
	"github.com/Girthywoody/law-loyalty-backend/internal/security"
)

type contextKey string

const principalKey contextKey = "principal"

// AuthMiddleware validates the bearer session token and stores the resolved
// principal on the request context.
func AuthMiddleware(tokens security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
				return
			}

			claims, err := tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				respondJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, claims.Principal())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// principalFrom extracts the authenticated principal placed on the context by
// AuthMiddleware.
func principalFrom(r *http.Request) (*domain.Principal, bool) {
	p, ok := r.Context().Value(principalKey).(*domain.Principal)
	return p, ok
}
