// Package middleware holds the HTTP middleware stack: session authentication,
// request IDs, and per-client rate limiting.
package middleware

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"research-tracker/internal/auth"
	"research-tracker/internal/domain"
)

// Authenticate verifies the bearer token on every request and stores the
// resulting principal in the context. Requests without a verifiable session
// credential get a uniform 401; the rejection reason stays in the server log.
func Authenticate(verifier *auth.TokenVerifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeUnauthorized(w)
				return
			}

			principal, err := verifier.Verify(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				var authErr *domain.AuthError
				if errors.As(err, &authErr) {
					logger.Warn("session credential rejected",
						"reason", string(authErr.Reason), "path", r.URL.Path)
				}
				writeUnauthorized(w)
				return
			}

			ctx := domain.WithPrincipal(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"code":    401,
		"message": "unauthorized: provide a valid Bearer token",
	})
}
