package middlewares

import (
	"context"
	"net/http"
	"strings"

	"weexpense/internal/auth"
	"weexpense/pkg/utils"
)

// JWTMiddleware resolves the bearer token to a live user and stashes the user
// id in the request context. Malformed, expired, and orphaned tokens all look
// the same from outside: a 401.
func JWTMiddleware(tokens *auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				utils.WriteError(w, "missing bearer token", http.StatusUnauthorized)
				return
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				utils.WriteError(w, "invalid authorization header", http.StatusUnauthorized)
				return
			}

			user, err := tokens.Resolve(r.Context(), parts[1])
			if err != nil {
				if err == auth.ErrTokenExpired {
					utils.WriteError(w, "token expired", http.StatusUnauthorized)
					return
				}
				utils.WriteError(w, "could not validate credentials", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), utils.UserIDKey, user.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// MiddlewaresExcludePaths applies mw to everything except the listed paths.
// Used to keep registration, login and refresh reachable without a token.
func MiddlewaresExcludePaths(mw func(http.Handler) http.Handler, excluded ...string) func(http.Handler) http.Handler {
	skip := make(map[string]bool, len(excluded))
	for _, path := range excluded {
		skip[path] = true
	}

	return func(next http.Handler) http.Handler {
		wrapped := mw(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if skip[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}
			wrapped.ServeHTTP(w, r)
		})
	}
}
