package mw

import (
	"context"
	"net/http"
	"strings"

	"restaurant/internal/model"
	"restaurant/internal/service"
)

type contextKey string

const UserCtxKey contextKey = "user"

const LoginPath = "/admin/login"

// AuthMiddleware guards staff routes. A valid Bearer token admits the caller
// directly; otherwise the client session's login decides.
func AuthMiddleware(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if authHeader := r.Header.Get("Authorization"); authHeader != "" {
				parts := strings.Split(authHeader, " ")
				if len(parts) != 2 || parts[0] != "Bearer" {
					http.Error(w, "invalid token format", http.StatusUnauthorized)
					return
				}

				user, err := service.ParseToken(parts[1], jwtSecret)
				if err != nil {
					http.Error(w, "invalid or expired token", http.StatusUnauthorized)
					return
				}

				next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), UserCtxKey, user)))
				return
			}

			s, ok := SessionFrom(r.Context())
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			state := s.Auth.State()
			switch service.Guard(state) {
			case service.GuardLoading:
				w.Header().Set("Retry-After", "1")
				http.Error(w, "session loading", http.StatusServiceUnavailable)
				return
			case service.GuardRedirect:
				w.Header().Set("Location", LoginPath)
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UserCtxKey, state.User)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func UserFrom(ctx context.Context) (*model.AuthUser, bool) {
	u, ok := ctx.Value(UserCtxKey).(*model.AuthUser)
	return u, ok && u != nil
}
