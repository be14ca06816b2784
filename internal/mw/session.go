package mw

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"restaurant/internal/session"
)

const (
	SessionCookie = "restaurant_sid"

	SessionCtxKey contextKey = "session"
)

// SessionMiddleware attaches the caller's client session, issuing a cookie
// on first contact.
func SessionMiddleware(reg *session.Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := ""
			if c, err := r.Cookie(SessionCookie); err == nil {
				if _, err := uuid.Parse(c.Value); err == nil {
					id = c.Value
				}
			}
			if id == "" {
				id = session.NewID()
				http.SetCookie(w, &http.Cookie{
					Name:     SessionCookie,
					Value:    id,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			s, err := reg.Get(r.Context(), id)
			if err != nil {
				slog.Error("failed to load client session", "error", err)
				w.Header().Set("Retry-After", "1")
				http.Error(w, "session storage unavailable", http.StatusServiceUnavailable)
				return
			}
			ctx := context.WithValue(r.Context(), SessionCtxKey, s)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func SessionFrom(ctx context.Context) (*session.Session, bool) {
	s, ok := ctx.Value(SessionCtxKey).(*session.Session)
	return s, ok
}
