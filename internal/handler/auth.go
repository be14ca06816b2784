package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"restaurant/internal/service"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := clientSession(w, r)
		if !ok {
			return
		}

		var req loginRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		user, token, err := s.Auth.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrInvalidCredentials):
				http.Error(w, "invalid credentials", http.StatusUnauthorized)
			default:
				slog.Error("login failed", "error", err)
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.Header().Set("Authorization", "Bearer "+token)
		writeJSON(w, http.StatusOK, user)
	}
}

func LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := clientSession(w, r)
		if !ok {
			return
		}
		s.Auth.Logout(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}
}

func SessionStateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := clientSession(w, r)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, s.Auth.State())
	}
}
