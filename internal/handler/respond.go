package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"restaurant/internal/mw"
	"restaurant/internal/session"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response failed", "error", err)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	body := http.MaxBytesReader(w, r.Body, 64<<10)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return false
	}
	return true
}

func clientSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	s, ok := mw.SessionFrom(r.Context())
	if !ok {
		slog.Error("request reached handler without a session", "path", r.URL.Path)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
	return s, ok
}
