package mw

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant/internal/model"
	"restaurant/internal/service"
	"restaurant/internal/session"
	"restaurant/internal/storage"
)

const secret = "mw-secret"

type downStore struct {
	storage.Store
}

func (downStore) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("connection refused")
}

func newRegistryOn(t *testing.T, store storage.Store) *session.Registry {
	t.Helper()
	creds, err := service.DemoCredentials()
	require.NoError(t, err)
	return session.NewRegistry(store, service.AuthOptions{Credentials: creds, Secret: secret}, nil)
}

func newRegistry(t *testing.T) *session.Registry {
	return newRegistryOn(t, storage.NewMemoryStore())
}

func echoUser(w http.ResponseWriter, r *http.Request) {
	u, ok := UserFrom(r.Context())
	if !ok {
		http.Error(w, "no user", http.StatusInternalServerError)
		return
	}
	_, _ = w.Write([]byte(string(u.Role)))
}

func TestSessionMiddleware(t *testing.T) {
	reg := newRegistry(t)
	var seen *session.Session
	h := SessionMiddleware(reg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = SessionFrom(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookie, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	require.NotNil(t, seen)
	first := seen

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Empty(t, rec.Result().Cookies())
	assert.Same(t, first, seen)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "../not-a-uuid"})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Len(t, rec.Result().Cookies(), 1)
	assert.NotSame(t, first, seen)
}

func TestSessionMiddlewareStorageDown(t *testing.T) {
	reg := newRegistryOn(t, downStore{Store: storage.NewMemoryStore()})
	called := false
	h := SessionMiddleware(reg)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/cart", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	assert.False(t, called)
	assert.Equal(t, 0, reg.Len())
}

func TestAuthMiddleware(t *testing.T) {
	token, err := service.IssueToken(model.AuthUser{ID: "3", Role: model.RoleWaiter}, secret)
	require.NoError(t, err)
	forged, err := service.IssueToken(model.AuthUser{ID: "1", Role: model.RoleAdmin}, "other")
	require.NoError(t, err)

	tests := []struct {
		name         string
		header       string
		login        bool
		wantStatus   int
		wantBody     string
		wantLocation string
	}{
		{name: "anonymous", wantStatus: http.StatusUnauthorized, wantLocation: LoginPath},
		{name: "bearer", header: "Bearer " + token, wantStatus: http.StatusOK, wantBody: "waiter"},
		{name: "forgedBearer", header: "Bearer " + forged, wantStatus: http.StatusUnauthorized},
		{name: "badScheme", header: "Token " + token, wantStatus: http.StatusUnauthorized},
		{name: "sessionLogin", login: true, wantStatus: http.StatusOK, wantBody: "admin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := newRegistry(t)
			s, err := reg.Get(context.Background(), session.NewID())
			require.NoError(t, err)
			if tt.login {
				_, _, err := s.Auth.Login(context.Background(), "admin@restaurante.com", "admin123")
				require.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			req = req.WithContext(context.WithValue(req.Context(), SessionCtxKey, s))
			rec := httptest.NewRecorder()

			AuthMiddleware(secret)(http.HandlerFunc(echoUser)).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
			if tt.wantLocation != "" {
				assert.Equal(t, tt.wantLocation, rec.Header().Get("Location"))
			}
		})
	}
}
