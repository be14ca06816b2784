package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"restaurant/internal/model"
	"restaurant/internal/storage"
)

const (
	tokenKey = "token"
	userKey  = "user"

	tokenTTL = 24 * time.Hour
)

type credential struct {
	user model.AuthUser
	hash []byte
}

// Credentials is the fixed table of staff accounts.
type Credentials struct {
	rows []credential
}

// DemoCredentials builds the three demonstration accounts.
func DemoCredentials() (*Credentials, error) {
	demo := []struct {
		user     model.AuthUser
		password string
	}{
		{model.AuthUser{ID: "1", Name: "Admin", Email: "admin@restaurante.com", Role: model.RoleAdmin}, "admin123"},
		{model.AuthUser{ID: "2", Name: "Cozinheiro", Email: "cozinha@restaurante.com", Role: model.RoleKitchen}, "cozinha123"},
		{model.AuthUser{ID: "3", Name: "Garçom", Email: "garcom@restaurante.com", Role: model.RoleWaiter}, "garcom123"},
	}

	c := &Credentials{}
	for _, d := range demo {
		hash, err := bcrypt.GenerateFromPassword([]byte(d.password), bcrypt.MinCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		c.rows = append(c.rows, credential{user: d.user, hash: hash})
	}
	return c, nil
}

// Match returns the account whose email and password both match.
func (c *Credentials) Match(email, password string) (model.AuthUser, error) {
	for _, row := range c.rows {
		if row.user.Email != email {
			continue
		}
		if err := bcrypt.CompareHashAndPassword(row.hash, []byte(password)); err != nil {
			return model.AuthUser{}, ErrInvalidCredentials
		}
		return row.user, nil
	}
	return model.AuthUser{}, ErrInvalidCredentials
}

func IssueToken(user model.AuthUser, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"name":    user.Name,
		"email":   user.Email,
		"role":    string(user.Role),
		"exp":     jwt.NewNumericDate(time.Now().Add(tokenTTL)),
	})

	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseToken validates a token produced by IssueToken and returns its user.
func ParseToken(tokenString, secret string) (*model.AuthUser, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}

	id, _ := claims["user_id"].(string)
	role, _ := claims["role"].(string)
	if id == "" || role == "" {
		return nil, errors.New("token missing user_id or role")
	}
	name, _ := claims["name"].(string)
	email, _ := claims["email"].(string)

	return &model.AuthUser{ID: id, Name: name, Email: email, Role: model.Role(role)}, nil
}

// AuthManager holds the staff session of one client.
type AuthManager struct {
	mu    sync.Mutex
	state model.AuthState
	token string

	store   storage.Store
	creds   *Credentials
	secret  string
	latency time.Duration
	logger  *slog.Logger
}

type AuthOptions struct {
	Credentials *Credentials
	Secret      string
	Latency     time.Duration
	Logger      *slog.Logger
}

// NewAuthManager restores a saved session from store when both the token and
// the user record are present. The token is not re-validated. A store failure
// other than a missing key is returned instead of yielding a logged out state.
func NewAuthManager(ctx context.Context, store storage.Store, opts AuthOptions) (*AuthManager, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	m := &AuthManager{
		state:   model.AuthState{Loading: true},
		store:   store,
		creds:   opts.Credentials,
		secret:  opts.Secret,
		latency: opts.Latency,
		logger:  opts.Logger,
	}
	if err := m.bootstrap(ctx); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *AuthManager) bootstrap(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	defer func() { m.state.Loading = false }()

	token, err := m.store.Get(ctx, tokenKey)
	if err != nil {
		return ignoreNotFound("load token", err)
	}
	raw, err := m.store.Get(ctx, userKey)
	if err != nil {
		return ignoreNotFound("load user", err)
	}

	var user model.AuthUser
	if err := json.Unmarshal(raw, &user); err != nil {
		m.logger.Warn("discarding unreadable user record", "error", err)
		return nil
	}

	m.token = string(token)
	m.state.User = &user
	m.state.Authenticated = true
	return nil
}

func ignoreNotFound(op string, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}

// Login checks email and password against the credential table. On failure
// the previous session, if any, is left as it was.
func (m *AuthManager) Login(ctx context.Context, email, password string) (model.AuthUser, string, error) {
	m.setLoading(true)

	user, token, err := m.login(ctx, email, password)
	if err != nil {
		m.setLoading(false)
		return model.AuthUser{}, "", err
	}

	m.mu.Lock()
	m.token = token
	m.state = model.AuthState{User: &user, Authenticated: true}
	m.mu.Unlock()

	m.logger.Info("staff logged in", "user", user.ID, "role", user.Role)
	return user, token, nil
}

func (m *AuthManager) login(ctx context.Context, email, password string) (model.AuthUser, string, error) {
	if err := simulateLatency(ctx, m.latency); err != nil {
		return model.AuthUser{}, "", fmt.Errorf("login: %w", err)
	}
	if m.creds == nil {
		return model.AuthUser{}, "", ErrInvalidCredentials
	}

	user, err := m.creds.Match(email, password)
	if err != nil {
		return model.AuthUser{}, "", err
	}

	token, err := IssueToken(user, m.secret)
	if err != nil {
		return model.AuthUser{}, "", err
	}

	raw, err := json.Marshal(user)
	if err != nil {
		return model.AuthUser{}, "", fmt.Errorf("encode user: %w", err)
	}
	// two independent writes, a crash in between leaves a session that bootstrap ignores
	if err := m.store.Set(ctx, tokenKey, []byte(token)); err != nil {
		m.logger.Error("failed to save token", "error", err)
	}
	if err := m.store.Set(ctx, userKey, raw); err != nil {
		m.logger.Error("failed to save user", "error", err)
	}

	return user, token, nil
}

func (m *AuthManager) Logout(ctx context.Context) {
	if err := m.store.Delete(ctx, tokenKey); err != nil {
		m.logger.Error("failed to delete token", "error", err)
	}
	if err := m.store.Delete(ctx, userKey); err != nil {
		m.logger.Error("failed to delete user", "error", err)
	}

	m.mu.Lock()
	m.token = ""
	m.state = model.AuthState{}
	m.mu.Unlock()
}

func (m *AuthManager) State() model.AuthState {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.state
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}

func (m *AuthManager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

func (m *AuthManager) setLoading(v bool) {
	m.mu.Lock()
	m.state.Loading = v
	m.mu.Unlock()
}

type GuardDecision int

const (
	GuardAllow GuardDecision = iota
	GuardLoading
	GuardRedirect
)

// Guard decides what a protected view shows for state.
func Guard(state model.AuthState) GuardDecision {
	switch {
	case state.Loading:
		return GuardLoading
	case !state.Authenticated:
		return GuardRedirect
	default:
		return GuardAllow
	}
}
