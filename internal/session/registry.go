// Package session keeps the per-client state objects: one cart and one staff
// login per browser, both backed by that client's storage scope.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"restaurant/internal/service"
	"restaurant/internal/storage"
)

type Session struct {
	ID   string
	Cart *service.CartManager
	Auth *service.AuthManager

	mu       sync.Mutex
	lastSeen time.Time
}

func (s *Session) touch(t time.Time) {
	s.mu.Lock()
	s.lastSeen = t
	s.mu.Unlock()
}

func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session

	store  storage.Store
	auth   service.AuthOptions
	logger *slog.Logger
	now    func() time.Time
}

func NewRegistry(store storage.Store, auth service.AuthOptions, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		sessions: make(map[string]*Session),
		store:    store,
		auth:     auth,
		logger:   logger,
		now:      time.Now,
	}
}

// NewID returns a fresh client identifier.
func NewID() string {
	return uuid.NewString()
}

// Get returns the session for id, rehydrating it from storage on first use.
// Rehydration runs outside the registry lock and ignores cancellation of ctx.
// A session whose storage could not be read is not cached.
func (r *Registry) Get(ctx context.Context, id string) (*Session, error) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	r.mu.Unlock()
	if ok {
		s.touch(r.now())
		return s, nil
	}

	fresh, err := r.load(context.WithoutCancel(ctx), id)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[id]; ok {
		s.touch(r.now())
		return s, nil
	}
	r.sessions[id] = fresh
	return fresh, nil
}

func (r *Registry) load(ctx context.Context, id string) (*Session, error) {
	scope := storage.Scoped(r.store, id)

	cart, err := service.NewCartManager(ctx, scope, r.logger)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", id, err)
	}
	auth, err := service.NewAuthManager(ctx, scope, r.auth)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", id, err)
	}

	return &Session{ID: id, Cart: cart, Auth: auth, lastSeen: r.now()}, nil
}

// Evict drops sessions idle for longer than ttl and returns how many went.
// Their persisted state stays in storage.
func (r *Registry) Evict(ttl time.Duration) int {
	cutoff := r.now().Add(-ttl)

	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for id, s := range r.sessions {
		if s.LastSeen().Before(cutoff) {
			delete(r.sessions, id)
			n++
		}
	}
	return n
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
