// Package storage is a small key-value store standing in for a browser's
// local storage. Every client session gets its own scope.
package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("key not found")

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

type scoped struct {
	prefix string
	store  Store
}

// Scoped returns a view of store where every key lives under scope.
func Scoped(store Store, scope string) Store {
	return &scoped{prefix: scope + "/", store: store}
}

func (s *scoped) Get(ctx context.Context, key string) ([]byte, error) {
	return s.store.Get(ctx, s.prefix+key)
}

func (s *scoped) Set(ctx context.Context, key string, value []byte) error {
	return s.store.Set(ctx, s.prefix+key, value)
}

func (s *scoped) Delete(ctx context.Context, key string) error {
	return s.store.Delete(ctx, s.prefix+key)
}
