package session

import (
	"context"
	"fmt"
	"time"
)

// Backend is a key/value store shared by many sessions.
type Backend interface {
	Load(ctx context.Context, key string) (string, bool, error)
	Save(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Key builds the backend key of a visitor's session token.
func Key(cookieName, visitor string) string {
	return cookieName + ":" + visitor
}

// KeyedStore binds one backend key to the Store interface.
type KeyedStore struct {
	backend Backend
	key     string
	ttl     time.Duration
}

// NewKeyedStore creates a store for key. A zero ttl keeps tokens until they
// are cleared.
func NewKeyedStore(backend Backend, key string, ttl time.Duration) *KeyedStore {
	return &KeyedStore{backend: backend, key: key, ttl: ttl}
}

// Get implements Store.
func (s *KeyedStore) Get(ctx context.Context) (string, bool, error) {
	v, ok, err := s.backend.Load(ctx, s.key)
	if err != nil {
		return "", false, fmt.Errorf("loading session %s: %w", s.key, err)
	}
	return v, ok && v != "", nil
}

// Set implements Store.
func (s *KeyedStore) Set(ctx context.Context, token string) error {
	if err := s.backend.Save(ctx, s.key, token, s.ttl); err != nil {
		return fmt.Errorf("saving session %s: %w", s.key, err)
	}
	return nil
}

// Clear implements Store.
func (s *KeyedStore) Clear(ctx context.Context) error {
	if err := s.backend.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("deleting session %s: %w", s.key, err)
	}
	return nil
}
