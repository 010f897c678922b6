// Package session provides the storage backends for session tokens: a
// per-request cookie, a keyed store (in memory or Redis) and a store that
// never persists anything.
package session

import "context"

// Store holds the session token of one logical session.
type Store interface {
	// Get returns the stored token. ok is false when none is stored.
	Get(ctx context.Context) (token string, ok bool, err error)
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// NoneStore never persists a token, so every lookup misses.
type NoneStore struct{}

// Get implements Store.
func (NoneStore) Get(context.Context) (string, bool, error) {
	return "", false, nil
}

// Set implements Store.
func (NoneStore) Set(context.Context, string) error {
	return nil
}

// Clear implements Store.
func (NoneStore) Clear(context.Context) error {
	return nil
}
