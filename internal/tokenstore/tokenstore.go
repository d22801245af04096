// Package tokenstore persists the backend access token behind a small
// key-value interface so the storage medium can change without touching
// callers.
package tokenstore

import (
	"errors"
	"sync"
)

// TokenKey is the key the access token is stored under.
const TokenKey = "fintrack_token"

// ErrNotFound is returned by Get when the key is not set.
var ErrNotFound = errors.New("key not found")

// Store is a string key-value store.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

// Tokens reads and writes the access token in a Store.
type Tokens struct {
	store Store
}

// NewTokens wraps a Store.
func NewTokens(store Store) *Tokens {
	return &Tokens{store: store}
}

// Token returns the stored token, or "" when none is stored.
func (t *Tokens) Token() (string, error) {
	tok, err := t.store.Get(TokenKey)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	return tok, err
}

// SetToken stores the token.
func (t *Tokens) SetToken(token string) error {
	return t.store.Set(TokenKey, token)
}

// ClearToken removes the token. Clearing an absent token is not an error.
func (t *Tokens) ClearToken() error {
	err := t.store.Delete(TokenKey)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}

// Authenticated reports whether a non-empty token is stored.
func (t *Tokens) Authenticated() bool {
	tok, err := t.Token()
	return err == nil && tok != ""
}

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) Get(key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *MemoryStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.values[key]; !ok {
		return ErrNotFound
	}
	delete(m.values, key)
	return nil
}
