package store

import (
	"context"
	"sync"

	"github.com/paypulse/showcase/ports"
)

// MemoryStore is an in-memory implementation of the TokenStore interface.
// Tokens live until the process exits.
type MemoryStore struct {
	tokens map[string]struct{}
	mu     sync.RWMutex
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore() ports.TokenStore {
	return &MemoryStore{
		tokens: make(map[string]struct{}),
	}
}

// Add marks a token as valid
func (s *MemoryStore) Add(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tokens[token] = struct{}{}
	return nil
}

// Contains reports whether a token has been issued
func (s *MemoryStore) Contains(ctx context.Context, token string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.tokens[token]
	return ok, nil
}

// Len returns the number of valid tokens
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.tokens)
}
