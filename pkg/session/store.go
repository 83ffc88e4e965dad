package session

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
)

// TokenLength is the length of a hex-encoded session token.
const TokenLength = 32

// Store is a concurrency-safe token → user-id table. The zero value is not
// usable; create one with NewStore.
type Store struct {
	mu     sync.RWMutex
	tokens map[string]int64
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{tokens: make(map[string]int64)}
}

// Create generates a fresh token, associates it with userID, and returns it.
// A session is created only after authentication has fully succeeded; a
// failed login must never reach this method.
func (s *Store) Create(userID int64) (string, error) {
	var raw [TokenLength / 2]byte
	if _, err := rand.Read(raw[:]); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	token := hex.EncodeToString(raw[:])

	s.mu.Lock()
	s.tokens[token] = userID
	s.mu.Unlock()

	return token, nil
}

// Lookup returns the user id for a token. Unknown or malformed tokens return
// ok=false; lookup never mutates the table.
func (s *Store) Lookup(token string) (int64, bool) {
	s.mu.RLock()
	userID, ok := s.tokens[token]
	s.mu.RUnlock()
	return userID, ok
}

// Invalidate removes the token if present. Invalidating an unknown token is
// a no-op, so logout is idempotent.
func (s *Store) Invalidate(token string) {
	s.mu.Lock()
	delete(s.tokens, token)
	s.mu.Unlock()
}

// Len returns the number of live sessions. Used by the metrics gauge.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tokens)
}
