package auth

import "sync"

// TokenStore provides destination access credentials keyed by account.
//
// Populated on successful authentication, invalidated on logout or expiry,
// and queried read-only by the conversion pipeline. Implementations must be
// safe for concurrent use.
type TokenStore interface {
	// Get returns the stored access token for the account, and whether one exists.
	Get(accountID string) (string, bool)

	// Put stores an access token for the account, replacing any previous one.
	Put(accountID, token string)

	// Delete removes the account's access token.
	Delete(accountID string)
}

// MemoryTokenStore is an in-process TokenStore backed by a mutex-guarded map.
type MemoryTokenStore struct {
	mu     sync.RWMutex
	tokens map[string]string
}

// NewMemoryTokenStore creates an empty in-memory token store.
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{tokens: make(map[string]string)}
}

func (s *MemoryTokenStore) Get(accountID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	token, ok := s.tokens[accountID]
	return token, ok
}

func (s *MemoryTokenStore) Put(accountID, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[accountID] = token
}

func (s *MemoryTokenStore) Delete(accountID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, accountID)
}
