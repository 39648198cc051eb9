package memory

import (
	"context"
	"sync"
	"time"
)

// NonceStore implements ports.NonceStore in process memory. It backs
// signature auth when Redis is disabled and only protects a single
// instance.
type NonceStore struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

// NewNonceStore creates an empty in-memory nonce store.
func NewNonceStore() *NonceStore {
	return &NonceStore{
		entries: make(map[string]time.Time),
		now:     time.Now,
	}
}

// CheckAndSet reports true when nonce had not been seen for signer within ttl.
func (s *NonceStore) CheckAndSet(ctx context.Context, signer string, nonce string, ttl time.Duration) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweep(now)

	key := signer + ":" + nonce
	if exp, ok := s.entries[key]; ok && now.Before(exp) {
		return false, nil
	}
	s.entries[key] = now.Add(ttl)
	return true, nil
}

// sweep drops expired entries. Callers hold mu.
func (s *NonceStore) sweep(now time.Time) {
	for k, exp := range s.entries {
		if !now.Before(exp) {
			delete(s.entries, k)
		}
	}
}
