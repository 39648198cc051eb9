package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// nonceKeyPrefix namespaces replay-protection keys: ledger:nonce:<signer>:<nonce>.
const nonceKeyPrefix = "ledger:nonce:"

// NonceStore implements ports.NonceStore with SET NX. The signer is the hex
// address derived from the request's public key, so two keys may reuse a nonce.
type NonceStore struct {
	client *goredis.Client
}

// NewNonceStore creates a Redis-backed nonce store.
func NewNonceStore(client *goredis.Client) *NonceStore {
	return &NonceStore{client: client}
}

func nonceKey(signer, nonce string) string {
	return nonceKeyPrefix + signer + ":" + nonce
}

// CheckAndSet claims nonce for signer for ttl. It reports false when the
// nonce was already claimed and has not expired.
func (s *NonceStore) CheckAndSet(ctx context.Context, signer string, nonce string, ttl time.Duration) (bool, error) {
	err := s.client.SetArgs(ctx, nonceKey(signer, nonce), 1, goredis.SetArgs{Mode: "NX", TTL: ttl}).Err()
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, goredis.Nil):
		return false, nil
	default:
		return false, fmt.Errorf("claim nonce: %w", err)
	}
}
