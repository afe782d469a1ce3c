package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LockStore handles distributed locking in Redis. A settlement lock
// serializes the settle phase for a transaction reference so the redirect
// callback and the webhook cannot credit the same payment concurrently.
type LockStore struct {
	client *redis.Client
}

// NewLockStore creates a new LockStore.
func NewLockStore(client *redis.Client) *LockStore {
	return &LockStore{client: client}
}

// AcquireSettlementLock attempts to acquire the lock for the given reference.
// Returns true if the lock was acquired, false if already held.
func (s *LockStore) AcquireSettlementLock(ctx context.Context, reference string, ttl time.Duration) (bool, error) {
	key := fmt.Sprintf("lock:settlement:%s", reference)

	ok, err := s.client.SetNX(ctx, key, "1", ttl).Result()
	if err != nil {
		return false, err
	}

	return ok, nil
}

// ReleaseSettlementLock releases the lock for the given reference.
func (s *LockStore) ReleaseSettlementLock(ctx context.Context, reference string) error {
	key := fmt.Sprintf("lock:settlement:%s", reference)

	return s.client.Del(ctx, key).Err()
}
