package redis

import (
	"context"
	"time"
)

// LockStoreInterface defines the interface for distributed settlement locks.
type LockStoreInterface interface {
	AcquireSettlementLock(ctx context.Context, reference string, ttl time.Duration) (bool, error)
	ReleaseSettlementLock(ctx context.Context, reference string) error
}

// Ensure concrete types implement interfaces.
var _ LockStoreInterface = (*LockStore)(nil)
