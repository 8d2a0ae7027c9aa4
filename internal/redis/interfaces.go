package redis

import "context"

// IdempotencyStoreInterface defines the operations the idempotency
// middleware needs from its backing store.
type IdempotencyStoreInterface interface {
	Get(ctx context.Context, key string) (*CachedResponse, error)
	Save(ctx context.Context, key string, resp *CachedResponse) error
	Acquire(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

// Ensure concrete types implement interfaces.
var _ IdempotencyStoreInterface = (*IdempotencyStore)(nil)
