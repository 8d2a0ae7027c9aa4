package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

// unreachableClient points at a port nothing listens on.
func unreachableClient(t *testing.T) *redis.Client {
	t.Helper()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestIdempotencyStore_SurfacesConnectionErrors(t *testing.T) {
	store := NewIdempotencyStore(unreachableClient(t))
	ctx := context.Background()

	resp, err := store.Get(ctx, "k1")
	assert.Error(t, err)
	assert.Nil(t, resp)

	ok, err := store.Acquire(ctx, "k1")
	assert.Error(t, err)
	assert.False(t, ok)

	assert.Error(t, store.Save(ctx, "k1", &CachedResponse{StatusCode: 201}))
	assert.Error(t, store.Release(ctx, "k1"))
}
