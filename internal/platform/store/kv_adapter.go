package store

import (
	"context"
	"errors"
	"time"

	"openslots/internal/platform/store/rds"

	"github.com/go-redis/redis/v8"
)

// newKVAdapter wraps an existing *rds.RDS and returns the store.KV seam
func newKVAdapter(r *rds.RDS) KV {
	return &kvAdapter{inner: r}
}

// kvAdapter adapts *rds.RDS to the store.KV interface
type kvAdapter struct {
	inner *rds.RDS
}

var _ KV = (*kvAdapter)(nil)

func (a *kvAdapter) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := a.inner.Client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return val, true, nil
}

func (a *kvAdapter) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	return a.inner.Client.Set(ctx, key, val, ttl).Err()
}

// DeleteByPrefix walks the keyspace with SCAN (never KEYS) and deletes in
// batches, returning how many keys went away
func (a *kvAdapter) DeleteByPrefix(ctx context.Context, prefix string) (int, error) {
	const scanCount = 256

	deleted := 0
	var cursor uint64
	for {
		keys, next, err := a.inner.Client.Scan(ctx, cursor, prefix+"*", scanCount).Result()
		if err != nil {
			return deleted, err
		}
		if len(keys) > 0 {
			n, err := a.inner.Client.Del(ctx, keys...).Result()
			deleted += int(n)
			if err != nil {
				return deleted, err
			}
		}
		cursor = next
		if cursor == 0 {
			return deleted, nil
		}
	}
}

func (a *kvAdapter) Ping(ctx context.Context) error {
	if a == nil || a.inner == nil {
		return errors.New("store: nil redis adapter")
	}
	return a.inner.Ping(ctx)
}

func (a *kvAdapter) Close() error { return a.inner.Close() }
