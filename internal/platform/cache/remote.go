package cache

import (
	"context"
	"time"

	"openslots/internal/platform/store"
)

// RemoteTier adapts the store's KV seam (redis) to the Tier surface.
// It adds nothing beyond the seam; availability handling lives in Gateway
type RemoteTier struct {
	kv store.KV
}

var _ Tier = (*RemoteTier)(nil)

// NewRemoteTier wraps a non-nil KV seam
func NewRemoteTier(kv store.KV) *RemoteTier {
	return &RemoteTier{kv: kv}
}

// Get implements Tier
func (t *RemoteTier) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return t.kv.Get(ctx, key)
}

// Set implements Tier
func (t *RemoteTier) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	return t.kv.Set(ctx, key, val, ttl)
}

// DeleteByPrefix implements Tier
func (t *RemoteTier) DeleteByPrefix(ctx context.Context, prefix string) (int, error) {
	return t.kv.DeleteByPrefix(ctx, prefix)
}

// Ping forwards to the underlying seam so the gateway can probe availability
func (t *RemoteTier) Ping(ctx context.Context) error {
	return t.kv.Ping(ctx)
}
