package cache

import (
	"context"
	"strings"
	"sync"
	"time"
)

// entry is one stored payload with its absolute expiry
type entry struct {
	val       []byte
	expiresAt time.Time
}

// MemoryTier is the in-process fallback: a plain map with lazy TTL expiry.
// Safe for concurrent use; no persistence, entries die by TTL or explicit
// prefix deletion
type MemoryTier struct {
	mu  sync.RWMutex
	m   map[string]entry
	now func() time.Time // seam for tests
}

var _ Tier = (*MemoryTier)(nil)

// NewMemoryTier returns an empty fallback tier
func NewMemoryTier() *MemoryTier {
	return &MemoryTier{m: make(map[string]entry), now: time.Now}
}

// Get implements Tier. Expired entries are evicted on read
func (t *MemoryTier) Get(_ context.Context, key string) ([]byte, bool, error) {
	t.mu.RLock()
	e, ok := t.m[key]
	t.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if t.now().After(e.expiresAt) {
		t.mu.Lock()
		// re-check under the write lock, a concurrent Set may have refreshed it
		if cur, still := t.m[key]; still && t.now().After(cur.expiresAt) {
			delete(t.m, key)
		}
		t.mu.Unlock()
		return nil, false, nil
	}
	return e.val, true, nil
}

// Set implements Tier. Non-positive ttl stores nothing
func (t *MemoryTier) Set(_ context.Context, key string, val []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	cp := make([]byte, len(val))
	copy(cp, val)
	t.mu.Lock()
	t.m[key] = entry{val: cp, expiresAt: t.now().Add(ttl)}
	t.mu.Unlock()
	return nil
}

// DeleteByPrefix implements Tier
func (t *MemoryTier) DeleteByPrefix(_ context.Context, prefix string) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for k := range t.m {
		if strings.HasPrefix(k, prefix) {
			delete(t.m, k)
			n++
		}
	}
	return n, nil
}

// Len reports the live entry count, expired ones included until touched
func (t *MemoryTier) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.m)
}
