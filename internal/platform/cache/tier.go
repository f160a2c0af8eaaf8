// Package cache provides the two-tier cache-aside layer for discovery
// responses: a remote redis tier fronted by an in-process fallback map,
// composed by a Gateway that fails open on every cache fault
package cache

import (
	"context"
	"time"
)

// Tier is the storage surface both cache tiers implement
type Tier interface {
	// Get returns the payload for key, ok=false on a miss
	Get(ctx context.Context, key string) (val []byte, ok bool, err error)

	// Set stores val under key for ttl
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error

	// DeleteByPrefix removes every key with the given prefix and
	// reports how many went away
	DeleteByPrefix(ctx context.Context, prefix string) (int, error)
}

// TTL carries the per-tier expiry for one logical entry kind.
// Remote entries outlive fallback entries: the fallback map only serves
// while redis is away and should converge faster
type TTL struct {
	Remote   time.Duration
	Fallback time.Duration
}

// Fixed TTLs per entry kind. Discovery results are more volatile than the
// service-type menu, so they expire sooner
var (
	TTLDiscovery    = TTL{Remote: 60 * time.Second, Fallback: 30 * time.Second}
	TTLServiceTypes = TTL{Remote: 120 * time.Second, Fallback: 60 * time.Second}
)
