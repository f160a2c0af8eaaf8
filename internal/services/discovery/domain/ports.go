package domain

import "context"

// ServicePort is the discovery contract exposed to transports and other
// modules. Implementations must be deterministic: identical inputs against
// unchanged inventory yield byte-identical responses, cache hit or miss
type ServicePort interface {
	Discover(ctx context.Context, in DiscoverInput) (DiscoverResponse, error)
	ServiceTypes(ctx context.Context, in ServiceTypesInput) (ServiceTypesResponse, error)
	ClearCache(ctx context.Context, in ClearCacheInput) (ClearCacheResponse, error)
}
