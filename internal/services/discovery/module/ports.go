package module

import (
	"context"

	"openslots/internal/services/discovery/domain"
	dsvc "openslots/internal/services/discovery/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// adaptDiscoveryPort exposes service methods as module ports for cross-module usage
type adaptDiscoveryPort struct{ svc dsvc.Service }

func (a adaptDiscoveryPort) Discover(ctx context.Context, in domain.DiscoverInput) (domain.DiscoverResponse, error) {
	return a.svc.Discover(ctx, in)
}

func (a adaptDiscoveryPort) ServiceTypes(
	ctx context.Context,
	in domain.ServiceTypesInput,
) (domain.ServiceTypesResponse, error) {
	return a.svc.ServiceTypes(ctx, in)
}

func (a adaptDiscoveryPort) ClearCache(ctx context.Context, in domain.ClearCacheInput) (domain.ClearCacheResponse, error) {
	return a.svc.ClearCache(ctx, in)
}
