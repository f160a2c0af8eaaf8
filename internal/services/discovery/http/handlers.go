// Package http provides http transport for discovery
package http

import (
	stdhttp "net/http"

	"openslots/internal/modkit/httpkit"
	"openslots/internal/services/discovery/domain"
	svc "openslots/internal/services/discovery/service"
)

// Register mounts discovery endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// provider search with open slots
	httpkit.PostJSON[domain.DiscoverInput](r, "/search", h.discover)

	// distinct service menu under a filter
	httpkit.PostJSON[domain.ServiceTypesInput](r, "/service-types", h.serviceTypes)

	// admin invalidation hook for upstream inventory mutations
	httpkit.PostJSON[domain.ClearCacheInput](r, "/cache/clear", h.clearCache)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /discovery/search Discovery discoverySearch
// @Summary Search providers with open slots
// @Tags Discovery
// @Accept json
// @Produce json
// @Param payload body domain.DiscoverInput true "Query"
// @Success 200 {object} domain.DiscoverResponse "ok"
// @Router /discovery/search [post]
func (h *handlers) discover(r *stdhttp.Request, in domain.DiscoverInput) (any, error) {
	return h.svc.Discover(r.Context(), in)
}

// swagger:route POST /discovery/service-types Discovery discoveryServiceTypes
// @Summary List service types with open slot counts
// @Tags Discovery
// @Accept json
// @Produce json
// @Param payload body domain.ServiceTypesInput true "Query"
// @Success 200 {object} domain.ServiceTypesResponse "ok"
// @Router /discovery/service-types [post]
func (h *handlers) serviceTypes(r *stdhttp.Request, in domain.ServiceTypesInput) (any, error) {
	return h.svc.ServiceTypes(r.Context(), in)
}

// swagger:route POST /discovery/cache/clear Discovery discoveryClearCache
// @Summary Invalidate cached discovery responses
// @Tags Discovery
// @Accept json
// @Produce json
// @Param payload body domain.ClearCacheInput true "Prefix selector"
// @Success 200 {object} domain.ClearCacheResponse "ok"
// @Router /discovery/cache/clear [post]
func (h *handlers) clearCache(r *stdhttp.Request, in domain.ClearCacheInput) (any, error) {
	return h.svc.ClearCache(r.Context(), in)
}
