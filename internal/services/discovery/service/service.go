// Package service implements the discovery engine workflows:
// validate, cache lookup, query, assemble, sort, cache store
package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"openslots/internal/core/geo"
	"openslots/internal/core/normalize"
	"openslots/internal/core/timewindow"
	"openslots/internal/modkit/repokit"
	"openslots/internal/platform/cache"
	perr "openslots/internal/platform/errors"
	"openslots/internal/platform/logger"
	"openslots/internal/services/discovery/domain"
	"openslots/internal/services/discovery/repo"
	trendsdom "openslots/internal/services/trends/domain"

	"github.com/google/uuid"
)

// Service defines the discovery service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the discovery engine
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner

	cache *cache.Gateway
	est   geo.Estimator
	rec   trendsdom.RecorderPort // nil means demand telemetry is off
}

// New constructs a discovery service. db, binder and gw are required;
// est defaults to the hash placeholder, rec may be nil
func New(
	db repokit.TxRunner,
	binder repokit.Binder[repo.Repo],
	gw *cache.Gateway,
	est geo.Estimator,
	rec trendsdom.RecorderPort,
) *Svc {
	if db == nil {
		panic("discovery.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("discovery.Service requires a non nil Repo binder")
	}
	if gw == nil {
		panic("discovery.Service requires a non nil cache gateway")
	}
	if est == nil {
		est = geo.HashEstimator{}
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db, cache: gw, est: est, rec: rec}
}

// Discover answers a discovery query through the cache-aside path
func (s *Svc) Discover(ctx context.Context, in domain.DiscoverInput) (domain.DiscoverResponse, error) {
	w, err := validateQuery(in.ServiceCategory, in.City, in.TimeWindow)
	if err != nil {
		return domain.DiscoverResponse{}, err
	}

	key := in.CacheKey()
	if payload, ok := s.cache.Get(ctx, key); ok {
		var resp domain.DiscoverResponse
		if err := json.Unmarshal(payload, &resp); err == nil {
			s.record(ctx, in.City, in.ServiceCategory, w, in.ServiceType, len(resp.Providers), true)
			return resp, nil
		}
		logger.C(ctx).Warn().Str("key", key).Msg("cached discovery payload unreadable, treating as miss")
	}

	rows, err := s.Repo.OpenSlots(ctx, repo.OpenSlotsFilter{
		City:        in.City,
		Category:    in.ServiceCategory,
		ServiceType: in.ServiceType,
	})
	if err != nil {
		return domain.DiscoverResponse{}, perr.Wrap(err, perr.ErrorCodeDB, "discovery inventory query failed")
	}

	resp := domain.DiscoverResponse{Providers: assemble(rows, w, s.est)}
	if payload, err := json.Marshal(resp); err == nil {
		s.cache.Set(ctx, key, payload, cache.TTLDiscovery)
	}
	s.record(ctx, in.City, in.ServiceCategory, w, in.ServiceType, len(resp.Providers), false)
	return resp, nil
}

// ServiceTypes answers the service menu aggregate. Unlike Discover, the
// resolved window is pushed into SQL here: the aggregate never sees
// individual rows the assembler could filter
func (s *Svc) ServiceTypes(ctx context.Context, in domain.ServiceTypesInput) (domain.ServiceTypesResponse, error) {
	w, err := validateQuery(in.ServiceCategory, in.City, in.TimeWindow)
	if err != nil {
		return domain.ServiceTypesResponse{}, err
	}

	key := in.CacheKey()
	if payload, ok := s.cache.Get(ctx, key); ok {
		var resp domain.ServiceTypesResponse
		if err := json.Unmarshal(payload, &resp); err == nil {
			return resp, nil
		}
		logger.C(ctx).Warn().Str("key", key).Msg("cached service-types payload unreadable, treating as miss")
	}

	f := repo.ServiceTypesFilter{City: in.City, Category: in.ServiceCategory}
	if hr, ok := timewindow.Resolve(w, in.City); ok {
		f.Hours = &hr
	}

	rows, err := s.Repo.ServiceTypes(ctx, f)
	if err != nil {
		return domain.ServiceTypesResponse{}, perr.Wrap(err, perr.ErrorCodeDB, "service-types query failed")
	}

	resp := domain.ServiceTypesResponse{ServiceTypes: make([]domain.ServiceType, 0, len(rows))}
	for _, r := range rows {
		resp.ServiceTypes = append(resp.ServiceTypes, domain.ServiceType{
			Name:        r.Name,
			DurationMin: int(r.DurationMin),
			SlotCount:   r.SlotCount,
		})
	}

	// empty menus are cached too, they are just as valid and just as hot
	if payload, err := json.Marshal(resp); err == nil {
		s.cache.Set(ctx, key, payload, cache.TTLServiceTypes)
	}
	return resp, nil
}

// ClearCache invalidates cached responses by namespace. It exists for the
// upstream inventory systems: a booked slot or edited provider must not be
// served stale past this call
func (s *Svc) ClearCache(ctx context.Context, in domain.ClearCacheInput) (domain.ClearCacheResponse, error) {
	var prefixes []string
	switch in.Prefix {
	case "":
		prefixes = []string{"discovery:", "service-types:"}
	case "discovery":
		prefixes = []string{"discovery:"}
	case "service-types":
		prefixes = []string{"service-types:"}
	default:
		return domain.ClearCacheResponse{}, perr.WithField(
			perr.Newf(perr.ErrorCodeValidation, "unknown cache prefix %q", in.Prefix), "prefix")
	}

	deleted := 0
	for _, p := range prefixes {
		deleted += s.cache.DeleteByPrefix(ctx, p)
	}
	logger.C(ctx).Info().Str("prefix", in.Prefix).Int("deleted", deleted).Msg("discovery cache invalidated")
	return domain.ClearCacheResponse{Deleted: deleted}, nil
}

// validateQuery re-checks the closed enums before any cache or data access.
// The HTTP bind layer already validates shape; this guards non-HTTP callers
// and the case-insensitive window parse the bind layer cannot express
func validateQuery(category, city, window string) (timewindow.Window, error) {
	if !domain.ValidCategory(category) {
		return timewindow.WindowNone, perr.WithField(
			perr.Newf(perr.ErrorCodeValidation, "unknown service category %q", category), "serviceCategory")
	}
	if strings.TrimSpace(city) == "" {
		return timewindow.WindowNone, perr.WithField(
			perr.Newf(perr.ErrorCodeValidation, "city is required"), "city")
	}
	w, ok := timewindow.ParseWindow(window)
	if !ok {
		return timewindow.WindowNone, perr.WithField(
			perr.Newf(perr.ErrorCodeValidation, "unknown time window %q", window), "timeWindow")
	}
	return w, nil
}

// record emits a search-demand event, best effort. The recorder's channel
// never blocks; a missing recorder means telemetry is simply off
func (s *Svc) record(ctx context.Context, city, category string, w timewindow.Window, serviceType string, results int, hit bool) {
	if s.rec == nil {
		return
	}
	s.rec.Record(ctx, trendsdom.SearchEvent{
		ID:          uuid.NewString(),
		At:          time.Now().UTC(),
		City:        normalize.Fold(city),
		Category:    category,
		Window:      w.Key(),
		ServiceType: normalize.KeySegment(serviceType),
		ResultCount: results,
		CacheHit:    hit,
	})
}
