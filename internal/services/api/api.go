// Package api provides the HTTP API for the application
package api

import (
	"openslots/internal/platform/cache"
	"openslots/internal/platform/config"
	"openslots/internal/platform/logger"
	phttp "openslots/internal/platform/net/http"
	"openslots/internal/platform/store"

	"openslots/internal/modkit"
	"openslots/internal/modkit/httpkit"
	"openslots/internal/modkit/module"
	"openslots/internal/modkit/swaggerkit"

	metamod "openslots/internal/services/api/meta/module"
	discoverymod "openslots/internal/services/discovery/module"
	trendsdom "openslots/internal/services/trends/domain"
	trendsmod "openslots/internal/services/trends/module"
	trendssvc "openslots/internal/services/trends/service"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Cache          *cache.Gateway
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router. The returned func
// shuts modules down in reverse mount order; callers run it after the
// server stops so buffered work (the trends recorder) drains before the
// store closes
func Mount(r phttp.Router, opt Options) func() {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg:   opt.Config,
		PG:    opt.Store.PG,
		CH:    opt.Store.CH,
		Cache: opt.Cache,
	}

	// Demand analytics rides on clickhouse; without it the module is not
	// constructed and discovery gets a no-op recorder
	var rec trendsdom.RecorderPort = trendssvc.NopRecorder{}
	mods := []module.Module{metamod.New(deps)}

	if deps.CH != nil {
		trends := trendsmod.New(deps)
		rec = module.MustPortsOf[trendsmod.Ports](trends).Recorder
		mods = append(mods, trends)
	}

	mods = append(mods, discoverymod.New(
		deps,
		modkit.WithPorts(discoverymod.Ports{Recorder: rec}),
	))

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})

	return func() {
		for i := len(mods) - 1; i >= 0; i-- {
			if c, ok := mods[i].(interface{ Close() }); ok {
				c.Close()
			}
		}
	}
}
