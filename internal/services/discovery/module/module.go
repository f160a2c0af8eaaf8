// Package module wires discovery into the API using modkit
package module

import (
	"net/http"

	"openslots/internal/core/geo"
	modkit "openslots/internal/modkit"
	"openslots/internal/modkit/httpkit"
	str "openslots/internal/platform/strings"
	discoveryhttp "openslots/internal/services/discovery/http"
	discoveryrepo "openslots/internal/services/discovery/repo"
	discoverysvc "openslots/internal/services/discovery/service"
	trendsdom "openslots/internal/services/trends/domain"
)

// Ports exposes the discovery service for cross-module use, and carries the
// injected collaborators when the module is constructed with WithPorts
type Ports struct {
	Recorder  trendsdom.RecorderPort // injected, may be nil
	Estimator geo.Estimator          // injected, defaults to the hash placeholder
}

// Module implements the discovery module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc discoverysvc.Service
}

// New constructs the discovery module. Requires deps.PG and deps.Cache;
// a recorder and estimator may be injected through WithPorts(Ports{...})
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("discovery"),
		modkit.WithPrefix("/discovery"),
	}, opts...)...)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}

	repo := discoveryrepo.NewPG()
	svc := discoverysvc.New(deps.PG, repo, deps.Cache, injected.Estimator, injected.Recorder)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = adaptDiscoveryPort{svc: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		discoveryhttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }
