// Package module wires demand analytics into the API using modkit
package module

import (
	"net/http"

	modkit "openslots/internal/modkit"
	"openslots/internal/modkit/httpkit"
	str "openslots/internal/platform/strings"
	trendsdom "openslots/internal/services/trends/domain"
	trendshttp "openslots/internal/services/trends/http"
	trendsrepo "openslots/internal/services/trends/repo"
	trendssvc "openslots/internal/services/trends/service"
)

// Ports exposes the trends surfaces other modules consume
type Ports struct {
	Recorder trendsdom.RecorderPort
	Service  trendsdom.ServicePort
}

// Module implements the trends module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc trendssvc.Service
	rec *trendssvc.Recorder
}

// New constructs the trends module. Requires deps.CH; the caller decides
// whether to construct this module at all when clickhouse is not configured
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("trends"),
		modkit.WithPrefix("/trends"),
	}, opts...)...)

	repo := trendsrepo.NewCH(deps.CH)
	svc := trendssvc.New(repo)
	rec := trendssvc.NewRecorder(repo, FromConfig(deps.Cfg))

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
		rec:       rec,
	}
	m.ports = Ports{Recorder: rec, Service: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		trendshttp.Register(r, m.svc)
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

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Close stops the recorder, flushing buffered events
func (m *Module) Close() { m.rec.Close() }
