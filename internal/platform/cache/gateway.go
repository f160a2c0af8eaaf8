package cache

import (
	"context"
	"sync/atomic"
	"time"

	"openslots/internal/platform/logger"
)

// State is the gateway's view of the remote tier
type State int32

// Gateway states. A gateway with no remote tier stays Disconnected for its
// whole life and serves the fallback map; that is a configuration, not a fault
const (
	StateDisconnected State = iota
	StateConnecting
	StateReady
	StateDegraded
)

// String returns the lowercase state name for logs and readiness payloads
func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateReady:
		return "ready"
	case StateDegraded:
		return "degraded"
	default:
		return "disconnected"
	}
}

// Pinger is the optional probe surface a remote tier can expose
type Pinger interface {
	Ping(ctx context.Context) error
}

// Gateway routes cache traffic to the remote tier while it is Ready and to
// the in-process fallback otherwise. Every fault is logged and swallowed:
// a broken cache degrades to recomputation, never to a failed request
type Gateway struct {
	remote   Tier
	fallback Tier
	log      *logger.Logger

	state      atomic.Int32
	lastProbe  atomic.Int64 // unixnano of the last remote attempt while degraded
	probeEvery time.Duration
	now        func() time.Time
}

// Option tweaks gateway construction
type Option func(*Gateway)

// WithFallback replaces the default in-memory fallback tier
func WithFallback(t Tier) Option { return func(g *Gateway) { g.fallback = t } }

// WithProbeEvery sets the minimum spacing between remote retries while degraded
func WithProbeEvery(d time.Duration) Option { return func(g *Gateway) { g.probeEvery = d } }

// WithClock injects a clock, for tests
func WithClock(now func() time.Time) Option { return func(g *Gateway) { g.now = now } }

// WithLogger overrides the component logger
func WithLogger(l *logger.Logger) Option { return func(g *Gateway) { g.log = l } }

// New builds a gateway. remote may be nil, which pins the gateway to the
// fallback tier (no redis configured)
func New(remote Tier, opts ...Option) *Gateway {
	g := &Gateway{
		remote:     remote,
		fallback:   NewMemoryTier(),
		log:        logger.Named("cache"),
		probeEvery: 5 * time.Second,
		now:        time.Now,
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// State reports the current availability state
func (g *Gateway) State() State { return State(g.state.Load()) }

// Connect probes the remote tier once and settles into Ready or Degraded.
// With no remote tier it stays Disconnected and returns immediately
func (g *Gateway) Connect(ctx context.Context) {
	if g.remote == nil {
		g.log.Info().Msg("remote cache not configured, fallback tier only")
		return
	}
	g.state.Store(int32(StateConnecting))
	if p, ok := g.remote.(Pinger); ok {
		if err := p.Ping(ctx); err != nil {
			g.degrade("connect", err)
			return
		}
	}
	g.state.Store(int32(StateReady))
	g.log.Info().Msg("remote cache ready")
}

// Get returns the cached payload for key, ok=false on a miss. Faults on the
// active tier are logged and reported as a miss
func (g *Gateway) Get(ctx context.Context, key string) ([]byte, bool) {
	if t := g.remoteForOp(); t != nil {
		val, ok, err := t.Get(ctx, key)
		if err != nil {
			g.degrade("get", err)
			return nil, false
		}
		g.recover()
		return val, ok
	}
	val, ok, err := g.fallback.Get(ctx, key)
	if err != nil {
		g.log.Warn().Err(err).Str("op", "get").Msg("fallback cache fault")
		return nil, false
	}
	return val, ok
}

// Set stores val on the active tier with that tier's TTL, best effort
func (g *Gateway) Set(ctx context.Context, key string, val []byte, ttl TTL) {
	if t := g.remoteForOp(); t != nil {
		if err := t.Set(ctx, key, val, ttl.Remote); err != nil {
			g.degrade("set", err)
			return
		}
		g.recover()
		return
	}
	if err := g.fallback.Set(ctx, key, val, ttl.Fallback); err != nil {
		g.log.Warn().Err(err).Str("op", "set").Msg("fallback cache fault")
	}
}

// DeleteByPrefix invalidates both tiers: the fallback always, the remote when
// Ready. Partial counts are returned even when one side faults
func (g *Gateway) DeleteByPrefix(ctx context.Context, prefix string) int {
	total := 0
	if n, err := g.fallback.DeleteByPrefix(ctx, prefix); err != nil {
		g.log.Warn().Err(err).Str("prefix", prefix).Msg("fallback invalidation fault")
	} else {
		total += n
	}
	if g.remote != nil && g.State() == StateReady {
		if n, err := g.remote.DeleteByPrefix(ctx, prefix); err != nil {
			g.degrade("delete", err)
		} else {
			total += n
		}
	}
	return total
}

// remoteForOp returns the remote tier when this operation should use it:
// always while Ready, and once per probeEvery while Degraded so a recovered
// redis is noticed without a background goroutine
func (g *Gateway) remoteForOp() Tier {
	if g.remote == nil {
		return nil
	}
	switch g.State() {
	case StateReady:
		return g.remote
	case StateDegraded:
		last := g.lastProbe.Load()
		nowNano := g.now().UnixNano()
		if nowNano-last >= int64(g.probeEvery) && g.lastProbe.CompareAndSwap(last, nowNano) {
			return g.remote
		}
	}
	return nil
}

// recover promotes Degraded back to Ready after a successful remote operation
func (g *Gateway) recover() {
	if g.state.CompareAndSwap(int32(StateDegraded), int32(StateReady)) {
		g.log.Info().Msg("remote cache recovered")
	}
}

// degrade records a remote fault and re-routes traffic to the fallback tier
func (g *Gateway) degrade(op string, err error) {
	g.lastProbe.Store(g.now().UnixNano())
	prev := State(g.state.Swap(int32(StateDegraded)))
	if prev != StateDegraded {
		g.log.Warn().Err(err).Str("op", op).Msg("remote cache degraded, serving fallback tier")
	} else {
		g.log.Debug().Err(err).Str("op", op).Msg("remote cache still unavailable")
	}
}
