// Package service contains the demand analytics workflows: a non-blocking
// event recorder with a single background flusher, and the read side
package service

import (
	"context"
	"sync"
	"time"

	perr "openslots/internal/platform/errors"
	"openslots/internal/platform/logger"
	"openslots/internal/services/trends/domain"
	"openslots/internal/services/trends/repo"
)

// Service defines the trends service contract
type Service interface {
	domain.ServicePort
}

// Defaults for the read side when the caller leaves fields zero
const (
	defaultTopDays  = 7
	defaultTopLimit = 20
)

// Svc implements the demand read side
type Svc struct {
	Repo repo.Repo
}

// New constructs a trends service
func New(r repo.Repo) *Svc {
	if r == nil {
		panic("trends.Service requires a non nil Repo")
	}
	return &Svc{Repo: r}
}

// Top returns the demand leaderboard for the trailing window
func (s *Svc) Top(ctx context.Context, in domain.TopInput) (domain.TopResponse, error) {
	days := in.Days
	if days <= 0 {
		days = defaultTopDays
	}
	limit := in.Limit
	if limit <= 0 {
		limit = defaultTopLimit
	}

	rows, err := s.Repo.Top(ctx, days, limit)
	if err != nil {
		return domain.TopResponse{}, perr.Wrap(err, perr.ErrorCodeDB, "trends top query failed")
	}
	if rows == nil {
		rows = []domain.TopRow{}
	}
	return domain.TopResponse{Rows: rows}, nil
}

// RecorderConfig tunes the event pipeline
type RecorderConfig struct {
	Buffer     int           // channel capacity, default 1024
	BatchMax   int           // flush when this many events are pending, default 256
	FlushEvery time.Duration // flush on this cadence regardless, default 2s
}

func (c RecorderConfig) withDefaults() RecorderConfig {
	if c.Buffer <= 0 {
		c.Buffer = 1024
	}
	if c.BatchMax <= 0 {
		c.BatchMax = 256
	}
	if c.FlushEvery <= 0 {
		c.FlushEvery = 2 * time.Second
	}
	return c
}

// Recorder buffers search events and batches them into clickhouse from a
// single goroutine. Record never blocks: when the buffer is full the event
// is dropped with a debug log, mirroring the cache layer's fail-open stance
type Recorder struct {
	repo repo.Repo
	log  *logger.Logger
	ch   chan domain.SearchEvent
	stop chan struct{}
	wg   sync.WaitGroup
}

var _ domain.RecorderPort = (*Recorder)(nil)

// NewRecorder starts the flusher goroutine
func NewRecorder(r repo.Repo, cfg RecorderConfig) *Recorder {
	if r == nil {
		panic("trends.Recorder requires a non nil Repo")
	}
	cfg = cfg.withDefaults()
	rec := &Recorder{
		repo: r,
		log:  logger.Named("trends"),
		ch:   make(chan domain.SearchEvent, cfg.Buffer),
		stop: make(chan struct{}),
	}
	rec.wg.Add(1)
	go rec.flusher(cfg)
	return rec
}

// Record implements domain.RecorderPort
func (r *Recorder) Record(_ context.Context, ev domain.SearchEvent) {
	select {
	case r.ch <- ev:
	default:
		r.log.Debug().Str("city", ev.City).Str("category", ev.Category).Msg("demand event dropped, buffer full")
	}
}

// Close flushes what is buffered and stops the flusher
func (r *Recorder) Close() {
	close(r.stop)
	r.wg.Wait()
}

func (r *Recorder) flusher(cfg RecorderConfig) {
	defer r.wg.Done()

	tick := time.NewTicker(cfg.FlushEvery)
	defer tick.Stop()

	batch := make([]domain.SearchEvent, 0, cfg.BatchMax)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := r.repo.InsertEvents(ctx, batch); err != nil {
			r.log.Warn().Err(err).Int("events", len(batch)).Msg("demand batch insert failed, events dropped")
		}
		cancel()
		batch = batch[:0]
	}

	for {
		select {
		case ev := <-r.ch:
			batch = append(batch, ev)
			if len(batch) >= cfg.BatchMax {
				flush()
			}
		case <-tick.C:
			flush()
		case <-r.stop:
			// drain whatever is already queued, then flush once
			for {
				select {
				case ev := <-r.ch:
					batch = append(batch, ev)
				default:
					flush()
					return
				}
			}
		}
	}
}

// NopRecorder drops every event. Wired when clickhouse is not configured
// so discovery never carries a nil check beyond construction
type NopRecorder struct{}

var _ domain.RecorderPort = NopRecorder{}

// Record implements domain.RecorderPort
func (NopRecorder) Record(context.Context, domain.SearchEvent) {}
