// @title         OpenSlots API
// @version       0.1.0
// @description   Discovery endpoints for providers, open slots and service types

package main

import (
	"context"

	"openslots/internal/modkit/repokit"
	"openslots/internal/platform/cache"
	"openslots/internal/platform/config"
	"openslots/internal/platform/logger"
	phttp "openslots/internal/platform/net/http"
	"openslots/internal/platform/store"

	"openslots/internal/services/api"
)

func main() {
	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	pgCfg := root.Prefix("SERVICE_PGSQL_")      // pgCfg lives under SERVICE_PGSQL_*
	rdsCfg := root.Prefix("SERVICE_REDIS_")     // rdsCfg lives under SERVICE_REDIS_*
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_") // chCfg lives under SERVICE_CLICKHOUSE_*

	// bring up logging early
	l := logger.Get()

	// redis and clickhouse are optional: no addr means fallback-only cache,
	// no CH DSN means the trends module stays unmounted
	redisAddr := rdsCfg.MayString("ADDR", "")
	chURL := chCfg.MayString("DBURL", "")

	// open the platform store (postgres required, redis and CH optional)
	st, err := store.Open(
		context.Background(),
		store.Config{
			PG: store.PGConfig{
				Enabled:     true,
				URL:         pgCfg.MustString("DBURL"),
				MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 0)), // 0 keeps the driver default
				SlowQueryMs: pgCfg.MayInt("SLOW_MS", 0),          // 0 disables slow-query logging
				LogSQL:      pgCfg.MayBool("LOG_SQL", false),
			},
			CH: store.CHConfig{
				Enabled:    chURL != "",
				URL:        chURL,
				ClientName: "openslots",
				ClientTag:  "api",
			},
			RDS: store.RedisConfig{
				Enabled:  redisAddr != "",
				Addr:     redisAddr,
				Password: rdsCfg.MayString("PASSWORD", ""),
				DB:       rdsCfg.MayInt("DB", 0),
			},
		},
		store.WithLogger(*logger.Get()),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// hard dependencies must answer before we serve traffic
	repokit.MustGuard(context.Background(), st)

	// cache gateway over the optional redis tier; an unreachable redis
	// degrades to the in-process fallback, it never blocks boot
	var remote cache.Tier
	if st.KV != nil {
		remote = cache.NewRemoteTier(st.KV)
	}
	gw := cache.New(remote)
	gw.Connect(context.Background())

	// http server (reads CORE_API_PORT / CORE_API_ADDR)
	srv := phttp.NewServer(apiCfg)

	// mount our API; the closer drains module buffers once the server stops
	closeModules := api.Mount(
		srv.Router(),
		api.Options{
			Config:         apiCfg,
			Store:          st,
			Cache:          gw,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", false),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
		},
	)
	defer closeModules()

	// run
	if err := srv.Run(context.Background()); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
