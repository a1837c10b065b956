package main

import (
	"context"
	"net/http"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "hotel_map/internal/adapters/http_server"
	"hotel_map/internal/adapters/observability"
	redisad "hotel_map/internal/adapters/redis"
	"hotel_map/internal/adapters/remote"
	"hotel_map/internal/app"
	"hotel_map/internal/dataset"
	"hotel_map/internal/domain"
	"hotel_map/internal/mapview"
	"hotel_map/internal/shared"
	mysqlrepo "hotel_map/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	resolver := dataset.Resolver{
		Fetcher: remote.New(cfg.FetchTimeout, cfg.FetchRPS),
		OpenStore: func(ctx context.Context, dsn string) (dataset.HotelStore, error) {
			return mysqlrepo.Open(ctx, dsn)
		},
	}
	datasets := dataset.NewCache(resolver.Resolve)

	// load eagerly so a bad locator fails at startup rather than on first request
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	ds, err := datasets.Get(ctx, cfg.HotelsCSV)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Str("locator", cfg.HotelsCSV).Msg("dataset load failed")
	}
	log.Info().Int("hotels", ds.Len()).Msg("dataset ready")

	var views domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		pctx, pcancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rc.Ping(pctx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unavailable, view cache disabled")
			_ = rc.Close()
		} else {
			views = rc
		}
		pcancel()
	}

	builder := mapview.NewBuilder(cfg.ClusterThreshold)
	svc := app.NewViewService(datasets, cfg.HotelsCSV, builder, views, cfg.CacheTTL)

	// http
	srv := server.New()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Views: svc})

	log.Info().Str("addr", cfg.HTTPAddr).Int("cluster_threshold", builder.ClusterThreshold()).Msg("viewer listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
