package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"hotel_match/internal/adapters/directory"
	server "hotel_match/internal/adapters/http_server"
	"hotel_match/internal/adapters/observability"
	redisad "hotel_match/internal/adapters/redis"
	"hotel_match/internal/app"
	"hotel_match/internal/domain"
	"hotel_match/internal/shared"
	mysqlrepo "hotel_match/internal/storage/mysql"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	reg := observability.InitRegistry()
	if _, err := observability.Serve(cfg.MetricsAddr, reg); err != nil {
		log.Fatal().Err(err).Msg("metrics listener failed")
	}

	dir := userDirectory(ctx, cfg)

	roster := app.NewUserRoster(dir, app.WithSizeObserver(observability.SetRosterSize))
	registry := app.NewHotelRegistry(shared.SeedHotels)

	// http
	srv := server.New(server.Options{
		RequestTimeout:    cfg.RequestTimeout,
		CORSOrigins:       cfg.CORSOrigins,
		RateLimitRequests: cfg.RateLimitRequests,
		RateLimitWindow:   cfg.RateLimitWindow,
	})
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Roster: roster, Registry: registry})

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("http shutdown failed")
		}
	}()

	log.Info().Str("addr", cfg.HTTPAddr).Str("directory", cfg.DirectorySource).Msg("API listening")
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("http server failed")
	}
	log.Info().Msg("API stopped")
}

// userDirectory picks the roster's source and puts the Redis snapshot cache
// in front of it when Redis answers.
func userDirectory(ctx context.Context, cfg shared.Config) domain.UserDirectory {
	var dir domain.UserDirectory
	switch cfg.DirectorySource {
	case "mysql":
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open failed")
		}
		if err := db.PingContext(ctx); err != nil {
			log.Fatal().Err(err).Msg("db.Ping failed")
		}
		log.Info().Msg("database connection ok")
		dir = mysqlrepo.New(db)
	default:
		client, err := directory.New(cfg.DirectoryBase, cfg.DirectoryRPS)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize directory client")
		}
		dir = client
	}

	if cfg.RedisAddr == "" {
		return dir
	}
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := cache.Ping(pingCtx); err != nil {
		log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable; directory cache disabled")
		_ = cache.Close()
		return dir
	}
	return app.NewCachedDirectory(dir, cache, cfg.CacheTTL)
}
