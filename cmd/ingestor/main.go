package main

import (
	"context"
	"database/sql"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"hotel_match/internal/adapters/directory"
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

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	log.Info().
		Str("base", cfg.DirectoryBase).
		Int("workers", cfg.Workers).
		Msg("ingestor starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.PingContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)

	client, err := directory.New(cfg.DirectoryBase, cfg.DirectoryRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize directory client")
	}

	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		defer rc.Close()
		cache = rc
	}
	ing := app.NewIngestionService(client, repo, cache)

	ids, err := ing.UserIDs(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("list directory users failed")
	}

	start := time.Now()
	sem := semaphore.NewWeighted(int64(cfg.Workers))
	var wg sync.WaitGroup
	var failed atomic.Int64

	for _, id := range ids {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Warn().Err(err).Msg("ingestion interrupted")
			break
		}

		wg.Add(1)
		go func(userID int) {
			defer wg.Done()
			defer sem.Release(1)

			if err := ing.IngestUser(ctx, userID); err != nil {
				failed.Add(1)
				log.Warn().Int("id", userID).Err(err).Msg("ingest failed")
				return
			}
			log.Info().Int("id", userID).Msg("ingest ok")
		}(id)
	}

	wg.Wait()
	log.Info().
		Int("users", len(ids)).
		Int64("failed", failed.Load()).
		Dur("took", time.Since(start)).
		Msg("ingestion completed")
}
