package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/diyath7/small-shop-system/internal/config"
	"github.com/diyath7/small-shop-system/internal/infra"
	"github.com/diyath7/small-shop-system/internal/router"
	"github.com/diyath7/small-shop-system/internal/worker"
)

// @title Small Shop System API
// @version 1.0
// @description Inventory, purchasing and invoicing for a small retail shop.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.Env == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := infra.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		// The API degrades gracefully without Redis: no cache, no alerts.
		log.Warn().Err(err).Msg("redis unavailable, continuing without cache and alerts")
		rdb = nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if rdb != nil && cfg.AlertEmail != "" {
		pool := worker.NewPool(rdb, infra.NewMailer(cfg), cfg.AlertEmail)
		pool.Start(ctx, cfg.WorkerPoolSize)
	}

	engine := router.New(router.Deps{DB: db, RDB: rdb, Cfg: cfg})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}

	if rdb != nil {
		_ = rdb.Close()
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info().Msg("server stopped")
}
