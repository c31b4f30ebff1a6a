package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/mithaighar/sweetshop-api/docs"
	"github.com/mithaighar/sweetshop-api/internal/api"
	mongodb "github.com/mithaighar/sweetshop-api/internal/infrastructure/db/mongo"
	redisdb "github.com/mithaighar/sweetshop-api/internal/infrastructure/db/redis"
	"github.com/mithaighar/sweetshop-api/internal/pkg/config"
	"github.com/mithaighar/sweetshop-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title        Sweet Shop API
// @version      1.0
// @description  Inventory API for a sweet shop.
// @BasePath     /api
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()

	if err := mongodb.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user index creation failed")
	}
	if err := mongodb.NewSweetRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("sweet index creation failed")
	}

	// Redis is optional: without it the catalog cache is disabled and every
	// listing hits the store.
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, catalog cache disabled")
		rdb = nil
	} else {
		defer func() { _ = rdb.Close() }()
	}

	e := api.NewRouter(cfg, db, rdb, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
