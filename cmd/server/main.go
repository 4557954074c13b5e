// Command server runs the maintenance-tracking API.
//
// @title           Maintenance Tracking API
// @version         1.0
// @description     Equipment and maintenance tracking with role-based access control.
// @BasePath        /
//
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/maintrack/maintenance-system/internal/api"
	"github.com/maintrack/maintenance-system/internal/core/token"
	"github.com/maintrack/maintenance-system/internal/infrastructure/config"
	mongodb "github.com/maintrack/maintenance-system/internal/infrastructure/db/mongo"
	redisdb "github.com/maintrack/maintenance-system/internal/infrastructure/db/redis"
	"github.com/maintrack/maintenance-system/internal/infrastructure/queue"
	"github.com/maintrack/maintenance-system/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Configuration first: a missing JWT secret must abort startup before
	// anything listens.
	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.Init(logger.Options{})
		bootLog.Fatal().Err(err).Msg("configuration invalid")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	codec, err := token.NewCodec(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("token codec unusable")
	}

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb unavailable")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(shutdownCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis unavailable")
	}
	defer func() { _ = rdb.Close() }()

	userRepo := mongodb.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create user indexes")
	}
	maintenanceRepo := mongodb.NewMaintenanceRepository(db)
	if err := maintenanceRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create maintenance indexes")
	}

	audit := queue.NewAuditDispatcher(cfg.AuditWorkers, mongodb.NewAuditRepository(db), log)
	audit.Start(ctx)

	e := api.NewRouter(db, rdb, codec, audit, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
