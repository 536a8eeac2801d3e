package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sanad-aid/registry-api/internal/api"
	"github.com/sanad-aid/registry-api/internal/infrastructure/config"
	mongodb "github.com/sanad-aid/registry-api/internal/infrastructure/db/mongo"
	redisdb "github.com/sanad-aid/registry-api/internal/infrastructure/db/redis"
	"github.com/sanad-aid/registry-api/internal/infrastructure/queue"
	"github.com/sanad-aid/registry-api/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connect failed")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connect failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	auditRepo := mongodb.NewAuditRepository(db)
	audit := queue.NewAuditDispatcher(cfg.Auth.AuditWorkers, auditRepo, log)
	audit.Start(ctx)

	e := api.NewRouter(api.Deps{
		Mongo: db,
		Redis: rdb,
		Audit: audit,
		Cfg:   cfg,
		Log:   log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("http server stopped")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
}
