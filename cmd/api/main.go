package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/questboard/backend/internal/config"
	"github.com/questboard/backend/internal/db"
	"github.com/questboard/backend/internal/events"
	apphttp "github.com/questboard/backend/internal/http"
	"github.com/questboard/backend/internal/http/handlers"
	"github.com/questboard/backend/internal/middleware"
	"github.com/questboard/backend/internal/repositories"
	"github.com/questboard/backend/internal/services"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log, err := cfg.NewLogger()
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer log.Sync()

	cfg.Validate(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Repositories
	campaignRepo := repositories.NewCampaignRepo(cfg.DataFile, log)
	auditRepo := repositories.NewAuditRepo(log)

	// Fail fast on an unreadable or corrupt data file.
	if col, err := campaignRepo.LoadAll(ctx); err != nil {
		log.Fatal("failed to load campaigns", zap.String("path", cfg.DataFile), zap.Error(err))
	} else {
		log.Info("campaigns loaded", zap.String("path", cfg.DataFile), zap.Int("count", col.Len()))
	}

	// Redis-backed or in-process infrastructure
	var (
		idempotency repositories.IdempotencyStore
		publisher   events.Publisher
		subscriber  events.Subscriber
		rateLimiter fiber.Handler
	)
	if cfg.RedisEnabled() {
		rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
		if err != nil {
			log.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer rdb.Close()

		idempotency = repositories.NewRedisIdempotencyRepo(rdb, cfg.IdempotencyTTL)
		publisher = events.NewRedisPublisher(rdb, log)
		subscriber = events.NewRedisSubscriber(rdb, log)
		if cfg.RateLimitPerMinute > 0 {
			rateLimiter = middleware.RateLimitMiddleware(rdb, cfg.RateLimitPerMinute, time.Minute, log)
		}
	} else {
		bus := events.NewLocalBus(log)
		idempotency = repositories.NewMemoryIdempotencyRepo(cfg.IdempotencyTTL)
		publisher = bus
		subscriber = bus
		if cfg.RateLimitPerMinute > 0 {
			rateLimiter = middleware.LocalRateLimitMiddleware(cfg.RateLimitPerMinute, time.Minute)
		}
	}

	// Services
	campaignService := services.NewCampaignService(campaignRepo, idempotency, auditRepo, publisher, log)

	// Handlers
	campaignHandler := handlers.NewCampaignHandler(campaignService, log)
	metaHandler := handlers.NewMetaHandler(cfg)
	wsHub := handlers.NewWSHub(campaignService, subscriber, log)

	// Start WS hub
	if err := wsHub.Start(ctx); err != nil {
		log.Fatal("failed to subscribe to campaign events", zap.Error(err))
	}

	// Fiber app
	app := apphttp.NewApp(cfg)
	apphttp.SetupRouter(app, cfg, log, rateLimiter, campaignHandler, metaHandler, wsHub)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")
		cancel()
		_ = app.Shutdown()
	}()

	addr := fmt.Sprintf(":%s", cfg.APIPort)
	log.Info("starting API server", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
