package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Orlando-rp/barbersmart-gateway/internal/config"
	"github.com/Orlando-rp/barbersmart-gateway/internal/handler"
	"github.com/Orlando-rp/barbersmart-gateway/internal/infra/postgresql"
	"github.com/Orlando-rp/barbersmart-gateway/internal/infra/postgresql/migrations"
	infraredis "github.com/Orlando-rp/barbersmart-gateway/internal/infra/redis"
	"github.com/Orlando-rp/barbersmart-gateway/internal/observability"
	"github.com/Orlando-rp/barbersmart-gateway/internal/provider"
	"github.com/Orlando-rp/barbersmart-gateway/internal/queue"
	"github.com/Orlando-rp/barbersmart-gateway/internal/ratelimit"
	"github.com/Orlando-rp/barbersmart-gateway/internal/repository"
	"github.com/Orlando-rp/barbersmart-gateway/internal/service"
	"github.com/Orlando-rp/barbersmart-gateway/internal/transport"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config", zap.Error(err))
	}

	logger, err := observability.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatal("failed to initialize logger", zap.Error(err))
	}
	defer logger.Sync() //nolint:errcheck

	db, err := postgresql.NewPostgres(cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("postgres initialization failed", zap.Error(err))
	}

	if err := migrations.Migrate(db); err != nil {
		logger.Fatal("database migrations failed", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("postgres underlying db init failed", zap.Error(err))
	}
	defer sqlDB.Close()

	rdb, err := infraredis.NewRedis(cfg.RedisURL)
	if err != nil {
		logger.Fatal("redis initialization failed", zap.Error(err))
	}
	defer rdb.Close()

	var limiter ratelimit.RateLimiter
	redisLimiter, err := infraredis.NewRedisRateLimiter(rdb, cfg.TenantRateLimitPerSec)
	if err != nil {
		logger.Fatal("rate limiter initialization failed", zap.Error(err))
	}
	limiter = redisLimiter

	var events queue.Publisher
	if cfg.RabbitMQURL != "" {
		broker, err := queue.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			logger.Fatal("rabbitmq initialization failed", zap.Error(err))
		}
		publisher := queue.NewRabbitMQPublisher(broker)
		defer publisher.Close() //nolint:errcheck
		events = publisher
	} else {
		logger.Info("rabbitmq url not set, delivery events disabled")
	}

	metrics := observability.NewMetrics()
	api := provider.NewClient(cfg.ProviderTimeout())

	configStore := repository.NewGormConfigStore(db)
	deliveryLog := repository.NewGormDeliveryLog(db)

	resolver, err := service.NewResolver(configStore, api, logger, metrics)
	if err != nil {
		logger.Fatal("resolver initialization failed", zap.Error(err))
	}
	dispatcher, err := service.NewDispatcher(api, deliveryLog, events, cfg.CountryPrefix, logger, metrics)
	if err != nil {
		logger.Fatal("dispatcher initialization failed", zap.Error(err))
	}
	gateway, err := service.NewGateway(resolver, dispatcher, configStore, api, limiter, logger, metrics)
	if err != nil {
		logger.Fatal("gateway initialization failed", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		AppName:      "messaging-gateway",
		ErrorHandler: transport.ErrorHandler(logger),
	})
	app.Use(requestid.New())
	app.Use(metrics.HTTPMiddleware())
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	handler.RegisterHealthRoutes(app, sqlDB, rdb)
	if err := handler.RegisterGatewayRoutes(app, gateway, deliveryLog); err != nil {
		logger.Fatal("route registration failed", zap.Error(err))
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-shutdown
		logger.Info("shutting down", zap.String("signal", sig.String()))
		_ = app.Shutdown()
	}()

	logger.Info("messaging-gateway api started", zap.Int("port", cfg.APIPort))
	if err := app.Listen(fmt.Sprintf(":%d", cfg.APIPort)); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
