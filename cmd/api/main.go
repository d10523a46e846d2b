package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/rafaelks1020/crm-web-whatsapp/internal/config"
	"github.com/rafaelks1020/crm-web-whatsapp/internal/handler"
	"github.com/rafaelks1020/crm-web-whatsapp/internal/infra/postgresql"
	"github.com/rafaelks1020/crm-web-whatsapp/internal/infra/postgresql/migrations"
	infraredis "github.com/rafaelks1020/crm-web-whatsapp/internal/infra/redis"
	"github.com/rafaelks1020/crm-web-whatsapp/internal/observability"
	"github.com/rafaelks1020/crm-web-whatsapp/internal/provider"
	"github.com/rafaelks1020/crm-web-whatsapp/internal/repository"
	"github.com/rafaelks1020/crm-web-whatsapp/internal/service"
	"github.com/rafaelks1020/crm-web-whatsapp/internal/transport"
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

	limiter, err := infraredis.NewRedisRateLimiter(
		rdb,
		cfg.RateLimitPerSec,
		time.Duration(cfg.WaitTimeSec)*time.Second,
	)
	if err != nil {
		logger.Fatal("rate limiter initialization failed", zap.Error(err))
	}

	providerType, err := provider.ParseProviderTypeFromString(cfg.WhatsAppProvider)
	if err != nil {
		logger.Fatal("invalid whatsapp provider", zap.Error(err))
	}

	dispatcher, err := provider.NewDispatcher(provider.Config{
		Type:          providerType,
		APIURL:        cfg.WhatsAppAPIURL,
		AccessToken:   cfg.WhatsAppAccessToken,
		PhoneNumberID: cfg.WhatsAppPhoneNumberID,
		RelayURL:      cfg.PersonalWhatsAppAPIURL,
		RelayKey:      cfg.PersonalWhatsAppAPIKey,
		SendTimeout:   time.Duration(cfg.SendTimeoutSec) * time.Second,
	})
	if err != nil {
		logger.Fatal("dispatcher initialization failed", zap.Error(err))
	}

	metrics := observability.NewMetrics()

	customerRepo := repository.NewGormCustomerRepo(db)
	transactionRepo := repository.NewGormTransactionRepo(db)
	messageRepo := repository.NewGormMessageRepo(db)

	customerService, err := service.NewCustomerService(customerRepo, logger)
	if err != nil {
		logger.Fatal("customer service initialization failed", zap.Error(err))
	}
	transactionService, err := service.NewTransactionService(transactionRepo, customerRepo, metrics, logger)
	if err != nil {
		logger.Fatal("transaction service initialization failed", zap.Error(err))
	}
	whatsappService, err := service.NewWhatsAppService(
		customerRepo,
		messageRepo,
		dispatcher,
		limiter,
		metrics,
		logger,
	)
	if err != nil {
		logger.Fatal("whatsapp service initialization failed", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: transport.ErrorHandler(logger),
	})
	app.Use(metrics.HTTPMiddleware())
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	handler.RegisterHealthRoutes(app, sqlDB, rdb)
	if err := handler.RegisterCustomerRoutes(app, customerService, transactionService); err != nil {
		logger.Fatal("customer route registration failed", zap.Error(err))
	}
	if err := handler.RegisterTransactionRoutes(app, transactionService); err != nil {
		logger.Fatal("transaction route registration failed", zap.Error(err))
	}
	if err := handler.RegisterWhatsAppRoutes(app, whatsappService); err != nil {
		logger.Fatal("whatsapp route registration failed", zap.Error(err))
	}
	if err := handler.RegisterWebhookRoutes(app, whatsappService, cfg.WhatsAppVerifyToken, logger); err != nil {
		logger.Fatal("webhook route registration failed", zap.Error(err))
	}

	logger.Info("crm api started",
		zap.Int("port", cfg.APIPort),
		zap.String("provider", providerType.String()),
		zap.Bool("providerConfigured", dispatcher.Status().Configured),
	)

	if err := app.Listen(fmt.Sprintf(":%d", cfg.APIPort)); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
