package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	coreport "github.com/amirhossein-jamali/lending-core/internal/domain/port/core"
	"github.com/amirhossein-jamali/lending-core/internal/domain/port/external"
	deliveryUseCase "github.com/amirhossein-jamali/lending-core/internal/domain/usecase/delivery"
	ledgerUseCase "github.com/amirhossein-jamali/lending-core/internal/domain/usecase/ledger"
	notificationUseCase "github.com/amirhossein-jamali/lending-core/internal/domain/usecase/notification"
	paymentUseCase "github.com/amirhossein-jamali/lending-core/internal/domain/usecase/payment"

	"github.com/amirhossein-jamali/lending-core/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/lending-core/internal/infrastructure/adapter/api/routes"
	"github.com/amirhossein-jamali/lending-core/internal/infrastructure/adapter/auth"
	"github.com/amirhossein-jamali/lending-core/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/lending-core/internal/infrastructure/adapter/database/migration"
	"github.com/amirhossein-jamali/lending-core/internal/infrastructure/adapter/gateway"
	"github.com/amirhossein-jamali/lending-core/internal/infrastructure/adapter/idempotency"
	"github.com/amirhossein-jamali/lending-core/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/lending-core/internal/infrastructure/adapter/metrics"
	"github.com/amirhossein-jamali/lending-core/internal/infrastructure/adapter/notification"
	timeProvider "github.com/amirhossein-jamali/lending-core/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/lending-core/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/multierr"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger, err := logger.NewZapLogger(cfg.Logger, cfg.Environment == config.Production)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	tp := timeProvider.NewRealTimeProvider()

	// An unregistered collector records nothing
	var registerer prometheus.Registerer
	if cfg.Metrics.Enabled {
		registerer = prometheus.DefaultRegisterer
	}
	collector := metrics.NewCollector(registerer)

	// Connect to the database
	dbManager := database.NewManager(database.FromAppConfig(cfg), appLogger, tp, collector)
	if _, err := dbManager.Connect(); err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	migrationMgr := migration.NewMigrationManager(dbManager.DB(), appLogger, tp, cfg.Database.Driver)
	if err := migrationMgr.MigrateAll(context.Background()); err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{"error": err.Error()})
		_ = dbManager.Close()
		os.Exit(1)
	}

	uow := dbManager.CreateUnitOfWork()
	notifier := notification.NewStoreNotifier(uow, tp, appLogger)

	redisClient, guard := setupEventGuard(cfg, appLogger)
	paymentGateway := setupGateway(cfg, appLogger)

	// Initialize use cases
	ledgerService := ledgerUseCase.NewService(uow, notifier, tp, appLogger, collector, ledgerUseCase.Settings{
		InitialPoints: cfg.Ledger.InitialPoints,
		BorrowCost:    cfg.Ledger.BorrowCost,
	})
	deliveryService := deliveryUseCase.NewService(uow, notifier, tp, appLogger, collector, nil, deliveryUseCase.Settings{
		FeePaise: cfg.Delivery.FeePaise,
	})
	paymentService := paymentUseCase.NewService(uow, paymentGateway, guard, ledgerService, notifier, tp, appLogger, collector, paymentUseCase.Settings{
		KeySecret:      cfg.Payment.KeySecret,
		WebhookSecret:  cfg.Payment.WebhookSecret,
		GatewayTimeout: coreport.Duration(cfg.Payment.Timeout),
	})
	notificationService := notificationUseCase.NewService(uow)

	if cfg.Database.SeedDemoData {
		if err := migration.SeedDemoData(context.Background(), dbManager.DB(), ledgerService); err != nil {
			appLogger.Error("Failed to seed demo data", map[string]any{"error": err.Error()})
		}
	}

	tokens, err := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
	if err != nil {
		appLogger.Error("Failed to create token service", map[string]any{"error": err.Error()})
		_ = dbManager.Close()
		os.Exit(1)
	}

	// Initialize Gin router
	router := gin.New()

	routes.SetupMiddlewares(router, appLogger, collector)
	if cfg.Metrics.Enabled {
		router.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	routes.SetupRoutes(router, routes.Handlers{
		Delivery:     handler.NewDeliveryHandler(deliveryService, appLogger),
		Account:      handler.NewAccountHandler(ledgerService, appLogger),
		Payment:      handler.NewPaymentHandler(paymentService, appLogger),
		Notification: handler.NewNotificationHandler(notificationService, appLogger),
		Health:       handler.NewHealthHandler(dbManager),
	}, tokens, appLogger)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		appLogger.Info("Starting server", map[string]any{
			"addr": server.Addr,
			"env":  cfg.Environment,
		})

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("Failed to start server", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := shutdown(ctx, server, dbManager, redisClient, appLogger); err != nil {
		appLogger.Error("Shutdown completed with errors", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	appLogger.Info("Server exited gracefully", nil)
}

// setupEventGuard connects the webhook deduplication store when one is configured
func setupEventGuard(cfg *config.Config, appLogger coreport.Logger) (*redis.Client, external.EventGuard) {
	if cfg.Redis.Addr == "" {
		appLogger.Info("Webhook event deduplication disabled", nil)
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Database.QueryTimeout)
	defer cancel()

	client, err := idempotency.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		appLogger.Warn("Redis unavailable, webhook events rely on settlement idempotency", map[string]any{
			"addr":  cfg.Redis.Addr,
			"error": err.Error(),
		})
		return nil, nil
	}
	return client, idempotency.NewRedisEventGuard(client, cfg.Redis.EventTTL)
}

// setupGateway returns the live gateway client, or the sandbox when no key id is set
func setupGateway(cfg *config.Config, appLogger coreport.Logger) external.PaymentGateway {
	if cfg.Payment.KeySecret == "" {
		appLogger.Warn("Payment key secret missing, checkout confirmations will be rejected until payment.keySecret is set", nil)
	}

	gw, err := gateway.Select(cfg.Payment.KeyID, cfg.Payment.KeySecret, cfg.Payment.Timeout,
		gateway.WithBaseURL(cfg.Payment.BaseURL))
	if err != nil {
		appLogger.Warn("Invalid payment gateway configuration, using sandbox gateway", map[string]any{
			"error": err.Error(),
		})
		return gateway.SandboxGateway{}
	}
	if _, sandbox := gw.(gateway.SandboxGateway); sandbox {
		appLogger.Warn("Payment key id missing, using sandbox gateway", nil)
	}
	return gw
}

// shutdown drains the HTTP server and then releases every backing resource
func shutdown(ctx context.Context, server *http.Server, dbManager *database.Manager, redisClient *redis.Client, appLogger coreport.Logger) error {
	var err error
	if shutdownErr := server.Shutdown(ctx); shutdownErr != nil {
		err = multierr.Append(err, fmt.Errorf("server shutdown: %w", shutdownErr))
	}
	if redisClient != nil {
		if closeErr := redisClient.Close(); closeErr != nil {
			err = multierr.Append(err, fmt.Errorf("redis close: %w", closeErr))
		}
	}
	if closeErr := dbManager.Close(); closeErr != nil {
		err = multierr.Append(err, fmt.Errorf("database close: %w", closeErr))
	}
	// syncing stdout fails with EINVAL on some platforms
	_ = appLogger.Flush()
	return err
}
