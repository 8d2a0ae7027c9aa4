package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"tripbook/internal/app"
	"tripbook/internal/config"
	"tripbook/internal/handler"
	"tripbook/internal/metrics"
	internalRedis "tripbook/internal/redis"
	"tripbook/internal/repository/postgres"
	"tripbook/internal/service"
)

func main() {
	configPath := config.BindFlags(pflag.CommandLine)
	pflag.Parse()

	// Load configuration.
	cfg, err := config.Load(*configPath)
	if err != nil {
		// The logger is not configured yet.
		zap.NewExample().Fatal("failed to load config", zap.Error(err))
	}

	logger, err := app.NewLogger(cfg.Server.LogLevel)
	if err != nil {
		zap.NewExample().Fatal("failed to build logger", zap.Error(err))
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic FIRST (before database so we can instrument DB).
	var nrApp *newrelic.Application
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			logger.Warn("failed to initialize New Relic", zap.Error(err))
			nrApp = nil
		} else {
			logger.Info("New Relic enabled", zap.String("app", cfg.NewRelic.AppName))
		}
	}

	gdb, sqlDB, err := app.NewDatabase(ctx, cfg.Database, nrApp, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer sqlDB.Close()
	logger.Info("connected to PostgreSQL",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.DBName))

	if err := metrics.RegisterDB(sqlDB, cfg.Database.DBName); err != nil {
		logger.Warn("failed to register database metrics", zap.Error(err))
	}

	var idempotency internalRedis.IdempotencyStoreInterface
	if cfg.Redis.Enabled {
		redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer redisClient.Close()
		idempotency = internalRedis.NewIdempotencyStore(redisClient)
		logger.Info("connected to Redis", zap.String("addr", cfg.Redis.Addr))
	}

	// Wire dependencies.
	server := wireServer(gdb, sqlDB, idempotency, nrApp, logger, cfg)

	// Start server in goroutine.
	go func() {
		logger.Info("starting server", zap.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	if nrApp != nil {
		nrApp.Shutdown(5 * time.Second)
	}

	logger.Info("server exited")
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(
	gdb *gorm.DB,
	pinger handler.Pinger,
	idempotency internalRedis.IdempotencyStoreInterface,
	nrApp *newrelic.Application,
	logger *zap.Logger,
	cfg *config.Config,
) *http.Server {
	uow := postgres.NewUnitOfWork(gdb)

	// Initialize services.
	userService := service.NewUserService(uow)
	driverService := service.NewDriverService(uow)
	tripService := service.NewTripService(uow)

	// Create router.
	router := app.NewRouter(app.RouterDeps{
		UserHandler:      handler.NewUserHandler(userService),
		DriverHandler:    handler.NewDriverHandler(driverService),
		TripHandler:      handler.NewTripHandler(tripService),
		DB:               pinger,
		IdempotencyStore: idempotency,
		NewRelicApp:      nrApp,
		Logger:           logger,
	})

	// Create HTTP server.
	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
