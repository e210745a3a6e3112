package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"marketmood/internal/adapters/config"
	"marketmood/internal/adapters/errors/noop"
	"marketmood/internal/adapters/errors/sentry"
	"marketmood/internal/adapters/kafka"
	"marketmood/internal/adapters/postgres"
	"marketmood/internal/adapters/redis"
	"marketmood/internal/api"
	"marketmood/internal/api/cache"
	"marketmood/internal/api/health"
	"marketmood/internal/events"
	"marketmood/internal/metrics"
	repo "marketmood/internal/repository/postgres"
	"marketmood/internal/services/forecasting"
	"marketmood/internal/services/trends"
	"marketmood/internal/workers"
	"marketmood/pkg/errors"
	"marketmood/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize logger
	if err := initLogger(cfg); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	defer logger.Sync()

	log := logger.Get()
	log.Infof("Starting %s in %s mode", cfg.App.Name, cfg.App.Env)

	// Initialize error tracker
	errorTracker := initErrorTracker(cfg, log)
	logger.SetErrorTracker(errorTracker)

	// Register Prometheus metrics
	metrics.Init()

	// Connect to databases and the broker
	pgClient, err := postgres.NewClient(cfg.Postgres)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer pgClient.Close()

	redisClient, err := redis.NewClient(cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	producer := kafka.NewProducer(kafka.ProducerConfig{Brokers: cfg.Kafka.Brokers})
	defer producer.Close()

	// Store and services
	store := repo.NewSignalStore(pgClient.DB())

	trendService := trends.NewService(store, trends.DetectorConfig{
		TrackedKeywords:            cfg.Trend.TrackedKeywords,
		WindowHours:                cfg.Trend.WindowHours,
		SearchVolumeMentionDivisor: cfg.Trend.SearchVolumeMentionDivisor,
		WarningThreshold:           cfg.Trend.WarningThreshold,
		WarningVelocityThreshold:   cfg.Trend.WarningVelocityThreshold,
		AgreementLookback:          cfg.Trend.AgreementLookback,
	}, log)

	forecastService := forecasting.NewService(store, forecasting.Config{
		Categories:             cfg.Forecast.Categories,
		LookbackDays:           cfg.Forecast.LookbackDays,
		MinObservations:        cfg.Forecast.MinObservations,
		ARWeight:               cfg.Forecast.ARWeight,
		RegressionWeight:       cfg.Forecast.RegressionWeight,
		FitTimeout:             cfg.Forecast.FitTimeout,
		DriftVarianceThreshold: cfg.Forecast.DriftVarianceThreshold,
		DriftWindowDays:        cfg.Forecast.DriftWindowDays,
	}, log)

	publisher := events.NewPublisher(producer)

	// Background workers
	scheduler := workers.NewScheduler()
	scheduler.RegisterWorker(workers.NewTrendScanWorker(
		trendService,
		publisher,
		cfg.Trend.WarningThreshold,
		cfg.Workers.TrendScanInterval,
		cfg.Workers.TrendScanEnabled,
	))
	scheduler.RegisterWorker(workers.NewDriftMonitorWorker(
		forecastService,
		publisher,
		cfg.Forecast.DriftWindowDays,
		cfg.Workers.DriftMonitorInterval,
		cfg.Workers.DriftMonitorEnabled,
	))

	// HTTP server
	serveCache := cache.New(redisClient, cfg.Cache, log)
	handlers := api.NewHandlers(trendService, forecastService, store, serveCache, api.HandlerConfig{
		DefaultWindowHours: cfg.Trend.WindowHours,
		DefaultThreshold:   cfg.Trend.WarningThreshold,
		DefaultHorizonDays: cfg.Forecast.HorizonDays,
	}, log)

	healthHandler := health.New(log, pgClient.DB(), redisClient.Client(), cfg.App.Name, cfg.App.Version)

	server := api.NewServer(api.ServerConfig{
		Port:        cfg.HTTP.Port,
		ServiceName: cfg.App.Name,
		Version:     cfg.App.Version,
	}, healthHandler, handlers, log)

	log.Info("System initialized successfully")

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start all components
	if err := scheduler.Start(ctx); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}

	go func() {
		if err := server.Start(); err != nil {
			log.Errorf("HTTP server error: %v", err)
			cancel()
		}
	}()

	// Wait for shutdown signal
	waitForShutdown(ctx, cancel, server, scheduler, errorTracker, log)
}

// loadConfig loads application configuration from environment
func loadConfig() (*config.Config, error) {
	return config.Load()
}

// initLogger initializes structured logging
func initLogger(cfg *config.Config) error {
	return logger.Init(cfg.App.LogLevel, cfg.App.Env)
}

// initErrorTracker initializes error tracking (Sentry or no-op)
func initErrorTracker(cfg *config.Config, log *logger.Logger) errors.Tracker {
	if !cfg.ErrorTracking.Enabled || cfg.ErrorTracking.SentryDSN == "" {
		log.Info("Error tracking disabled")
		return noop.New()
	}

	tracker, err := sentry.New(cfg.ErrorTracking.SentryDSN, cfg.ErrorTracking.Environment)
	if err != nil {
		log.Warnf("Failed to initialize Sentry: %v", err)
		return noop.New()
	}

	log.Info("Error tracking initialized (Sentry)")
	return tracker
}

// waitForShutdown waits for shutdown signal and performs graceful shutdown
func waitForShutdown(
	ctx context.Context,
	cancel context.CancelFunc,
	server *api.Server,
	scheduler *workers.Scheduler,
	errorTracker errors.Tracker,
	log *logger.Logger,
) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		log.Info("Shutdown signal received")
	case <-ctx.Done():
		log.Info("Context cancelled")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warnf("HTTP server shutdown: %v", err)
	}

	if err := scheduler.Stop(); err != nil {
		log.Warnf("Scheduler shutdown: %v", err)
	}

	cancel()

	// Flush error tracker
	if errorTracker != nil {
		if err := errorTracker.Flush(shutdownCtx); err != nil {
			log.Warnf("Failed to flush error tracker: %v", err)
		}
	}

	log.Info("Shutdown complete")
}
