package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/purse-ledger/internal/api_gateway"
	"github.com/purse-ledger/internal/api_gateway/service"
	"github.com/purse-ledger/internal/config"
	"github.com/purse-ledger/internal/data/jsonfile"
	"github.com/purse-ledger/internal/data/mongo"
	"github.com/purse-ledger/internal/data/postgres"
	"github.com/purse-ledger/internal/data/yamlfile"
	"github.com/purse-ledger/internal/domain/ledger"
	"github.com/purse-ledger/internal/logger"
	"github.com/purse-ledger/internal/platform/messaging/producers"
	"github.com/purse-ledger/internal/platform/persistence"
	"github.com/purse-ledger/internal/scheduler"
)

func main() {
	// Create base context with cancellation
	appCtx, cancelAppCtx := context.WithCancel(context.Background())
	defer cancelAppCtx()

	cfg, err := config.LoadConfig("ledger_api")
	if err != nil {
		// logger is not initialized yet, so we use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg)

	ledgerRepo, closeStore, err := openLedgerStore(appCtx, log, cfg)
	if err != nil {
		log.Error("Failed to initialize ledger store", "backend", cfg.Storage.Backend, "error", err)
		os.Exit(1)
	}
	settingsRepo := yamlfile.NewSettingsRepository(log, cfg.Storage.SettingsFilePath)

	publisher, err := newPublisher(appCtx, log, cfg)
	if err != nil {
		log.Error("Failed to initialize Kafka producer", "error", err)
		os.Exit(1)
	}

	pool, err := service.NewWorkerPool(service.WorkerPoolConfig{Size: cfg.WorkerPool.Size}, log)
	if err != nil {
		log.Error("Failed to initialize worker pool", "error", err)
		os.Exit(1)
	}

	ledgerService := service.NewLedgerService(log, ledgerRepo, settingsRepo, publisher)
	settingsService := service.NewSettingsService(log, settingsRepo)
	reportService := service.NewReportService(log, ledgerRepo, settingsRepo, pool)

	server := api_gateway.NewServer(log, cfg, ledgerService, settingsService, reportService)
	log.Info("REST server initialized", "backend", cfg.Storage.Backend)

	var cycleScheduler *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		closer := scheduler.NewCycleCloser(log, ledgerRepo, settingsRepo, publisher)
		cycleScheduler, err = scheduler.NewScheduler(log, cfg.Scheduler.Spec, closer)
		if err != nil {
			log.Error("Failed to initialize scheduler", "error", err)
			os.Exit(1)
		}
		cycleScheduler.Start()
	}

	errChan := make(chan error, 1)

	go func() {
		log.Info("Starting HTTP server", "port", cfg.Server.Port)
		if err := server.Start(); err != nil {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	// Wait for a shutdown signal or error
	var serverErr error
	select {
	case <-quit:
		log.Info("Shutdown signal received")
	case err := <-errChan:
		log.Error("Server error occurred", "error", err)
		serverErr = err
	}

	cancelAppCtx()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	log.Info("Starting graceful shutdown...")

	var shutdownErr error
	if err := server.Stop(shutdownCtx); err != nil {
		log.Error("Error during server shutdown", "error", err)
		shutdownErr = err
	}

	if cycleScheduler != nil {
		if err := cycleScheduler.Stop(shutdownCtx); err != nil {
			log.Error("Error stopping scheduler", "error", err)
			shutdownErr = err
		}
	}

	pool.Shutdown()

	if err := publisher.Close(); err != nil {
		log.Error("Error closing event publisher", "error", err)
		shutdownErr = err
	}

	if err := closeStore(shutdownCtx); err != nil {
		log.Error("Error closing ledger store", "error", err)
		shutdownErr = err
	}

	if serverErr != nil {
		log.Error("HTTP server shutdown with errors", "error", serverErr)
	}
	if shutdownErr != nil {
		log.Error("Server shutdown completed with errors")
		os.Exit(1)
	}
	log.Info("Server shutdown completed successfully")
}

// openLedgerStore connects the configured ledger backend. The returned func releases
// its connections.
func openLedgerStore(ctx context.Context, log *slog.Logger, cfg *config.Config) (ledger.Repository, func(context.Context) error, error) {
	switch cfg.Storage.Backend {
	case config.BackendMongo:
		mongoDB, err := persistence.NewMongoDB(ctx, log, &cfg.MongoDB)
		if err != nil {
			return nil, nil, err
		}
		repo := mongo.NewLedgerRepository(log, mongoDB.Database())
		if err := repo.EnsureIndexes(ctx); err != nil {
			_ = mongoDB.Close(ctx)
			return nil, nil, err
		}
		return repo, mongoDB.Close, nil

	case config.BackendPostgres:
		postgresDB, err := persistence.NewPostgresDB(ctx, log, &cfg.Postgres)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func(context.Context) error {
			postgresDB.Close()
			return nil
		}
		return postgres.NewLedgerRepository(log, postgresDB), closeFn, nil

	default:
		repo := jsonfile.NewLedgerRepository(log, cfg.Storage.LedgerFilePath)
		return repo, func(context.Context) error { return nil }, nil
	}
}

// newPublisher returns the Kafka producer when event publishing is enabled
func newPublisher(ctx context.Context, log *slog.Logger, cfg *config.Config) (producers.MessagePublisher, error) {
	if !cfg.Kafka.Enabled {
		log.Info("Kafka publishing disabled")
		return producers.NewNoopPublisher(log), nil
	}
	return producers.NewLedgerEventProducer(ctx, log, &cfg.Kafka)
}
