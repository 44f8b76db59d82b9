package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.temporal.io/sdk/client"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Allen-Brian/AGRICHAIN/internal/adapter"
	"github.com/Allen-Brian/AGRICHAIN/internal/config"
	"github.com/Allen-Brian/AGRICHAIN/internal/logger"
	temporal "github.com/Allen-Brian/AGRICHAIN/internal/providers/temporal"
	"github.com/Allen-Brian/AGRICHAIN/internal/settlement"
	"github.com/Allen-Brian/AGRICHAIN/internal/store"
	"github.com/Allen-Brian/AGRICHAIN/internal/sweeper"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadSweeperConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "sweeper",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Sweeper")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	// Initialize store
	dataStore := store.NewPGStore(db)

	// Initialize clock adapter
	clock := adapter.NewClock()

	var sweepers []sweeper.Sweeper

	if cfg.FingerprintAudit.Enabled {
		auditSweeper := sweeper.NewFingerprintAuditSweeper(sweeper.FingerprintAuditConfig{
			BatchSize:      cfg.FingerprintAudit.BatchSize,
			WorkerPoolSize: cfg.FingerprintAudit.Worker.WorkerPoolSize,
			CycleInterval:  cfg.FingerprintAudit.CycleInterval,
		}, dataStore, store.NewCursorStore(db), clock)
		sweepers = append(sweepers, auditSweeper)

		logger.InfoCtx(ctx, "Initialized fingerprint audit sweeper",
			zap.Int("batch_size", cfg.FingerprintAudit.BatchSize),
			zap.Int("worker_pool_size", cfg.FingerprintAudit.Worker.WorkerPoolSize),
			zap.Duration("cycle_interval", cfg.FingerprintAudit.CycleInterval),
		)
	}

	if cfg.PayoutRetry.Enabled {
		// Connect to Temporal for payout re-dispatch
		temporalClient, err := client.Dial(client.Options{
			HostPort:  cfg.Temporal.HostPort,
			Namespace: cfg.Temporal.Namespace,
			Logger:    temporal.NewZapLoggerAdapter(logger.Default()),
		})
		if err != nil {
			logger.FatalCtx(ctx, "Failed to connect to Temporal", zap.Error(err), zap.String("host_port", cfg.Temporal.HostPort))
		}
		defer temporalClient.Close()
		logger.InfoCtx(ctx, "Connected to Temporal", zap.String("namespace", cfg.Temporal.Namespace))

		payout := settlement.NewTemporalPayout(temporalClient, cfg.Temporal.SettlementTaskQueue)
		retrySweeper := sweeper.NewPayoutRetrySweeper(sweeper.PayoutRetryConfig{
			BatchSize:   cfg.PayoutRetry.BatchSize,
			GracePeriod: cfg.PayoutRetry.GracePeriod,
			Interval:    cfg.PayoutRetry.Interval,
		}, dataStore, payout, clock)
		sweepers = append(sweepers, retrySweeper)

		logger.InfoCtx(ctx, "Initialized payout retry sweeper",
			zap.Duration("grace_period", cfg.PayoutRetry.GracePeriod),
			zap.Duration("interval", cfg.PayoutRetry.Interval),
		)
	}

	if len(sweepers) == 0 {
		logger.WarnCtx(ctx, "No sweepers enabled, exiting")
		return
	}

	// Start each sweeper in its own goroutine
	errChan := make(chan error, len(sweepers))
	var wg sync.WaitGroup
	for _, s := range sweepers {
		wg.Add(1)
		go func(s sweeper.Sweeper) {
			defer wg.Done()
			if err := s.Start(ctx); err != nil {
				errChan <- fmt.Errorf("%s: %w", s.Name(), err)
			}
		}(s)
	}

	// Wait for interrupt signal or error
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errChan:
		logger.ErrorCtx(ctx, err)
	}

	// Cancel context to stop the sweepers
	cancel()

	// Give the sweepers time to shut down gracefully
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer shutdownCancel()

	for _, s := range sweepers {
		if err := s.Stop(shutdownCtx); err != nil {
			logger.ErrorCtx(shutdownCtx, err, zap.String("sweeper", s.Name()))
		}
	}
	wg.Wait()

	logger.InfoCtx(shutdownCtx, "Sweeper stopped")
}
