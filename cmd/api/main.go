package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.temporal.io/sdk/client"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Allen-Brian/AGRICHAIN/internal/adapter"
	"github.com/Allen-Brian/AGRICHAIN/internal/api/middleware"
	"github.com/Allen-Brian/AGRICHAIN/internal/api/server"
	"github.com/Allen-Brian/AGRICHAIN/internal/cache"
	"github.com/Allen-Brian/AGRICHAIN/internal/config"
	"github.com/Allen-Brian/AGRICHAIN/internal/custody"
	"github.com/Allen-Brian/AGRICHAIN/internal/ledger"
	"github.com/Allen-Brian/AGRICHAIN/internal/logger"
	"github.com/Allen-Brian/AGRICHAIN/internal/providers/gateway"
	"github.com/Allen-Brian/AGRICHAIN/internal/providers/jetstream"
	temporal "github.com/Allen-Brian/AGRICHAIN/internal/providers/temporal"
	"github.com/Allen-Brian/AGRICHAIN/internal/ratelimit"
	"github.com/Allen-Brian/AGRICHAIN/internal/settlement"
	"github.com/Allen-Brian/AGRICHAIN/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "api-server",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting AGRICHAIN API")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	if err := store.UseReadReplica(db, cfg.Database.ReadDSN()); err != nil {
		logger.FatalCtx(ctx, "Failed to configure read replica", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
		zap.Bool("read_replica", cfg.Database.ReadHost != ""),
	)

	// Initialize store
	dataStore := store.NewPGStore(db)

	// Initialize adapters
	clock := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()

	// Redis backs both the query cache and the rate limiter
	var redisClient adapter.RedisClient
	if cfg.Cache.Enabled || cfg.RateLimit.Enabled {
		redisClient = adapter.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("Failed to close Redis client", zap.Error(err))
			}
		}()
	}

	queryCache := cache.NewNoopCache()
	if cfg.Cache.Enabled {
		queryCache = cache.NewRedisCache(redisClient, jsonAdapter, cache.Config{
			Prefix: cfg.Cache.Prefix,
			TTL:    cfg.Cache.TTL,
		})
		logger.InfoCtx(ctx, "Query cache enabled", zap.String("addr", cfg.Redis.Addr), zap.Duration("ttl", cfg.Cache.TTL))
	}

	var limiter ratelimit.Limiter
	if cfg.RateLimit.Enabled {
		limiter, err = ratelimit.NewLimiter(cfg.RateLimit, redisClient, clock)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to create rate limiter", zap.Error(err))
		}
		defer func() { _ = limiter.Close() }()
	}

	// Initialize ledger provider
	ledgerService, closeLedger := newLedgerService(ctx, cfg.Ledger, jsonAdapter, clock)
	defer closeLedger()
	ledgerClient := ledger.NewClient(ledgerService, dataStore)

	manager := custody.NewManager(custody.Config{
		ChannelScope: cfg.Ledger.ChannelScope,
	}, dataStore, ledgerClient, queryCache, clock)

	// Payouts run on the settlement worker through Temporal
	payout := settlement.NewNoopPayout()
	if cfg.Settlement.PayoutEnabled {
		temporalClient, err := client.Dial(client.Options{
			HostPort:  cfg.Temporal.HostPort,
			Namespace: cfg.Temporal.Namespace,
			Logger:    temporal.NewZapLoggerAdapter(logger.Default()),
		})
		if err != nil {
			logger.FatalCtx(ctx, "Failed to connect to Temporal", zap.Error(err), zap.String("host_port", cfg.Temporal.HostPort))
		}
		defer temporalClient.Close()
		logger.InfoCtx(ctx, "Connected to Temporal", zap.String("host_port", cfg.Temporal.HostPort))

		payout = settlement.NewTemporalPayout(temporalClient, cfg.Temporal.SettlementTaskQueue)
	} else {
		logger.WarnCtx(ctx, "Payout dispatch disabled, released escrows will wait for the payout retry sweeper")
	}

	service := settlement.NewService(dataStore, queryCache, payout)

	serverConfig := server.Config{
		Debug:          cfg.Debug,
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		ReadTimeout:    time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:    time.Duration(cfg.Server.IdleTimeout) * time.Second,
		AllowedOrigins: cfg.Auth.AllowedOrigins,
		Auth: middleware.AuthConfig{
			JWTPublicKey: cfg.Auth.JWTPublicKey,
			APIKeys:      cfg.Auth.APIKeys,
		},
	}

	srv := server.New(serverConfig, manager, service, limiter)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, err, zap.String("component", "server"))
	}

	logger.Info("API server stopped")
}

// newLedgerService builds the configured ledger provider and returns its cleanup
func newLedgerService(ctx context.Context, cfg config.LedgerConfig, jsonAdapter adapter.JSON, clock adapter.Clock) (ledger.Service, func()) {
	switch cfg.Provider {
	case config.LedgerProviderGateway:
		httpClient := adapter.NewHTTPClient(cfg.Gateway.RequestTimeout, nil)
		service := gateway.NewLedgerService(gateway.Config{
			BaseURL:             cfg.Gateway.BaseURL,
			APIKey:              cfg.Gateway.APIKey,
			SigningSecret:       cfg.Gateway.SigningSecret,
			ReceiptTimeout:      cfg.Gateway.ReceiptTimeout,
			ReceiptPollInterval: cfg.Gateway.ReceiptPollInterval,
		}, httpClient, jsonAdapter, adapter.NewBase64(), clock)
		logger.InfoCtx(ctx, "Using ledger gateway", zap.String("base_url", cfg.Gateway.BaseURL))
		return service, func() {}

	default:
		service, err := jetstream.NewLedgerService(ctx, jetstream.Config{
			URL:             cfg.NATS.URL,
			StreamName:      cfg.NATS.StreamName,
			SubjectPrefix:   cfg.NATS.SubjectPrefix,
			MaxReconnects:   cfg.NATS.MaxReconnects,
			ReconnectWait:   cfg.NATS.ReconnectWait,
			ConnectionName:  cfg.NATS.ConnectionName,
			DuplicateWindow: cfg.NATS.DuplicateWindow,
		}, adapter.NewNatsJetStream())
		if err != nil {
			logger.FatalCtx(ctx, "Failed to connect to JetStream ledger", zap.Error(err), zap.String("url", cfg.NATS.URL))
		}
		logger.InfoCtx(ctx, "Using JetStream ledger", zap.String("stream", cfg.NATS.StreamName))
		return service, service.Close
	}
}
