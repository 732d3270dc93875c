package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/mirrorlabs/nft-mirror/internal/adapter"
	"github.com/mirrorlabs/nft-mirror/internal/api/server"
	"github.com/mirrorlabs/nft-mirror/internal/cache"
	"github.com/mirrorlabs/nft-mirror/internal/config"
	"github.com/mirrorlabs/nft-mirror/internal/discovery"
	"github.com/mirrorlabs/nft-mirror/internal/engine"
	"github.com/mirrorlabs/nft-mirror/internal/ethereum"
	"github.com/mirrorlabs/nft-mirror/internal/indexer"
	"github.com/mirrorlabs/nft-mirror/internal/lock"
	"github.com/mirrorlabs/nft-mirror/internal/logger"
	"github.com/mirrorlabs/nft-mirror/internal/pipeline"
	"github.com/mirrorlabs/nft-mirror/internal/store"
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
	logger.InfoCtx(ctx, "Starting NFT Mirror API")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	if err := store.Migrate(db); err != nil {
		logger.FatalCtx(ctx, "Failed to migrate database", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	// Initialize store and adapters
	dataStore := store.NewPGStore(db)
	clock := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()
	httpClient := adapter.NewHTTPClient(30 * time.Second)
	redisClient := adapter.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	defer func() { _ = redisClient.Close() }()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.WarnCtx(ctx, "Redis unreachable at startup, locks will fail open", zap.Error(err))
	}

	// Connect to NATS JetStream
	nc, js, err := adapter.NewNatsJetStream().Connect(cfg.NATS.URL,
		nats.Name(cfg.NATS.ConnectionName),
		nats.MaxReconnects(cfg.NATS.MaxReconnects),
		nats.ReconnectWait(cfg.NATS.ReconnectWait),
	)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to NATS", zap.Error(err))
	}
	defer nc.Close()
	logger.InfoCtx(ctx, "Connected to NATS", zap.String("url", nc.ConnectedUrl()))

	// Connect to the Ethereum RPC for on-chain fallback reads
	ethConn, err := adapter.NewEthClientDialer().Dial(ctx, cfg.Ethereum.RPCURL)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to Ethereum RPC", zap.Error(err))
	}
	ethClient := ethereum.NewClient(ethConn)
	defer ethClient.Close()

	// Assemble the synchronization engine
	indexerClient := indexer.NewClient(httpClient, cfg.Indexer.APIURL, cfg.Indexer.APIKey, cfg.Indexer.RequestsPerSecond, jsonAdapter)
	locks := lock.NewManager(redisClient, clock)
	pageCache := cache.New(redisClient)
	emitter := cache.NewEmitter(js, jsonAdapter)
	fetchPipeline := pipeline.New(indexerClient, clock, jsonAdapter, cfg.Engine.PipelineWorkers)
	syncEngine := engine.New(
		dataStore,
		locks,
		indexerClient,
		ethClient,
		discovery.NewFullScan(indexerClient, clock),
		discovery.NewSequentialProbe(indexerClient, clock),
		fetchPipeline,
		pageCache,
		emitter,
		clock,
		cfg.Engine.Cooldown,
	)

	// Create and start server
	srv := server.New(server.Config{
		Debug:        cfg.Debug,
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}, syncEngine, dataStore, pageCache, jsonAdapter)

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
		logger.FatalCtx(shutdownCtx, "Server forced to shutdown", zap.Error(err))
	}

	// Use non-context logger for final message since original ctx is canceled
	logger.Info("API server stopped")
}
