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
	cfg, err := config.LoadRetryWorkerConfig(*configFile, *envPath)
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
			"service": "retry-worker",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting NFT Mirror retry worker",
		zap.Duration("interval", cfg.Retry.Interval),
		zap.Int("batch_size", cfg.Retry.BatchSize),
	)

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}

	// Initialize store and adapters
	dataStore := store.NewPGStore(db)
	clock := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()
	httpClient := adapter.NewHTTPClient(30 * time.Second)
	redisClient := adapter.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	defer func() { _ = redisClient.Close() }()

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

	// Connect to the Ethereum RPC for on-chain fallback reads
	ethConn, err := adapter.NewEthClientDialer().Dial(ctx, cfg.Ethereum.RPCURL)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to Ethereum RPC", zap.Error(err))
	}
	ethClient := ethereum.NewClient(ethConn)
	defer ethClient.Close()

	// Assemble the synchronization engine
	indexerClient := indexer.NewClient(httpClient, cfg.Indexer.APIURL, cfg.Indexer.APIKey, cfg.Indexer.RequestsPerSecond, jsonAdapter)
	syncEngine := engine.New(
		dataStore,
		lock.NewManager(redisClient, clock),
		indexerClient,
		ethClient,
		discovery.NewFullScan(indexerClient, clock),
		discovery.NewSequentialProbe(indexerClient, clock),
		pipeline.New(indexerClient, clock, jsonAdapter, cfg.Engine.PipelineWorkers),
		cache.New(redisClient),
		cache.NewEmitter(js, jsonAdapter),
		clock,
		cfg.Engine.Cooldown,
	)

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	}()

	// Drain the ledger on a fixed interval until told to stop
	ticker := time.NewTicker(cfg.Retry.Interval)
	defer ticker.Stop()

	runRetryPass(ctx, syncEngine, cfg.Retry.BatchSize)
	for {
		select {
		case <-ctx.Done():
			logger.Info("Retry worker stopped")
			return
		case <-ticker.C:
			runRetryPass(ctx, syncEngine, cfg.Retry.BatchSize)
		}
	}
}

// runRetryPass executes one pass over the error ledger
func runRetryPass(ctx context.Context, syncEngine engine.Engine, batchSize int) {
	outcome, err := syncEngine.RetryFailed(ctx, batchSize)
	if err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("retry pass failed: %w", err))
		return
	}

	logger.InfoCtx(ctx, "Retry pass finished",
		zap.Int("attempted", outcome.Attempted),
		zap.Int("recovered", outcome.Recovered),
		zap.Int("still_failing", outcome.StillFailing),
	)
}
