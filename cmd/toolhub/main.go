package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/toolhub-ai/toolhub/internal/catalog"
	"github.com/toolhub-ai/toolhub/internal/config"
	"github.com/toolhub-ai/toolhub/internal/server"
	"github.com/toolhub-ai/toolhub/internal/source"
	"github.com/toolhub-ai/toolhub/internal/store"
	"github.com/toolhub-ai/toolhub/internal/version"
	"github.com/toolhub-ai/toolhub/internal/web"
	"github.com/toolhub-ai/toolhub/pkg/seed"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Info())
		return
	}

	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("ToolHub server starting", zap.String("version", version.Short()))

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Open the snapshot store unless disabled.
	var snapshots source.Snapshots
	if path := cfg.GetString("store.path"); path != "" {
		db, err := store.New(path)
		if err != nil {
			logger.Fatal("failed to open snapshot store", zap.Error(err))
		}
		defer db.Close()

		if err := db.Migrate(ctx, store.SnapshotMigrations()); err != nil {
			logger.Fatal("failed to migrate snapshot store", zap.Error(err))
		}
		snapshots = store.NewSnapshotRepository(db, time.Now)
	}

	// Load the embedded seed catalog in development mode.
	opts := source.Options{
		Snapshots:       snapshots,
		RefreshInterval: cfg.GetDuration("source.refresh_interval"),
	}
	if cfg.GetBool("source.seed") {
		tools, err := seed.New().Tools()
		if err != nil {
			logger.Fatal("failed to load seed catalog", zap.Error(err))
		}
		opts.Seed = tools
	}

	metrics := server.NewMetrics(prometheus.NewRegistry())
	opts.Registerer = metrics.Registry()

	client := source.NewClient(
		cfg.GetString("source.url"),
		cfg.GetString("source.key"),
		cfg.GetDuration("source.timeout"),
	)
	provider := source.NewProvider(client, logger, opts)

	engine := catalog.NewEngine(time.Now)
	catalogHandler := catalog.NewHandler(provider, engine, logger)
	webHandler, err := web.NewHandler(provider, engine, logger, time.Now)
	if err != nil {
		logger.Fatal("failed to initialize web handler", zap.Error(err))
	}

	addr := cfg.GetString("server.host") + ":" + cfg.GetString("server.port")
	if addr == ":" {
		addr = "0.0.0.0:8080"
	}
	srv := server.New(addr, logger, metrics, catalogHandler, webHandler)

	// Start server in background
	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	logger.Info("ToolHub server ready", zap.String("addr", addr))

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh

	logger.Info("received shutdown signal", zap.String("signal", sig.String()))

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}

	logger.Info("ToolHub server stopped")
}
