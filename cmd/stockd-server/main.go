// Package main provides the entry point for stockd-server.
//
// stockd-server is the inventory service process for stockd: it serves
// stock levels and single-unit orders over HTTP, persists every change
// to a flat JSON file, and exposes Prometheus metrics.
//
// @design DS-0501
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/stockd/stockd/internal/core/service"
	"github.com/stockd/stockd/internal/infra/buildinfo"
	"github.com/stockd/stockd/internal/infra/certwatch"
	"github.com/stockd/stockd/internal/infra/confloader"
	"github.com/stockd/stockd/internal/infra/shutdown"
	"github.com/stockd/stockd/internal/server/config"
	"github.com/stockd/stockd/internal/server/httpserver"
	"github.com/stockd/stockd/internal/storage/filestore"
	"github.com/stockd/stockd/internal/telemetry/logger"
	"github.com/stockd/stockd/internal/telemetry/metric"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configFile  = flag.String("config", "", "Path to configuration file")
		showVersion = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("stockd-server %s (commit: %s, built: %s)\n",
			buildinfo.Version, buildinfo.Commit, buildinfo.BuildTime)
		return nil
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := initLogger(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	log.Info("starting stockd-server",
		"version", buildinfo.Version,
		"commit", buildinfo.Commit,
		"config", *configFile)

	// Initialize the inventory store and load persisted state
	ctx := context.Background()
	store := filestore.New(cfg.Storage.File)

	loadRes, err := store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load inventory: %w", err)
	}
	if loadRes.Seeded() {
		log.Warn("inventory file unusable, seeded default inventory",
			"file", cfg.Storage.File,
			"outcome", string(loadRes.Outcome),
			"items", loadRes.Items,
			"reason", loadRes.Reason)
	} else {
		log.Info("inventory loaded",
			"file", cfg.Storage.File,
			"items", loadRes.Items)
	}

	// Initialize metrics registry
	metrics := metric.New(metric.Config{
		Namespace: cfg.Telemetry.Namespace,
		Service:   cfg.Telemetry.Service,
		Version:   buildinfo.Version,
	})

	// Initialize inventory service and publish initial gauge values
	inventorySvc := service.NewInventoryService(store, metrics, &service.InventoryServiceConfig{
		LowStockThreshold: cfg.Inventory.Threshold,
	})
	inventorySvc.RefreshGauges(ctx)

	// Create HTTP router and server
	router := httpserver.NewRouter(&httpserver.RouterConfig{
		InventoryService:   inventorySvc,
		Metrics:            metrics,
		Logger:             log,
		CORSAllowedOrigins: cfg.Server.HTTP.CORS,
		GlobalRateLimit:    cfg.Server.HTTP.RateLimit,
		EnableAudit:        cfg.Server.HTTP.Audit,
	})
	httpServer := httpserver.New(cfg.Server.HTTP.Addr, router)

	// Hooks run newest-first, so the HTTP server stops before anything
	// it depends on
	shutdownHandler := shutdown.NewHandler(30 * time.Second)
	shutdownHandler.OnShutdown(func(ctx context.Context) error {
		log.Info("shutting down HTTP server")
		return httpServer.Shutdown(ctx)
	})

	// Watch the config file for live threshold and log level changes
	if *configFile != "" {
		watcher, err := startConfigWatcher(*configFile, inventorySvc, log)
		if err != nil {
			log.Warn("config watcher disabled", "error", err)
		} else {
			shutdownHandler.OnShutdown(func(context.Context) error {
				return watcher.Stop()
			})
		}
	}

	// With TLS configured, serve through a key pair watcher so rotated
	// certificates are picked up without a restart
	var certWatcher *certwatch.Watcher
	if cfg.Server.HTTP.TLSCertFile != "" && cfg.Server.HTTP.TLSKeyFile != "" {
		certWatcher, err = certwatch.NewWatcher(
			cfg.Server.HTTP.TLSCertFile,
			cfg.Server.HTTP.TLSKeyFile,
			certwatch.WithLogger(log),
		)
		if err != nil {
			return fmt.Errorf("load TLS key pair: %w", err)
		}
		certWatcher.StartAsync()
		shutdownHandler.OnShutdown(func(context.Context) error {
			return certWatcher.Stop()
		})
	}

	// Serve in the background; Wait blocks until a signal arrives
	go func() {
		log.Info("HTTP server listening",
			"addr", cfg.Server.HTTP.Addr,
			"tls", certWatcher != nil)

		var err error
		if certWatcher != nil {
			err = httpServer.ListenAndServeTLS(certWatcher.GetCertificate)
		} else {
			err = httpServer.ListenAndServe()
		}

		if err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
		}
	}()

	log.Info("server started, press Ctrl+C to stop")
	if err := shutdownHandler.Wait(); err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}

	log.Info("server stopped gracefully")
	return nil
}

// loadConfig layers the optional config file and STOCKD_ environment
// variables over the built-in defaults.
func loadConfig(configFile string) (*config.ServerConfig, error) {
	cfg := config.Default()

	var opts []confloader.Option
	if configFile != "" {
		opts = append(opts, confloader.WithConfigFile(configFile))
	}
	if err := confloader.NewLoader(opts...).Load(cfg); err != nil {
		return nil, err
	}

	if err := config.Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// initLogger builds the process logger and installs it as the slog
// default so library code logging through slog shares the handler.
func initLogger(cfg *config.ServerConfig) (*slog.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stdout,
	})
	if err != nil {
		return nil, err
	}

	slog.SetDefault(log)
	return log, nil
}

// startConfigWatcher re-reads the config file on change and applies the
// settings that are safe to move at runtime: the low-stock threshold and
// the log level. Everything else still requires a restart.
func startConfigWatcher(configFile string, inventorySvc *service.InventoryService, log *slog.Logger) (*confloader.Watcher, error) {
	watcher, err := confloader.NewWatcher(confloader.WithWatcherLogger(log))
	if err != nil {
		return nil, err
	}

	if err := watcher.Watch(configFile); err != nil {
		watcher.Stop()
		return nil, err
	}

	watcher.OnChange(func(string) {
		cfg, err := loadConfig(configFile)
		if err != nil {
			log.Warn("config reload skipped", "error", err)
			return
		}

		inventorySvc.SetLowStockThreshold(context.Background(), cfg.Inventory.Threshold)
		logger.SetLevel(cfg.Log.Level)

		log.Info("configuration reloaded",
			"low_stock_threshold", cfg.Inventory.Threshold,
			"log_level", cfg.Log.Level)
	})

	watcher.StartAsync()
	return watcher, nil
}
