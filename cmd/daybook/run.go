package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"daybook-hq/daybook/pkg/assets"
	"daybook-hq/daybook/pkg/auth"
	"daybook-hq/daybook/pkg/cli"
	"daybook-hq/daybook/pkg/config"
	"daybook-hq/daybook/pkg/server"
	"daybook-hq/daybook/pkg/session"
	"daybook-hq/daybook/pkg/storage"
	"daybook-hq/daybook/pkg/telemetry/logging"
	"daybook-hq/daybook/pkg/telemetry/metrics"
)

var runFlags struct {
	listenAddress string
	logLevel      string
	dryRun        bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the diary server",
	Long: `Start the diary server with the specified configuration.

The server listens on the configured address and serves the single-page
diary application plus its dynamic endpoints. Every connection carries
exactly one request and is closed after the response.

Examples:
  # Start with default config
  daybook run

  # Start with custom config
  daybook run --config /etc/daybook/config.yaml

  # Override listen address
  daybook run --listen 0.0.0.0:8080

  # Validate config without starting the server
  daybook run --dry-run`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.listenAddress, "listen", "l", "", "override listen address")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting the server")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}

	// Apply flag overrides
	if runFlags.listenAddress != "" {
		cfg.Server.ListenAddress = runFlags.listenAddress
	}
	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}

	logger, err := logging.New(cfg.Telemetry.Logging, nil)
	if err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}
	logger.SetDefault()

	if runFlags.dryRun {
		fmt.Println("✓ Configuration valid")
		return nil
	}

	fmt.Printf("Daybook v%s\n", Version)
	fmt.Printf("Loading configuration from: %s\n", cfgFile)
	fmt.Println("✓ Configuration loaded")

	// Open storage
	var store storage.Store
	switch cfg.Storage.Backend {
	case "sqlite":
		if dir := filepath.Dir(cfg.Storage.SQLite.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create database directory %q: %w", dir, err)
			}
		}
		sqliteConfig := &storage.SQLiteConfig{
			Path:         cfg.Storage.SQLite.Path,
			MaxOpenConns: cfg.Storage.SQLite.MaxOpenConns,
			MaxIdleConns: cfg.Storage.SQLite.MaxIdleConns,
			WALMode:      cfg.Storage.SQLite.WALMode,
			BusyTimeout:  cfg.Storage.SQLite.BusyTimeout,
		}
		sqliteStore, err := storage.NewSQLiteStore(sqliteConfig)
		if err != nil {
			return fmt.Errorf("failed to open SQLite storage: %w", err)
		}
		store = sqliteStore

		// Scheduled WAL checkpointing only applies to the SQLite backend.
		if cfg.Storage.MaintenanceSchedule != "" {
			maintainer := storage.NewMaintainer(sqliteStore, cfg.Storage.MaintenanceSchedule)
			maintCtx, maintCancel := context.WithCancel(context.Background())
			defer maintCancel()
			if err := maintainer.Start(maintCtx); err != nil {
				logger.Slog().Warn("failed to start maintenance scheduler", "error", err)
			} else {
				defer maintainer.Stop()
			}
		}
	case "memory":
		store = storage.NewMemoryStore()
	default:
		return fmt.Errorf("unsupported storage backend: %s", cfg.Storage.Backend)
	}
	defer store.Close()
	fmt.Printf("✓ Storage initialized (%s)\n", cfg.Storage.Backend)

	sessions := session.NewStore()
	hasher := auth.NewPBKDF2Hasher(cfg.Auth.PasswordSalt, cfg.Auth.PBKDF2Iterations)
	assetDir := assets.NewDir(cfg.Assets.Dir)

	handlers := server.NewHandlers(store, sessions, hasher, assetDir)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Metrics on a separate operator listener
	var collector *metrics.Collector
	if cfg.Telemetry.Metrics.Enabled {
		collector = metrics.NewCollector(cfg.Telemetry.Metrics, sessions.Len, nil)
		metricsServer := metrics.NewServer(cfg.Telemetry.Metrics, collector, logger.Slog())
		go func() {
			if err := metricsServer.Start(ctx); err != nil {
				logger.Slog().Error("metrics server failed", "error", err)
			}
		}()
		fmt.Printf("✓ Metrics listening on %s\n", cfg.Telemetry.Metrics.ListenAddress)
	}

	// Watch the config file so the log level can change without a restart
	watcher, err := config.NewWatcher(cfgFile, logger.Slog())
	if err != nil {
		logger.Slog().Warn("config watcher unavailable", "error", err)
	} else {
		go func() {
			err := watcher.Watch(ctx, func(next *config.Config) {
				if err := logger.SetLevel(next.Telemetry.Logging.Level); err != nil {
					logger.Slog().Warn("reloaded log level rejected", "error", err)
				}
			})
			if err != nil {
				logger.Slog().Warn("config watcher stopped", "error", err)
			}
		}()
	}

	srv := server.NewServer(&cfg.Server, handlers.Routes(), collector)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start(ctx)
	}()

	fmt.Printf("✓ Server listening on %s\n", cfg.Server.ListenAddress)
	fmt.Println("\nPress Ctrl+C to stop")

	sigChan := cli.WaitForShutdown()

	select {
	case err := <-errChan:
		if err != nil {
			return cli.NewCommandError("run", err)
		}
		return nil
	case sig := <-sigChan:
		fmt.Printf("\nReceived signal %s, shutting down gracefully...\n", sig)
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Slog().Error("shutdown failed", "error", err)
			return cli.NewCommandError("run", err)
		}

		fmt.Println("✓ Server stopped")
		return nil
	}
}
