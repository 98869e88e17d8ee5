// Package main is the entry point for the idiom catalog service.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jsamuelsen/idiom-catalog/internal/adapters/http"
	"github.com/jsamuelsen/idiom-catalog/internal/adapters/http/handlers"
	"github.com/jsamuelsen/idiom-catalog/internal/adapters/sources"
	"github.com/jsamuelsen/idiom-catalog/internal/app"
	"github.com/jsamuelsen/idiom-catalog/internal/platform/config"
	"github.com/jsamuelsen/idiom-catalog/internal/platform/logging"
	"github.com/jsamuelsen/idiom-catalog/internal/platform/metrics"
	"github.com/jsamuelsen/idiom-catalog/internal/platform/telemetry"
	"github.com/jsamuelsen/idiom-catalog/internal/ports"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD)"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	// Configuration errors stop startup before anything is opened.
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	logging.SetDefault(logger)

	logger.Info("starting service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
	)

	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(ctx); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	catalogMetrics := metrics.New(strings.ReplaceAll(cfg.App.Name, "-", "_"))

	set, err := sources.FromConfig(ctx, &cfg.Catalog, sources.Options{Client: cfg.Client, Logger: logger})
	if err != nil {
		return fmt.Errorf("building catalog sources: %w", err)
	}

	defer func() {
		if closeErr := set.Close(); closeErr != nil {
			logger.Error("closing catalog stores", slog.Any("error", closeErr))
		}
	}()

	svc := app.NewCatalogService(set.Sources, set.Sinks, app.CatalogServiceConfig{
		Title:           cfg.Catalog.Title,
		LoadConcurrency: cfg.Catalog.LoadConcurrency,
		LoadTimeout:     cfg.Catalog.LoadTimeout,
		FailFast:        cfg.Catalog.FailFast,
		Logger:          logger,
		Metrics:         catalogMetrics,
	})

	healthRegistry := ports.NewHealthRegistry()
	for _, checker := range append([]ports.HealthChecker{svc}, set.Checkers...) {
		if err := healthRegistry.Register(checker); err != nil {
			return fmt.Errorf("registering health check %s: %w", checker.Name(), err)
		}
	}

	// The first load must succeed: an empty service is never useful.
	summary, err := svc.Reload(ctx)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	logger.Info("catalog ready",
		slog.Int("sections", summary.Sections),
		slog.Int("entries", summary.Entries),
		slog.Any("sources", summary.Sources),
	)

	server := http.New(&cfg.Server, logger)

	http.SetupRouter(server.Engine(), &http.RouterConfig{
		Logger:      logger,
		ServiceName: cfg.Telemetry.ServiceName,
		Auth:        &cfg.Auth,
		Health: handlers.NewHealthHandler(healthRegistry,
			handlers.NewBuildInfo(Version, Commit, BuildTime), catalogMetrics.Handler()),
		Catalog: handlers.NewCatalogHandler(svc, svc),
		Timeout: cfg.Server.RequestTimeout,
	})

	serverErr := server.Start()

	return waitForShutdown(ctx, logger, server, serverErr, cfg.Server.ShutdownTimeout)
}

// waitForShutdown blocks until a signal arrives or the server fails, then
// drains in-flight requests within shutdownTimeout.
func waitForShutdown(
	ctx context.Context,
	logger *slog.Logger,
	server *http.Server,
	serverErr <-chan error,
	shutdownTimeout time.Duration,
) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-serverErr:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}

		return nil

	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	logger.Info("initiating graceful shutdown", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("shutdown complete")

	return nil
}
