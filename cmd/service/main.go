// Package main is the entry point for the dog proxy.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/jsamuelsen/dog-proxy/internal/adapters/clients"
	"github.com/jsamuelsen/dog-proxy/internal/adapters/clients/acl"
	"github.com/jsamuelsen/dog-proxy/internal/adapters/http"
	"github.com/jsamuelsen/dog-proxy/internal/adapters/http/handlers"
	"github.com/jsamuelsen/dog-proxy/internal/app"
	"github.com/jsamuelsen/dog-proxy/internal/platform/config"
	"github.com/jsamuelsen/dog-proxy/internal/platform/logging"
	"github.com/jsamuelsen/dog-proxy/internal/platform/metrics"
	"github.com/jsamuelsen/dog-proxy/internal/platform/telemetry"
	"github.com/jsamuelsen/dog-proxy/internal/ports"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	// Version is the semantic version of the service.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "unknown"

	// BuildTime is the timestamp when the binary was built.
	BuildTime = "unknown"
)

// readinessCheckTimeout bounds each readiness check.
const readinessCheckTimeout = 5 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Determine profile from environment
	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	// 2. Load and validate configuration (fail fast)
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// 3. Initialize logging
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
		slog.String("upstream", cfg.Services.Dogs.BaseURL),
	)

	// 4. Initialize telemetry (noop if disabled)
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
		// The signal context is already done here.
		if shutdownErr := telProvider.Shutdown(context.WithoutCancel(ctx)); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	// 5. Prometheus registry served on /-/metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	recorder := metrics.NewRecorder(metrics.WithRegistry(registry))

	// 6. Create HTTP client for the dog API
	httpClient, err := clients.New(&clients.Config{
		BaseURL:     cfg.Services.Dogs.BaseURL,
		ServiceName: cfg.Services.Dogs.Name,
		Timeout:     cfg.Client.Timeout,
		Transport:   cfg.Client.Transport,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("creating HTTP client: %w", err)
	}

	// 7. Create dog.ceo adapter (ACL pattern) and register it for readiness
	dogClient := acl.NewDogCEOClient(acl.DogCEOClientConfig{
		Client: httpClient,
		Logger: logger,
	})

	healthRegistry := ports.NewHealthRegistry(ports.WithCheckTimeout(readinessCheckTimeout))
	if err := healthRegistry.Register(dogClient); err != nil {
		return fmt.Errorf("registering dog client health check: %w", err)
	}

	// 8. Create dog service (application layer)
	dogService := app.NewDogService(app.DogServiceConfig{
		DogClient: dogClient,
		Metrics:   recorder,
		Logger:    logger,
	})

	// 9. Create handlers
	buildInfo := handlers.NewBuildInfo(Version, Commit, BuildTime)
	healthHandler := handlers.NewHealthHandler(healthRegistry, buildInfo, handlers.WithGatherer(registry))
	dogHandler := handlers.NewDogHandler(dogService)

	// 10. Create HTTP server and router
	server := http.New(&cfg.Server, logger)
	http.SetupRouter(server.Engine(), http.RouterConfig{
		Logger:        logger,
		AppConfig:     &cfg.App,
		HealthHandler: healthHandler,
		DogHandler:    dogHandler,
		Timeout:       cfg.Server.RequestTimeout,
	})

	// 11. Serve until a signal arrives or the server fails, then drain
	return serve(ctx, logger, server, cfg.Server.ShutdownTimeout)
}

// serve runs the server and performs graceful shutdown once ctx is done.
// A server failure cancels the group and is returned.
func serve(ctx context.Context, logger *slog.Logger, server *http.Server, shutdownTimeout time.Duration) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		// Start closes the channel without a value after a clean shutdown.
		if err, ok := <-server.Start(); ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		if ctx.Err() != nil {
			logger.Info("received shutdown signal")
		}

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()

		logger.Info("initiating graceful shutdown", slog.Duration("timeout", shutdownTimeout))

		// Stop accepting new requests, drain in-flight
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("shutdown complete")

	return nil
}
