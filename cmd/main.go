package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gradmatch/gradmatch/internal/adapters/http/api"
	"github.com/gradmatch/gradmatch/internal/adapters/http/swagger"
	app "github.com/gradmatch/gradmatch/internal/app"
	"github.com/gradmatch/gradmatch/internal/config"
	"github.com/gradmatch/gradmatch/internal/demo"
	"github.com/gradmatch/gradmatch/internal/domain/scoring"
	"github.com/gradmatch/gradmatch/pkg/logger"
	"github.com/gradmatch/gradmatch/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/collectors"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	// The service registry carries only our own metrics by default; add the
	// standard runtime collectors so /metrics also exposes memory, GC, and
	// goroutine counts.
	metrics.GetRegistry().MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// Initialize logging
	if err := logger.Init(); err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			os.Stderr.WriteString("failed to sync logger: " + err.Error() + "\n")
		}
	}()

	loggerInstance := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// Create and start the service with configuration options
	svc := app.New(
		app.WithLogger(loggerInstance),
		app.WithWorkerCount(cfg.WarmWorkerCount),
		app.WithQueueSize(cfg.WarmQueueSize),
		app.WithCacheCapacity(cfg.CacheCapacity),
		app.WithMaxParallel(cfg.MaxParallelScoring),
		app.WithMinOverallScore(cfg.MinOverallScore),
		app.WithWeights(scoring.Weights{
			Skills:       cfg.SkillsWeight,
			Availability: cfg.AvailabilityWeight,
			Academic:     cfg.AcademicWeight,
			Experience:   cfg.ExperienceWeight,
		}),
		app.WithZeroCoverageGate(cfg.ZeroCoverageGate),
		app.WithPreferredBonus(cfg.PreferredBonus),
		app.WithAvailabilityHorizon(cfg.AvailabilityHorizonDays),
		app.WithStrategyName(cfg.ScoringStrategy),
		app.WithGeminiCredentials(cfg.GeminiAPIKey, cfg.GeminiModel),
		app.WithTaxonomyPath(cfg.TaxonomyFile),
	)
	if err := svc.Start(ctx); err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		return
	}
	defer svc.Stop()

	// Seed a reproducible demo pool unless configured to start empty.
	if cfg.DemoPoolSize > 0 {
		dataset := demo.New(
			demo.WithSeed(cfg.DemoSeed),
			demo.WithPoolSize(cfg.DemoPoolSize),
			demo.WithProjectCount(cfg.DemoProjectCount),
		).Generate()
		if err := dataset.Seed(ctx, svc); err != nil {
			os.Stderr.WriteString("failed to seed demo pool: " + err.Error() + "\n")
			return
		}
		loggerInstance.Info(ctx, "seeded demo pool",
			logger.Int("candidates", len(dataset.Candidates)),
			logger.Int("projects", len(dataset.Projects)),
			logger.Int64("seed", cfg.DemoSeed),
		)
	}

	// HTTP mux and routes.
	mux := http.NewServeMux()

	// Register API documentation under /api-docs
	swagger.Register(ctx, mux)

	// Register business API routes with the service dependency.
	apiServer := api.NewServer(svc, svc, cfg.MaxMatchLimit)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	// Start the HTTP server
	go func() {
		loggerInstance.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			// Use stderr for server errors
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			return
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	loggerInstance.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	loggerInstance.Info(ctx, "server stopped")
}
