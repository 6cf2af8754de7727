package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/echolearn/arena/internal/adapters/http/api"
	"github.com/echolearn/arena/internal/adapters/http/swagger"
	"github.com/echolearn/arena/internal/adapters/repository"
	app "github.com/echolearn/arena/internal/app"
	"github.com/echolearn/arena/internal/config"
	"github.com/echolearn/arena/internal/content"
	"github.com/echolearn/arena/internal/domain/dedupe"
	"github.com/echolearn/arena/pkg/logger"
	"github.com/echolearn/arena/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout            = 10 * time.Second
	writeTimeout           = 10 * time.Second
	idleTimeout            = 60 * time.Second
	readHeaderTimeout      = 5 * time.Second
	shutdownTimeout        = 30 * time.Second
	systemMetricsInterval  = 10 * time.Second
	serviceMetricsInterval = 5 * time.Second
)

func main() {
	// Disable default Go metrics collection to avoid duplicate metrics;
	// the custom system metrics updater covers what we need.
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	var storeOpts []repository.Option
	if cfg.QueryLogging {
		storeOpts = append(storeOpts, repository.WithQueryLogging())
	}
	store, err := repository.New(cfg.DBPath, storeOpts...)
	if err != nil {
		log.Error(ctx, "failed to open store", logger.String("db_path", cfg.DBPath), logger.Error(err))
		return
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error(ctx, "failed to close store", logger.Error(err))
		}
	}()

	library, err := content.Load()
	if err != nil {
		log.Error(ctx, "failed to load contest content", logger.Error(err))
		return
	}

	svc := app.New(store, library,
		app.WithLogger(log),
		app.WithDeduper(dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(cfg.DedupeSize))),
	)

	// Seed the catalog up front so the first request pays no backfill cost.
	if err := svc.EnsureSeeded(ctx); err != nil {
		log.Error(ctx, "failed to seed contest catalog", logger.Error(err))
		return
	}

	go startSystemMetricsUpdater(ctx)
	go startServiceMetricsUpdater(ctx, svc)

	// HTTP mux and routes.
	mux := http.NewServeMux()
	swagger.Register(ctx, mux)
	api.NewServer(svc).Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
		}
	}()

	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
}

// startSystemMetricsUpdater periodically refreshes process-level gauges.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			var m runtime.MemStats
			runtime.ReadMemStats(&m)
			metrics.UpdateSystemMemoryUsage(m.Alloc)
			metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())
		}
	}
}

// startServiceMetricsUpdater periodically refreshes catalog and ledger gauges.
func startServiceMetricsUpdater(ctx context.Context, svc *app.Service) {
	ticker := time.NewTicker(serviceMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			contests, submissions, err := svc.Totals(ctx)
			if err != nil {
				continue
			}
			metrics.UpdateTotalContests(contests)
			metrics.UpdateTotalSubmissions(submissions)
		}
	}
}
