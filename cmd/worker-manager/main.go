// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"window-display-workers/internal/common/camunda"
	"window-display-workers/internal/common/config"
	"window-display-workers/internal/common/database"
	"window-display-workers/internal/common/logger"
	"window-display-workers/internal/common/observability"
	"window-display-workers/internal/common/validation"
	"window-display-workers/pkg/registry"

	// Display Workers (3)
	gdp "window-display-workers/internal/workers/display/generate-display-prompt"
	mdp "window-display-workers/internal/workers/display/map-display-parameters"
	tl "window-display-workers/internal/workers/display/taxonomy-lookup"

	// Dynamics Workers (3)
	csd "window-display-workers/internal/workers/dynamics/compute-state-distance"
	gap "window-display-workers/internal/workers/dynamics/generate-attractor-prompt"
	grs "window-display-workers/internal/workers/dynamics/generate-rhythmic-sequence"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog, err := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs, err := observability.New(cfg.App.Name, prometheus.DefaultRegisterer)
	if err != nil {
		zapLog.Fatal("observability init failed", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Zeebe ---
	zeebe, err := camunda.Connect(ctx, cfg.Camunda, camunda.DefaultRetryConfig, log)
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// --- Activity registry & schema validation ---
	reg := loadRegistry(cfg.Registry.Path, zapLog)
	validator, err := validation.NewValidator(reg)
	if err != nil {
		zapLog.Fatal("activity registry schemas do not compile", zap.Error(err))
	}

	// --- Spec cache (optional) ---
	specCache, closeCache := openSpecCache(ctx, cfg.Cache, zapLog)
	defer closeCache()

	// --- Register Workers ---
	manager := camunda.NewWorkerManager(zeebe.Zeebe(), obs, log)

	{
		wcfg := config.GetWorkerConfig(cfg, mdp.TaskType)
		c := mdp.LoadConfig()
		c.Timeout = config.GetDuration(wcfg.Timeout)
		manager.Register(mdp.TaskType, wcfg, mdp.NewHandler(c, specCache, obs, validator, log))
	}

	{
		wcfg := config.GetWorkerConfig(cfg, gdp.TaskType)
		c := gdp.LoadConfig()
		c.Timeout = config.GetDuration(wcfg.Timeout)
		manager.Register(gdp.TaskType, wcfg, gdp.NewHandler(c, validator, log))
	}

	{
		wcfg := config.GetWorkerConfig(cfg, tl.TaskType)
		c := tl.LoadConfig()
		c.Timeout = config.GetDuration(wcfg.Timeout)
		c.ServiceName = cfg.App.Name
		c.ServiceVersion = cfg.App.Version
		manager.Register(tl.TaskType, wcfg, tl.NewHandler(c, validator, log))
	}

	{
		wcfg := config.GetWorkerConfig(cfg, grs.TaskType)
		c := grs.LoadConfig()
		c.Timeout = config.GetDuration(wcfg.Timeout)
		manager.Register(grs.TaskType, wcfg, grs.NewHandler(c, validator, log))
	}

	{
		wcfg := config.GetWorkerConfig(cfg, csd.TaskType)
		c := csd.LoadConfig()
		c.Timeout = config.GetDuration(wcfg.Timeout)
		manager.Register(csd.TaskType, wcfg, csd.NewHandler(c, validator, log))
	}

	{
		wcfg := config.GetWorkerConfig(cfg, gap.TaskType)
		c := gap.LoadConfig()
		c.Timeout = config.GetDuration(wcfg.Timeout)
		manager.Register(gap.TaskType, wcfg, gap.NewHandler(c, validator, log))
	}

	zapLog.Info("Workers registered", zap.Strings("taskTypes", manager.TaskTypes()))

	// --- Health & Metrics Server ---
	srv := newHealthServer(cfg.Metrics.Port, zeebe)
	go func() {
		zapLog.Info("Health/Metrics server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	<-ctx.Done()
	zapLog.Info("Shutdown signal received, stopping workers...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	manager.Stop(shutdownCtx)

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping health server", zap.Error(err))
	}
	if err := obs.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error flushing meter provider", zap.Error(err))
	}
	if err := zeebe.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped")
}

// loadRegistry reads the registry file, falling back to the built-in
// activities when no path is configured or the file is missing.
func loadRegistry(path string, log *zap.Logger) *registry.ActivityRegistry {
	if path == "" {
		log.Info("No registry path configured, using built-in activities")
		return registry.Default()
	}

	reg, err := registry.LoadRegistry(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			log.Warn("Registry file not found, using built-in activities", zap.String("path", path))
			return registry.Default()
		}
		log.Fatal("registry load failed", zap.String("path", path), zap.Error(err))
	}
	if err := reg.Validate(); err != nil {
		log.Fatal("registry is invalid", zap.String("path", path), zap.Error(err))
	}

	log.Info("Registry loaded", zap.String("path", path), zap.Int("activities", len(reg.Activities)))
	return reg
}

// openSpecCache connects the Redis spec cache. An unreachable server
// disables the cache rather than stopping startup.
func openSpecCache(ctx context.Context, cfg config.CacheConfig, log *zap.Logger) (mdp.SpecCache, func()) {
	noop := func() {}
	if !cfg.Enabled {
		log.Info("Spec cache disabled")
		return nil, noop
	}

	rc := database.NewRedis(cfg.Redis)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rc.Ping(pingCtx); err != nil {
		log.Warn("Redis unreachable, continuing without spec cache",
			zap.String("address", cfg.Redis.Address),
			zap.Error(err),
		)
		_ = rc.Close()
		return nil, noop
	}

	log.Info("Redis connected successfully", zap.String("address", cfg.Redis.Address))
	cache := database.NewSpecCache(rc.Client, cfg.KeyPrefix, config.GetDuration(cfg.TTL))
	return cache, func() {
		if err := rc.Close(); err != nil {
			log.Error("Error closing Redis client", zap.Error(err))
		}
	}
}

func newHealthServer(port int, zeebe *camunda.Client) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, "healthy")
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		if err := zeebe.HealthCheck(r.Context()); err != nil {
			writeStatus(w, http.StatusServiceUnavailable, "unavailable")
			return
		}
		writeStatus(w, http.StatusOK, "ready")
	})
	mux.Handle("/metrics", promhttp.Handler())

	return &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func writeStatus(w http.ResponseWriter, code int, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"status": status})
}
