// ABOUTME: Entry point for the UxS mission planner backend service
// ABOUTME: Serves the platform, comms, and sustainment calculators over a JSON HTTP API

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/uxsforge/mission-planner/backend/cache"
	"github.com/uxsforge/mission-planner/backend/config"
	"github.com/uxsforge/mission-planner/backend/handlers"
	"github.com/uxsforge/mission-planner/backend/logger"
	"github.com/uxsforge/mission-planner/backend/middleware"
	"github.com/uxsforge/mission-planner/backend/models"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Initialize structured logging
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting UxS Mission Planner backend",
		"port", cfg.Port,
		"battery_dod", cfg.BatteryDepthOfDischarge,
		"power_efficiency", cfg.PowerEfficiency,
		"default_temperature_c", cfg.DefaultTemperatureC,
	)
	if !cfg.RateLimitEnabled {
		slog.Warn("Rate limiting disabled")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize cache
	cacheTTL := time.Duration(cfg.CacheTTL) * time.Second
	commsCache := cache.New[models.CommsAnalysis](cacheTTL)
	commsCache.StartCleanup(ctx, time.Minute)
	slog.Info("Cache initialized", "ttl", cacheTTL)

	h := handlers.NewHandler(cfg, commsCache)

	var metrics *middleware.Metrics
	if cfg.MetricsEnabled {
		metrics, err = middleware.NewMetrics(nil)
		if err != nil {
			slog.Error("Failed to register metrics", "error", err)
			os.Exit(1)
		}
		h.SetMetrics(metrics)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handlers.NewRouter(cfg, h, metrics),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
