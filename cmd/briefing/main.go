package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/deusflow/briefing/internal/app"
	"github.com/deusflow/briefing/internal/config"
	"github.com/deusflow/briefing/internal/logger"
	"github.com/deusflow/briefing/internal/metrics"
	"github.com/deusflow/briefing/internal/monitor"
)

func main() {
	// .env is optional; real environment variables win.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("Failed to load .env", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	logger.Init(cfg.Debug)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.EnableHTTPMonitoring {
		go monitor.Start(ctx, ":"+cfg.MonitoringPort, metrics.Global)
	}

	logger.Info("Starting briefing", "edition", cfg.Edition, "dry_run", cfg.DryRun)
	if err := app.Run(ctx, cfg); err != nil {
		logger.Error("Briefing failed", "error", err)
		stop()
		os.Exit(1)
	}
	logger.Info("Briefing finished")
}
