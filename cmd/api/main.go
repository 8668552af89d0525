package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"presence-backend/config"
	"presence-backend/internal/blob"
	"presence-backend/internal/metrics"
	"presence-backend/internal/repository"
	"presence-backend/internal/routes"
	"presence-backend/internal/usecase"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var version = "dev"

func main() {
	// 1. Configuration and logging
	cfg := config.Load()
	log := config.NewLogger(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	log.Info("starting presence-backend", "version", version, "port", cfg.Port)

	// 2. Database
	db, err := config.ConnectDB(cfg, log, 10, 3*time.Second)
	if err != nil {
		log.Error("database unavailable", "error", err)
		os.Exit(1)
	}

	// 3. Shared collaborators
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m, err := metrics.New(registry)
	if err != nil {
		log.Error("metrics registration failed", "error", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Error("upload dir unavailable", "dir", cfg.UploadDir, "error", err)
		os.Exit(1)
	}

	deps := &routes.Deps{
		DB:        db,
		Config:    cfg,
		Log:       log,
		Metrics:   m,
		Offices:   repository.NewCachedOfficeRepository(repository.NewOfficeRepository(db), cfg.OfficeCacheTTL),
		Images:    blob.NewLocalStore(cfg.UploadDir, cfg.PublicBaseURL),
		Version:   version,
		AccessLog: os.Stdout,
	}
	app := routes.NewApp(deps)

	// 4. Background stale sweep
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sweeper := usecase.NewPresenceUsecase(
		repository.NewWorkerRepository(db),
		deps.Offices,
		repository.NewLocationRepository(db),
		repository.NewAttendanceRepository(db),
		m,
		log,
	)
	go runSweeper(ctx, sweeper, cfg.SweepInterval, log)

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error("shutdown failed", "error", err)
		}
	}()

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
