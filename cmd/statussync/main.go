// Command statussync runs one stale-location sweep and exits. Schedule it
// from cron when the API's in-process sweeper is disabled.
package main

import (
	"context"
	"os"
	"time"

	"presence-backend/config"
	"presence-backend/internal/metrics"
	"presence-backend/internal/repository"
	"presence-backend/internal/usecase"
)

func main() {
	cfg := config.Load()
	log := config.NewLogger(os.Stdout, cfg.LogLevel, cfg.LogFormat)

	db, err := config.ConnectDB(cfg, log, 3, 2*time.Second)
	if err != nil {
		log.Error("database unavailable", "error", err)
		os.Exit(1)
	}

	m, err := metrics.New(nil)
	if err != nil {
		log.Error("metrics registration failed", "error", err)
		os.Exit(1)
	}

	uc := usecase.NewPresenceUsecase(
		repository.NewWorkerRepository(db),
		repository.NewOfficeRepository(db),
		repository.NewLocationRepository(db),
		repository.NewAttendanceRepository(db),
		m,
		log,
	)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	n, err := uc.SweepStale(ctx)
	if err != nil {
		log.Error("stale sweep failed", "error", err)
		os.Exit(1)
	}
	log.Info("status sync finished", "deactivated", n)
}
