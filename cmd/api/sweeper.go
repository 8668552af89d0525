package main

import (
	"context"
	"log/slog"
	"time"

	"presence-backend/internal/usecase"
)

// runSweeper deactivates stale location records every interval until ctx is
// done. A zero interval disables it.
func runSweeper(ctx context.Context, uc *usecase.PresenceUsecase, interval time.Duration, log *slog.Logger) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := uc.SweepStale(ctx); err != nil {
				log.Error("stale sweep failed", "error", err)
			}
		}
	}
}
