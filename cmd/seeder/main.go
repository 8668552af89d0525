package main

import (
	"os"
	"time"

	"presence-backend/config"
	"presence-backend/internal/database"
)

func main() {
	cfg := config.Load()
	log := config.NewLogger(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	log.Info("database seeding started")

	db, err := config.ConnectDB(cfg, log, 5, 2*time.Second)
	if err != nil {
		log.Error("database unavailable", "error", err)
		os.Exit(1)
	}

	opts := database.SeedOptions{
		AdminUsername: config.GetEnv("SEED_ADMIN_USERNAME", "admin"),
		AdminPassword: config.GetEnv("SEED_ADMIN_PASSWORD", "admin123"),
		DemoWorker:    config.GetEnv("SEED_DEMO_WORKER", "true") == "true",
	}
	if err := database.SeedAll(db, opts, log); err != nil {
		log.Error("seeding failed", "error", err)
		os.Exit(1)
	}

	log.Info("database seeding finished")
}
