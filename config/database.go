package config

import (
	"fmt"
	"log/slog"
	"time"

	"presence-backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "mysql":
		return mysql.Open(dsn), nil
	case "postgres":
		return postgres.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
}

// ConnectDB opens the database, retrying while it comes up, and migrates
// the schema.
func ConnectDB(cfg Config, log *slog.Logger, attempts int, delay time.Duration) (*gorm.DB, error) {
	dial, err := dialector(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for i := 1; i <= attempts; i++ {
		db, err := gorm.Open(dial, &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
		if err == nil {
			log.Info("database connected", "driver", cfg.DBDriver)

			// Auto Migration
			if err := db.AutoMigrate(model.All()...); err != nil {
				return nil, fmt.Errorf("migrate schema: %w", err)
			}
			return db, nil
		}

		lastErr = err
		log.Warn("database not ready", "attempt", i, "error", err)
		time.Sleep(delay)
	}

	return nil, fmt.Errorf("db connect failed after %d attempts: %w", attempts, lastErr)
}
