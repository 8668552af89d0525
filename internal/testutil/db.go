// Package testutil provides shared helpers for package tests.
package testutil

import (
	"testing"

	"presence-backend/internal/geo"
	"presence-backend/internal/model"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Reference office used across tests: downtown San Francisco, 100 m radius.
var OfficeCenter = geo.Point{Latitude: 37.7749, Longitude: -122.4194}

// NewTestDB opens a migrated in-memory SQLite database. A single connection
// is used so every query sees the same in-memory database.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "Failed to create test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(model.All()...), "Failed to migrate schema")
	return db
}

// Vector returns a deterministic 128-D descriptor; different seeds give
// vectors far below the match threshold of each other.
func Vector(seed int) []float64 {
	v := make([]float64, 128)
	for i := range v {
		if (i+seed)%7 == 0 {
			v[i] = 1
		} else {
			v[i] = 0.01 * float64((i*31+seed*17)%11)
		}
	}
	return v
}

// SeedWorker creates an office at OfficeCenter and a worker assigned to it.
func SeedWorker(t *testing.T, db *gorm.DB, externalID string, vectorSeed int) (*model.Worker, *model.Office) {
	t.Helper()
	office := &model.Office{
		Name:         "Main Office",
		Latitude:     OfficeCenter.Latitude,
		Longitude:    OfficeCenter.Longitude,
		RadiusMeters: 100,
	}
	require.NoError(t, db.Create(office).Error)

	worker := &model.Worker{
		ExternalID:   externalID,
		Name:         "Worker " + externalID,
		OfficeID:     office.ID,
		FaceEncoding: Vector(vectorSeed),
	}
	require.NoError(t, db.Create(worker).Error)
	worker.Office = office
	return worker, office
}
