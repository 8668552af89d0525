package database

import (
	"fmt"
	"log/slog"
	"math"

	"presence-backend/internal/biometric"
	"presence-backend/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedOptions controls the accounts created by SeedAll.
type SeedOptions struct {
	AdminUsername string
	AdminPassword string
	DemoWorker    bool
}

// SeedAll creates a default office and admin account, plus a demo worker
// when asked. It is idempotent; the admin password is reset on every run.
func SeedAll(db *gorm.DB, opts SeedOptions, log *slog.Logger) error {
	// 1. Default office
	office := model.Office{
		Name:         "Head Office",
		Latitude:     37.7749,
		Longitude:    -122.4194,
		RadiusMeters: model.DefaultRadiusMeters,
	}
	if err := db.FirstOrCreate(&office, model.Office{Name: office.Name}).Error; err != nil {
		return fmt.Errorf("seed office: %w", err)
	}

	// 2. Admin account
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(opts.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := model.Admin{
		Name:     "Administrator",
		Username: opts.AdminUsername,
		Password: string(hashedPassword),
		Role:     model.RoleAdmin,
	}
	if err := db.FirstOrCreate(&admin, model.Admin{Username: admin.Username}).Error; err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	// Keep the password in sync even when the admin already existed
	if err := db.Model(&admin).Update("password", string(hashedPassword)).Error; err != nil {
		return fmt.Errorf("reset admin password: %w", err)
	}
	log.Info("admin seeded", "username", admin.Username)

	// 3. Demo worker
	if opts.DemoWorker {
		worker := model.Worker{
			ExternalID:   "DEMO-001",
			Name:         "Demo Worker",
			OfficeID:     office.ID,
			FaceEncoding: DemoDescriptor(),
		}
		if err := db.FirstOrCreate(&worker, model.Worker{ExternalID: worker.ExternalID}).Error; err != nil {
			return fmt.Errorf("seed demo worker: %w", err)
		}
		log.Info("demo worker seeded", "worker_id", worker.ExternalID, "office", office.Name)
	}

	return nil
}

// DemoDescriptor is the unit-length descriptor stored for the demo worker.
func DemoDescriptor() []float64 {
	v := make([]float64, biometric.VectorLength)
	var norm float64
	for i := range v {
		v[i] = math.Sin(float64(i+1)) + 1.5
		norm += v[i] * v[i]
	}
	norm = math.Sqrt(norm)
	for i := range v {
		v[i] /= norm
	}
	return v
}
