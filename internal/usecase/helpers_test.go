package usecase

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"presence-backend/internal/metrics"
	"presence-backend/internal/repository"
	"presence-backend/internal/testutil"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testNow = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

type testEnv struct {
	db         *gorm.DB
	workers    repository.WorkerRepository
	offices    repository.OfficeRepository
	attendance repository.AttendanceRepository
	locations  repository.LocationRepository
	alerts     repository.AlertRepository
	metrics    *metrics.Metrics
	log        *slog.Logger
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.NewTestDB(t)
	m, err := metrics.New(nil)
	require.NoError(t, err)

	return &testEnv{
		db:         db,
		workers:    repository.NewWorkerRepository(db),
		offices:    repository.NewOfficeRepository(db),
		attendance: repository.NewAttendanceRepository(db),
		locations:  repository.NewLocationRepository(db),
		alerts:     repository.NewAlertRepository(db),
		metrics:    m,
		log:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func (e *testEnv) attendanceUsecase() *AttendanceUsecase {
	u := NewAttendanceUsecase(e.workers, e.offices, e.attendance, nil, e.metrics, e.log)
	u.SetClock(func() time.Time { return testNow })
	return u
}

func (e *testEnv) locationUsecase(now func() time.Time) *LocationUsecase {
	u := NewLocationUsecase(e.workers, e.offices, e.locations, e.metrics, e.log)
	u.SetClock(now)
	return u
}

func (e *testEnv) presenceUsecase(now time.Time) *PresenceUsecase {
	u := NewPresenceUsecase(e.workers, e.offices, e.locations, e.attendance, e.metrics, e.log)
	u.SetClock(func() time.Time { return now })
	return u
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func ptr[T any](v T) *T { return &v }

// atOffice is a sharing ping sent from the office centre.
func atOffice(workerID string) PingInput {
	return PingInput{
		WorkerID:       workerID,
		Latitude:       ptr(testutil.OfficeCenter.Latitude),
		Longitude:      ptr(testutil.OfficeCenter.Longitude),
		WithinGeofence: true,
		SharingEnabled: true,
	}
}
