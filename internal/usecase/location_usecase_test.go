package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"presence-backend/internal/model"
	"presence-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngestPing_UpsertsSingleActiveRecord(t *testing.T) {
	env := newTestEnv(t)
	worker, _ := testutil.SeedWorker(t, env.db, "W1", 1)
	ctx := context.Background()

	clock := testNow
	uc := env.locationUsecase(func() time.Time { return clock })

	_, err := uc.IngestPing(ctx, PingInput{WorkerID: "W1", Latitude: ptr(1.0), Longitude: ptr(1.0), DistanceFromOffice: 10, WithinGeofence: true, SharingEnabled: true})
	require.NoError(t, err)

	clock = testNow.Add(time.Minute)
	_, err = uc.IngestPing(ctx, PingInput{WorkerID: "W1", Latitude: ptr(2.0), Longitude: ptr(2.0), DistanceFromOffice: 20, WithinGeofence: true, SharingEnabled: true})
	require.NoError(t, err)

	count, err := env.locations.CountActive(ctx, worker.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	active, err := env.locations.GetActive(ctx, worker.ID)
	require.NoError(t, err)
	assert.Equal(t, 2.0, active.Latitude)
	assert.Equal(t, 2.0, active.Longitude)
	assert.Equal(t, 20.0, active.DistanceFromOffice)
	assert.True(t, active.Timestamp.Equal(testNow.Add(time.Minute)))

	var rows int64
	require.NoError(t, env.db.Model(&model.LocationRecord{}).Where("worker_id = ?", worker.ID).Count(&rows).Error)
	assert.EqualValues(t, 1, rows)

	history, err := uc.History(ctx, "W1", testNow.Add(-time.Hour), testNow.Add(time.Hour))
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestIngestPing_ConcurrentPingsKeepOneActiveRecord(t *testing.T) {
	env := newTestEnv(t)
	worker, _ := testutil.SeedWorker(t, env.db, "W1", 1)
	uc := env.locationUsecase(fixedClock(testNow))

	const n = 10
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := uc.IngestPing(context.Background(), PingInput{
				WorkerID: "W1", Latitude: ptr(float64(i)), Longitude: ptr(float64(i)),
				WithinGeofence: true, SharingEnabled: true,
			})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	count, err := env.locations.CountActive(context.Background(), worker.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestIngestPing_SharingDisabledDeactivates(t *testing.T) {
	env := newTestEnv(t)
	worker, _ := testutil.SeedWorker(t, env.db, "W1", 1)
	ctx := context.Background()
	uc := env.locationUsecase(fixedClock(testNow))

	_, err := uc.IngestPing(ctx, PingInput{WorkerID: "W1", Latitude: ptr(5.0), Longitude: ptr(6.0), WithinGeofence: true, SharingEnabled: true})
	require.NoError(t, err)

	res, err := uc.IngestPing(ctx, PingInput{WorkerID: "W1", Latitude: ptr(50.0), Longitude: ptr(60.0), SharingEnabled: false})
	require.NoError(t, err)
	assert.True(t, res.Acknowledged)
	assert.True(t, res.Deactivated)

	count, err := env.locations.CountActive(ctx, worker.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	latest, err := env.locations.GetLatest(ctx, worker.ID)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.False(t, latest.ActivelySharing)
	assert.Equal(t, 5.0, latest.Latitude, "sharing-off pings do not overwrite the position")

	// Nothing left to deactivate.
	res, err = uc.IngestPing(ctx, PingInput{WorkerID: "W1", Latitude: ptr(5.0), Longitude: ptr(6.0), SharingEnabled: false})
	require.NoError(t, err)
	assert.True(t, res.Acknowledged)
	assert.False(t, res.Deactivated)

	// Sharing again starts a fresh active record.
	_, err = uc.IngestPing(ctx, PingInput{WorkerID: "W1", Latitude: ptr(7.0), Longitude: ptr(8.0), WithinGeofence: true, SharingEnabled: true})
	require.NoError(t, err)

	var rows int64
	require.NoError(t, env.db.Model(&model.LocationRecord{}).Where("worker_id = ?", worker.ID).Count(&rows).Error)
	assert.EqualValues(t, 2, rows)
	count, err = env.locations.CountActive(ctx, worker.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestIngestPing_OutsideGeofenceCreatesAlert(t *testing.T) {
	env := newTestEnv(t)
	worker, office := testutil.SeedWorker(t, env.db, "W1", 1)
	ctx := context.Background()
	uc := env.locationUsecase(fixedClock(testNow))

	res, err := uc.IngestPing(ctx, PingInput{
		WorkerID: "W1", Latitude: ptr(37.79), Longitude: ptr(-122.41),
		DistanceFromOffice: 2500, WithinGeofence: false, SharingEnabled: true,
	})
	require.NoError(t, err)
	assert.True(t, res.AlertCreated)

	// Renaming the office later must not rewrite existing alerts.
	office.Name = "Renamed Office"
	require.NoError(t, env.offices.Update(ctx, office))

	alerts, err := env.alerts.GetByWorker(ctx, worker.ID)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.InDelta(t, 2.5, alerts[0].DistanceKm, 1e-9)
	assert.Equal(t, "Main Office", alerts[0].OfficeName)
	assert.True(t, alerts[0].Timestamp.Equal(testNow))

	res, err = uc.IngestPing(ctx, atOffice("W1"))
	require.NoError(t, err)
	assert.False(t, res.AlertCreated)
}

func TestIngestPing_UnknownWorker(t *testing.T) {
	env := newTestEnv(t)
	uc := env.locationUsecase(fixedClock(testNow))

	_, err := uc.IngestPing(context.Background(), atOffice("ghost"))
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = uc.IngestPing(context.Background(), atOffice("  "))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestIngestPing_RequiresCoordinates(t *testing.T) {
	env := newTestEnv(t)
	worker, _ := testutil.SeedWorker(t, env.db, "W1", 1)
	ctx := context.Background()
	uc := env.locationUsecase(fixedClock(testNow))

	tests := []struct {
		name string
		in   PingInput
	}{
		{"no coordinates", PingInput{WorkerID: "W1", WithinGeofence: true, SharingEnabled: true}},
		{"latitude only", PingInput{WorkerID: "W1", Latitude: ptr(1.0), WithinGeofence: true, SharingEnabled: true}},
		{"longitude only", PingInput{WorkerID: "W1", Longitude: ptr(1.0), SharingEnabled: true}},
		{"sharing off", PingInput{WorkerID: "W1", SharingEnabled: false}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := uc.IngestPing(ctx, tt.in)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Nil(t, res)
		})
	}

	latest, err := env.locations.GetLatest(ctx, worker.ID)
	require.NoError(t, err)
	assert.Nil(t, latest, "rejected pings must not store a location")

	// The equator and prime meridian are valid coordinates.
	_, err = uc.IngestPing(ctx, PingInput{WorkerID: "W1", Latitude: ptr(0.0), Longitude: ptr(0.0), WithinGeofence: true, SharingEnabled: true})
	require.NoError(t, err)
	active, err := env.locations.GetActive(ctx, worker.ID)
	require.NoError(t, err)
	assert.Zero(t, active.Latitude)
}
