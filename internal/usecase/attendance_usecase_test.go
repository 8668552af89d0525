package usecase

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"presence-backend/internal/biometric"
	"presence-backend/internal/geo"
	"presence-backend/internal/model"
	"presence-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func submission(workerID string, descriptor []float64, at geo.Point) SubmitAttendanceInput {
	return SubmitAttendanceInput{
		WorkerID:   workerID,
		Descriptor: descriptor,
		Latitude:   ptr(at.Latitude),
		Longitude:  ptr(at.Longitude),
		Action:     "login",
		ImageRef:   "https://blob.example/attendance/1.jpg",
	}
}

func TestSubmitAttendance_AcceptedAtOffice(t *testing.T) {
	env := newTestEnv(t)
	worker, _ := testutil.SeedWorker(t, env.db, "W1", 1)
	uc := env.attendanceUsecase()

	verdict, err := uc.Submit(context.Background(), submission("W1", testutil.Vector(1), testutil.OfficeCenter))
	require.NoError(t, err)

	assert.Equal(t, StatusAccepted, verdict.Status)
	assert.True(t, verdict.Accepted())
	assert.InDelta(t, 1.0, verdict.Similarity, 1e-9)
	assert.InDelta(t, 0.0, verdict.DistanceMeters, 1)
	require.NotNil(t, verdict.Event)
	assert.Equal(t, testNow, verdict.Event.Timestamp, "timestamp is assigned by the server")
	assert.Equal(t, model.ActionLogin, verdict.Event.Action)

	history, err := env.attendance.GetHistory(context.Background(), worker.ID, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "https://blob.example/attendance/1.jpg", history[0].ImageRef)
}

func TestSubmitAttendance_RejectedOutsideGeofence(t *testing.T) {
	env := newTestEnv(t)
	worker, _ := testutil.SeedWorker(t, env.db, "W1", 1)
	uc := env.attendanceUsecase()

	far := geo.Destination(testutil.OfficeCenter, 90, 500)
	verdict, err := uc.Submit(context.Background(), submission("W1", testutil.Vector(1), far))
	require.NoError(t, err)

	assert.Equal(t, StatusRejectedGeofence, verdict.Status)
	assert.Equal(t, ReasonOutsideGeofence, verdict.Reason)
	assert.InDelta(t, 500, verdict.DistanceMeters, 1)
	assert.Equal(t, 100.0, verdict.AllowedRadius)
	assert.Nil(t, verdict.Event)

	history, err := env.attendance.GetHistory(context.Background(), worker.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestSubmitAttendance_IdentityCheckedBeforeGeofence(t *testing.T) {
	env := newTestEnv(t)
	testutil.SeedWorker(t, env.db, "W1", 1)
	uc := env.attendanceUsecase()

	far := geo.Destination(testutil.OfficeCenter, 0, 5000)
	verdict, err := uc.Submit(context.Background(), submission("W1", testutil.Vector(2), far))
	require.NoError(t, err)

	assert.Equal(t, StatusRejectedIdentity, verdict.Status)
	assert.Equal(t, ReasonFaceMismatch, verdict.Reason)
	assert.Equal(t, biometric.Threshold, verdict.Threshold)
	assert.Less(t, verdict.Similarity, biometric.Threshold)
	assert.Zero(t, verdict.DistanceMeters, "geofence must not be evaluated")
}

func TestSubmitAttendance_DegenerateDescriptor(t *testing.T) {
	env := newTestEnv(t)
	testutil.SeedWorker(t, env.db, "W1", 1)
	uc := env.attendanceUsecase()

	zero := make([]float64, biometric.VectorLength)
	verdict, err := uc.Submit(context.Background(), submission("W1", zero, testutil.OfficeCenter))
	require.NoError(t, err)
	assert.Equal(t, StatusRejectedIdentity, verdict.Status)
	assert.Equal(t, ReasonNoSignalDetected, verdict.Reason)

	nan := testutil.Vector(1)
	nan[3] = math.NaN()
	verdict, err = uc.Submit(context.Background(), submission("W1", nan, testutil.OfficeCenter))
	require.NoError(t, err)
	assert.Equal(t, StatusRejectedIdentity, verdict.Status)
	assert.Equal(t, ReasonInvalidVector, verdict.Reason)
}

func TestSubmitAttendance_InputValidation(t *testing.T) {
	env := newTestEnv(t)
	testutil.SeedWorker(t, env.db, "W1", 1)
	uc := env.attendanceUsecase()

	tests := []struct {
		name   string
		mutate func(in *SubmitAttendanceInput)
		reason string
	}{
		{"MissingWorkerID", func(in *SubmitAttendanceInput) { in.WorkerID = "" }, ReasonMissingWorkerID},
		{"ShortDescriptor", func(in *SubmitAttendanceInput) { in.Descriptor = in.Descriptor[:127] }, ReasonInvalidDescriptor},
		{"MissingDescriptor", func(in *SubmitAttendanceInput) { in.Descriptor = nil }, ReasonInvalidDescriptor},
		{"MissingLatitude", func(in *SubmitAttendanceInput) { in.Latitude = nil }, ReasonMissingCoordinates},
		{"UnknownAction", func(in *SubmitAttendanceInput) { in.Action = "lunch" }, ReasonUnknownAction},
		{"UnknownWorker", func(in *SubmitAttendanceInput) { in.WorkerID = "nobody" }, ReasonWorkerNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := submission("W1", testutil.Vector(1), testutil.OfficeCenter)
			tt.mutate(&in)

			verdict, err := uc.Submit(context.Background(), in)
			require.NoError(t, err)
			assert.Equal(t, StatusRejectedInput, verdict.Status)
			assert.Equal(t, tt.reason, verdict.Reason)
		})
	}
}

func TestSubmitAttendance_ShrinkingRadiusRejects(t *testing.T) {
	env := newTestEnv(t)
	_, office := testutil.SeedWorker(t, env.db, "W1", 1)
	uc := env.attendanceUsecase()

	spot := geo.Destination(testutil.OfficeCenter, 45, 60)
	in := submission("W1", testutil.Vector(1), spot)

	verdict, err := uc.Submit(context.Background(), in)
	require.NoError(t, err)
	require.Equal(t, StatusAccepted, verdict.Status)

	office.RadiusMeters = 59
	require.NoError(t, env.offices.Update(context.Background(), office))

	verdict, err = uc.Submit(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, StatusRejectedGeofence, verdict.Status)
	assert.InDelta(t, 60, verdict.DistanceMeters, 0.5)
	assert.Equal(t, 59.0, verdict.AllowedRadius)
}

func TestSubmitAttendance_RepeatedSubmissionsAppend(t *testing.T) {
	env := newTestEnv(t)
	worker, _ := testutil.SeedWorker(t, env.db, "W1", 1)
	uc := env.attendanceUsecase()
	in := submission("W1", testutil.Vector(1), testutil.OfficeCenter)

	first, err := uc.Submit(context.Background(), in)
	require.NoError(t, err)
	second, err := uc.Submit(context.Background(), in)
	require.NoError(t, err)

	assert.NotEqual(t, first.Event.ID, second.Event.ID)

	history, err := env.attendance.GetHistory(context.Background(), worker.ID, 0)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestSubmitAttendance_ConcurrentSubmissionsAllRecorded(t *testing.T) {
	env := newTestEnv(t)
	worker, _ := testutil.SeedWorker(t, env.db, "W1", 1)
	uc := env.attendanceUsecase()

	const n = 8
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Submit(context.Background(), submission("W1", testutil.Vector(1), testutil.OfficeCenter))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	history, err := env.attendance.GetHistory(context.Background(), worker.ID, 0)
	require.NoError(t, err)
	assert.Len(t, history, n)
}

func TestAttendanceLogRange(t *testing.T) {
	env := newTestEnv(t)
	worker, _ := testutil.SeedWorker(t, env.db, "W1", 1)
	ctx := context.Background()

	for _, ts := range []time.Time{
		testNow.Add(-time.Hour),      // today
		testNow.Add(-20 * time.Hour), // yesterday
		testNow.Add(-72 * time.Hour), // within last 7 days
		testNow.Add(-10 * 24 * time.Hour),
	} {
		require.NoError(t, env.attendance.Create(ctx, &model.AttendanceEvent{
			WorkerID: worker.ID, Timestamp: ts, Action: model.ActionLogin,
		}))
	}

	uc := env.attendanceUsecase()

	today, err := uc.LogRange(ctx, "today")
	require.NoError(t, err)
	assert.Len(t, today, 1)
	require.NotNil(t, today[0].Worker)
	assert.Equal(t, "W1", today[0].Worker.ExternalID)
	require.NotNil(t, today[0].Worker.Office)
	assert.Equal(t, "Main Office", today[0].Worker.Office.Name)

	yesterday, err := uc.LogRange(ctx, "yesterday")
	require.NoError(t, err)
	assert.Len(t, yesterday, 1)

	week, err := uc.LogRange(ctx, "last7days")
	require.NoError(t, err)
	assert.Len(t, week, 3)

	_, err = uc.LogRange(ctx, "lastyear")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
