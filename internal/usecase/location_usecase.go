package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"presence-backend/internal/metrics"
	"presence-backend/internal/model"
	"presence-backend/internal/repository"
)

type PingInput struct {
	WorkerID  string
	Latitude  *float64
	Longitude *float64

	// DistanceFromOffice (meters) and WithinGeofence are computed by the
	// client and stored as given.
	DistanceFromOffice float64
	WithinGeofence     bool
	SharingEnabled     bool
}

type PingResult struct {
	Acknowledged bool `json:"acknowledged"`
	AlertCreated bool `json:"alert_created"`
	Deactivated  bool `json:"deactivated,omitempty"`
}

type LocationUsecase struct {
	workerRepo   repository.WorkerRepository
	officeRepo   repository.OfficeRepository
	locationRepo repository.LocationRepository
	metrics      *metrics.Metrics
	log          *slog.Logger
	now          func() time.Time
}

func NewLocationUsecase(
	workerRepo repository.WorkerRepository,
	officeRepo repository.OfficeRepository,
	locationRepo repository.LocationRepository,
	m *metrics.Metrics,
	log *slog.Logger,
) *LocationUsecase {
	return &LocationUsecase{
		workerRepo:   workerRepo,
		officeRepo:   officeRepo,
		locationRepo: locationRepo,
		metrics:      m,
		log:          log.With("module", "location"),
		now:          time.Now,
	}
}

func (u *LocationUsecase) SetClock(now func() time.Time) {
	u.now = now
}

// IngestPing updates the worker's active location record. With sharing
// disabled it only clears the active flag. With sharing enabled it upserts
// the active record and, when the worker is outside the geofence, creates a
// LocationAlert that snapshots the office name. Pings without both
// coordinates are rejected whatever the sharing flag.
func (u *LocationUsecase) IngestPing(ctx context.Context, in PingInput) (*PingResult, error) {
	in.WorkerID = strings.TrimSpace(in.WorkerID)
	if in.WorkerID == "" {
		return nil, fmt.Errorf("%w: worker_id is required", ErrInvalidInput)
	}
	if in.Latitude == nil || in.Longitude == nil {
		return nil, fmt.Errorf("%w: latitude and longitude are required", ErrInvalidInput)
	}
	lat, lon := *in.Latitude, *in.Longitude

	worker, err := u.workerRepo.FindByExternalID(ctx, in.WorkerID)
	if err != nil {
		return nil, fmt.Errorf("find worker %q: %w", in.WorkerID, err)
	}

	if u.metrics != nil {
		u.metrics.RecordPing(in.SharingEnabled)
	}

	if !in.SharingEnabled {
		deactivated, err := u.locationRepo.Deactivate(ctx, worker.ID)
		if err != nil {
			return nil, fmt.Errorf("deactivate location for %q: %w", in.WorkerID, err)
		}
		u.log.Debug("location sharing disabled", "worker_id", in.WorkerID, "deactivated", deactivated)
		return &PingResult{Acknowledged: true, Deactivated: deactivated}, nil
	}

	now := u.now().UTC()
	record := &model.LocationRecord{
		WorkerID:           worker.ID,
		Latitude:           lat,
		Longitude:          lon,
		DistanceFromOffice: in.DistanceFromOffice,
		WithinGeofence:     in.WithinGeofence,
		Timestamp:          now,
	}
	ping := &model.LocationPing{
		WorkerID:           worker.ID,
		Latitude:           lat,
		Longitude:          lon,
		DistanceFromOffice: in.DistanceFromOffice,
		WithinGeofence:     in.WithinGeofence,
		SharingEnabled:     true,
		Timestamp:          now,
	}

	var alert *model.LocationAlert
	if !in.WithinGeofence {
		office, err := u.officeRepo.GetByID(ctx, worker.OfficeID)
		if err != nil {
			return nil, fmt.Errorf("find office %d: %w", worker.OfficeID, err)
		}
		alert = &model.LocationAlert{
			WorkerID:   worker.ID,
			Latitude:   lat,
			Longitude:  lon,
			DistanceKm: in.DistanceFromOffice / 1000,
			OfficeName: office.Name,
			Timestamp:  now,
		}
	}

	if err := u.locationRepo.SaveActive(ctx, record, ping, alert); err != nil {
		return nil, fmt.Errorf("save location for %q: %w", in.WorkerID, err)
	}

	if alert != nil {
		if u.metrics != nil {
			u.metrics.RecordAlert()
		}
		u.log.Warn("worker outside geofence",
			"worker_id", in.WorkerID,
			"office", alert.OfficeName,
			"distance_km", alert.DistanceKm)
	}

	return &PingResult{Acknowledged: true, AlertCreated: alert != nil}, nil
}

// History returns the pings a worker sent in [start, end).
func (u *LocationUsecase) History(ctx context.Context, externalID string, start, end time.Time) ([]model.LocationPing, error) {
	worker, err := u.workerRepo.FindByExternalID(ctx, externalID)
	if err != nil {
		return nil, err
	}
	return u.locationRepo.GetHistory(ctx, worker.ID, start.UTC(), end.UTC())
}
