package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"presence-backend/internal/metrics"
	"presence-backend/internal/model"
	"presence-backend/internal/presence"
	"presence-backend/internal/repository"
)

// WorkerPresence is one row of the live roster.
type WorkerPresence struct {
	WorkerID           string          `json:"worker_id"`
	WorkerName         string          `json:"worker_name"`
	OfficeName         string          `json:"office_name"`
	Status             presence.Status `json:"status"`
	Latitude           *float64        `json:"latitude"`
	Longitude          *float64        `json:"longitude"`
	DistanceFromOffice *float64        `json:"distance_from_office"`
	WithinGeofence     *bool           `json:"is_in_office_radius"`
	Sharing            bool            `json:"is_sharing"`
	LastUpdated        *time.Time      `json:"last_updated"`
}

type PresenceUsecase struct {
	workerRepo     repository.WorkerRepository
	officeRepo     repository.OfficeRepository
	locationRepo   repository.LocationRepository
	attendanceRepo repository.AttendanceRepository
	metrics        *metrics.Metrics
	log            *slog.Logger
	now            func() time.Time
}

func NewPresenceUsecase(
	workerRepo repository.WorkerRepository,
	officeRepo repository.OfficeRepository,
	locationRepo repository.LocationRepository,
	attendanceRepo repository.AttendanceRepository,
	m *metrics.Metrics,
	log *slog.Logger,
) *PresenceUsecase {
	return &PresenceUsecase{
		workerRepo:     workerRepo,
		officeRepo:     officeRepo,
		locationRepo:   locationRepo,
		attendanceRepo: attendanceRepo,
		metrics:        m,
		log:            log.With("module", "presence"),
		now:            time.Now,
	}
}

func (u *PresenceUsecase) SetClock(now func() time.Time) {
	u.now = now
}

// Get returns the presence of a single worker.
func (u *PresenceUsecase) Get(ctx context.Context, externalID string) (*WorkerPresence, error) {
	worker, err := u.workerRepo.FindByExternalID(ctx, externalID)
	if err != nil {
		return nil, err
	}

	officeName := ""
	if office, err := u.officeRepo.GetByID(ctx, worker.OfficeID); err == nil {
		officeName = office.Name
	}

	return u.build(ctx, worker, officeName, u.now())
}

// Roster returns the presence of every registered worker.
func (u *PresenceUsecase) Roster(ctx context.Context) ([]WorkerPresence, error) {
	workers, err := u.workerRepo.GetAll(ctx, "")
	if err != nil {
		return nil, err
	}

	now := u.now()
	roster := make([]WorkerPresence, 0, len(workers))
	for i := range workers {
		officeName := ""
		if workers[i].Office != nil {
			officeName = workers[i].Office.Name
		}
		p, err := u.build(ctx, &workers[i], officeName, now)
		if err != nil {
			return nil, err
		}
		roster = append(roster, *p)
	}
	return roster, nil
}

// CountOnline returns how many workers are online right now.
func (u *PresenceUsecase) CountOnline(ctx context.Context) (int, error) {
	roster, err := u.Roster(ctx)
	if err != nil {
		return 0, err
	}
	online := 0
	for _, p := range roster {
		if p.Status == presence.StatusOnline {
			online++
		}
	}
	return online, nil
}

func (u *PresenceUsecase) build(ctx context.Context, worker *model.Worker, officeName string, now time.Time) (*WorkerPresence, error) {
	latestLocation, err := u.locationRepo.GetLatest(ctx, worker.ID)
	if err != nil {
		return nil, fmt.Errorf("latest location for %q: %w", worker.ExternalID, err)
	}
	latestAttendance, err := u.attendanceRepo.GetLatest(ctx, worker.ID)
	if err != nil {
		return nil, fmt.Errorf("latest attendance for %q: %w", worker.ExternalID, err)
	}

	p := &WorkerPresence{
		WorkerID:   worker.ExternalID,
		WorkerName: worker.Name,
		OfficeName: officeName,
		Status:     presence.Infer(latestLocation, latestAttendance, now),
	}

	if latestLocation != nil {
		loc := *latestLocation
		p.Latitude = &loc.Latitude
		p.Longitude = &loc.Longitude
		p.DistanceFromOffice = &loc.DistanceFromOffice
		p.WithinGeofence = &loc.WithinGeofence
		p.Sharing = loc.ActivelySharing
	} else if latestAttendance != nil {
		att := *latestAttendance
		p.Latitude = &att.Latitude
		p.Longitude = &att.Longitude
		p.DistanceFromOffice = &att.DistanceMeters
	}

	if last := presence.LastSignal(latestLocation, latestAttendance); !last.IsZero() {
		p.LastUpdated = &last
	}
	return p, nil
}

// SweepStale deactivates active location records whose worker is no longer
// online, so the projection does not advertise stale sharing sessions. It
// returns the number of records deactivated.
func (u *PresenceUsecase) SweepStale(ctx context.Context) (int, error) {
	now := u.now()
	stale, err := u.locationRepo.ListActiveBefore(ctx, now.Add(-presence.LocationFreshness).UTC())
	if err != nil {
		return 0, fmt.Errorf("list stale locations: %w", err)
	}

	deactivated := 0
	for i := range stale {
		record := &stale[i]
		latestAttendance, err := u.attendanceRepo.GetLatest(ctx, record.WorkerID)
		if err != nil {
			return deactivated, fmt.Errorf("latest attendance for worker %d: %w", record.WorkerID, err)
		}
		if presence.IsOnline(record, latestAttendance, now) {
			continue
		}

		ok, err := u.locationRepo.Deactivate(ctx, record.WorkerID)
		if err != nil {
			return deactivated, fmt.Errorf("deactivate worker %d: %w", record.WorkerID, err)
		}
		if ok {
			deactivated++
		}
	}

	if u.metrics != nil {
		u.metrics.RecordStaleDeactivations(deactivated)
	}
	u.log.Info("stale location sweep finished", "checked", len(stale), "deactivated", deactivated)
	return deactivated, nil
}
