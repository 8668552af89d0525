package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"presence-backend/internal/biometric"
	"presence-backend/internal/blob"
	"presence-backend/internal/geo"
	"presence-backend/internal/metrics"
	"presence-backend/internal/model"
	"presence-backend/internal/repository"
)

type AttendanceStatus string

const (
	StatusAccepted         AttendanceStatus = "accepted"
	StatusRejectedInput    AttendanceStatus = "rejected_input"
	StatusRejectedIdentity AttendanceStatus = "rejected_identity"
	StatusRejectedGeofence AttendanceStatus = "rejected_geofence"
)

// Rejection reasons carried in Verdict.Reason.
const (
	ReasonInvalidDescriptor  = "invalid_descriptor"
	ReasonMissingCoordinates = "missing_coordinates"
	ReasonUnknownAction      = "unknown_action"
	ReasonMissingWorkerID    = "missing_worker_id"
	ReasonWorkerNotFound     = "worker_not_found"
	ReasonOfficeNotFound     = "office_not_found"
	ReasonNoSignalDetected   = "no_signal_detected"
	ReasonInvalidVector      = "invalid_vector"
	ReasonFaceMismatch       = "face_mismatch"
	ReasonOutsideGeofence    = "outside_geofence"
)

type SubmitAttendanceInput struct {
	WorkerID   string
	Descriptor []float64
	Latitude   *float64
	Longitude  *float64
	Action     string
	ImageRef   string
	// ImageBase64 is stored through the blob store only once the submission
	// is accepted; the resulting URL replaces ImageRef.
	ImageBase64 string
}

// Verdict is the outcome of a submission. Rejections are verdicts, not errors.
type Verdict struct {
	Status         AttendanceStatus       `json:"status"`
	Reason         string                 `json:"reason,omitempty"`
	Similarity     float64                `json:"similarity"`
	Threshold      float64                `json:"threshold,omitempty"`
	DistanceMeters float64                `json:"distance_meters"`
	AllowedRadius  float64                `json:"allowed_radius,omitempty"`
	Event          *model.AttendanceEvent `json:"event,omitempty"`
}

func (v *Verdict) Accepted() bool { return v.Status == StatusAccepted }

type AttendanceUsecase struct {
	workerRepo     repository.WorkerRepository
	officeRepo     repository.OfficeRepository
	attendanceRepo repository.AttendanceRepository
	images         blob.Store
	metrics        *metrics.Metrics
	log            *slog.Logger
	now            func() time.Time
}

func NewAttendanceUsecase(
	workerRepo repository.WorkerRepository,
	officeRepo repository.OfficeRepository,
	attendanceRepo repository.AttendanceRepository,
	images blob.Store,
	m *metrics.Metrics,
	log *slog.Logger,
) *AttendanceUsecase {
	return &AttendanceUsecase{
		workerRepo:     workerRepo,
		officeRepo:     officeRepo,
		attendanceRepo: attendanceRepo,
		images:         images,
		metrics:        m,
		log:            log.With("module", "attendance"),
		now:            time.Now,
	}
}

// SetClock replaces the time source used for server timestamps.
func (u *AttendanceUsecase) SetClock(now func() time.Time) {
	u.now = now
}

// Submit runs a submission through input validation, the identity check and
// the geofence check, in that order, and records an AttendanceEvent only when
// all of them pass. The returned error is reserved for storage failures.
func (u *AttendanceUsecase) Submit(ctx context.Context, in SubmitAttendanceInput) (*Verdict, error) {
	// 1. Input validation
	if in.WorkerID == "" {
		return u.reject(in.WorkerID, StatusRejectedInput, ReasonMissingWorkerID, &Verdict{}), nil
	}
	if len(in.Descriptor) != biometric.VectorLength {
		return u.reject(in.WorkerID, StatusRejectedInput, ReasonInvalidDescriptor, &Verdict{}), nil
	}
	if in.Latitude == nil || in.Longitude == nil {
		return u.reject(in.WorkerID, StatusRejectedInput, ReasonMissingCoordinates, &Verdict{}), nil
	}
	action, ok := model.ParseAttendanceAction(in.Action)
	if !ok {
		return u.reject(in.WorkerID, StatusRejectedInput, ReasonUnknownAction, &Verdict{}), nil
	}

	worker, err := u.workerRepo.FindByExternalID(ctx, in.WorkerID)
	if errors.Is(err, repository.ErrNotFound) {
		return u.reject(in.WorkerID, StatusRejectedInput, ReasonWorkerNotFound, &Verdict{}), nil
	}
	if err != nil {
		return nil, fmt.Errorf("find worker %q: %w", in.WorkerID, err)
	}

	// 2. Identity
	match, err := biometric.Compare(in.Descriptor, worker.FaceEncoding)
	if err != nil {
		reason := ReasonInvalidVector
		if errors.Is(err, biometric.ErrNoSignalDetected) {
			reason = ReasonNoSignalDetected
		}
		return u.reject(in.WorkerID, StatusRejectedIdentity, reason, &Verdict{Threshold: biometric.Threshold}), nil
	}
	if u.metrics != nil {
		u.metrics.ObserveSimilarity(match.Similarity)
	}
	if !match.IsMatch {
		return u.reject(in.WorkerID, StatusRejectedIdentity, ReasonFaceMismatch, &Verdict{
			Similarity: match.Similarity,
			Threshold:  biometric.Threshold,
		}), nil
	}

	// 3. Geofence
	office, err := u.officeRepo.GetByID(ctx, worker.OfficeID)
	if errors.Is(err, repository.ErrNotFound) {
		return u.reject(in.WorkerID, StatusRejectedInput, ReasonOfficeNotFound, &Verdict{Similarity: match.Similarity}), nil
	}
	if err != nil {
		return nil, fmt.Errorf("find office %d: %w", worker.OfficeID, err)
	}

	position := geo.Point{Latitude: *in.Latitude, Longitude: *in.Longitude}
	distance := geo.DistanceMeters(position, office.Center())
	if distance > office.RadiusMeters {
		return u.reject(in.WorkerID, StatusRejectedGeofence, ReasonOutsideGeofence, &Verdict{
			Similarity:     match.Similarity,
			DistanceMeters: distance,
			AllowedRadius:  office.RadiusMeters,
		}), nil
	}

	// 4. Commit
	imageRef := in.ImageRef
	if in.ImageBase64 != "" && u.images != nil {
		imageRef, err = u.images.SaveBase64(ctx, "attendance_photos", in.ImageBase64)
		if err != nil {
			return nil, fmt.Errorf("store attendance image: %w", err)
		}
	}

	event := &model.AttendanceEvent{
		WorkerID:       worker.ID,
		Timestamp:      u.now().UTC(),
		Latitude:       position.Latitude,
		Longitude:      position.Longitude,
		Action:         action,
		ImageRef:       imageRef,
		Similarity:     match.Similarity,
		DistanceMeters: distance,
	}
	if err := u.attendanceRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("record attendance: %w", err)
	}

	if u.metrics != nil {
		u.metrics.RecordAttendance(string(StatusAccepted))
	}
	u.log.Info("attendance accepted",
		"worker_id", worker.ExternalID,
		"action", action,
		"similarity", match.Similarity,
		"distance_meters", distance)

	return &Verdict{
		Status:         StatusAccepted,
		Similarity:     match.Similarity,
		Threshold:      biometric.Threshold,
		DistanceMeters: distance,
		AllowedRadius:  office.RadiusMeters,
		Event:          event,
	}, nil
}

func (u *AttendanceUsecase) reject(workerID string, status AttendanceStatus, reason string, v *Verdict) *Verdict {
	v.Status = status
	v.Reason = reason
	if u.metrics != nil {
		u.metrics.RecordAttendance(string(status))
	}
	u.log.Info("attendance rejected",
		"worker_id", workerID,
		"status", status,
		"reason", reason,
		"similarity", v.Similarity,
		"distance_meters", v.DistanceMeters)
	return v
}

// History returns a worker's attendance log, newest first.
func (u *AttendanceUsecase) History(ctx context.Context, externalID string, limit int) (*model.Worker, []model.AttendanceEvent, error) {
	worker, err := u.workerRepo.FindByExternalID(ctx, externalID)
	if err != nil {
		return nil, nil, err
	}
	events, err := u.attendanceRepo.GetHistory(ctx, worker.ID, limit)
	if err != nil {
		return nil, nil, err
	}
	return worker, events, nil
}

// LogRange resolves the admin log filter (today, yesterday, last7days) to a
// time window relative to now and returns the events in it.
func (u *AttendanceUsecase) LogRange(ctx context.Context, filter string) ([]model.AttendanceEvent, error) {
	start, end, err := logWindow(filter, u.now())
	if err != nil {
		return nil, err
	}
	return u.attendanceRepo.GetByRange(ctx, start, end)
}

func logWindow(filter string, now time.Time) (time.Time, time.Time, error) {
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	// Half-open window; nudge the end past now so an event stamped this
	// instant is included.
	end := now.Add(time.Second)

	// Timestamps are stored in UTC.
	switch filter {
	case "", "today":
		return todayStart.UTC(), end.UTC(), nil
	case "yesterday":
		return todayStart.AddDate(0, 0, -1).UTC(), todayStart.UTC(), nil
	case "last7days":
		return todayStart.AddDate(0, 0, -7).UTC(), end.UTC(), nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("%w: unknown date filter %q", ErrInvalidInput, filter)
	}
}
