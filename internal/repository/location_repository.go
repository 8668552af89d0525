package repository

import (
	"context"
	"time"

	"presence-backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LocationRepository interface {
	// SaveActive upserts the worker's single active record, appends the ping
	// to history and stores alert (when non-nil), all in one transaction.
	SaveActive(ctx context.Context, record *model.LocationRecord, ping *model.LocationPing, alert *model.LocationAlert) error
	// Deactivate clears the sharing flag on the worker's active record,
	// keeping the row. It reports whether a record was active.
	Deactivate(ctx context.Context, workerID uint) (bool, error)
	GetLatest(ctx context.Context, workerID uint) (*model.LocationRecord, error)
	GetActive(ctx context.Context, workerID uint) (*model.LocationRecord, error)
	CountActive(ctx context.Context, workerID uint) (int64, error)
	ListActiveBefore(ctx context.Context, cutoff time.Time) ([]model.LocationRecord, error)
	GetHistory(ctx context.Context, workerID uint, start, end time.Time) ([]model.LocationPing, error)
}

type locationRepository struct {
	db *gorm.DB
}

func NewLocationRepository(db *gorm.DB) LocationRepository {
	return &locationRepository{db}
}

var activeUpsertColumns = []string{
	"latitude",
	"longitude",
	"distance_from_office",
	"within_geofence",
	"actively_sharing",
	"timestamp",
	"updated_at",
}

func (r *locationRepository) SaveActive(ctx context.Context, record *model.LocationRecord, ping *model.LocationPing, alert *model.LocationAlert) error {
	workerID := record.WorkerID
	record.ActiveKey = &workerID
	record.ActivelySharing = true

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The unique index on active_key turns concurrent first pings for the
		// same worker into a single row.
		err := tx.Omit("Worker").Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "active_key"}},
			DoUpdates: clause.AssignmentColumns(activeUpsertColumns),
		}).Create(record).Error
		if err != nil {
			return err
		}

		if err := tx.Omit("Worker").Create(ping).Error; err != nil {
			return err
		}

		if alert != nil {
			if err := tx.Omit("Worker").Create(alert).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *locationRepository) Deactivate(ctx context.Context, workerID uint) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.LocationRecord{}).
		Where("active_key = ?", workerID).
		Updates(map[string]interface{}{
			"actively_sharing": false,
			"active_key":       nil,
			"updated_at":       time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// GetLatest returns the most recent projection row for the worker, active or
// not, or nil when the worker never shared a location.
func (r *locationRepository) GetLatest(ctx context.Context, workerID uint) (*model.LocationRecord, error) {
	var records []model.LocationRecord
	err := r.db.WithContext(ctx).
		Where("worker_id = ?", workerID).
		Order("timestamp desc, id desc").
		Limit(1).
		Find(&records).Error
	if err != nil || len(records) == 0 {
		return nil, err
	}
	return &records[0], nil
}

func (r *locationRepository) GetActive(ctx context.Context, workerID uint) (*model.LocationRecord, error) {
	var record model.LocationRecord
	if err := r.db.WithContext(ctx).Where("active_key = ?", workerID).First(&record).Error; err != nil {
		return nil, translate(err)
	}
	return &record, nil
}

func (r *locationRepository) CountActive(ctx context.Context, workerID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.LocationRecord{}).
		Where("worker_id = ? AND actively_sharing = ?", workerID, true).
		Count(&count).Error
	return count, err
}

func (r *locationRepository) ListActiveBefore(ctx context.Context, cutoff time.Time) ([]model.LocationRecord, error) {
	var records []model.LocationRecord
	err := r.db.WithContext(ctx).
		Where("actively_sharing = ? AND timestamp < ?", true, cutoff).
		Order("timestamp asc").
		Find(&records).Error
	return records, err
}

func (r *locationRepository) GetHistory(ctx context.Context, workerID uint, start, end time.Time) ([]model.LocationPing, error) {
	var pings []model.LocationPing
	err := r.db.WithContext(ctx).
		Where("worker_id = ? AND timestamp >= ? AND timestamp < ?", workerID, start, end).
		Order("timestamp asc").
		Find(&pings).Error
	return pings, err
}
