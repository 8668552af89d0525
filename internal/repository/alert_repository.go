package repository

import (
	"context"
	"time"

	"presence-backend/internal/model"

	"gorm.io/gorm"
)

type AlertRepository interface {
	GetRecent(ctx context.Context, limit int) ([]model.LocationAlert, error)
	GetByWorker(ctx context.Context, workerID uint) ([]model.LocationAlert, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
}

type alertRepository struct {
	db *gorm.DB
}

func NewAlertRepository(db *gorm.DB) AlertRepository {
	return &alertRepository{db}
}

func (r *alertRepository) GetRecent(ctx context.Context, limit int) ([]model.LocationAlert, error) {
	var alerts []model.LocationAlert
	query := r.db.WithContext(ctx).Preload("Worker").Order("timestamp desc, id desc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&alerts).Error
	return alerts, err
}

func (r *alertRepository) GetByWorker(ctx context.Context, workerID uint) ([]model.LocationAlert, error) {
	var alerts []model.LocationAlert
	err := r.db.WithContext(ctx).Where("worker_id = ?", workerID).Order("timestamp desc, id desc").Find(&alerts).Error
	return alerts, err
}

func (r *alertRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.LocationAlert{}).Where("timestamp >= ?", since).Count(&count).Error
	return count, err
}
