package repository

import (
	"context"
	"time"

	"presence-backend/internal/model"

	"gorm.io/gorm"
)

type AttendanceRepository interface {
	Create(ctx context.Context, event *model.AttendanceEvent) error
	GetLatest(ctx context.Context, workerID uint) (*model.AttendanceEvent, error)
	GetHistory(ctx context.Context, workerID uint, limit int) ([]model.AttendanceEvent, error)
	GetByRange(ctx context.Context, start, end time.Time) ([]model.AttendanceEvent, error)
	CountByActionSince(ctx context.Context, since time.Time) (map[model.AttendanceAction]int64, error)
}

type attendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db}
}

func (r *attendanceRepository) Create(ctx context.Context, event *model.AttendanceEvent) error {
	return r.db.WithContext(ctx).Omit("Worker").Create(event).Error
}

// GetLatest returns nil without error when the worker has no attendance yet.
func (r *attendanceRepository) GetLatest(ctx context.Context, workerID uint) (*model.AttendanceEvent, error) {
	var events []model.AttendanceEvent
	err := r.db.WithContext(ctx).
		Where("worker_id = ?", workerID).
		Order("timestamp desc, id desc").
		Limit(1).
		Find(&events).Error
	if err != nil || len(events) == 0 {
		return nil, err
	}
	return &events[0], nil
}

func (r *attendanceRepository) GetHistory(ctx context.Context, workerID uint, limit int) ([]model.AttendanceEvent, error) {
	var history []model.AttendanceEvent
	query := r.db.WithContext(ctx).Where("worker_id = ?", workerID).Order("timestamp desc, id desc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&history).Error
	return history, err
}

// GetByRange returns events with start <= timestamp < end, newest first.
func (r *attendanceRepository) GetByRange(ctx context.Context, start, end time.Time) ([]model.AttendanceEvent, error) {
	var list []model.AttendanceEvent
	err := r.db.WithContext(ctx).
		Preload("Worker.Office").
		Where("timestamp >= ? AND timestamp < ?", start, end).
		Order("timestamp desc, id desc").
		Find(&list).Error
	return list, err
}

func (r *attendanceRepository) CountByActionSince(ctx context.Context, since time.Time) (map[model.AttendanceAction]int64, error) {
	var rows []struct {
		Action model.AttendanceAction
		Count  int64
	}
	err := r.db.WithContext(ctx).Model(&model.AttendanceEvent{}).
		Where("timestamp >= ?", since).
		Group("action").Select("action, count(*) as count").Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := map[model.AttendanceAction]int64{model.ActionLogin: 0, model.ActionLogout: 0}
	for _, row := range rows {
		counts[row.Action] = row.Count
	}
	return counts, nil
}
