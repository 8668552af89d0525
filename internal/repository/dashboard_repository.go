package repository

import (
	"context"
	"time"

	"presence-backend/internal/model"

	"gorm.io/gorm"
)

type DashboardRepository interface {
	GetDashboardStats(ctx context.Context, dayStart time.Time) (map[string]interface{}, error)
}

type dashboardRepository struct {
	db         *gorm.DB
	attendance AttendanceRepository
}

func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db: db, attendance: NewAttendanceRepository(db)}
}

func (r *dashboardRepository) GetDashboardStats(ctx context.Context, dayStart time.Time) (map[string]interface{}, error) {
	db := r.db.WithContext(ctx)
	stats := make(map[string]interface{})

	// 1. Total workers and offices
	var totalWorkers, totalOffices int64
	if err := db.Model(&model.Worker{}).Count(&totalWorkers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Office{}).Count(&totalOffices).Error; err != nil {
		return nil, err
	}
	stats["total_workers"] = totalWorkers
	stats["total_offices"] = totalOffices

	// 2. Attendance today grouped by action
	byAction, err := r.attendance.CountByActionSince(ctx, dayStart)
	if err != nil {
		return nil, err
	}
	dailyMap := make(map[string]int64, len(byAction))
	for action, n := range byAction {
		dailyMap[string(action)] = n
	}
	stats["attendance_today"] = dailyMap

	// 3. Alerts today and workers currently sharing
	var alertsToday, sharing int64
	if err := db.Model(&model.LocationAlert{}).Where("timestamp >= ?", dayStart).Count(&alertsToday).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.LocationRecord{}).Where("actively_sharing = ?", true).Count(&sharing).Error; err != nil {
		return nil, err
	}
	stats["alerts_today"] = alertsToday
	stats["sharing_now"] = sharing

	return stats, nil
}
