package repository

import (
	"context"
	"fmt"

	"presence-backend/internal/model"

	"gorm.io/gorm"
)

type WorkerRepository interface {
	Create(ctx context.Context, worker *model.Worker) error
	Update(ctx context.Context, worker *model.Worker) error
	FindByExternalID(ctx context.Context, externalID string) (*model.Worker, error)
	FindByID(ctx context.Context, id uint) (*model.Worker, error)
	GetAll(ctx context.Context, search string) ([]model.Worker, error)
	GetAllByOfficeID(ctx context.Context, officeID uint) ([]model.Worker, error)
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

type workerRepository struct {
	db *gorm.DB
}

func NewWorkerRepository(db *gorm.DB) WorkerRepository {
	return &workerRepository{db}
}

func (r *workerRepository) Create(ctx context.Context, worker *model.Worker) error {
	return r.db.WithContext(ctx).Create(worker).Error
}

func (r *workerRepository) Update(ctx context.Context, worker *model.Worker) error {
	return r.db.WithContext(ctx).Omit("Office").Save(worker).Error
}

func (r *workerRepository) FindByExternalID(ctx context.Context, externalID string) (*model.Worker, error) {
	var worker model.Worker
	if err := r.db.WithContext(ctx).Where("external_id = ?", externalID).First(&worker).Error; err != nil {
		return nil, translate(err)
	}
	return &worker, nil
}

func (r *workerRepository) FindByID(ctx context.Context, id uint) (*model.Worker, error) {
	var worker model.Worker
	if err := r.db.WithContext(ctx).Preload("Office").First(&worker, id).Error; err != nil {
		return nil, translate(err)
	}
	return &worker, nil
}

func (r *workerRepository) GetAll(ctx context.Context, search string) ([]model.Worker, error) {
	var workers []model.Worker
	query := r.db.WithContext(ctx).Preload("Office")

	if search != "" {
		searchPattern := "%" + search + "%"
		query = query.Where("name LIKE ? OR external_id LIKE ?", searchPattern, searchPattern)
	}

	err := query.Order("id asc").Find(&workers).Error
	return workers, err
}

func (r *workerRepository) GetAllByOfficeID(ctx context.Context, officeID uint) ([]model.Worker, error) {
	var workers []model.Worker
	err := r.db.WithContext(ctx).Where("office_id = ?", officeID).Order("id asc").Find(&workers).Error
	return workers, err
}

// Delete removes the worker and everything it owns. The child rows are
// deleted explicitly so drivers without foreign key enforcement behave the
// same as MySQL.
func (r *workerRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owned := []interface{}{
			&model.AttendanceEvent{},
			&model.LocationRecord{},
			&model.LocationPing{},
			&model.LocationAlert{},
		}
		for _, m := range owned {
			if err := tx.Where("worker_id = ?", id).Delete(m).Error; err != nil {
				return fmt.Errorf("delete %T for worker %d: %w", m, id, err)
			}
		}

		res := tx.Unscoped().Delete(&model.Worker{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (r *workerRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Worker{}).Count(&count).Error
	return count, err
}
