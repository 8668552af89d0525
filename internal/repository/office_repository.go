package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"presence-backend/internal/model"

	"github.com/patrickmn/go-cache"
	"gorm.io/gorm"
)

type OfficeRepository interface {
	Create(ctx context.Context, office *model.Office) error
	GetByID(ctx context.Context, id uint) (*model.Office, error)
	GetAll(ctx context.Context) ([]model.Office, error)
	Update(ctx context.Context, office *model.Office) error
}

type officeRepository struct {
	db *gorm.DB
}

func NewOfficeRepository(db *gorm.DB) OfficeRepository {
	return &officeRepository{db}
}

func (r *officeRepository) Create(ctx context.Context, office *model.Office) error {
	return r.db.WithContext(ctx).Create(office).Error
}

func (r *officeRepository) GetByID(ctx context.Context, id uint) (*model.Office, error) {
	var office model.Office
	if err := r.db.WithContext(ctx).First(&office, id).Error; err != nil {
		return nil, translate(err)
	}
	return &office, nil
}

func (r *officeRepository) GetAll(ctx context.Context) ([]model.Office, error) {
	var offices []model.Office
	err := r.db.WithContext(ctx).Order("id asc").Find(&offices).Error
	return offices, err
}

func (r *officeRepository) Update(ctx context.Context, office *model.Office) error {
	return r.db.WithContext(ctx).Save(office).Error
}

// cachedOfficeRepository keeps offices in memory; they change only on admin
// edits, which go through this repository and evict the entry.
type cachedOfficeRepository struct {
	next  OfficeRepository
	cache *cache.Cache
}

func NewCachedOfficeRepository(next OfficeRepository, ttl time.Duration) OfficeRepository {
	return &cachedOfficeRepository{
		next:  next,
		cache: cache.New(ttl, ttl*2),
	}
}

func officeCacheKey(id uint) string {
	return "office:" + strconv.FormatUint(uint64(id), 10)
}

func (r *cachedOfficeRepository) Create(ctx context.Context, office *model.Office) error {
	return r.next.Create(ctx, office)
}

func (r *cachedOfficeRepository) GetByID(ctx context.Context, id uint) (*model.Office, error) {
	if cached, found := r.cache.Get(officeCacheKey(id)); found {
		office := cached.(model.Office)
		return &office, nil
	}

	office, err := r.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.cache.Set(officeCacheKey(id), *office, cache.DefaultExpiration)
	return office, nil
}

func (r *cachedOfficeRepository) GetAll(ctx context.Context) ([]model.Office, error) {
	return r.next.GetAll(ctx)
}

func (r *cachedOfficeRepository) Update(ctx context.Context, office *model.Office) error {
	if err := r.next.Update(ctx, office); err != nil {
		return fmt.Errorf("update office %d: %w", office.ID, err)
	}
	r.cache.Delete(officeCacheKey(office.ID))
	return nil
}
