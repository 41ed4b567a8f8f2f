package repository

import (
	"context"

	"github.com/spywithcode/ReStro/entity"

	"gorm.io/gorm"
)

type RestaurantRepository struct {
	DB *gorm.DB
}

func NewRestaurantRepository(db *gorm.DB) *RestaurantRepository {
	return &RestaurantRepository{DB: db}
}

// RestaurantFilter enumerates the legal filter fields for restaurant reads.
type RestaurantFilter struct {
	IsActive *bool
}

func (r *RestaurantRepository) List(ctx context.Context, f RestaurantFilter) ([]entity.Restaurant, error) {
	q := r.DB.WithContext(ctx).Model(&entity.Restaurant{})
	if f.IsActive != nil {
		q = q.Where("is_active = ?", *f.IsActive)
	}
	var out []entity.Restaurant
	err := q.Order("restaurant_id").Find(&out).Error
	return out, err
}

func (r *RestaurantRepository) FindByRestaurantID(ctx context.Context, restID string) (*entity.Restaurant, error) {
	var rest entity.Restaurant
	if err := r.DB.WithContext(ctx).Where("restaurant_id = ?", restID).First(&rest).Error; err != nil {
		return nil, err
	}
	return &rest, nil
}

func (r *RestaurantRepository) Exists(ctx context.Context, restID string) (bool, error) {
	var cnt int64
	err := r.DB.WithContext(ctx).Model(&entity.Restaurant{}).
		Where("restaurant_id = ?", restID).Count(&cnt).Error
	return cnt > 0, err
}

func (r *RestaurantRepository) Create(ctx context.Context, rest *entity.Restaurant) error {
	return r.DB.WithContext(ctx).Create(rest).Error
}

func (r *RestaurantRepository) Update(ctx context.Context, rest *entity.Restaurant) error {
	return r.DB.WithContext(ctx).Save(rest).Error
}

// soft flip เท่านั้น ไม่ลบ row
func (r *RestaurantRepository) Deactivate(ctx context.Context, restID string) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&entity.Restaurant{}).
		Where("restaurant_id = ?", restID).Update("is_active", false)
	return res.RowsAffected, res.Error
}

// hard delete — admin escape hatch, not part of steady-state flow
// Unscoped ไม่งั้น row ค้างอยู่และ restaurant_id unique index กันสร้าง id เดิมใหม่
func (r *RestaurantRepository) Delete(ctx context.Context, restID string) (int64, error) {
	res := r.DB.WithContext(ctx).Unscoped().Where("restaurant_id = ?", restID).Delete(&entity.Restaurant{})
	return res.RowsAffected, res.Error
}
