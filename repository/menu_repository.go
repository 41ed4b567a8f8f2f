package repository

import (
	"context"

	"github.com/spywithcode/ReStro/entity"

	"gorm.io/gorm"
)

type MenuRepository struct {
	DB *gorm.DB
}

func NewMenuRepository(db *gorm.DB) *MenuRepository {
	return &MenuRepository{DB: db}
}

// MenuFilter enumerates the legal filter fields for menu reads.
// Empty RestaurantID = deliberate all-tenants admin read.
type MenuFilter struct {
	RestaurantID string
	Category     string
	IsAvailable  *bool
}

func (r *MenuRepository) List(ctx context.Context, f MenuFilter) ([]entity.MenuItem, error) {
	q := r.DB.WithContext(ctx).Model(&entity.MenuItem{})
	if f.RestaurantID != "" {
		q = q.Where("restaurant_id = ?", f.RestaurantID)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.IsAvailable != nil {
		q = q.Where("is_available = ?", *f.IsAvailable)
	}
	var items []entity.MenuItem
	err := q.Order("category, name").Find(&items).Error
	return items, err
}

func (r *MenuRepository) FindByItemID(ctx context.Context, restID, itemID string) (*entity.MenuItem, error) {
	var item entity.MenuItem
	err := r.DB.WithContext(ctx).
		Where("restaurant_id = ? AND item_id = ?", restID, itemID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// uniqueness scoped {restaurantId, itemId} — ไม่เช็ค global
func (r *MenuRepository) ItemExists(ctx context.Context, restID, itemID string) (bool, error) {
	var cnt int64
	err := r.DB.WithContext(ctx).Model(&entity.MenuItem{}).
		Where("restaurant_id = ? AND item_id = ?", restID, itemID).
		Count(&cnt).Error
	return cnt > 0, err
}

func (r *MenuRepository) Create(ctx context.Context, item *entity.MenuItem) error {
	return r.DB.WithContext(ctx).Create(item).Error
}

func (r *MenuRepository) Update(ctx context.Context, item *entity.MenuItem) error {
	return r.DB.WithContext(ctx).Save(item).Error
}

// Unscoped: soft-deleted row จะไปค้างใน unique index {restaurant_id, item_id}
// ทำให้สร้าง id เดิมซ้ำไม่ได้
func (r *MenuRepository) Delete(ctx context.Context, restID, itemID string) (int64, error) {
	res := r.DB.WithContext(ctx).Unscoped().
		Where("restaurant_id = ? AND item_id = ?", restID, itemID).
		Delete(&entity.MenuItem{})
	return res.RowsAffected, res.Error
}
