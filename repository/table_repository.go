package repository

import (
	"context"

	"github.com/spywithcode/ReStro/entity"

	"gorm.io/gorm"
)

type TableRepository struct {
	DB *gorm.DB
}

func NewTableRepository(db *gorm.DB) *TableRepository {
	return &TableRepository{DB: db}
}

// TableFilter enumerates the legal filter fields for table reads.
type TableFilter struct {
	RestaurantID string
	Status       string
}

func (r *TableRepository) List(ctx context.Context, f TableFilter) ([]entity.Table, error) {
	q := r.DB.WithContext(ctx).Model(&entity.Table{})
	if f.RestaurantID != "" {
		q = q.Where("restaurant_id = ?", f.RestaurantID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	var tables []entity.Table
	err := q.Order("table_no").Find(&tables).Error
	return tables, err
}

func (r *TableRepository) Find(ctx context.Context, restID string, tableNo int) (*entity.Table, error) {
	var t entity.Table
	err := r.DB.WithContext(ctx).
		Where("restaurant_id = ? AND table_no = ?", restID, tableNo).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// {restaurantId, tableNo} ต้อง unique
func (r *TableRepository) Exists(ctx context.Context, restID string, tableNo int) (bool, error) {
	var cnt int64
	err := r.DB.WithContext(ctx).Model(&entity.Table{}).
		Where("restaurant_id = ? AND table_no = ?", restID, tableNo).
		Count(&cnt).Error
	return cnt > 0, err
}

func (r *TableRepository) Create(ctx context.Context, t *entity.Table) error {
	return r.DB.WithContext(ctx).Create(t).Error
}

func (r *TableRepository) UpdateStatus(ctx context.Context, restID string, tableNo int, status string) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&entity.Table{}).
		Where("restaurant_id = ? AND table_no = ?", restID, tableNo).
		Update("status", status)
	return res.RowsAffected, res.Error
}

// Unscoped: soft-deleted row จะไปค้างใน unique index {restaurant_id, table_no}
// ทำให้สร้างโต๊ะเบอร์เดิมซ้ำไม่ได้
func (r *TableRepository) Delete(ctx context.Context, restID string, tableNo int) (int64, error) {
	res := r.DB.WithContext(ctx).Unscoped().
		Where("restaurant_id = ? AND table_no = ?", restID, tableNo).
		Delete(&entity.Table{})
	return res.RowsAffected, res.Error
}
