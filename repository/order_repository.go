package repository

import (
	"context"

	"github.com/spywithcode/ReStro/entity"

	"gorm.io/gorm"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// OrderFilter enumerates the legal filter fields for order reads.
// Empty RestaurantID = deliberate all-tenants admin read.
type OrderFilter struct {
	RestaurantID string
	Status       string
	TableNumber  int // 0 = unset
}

func (r *OrderRepository) List(ctx context.Context, f OrderFilter) ([]entity.Order, error) {
	q := r.DB.WithContext(ctx).Model(&entity.Order{}).Preload("Items")
	if f.RestaurantID != "" {
		q = q.Where("restaurant_id = ?", f.RestaurantID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.TableNumber > 0 {
		q = q.Where("table_number = ?", f.TableNumber)
	}
	var orders []entity.Order
	err := q.Order("placed_at DESC").Find(&orders).Error
	return orders, err
}

func (r *OrderRepository) FindByOrderID(ctx context.Context, orderID string) (*entity.Order, error) {
	var o entity.Order
	err := r.DB.WithContext(ctx).Preload("Items").
		Where("order_id = ?", orderID).First(&o).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// POST /orders → order + items ลงใน tx เดียว (ทั้งก้อนหรือไม่ลงเลย)
func (r *OrderRepository) CreateOrder(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

// UpdateStatusGuard is a compare-and-swap: the row only moves when it is
// still in fromStatus, so exactly one of two racing updates wins.
func (r *OrderRepository) UpdateStatusGuard(ctx context.Context, orderID, fromStatus, toStatus string, updates map[string]any) (int64, error) {
	if updates == nil {
		updates = map[string]any{}
	}
	updates["status"] = toStatus
	res := r.DB.WithContext(ctx).Model(&entity.Order{}).
		Where("order_id = ? AND status = ?", orderID, fromStatus).
		Updates(updates)
	return res.RowsAffected, res.Error
}

func (r *OrderRepository) Delete(ctx context.Context, orderID string) (int64, error) {
	res := r.DB.WithContext(ctx).Where("order_id = ?", orderID).Delete(&entity.Order{})
	return res.RowsAffected, res.Error
}

// ---------------- Validations / Helpers ----------------

func (r *OrderRepository) RestaurantExists(ctx context.Context, restID string) (bool, error) {
	var cnt int64
	if err := r.DB.WithContext(ctx).Model(&entity.Restaurant{}).
		Where("restaurant_id = ?", restID).Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}
