package services

import (
	"context"
	"fmt"

	"github.com/spywithcode/ReStro/entity"
	"github.com/spywithcode/ReStro/notify"
	"github.com/spywithcode/ReStro/pkg/apperr"
)

// UpdateStatus ขยับสถานะไปข้างหน้าทีละขั้นเท่านั้น
// Placed → Preparing → Ready → Completed; ห้ามข้าม ห้ามถอย
// Ready → Completed รับ paymentMethod (ยืนยันการจ่าย) เป็น optional
func (s *OrderService) UpdateStatus(ctx context.Context, orderID, newStatus, paymentMethod string) (*entity.Order, error) {
	want := entity.StatusOrder(newStatus)
	if want < 0 {
		return nil, apperr.Validation("Invalid input data", []apperr.FieldViolation{
			{Field: "status", Message: "Status must be one of: Placed Preparing Ready Completed"},
		})
	}
	if paymentMethod != "" &&
		paymentMethod != entity.PaymentCash && paymentMethod != entity.PaymentOnline {
		return nil, apperr.Validation("Invalid input data", []apperr.FieldViolation{
			{Field: "paymentMethod", Message: "Payment method must be one of: Cash Online"},
		})
	}

	o, err := s.Repo.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, apperr.NotFound("Order not found")
	}

	cur := entity.StatusOrder(o.Status)
	if want != cur+1 {
		return nil, apperr.Conflict(fmt.Sprintf("illegal transition %s → %s", o.Status, newStatus))
	}

	updates := map[string]any{}
	if newStatus == entity.StatusCompleted && paymentMethod != "" {
		updates["payment_method"] = paymentMethod
	}

	// CAS: แพ้ race = Conflict ไม่ใช่ last-writer-wins
	affected, err := s.Repo.UpdateStatusGuard(ctx, orderID, o.Status, newStatus, updates)
	if err != nil {
		return nil, apperr.Internal("failed to update order status", err)
	}
	if affected == 0 {
		return nil, apperr.Conflict("order status changed concurrently, re-fetch and retry")
	}

	s.Notifier.Publish(o.RestaurantID, notify.CollectionOrders)

	updated, err := s.Repo.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, apperr.Internal("failed to reload order", err)
	}
	return updated, nil
}
