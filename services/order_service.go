package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spywithcode/ReStro/entity"
	"github.com/spywithcode/ReStro/notify"
	"github.com/spywithcode/ReStro/pkg/apperr"
	"github.com/spywithcode/ReStro/repository"

	"gorm.io/gorm"
)

type OrderService struct {
	DB       *gorm.DB
	Repo     *repository.OrderRepository
	Notifier notify.Notifier
}

func NewOrderService(db *gorm.DB, repo *repository.OrderRepository, notifier notify.Notifier) *OrderService {
	return &OrderService{DB: db, Repo: repo, Notifier: notifier}
}

// ----- DTOs from Controller -----
type OrderItemIn struct {
	MenuItemID string  `json:"menuItemId"`
	Quantity   int     `json:"quantity"`
	Name       string  `json:"name"`
	UnitPrice  float64 `json:"price"`
}
type CustomerIn struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}
type CreateOrderReq struct {
	RestaurantID  string        `json:"restaurantId"`
	TableNumber   int           `json:"tableNumber"`
	Items         []OrderItemIn `json:"items"`
	Customer      CustomerIn    `json:"customer"`
	PaymentMethod string        `json:"paymentMethod"`
}

// validateCreate เก็บทุก field ที่พลาด ไม่หยุดที่ตัวแรก
func validateCreate(req *CreateOrderReq) []apperr.FieldViolation {
	var v []apperr.FieldViolation
	add := func(field, msg string) {
		v = append(v, apperr.FieldViolation{Field: field, Message: msg})
	}

	if strings.TrimSpace(req.RestaurantID) == "" {
		add("restaurantId", "Restaurant ID is required")
	}
	if req.TableNumber < 1 {
		add("tableNumber", "Table number must be positive")
	}
	if len(req.Items) == 0 {
		add("items", "Order must have at least one item")
	}
	for i, it := range req.Items {
		if strings.TrimSpace(it.MenuItemID) == "" {
			add(fmt.Sprintf("items[%d].menuItemId", i), "Menu item ID is required")
		}
		if it.Quantity < 1 {
			add(fmt.Sprintf("items[%d].quantity", i), "Quantity must be at least 1")
		}
		if strings.TrimSpace(it.Name) == "" {
			add(fmt.Sprintf("items[%d].name", i), "Item name is required")
		}
		if it.UnitPrice < 0 {
			add(fmt.Sprintf("items[%d].price", i), "Price must be positive")
		}
	}
	if strings.TrimSpace(req.Customer.Name) == "" {
		add("customer.name", "Customer name is required")
	}
	if strings.TrimSpace(req.Customer.Email) == "" {
		add("customer.email", "Customer email is required")
	}
	if strings.TrimSpace(req.Customer.Phone) == "" {
		add("customer.phone", "Customer phone is required")
	}
	if req.PaymentMethod != "" &&
		req.PaymentMethod != entity.PaymentCash && req.PaymentMethod != entity.PaymentOnline {
		add("paymentMethod", "Payment method must be one of: Cash Online")
	}
	return v
}

// NewOrderID: ORD-<4 ตัวแรกของ restaurantId ตัวใหญ่>-<unix ms>
// collision ยอมรับได้ ไม่มี retry loop
func NewOrderID(restaurantID string, now time.Time) string {
	prefix := restaurantID
	if len(prefix) > 4 {
		prefix = prefix[:4]
	}
	return fmt.Sprintf("ORD-%s-%d", strings.ToUpper(prefix), now.UnixMilli())
}

// ----- Create -----
// Total คิดฝั่ง server เสมอ ไม่รับจาก client
func (s *OrderService) Create(ctx context.Context, req *CreateOrderReq) (*entity.Order, error) {
	if v := validateCreate(req); len(v) > 0 {
		return nil, apperr.Validation("Invalid input data", v)
	}

	ok, err := s.Repo.RestaurantExists(ctx, req.RestaurantID)
	if err != nil {
		return nil, apperr.Internal("failed to check restaurant", err)
	}
	if !ok {
		return nil, apperr.NotFound("Restaurant not found")
	}

	now := time.Now()
	var total float64
	items := make([]entity.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		line := it.UnitPrice * float64(it.Quantity)
		total += line
		items = append(items, entity.OrderItem{
			MenuItemID: it.MenuItemID,
			Name:       it.Name,
			UnitPrice:  it.UnitPrice,
			Quantity:   it.Quantity,
			LineTotal:  line,
		})
	}

	order := entity.Order{
		OrderID:       NewOrderID(req.RestaurantID, now),
		RestaurantID:  req.RestaurantID,
		TableNumber:   req.TableNumber,
		Status:        entity.StatusPlaced,
		Total:         total,
		PaymentMethod: req.PaymentMethod,
		CustomerName:  strings.TrimSpace(req.Customer.Name),
		CustomerEmail: strings.ToLower(strings.TrimSpace(req.Customer.Email)),
		CustomerPhone: strings.TrimSpace(req.Customer.Phone),
		PlacedAt:      now,
		Items:         items,
	}

	// order + items ทั้งก้อนหรือไม่ลงเลย
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.Repo.CreateOrder(tx, &order)
	})
	if err != nil {
		return nil, apperr.Internal("failed to create order", err)
	}

	s.Notifier.Publish(order.RestaurantID, notify.CollectionOrders)
	return &order, nil
}

// ----- List & Detail -----
func (s *OrderService) List(ctx context.Context, f repository.OrderFilter) ([]entity.Order, error) {
	orders, err := s.Repo.List(ctx, f)
	if err != nil {
		return nil, apperr.Internal("failed to list orders", err)
	}
	return orders, nil
}

func (s *OrderService) Get(ctx context.Context, orderID string) (*entity.Order, error) {
	o, err := s.Repo.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, apperr.NotFound("Order not found")
	}
	return o, nil
}

func (s *OrderService) Delete(ctx context.Context, orderID string) error {
	o, err := s.Repo.FindByOrderID(ctx, orderID)
	if err != nil {
		return apperr.NotFound("Order not found")
	}
	affected, err := s.Repo.Delete(ctx, orderID)
	if err != nil {
		return apperr.Internal("failed to delete order", err)
	}
	if affected == 0 {
		return apperr.NotFound("Order not found")
	}
	s.Notifier.Publish(o.RestaurantID, notify.CollectionOrders)
	return nil
}
