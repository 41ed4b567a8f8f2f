package entity

import (
	"time"

	"gorm.io/gorm"
)

// Order lifecycle: Placed → Preparing → Ready → Completed, forward-only.
const (
	StatusPlaced    = "Placed"
	StatusPreparing = "Preparing"
	StatusReady     = "Ready"
	StatusCompleted = "Completed"
)

// StatusOrder gives each status its position in the lifecycle; -1 = unknown.
func StatusOrder(s string) int {
	switch s {
	case StatusPlaced:
		return 0
	case StatusPreparing:
		return 1
	case StatusReady:
		return 2
	case StatusCompleted:
		return 3
	}
	return -1
}

const (
	PaymentCash   = "Cash"
	PaymentOnline = "Online"
)

type Order struct {
	gorm.Model
	OrderID      string  `gorm:"uniqueIndex;not null" json:"id"` // ORD-<prefix>-<ms>
	RestaurantID string  `gorm:"index;not null" json:"restaurantId"`
	TableNumber  int     `json:"tableNumber"`
	Status       string  `gorm:"index;default:Placed" json:"status"`
	Total        float64 `json:"total"`

	PaymentMethod string `json:"paymentMethod,omitempty"`

	// snapshot ของลูกค้าตอนสั่ง
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	CustomerPhone string `json:"customerPhone"`

	PlacedAt time.Time `gorm:"index" json:"timestamp"`

	Items []OrderItem `gorm:"foreignKey:OrderRef" json:"items"`
}
