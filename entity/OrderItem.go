package entity

import (
	"gorm.io/gorm"
)

type OrderItem struct {
	gorm.Model
	OrderRef uint `gorm:"index" json:"-"` // orders.id

	MenuItemID string  `json:"menuItemId"`
	Name       string  `json:"name"`      // snapshot ตอนสั่ง
	UnitPrice  float64 `json:"price"`     // snapshot ตอนสั่ง
	Quantity   int     `json:"quantity"`
	LineTotal  float64 `json:"lineTotal"`
}
