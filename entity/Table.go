package entity

import (
	"gorm.io/gorm"
)

const (
	TableFree             = "Free"
	TableOccupied         = "Occupied"
	TableRequiresCleaning = "Requires-Cleaning"
)

func ValidTableStatus(s string) bool {
	switch s {
	case TableFree, TableOccupied, TableRequiresCleaning:
		return true
	}
	return false
}

type Table struct {
	gorm.Model
	// table number unique ในร้าน ไม่ใช่ global
	TableNo      int    `gorm:"uniqueIndex:idx_table_tenant_no;not null" json:"id"`
	RestaurantID string `gorm:"uniqueIndex:idx_table_tenant_no;index;not null" json:"restaurantId"`
	Capacity     int    `json:"capacity"`
	Status       string `gorm:"default:Free" json:"status"`
	QRCodeURL    string `json:"qrCodeUrl"`
}
