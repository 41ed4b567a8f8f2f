package entity

import (
	"gorm.io/gorm"
)

// Menu categories (closed set)
const (
	CategoryAppetizer  = "Appetizer"
	CategoryMainCourse = "Main Course"
	CategoryDessert    = "Dessert"
	CategoryBeverage   = "Beverage"
)

func ValidCategory(c string) bool {
	switch c {
	case CategoryAppetizer, CategoryMainCourse, CategoryDessert, CategoryBeverage:
		return true
	}
	return false
}

type MenuItem struct {
	gorm.Model
	// item id ซ้ำได้ข้ามร้าน แต่ห้ามซ้ำในร้านเดียวกัน
	ItemID       string  `gorm:"uniqueIndex:idx_menu_tenant_item;not null" json:"id"`
	RestaurantID string  `gorm:"uniqueIndex:idx_menu_tenant_item;index;not null" json:"restaurantId"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	Category     string  `gorm:"index" json:"category"`
	ImageURL     string  `json:"imageUrl"`
	IsAvailable  bool    `gorm:"default:true" json:"isAvailable"`
}
