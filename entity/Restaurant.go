package entity

import (
	"gorm.io/gorm"
)

type Restaurant struct {
	gorm.Model
	RestaurantID string `gorm:"uniqueIndex;not null" json:"id"` // tenant key, e.g. rest-1712345678901
	Name         string `json:"name"`
	Description  string `json:"description"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	ImageURL     string `json:"imageUrl"`
	IsActive     bool   `gorm:"default:true" json:"isActive"`

	MenuItems []MenuItem `gorm:"foreignKey:RestaurantID;references:RestaurantID" json:"-"`
	Tables    []Table    `gorm:"foreignKey:RestaurantID;references:RestaurantID" json:"-"`
	Orders    []Order    `gorm:"foreignKey:RestaurantID;references:RestaurantID" json:"-"`
}
