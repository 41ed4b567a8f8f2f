package entity

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleAdmin    = "admin"
	RoleStaff    = "staff"
	RoleCustomer = "customer"
)

type User struct {
	gorm.Model
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `json:"-"` // bcrypt hash
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Role     string `gorm:"not null;default:customer" json:"role"`

	// จำเป็นเฉพาะ admin/staff
	RestaurantID string `gorm:"index" json:"restaurantId,omitempty"`

	ImageURL string `json:"imageUrl,omitempty"`

	// password reset (sha256 ของ token, ใช้ครั้งเดียว)
	ResetToken       string     `json:"-"`
	ResetTokenExpiry *time.Time `json:"-"`
}
