package configs

import (
	"log"

	"github.com/spywithcode/ReStro/entity"
	"golang.org/x/crypto/bcrypt"
)

// สร้าง admin ครั้งแรก
func SeedAdmin() error {
	db := DB()
	email := getEnv("ADMIN_EMAIL", "")
	pass := getEnv("ADMIN_PASSWORD", "")
	if email == "" || pass == "" {
		log.Println("⚠️ skip seeding admin: missing ADMIN_EMAIL/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	db.Model(&entity.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		log.Println("ℹ️ admin already exists:", email)
		return nil
	}

	rest := entity.Restaurant{
		RestaurantID: getEnv("ADMIN_RESTAURANT_ID", "rest-seed"),
		Name:         getEnv("ADMIN_RESTAURANT_NAME", "Seed Restaurant"),
		Address:      "-",
		Phone:        "-",
		Email:        email,
		IsActive:     true,
	}
	if err := db.Where("restaurant_id = ?", rest.RestaurantID).FirstOrCreate(&rest).Error; err != nil {
		return err
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	admin := entity.User{
		Email:        email,
		Password:     string(hash),
		Name:         "Admin Seed",
		Role:         "admin",
		RestaurantID: rest.RestaurantID,
	}
	return db.Create(&admin).Error
}
