package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims เป็น custom JWT claims ที่เราจะใช้ในระบบ
type Claims struct {
	UserID       uint   `json:"userId"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	RestaurantID string `json:"restaurantId,omitempty"`
	jwt.RegisteredClaims
}

// GenerateToken สร้าง JWT สำหรับผู้ใช้
func GenerateToken(userID uint, email, role, restaurantID, secret string, ttl time.Duration) (string, error) {
	claims := &Claims{
		UserID:       userID,
		Email:        email,
		Role:         role,
		RestaurantID: restaurantID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken ตรวจ token และคืน claims
func ParseToken(tokenStr, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}
