package middlewares

import (
	"net/http"
	"strings"

	"github.com/spywithcode/ReStro/utils"

	"github.com/gin-gonic/gin"
)

// token มาได้สองทาง: http-only cookie "auth-token" หรือ Bearer header
func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie("auth-token"); err == nil && cookie != "" {
		return cookie
	}
	h := c.GetHeader("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

// ใช้ตรวจ token และ (ถ้ามี) บังคับ role
func AuthMiddleware(secret string, requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := tokenFromRequest(c)
		if tokenStr == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "No authentication token provided"})
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(tokenStr, secret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("userId", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)
		c.Set("restaurantId", claims.RestaurantID)

		if len(requiredRoles) > 0 {
			allowed := false
			for _, r := range requiredRoles {
				if claims.Role == r {
					allowed = true
					break
				}
			}
			if !allowed {
				c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Insufficient permissions"})
				c.Abort()
				return
			}
		}

		c.Next()
	}
}
