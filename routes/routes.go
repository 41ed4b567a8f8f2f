package routes

import (
	"github.com/spywithcode/ReStro/configs"
	"github.com/spywithcode/ReStro/controllers"
	"github.com/spywithcode/ReStro/entity"
	"github.com/spywithcode/ReStro/middlewares"
	"github.com/spywithcode/ReStro/services"
	"github.com/spywithcode/ReStro/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Deps struct {
	DB          *gorm.DB
	Cfg         *configs.Config
	Auth        *services.AuthService
	Restaurants *services.RestaurantService
	Menu        *services.MenuService
	Tables      *services.TableService
	Orders      *services.OrderService
	Feed        *ws.Feed
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.Use(middlewares.CORSMiddleware(d.Cfg.CORSOrigins))

	secret := d.Cfg.JWTSecret
	admin := middlewares.AuthMiddleware(secret, entity.RoleAdmin)
	session := middlewares.AuthMiddleware(secret)

	// Controllers
	authCtrl := controllers.NewAuthController(d.Auth)
	restCtrl := controllers.NewRestaurantController(d.Restaurants)
	menuCtrl := controllers.NewMenuController(d.Menu)
	tableCtrl := controllers.NewTableController(d.Tables)
	orderCtrl := controllers.NewOrderController(d.Orders)
	healthCtrl := controllers.NewHealthController(d.DB, d.Cfg)

	r.GET("/health", healthCtrl.Check)

	// Auth
	a := r.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
		a.POST("/forgot-password", authCtrl.ForgotPassword)
		a.POST("/reset-password", authCtrl.ResetPassword)
	}
	aAuth := a.Group("", session)
	{
		aAuth.POST("/logout", authCtrl.Logout)
		aAuth.GET("/me", authCtrl.Me)
		aAuth.PUT("/update-profile", authCtrl.UpdateProfile)
	}

	// Restaurants (reads public, writes admin)
	r.GET("/restaurants", restCtrl.List)
	r.GET("/restaurants/:id", restCtrl.Detail)
	r.POST("/restaurants", admin, restCtrl.Create)
	r.PUT("/restaurants/:id", admin, restCtrl.Update)
	r.DELETE("/restaurants/:id", admin, restCtrl.Delete)

	// Menu
	r.GET("/menu", menuCtrl.List)
	r.GET("/menu/:restaurantId/:itemId", menuCtrl.Detail)
	r.POST("/menu", admin, menuCtrl.Create)
	r.PUT("/menu/:restaurantId/:itemId", admin, menuCtrl.Update)
	r.DELETE("/menu/:restaurantId/:itemId", admin, menuCtrl.Delete)

	// Tables
	r.GET("/tables", tableCtrl.List)
	r.GET("/tables/:restaurantId/:tableId/qrcode", tableCtrl.QRCode)
	r.POST("/tables", admin, tableCtrl.Create)
	r.PUT("/tables/:restaurantId/:tableId/status", admin, tableCtrl.UpdateStatus)
	r.DELETE("/tables/:restaurantId/:tableId", admin, tableCtrl.Delete)

	// Orders — POST เป็น public (ลูกค้าสั่งจากโต๊ะ) ที่เหลือ admin คุม
	r.GET("/orders", orderCtrl.List)
	r.GET("/orders/:id", orderCtrl.Detail)
	r.POST("/orders", orderCtrl.Create)
	r.PUT("/orders/:id/status", admin, orderCtrl.UpdateStatus)
	r.DELETE("/orders/:id", admin, orderCtrl.Delete)

	// Realtime feed
	r.GET("/ws/:restaurantId/:collection", d.Feed.HandleWebSocket)

	// Serve uploaded files (e.g. profile pictures)
	r.Static("/uploads", "./uploads")
}
