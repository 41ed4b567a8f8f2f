package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spywithcode/ReStro/configs"
	"github.com/spywithcode/ReStro/mailer"
	"github.com/spywithcode/ReStro/notify"
	"github.com/spywithcode/ReStro/repository"
	"github.com/spywithcode/ReStro/routes"
	"github.com/spywithcode/ReStro/services"
	"github.com/spywithcode/ReStro/ws"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := configs.LoadConfig()

	// DB
	configs.ConnectionDB(cfg)
	db := configs.DB()

	// migrate
	configs.SetupDatabase()

	if err := configs.SeedAdmin(); err != nil {
		log.Fatalf("seed admin failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	restRepo := repository.NewRestaurantRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	tableRepo := repository.NewTableRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// Change notification layer: hub ในเครื่อง + Redis bridge ถ้าตั้งไว้
	snapshots := notify.NewSnapshots(orderRepo, tableRepo, menuRepo)
	hub := notify.NewHub(snapshots)
	go hub.Run(ctx)

	var notifier notify.Notifier = hub
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		bridge := notify.NewRedisBridge(hub, rdb)
		go bridge.Run(ctx)
		notifier = bridge
		log.Println("✅ redis notification bridge enabled:", cfg.RedisAddr)
	}

	// Mail (best-effort)
	var mail mailer.Mailer = mailer.LogMailer{}
	if cfg.SMTPHost != "" {
		mail = mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom)
	}

	// Services
	authSvc := services.NewAuthService(userRepo, restRepo, mail, cfg.JWTSecret, cfg.BaseURL, cfg.JWTTTL)
	restSvc := services.NewRestaurantService(restRepo)
	menuSvc := services.NewMenuService(menuRepo, restRepo, notifier)
	tableSvc := services.NewTableService(tableRepo, restRepo, notifier, cfg.BaseURL)
	orderSvc := services.NewOrderService(db, orderRepo, notifier)

	feed := ws.NewFeed(notifier, snapshots)

	// HTTP
	r := gin.Default()
	routes.RegisterRoutes(r, routes.Deps{
		DB:          db,
		Cfg:         cfg,
		Auth:        authSvc,
		Restaurants: restSvc,
		Menu:        menuSvc,
		Tables:      tableSvc,
		Orders:      orderSvc,
		Feed:        feed,
	})

	addr := fmt.Sprintf(":%s", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.RequestTimeout,
	}

	go func() {
		log.Println("🚀 Server running at", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
