package main

import (
	"log"
	"net/http"
	"os"

	"worklink/docs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"worklink/internal/auth"
	"worklink/internal/cache"
	"worklink/internal/config"
	"worklink/internal/db"
	"worklink/internal/handler"
	"worklink/internal/model"
	"worklink/internal/repository"
	"worklink/internal/router"
	"worklink/internal/service"
)

// @title Worklink Marketplace API
// @version 1.0
// @description Freelance marketplace API: customers post orders, executors bid, customers assign executors and drive the order status workflow.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.Bid{},
			&model.Order{},
			&model.Profile{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Profile{},
		&model.Order{},
		&model.Bid{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	orderRepo := repository.NewOrderRepository(gormDB)
	bidRepo := repository.NewBidRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	profileService := service.NewProfileService(userRepo, cacheClient)
	orderService := service.NewOrderService(orderRepo, bidRepo, userRepo, cacheClient)
	bidService := service.NewBidService(bidRepo, orderRepo, userRepo, cacheClient)
	reportService := service.NewReportService(userRepo, orderRepo, bidRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	profileHandler := handler.NewProfileHandler(profileService)
	orderHandler := handler.NewOrderHandler(orderService)
	bidHandler := handler.NewBidHandler(bidService)
	reportHandler := handler.NewReportHandler(reportService)

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		profileHandler,
		orderHandler,
		bidHandler,
		reportHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
