package main

import (
	"context"
	"fmt"
	"log"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"brandregistry/internal/config"
	"brandregistry/internal/handlers"
	"brandregistry/internal/middleware"
	"brandregistry/internal/repositories"
	"brandregistry/internal/services"
	"brandregistry/pkg/database"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := database.RunMigrations(ctx, cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	storageSvc, err := services.NewStorageService(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}
	if err := storageSvc.EnsureBucket(ctx); err != nil {
		log.Fatalf("Failed to ensure storage bucket: %v", err)
	}

	userRepo := repositories.NewUserRepo(pool)
	brandRepo := repositories.NewBrandRepo(pool)

	authSvc, err := services.NewAuthService(userRepo, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize auth service: %v", err)
	}
	brandSvc := services.NewBrandService(brandRepo, storageSvc)

	authHandlers := handlers.NewAuthHandlers(authSvc)
	brandHandlers := handlers.NewBrandHandlers(brandSvc, cfg)
	healthHandlers := handlers.NewHealthHandlers(pool)

	e := echo.New()
	e.Validator = handlers.NewValidator()

	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.RemoveTrailingSlash())
	if len(cfg.CORSOrigins) > 0 {
		e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
			AllowOrigins:     cfg.CORSOrigins,
			AllowCredentials: true,
		}))
	}

	e.GET("/healthz", healthHandlers.Healthz)
	e.GET("/readyz", healthHandlers.Readyz)

	auth := e.Group("/auth")
	auth.POST("/register", authHandlers.Register)
	auth.POST("/login", authHandlers.Login)
	auth.DELETE("/me", authHandlers.DeleteMe, middleware.BearerAuth(authSvc))

	brands := e.Group("/brands")
	brands.Use(middleware.BearerAuth(authSvc))
	brands.POST("", brandHandlers.Create)
	brands.GET("", brandHandlers.List)
	brands.GET("/:id", brandHandlers.Get)
	brands.PATCH("/:id", brandHandlers.Update)
	brands.DELETE("/:id", brandHandlers.Delete)

	log.Printf("Brand registry server starting on port %d", cfg.Port)
	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", cfg.Port)))
}
