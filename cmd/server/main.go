package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rahat/tastybites-backend/config"
	"github.com/rahat/tastybites-backend/internal/app/controller"
	"github.com/rahat/tastybites-backend/internal/app/repository"
	"github.com/rahat/tastybites-backend/internal/app/service"
	"github.com/rahat/tastybites-backend/internal/db"
	"github.com/rahat/tastybites-backend/internal/router"
	"github.com/rahat/tastybites-backend/internal/scheduler"
	"github.com/rahat/tastybites-backend/internal/storage"
	"github.com/rahat/tastybites-backend/pkg/logger"
	"github.com/rahat/tastybites-backend/pkg/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	logFormat := "json"
	if cfg.Server.Environment == "development" {
		logFormat = "console"
	}
	logger.Initialize(logger.Config{
		Level:       "info",
		Format:      logFormat,
		EnableColor: cfg.Server.Environment == "development",
	})

	logger.Info("Starting server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
	})

	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	if err := redis.Init(&cfg.Redis); err != nil {
		// Logout revocation degrades gracefully without Redis
		logger.Warn("Redis unavailable, token revocation disabled", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		defer redis.Close()
	}

	gormDB := db.GetDB()

	userRepo := repository.NewUserRepository(gormDB)
	addressRepo := repository.NewAddressRepository(gormDB)
	menuRepo := repository.NewMenuRepository(gormDB)
	cartRepo := repository.NewCartRepository(gormDB)
	orderRepo := repository.NewOrderRepository(gormDB)
	expenseRepo := repository.NewExpenseRepository(gormDB)
	reportRepo := repository.NewReportRepository(gormDB)

	authService := service.NewAuthService(userRepo, cfg.JWT)
	addressService := service.NewAddressService(addressRepo)
	menuService := service.NewMenuService(menuRepo, gormDB)
	cartService := service.NewCartService(cartRepo, menuRepo)
	orderService := service.NewOrderService(orderRepo, cartRepo, addressRepo, userRepo, gormDB, cfg.Order)
	staffService := service.NewStaffService(orderRepo, userRepo, gormDB)
	expenseService := service.NewExpenseService(expenseRepo)
	reportService := service.NewReportService(reportRepo, expenseRepo)

	var s3Storage *storage.S3Storage
	if s3, err := storage.NewS3Storage(context.Background(), &cfg.S3); err != nil {
		logger.Warn("S3 storage unavailable, uploads disabled", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		s3Storage = s3
	}

	summaryScheduler := scheduler.NewDailySummaryScheduler(reportService)
	if err := summaryScheduler.Start(); err != nil {
		logger.Fatal("Failed to start daily summary scheduler", err)
	}
	defer summaryScheduler.Stop()

	engine := router.Setup(cfg, router.Controllers{
		Auth:    controller.NewAuthController(authService),
		Address: controller.NewAddressController(addressService),
		Menu:    controller.NewMenuController(menuService),
		Cart:    controller.NewCartController(cartService),
		Order:   controller.NewOrderController(orderService),
		Staff:   controller.NewStaffController(staffService, reportService),
		Expense: controller.NewExpenseController(expenseService),
		Report:  controller.NewReportController(reportService),
		Upload:  controller.NewUploadController(s3Storage),
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: engine,
	}

	go func() {
		logger.Info("HTTP server listening", map[string]interface{}{
			"addr": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", err)
	}
	logger.Info("Server stopped")
}
