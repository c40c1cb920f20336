package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sjlee/order-api/config"
	"github.com/sjlee/order-api/internal/app/controller"
	"github.com/sjlee/order-api/internal/app/service"
	"github.com/sjlee/order-api/internal/db"
	"github.com/sjlee/order-api/internal/middleware"
	"github.com/sjlee/order-api/internal/queue"
	"github.com/sjlee/order-api/internal/router"
	"github.com/sjlee/order-api/internal/scheduler"
	"github.com/sjlee/order-api/pkg/catalog"
	"github.com/sjlee/order-api/pkg/logger"
	"github.com/sjlee/order-api/pkg/payment/portone"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting ORDER API Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Initialize external clients
	portoneClient, err := portone.NewClient(portone.Config{
		APISecret:  cfg.Payment.PortOne.APISecret,
		StoreID:    cfg.Payment.PortOne.StoreID,
		ChannelKey: cfg.Payment.PortOne.ChannelKey,
		BaseURL:    cfg.Payment.PortOne.BaseURL,
	})
	if err != nil {
		logger.Fatal("Failed to initialize payment gateway client", err)
	}

	catalogClient, err := catalog.NewClient(catalog.Config{
		BaseURL: cfg.Catalog.BaseURL,
	})
	if err != nil {
		logger.Fatal("Failed to initialize catalog client", err)
	}

	publisher, err := queue.NewSQSPublisher(
		context.Background(),
		cfg.SQS.Region,
		cfg.SQS.QueueURL,
		cfg.SQS.AccessKeyID,
		cfg.SQS.SecretAccessKey,
	)
	if err != nil {
		logger.Fatal("Failed to initialize stock queue publisher", err)
	}

	// Initialize services
	cartService := service.NewCartService(db.GetDB())
	deliveryService := service.NewDeliveryService(db.GetDB())
	orderService := service.NewOrderService(db.GetDB(), catalogClient)
	paymentService := service.NewPaymentService(db.GetDB(), portoneClient, publisher)
	catalogService := service.NewCatalogService(db.GetDB(), catalogClient)

	// Initialize controllers
	cartController := controller.NewCartController(cartService)
	orderController := controller.NewOrderController(orderService)
	paymentController := controller.NewPaymentController(paymentService)
	deliveryController := controller.NewDeliveryController(deliveryService)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Start catalog refresh scheduler
	catalogScheduler := scheduler.NewCatalogScheduler(catalogService, cfg.Catalog.RefreshSchedule)
	if err := catalogScheduler.Start(); err != nil {
		logger.Fatal("Failed to start catalog scheduler", err)
	}
	defer catalogScheduler.Stop()

	// Setup router
	r := router.NewRouter(
		cartController,
		orderController,
		paymentController,
		deliveryController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
