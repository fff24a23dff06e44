package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jwtpizza/pizza-service/config"
	"github.com/jwtpizza/pizza-service/internal/app/controller"
	"github.com/jwtpizza/pizza-service/internal/app/repository"
	"github.com/jwtpizza/pizza-service/internal/app/service"
	"github.com/jwtpizza/pizza-service/internal/db"
	"github.com/jwtpizza/pizza-service/internal/events"
	"github.com/jwtpizza/pizza-service/internal/middleware"
	"github.com/jwtpizza/pizza-service/internal/router"
	"github.com/jwtpizza/pizza-service/internal/scheduler"
	"github.com/jwtpizza/pizza-service/internal/storage"
	"github.com/jwtpizza/pizza-service/pkg/factory"
	"github.com/jwtpizza/pizza-service/pkg/logger"
	pizzaredis "github.com/jwtpizza/pizza-service/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := cfg.Log.Level
	if logLevel == "" {
		logLevel = "info"
		if cfg.Server.Environment == "development" {
			logLevel = "debug"
		}
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      cfg.Log.Format,
		EnableColor: cfg.Log.Format == "console",
	})

	logger.Info("Starting pizza service", map[string]interface{}{
		"version":     config.Version,
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	database := db.New(cfg)
	if err := database.Initialize(); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Initialize repositories
	userRepo := repository.NewUserRepository(database.GetDB())
	menuRepo := repository.NewMenuRepository(database.GetDB())
	orderRepo := repository.NewOrderRepository(database.GetDB(), cfg.Database.ListPerPage)
	franchiseRepo := repository.NewFranchiseRepository(database.GetDB())

	// Session revocation cache (optional)
	var sessions service.SessionCache
	if cfg.Redis.Enabled() {
		redisClient, err := pizzaredis.NewClient(cfg.Redis)
		if err != nil {
			logger.Warn("Redis unavailable, sessions are checked against the database only", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			cache := pizzaredis.NewSessionCache(redisClient, cfg.JWT.Expiry)
			defer cache.Close()
			sessions = cache
		}
	}

	// Order events (optional)
	var publisher events.Publisher = events.NopPublisher{}
	if cfg.Kafka.Enabled() {
		publisher = events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.OrderTopic)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error("Failed to close order publisher", err)
		}
	}()

	factoryClient, err := factory.NewClient(factory.Config{
		BaseURL: cfg.Factory.URL,
		APIKey:  cfg.Factory.APIKey,
		Timeout: cfg.Factory.Timeout,
	})
	if err != nil {
		logger.Fatal("Failed to initialize factory client", err)
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, sessions, cfg.JWT.Secret, cfg.JWT.Expiry)
	userService := service.NewUserService(userRepo, authService)
	orderService := service.NewOrderService(menuRepo, orderRepo, factoryClient, publisher)
	franchiseService := service.NewFranchiseService(franchiseRepo)

	// Initialize controllers
	authController := controller.NewAuthController(authService)
	userController := controller.NewUserController(userService)
	orderController := controller.NewOrderController(orderService)
	franchiseController := controller.NewFranchiseController(franchiseService)

	var uploadController *controller.UploadController
	if cfg.S3.Enabled() {
		uploadController = controller.NewUploadController(storage.NewS3Storage(context.Background(), cfg.S3))
	}

	// Expired sessions
	var purgeScheduler *scheduler.SessionPurgeScheduler
	if cfg.JWT.Expiry > 0 {
		purgeScheduler = scheduler.NewSessionPurgeScheduler(userRepo, cfg.Scheduler.SessionPurgeSchedule, cfg.JWT.Expiry)
		if err := purgeScheduler.Start(); err != nil {
			logger.Fatal("Failed to start session purge scheduler", err)
		}
	}

	// Setup router
	r := router.NewRouter(
		authController,
		orderController,
		franchiseController,
		userController,
		uploadController,
		middleware.NewAuthMiddleware(authService),
		database.Ready,
		cfg,
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           r.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server started successfully", map[string]interface{}{
			"address": srv.Addr,
			"pid":     os.Getpid(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	if purgeScheduler != nil {
		purgeScheduler.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", err)
	}
	logger.Info("Server stopped successfully")
}
