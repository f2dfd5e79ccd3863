package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sshrey15/car-rental-goa-backend/internal/config"
	"github.com/sshrey15/car-rental-goa-backend/internal/handlers"
	"github.com/sshrey15/car-rental-goa-backend/internal/middleware"
	"github.com/sshrey15/car-rental-goa-backend/internal/repositories/mongodb"
	"github.com/sshrey15/car-rental-goa-backend/internal/services"
	"github.com/sshrey15/car-rental-goa-backend/internal/utils"
	"github.com/sshrey15/car-rental-goa-backend/pkg/cache"
	"github.com/sshrey15/car-rental-goa-backend/pkg/database"
	"github.com/sshrey15/car-rental-goa-backend/pkg/logger"
	"github.com/sshrey15/car-rental-goa-backend/pkg/payment"
	"github.com/sshrey15/car-rental-goa-backend/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(&logger.Config{
		Level:  logger.LogLevel(cfg.App.LogLevel),
		Format: "json",
		Output: "stdout",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	mongoDB, err := database.NewMongoDB(&database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		log.WithError(err).Fatal("failed to connect to mongodb")
	}
	defer mongoDB.Close()

	if err := database.NewMigrator(mongoDB.Database).Up(); err != nil {
		log.WithError(err).Fatal("failed to run migrations")
	}

	redisCache, err := cache.NewRedisCache(&cache.RedisConfig{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		log.WithError(err).Fatal("failed to connect to redis")
	}
	defer redisCache.Close()

	cacheService := services.NewCacheService(redisCache)

	// Repositories
	bookingRepo := mongodb.NewBookingRepository(mongoDB.Database)
	carRepo := mongodb.NewCarRepository(mongoDB.Database)
	couponRepo := mongodb.NewCouponRepository(mongoDB.Database, cacheService)
	userRepo := mongodb.NewUserRepository(mongoDB.Database)
	locationRepo := mongodb.NewLocationRepository(mongoDB.Database, cacheService)

	// Payment gateway
	gateway := payment.NewRazorpayGateway(
		cfg.Payment.Razorpay.KeyID,
		cfg.Payment.Razorpay.KeySecret,
		cfg.Payment.Razorpay.WebhookSecret,
	)

	// Services
	couponService := services.NewCouponService(couponRepo, bookingRepo, log)
	bookingService := services.NewBookingService(bookingRepo, carRepo, couponService, log)
	paymentService := services.NewPaymentService(bookingRepo, bookingService, couponService, gateway, log)
	authService := services.NewAuthService(userRepo, cfg.Security.JWTSecret, log)
	carService := services.NewCarService(carRepo, couponRepo, log)
	locationService := services.NewLocationService(locationRepo)
	adminService := services.NewAdminService(bookingRepo, carRepo, userRepo, couponRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	carHandler := handlers.NewCarHandler(carService)
	locationHandler := handlers.NewLocationHandler(locationService)
	adminHandler := handlers.NewAdminHandler(adminService, carService, couponService, locationService)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS())
	router.Use(middleware.RequestLogger(log))

	router.GET("/health", func(c *gin.Context) {
		if err := mongoDB.Ping(); err != nil {
			utils.ErrorResponse(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "database unreachable")
			return
		}
		utils.SuccessResponse(c, "healthy", gin.H{
			"name":    cfg.App.Name,
			"version": cfg.App.Version,
		})
	})

	api := router.Group("/api/v1")
	jwtSecret := cfg.Security.JWTSecret
	routes.SetupUserRoutes(api, authHandler, jwtSecret)
	routes.SetupCarRoutes(api, carHandler, locationHandler, jwtSecret)
	routes.SetupBookingRoutes(api, bookingHandler, jwtSecret)
	routes.SetupPaymentRoutes(api, paymentHandler, jwtSecret)
	routes.SetupAdminRoutes(api, adminHandler, bookingHandler, locationHandler, jwtSecret)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.App.Port).Info("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("forced shutdown")
	}
}
