package main

import (
	"context" // context package is needed for Redis operations
	"log"     // log package is needed for logging

	"ecorewards/internal/api"        // Custom package for API handlers
	"ecorewards/internal/cache"      // Redis-backed response cache
	"ecorewards/internal/config"     // Custom package for configuration
	"ecorewards/internal/db"         // Database connection helpers
	"ecorewards/internal/middleware" // Custom package for middleware
	"ecorewards/internal/rewards"    // Disposal verification and settlement
	"ecorewards/internal/store"      // Entity store over gorm

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Connect to the database
	gormDB, err := db.Open(cfg.DSN())
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	_, err = redisClient.Ping(context.Background()).Result()
	if err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	st := store.New(gormDB)       // Entity store over gorm
	svc := rewards.NewService(st) // Disposal/settlement service
	cch := cache.New(redisClient) // Response cache

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Auth routes
	r.POST("/auth/register", api.RegisterHandler(st))          // Registration endpoint
	r.POST("/auth/login", api.LoginHandler(st, cfg.JWTSecret)) // Login endpoint

	// Public catalog and bin verification
	r.GET("/products", api.ListProductsHandler(svc, cch))  // Product listing endpoint
	r.POST("/scan/verify", api.VerifyBinHandler(svc, cch)) // Bin verification endpoint, read-only

	// Authenticated routes (JWT): settlement credits money, so the user
	// comes from the token
	authGroup := r.Group("/")
	authGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	authGroup.POST("/scan", api.SettleHandler(svc, cch))     // Disposal settlement endpoint
	authGroup.GET("/wallet", api.GetWalletHandler(svc, cch)) // Wallet and rewards endpoint

	// Admin routes (protected, admin only)
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret), middleware.AdminOnlyMiddleware(st))
	adminGroup.GET("", api.AdminListHandler(svc))               // List products or bins
	adminGroup.POST("", api.AdminCreateHandler(svc, cch))       // Create product or bin
	adminGroup.PUT("", api.AdminUpdateHandler(svc, cch))        // Update product or bin
	adminGroup.DELETE("", api.AdminDeleteHandler(svc, st, cch)) // Delete product or bin

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
