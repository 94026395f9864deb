package main

import (
	"context" // context package is needed for Redis operations
	"log"     // log package is needed for logging

	"gigpay/internal/api"        // API handlers
	"gigpay/internal/config"     // Configuration
	"gigpay/internal/middleware" // Middleware
	"gigpay/internal/service"    // Core job/escrow operations

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Connect to the database
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err)
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})

	// Test Redis connection
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	svc := service.New(db) // Core marketplace operations

	// Setup Gin
	r := gin.Default()
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Auth routes
	r.POST("/auth/register", api.RegisterHandler(db))
	r.POST("/auth/login", api.LoginHandler(db, cfg.JWTSecret))

	// Public browse routes
	r.GET("/jobs", api.ListJobsHandler(svc))
	r.GET("/jobs/:id", api.GetJobHandler(svc))

	// Job lifecycle and money routes (protected by JWT)
	jobGroup := r.Group("/jobs")
	jobGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret), func(c *gin.Context) {
		c.Set("redisClient", redisClient)
		c.Next()
	})
	jobGroup.POST("", api.CreateJobHandler(svc))                            // Create job (employer)
	jobGroup.POST("/:id/apply", api.ApplyHandler(svc))                      // Apply (worker)
	jobGroup.GET("/:id/applicants", api.ListApplicantsHandler(svc))         // List applicants (owner)
	jobGroup.POST("/:id/assign", api.AssignHandler(svc))                    // Assign one applicant
	jobGroup.GET("/:id/escrow", api.GetEscrowHandler(svc, redisClient))     // Escrow status
	jobGroup.POST("/:id/escrow/fund", api.FundEscrowHandler(svc))           // Fund escrow (idempotent)
	jobGroup.POST("/:id/submit", api.SubmitHandler(svc))                    // Submit work (assignee)
	jobGroup.POST("/:id/approve", api.ApproveHandler(svc))                  // Approve and release
	jobGroup.POST("/:id/rate", api.RateHandler(svc))                        // Rate the other party
	jobGroup.POST("/:id/tip", api.TipHandler(svc))                          // Tip after completion

	// Wallet routes (protected by JWT)
	walletGroup := r.Group("/wallet")
	walletGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret), func(c *gin.Context) {
		c.Set("redisClient", redisClient)
		c.Next()
	})
	walletGroup.GET("", api.GetWalletHandler(db, redisClient))                          // Own wallet
	walletGroup.GET("/transactions", api.GetTransactionHistoryHandler(db, redisClient)) // Ledger history

	// Admin routes (protected, admin only)
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret), middleware.AdminOnlyMiddleware(db))
	adminGroup.GET("/users", api.ListUsersHandler(db, redisClient))               // Users with rating aggregates
	adminGroup.GET("/transactions", api.ListTransactionsHandler(db, redisClient)) // Ledger audit trail
	adminGroup.GET("/wallets", api.AuditWalletsHandler(db))                       // Balance vs ledger reconciliation

	log.Println("Server running on " + cfg.AppPort)
	r.Run(":" + cfg.AppPort)
}
