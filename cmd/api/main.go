package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"nidhi/internal/config"
	"nidhi/internal/database"
	"nidhi/internal/handlers"
	"nidhi/internal/logger"
	"nidhi/internal/middleware"
	"nidhi/internal/services"
	"nidhi/internal/validator"

	_ "nidhi/internal/docs" // Import swagger docs
)

// @title           Nidhi API
// @version         1.0
// @description     Nidhi is a personal finance tracker for assets, liabilities, transactions, recurring payment schedules, and user-defined category templates.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom binding validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	assetService := services.NewAssetService(db)
	liabilityService := services.NewLiabilityService(db)
	templateService := services.NewCustomCategoryService(db)
	transactionService := services.NewTransactionService(db)
	scheduleService := services.NewRecurringScheduleService(db)
	auditService := services.NewAuditService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	assetHandler := handlers.NewAssetHandler(assetService, auditService)
	liabilityHandler := handlers.NewLiabilityHandler(liabilityService, auditService)
	netWorthHandler := handlers.NewNetWorthHandler(assetService, liabilityService)
	templateHandler := handlers.NewCustomCategoryHandler(templateService, auditService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, auditService)
	scheduleHandler := handlers.NewRecurringScheduleHandler(scheduleService, auditService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile and session
	protected.GET("/profile", authHandler.GetProfile)
	protected.POST("/auth/logout", authHandler.Logout)

	// Asset routes
	assets := protected.Group("/assets")
	assets.POST("", assetHandler.CreateAsset)
	assets.GET("", assetHandler.GetUserAssets)
	assets.GET("/summary", assetHandler.GetAssetSummary)
	assets.GET("/:id", assetHandler.GetAssetByID)
	assets.PUT("/:id", assetHandler.UpdateAsset)
	assets.DELETE("/:id", assetHandler.DeleteAsset)

	// Liability routes
	liabilities := protected.Group("/liabilities")
	liabilities.POST("", liabilityHandler.CreateLiability)
	liabilities.GET("", liabilityHandler.GetUserLiabilities)
	liabilities.GET("/summary", liabilityHandler.GetLiabilitySummary)
	liabilities.GET("/:id", liabilityHandler.GetLiabilityByID)
	liabilities.PUT("/:id", liabilityHandler.UpdateLiability)
	liabilities.DELETE("/:id", liabilityHandler.DeleteLiability)

	// Net worth
	protected.GET("/net-worth", netWorthHandler.GetNetWorth)

	// Custom category template routes
	templates := protected.Group("/custom-categories")
	templates.POST("", templateHandler.CreateTemplate)
	templates.GET("", templateHandler.ListTemplates)
	templates.GET("/:id", templateHandler.GetTemplateByID)
	templates.PUT("/:id", templateHandler.UpdateTemplate)
	templates.DELETE("/:id", templateHandler.DeleteTemplate)
	templates.GET("/:id/fields", templateHandler.HydrateFields)

	// Transaction routes
	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetUserTransactions)
	transactions.GET("/:id", transactionHandler.GetTransactionByID)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	// Recurring schedule routes
	schedules := protected.Group("/schedules")
	schedules.POST("", scheduleHandler.CreateSchedule)
	schedules.GET("", scheduleHandler.GetSchedules)
	schedules.GET("/upcoming", scheduleHandler.GetUpcomingPayments)
	schedules.GET("/:id", scheduleHandler.GetScheduleByID)
	schedules.PUT("/:id", scheduleHandler.UpdateSchedule)
	schedules.DELETE("/:id", scheduleHandler.DeleteSchedule)

	log.Infof("Starting Nidhi backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
