// Package server assembles the HTTP router and its dependencies.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "budgettracker/internal/docs" // Import swagger docs
	"budgettracker/internal/handlers"
	"budgettracker/internal/middleware"
)

// NewRouter builds the gin engine with every route mounted. adminAPIKey
// guards the /admin group.
func NewRouter(svc *Services, adminAPIKey string) *gin.Engine {
	authHandler := handlers.NewAuthHandler(svc.Users)
	walletHandler := handlers.NewWalletHandler(svc.Wallets)
	transactionHandler := handlers.NewTransactionHandler(svc.Transactions, svc.Wallets)
	categoryHandler := handlers.NewCategoryHandler(svc.Categories)
	statisticsHandler := handlers.NewStatisticsHandler(svc.Statistics)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)

	wallet := protected.Group("/wallet")
	wallet.GET("", walletHandler.GetWallet)
	wallet.PUT("", walletHandler.UpdateWallet)
	wallet.POST("/deposit", walletHandler.Deposit)
	wallet.POST("/currency", walletHandler.ChangeCurrency)
	wallet.GET("/balance", walletHandler.GetBalance)
	wallet.GET("/progress", walletHandler.GetProgress)
	wallet.GET("/transactions", walletHandler.GetTransactions)
	wallet.GET("/goals", walletHandler.GetGoals)
	wallet.POST("/goals", walletHandler.AddGoal)
	wallet.DELETE("/goals/:id", walletHandler.RemoveGoal)

	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.SearchTransactions)
	transactions.GET("/totals", transactionHandler.GetTotals)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	categories := protected.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetCategories)
	categories.POST("/rename", categoryHandler.RenameCategory)
	categories.GET("/:id", categoryHandler.GetCategoryByID)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	protected.GET("/statistics", statisticsHandler.GetStatistics)

	// System-wide routes
	admin := v1.Group("/admin")
	admin.Use(middleware.APIKeyMiddleware(adminAPIKey))
	admin.GET("/transactions/export", transactionHandler.ExportTransactions)

	return router
}
