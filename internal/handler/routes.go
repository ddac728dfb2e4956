package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/tallyapp/tally-backend/internal/middleware"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimiter *middleware.RateLimiter, summaryHandler *SummaryHandler, transactionHandler *TransactionHandler, accountHandler *AccountHandler, categoryHandler *CategoryHandler, wsHandler *WebSocketHandler) {
	// API version 1
	api := e.Group("/api/v1")
	api.Use(authMiddleware.Authenticate())
	api.Use(middleware.RateLimitMiddleware(rateLimiter))

	// Summary
	api.GET("/summary", summaryHandler.GetSummary)

	// Transactions
	transactions := api.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.POST("/bulk-create", transactionHandler.BulkCreateTransactions)
	transactions.POST("/bulk-delete", transactionHandler.BulkDeleteTransactions)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	// Accounts
	accounts := api.Group("/accounts")
	accounts.POST("", accountHandler.CreateAccount)
	accounts.POST("/bulk-delete", accountHandler.BulkDeleteAccounts)
	accounts.GET("", accountHandler.GetAccounts)
	accounts.PUT("/:id", accountHandler.UpdateAccount)
	accounts.DELETE("/:id", accountHandler.DeleteAccount)

	// Categories
	categories := api.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.POST("/bulk-delete", categoryHandler.BulkDeleteCategories)
	categories.GET("", categoryHandler.GetCategories)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	// WebSocket endpoint authenticates via query token, outside the JWT group
	e.GET("/ws", wsHandler.HandleWS)
}
