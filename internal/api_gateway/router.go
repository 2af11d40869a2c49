package api_gateway

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/purse-ledger/internal/api_gateway/handler"
	"github.com/purse-ledger/internal/api_gateway/middleware"
)

type handlers struct {
	transactions *handler.TransactionHandler
	balance      *handler.BalanceHandler
	budgets      *handler.BudgetHandler
	categories   *handler.CategoryHandler
	savings      *handler.SavingsHandler
	reports      *handler.ReportHandler
}

// setupRouter configures API routes and middleware for the application
func setupRouter(logger *slog.Logger, r *gin.Engine, h handlers) {
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.CorrelationID())
	r.Use(middleware.Logger(logger))

	// API v1 endpoints
	v1 := r.Group("/api/v1")
	{
		transactions := v1.Group("/transactions")
		{
			transactions.POST("", h.transactions.Create)
			transactions.GET("", h.transactions.List)
			transactions.PATCH("/:id", h.transactions.Update)
			transactions.DELETE("/:id", h.transactions.Delete)
		}

		balance := v1.Group("/balance")
		{
			balance.GET("", h.balance.Get)
			balance.PUT("", h.balance.Set)
			balance.GET("/history", h.balance.History)
			balance.POST("/adjustments", h.balance.Adjust)
		}

		budgets := v1.Group("/budgets")
		{
			budgets.GET("", h.budgets.List)
			budgets.GET("/status", h.budgets.Status)
			budgets.PUT("/cycle-day", h.budgets.SetCycleDay)
			budgets.PUT("/:category", h.budgets.Set)
		}

		categories := v1.Group("/categories")
		{
			categories.GET("", h.categories.List)
			categories.POST("", h.categories.Create)
			categories.PUT("/:name", h.categories.Rename)
			categories.DELETE("/:name", h.categories.Delete)
		}

		savings := v1.Group("/savings")
		{
			savings.GET("", h.savings.Overview)
			savings.POST("/deposits", h.savings.Deposit)
			savings.GET("/transactions", h.savings.Transactions)
			savings.PUT("/goals/:name", h.savings.SetGoal)
			savings.DELETE("/goals/:name", h.savings.DeleteGoal)
		}

		v1.GET("/reports/categories", h.reports.Categories)
		v1.GET("/dashboard", h.reports.Dashboard)
	}

	// Health check endpoint for monitoring
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})
}
