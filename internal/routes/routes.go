package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/sajian-platform/service-dashboard/internal/handlers"
)

// RouteConfig holds configuration for routes
type RouteConfig struct {
	DashboardHandler    *handlers.DashboardHandler
	ChatHandler         *handlers.ChatHandler
	MerchantHandler     *handlers.MerchantHandler
	NotificationHandler *handlers.NotificationHandler
	SettingsHandler     *handlers.SettingsHandler
}

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, cfg *RouteConfig) {
	// API v1 routes
	v1 := router.Group("/api/v1")

	// Chat assistant
	chat := v1.Group("/chat")
	{
		chat.GET("/suggestions", cfg.ChatHandler.GetSuggestions)
		chat.POST("/messages", cfg.ChatHandler.PostMessage)
		chat.GET("/sessions/:session_id", cfg.ChatHandler.GetTranscript)
	}

	// Merchant catalog and per-merchant resources
	merchants := v1.Group("/merchants")
	{
		merchants.GET("", cfg.MerchantHandler.GetMerchants)
		merchants.GET("/:id", cfg.MerchantHandler.GetMerchant)

		// Dashboard
		merchants.GET("/:id/dashboard", cfg.DashboardHandler.GetDashboard)
		merchants.GET("/:id/dashboard/sales-trend", cfg.DashboardHandler.GetSalesTrend)
		merchants.GET("/:id/dashboard/hourly-sales", cfg.DashboardHandler.GetHourlySales)
		merchants.GET("/:id/dashboard/daily-sales", cfg.DashboardHandler.GetDailySales)
		merchants.GET("/:id/dashboard/top-items", cfg.DashboardHandler.GetTopItems)
		merchants.GET("/:id/dashboard/insights", cfg.DashboardHandler.GetInsights)

		// Notifications
		merchants.GET("/:id/notifications", cfg.NotificationHandler.GetNotifications)
		merchants.POST("/:id/notifications/:nid/read", cfg.NotificationHandler.MarkRead)
		merchants.POST("/:id/notifications/read-all", cfg.NotificationHandler.MarkAllRead)

		// Settings
		merchants.GET("/:id/settings", cfg.SettingsHandler.GetSettings)
		merchants.PUT("/:id/settings", cfg.SettingsHandler.UpdateSettings)
	}
}
