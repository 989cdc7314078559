// Package handlers exposes the dashboard service over HTTP.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sajian-platform/service-dashboard/internal/dataset"
	"github.com/sajian-platform/service-dashboard/internal/services"
)

// DashboardHandler handles merchant dashboard endpoints.
type DashboardHandler struct {
	dashboards *services.DashboardService
	logger     *zap.Logger
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(dashboards *services.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{dashboards: dashboards, logger: logger}
}

// GetDashboard returns the full dashboard view model for a merchant.
// @Summary Get merchant dashboard
// @Tags Dashboard
// @Param id path string true "Merchant ID"
// @Param filter query string false "Time filter (today/yesterday/week/month/quarter/year/last7days/last30days)"
// @Param refresh query bool false "Force refresh (bypass cache)"
// @Success 200 {object} services.DashboardViewModel
// @Router /merchants/{id}/dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	merchantID := c.Param("id")
	filter := c.DefaultQuery("filter", "week")
	forceRefresh := c.Query("refresh") == "true"

	vm, err := h.dashboards.GetDashboard(c.Request.Context(), merchantID, filter, forceRefresh)
	if err != nil {
		h.respondError(c, merchantID, err)
		return
	}

	c.JSON(http.StatusOK, vm)
}

// GetSalesTrend returns the sales trend chart only.
// @Summary Get sales trend
// @Tags Dashboard
// @Param id path string true "Merchant ID"
// @Router /merchants/{id}/dashboard/sales-trend [get]
func (h *DashboardHandler) GetSalesTrend(c *gin.Context) {
	h.section(c, func(vm *services.DashboardViewModel) gin.H {
		return gin.H{"sales_trend": vm.SalesTrend}
	})
}

// GetHourlySales returns the hourly sales chart only.
// @Summary Get hourly sales
// @Tags Dashboard
// @Param id path string true "Merchant ID"
// @Router /merchants/{id}/dashboard/hourly-sales [get]
func (h *DashboardHandler) GetHourlySales(c *gin.Context) {
	h.section(c, func(vm *services.DashboardViewModel) gin.H {
		return gin.H{"hourly_sales": vm.HourlySales}
	})
}

// GetDailySales returns the per-weekday sales chart only.
// @Summary Get daily sales
// @Tags Dashboard
// @Param id path string true "Merchant ID"
// @Router /merchants/{id}/dashboard/daily-sales [get]
func (h *DashboardHandler) GetDailySales(c *gin.Context) {
	h.section(c, func(vm *services.DashboardViewModel) gin.H {
		return gin.H{"daily_sales": vm.DailySales}
	})
}

// GetTopItems returns the top-selling items table only.
// @Summary Get top items
// @Tags Dashboard
// @Param id path string true "Merchant ID"
// @Router /merchants/{id}/dashboard/top-items [get]
func (h *DashboardHandler) GetTopItems(c *gin.Context) {
	h.section(c, func(vm *services.DashboardViewModel) gin.H {
		return gin.H{"top_items": vm.TopItems}
	})
}

// GetInsights returns the combined curated and generated insights.
// @Summary Get insights
// @Tags Dashboard
// @Param id path string true "Merchant ID"
// @Router /merchants/{id}/dashboard/insights [get]
func (h *DashboardHandler) GetInsights(c *gin.Context) {
	h.section(c, func(vm *services.DashboardViewModel) gin.H {
		return gin.H{"insights": vm.Insights}
	})
}

// section serves one slice of the view model, sharing the cache with the
// full dashboard endpoint.
func (h *DashboardHandler) section(c *gin.Context, pick func(*services.DashboardViewModel) gin.H) {
	merchantID := c.Param("id")
	filter := c.DefaultQuery("filter", "week")

	vm, err := h.dashboards.GetDashboard(c.Request.Context(), merchantID, filter, false)
	if err != nil {
		h.respondError(c, merchantID, err)
		return
	}

	body := pick(vm)
	body["filter"] = vm.Filter
	body["formatted_range"] = vm.FormattedRange
	c.JSON(http.StatusOK, body)
}

func (h *DashboardHandler) respondError(c *gin.Context, merchantID string, err error) {
	h.logger.Error("failed to load dashboard data",
		zap.Error(err),
		zap.String("merchant_id", merchantID),
	)

	if errors.Is(err, dataset.ErrDataNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Failed to load dashboard data"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard data"})
}
