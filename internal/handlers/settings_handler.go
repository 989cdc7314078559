package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sajian-platform/service-dashboard/internal/services"
)

// SettingsHandler handles the merchant settings endpoints.
type SettingsHandler struct {
	settings *services.SettingsService
	logger   *zap.Logger
}

// NewSettingsHandler creates a new settings handler.
func NewSettingsHandler(settings *services.SettingsService, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{settings: settings, logger: logger}
}

// GetSettings returns the merchant's settings, defaults included.
// @Summary Get settings
// @Tags Settings
// @Param id path string true "Merchant ID"
// @Router /merchants/{id}/settings [get]
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"settings": h.settings.Get(c.Param("id"))})
}

// UpdateSettings replaces the merchant's settings.
// @Summary Update settings
// @Tags Settings
// @Param id path string true "Merchant ID"
// @Param body body services.MerchantSettings true "Settings"
// @Router /merchants/{id}/settings [put]
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req services.MerchantSettings
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid settings payload"})
		return
	}

	updated := h.settings.Update(c.Request.Context(), c.Param("id"), req)
	c.JSON(http.StatusOK, gin.H{"settings": updated})
}
