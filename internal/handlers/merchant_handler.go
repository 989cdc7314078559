package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sajian-platform/service-dashboard/internal/dataset"
	"github.com/sajian-platform/service-dashboard/internal/services"
)

// MerchantHandler handles the merchant catalog endpoints.
type MerchantHandler struct {
	catalog *services.MerchantCatalog
	logger  *zap.Logger
}

// NewMerchantHandler creates a new merchant handler.
func NewMerchantHandler(catalog *services.MerchantCatalog, logger *zap.Logger) *MerchantHandler {
	return &MerchantHandler{catalog: catalog, logger: logger}
}

// GetMerchants returns all merchants.
// @Summary List merchants
// @Tags Merchants
// @Success 200 {object} gin.H
// @Router /merchants [get]
func (h *MerchantHandler) GetMerchants(c *gin.Context) {
	merchants, err := h.catalog.GetMerchants(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list merchants", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list merchants"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"merchants": merchants})
}

// GetMerchant returns one merchant by ID.
// @Summary Get merchant
// @Tags Merchants
// @Param id path string true "Merchant ID"
// @Router /merchants/{id} [get]
func (h *MerchantHandler) GetMerchant(c *gin.Context) {
	merchant, err := h.catalog.GetMerchant(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, dataset.ErrDataNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Merchant not found"})
			return
		}
		h.logger.Error("failed to get merchant", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get merchant"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"merchant": merchant})
}
