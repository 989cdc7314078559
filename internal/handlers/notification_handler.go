package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sajian-platform/service-dashboard/internal/services"
)

// NotificationHandler handles the notification feed endpoints.
type NotificationHandler struct {
	notifications *services.NotificationService
	logger        *zap.Logger
}

// NewNotificationHandler creates a new notification handler.
func NewNotificationHandler(notifications *services.NotificationService, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{notifications: notifications, logger: logger}
}

// GetNotifications lists a merchant's notifications, newest first.
// @Summary List notifications
// @Tags Notifications
// @Param id path string true "Merchant ID"
// @Router /merchants/{id}/notifications [get]
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	merchantID := c.Param("id")

	c.JSON(http.StatusOK, gin.H{
		"notifications": h.notifications.List(merchantID),
		"unread_count":  h.notifications.UnreadCount(merchantID),
	})
}

// MarkRead marks one notification as read.
// @Summary Mark notification read
// @Tags Notifications
// @Param id path string true "Merchant ID"
// @Param nid path string true "Notification ID"
// @Router /merchants/{id}/notifications/{nid}/read [post]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	merchantID := c.Param("id")
	notificationID := c.Param("nid")

	if err := h.notifications.MarkRead(merchantID, notificationID); err != nil {
		if errors.Is(err, services.ErrNotificationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
			return
		}
		h.logger.Error("failed to mark notification read", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark notification read"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "read"})
}

// MarkAllRead marks every notification for the merchant as read.
// @Summary Mark all notifications read
// @Tags Notifications
// @Param id path string true "Merchant ID"
// @Router /merchants/{id}/notifications/read-all [post]
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	merchantID := c.Param("id")
	h.notifications.MarkAllRead(merchantID)

	c.JSON(http.StatusOK, gin.H{"status": "read", "unread_count": 0})
}
