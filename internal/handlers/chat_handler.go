package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sajian-platform/service-dashboard/internal/services"
)

// ChatHandler handles the AI-assistant chat panel endpoints.
type ChatHandler struct {
	chat   *services.ChatService
	logger *zap.Logger
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(chat *services.ChatService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{chat: chat, logger: logger}
}

// GetSuggestions returns the suggested questions for the chat panel.
// @Summary Get suggested questions
// @Tags Chat
// @Success 200 {object} gin.H
// @Router /chat/suggestions [get]
func (h *ChatHandler) GetSuggestions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"suggestions": h.chat.Suggestions()})
}

type postMessageRequest struct {
	SessionID  string `json:"session_id"`
	MerchantID string `json:"merchant_id" binding:"required"`
	Text       string `json:"text" binding:"required"`
}

// PostMessage records a user message and returns the assistant's reply.
// @Summary Send a chat message
// @Tags Chat
// @Param body body postMessageRequest true "Message"
// @Success 200 {object} services.ChatMessage
// @Router /chat/messages [post]
func (h *ChatHandler) PostMessage(c *gin.Context) {
	var req postMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "merchant_id and text are required"})
		return
	}

	reply, err := h.chat.Ask(c.Request.Context(), req.SessionID, req.MerchantID, req.Text)
	if err != nil {
		h.logger.Error("failed to answer chat message", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to answer message"})
		return
	}

	c.JSON(http.StatusOK, reply)
}

// GetTranscript returns the recorded messages for a session.
// @Summary Get chat transcript
// @Tags Chat
// @Param session_id path string true "Session ID"
// @Router /chat/sessions/{session_id} [get]
func (h *ChatHandler) GetTranscript(c *gin.Context) {
	sessionID := c.Param("session_id")
	c.JSON(http.StatusOK, gin.H{
		"session_id": sessionID,
		"messages":   h.chat.Transcript(sessionID),
	})
}
