package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dineflow/config"
	"dineflow/models"
	"dineflow/services/agent"
	"dineflow/utils"
)

// ChatHandler exposes the conversational endpoints.
type ChatHandler struct {
	Agent  *agent.Agent
	Logger *zap.Logger
}

func NewChatHandler(a *agent.Agent, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{Agent: a, Logger: logger}
}

// StartConversation handles POST /api/chat/start. It opens a conversation
// and issues the bearer token the rest of the chat endpoints require.
func (h *ChatHandler) StartConversation(c *gin.Context) {
	conv := h.Agent.StartConversation()

	hours := config.AppConfig.ConversationHours
	if hours <= 0 {
		hours = 12
	}
	token, err := utils.GenerateConversationToken(conv.ID, time.Duration(hours)*time.Hour)
	if err != nil {
		h.Logger.Error("StartConversation: token generation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start conversation"})
		return
	}

	c.JSON(http.StatusOK, models.StartConversationResponse{
		ConversationID: conv.ID,
		Token:          token,
	})
}

// Chat handles POST /api/chat.
func (h *ChatHandler) Chat(c *gin.Context) {
	conversationID := c.GetString("conversationID")

	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}

	reply := h.Agent.Chat(c.Request.Context(), conversationID, req.Message)
	c.JSON(http.StatusOK, reply)
}

// Reset handles POST /api/chat/reset.
func (h *ChatHandler) Reset(c *gin.Context) {
	conversationID := c.GetString("conversationID")
	h.Agent.Reset(conversationID)
	c.JSON(http.StatusOK, gin.H{"status": "conversation reset"})
}

// Status handles GET /api/chat/status.
func (h *ChatHandler) Status(c *gin.Context) {
	conversationID := c.GetString("conversationID")
	status, ok := h.Agent.Status(conversationID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "conversation not found"})
		return
	}
	c.JSON(http.StatusOK, status)
}
