package handlers

import (
	"net/http"

	"github.com/edubridge/lms-backend/internal/models"
	"github.com/edubridge/lms-backend/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChatHandler handles help-chat HTTP requests. Real-time delivery is handled
// by a separate transport; these endpoints persist and read the threads.
type ChatHandler struct {
	chatService services.ChatService
	userService services.UserService
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(chatService services.ChatService, userService services.UserService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		userService: userService,
	}
}

// SendMessage handles POST /chat/messages
func (h *ChatHandler) SendMessage(c *gin.Context) {
	sender, ok := currentUser(c, h.userService)
	if !ok {
		return
	}

	var req models.SendChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message, err := h.chatService.SendMessage(c.Request.Context(), sender, &req)
	if err != nil {
		if services.IsValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, message)
}

// GetMyThread handles GET /chat/messages
func (h *ChatHandler) GetMyThread(c *gin.Context) {
	user, ok := currentUser(c, h.userService)
	if !ok {
		return
	}
	page, limit := pagination(c)
	messages, err := h.chatService.GetThread(c.Request.Context(), user, user.ID, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get messages: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, messages)
}

// GetThread handles GET /chat/threads/:userId for admins
func (h *ChatHandler) GetThread(c *gin.Context) {
	admin, ok := currentUser(c, h.userService)
	if !ok {
		return
	}
	userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}
	page, limit := pagination(c)
	messages, err := h.chatService.GetThread(c.Request.Context(), admin, userID, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get messages: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, messages)
}

// ListThreads handles GET /chat/threads for admins
func (h *ChatHandler) ListThreads(c *gin.Context) {
	page, limit := pagination(c)
	threads, err := h.chatService.ListThreads(c.Request.Context(), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list threads: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"threads": threads})
}
