package handlers

import (
	"errors"
	"net/http"

	"github.com/edubridge/lms-backend/internal/models"
	"github.com/edubridge/lms-backend/internal/repositories"
	"github.com/edubridge/lms-backend/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notificationService services.NotificationService
	userService         services.UserService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationService services.NotificationService, userService services.UserService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		userService:         userService,
	}
}

// GetMyNotifications handles GET /notifications
func (h *NotificationHandler) GetMyNotifications(c *gin.Context) {
	user, ok := currentUser(c, h.userService)
	if !ok {
		return
	}
	page, limit := pagination(c)
	notifications, err := h.notificationService.GetActiveForUser(c.Request.Context(), user.ID, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get notifications: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, notifications)
}

// MarkRead handles POST /notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	user, ok := currentUser(c, h.userService)
	if !ok {
		return
	}
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification ID"})
		return
	}
	if err := h.notificationService.MarkRead(c.Request.Context(), id, user.ID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark read: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// CreateNotification handles POST /notifications for admins
func (h *NotificationHandler) CreateNotification(c *gin.Context) {
	var req models.CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	notification, err := h.notificationService.Create(c.Request.Context(), &req)
	if err != nil {
		if services.IsValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create notification: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, notification)
}

// GetNotificationsByType handles GET /notifications/type/:type for admins
func (h *NotificationHandler) GetNotificationsByType(c *gin.Context) {
	page, limit := pagination(c)
	notifications, err := h.notificationService.GetByType(c.Request.Context(), c.Param("type"), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get notifications: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, notifications)
}
