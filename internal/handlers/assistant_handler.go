package handlers

import (
	"net/http"
	"time"

	"github.com/edubridge/lms-backend/internal/models"
	"github.com/edubridge/lms-backend/internal/promotion"
	"github.com/edubridge/lms-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// AssistantHandler gates access to the AI assistant. The vendor-facing proxy
// lives elsewhere; this endpoint only answers whether the caller may use it.
type AssistantHandler struct {
	settingsService services.SettingsService
	userService     services.UserService
}

// NewAssistantHandler creates a new AssistantHandler
func NewAssistantHandler(settingsService services.SettingsService, userService services.UserService) *AssistantHandler {
	return &AssistantHandler{
		settingsService: settingsService,
		userService:     userService,
	}
}

// GetAccess handles GET /ai-assistant/access
func (h *AssistantHandler) GetAccess(c *gin.Context) {
	user, ok := currentUser(c, h.userService)
	if !ok {
		return
	}

	settings, err := h.settingsService.GetSettings(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get settings: " + err.Error()})
		return
	}

	if !settings.AIAssistantEnabled {
		c.JSON(http.StatusOK, gin.H{"allowed": false, "reason": "ai-assistant-disabled"})
		return
	}

	status := promotion.Evaluate(settings, promotion.FeatureAIAssistant, time.Now())
	switch {
	case status.Active && !status.HasExpired:
		c.JSON(http.StatusOK, gin.H{
			"allowed":    true,
			"reason":     "promotion",
			"dailyLimit": settings.AIDailyMessageLimit,
			"promotion":  status,
		})
	case user.IsPremium:
		c.JSON(http.StatusOK, gin.H{
			"allowed":    true,
			"reason":     "premium",
			"dailyLimit": settings.AIDailyMessageLimit,
		})
	default:
		c.JSON(http.StatusOK, gin.H{"allowed": false, "reason": models.AIAccessPremiumOnly})
	}
}
