package handlers

import (
	"errors"
	"net/http"

	"github.com/edubridge/lms-backend/internal/models"
	"github.com/edubridge/lms-backend/internal/promotion"
	"github.com/edubridge/lms-backend/internal/repositories"
	"github.com/edubridge/lms-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// SettingsHandler handles platform settings HTTP requests
type SettingsHandler struct {
	settingsService services.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsService services.SettingsService) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
	}
}

// GetSettings handles GET /settings
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsService.GetSettings(c.Request.Context())
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Settings not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get settings: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, settings)
}

// UpdateSection handles PUT /settings/:section
func (h *SettingsHandler) UpdateSection(c *gin.Context) {
	section := c.Param("section")

	var upd models.SettingsUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updatedBy := c.GetString("userEmail")
	settings, err := h.settingsService.UpdateSection(c.Request.Context(), section, &upd, updatedBy)
	if err != nil {
		switch {
		case services.IsValidationError(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, repositories.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Settings not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update settings: " + err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "settings": settings})
}

// AutoExpirePromotion handles PUT /settings/auto-expire-promotion. Clients
// poll this endpoint routinely, so every outcome is structured JSON with a
// success flag rather than a protocol-level failure.
func (h *SettingsHandler) AutoExpirePromotion(c *gin.Context) {
	var req struct {
		PromotionType string `json:"promotionType" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "promotionType is required"})
		return
	}

	feature := promotion.FeatureType(req.PromotionType)
	if !promotion.Known(feature) {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Unknown promotion type: " + req.PromotionType})
		return
	}

	result, err := h.settingsService.AutoExpire(c.Request.Context(), feature)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Auto-expire check failed: " + err.Error()})
		return
	}

	response := gin.H{
		"success":  true,
		"message":  result.Message,
		"settings": result.Settings,
	}
	if result.TimeLeft != nil {
		response["timeLeft"] = result.TimeLeft.Milliseconds()
	}
	c.JSON(http.StatusOK, response)
}
