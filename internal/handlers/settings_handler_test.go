package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/edubridge/lms-backend/internal/models"
	"github.com/edubridge/lms-backend/internal/promotion"
	"github.com/edubridge/lms-backend/internal/repositories"
	"github.com/edubridge/lms-backend/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSettingsService returns canned responses so handler mapping can be
// tested without a store.
type stubSettingsService struct {
	settings     *models.PlatformSettings
	updateErr    error
	expireResult *services.AutoExpireResult
	expireErr    error
}

var _ services.SettingsService = (*stubSettingsService)(nil)

func (s *stubSettingsService) GetSettings(ctx context.Context) (*models.PlatformSettings, error) {
	if s.settings == nil {
		return nil, repositories.ErrNotFound
	}
	return s.settings, nil
}

func (s *stubSettingsService) UpdateSection(ctx context.Context, section string, upd *models.SettingsUpdate, updatedBy string) (*models.PlatformSettings, error) {
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	return s.settings, nil
}

func (s *stubSettingsService) AutoExpire(ctx context.Context, feature promotion.FeatureType) (*services.AutoExpireResult, error) {
	if s.expireErr != nil {
		return nil, s.expireErr
	}
	return s.expireResult, nil
}

func settingsTestRouter(svc services.SettingsService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewSettingsHandler(svc)
	router := gin.New()
	router.GET("/settings", handler.GetSettings)
	router.PUT("/settings/auto-expire-promotion", handler.AutoExpirePromotion)
	router.PUT("/settings/:section", handler.UpdateSection)
	return router
}

func performJSON(t *testing.T, router *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	return w, parsed
}

func TestGetSettingsNotFound(t *testing.T) {
	router := settingsTestRouter(&stubSettingsService{})

	w, body := performJSON(t, router, http.MethodGet, "/settings", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Settings not found", body["error"])
}

func TestGetSettingsOK(t *testing.T) {
	router := settingsTestRouter(&stubSettingsService{settings: models.DefaultPlatformSettings()})

	w, body := performJSON(t, router, http.MethodGet, "/settings", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "EduBridge", body["platformName"])
}

func TestUpdateSectionValidationError(t *testing.T) {
	router := settingsTestRouter(&stubSettingsService{
		updateErr: &promotion.ValidationError{Message: "Promotion duration required when setting AI to Everyone"},
	})

	w, body := performJSON(t, router, http.MethodPut, "/settings/ai-assistant", `{"aiAccessMode":"Everyone"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Promotion duration required when setting AI to Everyone", body["error"])
}

func TestUpdateSectionOK(t *testing.T) {
	router := settingsTestRouter(&stubSettingsService{settings: models.DefaultPlatformSettings()})

	w, body := performJSON(t, router, http.MethodPut, "/settings/platform", `{"platformName":"Renamed"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Contains(t, body, "settings")
}

func TestAutoExpireMissingPromotionType(t *testing.T) {
	router := settingsTestRouter(&stubSettingsService{})

	w, body := performJSON(t, router, http.MethodPut, "/settings/auto-expire-promotion", `{}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "promotionType is required", body["message"])
}

func TestAutoExpireUnknownPromotionType(t *testing.T) {
	router := settingsTestRouter(&stubSettingsService{})

	w, body := performJSON(t, router, http.MethodPut, "/settings/auto-expire-promotion", `{"promotionType":"weekend-sale"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Unknown promotion type: weekend-sale", body["message"])
}

func TestAutoExpireServiceErrorStaysHTTP200(t *testing.T) {
	router := settingsTestRouter(&stubSettingsService{expireErr: assert.AnError})

	w, body := performJSON(t, router, http.MethodPut, "/settings/auto-expire-promotion", `{"promotionType":"ai-assistant"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["message"], "Auto-expire check failed")
}

func TestAutoExpireActivePromotionReportsTimeLeft(t *testing.T) {
	timeLeft := 30 * time.Second
	router := settingsTestRouter(&stubSettingsService{
		expireResult: &services.AutoExpireResult{
			Message:  "AI assistant promotion still active",
			TimeLeft: &timeLeft,
			Settings: models.DefaultPlatformSettings(),
		},
	})

	w, body := performJSON(t, router, http.MethodPut, "/settings/auto-expire-promotion", `{"promotionType":"ai-assistant"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(30000), body["timeLeft"])
}

func TestAutoExpireExpiredPromotion(t *testing.T) {
	router := settingsTestRouter(&stubSettingsService{
		expireResult: &services.AutoExpireResult{
			Expired:  true,
			Message:  "AI assistant promotion expired and was disabled",
			Settings: models.DefaultPlatformSettings(),
		},
	})

	w, body := performJSON(t, router, http.MethodPut, "/settings/auto-expire-promotion", `{"promotionType":"ai-assistant"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.NotContains(t, body, "timeLeft")
	assert.Contains(t, body, "settings")
}
