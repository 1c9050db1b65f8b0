package services

import (
	"context"
	"time"

	"github.com/edubridge/lms-backend/internal/models"
	"github.com/edubridge/lms-backend/internal/promotion"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SettingsService defines the interface for platform settings operations
type SettingsService interface {
	// GetSettings retrieves the settings singleton
	GetSettings(ctx context.Context) (*models.PlatformSettings, error)

	// UpdateSection merges a section's edits into the settings document,
	// running promotion validation and notification emission as needed
	UpdateSection(ctx context.Context, section string, upd *models.SettingsUpdate, updatedBy string) (*models.PlatformSettings, error)

	// AutoExpire checks one feature's promotion and disables it if elapsed.
	// Safe to call concurrently from the periodic sweep and client triggers.
	AutoExpire(ctx context.Context, feature promotion.FeatureType) (*AutoExpireResult, error)
}

// AutoExpireResult reports the outcome of an auto-expire check
type AutoExpireResult struct {
	Expired  bool
	Message  string
	TimeLeft *time.Duration
	Settings *models.PlatformSettings
}

// NotificationService defines the interface for notification operations
type NotificationService interface {
	// EmitPromotionStart records a promotion-started notification. Each
	// admin-initiated start is a distinct action, so no deduplication.
	// Store failures are logged and yield nil; they never block the caller.
	EmitPromotionStart(ctx context.Context, message string, meta models.NotificationMetadata) *models.Notification

	// EmitPromotionEnd records a promotion-ended notification at most once
	// per promotion lifetime, keyed on feature type and start timestamp.
	// Store failures are logged and yield nil.
	EmitPromotionEnd(ctx context.Context, message string, meta models.NotificationMetadata) *models.Notification

	Create(ctx context.Context, req *models.CreateNotificationRequest) (*models.Notification, error)
	GetActiveForUser(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]*models.Notification, error)
	GetByType(ctx context.Context, notificationType string, page, limit int) ([]*models.Notification, error)
	MarkRead(ctx context.Context, id, userID primitive.ObjectID) error
}
