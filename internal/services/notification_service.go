package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/edubridge/lms-backend/internal/models"
	"github.com/edubridge/lms-backend/internal/promotion"
	"github.com/edubridge/lms-backend/internal/repositories"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Compile-time check to ensure notificationService implements NotificationService
var _ NotificationService = (*notificationService)(nil)

type notificationService struct {
	notificationRepo repositories.NotificationRepository
	now              func() time.Time
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notificationRepo repositories.NotificationRepository) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		now:              time.Now,
	}
}

// EmitPromotionStart records a promotion-started notification
func (s *notificationService) EmitPromotionStart(ctx context.Context, message string, meta models.NotificationMetadata) *models.Notification {
	meta.Marker = uuid.NewString()
	notification := &models.Notification{
		Message:     message,
		Type:        startType(meta.FeatureType),
		ForAllUsers: true,
		Metadata:    meta,
		CreatedAt:   s.now(),
		ExpiresAt:   meta.EndsAt,
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		log.Printf("[WARN] EmitPromotionStart: notification store unavailable, dropping %q: %v", notification.Type, err)
		return nil
	}
	return notification
}

// EmitPromotionEnd records a promotion-ended notification, deduplicated by an
// idempotency key so racing expiry triggers persist at most one record.
func (s *notificationService) EmitPromotionEnd(ctx context.Context, message string, meta models.NotificationMetadata) *models.Notification {
	key := endDedupKey(meta)

	existing, err := s.notificationRepo.FindByDedupKey(ctx, key)
	if err == nil {
		return existing
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		log.Printf("[WARN] EmitPromotionEnd: dedup lookup failed for %q: %v", key, err)
		return nil
	}

	meta.Marker = uuid.NewString()
	notification := &models.Notification{
		Message:     message,
		Type:        endType(meta.FeatureType),
		ForAllUsers: true,
		Metadata:    meta,
		DedupKey:    key,
		CreatedAt:   s.now(),
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		log.Printf("[WARN] EmitPromotionEnd: notification store unavailable, dropping %q: %v", notification.Type, err)
		return nil
	}
	return notification
}

// Create persists an admin-authored notification
func (s *notificationService) Create(ctx context.Context, req *models.CreateNotificationRequest) (*models.Notification, error) {
	notification := &models.Notification{
		Message:     req.Message,
		Type:        req.Type,
		ForAllUsers: req.ForAllUsers,
		CreatedAt:   s.now(),
		ExpiresAt:   req.ExpiresAt,
	}
	if req.UserID != "" {
		userID, err := primitive.ObjectIDFromHex(req.UserID)
		if err != nil {
			return nil, &promotion.ValidationError{Message: "invalid userId"}
		}
		notification.UserID = userID
	}
	if !notification.ForAllUsers && notification.UserID.IsZero() {
		return nil, &promotion.ValidationError{Message: "notification needs a userId or forAllUsers"}
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return nil, err
	}
	return notification, nil
}

// GetActiveForUser retrieves unexpired notifications visible to the user
func (s *notificationService) GetActiveForUser(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]*models.Notification, error) {
	return s.notificationRepo.FindActiveForUser(ctx, userID, s.now(), page, limit)
}

// GetByType retrieves notifications by type with pagination
func (s *notificationService) GetByType(ctx context.Context, notificationType string, page, limit int) ([]*models.Notification, error) {
	return s.notificationRepo.FindByType(ctx, notificationType, page, limit)
}

// MarkRead records that the user has read the notification
func (s *notificationService) MarkRead(ctx context.Context, id, userID primitive.ObjectID) error {
	return s.notificationRepo.MarkRead(ctx, id, userID)
}

// endDedupKey builds the idempotency key for a promotion-ended transition.
// A promotion lifetime is uniquely identified by its feature and start time.
func endDedupKey(meta models.NotificationMetadata) string {
	var startNanos int64
	if meta.StartedAt != nil {
		startNanos = meta.StartedAt.UnixNano()
	}
	return fmt.Sprintf("%s:ended:%d", meta.FeatureType, startNanos)
}

func startType(featureType string) string {
	if featureType == string(promotion.FeaturePremiumTrial) {
		return models.TypePremiumPromotionStarted
	}
	return models.TypeAIPromotionStarted
}

func endType(featureType string) string {
	if featureType == string(promotion.FeaturePremiumTrial) {
		return models.TypePremiumPromotionEnded
	}
	return models.TypeAIPromotionEnded
}
