package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification types emitted by the promotion lifecycle. Other types
// (announcements, course updates) are free-form strings chosen by admins.
const (
	TypeAIPromotionStarted      = "ai-promotion-started"
	TypeAIPromotionEnded        = "ai-promotion-ended"
	TypePremiumPromotionStarted = "premium-promotion-started"
	TypePremiumPromotionEnded   = "premium-promotion-ended"
)

// NotificationMetadata carries promotion context on lifecycle notifications.
type NotificationMetadata struct {
	FeatureType   string     `bson:"featureType,omitempty" json:"featureType,omitempty"`
	DurationValue int        `bson:"durationValue,omitempty" json:"durationValue,omitempty"`
	DurationUnit  string     `bson:"durationUnit,omitempty" json:"durationUnit,omitempty"`
	StartedAt     *time.Time `bson:"startedAt,omitempty" json:"startedAt,omitempty"`
	EndsAt        *time.Time `bson:"endsAt,omitempty" json:"endsAt,omitempty"`
	Marker        string     `bson:"marker,omitempty" json:"marker,omitempty"`
}

// Notification represents an in-app notification record. Records are
// append-only; they are never mutated after creation apart from readBy.
type Notification struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id,omitempty"`
	Message     string               `bson:"message" json:"message"`
	Type        string               `bson:"type" json:"type"`
	ForAllUsers bool                 `bson:"forAllUsers" json:"forAllUsers"`
	UserID      primitive.ObjectID   `bson:"userId,omitempty" json:"userId,omitempty"`
	Metadata    NotificationMetadata `bson:"metadata,omitempty" json:"metadata,omitempty"`
	// DedupKey uniquely identifies a promotion-ended transition
	// (featureType:ended:<start unix nano>); checked before insert so that
	// racing expiry triggers persist at most one record.
	DedupKey  string               `bson:"dedupKey,omitempty" json:"-"`
	ReadBy    []primitive.ObjectID `bson:"readBy,omitempty" json:"-"`
	CreatedAt time.Time            `bson:"createdAt" json:"createdAt"`
	ExpiresAt *time.Time           `bson:"expiresAt,omitempty" json:"expiresAt,omitempty"`
}

// CreateNotificationRequest is the admin request body for POST /notifications.
type CreateNotificationRequest struct {
	Message     string     `json:"message" binding:"required"`
	Type        string     `json:"type" binding:"required"`
	ForAllUsers bool       `json:"forAllUsers"`
	UserID      string     `json:"userId,omitempty"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
}
