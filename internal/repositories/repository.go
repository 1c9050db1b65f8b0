package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/edubridge/lms-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound is returned when a requested document does not exist. Mongo
// implementations map mongo.ErrNoDocuments to this sentinel.
var ErrNotFound = errors.New("document not found")

// PlatformSettingsRepository defines the interface for the settings singleton.
type PlatformSettingsRepository interface {
	// Get returns the settings document, or ErrNotFound if it was never
	// bootstrapped.
	Get(ctx context.Context) (*models.PlatformSettings, error)

	// Bootstrap inserts the default document if none exists and returns the
	// current one. Called once at startup, never from request paths.
	Bootstrap(ctx context.Context) (*models.PlatformSettings, error)

	// ApplyPatch applies the given field set as one atomic update and returns
	// the post-update document.
	ApplyPatch(ctx context.Context, patch map[string]interface{}, updatedBy string) (*models.PlatformSettings, error)

	// ApplyPatchIf applies the patch only if every expected field still holds
	// its expected value. The bool result reports whether the write happened;
	// when it did not, the returned document is a fresh read.
	ApplyPatchIf(ctx context.Context, expected map[string]interface{}, patch map[string]interface{}, updatedBy string) (*models.PlatformSettings, bool, error)
}

// NotificationRepository defines the interface for notification data operations
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Notification, error)
	FindByDedupKey(ctx context.Context, key string) (*models.Notification, error)
	FindActiveForUser(ctx context.Context, userID primitive.ObjectID, now time.Time, page, limit int) ([]*models.Notification, error)
	FindByType(ctx context.Context, notificationType string, page, limit int) ([]*models.Notification, error)
	MarkRead(ctx context.Context, id, userID primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindAll(ctx context.Context, page, limit int) ([]*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}

// CourseRepository defines the interface for course data operations
type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Course, error)
	FindPublished(ctx context.Context, category string, page, limit int) ([]*models.Course, error)
	FindAll(ctx context.Context, page, limit int) ([]*models.Course, error)
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}

// ChatRepository defines the interface for help-chat message operations
type ChatRepository interface {
	Create(ctx context.Context, message *models.ChatMessage) error
	FindByThread(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]*models.ChatMessage, error)
	FindThreads(ctx context.Context, page, limit int) ([]primitive.ObjectID, error)
	MarkThreadRead(ctx context.Context, userID primitive.ObjectID, fromAdmin bool) error
}
