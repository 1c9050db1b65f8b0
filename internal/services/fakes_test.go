package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/edubridge/lms-backend/internal/models"
	"github.com/edubridge/lms-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeSettingsRepo is an in-memory PlatformSettingsRepository with the same
// conditional-update semantics as the Mongo implementation.
type fakeSettingsRepo struct {
	mu  sync.Mutex
	doc *models.PlatformSettings
	err error // forced error on every call when set
}

var _ repositories.PlatformSettingsRepository = (*fakeSettingsRepo)(nil)

func (r *fakeSettingsRepo) Get(ctx context.Context) (*models.PlatformSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	if r.doc == nil {
		return nil, repositories.ErrNotFound
	}
	copy := *r.doc
	return &copy, nil
}

func (r *fakeSettingsRepo) Bootstrap(ctx context.Context) (*models.PlatformSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.doc == nil {
		r.doc = models.DefaultPlatformSettings()
	}
	copy := *r.doc
	return &copy, nil
}

func (r *fakeSettingsRepo) ApplyPatch(ctx context.Context, patch map[string]interface{}, updatedBy string) (*models.PlatformSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	if r.doc == nil {
		return nil, repositories.ErrNotFound
	}
	for field, value := range patch {
		applyField(r.doc, field, value)
	}
	r.doc.UpdatedAt = time.Now()
	r.doc.UpdatedBy = updatedBy
	copy := *r.doc
	return &copy, nil
}

func (r *fakeSettingsRepo) ApplyPatchIf(ctx context.Context, expected map[string]interface{}, patch map[string]interface{}, updatedBy string) (*models.PlatformSettings, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, false, r.err
	}
	if r.doc == nil {
		return nil, false, repositories.ErrNotFound
	}
	for field, want := range expected {
		if !fieldEquals(r.doc, field, want) {
			copy := *r.doc
			return &copy, false, nil
		}
	}
	for field, value := range patch {
		applyField(r.doc, field, value)
	}
	r.doc.UpdatedAt = time.Now()
	r.doc.UpdatedBy = updatedBy
	copy := *r.doc
	return &copy, true, nil
}

func applyField(doc *models.PlatformSettings, field string, value interface{}) {
	switch field {
	case "platformName":
		doc.PlatformName = value.(string)
	case "maintenanceMode":
		doc.MaintenanceMode = value.(bool)
	case "allowRegistration":
		doc.AllowRegistration = value.(bool)
	case "supportEmail":
		doc.SupportEmail = value.(string)
	case "certificatesEnabled":
		doc.CertificatesEnabled = value.(bool)
	case "certificateMinScore":
		doc.CertificateMinScore = value.(int)
	case "newsEnabled":
		doc.NewsEnabled = value.(bool)
	case "careersEnabled":
		doc.CareersEnabled = value.(bool)
	case "aiAssistantEnabled":
		doc.AIAssistantEnabled = value.(bool)
	case "aiDailyMessageLimit":
		doc.AIDailyMessageLimit = value.(int)
	case "aiAccessMode":
		doc.AIAccessMode = value.(string)
	case "aiPromotionStartedAt":
		doc.AIPromotionStartedAt = toTimePtr(value)
	case "aiPromotionDurationValue":
		doc.AIPromotionDurationValue = toIntPtr(value)
	case "aiPromotionDurationUnit":
		doc.AIPromotionDurationUnit = toStrPtr(value)
	case "enablePremiumForAll":
		doc.EnablePremiumForAll = value.(bool)
	case "premiumPromotionActive":
		doc.PremiumPromotionActive = value.(bool)
	case "premiumPromotionStartAt":
		doc.PremiumPromotionStartAt = toTimePtr(value)
	case "premiumPromotionEndAt":
		doc.PremiumPromotionEndAt = toTimePtr(value)
	case "premiumPromotionDurationValue":
		doc.PremiumPromotionDurationValue = toIntPtr(value)
	case "premiumPromotionDurationUnit":
		doc.PremiumPromotionDurationUnit = toStrPtr(value)
	default:
		panic("fakeSettingsRepo: unknown field " + field)
	}
}

func fieldEquals(doc *models.PlatformSettings, field string, want interface{}) bool {
	switch field {
	case "aiPromotionStartedAt":
		return timePtrEquals(doc.AIPromotionStartedAt, want)
	case "premiumPromotionStartAt":
		return timePtrEquals(doc.PremiumPromotionStartAt, want)
	default:
		panic("fakeSettingsRepo: unexpected guard field " + field)
	}
}

func timePtrEquals(current *time.Time, want interface{}) bool {
	if want == nil {
		return current == nil
	}
	wantTime, ok := want.(time.Time)
	if !ok {
		return false
	}
	return current != nil && current.Equal(wantTime)
}

func toTimePtr(value interface{}) *time.Time {
	if value == nil {
		return nil
	}
	t := value.(time.Time)
	return &t
}

func toIntPtr(value interface{}) *int {
	if value == nil {
		return nil
	}
	v := value.(int)
	return &v
}

func toStrPtr(value interface{}) *string {
	if value == nil {
		return nil
	}
	s := value.(string)
	return &s
}

// fakeNotificationRepo is an in-memory NotificationRepository enforcing the
// dedupKey uniqueness the Mongo index provides.
type fakeNotificationRepo struct {
	mu      sync.Mutex
	created []*models.Notification
	err     error // forced error on every call when set
}

var _ repositories.NotificationRepository = (*fakeNotificationRepo)(nil)

func (r *fakeNotificationRepo) Create(ctx context.Context, notification *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	if notification.DedupKey != "" {
		for _, existing := range r.created {
			if existing.DedupKey == notification.DedupKey {
				return errors.New("duplicate key")
			}
		}
	}
	notification.ID = primitive.NewObjectID()
	copy := *notification
	r.created = append(r.created, &copy)
	return nil
}

func (r *fakeNotificationRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.created {
		if n.ID == id {
			copy := *n
			return &copy, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeNotificationRepo) FindByDedupKey(ctx context.Context, key string) (*models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, n := range r.created {
		if n.DedupKey == key {
			copy := *n
			return &copy, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeNotificationRepo) FindActiveForUser(ctx context.Context, userID primitive.ObjectID, now time.Time, page, limit int) ([]*models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Notification
	for _, n := range r.created {
		if !n.ForAllUsers && n.UserID != userID {
			continue
		}
		if n.ExpiresAt != nil && !n.ExpiresAt.After(now) {
			continue
		}
		copy := *n
		out = append(out, &copy)
	}
	return out, nil
}

func (r *fakeNotificationRepo) FindByType(ctx context.Context, notificationType string, page, limit int) ([]*models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Notification
	for _, n := range r.created {
		if n.Type == notificationType {
			copy := *n
			out = append(out, &copy)
		}
	}
	return out, nil
}

func (r *fakeNotificationRepo) MarkRead(ctx context.Context, id, userID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.created {
		if n.ID == id {
			n.ReadBy = append(n.ReadBy, userID)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *fakeNotificationRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.created)), nil
}

func (r *fakeNotificationRepo) countByType(notificationType string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, n := range r.created {
		if n.Type == notificationType {
			count++
		}
	}
	return count
}
