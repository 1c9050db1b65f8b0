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
)

// Settings sections accepted by UpdateSection
const (
	SectionPlatform     = "platform"
	SectionCertificates = "certificates"
	SectionNewsCareers  = "news-careers"
	SectionAIAssistant  = "ai-assistant"
	SectionPremiumTrial = "premium-trial"
)

// ErrInvalidSection is returned for section names outside the whitelist
var ErrInvalidSection = &promotion.ValidationError{Message: "invalid settings section"}

// Compile-time check to ensure settingsService implements SettingsService
var _ SettingsService = (*settingsService)(nil)

type settingsService struct {
	settingsRepo repositories.PlatformSettingsRepository
	notifier     NotificationService
	now          func() time.Time
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(settingsRepo repositories.PlatformSettingsRepository, notifier NotificationService) SettingsService {
	return &settingsService{
		settingsRepo: settingsRepo,
		notifier:     notifier,
		now:          time.Now,
	}
}

// GetSettings retrieves the settings singleton
func (s *settingsService) GetSettings(ctx context.Context) (*models.PlatformSettings, error) {
	return s.settingsRepo.Get(ctx)
}

// pendingEmit is a notification deferred until the settings write succeeded.
type pendingEmit struct {
	message string
	meta    models.NotificationMetadata
}

// UpdateSection merges a section's edits into the settings document as one
// atomic patch. Promotion-affecting sections run the start validator first and
// emit the start notification only after the write persisted.
func (s *settingsService) UpdateSection(ctx context.Context, section string, upd *models.SettingsUpdate, updatedBy string) (*models.PlatformSettings, error) {
	// The document must already exist; bootstrapping happens at startup.
	if _, err := s.settingsRepo.Get(ctx); err != nil {
		return nil, err
	}

	var patch map[string]interface{}
	var emit *pendingEmit
	var err error

	switch section {
	case SectionPlatform:
		patch = platformPatch(upd)
	case SectionCertificates:
		patch = certificatesPatch(upd)
	case SectionNewsCareers:
		patch = newsCareersPatch(upd)
	case SectionAIAssistant:
		patch, emit, err = s.aiAssistantPatch(upd)
	case SectionPremiumTrial:
		patch, emit, err = s.premiumTrialPatch(upd)
	default:
		return nil, ErrInvalidSection
	}
	if err != nil {
		return nil, err
	}
	if len(patch) == 0 {
		return nil, &promotion.ValidationError{Message: "no fields to update for section " + section}
	}

	updated, err := s.settingsRepo.ApplyPatch(ctx, patch, updatedBy)
	if err != nil {
		return nil, err
	}

	// Notification is best effort; the settings write is the source of truth.
	if emit != nil {
		s.notifier.EmitPromotionStart(ctx, emit.message, emit.meta)
	}
	return updated, nil
}

// AutoExpire evaluates one feature's promotion and, if it has elapsed,
// reverts the settings to their defaults and emits the end notification.
// The disable patch is guarded by the observed start timestamp, so of any
// number of concurrent triggers exactly one write lands; the emitter's
// idempotency key absorbs the duplicate notification attempts.
func (s *settingsService) AutoExpire(ctx context.Context, feature promotion.FeatureType) (*AutoExpireResult, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	status := promotion.Evaluate(settings, feature, s.now())
	if !status.Active {
		return &AutoExpireResult{
			Message:  fmt.Sprintf("No active %s promotion", displayName(feature)),
			Settings: settings,
		}, nil
	}
	if !status.HasExpired {
		timeLeft := status.TimeLeft
		return &AutoExpireResult{
			Message:  fmt.Sprintf("%s promotion still active", displayName(feature)),
			TimeLeft: &timeLeft,
			Settings: settings,
		}, nil
	}

	expected := map[string]interface{}{
		promotion.StartField(feature): *status.StartTime,
	}
	updated, applied, err := s.settingsRepo.ApplyPatchIf(ctx, expected, promotion.DisablePatch(feature), "auto-expire")
	if err != nil {
		return nil, err
	}
	if !applied {
		log.Printf("[WARN] AutoExpire: %s promotion already cleared by a concurrent trigger", feature)
	}

	s.notifier.EmitPromotionEnd(ctx,
		fmt.Sprintf("The %s promotion has ended", displayName(feature)),
		models.NotificationMetadata{
			FeatureType:   string(feature),
			DurationValue: status.DurationValue,
			DurationUnit:  status.DurationUnit,
			StartedAt:     status.StartTime,
			EndsAt:        status.EndTime,
		})

	// Re-read to confirm the persisted state is what callers will observe.
	confirmed, err := s.settingsRepo.Get(ctx)
	if err != nil {
		log.Printf("[WARN] AutoExpire: confirmation read failed: %v", err)
		confirmed = updated
	}
	return &AutoExpireResult{
		Expired:  true,
		Message:  fmt.Sprintf("%s promotion expired and was disabled", displayName(feature)),
		Settings: confirmed,
	}, nil
}

func platformPatch(upd *models.SettingsUpdate) map[string]interface{} {
	patch := map[string]interface{}{}
	if upd.PlatformName != nil {
		patch["platformName"] = *upd.PlatformName
	}
	if upd.MaintenanceMode != nil {
		patch["maintenanceMode"] = *upd.MaintenanceMode
	}
	if upd.AllowRegistration != nil {
		patch["allowRegistration"] = *upd.AllowRegistration
	}
	if upd.SupportEmail != nil {
		patch["supportEmail"] = *upd.SupportEmail
	}
	return patch
}

func certificatesPatch(upd *models.SettingsUpdate) map[string]interface{} {
	patch := map[string]interface{}{}
	if upd.CertificatesEnabled != nil {
		patch["certificatesEnabled"] = *upd.CertificatesEnabled
	}
	if upd.CertificateMinScore != nil {
		patch["certificateMinScore"] = *upd.CertificateMinScore
	}
	return patch
}

func newsCareersPatch(upd *models.SettingsUpdate) map[string]interface{} {
	patch := map[string]interface{}{}
	if upd.NewsEnabled != nil {
		patch["newsEnabled"] = *upd.NewsEnabled
	}
	if upd.CareersEnabled != nil {
		patch["careersEnabled"] = *upd.CareersEnabled
	}
	return patch
}

// aiAssistantPatch builds the ai-assistant section patch. Switching the access
// mode to Everyone starts a promotion: the full field quad goes into the same
// atomic patch. Switching back to PremiumOnly always merges the disable reset,
// whether or not a promotion was running.
func (s *settingsService) aiAssistantPatch(upd *models.SettingsUpdate) (map[string]interface{}, *pendingEmit, error) {
	patch := map[string]interface{}{}
	if upd.AIAssistantEnabled != nil {
		patch["aiAssistantEnabled"] = *upd.AIAssistantEnabled
	}
	if upd.AIDailyMessageLimit != nil {
		patch["aiDailyMessageLimit"] = *upd.AIDailyMessageLimit
	}
	if upd.AIAccessMode == nil {
		return patch, nil, nil
	}

	switch *upd.AIAccessMode {
	case models.AIAccessEveryone:
		if err := promotion.ValidateStart(promotion.FeatureAIAssistant, upd); err != nil {
			return nil, nil, err
		}
		start := s.now()
		value := *upd.AIPromotionDurationValue
		unit := promotion.UnitDays
		if upd.AIPromotionDurationUnit != nil {
			unit = *upd.AIPromotionDurationUnit
		}
		end := promotion.EndTime(start, value, unit)

		patch["aiAccessMode"] = models.AIAccessEveryone
		patch["aiPromotionStartedAt"] = start
		patch["aiPromotionDurationValue"] = value
		patch["aiPromotionDurationUnit"] = unit

		emit := &pendingEmit{
			message: fmt.Sprintf("AI assistant is now available to everyone for %d %s", value, unit),
			meta: models.NotificationMetadata{
				FeatureType:   string(promotion.FeatureAIAssistant),
				DurationValue: value,
				DurationUnit:  unit,
				StartedAt:     &start,
				EndsAt:        &end,
			},
		}
		return patch, emit, nil

	case models.AIAccessPremiumOnly:
		for field, value := range promotion.DisablePatch(promotion.FeatureAIAssistant) {
			patch[field] = value
		}
		return patch, nil, nil

	default:
		return nil, nil, &promotion.ValidationError{Message: "aiAccessMode must be PremiumOnly or Everyone"}
	}
}

// premiumTrialPatch mirrors aiAssistantPatch for the premium-trial section.
func (s *settingsService) premiumTrialPatch(upd *models.SettingsUpdate) (map[string]interface{}, *pendingEmit, error) {
	patch := map[string]interface{}{}
	if upd.EnablePremiumForAll == nil {
		return patch, nil, nil
	}

	if !*upd.EnablePremiumForAll {
		for field, value := range promotion.DisablePatch(promotion.FeaturePremiumTrial) {
			patch[field] = value
		}
		return patch, nil, nil
	}

	if err := promotion.ValidateStart(promotion.FeaturePremiumTrial, upd); err != nil {
		return nil, nil, err
	}
	start := s.now()
	value := *upd.PremiumPromotionDurationValue
	unit := promotion.UnitDays
	if upd.PremiumPromotionDurationUnit != nil {
		unit = *upd.PremiumPromotionDurationUnit
	}
	end := promotion.EndTime(start, value, unit)

	patch["enablePremiumForAll"] = true
	patch["premiumPromotionActive"] = true
	patch["premiumPromotionStartAt"] = start
	patch["premiumPromotionEndAt"] = end
	patch["premiumPromotionDurationValue"] = value
	patch["premiumPromotionDurationUnit"] = unit

	emit := &pendingEmit{
		message: fmt.Sprintf("Premium access is now enabled for all users for %d %s", value, unit),
		meta: models.NotificationMetadata{
			FeatureType:   string(promotion.FeaturePremiumTrial),
			DurationValue: value,
			DurationUnit:  unit,
			StartedAt:     &start,
			EndsAt:        &end,
		},
	}
	return patch, emit, nil
}

func displayName(feature promotion.FeatureType) string {
	if feature == promotion.FeaturePremiumTrial {
		return "premium trial"
	}
	return "AI assistant"
}

// IsValidationError reports whether err should surface as a 4xx to callers
func IsValidationError(err error) bool {
	var ve *promotion.ValidationError
	return errors.As(err, &ve)
}
