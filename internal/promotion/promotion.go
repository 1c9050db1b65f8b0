package promotion

import (
	"time"

	"github.com/edubridge/lms-backend/internal/models"
)

// FeatureType identifies which promotion an operation concerns.
type FeatureType string

const (
	FeatureAIAssistant  FeatureType = "ai-assistant"
	FeaturePremiumTrial FeatureType = "premium-trial"
)

// Duration units accepted for promotion lifetimes.
const (
	UnitMinutes = "minutes"
	UnitHours   = "hours"
	UnitDays    = "days"
)

// DefaultDurationValue is the historical fallback applied when a stored
// promotion carries a non-positive duration. The start validator keeps this
// unreachable on the admin path; it only ever applies to legacy documents.
const DefaultDurationValue = 7

// ValidationError reports a rejected promotion activation or section update.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// EndTime computes the absolute end of a promotion from its start, duration
// value and unit. Unrecognized units fall back to days; non-positive values
// fall back to DefaultDurationValue.
func EndTime(start time.Time, value int, unit string) time.Time {
	if value <= 0 {
		value = DefaultDurationValue
	}
	switch unit {
	case UnitMinutes:
		return start.Add(time.Duration(value) * time.Minute)
	case UnitHours:
		return start.Add(time.Duration(value) * time.Hour)
	default:
		return start.Add(time.Duration(value) * 24 * time.Hour)
	}
}

// Status is the result of evaluating a settings snapshot for one feature.
// When Active is false every other field is zero; that is the normal
// "no promotion running" state, not an error.
type Status struct {
	Active        bool           `json:"active"`
	HasExpired    bool           `json:"hasExpired"`
	TimeLeft      time.Duration  `json:"timeLeft"` // may be negative once expired
	StartTime     *time.Time     `json:"startTime,omitempty"`
	EndTime       *time.Time     `json:"endTime,omitempty"`
	DurationValue int            `json:"durationValue,omitempty"`
	DurationUnit  string         `json:"durationUnit,omitempty"`
}

// Evaluate reports whether a promotion is currently running for the given
// feature and, if so, whether it has already elapsed at the given instant.
// Unknown feature types yield the inactive zero Status.
func Evaluate(s *models.PlatformSettings, feature FeatureType, now time.Time) Status {
	var start *time.Time
	var value *int
	var unit *string

	switch feature {
	case FeatureAIAssistant:
		if s.AIAccessMode != models.AIAccessEveryone {
			return Status{}
		}
		start, value, unit = s.AIPromotionStartedAt, s.AIPromotionDurationValue, s.AIPromotionDurationUnit
	case FeaturePremiumTrial:
		if !s.EnablePremiumForAll {
			return Status{}
		}
		start, value, unit = s.PremiumPromotionStartAt, s.PremiumPromotionDurationValue, s.PremiumPromotionDurationUnit
	default:
		return Status{}
	}

	if start == nil || value == nil || *value <= 0 {
		return Status{}
	}

	u := UnitDays
	if unit != nil {
		u = *unit
	}
	end := EndTime(*start, *value, u)

	return Status{
		Active:        true,
		HasExpired:    !now.Before(end),
		TimeLeft:      end.Sub(now),
		StartTime:     start,
		EndTime:       &end,
		DurationValue: *value,
		DurationUnit:  u,
	}
}

// ValidateStart checks that an update which starts a promotion carries a
// positive duration. Updates that do not attempt to start the feature's
// promotion pass unconditionally.
func ValidateStart(feature FeatureType, upd *models.SettingsUpdate) error {
	switch feature {
	case FeatureAIAssistant:
		if upd.AIAccessMode == nil || *upd.AIAccessMode != models.AIAccessEveryone {
			return nil
		}
		if upd.AIPromotionDurationValue == nil || *upd.AIPromotionDurationValue <= 0 {
			return &ValidationError{Message: "Promotion duration required when setting AI to Everyone"}
		}
	case FeaturePremiumTrial:
		if upd.EnablePremiumForAll == nil || !*upd.EnablePremiumForAll {
			return nil
		}
		if upd.PremiumPromotionDurationValue == nil || *upd.PremiumPromotionDurationValue <= 0 {
			return &ValidationError{Message: "Promotion duration required when enabling premium for all users"}
		}
	}
	return nil
}

// DisablePatch computes the field resets that turn a feature's promotion off
// and restore the default access mode. The patch clears already-null fields
// to null, so applying it repeatedly is harmless.
func DisablePatch(feature FeatureType) map[string]interface{} {
	switch feature {
	case FeatureAIAssistant:
		return map[string]interface{}{
			"aiAccessMode":             models.AIAccessPremiumOnly,
			"aiPromotionStartedAt":     nil,
			"aiPromotionDurationValue": nil,
			"aiPromotionDurationUnit":  nil,
		}
	case FeaturePremiumTrial:
		return map[string]interface{}{
			"enablePremiumForAll":           false,
			"premiumPromotionActive":        false,
			"premiumPromotionStartAt":       nil,
			"premiumPromotionEndAt":         nil,
			"premiumPromotionDurationValue": nil,
			"premiumPromotionDurationUnit":  nil,
		}
	}
	return map[string]interface{}{}
}

// StartField returns the settings field holding the feature's promotion start
// timestamp; expiry uses it as the conditional-update guard so that only one
// concurrent trigger clears a given promotion lifetime.
func StartField(feature FeatureType) string {
	if feature == FeaturePremiumTrial {
		return "premiumPromotionStartAt"
	}
	return "aiPromotionStartedAt"
}

// Known reports whether the tag names a supported feature type.
func Known(feature FeatureType) bool {
	return feature == FeatureAIAssistant || feature == FeaturePremiumTrial
}
