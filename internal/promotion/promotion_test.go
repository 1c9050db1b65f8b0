package promotion

import (
	"testing"
	"time"

	"github.com/edubridge/lms-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int          { return &v }
func strPtr(v string) *string    { return &v }
func timePtr(v time.Time) *time.Time { return &v }

func TestEndTime(t *testing.T) {
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		value int
		unit  string
		want  time.Duration
	}{
		{"minutes", 30, UnitMinutes, 30 * time.Minute},
		{"hours", 6, UnitHours, 6 * time.Hour},
		{"days", 3, UnitDays, 3 * 24 * time.Hour},
		{"unknown unit falls back to days", 2, "weeks", 2 * 24 * time.Hour},
		{"empty unit falls back to days", 1, "", 24 * time.Hour},
		{"zero value falls back to default", 0, UnitDays, DefaultDurationValue * 24 * time.Hour},
		{"negative value falls back to default", -5, UnitHours, DefaultDurationValue * time.Hour},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EndTime(start, tt.value, tt.unit)
			assert.True(t, got.After(start))
			assert.Equal(t, tt.want, got.Sub(start))
		})
	}
}

func TestEndTimeMillisecondDeltas(t *testing.T) {
	start := time.Now()
	assert.EqualValues(t, 60_000, EndTime(start, 1, UnitMinutes).Sub(start).Milliseconds())
	assert.EqualValues(t, 3_600_000, EndTime(start, 1, UnitHours).Sub(start).Milliseconds())
	assert.EqualValues(t, 86_400_000, EndTime(start, 1, UnitDays).Sub(start).Milliseconds())
}

func TestEvaluateInactiveShapes(t *testing.T) {
	now := time.Now()
	start := now.Add(-time.Minute)

	tests := []struct {
		name     string
		settings models.PlatformSettings
		feature  FeatureType
	}{
		{
			// other AI fields populated must not matter while the mode gates it
			"ai mode not Everyone",
			models.PlatformSettings{
				AIAccessMode:             models.AIAccessPremiumOnly,
				AIPromotionStartedAt:     timePtr(start),
				AIPromotionDurationValue: intPtr(5),
				AIPromotionDurationUnit:  strPtr(UnitDays),
			},
			FeatureAIAssistant,
		},
		{
			"ai missing start",
			models.PlatformSettings{
				AIAccessMode:             models.AIAccessEveryone,
				AIPromotionDurationValue: intPtr(5),
			},
			FeatureAIAssistant,
		},
		{
			"ai missing duration",
			models.PlatformSettings{
				AIAccessMode:         models.AIAccessEveryone,
				AIPromotionStartedAt: timePtr(start),
			},
			FeatureAIAssistant,
		},
		{
			"ai non-positive duration",
			models.PlatformSettings{
				AIAccessMode:             models.AIAccessEveryone,
				AIPromotionStartedAt:     timePtr(start),
				AIPromotionDurationValue: intPtr(0),
			},
			FeatureAIAssistant,
		},
		{
			"premium flag off",
			models.PlatformSettings{
				EnablePremiumForAll:           false,
				PremiumPromotionStartAt:       timePtr(start),
				PremiumPromotionDurationValue: intPtr(7),
			},
			FeaturePremiumTrial,
		},
		{
			"unknown feature",
			models.PlatformSettings{},
			FeatureType("certificates"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := Evaluate(&tt.settings, tt.feature, now)
			assert.Equal(t, Status{}, status, "inactive evaluation must be the zero shape")
		})
	}
}

func TestEvaluateActive(t *testing.T) {
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	settings := &models.PlatformSettings{
		AIAccessMode:             models.AIAccessEveryone,
		AIPromotionStartedAt:     timePtr(start),
		AIPromotionDurationValue: intPtr(1),
		AIPromotionDurationUnit:  strPtr(UnitMinutes),
	}

	status := Evaluate(settings, FeatureAIAssistant, start.Add(30*time.Second))
	require.True(t, status.Active)
	assert.False(t, status.HasExpired)
	assert.Equal(t, 30*time.Second, status.TimeLeft)
	assert.Equal(t, start.Add(time.Minute), *status.EndTime)
	assert.Equal(t, 1, status.DurationValue)
	assert.Equal(t, UnitMinutes, status.DurationUnit)
}

func TestEvaluateExpired(t *testing.T) {
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	settings := &models.PlatformSettings{
		AIAccessMode:             models.AIAccessEveryone,
		AIPromotionStartedAt:     timePtr(start),
		AIPromotionDurationValue: intPtr(1),
		AIPromotionDurationUnit:  strPtr(UnitMinutes),
	}

	// exactly at the boundary counts as expired
	status := Evaluate(settings, FeatureAIAssistant, start.Add(time.Minute))
	require.True(t, status.Active)
	assert.True(t, status.HasExpired)
	assert.Equal(t, time.Duration(0), status.TimeLeft)

	status = Evaluate(settings, FeatureAIAssistant, start.Add(61*time.Second))
	require.True(t, status.Active)
	assert.True(t, status.HasExpired)
	assert.Negative(t, status.TimeLeft)
}

func TestEvaluateMissingUnitDefaultsToDays(t *testing.T) {
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	settings := &models.PlatformSettings{
		EnablePremiumForAll:           true,
		PremiumPromotionStartAt:       timePtr(start),
		PremiumPromotionDurationValue: intPtr(2),
	}

	status := Evaluate(settings, FeaturePremiumTrial, start.Add(time.Hour))
	require.True(t, status.Active)
	assert.Equal(t, UnitDays, status.DurationUnit)
	assert.Equal(t, start.Add(48*time.Hour), *status.EndTime)
}

func TestValidateStart(t *testing.T) {
	everyone := models.AIAccessEveryone
	premiumOnly := models.AIAccessPremiumOnly
	enable := true
	disable := false

	t.Run("ai Everyone without duration rejected", func(t *testing.T) {
		err := ValidateStart(FeatureAIAssistant, &models.SettingsUpdate{AIAccessMode: &everyone})
		require.Error(t, err)
		assert.Equal(t, "Promotion duration required when setting AI to Everyone", err.Error())
	})

	t.Run("ai Everyone with duration accepted", func(t *testing.T) {
		err := ValidateStart(FeatureAIAssistant, &models.SettingsUpdate{
			AIAccessMode:             &everyone,
			AIPromotionDurationValue: intPtr(3),
			AIPromotionDurationUnit:  strPtr(UnitHours),
		})
		assert.NoError(t, err)
	})

	t.Run("ai PremiumOnly passes through", func(t *testing.T) {
		assert.NoError(t, ValidateStart(FeatureAIAssistant, &models.SettingsUpdate{AIAccessMode: &premiumOnly}))
	})

	t.Run("premium enable without duration rejected", func(t *testing.T) {
		err := ValidateStart(FeaturePremiumTrial, &models.SettingsUpdate{EnablePremiumForAll: &enable})
		require.Error(t, err)
		assert.Equal(t, "Promotion duration required when enabling premium for all users", err.Error())
	})

	t.Run("premium enable with duration accepted", func(t *testing.T) {
		err := ValidateStart(FeaturePremiumTrial, &models.SettingsUpdate{
			EnablePremiumForAll:           &enable,
			PremiumPromotionDurationValue: intPtr(7),
			PremiumPromotionDurationUnit:  strPtr(UnitDays),
		})
		assert.NoError(t, err)
	})

	t.Run("premium disable passes through", func(t *testing.T) {
		assert.NoError(t, ValidateStart(FeaturePremiumTrial, &models.SettingsUpdate{EnablePremiumForAll: &disable}))
	})

	t.Run("update not touching the feature passes through", func(t *testing.T) {
		assert.NoError(t, ValidateStart(FeatureAIAssistant, &models.SettingsUpdate{}))
	})
}

func TestDisablePatch(t *testing.T) {
	aiPatch := DisablePatch(FeatureAIAssistant)
	assert.Equal(t, models.AIAccessPremiumOnly, aiPatch["aiAccessMode"])
	for _, field := range []string{"aiPromotionStartedAt", "aiPromotionDurationValue", "aiPromotionDurationUnit"} {
		value, ok := aiPatch[field]
		require.True(t, ok, field)
		assert.Nil(t, value, field)
	}

	premiumPatch := DisablePatch(FeaturePremiumTrial)
	assert.Equal(t, false, premiumPatch["enablePremiumForAll"])
	assert.Equal(t, false, premiumPatch["premiumPromotionActive"])
	for _, field := range []string{"premiumPromotionStartAt", "premiumPromotionEndAt", "premiumPromotionDurationValue", "premiumPromotionDurationUnit"} {
		value, ok := premiumPatch[field]
		require.True(t, ok, field)
		assert.Nil(t, value, field)
	}

	assert.Empty(t, DisablePatch(FeatureType("unknown")))
}
