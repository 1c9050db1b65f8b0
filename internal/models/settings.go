package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AI access modes
const (
	AIAccessPremiumOnly = "PremiumOnly"
	AIAccessEveryone    = "Everyone"
)

// PlatformSettings represents the platform-wide configuration singleton.
// There is exactly one document in the platform_settings collection.
type PlatformSettings struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`

	// Platform section
	PlatformName      string `bson:"platformName" json:"platformName"`
	MaintenanceMode   bool   `bson:"maintenanceMode" json:"maintenanceMode"`
	AllowRegistration bool   `bson:"allowRegistration" json:"allowRegistration"`
	SupportEmail      string `bson:"supportEmail" json:"supportEmail"`

	// Certificates section
	CertificatesEnabled bool `bson:"certificatesEnabled" json:"certificatesEnabled"`
	CertificateMinScore int  `bson:"certificateMinScore" json:"certificateMinScore"`

	// News & careers section
	NewsEnabled    bool `bson:"newsEnabled" json:"newsEnabled"`
	CareersEnabled bool `bson:"careersEnabled" json:"careersEnabled"`

	// AI assistant section. The promotion quad (StartedAt, DurationValue,
	// DurationUnit together with AIAccessMode == Everyone) is always set or
	// cleared as a unit, never partially.
	AIAssistantEnabled       bool       `bson:"aiAssistantEnabled" json:"aiAssistantEnabled"`
	AIAccessMode             string     `bson:"aiAccessMode" json:"aiAccessMode"` // PremiumOnly, Everyone
	AIDailyMessageLimit      int        `bson:"aiDailyMessageLimit" json:"aiDailyMessageLimit"`
	AIPromotionStartedAt     *time.Time `bson:"aiPromotionStartedAt" json:"aiPromotionStartedAt"`
	AIPromotionDurationValue *int       `bson:"aiPromotionDurationValue" json:"aiPromotionDurationValue"`
	AIPromotionDurationUnit  *string    `bson:"aiPromotionDurationUnit" json:"aiPromotionDurationUnit"`

	// Premium trial section. Same all-or-nothing rule for the promotion fields.
	EnablePremiumForAll           bool       `bson:"enablePremiumForAll" json:"enablePremiumForAll"`
	PremiumPromotionActive        bool       `bson:"premiumPromotionActive" json:"premiumPromotionActive"`
	PremiumPromotionStartAt       *time.Time `bson:"premiumPromotionStartAt" json:"premiumPromotionStartAt"`
	PremiumPromotionEndAt         *time.Time `bson:"premiumPromotionEndAt" json:"premiumPromotionEndAt"`
	PremiumPromotionDurationValue *int       `bson:"premiumPromotionDurationValue" json:"premiumPromotionDurationValue"`
	PremiumPromotionDurationUnit  *string    `bson:"premiumPromotionDurationUnit" json:"premiumPromotionDurationUnit"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
	UpdatedBy string    `bson:"updatedBy" json:"updatedBy"`
}

// SettingsUpdate is the request body for PUT /settings/:section. All fields
// are pointers so that absent fields are distinguishable from zero values;
// only the fields belonging to the addressed section are applied.
type SettingsUpdate struct {
	// platform
	PlatformName      *string `json:"platformName,omitempty"`
	MaintenanceMode   *bool   `json:"maintenanceMode,omitempty"`
	AllowRegistration *bool   `json:"allowRegistration,omitempty"`
	SupportEmail      *string `json:"supportEmail,omitempty"`

	// certificates
	CertificatesEnabled *bool `json:"certificatesEnabled,omitempty"`
	CertificateMinScore *int  `json:"certificateMinScore,omitempty"`

	// news-careers
	NewsEnabled    *bool `json:"newsEnabled,omitempty"`
	CareersEnabled *bool `json:"careersEnabled,omitempty"`

	// ai-assistant
	AIAssistantEnabled       *bool   `json:"aiAssistantEnabled,omitempty"`
	AIAccessMode             *string `json:"aiAccessMode,omitempty"`
	AIDailyMessageLimit      *int    `json:"aiDailyMessageLimit,omitempty"`
	AIPromotionDurationValue *int    `json:"aiPromotionDurationValue,omitempty"`
	AIPromotionDurationUnit  *string `json:"aiPromotionDurationUnit,omitempty"`

	// premium-trial
	EnablePremiumForAll           *bool   `json:"enablePremiumForAll,omitempty"`
	PremiumPromotionDurationValue *int    `json:"premiumPromotionDurationValue,omitempty"`
	PremiumPromotionDurationUnit  *string `json:"premiumPromotionDurationUnit,omitempty"`
}

// DefaultPlatformSettings returns the settings document inserted at first
// startup when the collection is empty.
func DefaultPlatformSettings() *PlatformSettings {
	now := time.Now()
	return &PlatformSettings{
		PlatformName:        "EduBridge",
		AllowRegistration:   true,
		SupportEmail:        "support@edubridge.io",
		CertificatesEnabled: true,
		CertificateMinScore: 70,
		NewsEnabled:         true,
		CareersEnabled:      true,
		AIAssistantEnabled:  true,
		AIAccessMode:        AIAccessPremiumOnly,
		AIDailyMessageLimit: 50,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}
