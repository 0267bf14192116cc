package models

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AnalyticsMetrics are the counters recorded for one analytics row
type AnalyticsMetrics struct {
	Views       int64   `json:"views"`
	Clicks      int64   `json:"clicks"`
	Conversions int64   `json:"conversions"`
	Revenue     float64 `json:"revenue"`
}

// Value implements the driver.Valuer interface for AnalyticsMetrics
func (m AnalyticsMetrics) Value() (driver.Value, error) {
	return jsonValue(m)
}

// Scan implements the sql.Scanner interface for AnalyticsMetrics
func (m *AnalyticsMetrics) Scan(value any) error {
	*m = AnalyticsMetrics{}
	return jsonScan(value, m, "AnalyticsMetrics")
}

// AnalyticsRecord is a dated metrics row attributed to a campaign, promo code or post
type AnalyticsRecord struct {
	ID               uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	Date             time.Time        `gorm:"not null;index:idx_analytics_date" json:"date"`
	CampaignID       *uuid.UUID       `gorm:"type:uuid;index:idx_analytics_campaign_id" json:"campaignId,omitempty"`
	PromoCodeID      *uuid.UUID       `gorm:"type:uuid;index:idx_analytics_promo_code_id" json:"promoCodeId,omitempty"`
	PostID           *uuid.UUID       `gorm:"type:uuid;index:idx_analytics_post_id" json:"postId,omitempty"`
	Metrics          AnalyticsMetrics `gorm:"type:jsonb;not null;default:'{\"views\":0,\"clicks\":0,\"conversions\":0,\"revenue\":0}'" json:"metrics"`
	UserDemographics datatypes.JSON   `gorm:"type:jsonb" json:"userDemographics,omitempty"`
}

// TableName returns the table name for the model
func (AnalyticsRecord) TableName() string {
	return "analytics"
}

// BeforeCreate is called before creating a new record
func (a *AnalyticsRecord) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Date.IsZero() {
		a.Date = time.Now().UTC()
	}
	return nil
}

// AnalyticsFilter represents filter criteria for analytics rows; date bounds are inclusive
type AnalyticsFilter struct {
	CampaignID  *uuid.UUID
	PromoCodeID *uuid.UUID
	DateFrom    *time.Time
	DateTo      *time.Time
}
