package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/amirphl/marketing-manager/utils"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// CampaignStatus represents the lifecycle status of a campaign
type CampaignStatus string

const (
	CampaignStatusDraft     CampaignStatus = "draft"
	CampaignStatusScheduled CampaignStatus = "scheduled"
	CampaignStatusActive    CampaignStatus = "active"
	CampaignStatusCompleted CampaignStatus = "completed"
	CampaignStatusCancelled CampaignStatus = "cancelled"
)

// CampaignStatuses lists every campaign status
var CampaignStatuses = []string{
	string(CampaignStatusDraft),
	string(CampaignStatusScheduled),
	string(CampaignStatusActive),
	string(CampaignStatusCompleted),
	string(CampaignStatusCancelled),
}

// CampaignPlatforms lists the channels a campaign may run on
var CampaignPlatforms = []string{"facebook", "instagram", "twitter", "google", "email", "other"}

// DefaultCampaignPlatforms is applied when a campaign is stored without platforms
var DefaultCampaignPlatforms = []string{"email"}

// String returns the string representation of the status
func (s CampaignStatus) String() string {
	return string(s)
}

// Valid checks if the status is valid
func (s CampaignStatus) Valid() bool {
	switch s {
	case CampaignStatusDraft, CampaignStatusScheduled, CampaignStatusActive,
		CampaignStatusCompleted, CampaignStatusCancelled:
		return true
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface for CampaignStatus
func (s *CampaignStatus) Scan(value any) error {
	v, err := scanEnum(value, "CampaignStatus")
	if err != nil {
		return err
	}
	*s = CampaignStatus(v)
	return nil
}

// Value implements the driver.Valuer interface for CampaignStatus
func (s CampaignStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid CampaignStatus: %s", s)
	}
	return string(s), nil
}

// AgeRange bounds the targeted audience age
type AgeRange struct {
	Min *int `json:"min,omitempty"`
	Max *int `json:"max,omitempty"`
}

// TargetAudience describes who a campaign is aimed at
type TargetAudience struct {
	AgeRange  *AgeRange `json:"ageRange,omitempty"`
	Gender    *string   `json:"gender,omitempty"`
	Location  *string   `json:"location,omitempty"`
	Interests []string  `json:"interests,omitempty"`
}

// Value implements the driver.Valuer interface for TargetAudience
func (t TargetAudience) Value() (driver.Value, error) {
	return jsonValue(t)
}

// Scan implements the sql.Scanner interface for TargetAudience
func (t *TargetAudience) Scan(value any) error {
	*t = TargetAudience{}
	return jsonScan(value, t, "TargetAudience")
}

// CampaignMetrics holds delivery counters for a campaign
type CampaignMetrics struct {
	Impressions int64 `json:"impressions"`
	Clicks      int64 `json:"clicks"`
	Conversions int64 `json:"conversions"`
}

// Value implements the driver.Valuer interface for CampaignMetrics
func (m CampaignMetrics) Value() (driver.Value, error) {
	return jsonValue(m)
}

// Scan implements the sql.Scanner interface for CampaignMetrics
func (m *CampaignMetrics) Scan(value any) error {
	*m = CampaignMetrics{}
	return jsonScan(value, m, "CampaignMetrics")
}

// Campaign represents a marketing campaign in the database
type Campaign struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Name           string          `gorm:"size:255;not null" json:"name"`
	TargetAudience TargetAudience  `gorm:"type:jsonb;not null;default:'{}'" json:"targetAudience"`
	Budget         float64         `gorm:"type:numeric(14,2);not null" json:"budget"`
	StartDate      time.Time       `gorm:"not null" json:"startDate"`
	EndDate        time.Time       `gorm:"not null" json:"endDate"`
	Platforms      pq.StringArray  `gorm:"type:text[];not null" json:"platforms"`
	Status         CampaignStatus  `gorm:"type:varchar(20);not null;default:'draft';index:idx_campaigns_status" json:"status"`
	Description    *string         `gorm:"type:text" json:"description,omitempty"`
	CreatedBy      uuid.UUID       `gorm:"type:uuid;not null;index:idx_campaigns_created_by" json:"createdBy"`
	CreatedAt      time.Time       `gorm:"not null;index:idx_campaigns_created_at" json:"createdAt"`
	UpdatedAt      *time.Time      `json:"updatedAt,omitempty"`
	Metrics        CampaignMetrics `gorm:"type:jsonb;not null;default:'{}'" json:"metrics"`
}

// TableName returns the table name for the model
func (Campaign) TableName() string {
	return "campaigns"
}

// BeforeCreate is called before creating a new record
func (c *Campaign) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Status == "" {
		c.Status = CampaignStatusDraft
	}
	if len(c.Platforms) == 0 {
		c.Platforms = append(pq.StringArray{}, DefaultCampaignPlatforms...)
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = utils.UTCNow()
	}
	return nil
}

// BeforeUpdate is called before updating a record
func (c *Campaign) BeforeUpdate(tx *gorm.DB) error {
	c.UpdatedAt = utils.UTCNowPtr()
	return nil
}

// HasValidDateRange reports whether the campaign ends strictly after it starts
func (c *Campaign) HasValidDateRange() bool {
	return c.EndDate.After(c.StartDate)
}

// CampaignSummary is the reduced campaign shape embedded in other resources
type CampaignSummary struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name string    `json:"name"`
}

// TableName returns the table name for the model
func (CampaignSummary) TableName() string {
	return "campaigns"
}

// CampaignFilter represents filter criteria for campaigns
type CampaignFilter struct {
	CreatedAfter  *time.Time `json:"createdAfter,omitempty"`
	CreatedBefore *time.Time `json:"createdBefore,omitempty"`
}
