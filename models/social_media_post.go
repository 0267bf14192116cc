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

// PostStatus represents the publication status of a social media post
type PostStatus string

const (
	PostStatusScheduled PostStatus = "scheduled"
	PostStatusPosted    PostStatus = "posted"
	PostStatusFailed    PostStatus = "failed"
)

// PostStatuses lists every post status
var PostStatuses = []string{string(PostStatusScheduled), string(PostStatusPosted), string(PostStatusFailed)}

// PostPlatforms lists the networks a post may target
var PostPlatforms = []string{"facebook", "instagram", "twitter", "linkedin"}

// Valid checks if the status is valid
func (s PostStatus) Valid() bool {
	switch s {
	case PostStatusScheduled, PostStatusPosted, PostStatusFailed:
		return true
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface for PostStatus
func (s *PostStatus) Scan(value any) error {
	v, err := scanEnum(value, "PostStatus")
	if err != nil {
		return err
	}
	*s = PostStatus(v)
	return nil
}

// Value implements the driver.Valuer interface for PostStatus
func (s PostStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid PostStatus: %s", s)
	}
	return string(s), nil
}

// PostMetrics holds engagement counters for a post
type PostMetrics struct {
	Likes    int64 `json:"likes"`
	Shares   int64 `json:"shares"`
	Comments int64 `json:"comments"`
}

// Value implements the driver.Valuer interface for PostMetrics
func (m PostMetrics) Value() (driver.Value, error) {
	return jsonValue(m)
}

// Scan implements the sql.Scanner interface for PostMetrics
func (m *PostMetrics) Scan(value any) error {
	*m = PostMetrics{}
	return jsonScan(value, m, "PostMetrics")
}

// SocialMediaPost is a post scheduled for one or more social networks
type SocialMediaPost struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	Content       string           `gorm:"type:text;not null" json:"content"`
	Images        pq.StringArray   `gorm:"type:text[]" json:"images"`
	ScheduledTime time.Time        `gorm:"not null;index:idx_social_media_posts_scheduled_time" json:"scheduledTime"`
	Platforms     pq.StringArray   `gorm:"type:text[];not null" json:"platforms"`
	Status        PostStatus       `gorm:"type:varchar(20);not null;default:'scheduled';index:idx_social_media_posts_status" json:"status"`
	CampaignID    *uuid.UUID       `gorm:"type:uuid;index:idx_social_media_posts_campaign_id" json:"campaignId,omitempty"`
	CreatedBy     uuid.UUID        `gorm:"type:uuid;not null" json:"createdBy"`
	CreatedAt     time.Time        `gorm:"not null;index:idx_social_media_posts_created_at" json:"createdAt"`
	UpdatedAt     *time.Time       `json:"updatedAt,omitempty"`
	Metrics       PostMetrics      `gorm:"type:jsonb;not null;default:'{}'" json:"metrics"`
	Campaign      *CampaignSummary `gorm:"foreignKey:CampaignID;references:ID;constraint:OnDelete:SET NULL" json:"campaign,omitempty"`
}

// TableName returns the table name for the model
func (SocialMediaPost) TableName() string {
	return "social_media_posts"
}

// BeforeCreate is called before creating a new record
func (p *SocialMediaPost) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Status == "" {
		p.Status = PostStatusScheduled
	}
	if p.Images == nil {
		p.Images = pq.StringArray{}
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = utils.UTCNow()
	}
	return nil
}

// BeforeUpdate is called before updating a record
func (p *SocialMediaPost) BeforeUpdate(tx *gorm.DB) error {
	p.UpdatedAt = utils.UTCNowPtr()
	return nil
}

// IsPublished reports whether the post reached its terminal posted state
func (p *SocialMediaPost) IsPublished() bool {
	return p.Status == PostStatusPosted
}

// SocialMediaPostFilter represents filter criteria for posts
type SocialMediaPostFilter struct {
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}
