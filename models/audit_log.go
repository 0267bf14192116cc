package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditLog records who changed what, and whether it worked
type AuditLog struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       *uuid.UUID     `gorm:"type:uuid;index:idx_audit_user_id" json:"userId,omitempty"`
	Action       string         `gorm:"size:64;not null;index:idx_audit_action" json:"action"`
	Description  *string        `gorm:"type:text" json:"description,omitempty"`
	IPAddress    *string        `gorm:"size:64;index:idx_audit_ip_address" json:"ipAddress,omitempty"`
	UserAgent    *string        `gorm:"type:text" json:"userAgent,omitempty"`
	RequestID    *string        `gorm:"size:255;index:idx_audit_request_id" json:"requestId,omitempty"`
	Metadata     datatypes.JSON `gorm:"type:jsonb" json:"metadata,omitempty"`
	Success      *bool          `gorm:"default:true;index:idx_audit_success" json:"success"`
	ErrorMessage *string        `gorm:"type:text" json:"errorMessage,omitempty"`
	CreatedAt    time.Time      `gorm:"not null;index:idx_audit_created_at" json:"createdAt"`
}

func (AuditLog) TableName() string {
	return "audit_log"
}

// BeforeCreate is called before creating a new record
func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	return nil
}

// Audit action constants
const (
	AuditActionLoginSuccess     = "login_success"
	AuditActionLoginFailed      = "login_failed"
	AuditActionLoginLocked      = "login_locked"
	AuditActionRegistered       = "user_registered"
	AuditActionLogout           = "logout"
	AuditActionTokenRefreshed   = "token_refreshed"
	AuditActionPasswordChanged  = "password_changed"
	AuditActionCampaignCreated  = "campaign_created"
	AuditActionCampaignUpdated  = "campaign_updated"
	AuditActionCampaignDeleted  = "campaign_deleted"
	AuditActionPromoCodeCreated = "promo_code_created"
	AuditActionPromoCodeUpdated = "promo_code_updated"
	AuditActionPromoCodeDeleted = "promo_code_deleted"
	AuditActionPostCreated      = "social_media_post_created"
	AuditActionPostUpdated      = "social_media_post_updated"
	AuditActionPostDeleted      = "social_media_post_deleted"
	AuditActionAnalyticsExport  = "analytics_exported"
)
