// Package models contains domain entities and persistence models for the marketing manager
package models

import (
	"time"

	"github.com/amirphl/marketing-manager/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role represents the access level of a user
type Role string

const (
	RoleAdmin            Role = "admin"
	RoleMarketingManager Role = "marketing_manager"
	RoleUser             Role = "user"
)

// Roles lists every role a user may hold
var Roles = []string{string(RoleAdmin), string(RoleMarketingManager), string(RoleUser)}

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}

// Valid checks if the role is known
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleMarketingManager, RoleUser:
		return true
	default:
		return false
	}
}

// User is an account that can authenticate against the API
type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string     `gorm:"size:255;not null" json:"name"`
	Email        string     `gorm:"size:255;not null;uniqueIndex:uk_users_email" json:"email"`
	PasswordHash string     `gorm:"size:255;not null" json:"-"`
	Role         Role       `gorm:"type:varchar(32);not null;default:'user';index:idx_users_role" json:"role"`
	CreatedAt    time.Time  `gorm:"not null;index:idx_users_created_at" json:"createdAt"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty"`
}

// TableName returns the table name for the model
func (User) TableName() string {
	return "users"
}

// BeforeCreate is called before creating a new record
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	u.Email = utils.NormalizeEmail(u.Email)
	if u.CreatedAt.IsZero() {
		u.CreatedAt = utils.UTCNow()
	}
	return nil
}

// BeforeUpdate is called before updating a record
func (u *User) BeforeUpdate(tx *gorm.DB) error {
	u.UpdatedAt = utils.UTCNowPtr()
	return nil
}

// UserFilter represents filter criteria for users
type UserFilter struct {
	Email *string
}

// AllModels lists every persisted model in migration order
func AllModels() []any {
	return []any{
		&User{},
		&Campaign{},
		&PromoCode{},
		&SocialMediaPost{},
		&AnalyticsRecord{},
		&AuditLog{},
	}
}
