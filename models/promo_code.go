package models

import (
	"database/sql/driver"
	"time"

	"github.com/amirphl/marketing-manager/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PromoConditions restricts when a promo code can be redeemed
type PromoConditions struct {
	MinPurchaseAmount   float64 `json:"minPurchaseAmount"`
	ProductCategory     *string `json:"productCategory"`
	IsFirstPurchaseOnly bool    `json:"isFirstPurchaseOnly"`
}

// Value implements the driver.Valuer interface for PromoConditions
func (p PromoConditions) Value() (driver.Value, error) {
	return jsonValue(p)
}

// Scan implements the sql.Scanner interface for PromoConditions
func (p *PromoConditions) Scan(value any) error {
	*p = PromoConditions{}
	return jsonScan(value, p, "PromoConditions")
}

// PromoCode represents a discount code
type PromoCode struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Code               string          `gorm:"size:20;not null;uniqueIndex:uk_promo_codes_code" json:"code"`
	DiscountPercentage float64         `gorm:"type:numeric(5,2);not null" json:"discountPercentage"`
	ExpirationDate     time.Time       `gorm:"not null;index:idx_promo_codes_expiration_date" json:"expirationDate"`
	Conditions         PromoConditions `gorm:"type:jsonb;not null;default:'{}'" json:"conditions"`
	IsActive           *bool           `gorm:"not null;default:true;index:idx_promo_codes_is_active" json:"isActive"`
	CreatedBy          uuid.UUID       `gorm:"type:uuid;not null;index:idx_promo_codes_created_by" json:"createdBy"`
	CreatedAt          time.Time       `gorm:"not null;index:idx_promo_codes_created_at" json:"createdAt"`
	UpdatedAt          *time.Time      `json:"updatedAt,omitempty"`
	UsageCount         int64           `gorm:"not null;default:0" json:"usageCount"`
}

// TableName returns the table name for the model
func (PromoCode) TableName() string {
	return "promo_codes"
}

// BeforeCreate is called before creating a new record
func (p *PromoCode) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.Code = utils.NormalizePromoCode(p.Code)
	if p.IsActive == nil {
		p.IsActive = utils.ToPtr(true)
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = utils.UTCNow()
	}
	return nil
}

// BeforeUpdate is called before updating a record
func (p *PromoCode) BeforeUpdate(tx *gorm.DB) error {
	p.UpdatedAt = utils.UTCNowPtr()
	return nil
}

// IsExpired reports whether the code has passed its expiration date at now
func (p *PromoCode) IsExpired(now time.Time) bool {
	return !p.ExpirationDate.After(now)
}

// PromoCodeFilter represents filter criteria for promo codes
type PromoCodeFilter struct {
	Code          *string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}
