package dto

import "time"

// PromoConditionsInput carries the optional redemption conditions of a promo code
type PromoConditionsInput struct {
	MinPurchaseAmount   *float64 `json:"minPurchaseAmount,omitempty" example:"20"`
	ProductCategory     *string  `json:"productCategory,omitempty" example:"shoes"`
	IsFirstPurchaseOnly *bool    `json:"isFirstPurchaseOnly,omitempty" example:"false"`
}

// CreatePromoCodeRequest is the validated body of POST /promo-codes
type CreatePromoCodeRequest struct {
	Code               string                `json:"code" example:"SAVE10"`
	DiscountPercentage float64               `json:"discountPercentage" example:"10"`
	ExpirationDate     time.Time             `json:"expirationDate" example:"2024-12-31T00:00:00Z"`
	Conditions         *PromoConditionsInput `json:"conditions,omitempty"`
}

// UpdatePromoCodeRequest is the validated body of PUT /promo-codes/:id. The code is immutable.
type UpdatePromoCodeRequest struct {
	DiscountPercentage *float64              `json:"discountPercentage,omitempty"`
	ExpirationDate     *time.Time            `json:"expirationDate,omitempty"`
	Conditions         *PromoConditionsInput `json:"conditions,omitempty"`
	IsActive           *bool                 `json:"isActive,omitempty"`
}
