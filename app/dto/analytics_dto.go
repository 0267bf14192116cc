package dto

import (
	"time"

	"github.com/amirphl/marketing-manager/models"
	"github.com/google/uuid"
)

// AnalyticsTotals sums metrics across analytics rows
type AnalyticsTotals struct {
	Views       int64   `json:"views"`
	Clicks      int64   `json:"clicks"`
	Conversions int64   `json:"conversions"`
	Revenue     float64 `json:"revenue"`
}

// Add returns the totals with m folded in
func (t AnalyticsTotals) Add(m models.AnalyticsMetrics) AnalyticsTotals {
	t.Views += m.Views
	t.Clicks += m.Clicks
	t.Conversions += m.Conversions
	t.Revenue += m.Revenue
	return t
}

// CampaignPerformance is the overview projection of a campaign
type CampaignPerformance struct {
	ID        uuid.UUID              `json:"id"`
	Name      string                 `json:"name"`
	Metrics   models.CampaignMetrics `json:"metrics"`
	StartDate time.Time              `json:"startDate"`
	EndDate   time.Time              `json:"endDate"`
	Status    string                 `json:"status"`
}

// PromoCodeUsage is the overview projection of a promo code
type PromoCodeUsage struct {
	ID                 uuid.UUID `json:"id"`
	Code               string    `json:"code"`
	DiscountPercentage float64   `json:"discountPercentage"`
	ExpirationDate     time.Time `json:"expirationDate"`
	UsageCount         int64     `json:"usageCount"`
	IsActive           bool      `json:"isActive"`
}

// SocialMediaPerformance is the overview projection of a post
type SocialMediaPerformance struct {
	ID            uuid.UUID          `json:"id"`
	Platforms     []string           `json:"platforms"`
	ScheduledTime time.Time          `json:"scheduledTime"`
	Status        string             `json:"status"`
	Metrics       models.PostMetrics `json:"metrics"`
}

// AnalyticsOverviewResponse is the body of GET /analytics
type AnalyticsOverviewResponse struct {
	TimeRange              string                   `json:"timeRange" example:"last30days"`
	Start                  time.Time                `json:"start"`
	End                    time.Time                `json:"end"`
	Totals                 AnalyticsTotals          `json:"totals"`
	CampaignPerformance    []CampaignPerformance    `json:"campaignPerformance"`
	PromoCodeUsage         []PromoCodeUsage         `json:"promoCodeUsage"`
	SocialMediaPerformance []SocialMediaPerformance `json:"socialMediaPerformance"`
}

// CampaignAnalyticsResponse is the body of GET /analytics/campaigns/:campaignId
type CampaignAnalyticsResponse struct {
	Campaign  *models.Campaign          `json:"campaign"`
	Analytics []*models.AnalyticsRecord `json:"analytics"`
}

// PromoCodeAnalyticsResponse is the body of GET /analytics/promo-codes/:promoCodeId
type PromoCodeAnalyticsResponse struct {
	PromoCode *models.PromoCode         `json:"promoCode"`
	Analytics []*models.AnalyticsRecord `json:"analytics"`
}
