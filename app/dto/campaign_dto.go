package dto

import (
	"time"

	"github.com/amirphl/marketing-manager/models"
)

// CreateCampaignRequest is the validated body of POST /campaigns. New campaigns
// always start as scheduled.
type CreateCampaignRequest struct {
	Name           string                 `json:"name" example:"Spring Launch"`
	TargetAudience *models.TargetAudience `json:"targetAudience,omitempty"`
	Budget         float64                `json:"budget" example:"1500"`
	StartDate      time.Time              `json:"startDate" example:"2024-04-01T00:00:00Z"`
	EndDate        time.Time              `json:"endDate" example:"2024-04-30T00:00:00Z"`
	Platforms      []string               `json:"platforms" example:"facebook,email"`
	Description    *string                `json:"description,omitempty"`
}

// UpdateCampaignRequest is the validated body of PUT /campaigns/:id.
// A nil field was not present in the request and is left unchanged.
type UpdateCampaignRequest struct {
	Name           *string                `json:"name,omitempty"`
	TargetAudience *models.TargetAudience `json:"targetAudience,omitempty"`
	Budget         *float64               `json:"budget,omitempty"`
	StartDate      *time.Time             `json:"startDate,omitempty"`
	EndDate        *time.Time             `json:"endDate,omitempty"`
	Platforms      *[]string              `json:"platforms,omitempty"`
	Status         *string                `json:"status,omitempty"`
	Description    *string                `json:"description,omitempty"`
}
