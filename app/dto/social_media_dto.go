package dto

import "time"

// CreateSocialMediaPostRequest is the validated body of POST /social-media
type CreateSocialMediaPostRequest struct {
	Content       string    `json:"content" example:"Spring sale starts Monday"`
	Images        []string  `json:"images,omitempty"`
	ScheduledTime time.Time `json:"scheduledTime" example:"2024-04-01T09:00:00Z"`
	Platforms     []string  `json:"platforms" example:"twitter,linkedin"`
	Campaign      *string   `json:"campaign,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
}

// UpdateSocialMediaPostRequest is the validated body of PUT /social-media/:id
type UpdateSocialMediaPostRequest struct {
	Content       *string    `json:"content,omitempty"`
	Images        *[]string  `json:"images,omitempty"`
	ScheduledTime *time.Time `json:"scheduledTime,omitempty"`
	Platforms     *[]string  `json:"platforms,omitempty"`
	Status        *string    `json:"status,omitempty"`
	Campaign      *string    `json:"campaign,omitempty"`
}

// OnlyMarksPosted reports whether the request sets status to posted and nothing else
func (r *UpdateSocialMediaPostRequest) OnlyMarksPosted() bool {
	return r.Status != nil && *r.Status == "posted" &&
		r.Content == nil && r.Images == nil && r.ScheduledTime == nil &&
		r.Platforms == nil && r.Campaign == nil
}
