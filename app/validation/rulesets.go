package validation

import (
	"regexp"

	"github.com/amirphl/marketing-manager/models"
)

// TimeRanges lists the accepted analytics window selectors
var TimeRanges = []string{"today", "yesterday", "last7days", "last30days", "thisMonth", "lastMonth"}

var promoCodePattern = regexp.MustCompile(`^[A-Z0-9_-]+$`)

const (
	msgPlatformsArray  = "Platforms must be an array"
	msgInvalidPlatform = "Invalid platform(s)"
	msgPasswordPolicy  = "must contain at least one uppercase letter, one lowercase letter, one number, and one special character"
)

var campaignAgeRules = []FieldRule{
	{Path: "targetAudience.ageRange.min", Checks: []Check{
		Integer("Minimum age must be 13 or above"),
		Min(13, "Minimum age must be 13 or above"),
	}},
	{Path: "targetAudience.ageRange.max", Checks: []Check{
		Integer("Maximum age must be 100 or below"),
		Max(100, "Maximum age must be 100 or below"),
	}},
	{Path: "targetAudience.gender", Checks: []Check{String("Gender must be a string"), Trim()}},
	{Path: "targetAudience.location", Checks: []Check{String("Location must be a string"), Trim()}},
	{Path: "targetAudience.interests", Checks: []Check{Array("Interests must be an array")}},
	{Path: "description", Checks: []Check{String("Description must be a string"), Trim()}},
}

// CampaignCreate validates a new campaign
var CampaignCreate = Ruleset{Name: "campaign_create", Fields: append([]FieldRule{
	{Path: "name", Required: true, RequiredMessage: "Campaign name is required", Checks: []Check{
		String("Campaign name is required"),
		Trim(),
		NotBlank("Campaign name is required"),
	}},
	{Path: "budget", Required: true, RequiredMessage: "Budget is required", Checks: []Check{
		Numeric("Budget must be a number"),
		Min(0, "Budget must be a positive number"),
	}},
	{Path: "startDate", Required: true, RequiredMessage: "Start date is required", Checks: []Check{
		Date("Start date must be a valid date"),
	}},
	{Path: "endDate", Required: true, RequiredMessage: "End date is required", Checks: []Check{
		Date("End date must be a valid date"),
		After("startDate", "End date must be after start date"),
	}},
	{Path: "platforms", Required: true, RequiredMessage: msgPlatformsArray, Checks: []Check{
		Array(msgPlatformsArray),
		SubsetOf(models.CampaignPlatforms, msgInvalidPlatform),
	}},
}, campaignAgeRules...)}

// CampaignUpdate validates a partial campaign update
var CampaignUpdate = Ruleset{Name: "campaign_update", Fields: append([]FieldRule{
	{Path: "name", Checks: []Check{
		String("Campaign name cannot be empty"),
		Trim(),
		NotBlank("Campaign name cannot be empty"),
	}},
	{Path: "budget", Checks: []Check{
		Numeric("Budget must be a number"),
		Min(0, "Budget must be a positive number"),
	}},
	{Path: "startDate", Checks: []Check{Date("Start date must be a valid date")}},
	{Path: "endDate", Checks: []Check{
		Date("End date must be a valid date"),
		After("startDate", "End date must be after start date"),
	}},
	{Path: "platforms", Checks: []Check{
		Array(msgPlatformsArray),
		SubsetOf(models.CampaignPlatforms, msgInvalidPlatform),
	}},
	{Path: "status", Checks: []Check{OneOf(models.CampaignStatuses, "Invalid status")}},
}, campaignAgeRules...)}

var promoConditionRules = []FieldRule{
	{Path: "conditions.minPurchaseAmount", Checks: []Check{
		Numeric("Minimum purchase amount must be a positive number"),
		Min(0, "Minimum purchase amount must be a positive number"),
	}},
	{Path: "conditions.isFirstPurchaseOnly", Checks: []Check{
		Boolean("First purchase only must be a boolean value"),
	}},
	{Path: "conditions.productCategory", Checks: []Check{
		String("Product category must be a string"),
		Trim(),
	}},
}

// PromoCodeCreate validates a new promo code; the code is trimmed and
// upper-cased before its shape is checked
var PromoCodeCreate = Ruleset{Name: "promo_code_create", Fields: append([]FieldRule{
	{Path: "code", Required: true, RequiredMessage: "Promo code is required", Checks: []Check{
		String("Promo code is required"),
		Trim(),
		Upper(),
		Length(3, 20, "Promo code must be between 3 and 20 characters"),
		Matches(promoCodePattern, "Promo code can only contain uppercase letters, numbers, underscores, and hyphens"),
	}},
	{Path: "discountPercentage", Required: true, RequiredMessage: "Discount percentage is required", Checks: []Check{
		Numeric("Discount percentage must be between 0 and 100"),
		Min(0, "Discount percentage must be between 0 and 100"),
		Max(100, "Discount percentage must be between 0 and 100"),
	}},
	{Path: "expirationDate", Required: true, RequiredMessage: "Expiration date is required", Checks: []Check{
		Date("Expiration date must be a valid date"),
		Future("Expiration date must be in the future"),
	}},
}, promoConditionRules...)}

// PromoCodeUpdate validates a partial promo code update; the code itself is immutable
var PromoCodeUpdate = Ruleset{Name: "promo_code_update", Fields: append([]FieldRule{
	{Path: "discountPercentage", Checks: []Check{
		Numeric("Discount percentage must be between 0 and 100"),
		Min(0, "Discount percentage must be between 0 and 100"),
		Max(100, "Discount percentage must be between 0 and 100"),
	}},
	{Path: "expirationDate", Checks: []Check{
		Date("Expiration date must be a valid date"),
		Future("Expiration date must be in the future"),
	}},
	{Path: "isActive", Checks: []Check{Boolean("Active status must be a boolean value")}},
}, promoConditionRules...)}

// SocialMediaPostCreate validates a new post
var SocialMediaPostCreate = Ruleset{Name: "social_media_post_create", Fields: []FieldRule{
	{Path: "content", Required: true, RequiredMessage: "Content is required", Checks: []Check{
		String("Content is required"),
		Length(0, 2000, "Content must be less than 2000 characters"),
	}},
	{Path: "scheduledTime", Required: true, RequiredMessage: "Scheduled time is required", Checks: []Check{
		Date("Scheduled time must be a valid date"),
		Future("Scheduled time must be in the future"),
	}},
	{Path: "platforms", Required: true, RequiredMessage: "At least one platform is required", Checks: []Check{
		Array(msgPlatformsArray),
		NonEmpty("At least one platform is required"),
		SubsetOf(models.PostPlatforms, msgInvalidPlatform),
	}},
	{Path: "campaign", Checks: []Check{ValidID("Invalid campaign ID format")}},
	{Path: "images", Checks: []Check{Array("Images must be an array")}},
}}

// SocialMediaPostUpdate validates a partial post update. The future check on
// scheduledTime is skipped when the request marks the post as posted.
var SocialMediaPostUpdate = Ruleset{Name: "social_media_post_update", Fields: []FieldRule{
	{Path: "content", Checks: []Check{
		String("Content must be a string"),
		Length(0, 2000, "Content must be less than 2000 characters"),
	}},
	{Path: "scheduledTime", Checks: []Check{
		Date("Scheduled time must be a valid date"),
		FutureUnless("status", string(models.PostStatusPosted), "Scheduled time must be in the future"),
	}},
	{Path: "platforms", Checks: []Check{
		Array(msgPlatformsArray),
		NonEmpty("At least one platform is required"),
		SubsetOf(models.PostPlatforms, msgInvalidPlatform),
	}},
	{Path: "status", Checks: []Check{OneOf(models.PostStatuses, "Invalid status")}},
	{Path: "campaign", Checks: []Check{ValidID("Invalid campaign ID format")}},
	{Path: "images", Checks: []Check{Array("Images must be an array")}},
}}

// Register validates account registration
var Register = Ruleset{Name: "register", Fields: []FieldRule{
	{Path: "name", Required: true, RequiredMessage: "Name is required", Checks: []Check{
		String("Name is required"),
		Trim(),
		NotBlank("Name is required"),
	}},
	{Path: "email", Required: true, RequiredMessage: "Email is required", Checks: []Check{
		String("Please provide a valid email address"),
		Trim(),
		Lower(),
		Email("Please provide a valid email address"),
	}},
	{Path: "password", Required: true, RequiredMessage: "Password is required", Checks: []Check{
		Length(8, 0, "Password must be at least 8 characters long"),
		StrongPassword("Password " + msgPasswordPolicy),
	}},
	{Path: "role", Checks: []Check{OneOf(models.Roles, "Invalid role")}},
}}

// ChangePassword validates a password change
var ChangePassword = Ruleset{Name: "change_password", Fields: []FieldRule{
	{Path: "currentPassword", Required: true, RequiredMessage: "Current password is required", Checks: []Check{
		String("Current password is required"),
	}},
	{Path: "newPassword", Required: true, RequiredMessage: "New password is required", Checks: []Check{
		Length(8, 0, "New password must be at least 8 characters long"),
		StrongPassword("New password " + msgPasswordPolicy),
	}},
}}

// AnalyticsOverview validates the overview query string
var AnalyticsOverview = Ruleset{Name: "analytics_overview", Fields: []FieldRule{
	{Path: "timeRange", Checks: []Check{
		OneOf(TimeRanges, "Invalid time range. Valid options are: today, yesterday, last7days, last30days, thisMonth, lastMonth"),
	}},
}}

// IDParam validates a single identifier path segment
func IDParam(name, message string) Ruleset {
	return Ruleset{Name: "id_param", Fields: []FieldRule{
		{Path: name, Required: true, RequiredMessage: message, Checks: []Check{ValidID(message)}},
	}}
}
