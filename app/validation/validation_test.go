package validation

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func newTestValidator() *Validator {
	return New(func() time.Time { return fixedNow }, func(s string) bool {
		_, err := uuid.Parse(s)
		return err == nil
	})
}

func validCampaign() Record {
	return Record{
		"name":      "  Spring Launch ",
		"budget":    "1500",
		"startDate": "2024-04-01T00:00:00Z",
		"endDate":   "2024-04-30T00:00:00Z",
		"platforms": []any{"facebook", "email"},
		"targetAudience": map[string]any{
			"ageRange": map[string]any{"min": float64(18), "max": float64(65)},
		},
	}
}

func TestValidate_CampaignCreateNormalizes(t *testing.T) {
	v := newTestValidator()

	out, violations := v.Validate(CampaignCreate, validCampaign())
	require.Empty(t, violations)

	assert.Equal(t, "Spring Launch", out["name"])
	assert.Equal(t, 1500.0, out["budget"])
	assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), out["startDate"])
	assert.Equal(t, []string{"facebook", "email"}, out["platforms"])
	ageRange := out["targetAudience"].(map[string]any)["ageRange"].(map[string]any)
	assert.Equal(t, 18, ageRange["min"])
}

func TestValidate_DoesNotMutateInput(t *testing.T) {
	v := newTestValidator()
	in := validCampaign()

	_, violations := v.Validate(CampaignCreate, in)
	require.Empty(t, violations)
	assert.Equal(t, "  Spring Launch ", in["name"])
	assert.Equal(t, float64(18), in["targetAudience"].(map[string]any)["ageRange"].(map[string]any)["min"])
}

func TestValidate_CollectsEveryFieldFirstFailureOnly(t *testing.T) {
	v := newTestValidator()

	in := Record{
		"budget":    "lots",
		"startDate": "yesterday",
		"endDate":   "2024-04-30",
		"platforms": []any{"facebook", "myspace"},
		"targetAudience": map[string]any{
			"ageRange": map[string]any{"min": float64(12), "max": float64(101)},
		},
	}
	out, violations := v.Validate(CampaignCreate, in)
	assert.Nil(t, out)

	assert.Equal(t, "Campaign name is required", violations.Message("name"))
	assert.Equal(t, "Budget must be a number", violations.Message("budget"))
	assert.Equal(t, "Start date must be a valid date", violations.Message("startDate"))
	assert.False(t, violations.Has("endDate"), "ordering is skipped when startDate is invalid")
	assert.Equal(t, "Invalid platform(s)", violations.Message("platforms"))
	assert.Equal(t, "Minimum age must be 13 or above", violations.Message("targetAudience.ageRange.min"))
	assert.Equal(t, "Maximum age must be 100 or below", violations.Message("targetAudience.ageRange.max"))
	assert.Len(t, violations, 6)
	assert.Equal(t, "name", violations[0].Field)
}

func TestValidate_CampaignEndDateOrdering(t *testing.T) {
	v := newTestValidator()

	equal := validCampaign()
	equal["endDate"] = equal["startDate"]
	_, violations := v.Validate(CampaignCreate, equal)
	assert.Equal(t, "End date must be after start date", violations.Message("endDate"))

	oneSecond := validCampaign()
	oneSecond["endDate"] = "2024-04-01T00:00:01Z"
	_, violations = v.Validate(CampaignCreate, oneSecond)
	assert.Empty(t, violations)
}

func TestValidate_CampaignPlatformsRequiredOnCreate(t *testing.T) {
	v := newTestValidator()
	in := validCampaign()
	delete(in, "platforms")

	_, violations := v.Validate(CampaignCreate, in)
	assert.Equal(t, "Platforms must be an array", violations.Message("platforms"))

	in["platforms"] = "facebook"
	_, violations = v.Validate(CampaignCreate, in)
	assert.Equal(t, "Platforms must be an array", violations.Message("platforms"))
}

func TestValidate_OptionalFieldsSkipWhenEmpty(t *testing.T) {
	v := newTestValidator()

	out, violations := v.Validate(CampaignUpdate, Record{"name": "", "budget": nil, "status": "active"})
	require.Empty(t, violations)
	assert.Equal(t, "active", out["status"])

	_, violations = v.Validate(CampaignUpdate, Record{"name": "   "})
	assert.Equal(t, "Campaign name cannot be empty", violations.Message("name"))

	_, violations = v.Validate(CampaignUpdate, Record{"status": "paused"})
	assert.Equal(t, "Invalid status", violations.Message("status"))
}

func TestValidate_CampaignUpdateOrderingNeedsBothDates(t *testing.T) {
	v := newTestValidator()

	_, violations := v.Validate(CampaignUpdate, Record{"endDate": "2020-01-01"})
	assert.Empty(t, violations)

	_, violations = v.Validate(CampaignUpdate, Record{"startDate": "2024-05-02", "endDate": "2024-05-01"})
	assert.Equal(t, "End date must be after start date", violations.Message("endDate"))
}

func TestValidate_PromoCodeCreate(t *testing.T) {
	v := newTestValidator()

	out, violations := v.Validate(PromoCodeCreate, Record{
		"code":               " save10 ",
		"discountPercentage": float64(10),
		"expirationDate":     "2024-12-31",
		"conditions":         map[string]any{"isFirstPurchaseOnly": "true", "minPurchaseAmount": float64(20)},
	})
	require.Empty(t, violations)
	assert.Equal(t, "SAVE10", out["code"])
	assert.Equal(t, true, out["conditions"].(map[string]any)["isFirstPurchaseOnly"])

	_, violations = v.Validate(PromoCodeCreate, Record{
		"code":               "ab",
		"discountPercentage": float64(101),
		"expirationDate":     "2024-03-15T12:00:00Z",
		"conditions":         map[string]any{"minPurchaseAmount": float64(-1)},
	})
	assert.Equal(t, "Promo code must be between 3 and 20 characters", violations.Message("code"))
	assert.Equal(t, "Discount percentage must be between 0 and 100", violations.Message("discountPercentage"))
	assert.Equal(t, "Expiration date must be in the future", violations.Message("expirationDate"))
	assert.Equal(t, "Minimum purchase amount must be a positive number", violations.Message("conditions.minPurchaseAmount"))

	_, violations = v.Validate(PromoCodeCreate, Record{
		"code": "save 10!", "discountPercentage": float64(5), "expirationDate": "2025-01-01",
	})
	assert.Equal(t, "Promo code can only contain uppercase letters, numbers, underscores, and hyphens", violations.Message("code"))
}

func TestValidate_PromoCodeUpdateAppliesFalse(t *testing.T) {
	v := newTestValidator()

	out, violations := v.Validate(PromoCodeUpdate, Record{"isActive": false, "discountPercentage": float64(0)})
	require.Empty(t, violations)
	assert.Equal(t, false, out["isActive"])
	assert.Equal(t, 0.0, out["discountPercentage"])

	_, violations = v.Validate(PromoCodeUpdate, Record{"isActive": "yes"})
	assert.Equal(t, "Active status must be a boolean value", violations.Message("isActive"))

	_, violations = v.Validate(PromoCodeUpdate, Record{"expirationDate": "2024-01-01"})
	assert.Equal(t, "Expiration date must be in the future", violations.Message("expirationDate"))
}

func TestValidate_SocialMediaPost(t *testing.T) {
	v := newTestValidator()

	_, violations := v.Validate(SocialMediaPostCreate, Record{
		"content":       "hello",
		"scheduledTime": "2024-03-16T09:00:00Z",
		"platforms":     []any{},
		"campaign":      "507f1f77bcf86cd799439011",
	})
	assert.Equal(t, "At least one platform is required", violations.Message("platforms"))
	assert.Equal(t, "Invalid campaign ID format", violations.Message("campaign"))

	long := make([]rune, 2001)
	for i := range long {
		long[i] = 'x'
	}
	_, violations = v.Validate(SocialMediaPostCreate, Record{
		"content":       string(long),
		"scheduledTime": "2024-03-14T09:00:00Z",
		"platforms":     []any{"linkedin"},
	})
	assert.Equal(t, "Content must be less than 2000 characters", violations.Message("content"))
	assert.Equal(t, "Scheduled time must be in the future", violations.Message("scheduledTime"))

	out, violations := v.Validate(SocialMediaPostCreate, Record{
		"content":       "hello",
		"scheduledTime": "2024-03-16T09:00:00Z",
		"platforms":     []any{"twitter"},
		"campaign":      uuid.NewString(),
	})
	require.Empty(t, violations)
	assert.Equal(t, []string{"twitter"}, out["platforms"])
}

func TestValidate_ArraysMustHoldStrings(t *testing.T) {
	v := newTestValidator()

	_, violations := v.Validate(SocialMediaPostUpdate, Record{"images": []any{float64(1)}})
	assert.Equal(t, "Images must be an array", violations.Message("images"))

	in := validCampaign()
	in["targetAudience"] = map[string]any{"interests": []any{"sports", float64(1)}}
	_, violations = v.Validate(CampaignCreate, in)
	assert.Equal(t, "Interests must be an array", violations.Message("targetAudience.interests"))

	_, violations = v.Validate(CampaignUpdate, Record{"platforms": []any{true}})
	assert.Equal(t, "Platforms must be an array", violations.Message("platforms"))
}

func TestValidate_PostUpdateSkipsFutureCheckWhenPosted(t *testing.T) {
	v := newTestValidator()
	past := "2024-03-01T09:00:00Z"

	_, violations := v.Validate(SocialMediaPostUpdate, Record{"scheduledTime": past, "status": "posted"})
	assert.Empty(t, violations)

	_, violations = v.Validate(SocialMediaPostUpdate, Record{"scheduledTime": past, "status": "failed"})
	assert.Equal(t, "Scheduled time must be in the future", violations.Message("scheduledTime"))

	_, violations = v.Validate(SocialMediaPostUpdate, Record{"scheduledTime": past})
	assert.True(t, violations.Has("scheduledTime"))
}

func TestValidate_Register(t *testing.T) {
	v := newTestValidator()

	out, violations := v.Validate(Register, Record{
		"name": " Ada ", "email": " Ada@Example.COM ", "password": "Str0ng!pass",
	})
	require.Empty(t, violations)
	assert.Equal(t, "ada@example.com", out["email"])
	assert.Equal(t, "Ada", out["name"])

	cases := map[string]string{
		"short":          "Password must be at least 8 characters long",
		"alllowercase1!": "Password must contain at least one uppercase letter, one lowercase letter, one number, and one special character",
		"NoDigits!!":     "Password must contain at least one uppercase letter, one lowercase letter, one number, and one special character",
		"Has space1!":    "Password must contain at least one uppercase letter, one lowercase letter, one number, and one special character",
		"NoSpecial12":    "Password must contain at least one uppercase letter, one lowercase letter, one number, and one special character",
	}
	for password, want := range cases {
		_, violations := v.Validate(Register, Record{"name": "a", "email": "a@b.co", "password": password})
		assert.Equal(t, want, violations.Message("password"), password)
	}

	_, violations = v.Validate(Register, Record{"name": "a", "email": "nope", "password": "Str0ng!pass", "role": "root"})
	assert.Equal(t, "Please provide a valid email address", violations.Message("email"))
	assert.Equal(t, "Invalid role", violations.Message("role"))
}

func TestValidate_IDParamAndTimeRange(t *testing.T) {
	v := newTestValidator()

	_, violations := v.Validate(IDParam("id", "Invalid ID format"), Record{"id": "abc"})
	assert.Equal(t, Violations{{Field: "id", Message: "Invalid ID format"}}, violations)

	_, violations = v.Validate(IDParam("id", "Invalid ID format"), Record{"id": uuid.NewString()})
	assert.Empty(t, violations)

	_, violations = v.Validate(AnalyticsOverview, Record{})
	assert.Empty(t, violations)

	_, violations = v.Validate(AnalyticsOverview, Record{"timeRange": "lastYear"})
	assert.True(t, violations.Has("timeRange"))
}

func TestParseISODate(t *testing.T) {
	got, ok := ParseISODate("2024-02-29")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), got)

	got, ok = ParseISODate("2024-02-29T10:30:00.123+03:30")
	require.True(t, ok)
	assert.Equal(t, 7, got.UTC().Hour())

	_, ok = ParseISODate("29/02/2024")
	assert.False(t, ok)
}

func TestViolations_Error(t *testing.T) {
	v := Violations{{Field: "a", Message: "bad"}, {Field: "b", Message: "worse"}}
	assert.Equal(t, "validation failed: a: bad; b: worse", v.Error())
}
