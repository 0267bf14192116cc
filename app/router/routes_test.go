package router

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/amirphl/marketing-manager/app/dto"
	"github.com/amirphl/marketing-manager/app/handlers"
	"github.com/amirphl/marketing-manager/app/middleware"
	"github.com/amirphl/marketing-manager/app/services"
	"github.com/amirphl/marketing-manager/config"
	"github.com/amirphl/marketing-manager/models"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type routerFixture struct {
	app    *fiber.App
	tokens services.TokenService
}

func testConfig(env string) *config.ProductionConfig {
	return &config.ProductionConfig{
		Server: config.ServerConfig{
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
			IdleTimeout:  time.Second,
			BodyLimit:    1 << 20,
		},
		Security: config.SecurityConfig{
			AllowedOrigins:  []string{"http://localhost:3000"},
			AllowedMethods:  []string{"GET", "POST", "PUT", "DELETE"},
			AllowedHeaders:  []string{"Content-Type", "Authorization"},
			AuthRateLimit:   1000,
			GlobalRateLimit: 1000,
			RateLimitWindow: time.Minute,
			XFrameOptions:   "DENY",
		},
		Metrics:    config.MetricsConfig{Enabled: true, Path: "/metrics"},
		Deployment: config.DeploymentConfig{Environment: env, Version: "test"},
	}
}

// newRouterFixture mounts handlers without flows, so only requests rejected
// before reaching a flow may be sent through it
func newRouterFixture(t *testing.T, env string, checks map[string]HealthCheck) *routerFixture {
	t.Helper()
	tokens, err := services.NewTokenService(15*time.Minute, time.Hour, "iss", "aud", false, "", "", "test-secret-key-for-jwt-signing-32-chars")
	require.NoError(t, err)

	rules := handlers.NewValidator()
	r := NewFiberRouter(testConfig(env), Handlers{
		Auth:        handlers.NewAuthHandler(nil, rules),
		Campaign:    handlers.NewCampaignHandler(nil, rules),
		PromoCode:   handlers.NewPromoCodeHandler(nil, rules),
		SocialMedia: handlers.NewSocialMediaHandler(nil, rules),
		Analytics:   handlers.NewAnalyticsHandler(nil, rules),
	}, middleware.NewAuthMiddleware(tokens, services.NewRedisRevocationStore(nil, "")), checks)
	r.SetupRoutes()

	return &routerFixture{app: r.GetApp(), tokens: tokens}
}

func (f *routerFixture) bearer(t *testing.T, role models.Role) string {
	t.Helper()
	access, _, err := f.tokens.GenerateTokens(uuid.New(), string(role))
	require.NoError(t, err)
	return "Bearer " + access
}

func (f *routerFixture) do(t *testing.T, method, path, authorization, body string) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func TestRouter_Health(t *testing.T) {
	f := newRouterFixture(t, "production", map[string]HealthCheck{
		"database": func(context.Context) error { return nil },
	})
	status, body := f.do(t, http.MethodGet, "/api/health", "", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, string(body), `"database":"ok"`)

	f = newRouterFixture(t, "production", map[string]HealthCheck{
		"redis": func(context.Context) error { return errors.New("connection refused") },
	})
	status, body = f.do(t, http.MethodGet, "/api/health", "", "")
	assert.Equal(t, fiber.StatusServiceUnavailable, status)
	assert.Contains(t, string(body), "degraded")
}

func TestRouter_NotFound(t *testing.T) {
	f := newRouterFixture(t, "production", nil)
	status, body := f.do(t, http.MethodGet, "/api/unknown", "", "")
	assert.Equal(t, fiber.StatusNotFound, status)

	var msg dto.MessageResponse
	require.NoError(t, json.Unmarshal(body, &msg))
	assert.Equal(t, "Not Found - /api/unknown", msg.Message)
}

func TestRouter_ManagedRoutesRequireRole(t *testing.T) {
	f := newRouterFixture(t, "production", nil)

	for _, path := range []string{"/api/campaigns", "/api/promo-codes", "/api/social-media", "/api/analytics"} {
		status, _ := f.do(t, http.MethodGet, path, "", "")
		assert.Equal(t, fiber.StatusUnauthorized, status, path)

		status, _ = f.do(t, http.MethodGet, path, f.bearer(t, models.RoleUser), "")
		assert.Equal(t, fiber.StatusForbidden, status, path)
	}
}

func TestRouter_RoleCheckRunsBeforeIDCheck(t *testing.T) {
	f := newRouterFixture(t, "production", nil)
	status, _ := f.do(t, http.MethodGet, "/api/campaigns/not-an-id", f.bearer(t, models.RoleUser), "")
	assert.Equal(t, fiber.StatusForbidden, status)
}

func TestRouter_RejectsBadInputBeforeFlows(t *testing.T) {
	f := newRouterFixture(t, "production", nil)
	manager := f.bearer(t, models.RoleMarketingManager)

	cases := []struct {
		name, method, path, body string
		field, message           string
	}{
		{"campaign id", http.MethodGet, "/api/campaigns/abc", "", "id", "Invalid ID format"},
		{"post id", http.MethodDelete, "/api/social-media/123", "", "id", "Invalid ID format"},
		{"analytics campaign id", http.MethodGet, "/api/analytics/campaigns/xyz", "", "campaignId", "Invalid campaign ID format"},
		{"analytics promo id", http.MethodGet, "/api/analytics/promo-codes/xyz", "", "promoCodeId", "Invalid promo code ID format"},
		{"time range", http.MethodGet, "/api/analytics?timeRange=lastYear", "", "timeRange", "Invalid time range. Valid options are: today, yesterday, last7days, last30days, thisMonth, lastMonth"},
		{"campaign body", http.MethodPost, "/api/campaigns", `{"budget":10}`, "name", "Campaign name is required"},
		{"promo body", http.MethodPost, "/api/promo-codes", `{"code":"ab","discountPercentage":5,"expirationDate":"2999-01-01"}`, "code", "Promo code must be between 3 and 20 characters"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := f.do(t, tc.method, tc.path, manager, tc.body)
			require.Equal(t, fiber.StatusBadRequest, status, string(body))

			var resp dto.ValidationErrorResponse
			require.NoError(t, json.Unmarshal(body, &resp))
			assert.Equal(t, "error", resp.Status)

			found := false
			for _, e := range resp.Errors {
				if e.Field == tc.field {
					found = true
					assert.Equal(t, tc.message, e.Message)
				}
			}
			assert.True(t, found, "no error for %s in %s", tc.field, string(body))
		})
	}
}

func TestRouter_MalformedJSON(t *testing.T) {
	f := newRouterFixture(t, "production", nil)
	status, body := f.do(t, http.MethodPut, "/api/promo-codes/"+uuid.NewString(), f.bearer(t, models.RoleAdmin), `{"isActive":`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, string(body), "Invalid request body")
}

func TestRouter_LoginValidation(t *testing.T) {
	f := newRouterFixture(t, "production", nil)
	status, body := f.do(t, http.MethodPost, "/api/auth/login", "", `{"email":"nope"}`)
	require.Equal(t, fiber.StatusBadRequest, status)

	var resp dto.ValidationErrorResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Contains(t, resp.Errors, dto.FieldError{Field: "email", Message: "Please provide a valid email address"})
	assert.Contains(t, resp.Errors, dto.FieldError{Field: "password", Message: "Password is required"})
}

func TestRouter_MetricsAndSwagger(t *testing.T) {
	f := newRouterFixture(t, "production", nil)
	f.do(t, http.MethodGet, "/api/health", "", "")

	status, body := f.do(t, http.MethodGet, "/metrics", "", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, string(body), "http_requests_total")

	status, _ = f.do(t, http.MethodGet, "/api/swagger.json", "", "")
	assert.Equal(t, fiber.StatusNotFound, status)

	dev := newRouterFixture(t, "development", nil)
	status, body = dev.do(t, http.MethodGet, "/api/swagger.json", "", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, string(body), "Marketing Manager API")
}

func TestRouter_SwaggerIsCached(t *testing.T) {
	dev := newRouterFixture(t, "development", nil)

	fetch := func() *http.Response {
		resp, err := dev.app.Test(httptest.NewRequest(http.MethodGet, "/api/swagger.json", nil))
		require.NoError(t, err)
		return resp
	}

	first := fetch()
	assert.Equal(t, fiber.StatusOK, first.StatusCode)
	assert.Equal(t, "miss", first.Header.Get("X-Cache"))

	second := fetch()
	assert.Equal(t, fiber.StatusOK, second.StatusCode)
	assert.Equal(t, "hit", second.Header.Get("X-Cache"))
	assert.Contains(t, second.Header.Get("Cache-Control"), "max-age=")
}
