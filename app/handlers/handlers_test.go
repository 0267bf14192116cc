package handlers

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
	"github.com/amirphl/marketing-manager/app/middleware"
	businessflow "github.com/amirphl/marketing-manager/business_flow"
	"github.com/amirphl/marketing-manager/models"
	"github.com/amirphl/marketing-manager/repository"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCampaignFlow struct {
	businessflow.CampaignFlow
	created *dto.CreateCampaignRequest
	updated *dto.UpdateCampaignRequest
	err     error
}

func (s *stubCampaignFlow) Create(_ context.Context, p *businessflow.Principal, req *dto.CreateCampaignRequest, _ *businessflow.ClientMetadata) (*models.Campaign, error) {
	s.created = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.Campaign{ID: uuid.New(), Name: req.Name, CreatedBy: p.ID}, nil
}

func (s *stubCampaignFlow) Update(_ context.Context, _ *businessflow.Principal, id uuid.UUID, req *dto.UpdateCampaignRequest, _ *businessflow.ClientMetadata) (*models.Campaign, error) {
	s.updated = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.Campaign{ID: id}, nil
}

func (s *stubCampaignFlow) Delete(context.Context, *businessflow.Principal, uuid.UUID, *businessflow.ClientMetadata) error {
	return s.err
}

type stubPostFlow struct {
	businessflow.SocialMediaFlow
	updated *dto.UpdateSocialMediaPostRequest
}

func (s *stubPostFlow) Update(_ context.Context, _ *businessflow.Principal, id uuid.UUID, req *dto.UpdateSocialMediaPostRequest, _ *businessflow.ClientMetadata) (*models.SocialMediaPost, error) {
	s.updated = req
	return &models.SocialMediaPost{ID: id}, nil
}

type stubAnalyticsFlow struct {
	businessflow.AnalyticsFlow
	timeRange string
}

func (s *stubAnalyticsFlow) Overview(_ context.Context, _ *businessflow.Principal, timeRange string) (*dto.AnalyticsOverviewResponse, error) {
	s.timeRange = timeRange
	return &dto.AnalyticsOverviewResponse{}, nil
}

func (s *stubAnalyticsFlow) ExportOverview(_ context.Context, _ *businessflow.Principal, timeRange string, _ *businessflow.ClientMetadata) (string, []byte, error) {
	s.timeRange = timeRange
	return "analytics_" + timeRange + "_20240315.xlsx", []byte("PK"), nil
}

func newHandlerApp(register func(app *fiber.App)) *fiber.App {
	app := fiber.New()
	app.Use(func(c fiber.Ctx) error {
		c.Locals(middleware.LocalsPrincipal, &businessflow.Principal{ID: uuid.New(), Role: models.RoleMarketingManager})
		return c.Next()
	})
	register(app)
	return app
}

func send(t *testing.T, app *fiber.App, method, path, body string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestCampaignHandler_CreateNormalizesBody(t *testing.T) {
	flow := &stubCampaignFlow{}
	h := NewCampaignHandler(flow, NewValidator())
	app := newHandlerApp(func(app *fiber.App) { app.Post("/campaigns", h.Create) })

	resp := send(t, app, http.MethodPost, "/campaigns", `{
		"name": "  Spring  ",
		"budget": "250.5",
		"startDate": "2030-04-01",
		"endDate": "2030-04-30",
		"platforms": ["email"],
		"description": ""
	}`)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	require.NotNil(t, flow.created)
	assert.Equal(t, "Spring", flow.created.Name)
	assert.Equal(t, 250.5, flow.created.Budget)
	assert.Equal(t, time.Date(2030, 4, 1, 0, 0, 0, 0, time.UTC), flow.created.StartDate)
	assert.Nil(t, flow.created.Description)
}

// savedCampaigns keeps whatever the campaign flow stores
type savedCampaigns struct {
	repository.CampaignRepository
	rows []*models.Campaign
}

func (r *savedCampaigns) Save(_ context.Context, c *models.Campaign) error {
	c.ID = uuid.New()
	r.rows = append(r.rows, c)
	return nil
}

func TestCampaignHandler_CreateIgnoresRequestedStatus(t *testing.T) {
	repo := &savedCampaigns{}
	h := NewCampaignHandler(businessflow.NewCampaignFlow(repo, nil), NewValidator())
	app := newHandlerApp(func(app *fiber.App) { app.Post("/campaigns", h.Create) })

	resp := send(t, app, http.MethodPost, "/campaigns", `{
		"name": "Launch",
		"budget": 10,
		"startDate": "2030-04-01",
		"endDate": "2030-04-30",
		"platforms": ["email"],
		"status": "active"
	}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	body := decode[models.Campaign](t, resp)
	assert.Equal(t, models.CampaignStatusScheduled, body.Status)
	require.Len(t, repo.rows, 1)
	assert.Equal(t, models.CampaignStatusScheduled, repo.rows[0].Status)
}

func TestCampaignHandler_UpdateKeepsZeroValues(t *testing.T) {
	flow := &stubCampaignFlow{}
	h := NewCampaignHandler(flow, NewValidator())
	app := newHandlerApp(func(app *fiber.App) { app.Put("/campaigns/:id", h.Update) })

	resp := send(t, app, http.MethodPut, "/campaigns/"+uuid.NewString(), `{"budget": 0, "name": null}`)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.NotNil(t, flow.updated)
	require.NotNil(t, flow.updated.Budget)
	assert.Equal(t, 0.0, *flow.updated.Budget)
	assert.Nil(t, flow.updated.Name)
}

func TestHandleError_MapsBusinessErrors(t *testing.T) {
	cases := []struct {
		err     error
		status  int
		message string
	}{
		{businessflow.NewBusinessError("CAMPAIGN_NOT_FOUND", "Campaign not found", businessflow.ErrCampaignNotFound), fiber.StatusNotFound, "Campaign not found"},
		{businessflow.NewBusinessError("FORBIDDEN", "Not allowed to access this resource", businessflow.ErrForbidden), fiber.StatusForbidden, "Not allowed to access this resource"},
		{errors.New("connection reset"), fiber.StatusInternalServerError, "Server error"},
	}
	for _, tc := range cases {
		flow := &stubCampaignFlow{err: tc.err}
		h := NewCampaignHandler(flow, NewValidator())
		app := newHandlerApp(func(app *fiber.App) { app.Delete("/campaigns/:id", h.Delete) })

		resp := send(t, app, http.MethodDelete, "/campaigns/"+uuid.NewString(), "")
		assert.Equal(t, tc.status, resp.StatusCode)
		assert.Equal(t, tc.message, decode[dto.MessageResponse](t, resp).Message)
	}
}

func TestHandleError_DateRangeIsFieldViolation(t *testing.T) {
	flow := &stubCampaignFlow{err: businessflow.NewBusinessError("INVALID_DATE_RANGE", "End date must be after start date", businessflow.ErrInvalidDateRange)}
	h := NewCampaignHandler(flow, NewValidator())
	app := newHandlerApp(func(app *fiber.App) { app.Put("/campaigns/:id", h.Update) })

	resp := send(t, app, http.MethodPut, "/campaigns/"+uuid.NewString(), `{"endDate": "2020-01-01"}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body := decode[dto.ValidationErrorResponse](t, resp)
	assert.Equal(t, []dto.FieldError{{Field: "endDate", Message: "End date must be after start date"}}, body.Errors)
}

func TestSocialMediaHandler_EmptyCampaignDetaches(t *testing.T) {
	for _, body := range []string{`{"campaign": ""}`, `{"campaign": null}`} {
		flow := &stubPostFlow{}
		h := NewSocialMediaHandler(flow, NewValidator())
		app := newHandlerApp(func(app *fiber.App) { app.Put("/social-media/:id", h.Update) })

		resp := send(t, app, http.MethodPut, "/social-media/"+uuid.NewString(), body)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode, body)

		require.NotNil(t, flow.updated)
		require.NotNil(t, flow.updated.Campaign, body)
		assert.Equal(t, "", *flow.updated.Campaign)
	}

	flow := &stubPostFlow{}
	h := NewSocialMediaHandler(flow, NewValidator())
	app := newHandlerApp(func(app *fiber.App) { app.Put("/social-media/:id", h.Update) })
	resp := send(t, app, http.MethodPut, "/social-media/"+uuid.NewString(), `{"status": "posted"}`)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, flow.updated.OnlyMarksPosted())
}

func TestAnalyticsHandler_DefaultsAndExportHeaders(t *testing.T) {
	flow := &stubAnalyticsFlow{}
	h := NewAnalyticsHandler(flow, NewValidator())
	app := newHandlerApp(func(app *fiber.App) {
		app.Get("/analytics", h.Overview)
		app.Get("/analytics/export", h.Export)
	})

	resp := send(t, app, http.MethodGet, "/analytics", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, businessflow.DefaultTimeRange, flow.timeRange)

	resp = send(t, app, http.MethodGet, "/analytics/export?timeRange=last7days", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, xlsxContentType, resp.Header.Get("Content-Type"))
	assert.Equal(t, `attachment; filename="analytics_last7days_20240315.xlsx"`, resp.Header.Get("Content-Disposition"))
}
