package handlers

import (
	"fmt"
	"time"

	"github.com/amirphl/marketing-manager/app/middleware"
	"github.com/amirphl/marketing-manager/app/validation"
	businessflow "github.com/amirphl/marketing-manager/business_flow"
	"github.com/amirphl/marketing-manager/utils"
	"github.com/gofiber/fiber/v3"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// AnalyticsHandler handles analytics HTTP requests
type AnalyticsHandler struct {
	baseHandler
	analyticsFlow businessflow.AnalyticsFlow
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsFlow businessflow.AnalyticsFlow, rules *validation.Validator) *AnalyticsHandler {
	return &AnalyticsHandler{
		baseHandler:   newBaseHandler(rules),
		analyticsFlow: analyticsFlow,
	}
}

// timeRange validates the timeRange query parameter; an absent value means last30days
func (h *AnalyticsHandler) timeRange(c fiber.Ctx) (string, bool, error) {
	value := c.Query("timeRange")
	if _, violations := h.rules.Validate(validation.AnalyticsOverview, validation.Record{"timeRange": value}); len(violations) > 0 {
		return "", false, h.ValidationResponse(c, validation.AnalyticsOverview.Name, violations)
	}
	if value == "" {
		value = businessflow.DefaultTimeRange
	}
	return value, true, nil
}

// Overview returns totals and per-entity projections for a time window
// @Summary Analytics Overview
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Param timeRange query string false "today, yesterday, last7days, last30days, thisMonth or lastMonth" default(last30days)
// @Success 200 {object} dto.AnalyticsOverviewResponse
// @Failure 400 {object} dto.ValidationErrorResponse "Invalid time range"
// @Failure 401 {object} dto.MessageResponse
// @Failure 403 {object} dto.MessageResponse
// @Router /api/analytics [get]
func (h *AnalyticsHandler) Overview(c fiber.Ctx) error {
	timeRange, ok, err := h.timeRange(c)
	if !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/analytics")
	defer cancel()

	started := time.Now()
	overview, err := h.analyticsFlow.Overview(ctx, h.principal(c), timeRange)
	middleware.ObserveAnalyticsOverview(timeRange, started, err)
	if err != nil {
		return h.handleError(c, err, "Analytics overview")
	}
	return c.Status(fiber.StatusOK).JSON(overview)
}

// Export returns the overview as an xlsx workbook
// @Summary Export Analytics
// @Tags Analytics
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param timeRange query string false "today, yesterday, last7days, last30days, thisMonth or lastMonth" default(last30days)
// @Success 200 {file} file
// @Failure 400 {object} dto.ValidationErrorResponse "Invalid time range"
// @Router /api/analytics/export [get]
func (h *AnalyticsHandler) Export(c fiber.Ctx) error {
	timeRange, ok, err := h.timeRange(c)
	if !ok {
		return err
	}

	ctx, cancel := h.createRequestContextWithTimeout(c, "/api/analytics/export", utils.ExportRequestTimeout)
	defer cancel()

	filename, content, err := h.analyticsFlow.ExportOverview(ctx, h.principal(c), timeRange, h.metadata(c))
	if err != nil {
		return h.handleError(c, err, "Analytics export")
	}

	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Status(fiber.StatusOK).Send(content)
}

// CampaignAnalytics returns a campaign with every analytics row recorded for it
// @Summary Campaign Analytics
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Param campaignId path string true "Campaign ID"
// @Success 200 {object} dto.CampaignAnalyticsResponse
// @Failure 400 {object} dto.ValidationErrorResponse "Invalid campaign ID format"
// @Failure 404 {object} dto.MessageResponse "Campaign not found"
// @Router /api/analytics/campaigns/{campaignId} [get]
func (h *AnalyticsHandler) CampaignAnalytics(c fiber.Ctx) error {
	id, ok, err := h.parseID(c, "campaignId", "Invalid campaign ID format")
	if !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/analytics/campaigns/:campaignId")
	defer cancel()

	result, err := h.analyticsFlow.CampaignAnalytics(ctx, h.principal(c), id)
	if err != nil {
		return h.handleError(c, err, "Campaign analytics")
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

// PromoCodeAnalytics returns a promo code with every analytics row recorded for it
// @Summary Promo Code Analytics
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Param promoCodeId path string true "Promo code ID"
// @Success 200 {object} dto.PromoCodeAnalyticsResponse
// @Failure 400 {object} dto.ValidationErrorResponse "Invalid promo code ID format"
// @Failure 404 {object} dto.MessageResponse "Promo code not found"
// @Router /api/analytics/promo-codes/{promoCodeId} [get]
func (h *AnalyticsHandler) PromoCodeAnalytics(c fiber.Ctx) error {
	id, ok, err := h.parseID(c, "promoCodeId", "Invalid promo code ID format")
	if !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/analytics/promo-codes/:promoCodeId")
	defer cancel()

	result, err := h.analyticsFlow.PromoCodeAnalytics(ctx, h.principal(c), id)
	if err != nil {
		return h.handleError(c, err, "Promo code analytics")
	}
	return c.Status(fiber.StatusOK).JSON(result)
}
