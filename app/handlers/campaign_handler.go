package handlers

import (
	"github.com/amirphl/marketing-manager/app/dto"
	"github.com/amirphl/marketing-manager/app/validation"
	businessflow "github.com/amirphl/marketing-manager/business_flow"
	"github.com/gofiber/fiber/v3"
)

// CampaignHandlerInterface defines the contract for campaign handlers
type CampaignHandlerInterface interface {
	List(c fiber.Ctx) error
	Get(c fiber.Ctx) error
	Create(c fiber.Ctx) error
	Update(c fiber.Ctx) error
	Delete(c fiber.Ctx) error
}

// CampaignHandler handles campaign-related HTTP requests
type CampaignHandler struct {
	baseHandler
	campaignFlow businessflow.CampaignFlow
}

// NewCampaignHandler creates a new campaign handler
func NewCampaignHandler(campaignFlow businessflow.CampaignFlow, rules *validation.Validator) *CampaignHandler {
	return &CampaignHandler{
		baseHandler:  newBaseHandler(rules),
		campaignFlow: campaignFlow,
	}
}

// List returns all campaigns
// @Summary List Campaigns
// @Description Every campaign, newest first
// @Tags Campaigns
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Campaign
// @Failure 401 {object} dto.MessageResponse
// @Failure 403 {object} dto.MessageResponse
// @Router /api/campaigns [get]
func (h *CampaignHandler) List(c fiber.Ctx) error {
	ctx, cancel := h.createRequestContext(c, "/api/campaigns")
	defer cancel()

	campaigns, err := h.campaignFlow.List(ctx, h.principal(c))
	if err != nil {
		return h.handleError(c, err, "List campaigns")
	}
	return c.Status(fiber.StatusOK).JSON(campaigns)
}

// Get returns one campaign
// @Summary Get Campaign
// @Tags Campaigns
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Success 200 {object} models.Campaign
// @Failure 400 {object} dto.ValidationErrorResponse "Invalid ID format"
// @Failure 404 {object} dto.MessageResponse "Campaign not found"
// @Router /api/campaigns/{id} [get]
func (h *CampaignHandler) Get(c fiber.Ctx) error {
	id, ok, err := h.parseID(c, "id", "Invalid ID format")
	if !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/campaigns/:id")
	defer cancel()

	campaign, err := h.campaignFlow.Get(ctx, h.principal(c), id)
	if err != nil {
		return h.handleError(c, err, "Get campaign")
	}
	return c.Status(fiber.StatusOK).JSON(campaign)
}

// Create stores a new campaign
// @Summary Create Campaign
// @Description New campaigns always start as scheduled. The caller becomes the owner.
// @Tags Campaigns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCampaignRequest true "Campaign"
// @Success 201 {object} models.Campaign
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 401 {object} dto.MessageResponse
// @Failure 403 {object} dto.MessageResponse
// @Router /api/campaigns [post]
func (h *CampaignHandler) Create(c fiber.Ctx) error {
	var req dto.CreateCampaignRequest
	if _, ok, err := h.decodeBody(c, validation.CampaignCreate, &req); !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/campaigns")
	defer cancel()

	campaign, err := h.campaignFlow.Create(ctx, h.principal(c), &req, h.metadata(c))
	if err != nil {
		return h.handleError(c, err, "Create campaign")
	}
	return c.Status(fiber.StatusCreated).JSON(campaign)
}

// Update applies the supplied fields to a campaign
// @Summary Update Campaign
// @Tags Campaigns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Param request body dto.UpdateCampaignRequest true "Fields to change"
// @Success 200 {object} models.Campaign
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 404 {object} dto.MessageResponse "Campaign not found"
// @Router /api/campaigns/{id} [put]
func (h *CampaignHandler) Update(c fiber.Ctx) error {
	id, ok, err := h.parseID(c, "id", "Invalid ID format")
	if !ok {
		return err
	}

	var req dto.UpdateCampaignRequest
	if _, ok, err := h.decodeBody(c, validation.CampaignUpdate, &req); !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/campaigns/:id")
	defer cancel()

	campaign, err := h.campaignFlow.Update(ctx, h.principal(c), id, &req, h.metadata(c))
	if err != nil {
		return h.handleError(c, err, "Update campaign")
	}
	return c.Status(fiber.StatusOK).JSON(campaign)
}

// Delete removes a campaign; its posts lose the reference
// @Summary Delete Campaign
// @Tags Campaigns
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 404 {object} dto.MessageResponse "Campaign not found"
// @Router /api/campaigns/{id} [delete]
func (h *CampaignHandler) Delete(c fiber.Ctx) error {
	id, ok, err := h.parseID(c, "id", "Invalid ID format")
	if !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/campaigns/:id")
	defer cancel()

	if err := h.campaignFlow.Delete(ctx, h.principal(c), id, h.metadata(c)); err != nil {
		return h.handleError(c, err, "Delete campaign")
	}
	return c.Status(fiber.StatusOK).JSON(dto.MessageResponse{Message: "Campaign deleted successfully"})
}
