package handlers

import (
	"github.com/amirphl/marketing-manager/app/dto"
	"github.com/amirphl/marketing-manager/app/validation"
	businessflow "github.com/amirphl/marketing-manager/business_flow"
	"github.com/gofiber/fiber/v3"
)

// PromoCodeHandler handles promo code HTTP requests
type PromoCodeHandler struct {
	baseHandler
	promoFlow businessflow.PromoCodeFlow
}

// NewPromoCodeHandler creates a new promo code handler
func NewPromoCodeHandler(promoFlow businessflow.PromoCodeFlow, rules *validation.Validator) *PromoCodeHandler {
	return &PromoCodeHandler{
		baseHandler: newBaseHandler(rules),
		promoFlow:   promoFlow,
	}
}

// List returns all promo codes
// @Summary List Promo Codes
// @Tags Promo Codes
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.PromoCode
// @Failure 401 {object} dto.MessageResponse
// @Failure 403 {object} dto.MessageResponse
// @Router /api/promo-codes [get]
func (h *PromoCodeHandler) List(c fiber.Ctx) error {
	ctx, cancel := h.createRequestContext(c, "/api/promo-codes")
	defer cancel()

	codes, err := h.promoFlow.List(ctx, h.principal(c))
	if err != nil {
		return h.handleError(c, err, "List promo codes")
	}
	return c.Status(fiber.StatusOK).JSON(codes)
}

// Get returns one promo code
// @Summary Get Promo Code
// @Tags Promo Codes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Promo code ID"
// @Success 200 {object} models.PromoCode
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 404 {object} dto.MessageResponse "Promo code not found"
// @Router /api/promo-codes/{id} [get]
func (h *PromoCodeHandler) Get(c fiber.Ctx) error {
	id, ok, err := h.parseID(c, "id", "Invalid ID format")
	if !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/promo-codes/:id")
	defer cancel()

	code, err := h.promoFlow.Get(ctx, h.principal(c), id)
	if err != nil {
		return h.handleError(c, err, "Get promo code")
	}
	return c.Status(fiber.StatusOK).JSON(code)
}

// Create stores a new promo code
// @Summary Create Promo Code
// @Description The code is trimmed and upper-cased and must be unique.
// @Tags Promo Codes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreatePromoCodeRequest true "Promo code"
// @Success 201 {object} models.PromoCode
// @Failure 400 {object} dto.ValidationErrorResponse "Validation error or promo code already exists"
// @Router /api/promo-codes [post]
func (h *PromoCodeHandler) Create(c fiber.Ctx) error {
	var req dto.CreatePromoCodeRequest
	if _, ok, err := h.decodeBody(c, validation.PromoCodeCreate, &req); !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/promo-codes")
	defer cancel()

	code, err := h.promoFlow.Create(ctx, h.principal(c), &req, h.metadata(c))
	if err != nil {
		return h.handleError(c, err, "Create promo code")
	}
	return c.Status(fiber.StatusCreated).JSON(code)
}

// Update applies the supplied fields to a promo code
// @Summary Update Promo Code
// @Tags Promo Codes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Promo code ID"
// @Param request body dto.UpdatePromoCodeRequest true "Fields to change"
// @Success 200 {object} models.PromoCode
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 404 {object} dto.MessageResponse "Promo code not found"
// @Router /api/promo-codes/{id} [put]
func (h *PromoCodeHandler) Update(c fiber.Ctx) error {
	id, ok, err := h.parseID(c, "id", "Invalid ID format")
	if !ok {
		return err
	}

	var req dto.UpdatePromoCodeRequest
	if _, ok, err := h.decodeBody(c, validation.PromoCodeUpdate, &req); !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/promo-codes/:id")
	defer cancel()

	code, err := h.promoFlow.Update(ctx, h.principal(c), id, &req, h.metadata(c))
	if err != nil {
		return h.handleError(c, err, "Update promo code")
	}
	return c.Status(fiber.StatusOK).JSON(code)
}

// Delete removes a promo code
// @Summary Delete Promo Code
// @Tags Promo Codes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Promo code ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.MessageResponse "Promo code not found"
// @Router /api/promo-codes/{id} [delete]
func (h *PromoCodeHandler) Delete(c fiber.Ctx) error {
	id, ok, err := h.parseID(c, "id", "Invalid ID format")
	if !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/promo-codes/:id")
	defer cancel()

	if err := h.promoFlow.Delete(ctx, h.principal(c), id, h.metadata(c)); err != nil {
		return h.handleError(c, err, "Delete promo code")
	}
	return c.Status(fiber.StatusOK).JSON(dto.MessageResponse{Message: "Promo code deleted successfully"})
}
