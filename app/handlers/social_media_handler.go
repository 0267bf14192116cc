package handlers

import (
	"github.com/amirphl/marketing-manager/app/dto"
	"github.com/amirphl/marketing-manager/app/validation"
	businessflow "github.com/amirphl/marketing-manager/business_flow"
	"github.com/amirphl/marketing-manager/utils"
	"github.com/gofiber/fiber/v3"
)

// SocialMediaHandler handles scheduled post HTTP requests
type SocialMediaHandler struct {
	baseHandler
	postFlow businessflow.SocialMediaFlow
}

// NewSocialMediaHandler creates a new social media handler
func NewSocialMediaHandler(postFlow businessflow.SocialMediaFlow, rules *validation.Validator) *SocialMediaHandler {
	return &SocialMediaHandler{
		baseHandler: newBaseHandler(rules),
		postFlow:    postFlow,
	}
}

// List returns all posts
// @Summary List Posts
// @Description Every post ordered by scheduled time
// @Tags Social Media
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.SocialMediaPost
// @Failure 401 {object} dto.MessageResponse
// @Failure 403 {object} dto.MessageResponse
// @Router /api/social-media [get]
func (h *SocialMediaHandler) List(c fiber.Ctx) error {
	ctx, cancel := h.createRequestContext(c, "/api/social-media")
	defer cancel()

	posts, err := h.postFlow.List(ctx, h.principal(c))
	if err != nil {
		return h.handleError(c, err, "List posts")
	}
	return c.Status(fiber.StatusOK).JSON(posts)
}

// Get returns one post
// @Summary Get Post
// @Tags Social Media
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {object} models.SocialMediaPost
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 404 {object} dto.MessageResponse "Post not found"
// @Router /api/social-media/{id} [get]
func (h *SocialMediaHandler) Get(c fiber.Ctx) error {
	id, ok, err := h.parseID(c, "id", "Invalid ID format")
	if !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/social-media/:id")
	defer cancel()

	post, err := h.postFlow.Get(ctx, h.principal(c), id)
	if err != nil {
		return h.handleError(c, err, "Get post")
	}
	return c.Status(fiber.StatusOK).JSON(post)
}

// Create schedules a new post
// @Summary Create Post
// @Tags Social Media
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateSocialMediaPostRequest true "Post"
// @Success 201 {object} models.SocialMediaPost
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 404 {object} dto.MessageResponse "Campaign not found"
// @Router /api/social-media [post]
func (h *SocialMediaHandler) Create(c fiber.Ctx) error {
	var req dto.CreateSocialMediaPostRequest
	if _, ok, err := h.decodeBody(c, validation.SocialMediaPostCreate, &req); !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/social-media")
	defer cancel()

	post, err := h.postFlow.Create(ctx, h.principal(c), &req, h.metadata(c))
	if err != nil {
		return h.handleError(c, err, "Create post")
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// Update applies the supplied fields to a post. A published post only accepts
// a repeated status "posted".
// @Summary Update Post
// @Description Sending campaign as null or "" detaches the post from its campaign.
// @Tags Social Media
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Param request body dto.UpdateSocialMediaPostRequest true "Fields to change"
// @Success 200 {object} models.SocialMediaPost
// @Failure 400 {object} dto.ValidationErrorResponse "Validation error or post already published"
// @Failure 404 {object} dto.MessageResponse "Post not found"
// @Router /api/social-media/{id} [put]
func (h *SocialMediaHandler) Update(c fiber.Ctx) error {
	id, ok, err := h.parseID(c, "id", "Invalid ID format")
	if !ok {
		return err
	}

	var req dto.UpdateSocialMediaPostRequest
	raw, ok, err := h.decodeBody(c, validation.SocialMediaPostUpdate, &req)
	if !ok {
		return err
	}
	if campaign, present := raw["campaign"]; present && (campaign == nil || campaign == "") {
		req.Campaign = utils.ToPtr("")
	}

	ctx, cancel := h.createRequestContext(c, "/api/social-media/:id")
	defer cancel()

	post, err := h.postFlow.Update(ctx, h.principal(c), id, &req, h.metadata(c))
	if err != nil {
		return h.handleError(c, err, "Update post")
	}
	return c.Status(fiber.StatusOK).JSON(post)
}

// Delete removes an unpublished post
// @Summary Delete Post
// @Tags Social Media
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.MessageResponse "Post already published"
// @Failure 404 {object} dto.MessageResponse "Post not found"
// @Router /api/social-media/{id} [delete]
func (h *SocialMediaHandler) Delete(c fiber.Ctx) error {
	id, ok, err := h.parseID(c, "id", "Invalid ID format")
	if !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/social-media/:id")
	defer cancel()

	if err := h.postFlow.Delete(ctx, h.principal(c), id, h.metadata(c)); err != nil {
		return h.handleError(c, err, "Delete post")
	}
	return c.Status(fiber.StatusOK).JSON(dto.MessageResponse{Message: "Post deleted successfully"})
}
