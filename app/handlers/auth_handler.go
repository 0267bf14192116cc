package handlers

import (
	"github.com/amirphl/marketing-manager/app/dto"
	"github.com/amirphl/marketing-manager/app/validation"
	businessflow "github.com/amirphl/marketing-manager/business_flow"
	"github.com/gofiber/fiber/v3"
)

// AuthHandlerInterface defines the contract for authentication handlers
type AuthHandlerInterface interface {
	Login(c fiber.Ctx) error
	Register(c fiber.Ctx) error
	Refresh(c fiber.Ctx) error
	Me(c fiber.Ctx) error
	ChangePassword(c fiber.Ctx) error
	Logout(c fiber.Ctx) error
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	baseHandler
	authFlow businessflow.AuthFlow
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(authFlow businessflow.AuthFlow, rules *validation.Validator) *AuthHandler {
	return &AuthHandler{
		baseHandler: newBaseHandler(rules),
		authFlow:    authFlow,
	}
}

// Login authenticates a user
// @Summary User Login
// @Description Authenticate with email and password. Repeated failures lock the account for a while.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.AuthResponse "Login successful"
// @Failure 400 {object} dto.ValidationErrorResponse "Validation error"
// @Failure 401 {object} dto.MessageResponse "Invalid credentials"
// @Failure 429 {object} dto.MessageResponse "Too many failed attempts"
// @Failure 500 {object} dto.MessageResponse "Internal server error"
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req dto.LoginRequest
	if ok, err := h.decodeStruct(c, "login", &req); !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/auth/login")
	defer cancel()

	result, err := h.authFlow.Login(ctx, &req, h.metadata(c))
	if err != nil {
		return h.handleError(c, err, "Login")
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

// Register creates an account
// @Summary Register
// @Description Create an account and sign in. The role defaults to user.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Account data"
// @Success 201 {object} dto.AuthResponse "Account created"
// @Failure 400 {object} dto.ValidationErrorResponse "Validation error or user already exists"
// @Failure 500 {object} dto.MessageResponse "Internal server error"
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(c fiber.Ctx) error {
	var req dto.RegisterRequest
	if _, ok, err := h.decodeBody(c, validation.Register, &req); !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/auth/register")
	defer cancel()

	result, err := h.authFlow.Register(ctx, &req, h.metadata(c))
	if err != nil {
		return h.handleError(c, err, "Registration")
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

// Refresh exchanges a refresh token for a new token pair
// @Summary Refresh Tokens
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.TokenPairResponse
// @Failure 400 {object} dto.ValidationErrorResponse "Validation error"
// @Failure 401 {object} dto.MessageResponse "Invalid or expired token"
// @Router /api/auth/refresh [post]
func (h *AuthHandler) Refresh(c fiber.Ctx) error {
	var req dto.RefreshTokenRequest
	if ok, err := h.decodeStruct(c, "refresh", &req); !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/auth/refresh")
	defer cancel()

	result, err := h.authFlow.Refresh(ctx, &req, h.metadata(c))
	if err != nil {
		return h.handleError(c, err, "Token refresh")
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

// Me returns the current user
// @Summary Current User
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User
// @Failure 401 {object} dto.MessageResponse
// @Failure 404 {object} dto.MessageResponse "User not found"
// @Router /api/auth/me [get]
func (h *AuthHandler) Me(c fiber.Ctx) error {
	ctx, cancel := h.createRequestContext(c, "/api/auth/me")
	defer cancel()

	user, err := h.authFlow.Me(ctx, h.principal(c))
	if err != nil {
		return h.handleError(c, err, "Get current user")
	}

	return c.Status(fiber.StatusOK).JSON(user)
}

// ChangePassword replaces the caller's password
// @Summary Change Password
// @Tags Authentication
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ChangePasswordRequest true "Current and new password"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 401 {object} dto.MessageResponse "Current password is incorrect"
// @Router /api/auth/change-password [post]
func (h *AuthHandler) ChangePassword(c fiber.Ctx) error {
	var req dto.ChangePasswordRequest
	if _, ok, err := h.decodeBody(c, validation.ChangePassword, &req); !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/auth/change-password")
	defer cancel()

	if err := h.authFlow.ChangePassword(ctx, h.principal(c), &req, h.metadata(c)); err != nil {
		return h.handleError(c, err, "Change password")
	}

	return c.Status(fiber.StatusOK).JSON(dto.MessageResponse{Message: "Password updated successfully"})
}

// Logout revokes the presented access token
// @Summary Logout
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} dto.MessageResponse
// @Router /api/auth/logout [post]
func (h *AuthHandler) Logout(c fiber.Ctx) error {
	ctx, cancel := h.createRequestContext(c, "/api/auth/logout")
	defer cancel()

	if err := h.authFlow.Logout(ctx, h.principal(c), h.metadata(c)); err != nil {
		return h.handleError(c, err, "Logout")
	}

	return c.Status(fiber.StatusOK).JSON(dto.MessageResponse{Message: "Logged out successfully"})
}
