// Package middleware contains HTTP middleware functions for request processing
package middleware

import (
	"errors"
	"log"
	"strings"

	"github.com/amirphl/marketing-manager/app/dto"
	"github.com/amirphl/marketing-manager/app/services"
	businessflow "github.com/amirphl/marketing-manager/business_flow"
	"github.com/amirphl/marketing-manager/models"
	"github.com/gofiber/fiber/v3"
)

// LocalsPrincipal is the Locals key Authenticate stores the caller under
const LocalsPrincipal = "principal"

// AuthMiddleware handles JWT token validation for protected endpoints
type AuthMiddleware struct {
	tokenService services.TokenService
	revocations  services.RevocationStore
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(tokenService services.TokenService, revocations services.RevocationStore) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
		revocations:  revocations,
	}
}

// Authenticate validates the bearer access token and stores the caller's
// principal for downstream handlers
func (m *AuthMiddleware) Authenticate() fiber.Handler {
	return func(c fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return unauthorized(c, "Not authorized, no token")
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			return unauthorized(c, "Invalid authorization header format. Expected 'Bearer <token>'")
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if token == "" {
			return unauthorized(c, "Not authorized, no token")
		}

		claims, err := m.tokenService.ValidateToken(token)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrTokenExpired):
				return unauthorized(c, "Access token has expired")
			case errors.Is(err, services.ErrTokenInvalid):
				return unauthorized(c, "Invalid access token")
			default:
				return unauthorized(c, "Token validation failed")
			}
		}
		if claims.TokenType != services.TokenTypeAccess {
			return unauthorized(c, "Invalid access token")
		}

		revoked, err := m.revocations.IsRevoked(c.Context(), claims.TokenID)
		if err != nil {
			log.Printf("revocation lookup failed for token %s: %v", claims.TokenID, err)
			return unauthorized(c, "Token validation failed")
		}
		if revoked {
			return unauthorized(c, "Access token has been revoked")
		}

		c.Locals(LocalsPrincipal, &businessflow.Principal{
			ID:   claims.UserID,
			Role: models.Role(claims.Role),
			Token: &businessflow.TokenRef{
				ID:        claims.TokenID,
				ExpiresAt: claims.ExpiresAt.Unix(),
			},
		})

		return c.Next()
	}
}

// RequireRoles rejects callers whose role is not in roles
func RequireRoles(roles ...models.Role) fiber.Handler {
	return func(c fiber.Ctx) error {
		principal, _ := GetPrincipalFromContext(c)
		if err := businessflow.Authorize(principal, roles...); err != nil {
			if businessflow.IsForbidden(err) {
				return c.Status(fiber.StatusForbidden).JSON(dto.MessageResponse{
					Message: businessflow.MessageOf(err, "Not allowed to access this resource"),
				})
			}
			return unauthorized(c, businessflow.MessageOf(err, "Not authorized"))
		}
		return c.Next()
	}
}

// GetPrincipalFromContext extracts the authenticated principal from the request context
func GetPrincipalFromContext(c fiber.Ctx) (*businessflow.Principal, bool) {
	principal, ok := c.Locals(LocalsPrincipal).(*businessflow.Principal)
	return principal, ok && principal != nil
}

func unauthorized(c fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.MessageResponse{Message: message})
}
