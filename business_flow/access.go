package businessflow

import (
	"slices"

	"github.com/amirphl/marketing-manager/models"
	"github.com/google/uuid"
)

// Principal is the authenticated caller of a request
type Principal struct {
	ID    uuid.UUID
	Role  models.Role
	Token *TokenRef
}

// TokenRef identifies the access token the principal presented
type TokenRef struct {
	ID        string
	ExpiresAt int64
}

// ManagerRoles may manage campaigns, promo codes, posts and analytics
var ManagerRoles = []models.Role{models.RoleAdmin, models.RoleMarketingManager}

// Authorize admits principal when its role is in allowed
func Authorize(principal *Principal, allowed ...models.Role) error {
	if principal == nil || principal.ID == uuid.Nil {
		return NewBusinessError("UNAUTHENTICATED", "Not authorized", ErrUnauthenticated)
	}
	if !slices.Contains(allowed, principal.Role) {
		return NewBusinessError("FORBIDDEN", "Not allowed to access this resource", ErrForbidden)
	}
	return nil
}
