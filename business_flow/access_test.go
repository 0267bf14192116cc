package businessflow

import (
	"testing"

	"github.com/amirphl/marketing-manager/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAuthorize(t *testing.T) {
	admin := &Principal{ID: uuid.New(), Role: models.RoleAdmin}
	manager := &Principal{ID: uuid.New(), Role: models.RoleMarketingManager}
	user := &Principal{ID: uuid.New(), Role: models.RoleUser}

	assert.NoError(t, Authorize(admin, ManagerRoles...))
	assert.NoError(t, Authorize(manager, ManagerRoles...))

	err := Authorize(user, ManagerRoles...)
	assert.True(t, IsForbidden(err))
	assert.Equal(t, "Not allowed to access this resource", MessageOf(err, ""))

	err = Authorize(nil, ManagerRoles...)
	assert.True(t, IsUnauthenticated(err))
	assert.Equal(t, "Not authorized", MessageOf(err, ""))

	assert.True(t, IsUnauthenticated(Authorize(&Principal{Role: models.RoleAdmin}, ManagerRoles...)))
	assert.True(t, IsForbidden(Authorize(admin)))
}

func TestBusinessError_WrapsSentinel(t *testing.T) {
	err := NewBusinessError("CAMPAIGN_NOT_FOUND", "Campaign not found", ErrCampaignNotFound)

	assert.True(t, IsCampaignNotFound(err))
	assert.True(t, IsNotFound(err))
	assert.False(t, IsConflict(err))
	assert.Equal(t, "Campaign not found: campaign not found", err.Error())
	assert.Equal(t, "fallback", MessageOf(assert.AnError, "fallback"))
}
