package businessflow

import (
	"context"
	"testing"
	"time"

	"github.com/amirphl/marketing-manager/app/dto"
	"github.com/amirphl/marketing-manager/models"
	"github.com/amirphl/marketing-manager/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type postFixture struct {
	flow      SocialMediaFlow
	posts     *fakePostRepo
	campaigns *fakeCampaignRepo
	audit     *fakeAuditRepo
}

func newPostFixture() *postFixture {
	f := &postFixture{
		posts:     newFakePostRepo(),
		campaigns: newFakeCampaignRepo(),
		audit:     newFakeAuditRepo(),
	}
	f.flow = NewSocialMediaFlow(f.posts, f.campaigns, f.audit)
	return f
}

func (f *postFixture) campaign(t *testing.T, name string) *models.Campaign {
	t.Helper()
	c := &models.Campaign{Name: name, CreatedAt: time.Now()}
	require.NoError(t, f.campaigns.Save(context.Background(), c))
	return c
}

func (f *postFixture) create(t *testing.T, campaign *string) *models.SocialMediaPost {
	t.Helper()
	post, err := f.flow.Create(context.Background(), managerPrincipal(), &dto.CreateSocialMediaPostRequest{
		Content:       "Spring sale starts tomorrow",
		ScheduledTime: time.Now().Add(24 * time.Hour),
		Platforms:     []string{"twitter", "linkedin"},
		Campaign:      campaign,
	}, nil)
	require.NoError(t, err)
	return post
}

func (f *postFixture) markPosted(t *testing.T, id uuid.UUID) {
	t.Helper()
	_, err := f.flow.Update(context.Background(), managerPrincipal(), id, &dto.UpdateSocialMediaPostRequest{
		Status: utils.ToPtr("posted"),
	}, nil)
	require.NoError(t, err)
}

func TestSocialMediaFlow_CreateResolvesCampaign(t *testing.T) {
	f := newPostFixture()
	c := f.campaign(t, "Spring Launch")

	post := f.create(t, utils.ToPtr(c.ID.String()))

	assert.Equal(t, models.PostStatusScheduled, post.Status)
	require.NotNil(t, post.CampaignID)
	assert.Equal(t, c.ID, *post.CampaignID)
	require.NotNil(t, post.Campaign)
	assert.Equal(t, "Spring Launch", post.Campaign.Name)
	assert.Equal(t, []string{models.AuditActionPostCreated}, f.audit.actions())
}

func TestSocialMediaFlow_CreateWithUnknownCampaign(t *testing.T) {
	f := newPostFixture()

	_, err := f.flow.Create(context.Background(), managerPrincipal(), &dto.CreateSocialMediaPostRequest{
		Content:       "hello",
		ScheduledTime: time.Now().Add(time.Hour),
		Platforms:     []string{"facebook"},
		Campaign:      utils.ToPtr(uuid.NewString()),
	}, nil)
	assert.True(t, IsCampaignNotFound(err))
	assert.Equal(t, 0, f.posts.len())
}

func TestSocialMediaFlow_UpdateClearsCampaignWithEmptyReference(t *testing.T) {
	f := newPostFixture()
	c := f.campaign(t, "Spring Launch")
	post := f.create(t, utils.ToPtr(c.ID.String()))

	updated, err := f.flow.Update(context.Background(), managerPrincipal(), post.ID, &dto.UpdateSocialMediaPostRequest{
		Campaign: utils.ToPtr(""),
		Content:  utils.ToPtr("edited"),
	}, nil)
	require.NoError(t, err)
	assert.Nil(t, updated.CampaignID)
	assert.Nil(t, updated.Campaign)
	assert.Equal(t, "edited", updated.Content)
}

func TestSocialMediaFlow_PublishedPostIsImmutable(t *testing.T) {
	f := newPostFixture()
	ctx := context.Background()
	post := f.create(t, nil)
	f.markPosted(t, post.ID)

	// repeating the same transition is accepted and changes nothing
	same, err := f.flow.Update(ctx, managerPrincipal(), post.ID, &dto.UpdateSocialMediaPostRequest{
		Status: utils.ToPtr("posted"),
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, models.PostStatusPosted, same.Status)

	_, err = f.flow.Update(ctx, managerPrincipal(), post.ID, &dto.UpdateSocialMediaPostRequest{
		Content: utils.ToPtr("too late"),
	}, nil)
	assert.True(t, IsPublishedPostImmutable(err))
	assert.Equal(t, "Cannot edit a post that has already been published", MessageOf(err, ""))

	_, err = f.flow.Update(ctx, managerPrincipal(), post.ID, &dto.UpdateSocialMediaPostRequest{
		Status:  utils.ToPtr("posted"),
		Content: utils.ToPtr("sneaky"),
	}, nil)
	assert.True(t, IsPublishedPostImmutable(err))

	err = f.flow.Delete(ctx, managerPrincipal(), post.ID, nil)
	assert.True(t, IsPublishedPostImmutable(err))
	assert.Equal(t, "Cannot delete a post that has already been published", MessageOf(err, ""))
	assert.Equal(t, 1, f.posts.len())

	stored, err := f.posts.ByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Spring sale starts tomorrow", stored.Content)
}

func TestSocialMediaFlow_FailedPostCanBeRescheduled(t *testing.T) {
	f := newPostFixture()
	post := f.create(t, nil)
	next := time.Now().Add(48 * time.Hour).UTC()

	_, err := f.flow.Update(context.Background(), managerPrincipal(), post.ID, &dto.UpdateSocialMediaPostRequest{
		Status: utils.ToPtr("failed"),
	}, nil)
	require.NoError(t, err)

	updated, err := f.flow.Update(context.Background(), managerPrincipal(), post.ID, &dto.UpdateSocialMediaPostRequest{
		Status:        utils.ToPtr("scheduled"),
		ScheduledTime: &next,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, models.PostStatusScheduled, updated.Status)
	assert.True(t, next.Equal(updated.ScheduledTime))
}

func TestSocialMediaFlow_DeleteAndMissing(t *testing.T) {
	f := newPostFixture()
	ctx := context.Background()
	post := f.create(t, nil)

	require.NoError(t, f.flow.Delete(ctx, managerPrincipal(), post.ID, nil))
	assert.Equal(t, 0, f.posts.len())

	err := f.flow.Delete(ctx, managerPrincipal(), post.ID, nil)
	assert.True(t, IsPostNotFound(err))

	_, err = f.flow.Get(ctx, managerPrincipal(), post.ID)
	assert.True(t, IsPostNotFound(err))
}

func TestSocialMediaFlow_ListNewestFirst(t *testing.T) {
	f := newPostFixture()
	ctx := context.Background()
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	// scheduled order is the reverse of creation order
	for _, offset := range []int{1, 3, 2} {
		require.NoError(t, f.posts.Save(ctx, &models.SocialMediaPost{
			Content:       "post",
			ScheduledTime: created.Add(time.Duration(10-offset) * time.Hour),
			CreatedAt:     created.Add(time.Duration(offset) * time.Minute),
		}))
	}

	posts, err := f.flow.List(ctx, managerPrincipal())
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.True(t, posts[0].CreatedAt.After(posts[1].CreatedAt))
	assert.True(t, posts[1].CreatedAt.After(posts[2].CreatedAt))
	assert.True(t, posts[0].ScheduledTime.Before(posts[2].ScheduledTime))
}

func TestSocialMediaFlow_AdminAllowedUserForbidden(t *testing.T) {
	f := newPostFixture()
	ctx := context.Background()

	_, err := f.flow.List(ctx, &Principal{ID: uuid.New(), Role: models.RoleAdmin})
	assert.NoError(t, err)

	_, err = f.flow.List(ctx, &Principal{ID: uuid.New(), Role: models.RoleUser})
	assert.True(t, IsForbidden(err))
}
