package businessflow

import (
	"context"
	"fmt"

	"github.com/amirphl/marketing-manager/app/dto"
	"github.com/amirphl/marketing-manager/models"
	"github.com/amirphl/marketing-manager/repository"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// SocialMediaFlow handles scheduled post operations. Posts are stored only;
// nothing is ever sent to a platform.
type SocialMediaFlow interface {
	List(ctx context.Context, principal *Principal) ([]*models.SocialMediaPost, error)
	Get(ctx context.Context, principal *Principal, id uuid.UUID) (*models.SocialMediaPost, error)
	Create(ctx context.Context, principal *Principal, req *dto.CreateSocialMediaPostRequest, metadata *ClientMetadata) (*models.SocialMediaPost, error)
	Update(ctx context.Context, principal *Principal, id uuid.UUID, req *dto.UpdateSocialMediaPostRequest, metadata *ClientMetadata) (*models.SocialMediaPost, error)
	Delete(ctx context.Context, principal *Principal, id uuid.UUID, metadata *ClientMetadata) error
}

// SocialMediaFlowImpl implements the social media business flow
type SocialMediaFlowImpl struct {
	postRepo     repository.SocialMediaPostRepository
	campaignRepo repository.CampaignRepository
	auditRepo    repository.AuditLogRepository
}

// NewSocialMediaFlow creates a new social media flow instance
func NewSocialMediaFlow(
	postRepo repository.SocialMediaPostRepository,
	campaignRepo repository.CampaignRepository,
	auditRepo repository.AuditLogRepository,
) SocialMediaFlow {
	return &SocialMediaFlowImpl{
		postRepo:     postRepo,
		campaignRepo: campaignRepo,
		auditRepo:    auditRepo,
	}
}

// List returns every post ordered by scheduled time
func (s *SocialMediaFlowImpl) List(ctx context.Context, principal *Principal) ([]*models.SocialMediaPost, error) {
	if err := Authorize(principal, ManagerRoles...); err != nil {
		return nil, err
	}

	posts, err := s.postRepo.ListAll(ctx)
	if err != nil {
		return nil, NewBusinessError("LIST_POSTS_FAILED", "Failed to list posts", err)
	}
	return posts, nil
}

// Get returns one post with its campaign summary
func (s *SocialMediaFlowImpl) Get(ctx context.Context, principal *Principal, id uuid.UUID) (*models.SocialMediaPost, error) {
	if err := Authorize(principal, ManagerRoles...); err != nil {
		return nil, err
	}
	return s.load(ctx, id)
}

// Create schedules a new post
func (s *SocialMediaFlowImpl) Create(ctx context.Context, principal *Principal, req *dto.CreateSocialMediaPostRequest, metadata *ClientMetadata) (*models.SocialMediaPost, error) {
	if err := Authorize(principal, ManagerRoles...); err != nil {
		return nil, err
	}

	post := &models.SocialMediaPost{
		Content:       req.Content,
		Images:        pq.StringArray(req.Images),
		ScheduledTime: req.ScheduledTime,
		Platforms:     pq.StringArray(req.Platforms),
		Status:        models.PostStatusScheduled,
		CreatedBy:     principal.ID,
	}

	campaign, err := s.resolveCampaign(ctx, req.Campaign)
	if err != nil {
		return nil, err
	}
	if campaign != nil {
		post.CampaignID = &campaign.ID
		post.Campaign = campaign
	}

	if err := s.postRepo.Save(ctx, post); err != nil {
		errMsg := fmt.Sprintf("Post creation failed: %v", err)
		_ = createAuditLog(ctx, s.auditRepo, &principal.ID, models.AuditActionPostCreated, errMsg, false, &errMsg, metadata)
		return nil, NewBusinessError("POST_CREATION_FAILED", "Post creation failed", err)
	}

	msg := fmt.Sprintf("Post scheduled: %s at %s", post.ID, post.ScheduledTime.Format("2006-01-02T15:04:05Z07:00"))
	_ = createAuditLog(ctx, s.auditRepo, &principal.ID, models.AuditActionPostCreated, msg, true, nil, metadata)

	return post, nil
}

// Update applies the fields present in req. A posted post only accepts a
// request that sets status to posted and nothing else, which changes nothing.
func (s *SocialMediaFlowImpl) Update(ctx context.Context, principal *Principal, id uuid.UUID, req *dto.UpdateSocialMediaPostRequest, metadata *ClientMetadata) (*models.SocialMediaPost, error) {
	if err := Authorize(principal, ManagerRoles...); err != nil {
		return nil, err
	}

	post, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if post.IsPublished() {
		if req.OnlyMarksPosted() {
			return post, nil
		}
		errMsg := fmt.Sprintf("Rejected edit of published post %s", post.ID)
		_ = createAuditLog(ctx, s.auditRepo, &principal.ID, models.AuditActionPostUpdated, errMsg, false, &errMsg, metadata)
		return nil, NewBusinessError("POST_PUBLISHED", "Cannot edit a post that has already been published", ErrPublishedPostImmutable)
	}

	if req.Campaign != nil {
		campaign, err := s.resolveCampaign(ctx, req.Campaign)
		if err != nil {
			return nil, err
		}
		post.CampaignID = nil
		post.Campaign = nil
		if campaign != nil {
			post.CampaignID = &campaign.ID
			post.Campaign = campaign
		}
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.Images != nil {
		post.Images = pq.StringArray(*req.Images)
	}
	if req.ScheduledTime != nil {
		post.ScheduledTime = *req.ScheduledTime
	}
	if req.Platforms != nil {
		post.Platforms = pq.StringArray(*req.Platforms)
	}
	if req.Status != nil {
		post.Status = models.PostStatus(*req.Status)
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		errMsg := fmt.Sprintf("Post update failed: %v", err)
		_ = createAuditLog(ctx, s.auditRepo, &principal.ID, models.AuditActionPostUpdated, errMsg, false, &errMsg, metadata)
		return nil, NewBusinessError("POST_UPDATE_FAILED", "Post update failed", err)
	}

	msg := fmt.Sprintf("Post updated: %s (%s)", post.ID, post.Status)
	_ = createAuditLog(ctx, s.auditRepo, &principal.ID, models.AuditActionPostUpdated, msg, true, nil, metadata)

	return post, nil
}

// Delete removes a post that has not been published
func (s *SocialMediaFlowImpl) Delete(ctx context.Context, principal *Principal, id uuid.UUID, metadata *ClientMetadata) error {
	if err := Authorize(principal, ManagerRoles...); err != nil {
		return err
	}

	post, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if post.IsPublished() {
		return NewBusinessError("POST_PUBLISHED", "Cannot delete a post that has already been published", ErrPublishedPostImmutable)
	}

	deleted, err := s.postRepo.DeleteByID(ctx, id)
	if err != nil {
		return NewBusinessError("POST_DELETE_FAILED", "Post deletion failed", err)
	}
	if !deleted {
		return NewBusinessError("POST_NOT_FOUND", "Post not found", ErrPostNotFound)
	}

	msg := fmt.Sprintf("Post deleted: %s", id)
	_ = createAuditLog(ctx, s.auditRepo, &principal.ID, models.AuditActionPostDeleted, msg, true, nil, metadata)
	return nil
}

func (s *SocialMediaFlowImpl) load(ctx context.Context, id uuid.UUID) (*models.SocialMediaPost, error) {
	post, err := s.postRepo.ByID(ctx, id)
	if err != nil {
		return nil, NewBusinessError("GET_POST_FAILED", "Failed to load post", err)
	}
	if post == nil {
		return nil, NewBusinessError("POST_NOT_FOUND", "Post not found", ErrPostNotFound)
	}
	return post, nil
}

// resolveCampaign returns the referenced campaign summary; an empty reference means none
func (s *SocialMediaFlowImpl) resolveCampaign(ctx context.Context, ref *string) (*models.CampaignSummary, error) {
	if ref == nil || *ref == "" {
		return nil, nil
	}

	id, err := repository.ParseID(*ref)
	if err != nil {
		return nil, NewBusinessError("CAMPAIGN_NOT_FOUND", "Campaign not found", ErrCampaignNotFound)
	}

	campaign, err := s.campaignRepo.ByID(ctx, id)
	if err != nil {
		return nil, NewBusinessError("GET_CAMPAIGN_FAILED", "Failed to load campaign", err)
	}
	if campaign == nil {
		return nil, NewBusinessError("CAMPAIGN_NOT_FOUND", "Campaign not found", ErrCampaignNotFound)
	}
	return &models.CampaignSummary{ID: campaign.ID, Name: campaign.Name}, nil
}
