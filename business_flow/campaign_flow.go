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

// CampaignFlow handles campaign management operations
type CampaignFlow interface {
	List(ctx context.Context, principal *Principal) ([]*models.Campaign, error)
	Get(ctx context.Context, principal *Principal, id uuid.UUID) (*models.Campaign, error)
	Create(ctx context.Context, principal *Principal, req *dto.CreateCampaignRequest, metadata *ClientMetadata) (*models.Campaign, error)
	Update(ctx context.Context, principal *Principal, id uuid.UUID, req *dto.UpdateCampaignRequest, metadata *ClientMetadata) (*models.Campaign, error)
	Delete(ctx context.Context, principal *Principal, id uuid.UUID, metadata *ClientMetadata) error
}

// CampaignFlowImpl implements the campaign business flow
type CampaignFlowImpl struct {
	campaignRepo repository.CampaignRepository
	auditRepo    repository.AuditLogRepository
}

// NewCampaignFlow creates a new campaign flow instance
func NewCampaignFlow(campaignRepo repository.CampaignRepository, auditRepo repository.AuditLogRepository) CampaignFlow {
	return &CampaignFlowImpl{
		campaignRepo: campaignRepo,
		auditRepo:    auditRepo,
	}
}

// List returns every campaign, newest first
func (s *CampaignFlowImpl) List(ctx context.Context, principal *Principal) ([]*models.Campaign, error) {
	if err := Authorize(principal, ManagerRoles...); err != nil {
		return nil, err
	}

	campaigns, err := s.campaignRepo.ListAll(ctx)
	if err != nil {
		return nil, NewBusinessError("LIST_CAMPAIGNS_FAILED", "Failed to list campaigns", err)
	}
	return campaigns, nil
}

// Get returns one campaign
func (s *CampaignFlowImpl) Get(ctx context.Context, principal *Principal, id uuid.UUID) (*models.Campaign, error) {
	if err := Authorize(principal, ManagerRoles...); err != nil {
		return nil, err
	}
	return s.load(ctx, id)
}

// Create stores a new campaign owned by the caller
func (s *CampaignFlowImpl) Create(ctx context.Context, principal *Principal, req *dto.CreateCampaignRequest, metadata *ClientMetadata) (*models.Campaign, error) {
	if err := Authorize(principal, ManagerRoles...); err != nil {
		return nil, err
	}

	campaign := &models.Campaign{
		Name:        req.Name,
		Budget:      req.Budget,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Platforms:   pq.StringArray(req.Platforms),
		Status:      models.CampaignStatusScheduled,
		Description: req.Description,
		CreatedBy:   principal.ID,
	}
	if req.TargetAudience != nil {
		campaign.TargetAudience = *req.TargetAudience
	}
	if !campaign.HasValidDateRange() {
		return nil, NewBusinessError("INVALID_DATE_RANGE", "End date must be after start date", ErrInvalidDateRange)
	}

	if err := s.campaignRepo.Save(ctx, campaign); err != nil {
		errMsg := fmt.Sprintf("Campaign creation failed: %v", err)
		_ = createAuditLog(ctx, s.auditRepo, &principal.ID, models.AuditActionCampaignCreated, errMsg, false, &errMsg, metadata)
		return nil, NewBusinessError("CAMPAIGN_CREATION_FAILED", "Campaign creation failed", err)
	}

	msg := fmt.Sprintf("Campaign created: %s", campaign.ID)
	_ = createAuditLog(ctx, s.auditRepo, &principal.ID, models.AuditActionCampaignCreated, msg, true, nil, metadata)

	return campaign, nil
}

// Update applies the fields present in req
func (s *CampaignFlowImpl) Update(ctx context.Context, principal *Principal, id uuid.UUID, req *dto.UpdateCampaignRequest, metadata *ClientMetadata) (*models.Campaign, error) {
	if err := Authorize(principal, ManagerRoles...); err != nil {
		return nil, err
	}

	campaign, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	applyCampaignUpdate(campaign, req)
	if !campaign.HasValidDateRange() {
		return nil, NewBusinessError("INVALID_DATE_RANGE", "End date must be after start date", ErrInvalidDateRange)
	}

	if err := s.campaignRepo.Update(ctx, campaign); err != nil {
		errMsg := fmt.Sprintf("Campaign update failed: %v", err)
		_ = createAuditLog(ctx, s.auditRepo, &principal.ID, models.AuditActionCampaignUpdated, errMsg, false, &errMsg, metadata)
		return nil, NewBusinessError("CAMPAIGN_UPDATE_FAILED", "Campaign update failed", err)
	}

	msg := fmt.Sprintf("Campaign updated: %s", campaign.ID)
	_ = createAuditLog(ctx, s.auditRepo, &principal.ID, models.AuditActionCampaignUpdated, msg, true, nil, metadata)

	return campaign, nil
}

// Delete removes a campaign
func (s *CampaignFlowImpl) Delete(ctx context.Context, principal *Principal, id uuid.UUID, metadata *ClientMetadata) error {
	if err := Authorize(principal, ManagerRoles...); err != nil {
		return err
	}

	deleted, err := s.campaignRepo.DeleteByID(ctx, id)
	if err != nil {
		return NewBusinessError("CAMPAIGN_DELETE_FAILED", "Campaign deletion failed", err)
	}
	if !deleted {
		return NewBusinessError("CAMPAIGN_NOT_FOUND", "Campaign not found", ErrCampaignNotFound)
	}

	msg := fmt.Sprintf("Campaign deleted: %s", id)
	_ = createAuditLog(ctx, s.auditRepo, &principal.ID, models.AuditActionCampaignDeleted, msg, true, nil, metadata)
	return nil
}

func (s *CampaignFlowImpl) load(ctx context.Context, id uuid.UUID) (*models.Campaign, error) {
	campaign, err := s.campaignRepo.ByID(ctx, id)
	if err != nil {
		return nil, NewBusinessError("GET_CAMPAIGN_FAILED", "Failed to load campaign", err)
	}
	if campaign == nil {
		return nil, NewBusinessError("CAMPAIGN_NOT_FOUND", "Campaign not found", ErrCampaignNotFound)
	}
	return campaign, nil
}

func applyCampaignUpdate(c *models.Campaign, req *dto.UpdateCampaignRequest) {
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.TargetAudience != nil {
		c.TargetAudience = *req.TargetAudience
	}
	if req.Budget != nil {
		c.Budget = *req.Budget
	}
	if req.StartDate != nil {
		c.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		c.EndDate = *req.EndDate
	}
	if req.Platforms != nil {
		c.Platforms = pq.StringArray(*req.Platforms)
	}
	if req.Status != nil {
		c.Status = models.CampaignStatus(*req.Status)
	}
	if req.Description != nil {
		c.Description = req.Description
	}
}
