package businessflow

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirphl/marketing-manager/app/dto"
	"github.com/amirphl/marketing-manager/models"
	"github.com/amirphl/marketing-manager/repository"
	"github.com/amirphl/marketing-manager/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PromoCodeFlow handles promo code management operations
type PromoCodeFlow interface {
	List(ctx context.Context, principal *Principal) ([]*models.PromoCode, error)
	Get(ctx context.Context, principal *Principal, id uuid.UUID) (*models.PromoCode, error)
	Create(ctx context.Context, principal *Principal, req *dto.CreatePromoCodeRequest, metadata *ClientMetadata) (*models.PromoCode, error)
	Update(ctx context.Context, principal *Principal, id uuid.UUID, req *dto.UpdatePromoCodeRequest, metadata *ClientMetadata) (*models.PromoCode, error)
	Delete(ctx context.Context, principal *Principal, id uuid.UUID, metadata *ClientMetadata) error
}

// PromoCodeFlowImpl implements the promo code business flow
type PromoCodeFlowImpl struct {
	promoRepo repository.PromoCodeRepository
	auditRepo repository.AuditLogRepository
	withTx    TxRunner
}

// NewPromoCodeFlow creates a new promo code flow instance
func NewPromoCodeFlow(promoRepo repository.PromoCodeRepository, auditRepo repository.AuditLogRepository, withTx TxRunner) PromoCodeFlow {
	return &PromoCodeFlowImpl{
		promoRepo: promoRepo,
		auditRepo: auditRepo,
		withTx:    withTx,
	}
}

// List returns every promo code, newest first
func (s *PromoCodeFlowImpl) List(ctx context.Context, principal *Principal) ([]*models.PromoCode, error) {
	if err := Authorize(principal, ManagerRoles...); err != nil {
		return nil, err
	}

	promos, err := s.promoRepo.ListAll(ctx)
	if err != nil {
		return nil, NewBusinessError("LIST_PROMO_CODES_FAILED", "Failed to list promo codes", err)
	}
	return promos, nil
}

// Get returns one promo code
func (s *PromoCodeFlowImpl) Get(ctx context.Context, principal *Principal, id uuid.UUID) (*models.PromoCode, error) {
	if err := Authorize(principal, ManagerRoles...); err != nil {
		return nil, err
	}
	return s.load(ctx, id)
}

// Create stores a new promo code; codes are unique after normalization
func (s *PromoCodeFlowImpl) Create(ctx context.Context, principal *Principal, req *dto.CreatePromoCodeRequest, metadata *ClientMetadata) (*models.PromoCode, error) {
	if err := Authorize(principal, ManagerRoles...); err != nil {
		return nil, err
	}

	promo := &models.PromoCode{
		Code:               utils.NormalizePromoCode(req.Code),
		DiscountPercentage: req.DiscountPercentage,
		ExpirationDate:     req.ExpirationDate,
		IsActive:           utils.ToPtr(true),
		CreatedBy:          principal.ID,
	}
	if req.Conditions != nil {
		applyPromoConditions(&promo.Conditions, req.Conditions)
	}

	err := s.withTx(ctx, func(txCtx context.Context) error {
		existing, err := s.promoRepo.ByCode(txCtx, promo.Code)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrPromoCodeExists
		}
		if err := s.promoRepo.Save(txCtx, promo); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrPromoCodeExists
			}
			return err
		}
		return nil
	})
	if err != nil {
		errMsg := fmt.Sprintf("Promo code creation failed: %v", err)
		_ = createAuditLog(ctx, s.auditRepo, &principal.ID, models.AuditActionPromoCodeCreated, errMsg, false, &errMsg, metadata)
		if IsPromoCodeExists(err) {
			return nil, NewBusinessError("PROMO_CODE_EXISTS", "Promo code already exists", err)
		}
		return nil, NewBusinessError("PROMO_CODE_CREATION_FAILED", "Promo code creation failed", err)
	}

	msg := fmt.Sprintf("Promo code created: %s (%s)", promo.ID, promo.Code)
	_ = createAuditLog(ctx, s.auditRepo, &principal.ID, models.AuditActionPromoCodeCreated, msg, true, nil, metadata)

	return promo, nil
}

// Update applies the fields present in req; the code itself never changes
func (s *PromoCodeFlowImpl) Update(ctx context.Context, principal *Principal, id uuid.UUID, req *dto.UpdatePromoCodeRequest, metadata *ClientMetadata) (*models.PromoCode, error) {
	if err := Authorize(principal, ManagerRoles...); err != nil {
		return nil, err
	}

	promo, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.DiscountPercentage != nil {
		promo.DiscountPercentage = *req.DiscountPercentage
	}
	if req.ExpirationDate != nil {
		promo.ExpirationDate = *req.ExpirationDate
	}
	if req.IsActive != nil {
		promo.IsActive = utils.ToPtr(*req.IsActive)
	}
	if req.Conditions != nil {
		applyPromoConditions(&promo.Conditions, req.Conditions)
	}

	if err := s.promoRepo.Update(ctx, promo); err != nil {
		errMsg := fmt.Sprintf("Promo code update failed: %v", err)
		_ = createAuditLog(ctx, s.auditRepo, &principal.ID, models.AuditActionPromoCodeUpdated, errMsg, false, &errMsg, metadata)
		return nil, NewBusinessError("PROMO_CODE_UPDATE_FAILED", "Promo code update failed", err)
	}

	msg := fmt.Sprintf("Promo code updated: %s", promo.ID)
	_ = createAuditLog(ctx, s.auditRepo, &principal.ID, models.AuditActionPromoCodeUpdated, msg, true, nil, metadata)

	return promo, nil
}

// Delete removes a promo code
func (s *PromoCodeFlowImpl) Delete(ctx context.Context, principal *Principal, id uuid.UUID, metadata *ClientMetadata) error {
	if err := Authorize(principal, ManagerRoles...); err != nil {
		return err
	}

	deleted, err := s.promoRepo.DeleteByID(ctx, id)
	if err != nil {
		return NewBusinessError("PROMO_CODE_DELETE_FAILED", "Promo code deletion failed", err)
	}
	if !deleted {
		return NewBusinessError("PROMO_CODE_NOT_FOUND", "Promo code not found", ErrPromoCodeNotFound)
	}

	msg := fmt.Sprintf("Promo code deleted: %s", id)
	_ = createAuditLog(ctx, s.auditRepo, &principal.ID, models.AuditActionPromoCodeDeleted, msg, true, nil, metadata)
	return nil
}

func (s *PromoCodeFlowImpl) load(ctx context.Context, id uuid.UUID) (*models.PromoCode, error) {
	promo, err := s.promoRepo.ByID(ctx, id)
	if err != nil {
		return nil, NewBusinessError("GET_PROMO_CODE_FAILED", "Failed to load promo code", err)
	}
	if promo == nil {
		return nil, NewBusinessError("PROMO_CODE_NOT_FOUND", "Promo code not found", ErrPromoCodeNotFound)
	}
	return promo, nil
}

func applyPromoConditions(dst *models.PromoConditions, in *dto.PromoConditionsInput) {
	if in.MinPurchaseAmount != nil {
		dst.MinPurchaseAmount = *in.MinPurchaseAmount
	}
	if in.ProductCategory != nil {
		dst.ProductCategory = in.ProductCategory
	}
	if in.IsFirstPurchaseOnly != nil {
		dst.IsFirstPurchaseOnly = *in.IsFirstPurchaseOnly
	}
}
