package repository

import (
	"context"
	"fmt"

	"github.com/amirphl/marketing-manager/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AnalyticsRepositoryImpl implements the AnalyticsRepository interface
type AnalyticsRepositoryImpl struct {
	*BaseRepository[models.AnalyticsRecord, models.AnalyticsFilter]
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &AnalyticsRepositoryImpl{
		BaseRepository: NewBaseRepository[models.AnalyticsRecord, models.AnalyticsFilter](db),
	}
}

// ByCampaignID returns every analytics row attributed to a campaign
func (r *AnalyticsRepositoryImpl) ByCampaignID(ctx context.Context, campaignID uuid.UUID) ([]*models.AnalyticsRecord, error) {
	return r.ByFilter(ctx, models.AnalyticsFilter{CampaignID: &campaignID}, "date ASC", 0, 0)
}

// ByPromoCodeID returns every analytics row attributed to a promo code
func (r *AnalyticsRepositoryImpl) ByPromoCodeID(ctx context.Context, promoCodeID uuid.UUID) ([]*models.AnalyticsRecord, error) {
	return r.ByFilter(ctx, models.AnalyticsFilter{PromoCodeID: &promoCodeID}, "date ASC", 0, 0)
}

// ByFilter retrieves analytics rows based on filter criteria
func (r *AnalyticsRepositoryImpl) ByFilter(ctx context.Context, filter models.AnalyticsFilter, orderBy string, limit, offset int) ([]*models.AnalyticsRecord, error) {
	db := r.getDB(ctx)

	var rows []*models.AnalyticsRecord
	query := paginate(r.applyFilter(db, filter), orderBy, limit, offset)
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to find analytics by filter: %w", err)
	}
	return rows, nil
}

func (r *AnalyticsRepositoryImpl) applyFilter(db *gorm.DB, filter models.AnalyticsFilter) *gorm.DB {
	if filter.CampaignID != nil {
		db = db.Where("campaign_id = ?", *filter.CampaignID)
	}
	if filter.PromoCodeID != nil {
		db = db.Where("promo_code_id = ?", *filter.PromoCodeID)
	}
	if filter.DateFrom != nil {
		db = db.Where("date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		db = db.Where("date <= ?", *filter.DateTo)
	}
	return db
}
