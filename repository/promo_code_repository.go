package repository

import (
	"context"
	"fmt"

	"github.com/amirphl/marketing-manager/models"
	"github.com/amirphl/marketing-manager/utils"
	"gorm.io/gorm"
)

// PromoCodeRepositoryImpl implements the PromoCodeRepository interface
type PromoCodeRepositoryImpl struct {
	*BaseRepository[models.PromoCode, models.PromoCodeFilter]
}

// NewPromoCodeRepository creates a new promo code repository
func NewPromoCodeRepository(db *gorm.DB) PromoCodeRepository {
	return &PromoCodeRepositoryImpl{
		BaseRepository: NewBaseRepository[models.PromoCode, models.PromoCodeFilter](db),
	}
}

// ByCode retrieves a promo code by its normalized code
func (r *PromoCodeRepositoryImpl) ByCode(ctx context.Context, code string) (*models.PromoCode, error) {
	normalized := utils.NormalizePromoCode(code)
	promos, err := r.ByFilter(ctx, models.PromoCodeFilter{Code: &normalized}, "", 1, 0)
	if err != nil {
		return nil, err
	}
	if len(promos) == 0 {
		return nil, nil
	}
	return promos[0], nil
}

// ListAll returns every promo code ordered by creation time, newest first
func (r *PromoCodeRepositoryImpl) ListAll(ctx context.Context) ([]*models.PromoCode, error) {
	return r.ByFilter(ctx, models.PromoCodeFilter{}, "created_at DESC", 0, 0)
}

// ByFilter retrieves promo codes based on filter criteria
func (r *PromoCodeRepositoryImpl) ByFilter(ctx context.Context, filter models.PromoCodeFilter, orderBy string, limit, offset int) ([]*models.PromoCode, error) {
	db := r.getDB(ctx)

	var promos []*models.PromoCode
	query := paginate(r.applyFilter(db, filter), orderBy, limit, offset)
	if err := query.Find(&promos).Error; err != nil {
		return nil, fmt.Errorf("failed to find promo codes by filter: %w", err)
	}
	return promos, nil
}

func (r *PromoCodeRepositoryImpl) applyFilter(db *gorm.DB, filter models.PromoCodeFilter) *gorm.DB {
	if filter.Code != nil {
		db = db.Where("code = ?", *filter.Code)
	}
	if filter.CreatedAfter != nil {
		db = db.Where("created_at >= ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		db = db.Where("created_at <= ?", *filter.CreatedBefore)
	}
	return db
}
