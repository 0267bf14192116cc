package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirphl/marketing-manager/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SocialMediaPostRepositoryImpl implements the SocialMediaPostRepository interface
type SocialMediaPostRepositoryImpl struct {
	*BaseRepository[models.SocialMediaPost, models.SocialMediaPostFilter]
}

// NewSocialMediaPostRepository creates a new social media post repository
func NewSocialMediaPostRepository(db *gorm.DB) SocialMediaPostRepository {
	return &SocialMediaPostRepositoryImpl{
		BaseRepository: NewBaseRepository[models.SocialMediaPost, models.SocialMediaPostFilter](db),
	}
}

// ByID retrieves a post with its campaign summary
func (r *SocialMediaPostRepositoryImpl) ByID(ctx context.Context, id uuid.UUID) (*models.SocialMediaPost, error) {
	db := r.getDB(ctx)

	var post models.SocialMediaPost
	err := withCampaign(db).Where("id = ?", id).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find social media post by ID %s: %w", id, err)
	}
	return &post, nil
}

// ListAll returns every post ordered by creation time, newest first
func (r *SocialMediaPostRepositoryImpl) ListAll(ctx context.Context) ([]*models.SocialMediaPost, error) {
	return r.ByFilter(ctx, models.SocialMediaPostFilter{}, "created_at DESC", 0, 0)
}

// ByFilter retrieves posts based on filter criteria
func (r *SocialMediaPostRepositoryImpl) ByFilter(ctx context.Context, filter models.SocialMediaPostFilter, orderBy string, limit, offset int) ([]*models.SocialMediaPost, error) {
	db := r.getDB(ctx)

	var posts []*models.SocialMediaPost
	query := withCampaign(paginate(r.applyFilter(db, filter), orderBy, limit, offset))
	if err := query.Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("failed to find social media posts by filter: %w", err)
	}
	return posts, nil
}

func (r *SocialMediaPostRepositoryImpl) applyFilter(db *gorm.DB, filter models.SocialMediaPostFilter) *gorm.DB {
	if filter.CreatedAfter != nil {
		db = db.Where("created_at >= ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		db = db.Where("created_at <= ?", *filter.CreatedBefore)
	}
	return db
}

// withCampaign preloads the id and name of the linked campaign
func withCampaign(db *gorm.DB) *gorm.DB {
	return db.Preload("Campaign", func(tx *gorm.DB) *gorm.DB {
		return tx.Select("id", "name")
	})
}
