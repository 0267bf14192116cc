package repository

import (
	"context"

	"github.com/amirphl/marketing-manager/models"
	"github.com/google/uuid"
)

// RepositoryContext key for transaction in context
type contextKey string

const TxContextKey contextKey = "tx"

type Repository[T any, F any] interface {
	ByID(ctx context.Context, id uuid.UUID) (*T, error)
	ByFilter(ctx context.Context, filter F, orderBy string, limit, offset int) ([]*T, error)
	Save(ctx context.Context, entity *T) error
}

// UserRepository defines operations for users
type UserRepository interface {
	Repository[models.User, models.UserFilter]
	ByEmail(ctx context.Context, email string) (*models.User, error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
}

// CampaignRepository defines operations for campaigns
type CampaignRepository interface {
	Repository[models.Campaign, models.CampaignFilter]
	Update(ctx context.Context, campaign *models.Campaign) error
	DeleteByID(ctx context.Context, id uuid.UUID) (bool, error)
	ListAll(ctx context.Context) ([]*models.Campaign, error)
}

// PromoCodeRepository defines operations for promo codes
type PromoCodeRepository interface {
	Repository[models.PromoCode, models.PromoCodeFilter]
	ByCode(ctx context.Context, code string) (*models.PromoCode, error)
	Update(ctx context.Context, promo *models.PromoCode) error
	DeleteByID(ctx context.Context, id uuid.UUID) (bool, error)
	ListAll(ctx context.Context) ([]*models.PromoCode, error)
}

// SocialMediaPostRepository defines operations for social media posts
type SocialMediaPostRepository interface {
	Repository[models.SocialMediaPost, models.SocialMediaPostFilter]
	Update(ctx context.Context, post *models.SocialMediaPost) error
	DeleteByID(ctx context.Context, id uuid.UUID) (bool, error)
	ListAll(ctx context.Context) ([]*models.SocialMediaPost, error)
}

// AnalyticsRepository defines operations for analytics rows
type AnalyticsRepository interface {
	Repository[models.AnalyticsRecord, models.AnalyticsFilter]
	ByCampaignID(ctx context.Context, campaignID uuid.UUID) ([]*models.AnalyticsRecord, error)
	ByPromoCodeID(ctx context.Context, promoCodeID uuid.UUID) ([]*models.AnalyticsRecord, error)
}

// AuditLogRepository appends audit entries
type AuditLogRepository interface {
	Save(ctx context.Context, log *models.AuditLog) error
}
