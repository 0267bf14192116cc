package testing

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/amirphl/marketing-manager/models"
	"github.com/amirphl/marketing-manager/utils"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

// DefaultTestPassword satisfies the registration password policy
const DefaultTestPassword = "TestPass123!"

// TestFixtures provides helper methods for creating test data
type TestFixtures struct {
	DB *TestDB
}

// NewTestFixtures creates a new test fixtures instance
func NewTestFixtures(db *TestDB) *TestFixtures {
	return &TestFixtures{DB: db}
}

// NewUser builds an unsaved user with a bcrypt hash of DefaultTestPassword
func NewUser(role models.Role) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultTestPassword), bcrypt.MinCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	return &models.User{
		ID:           uuid.New(),
		Name:         "Jane Doe",
		Email:        fmt.Sprintf("jane.%d@example.com", rand.Intn(1_000_000)),
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    utils.UTCNow(),
	}, nil
}

// NewCampaign builds an unsaved campaign running for one week from start
func NewCampaign(createdBy uuid.UUID, start time.Time) *models.Campaign {
	return &models.Campaign{
		ID:        uuid.New(),
		Name:      "Spring Launch",
		Budget:    1500,
		StartDate: start,
		EndDate:   start.Add(7 * 24 * time.Hour),
		Platforms: pq.StringArray{"facebook", "email"},
		Status:    models.CampaignStatusScheduled,
		TargetAudience: models.TargetAudience{
			AgeRange:  &models.AgeRange{Min: utils.ToPtr(18), Max: utils.ToPtr(45)},
			Interests: []string{"fitness"},
		},
		CreatedBy: createdBy,
		CreatedAt: utils.UTCNow(),
	}
}

// NewPromoCode builds an unsaved active promo code expiring in 30 days
func NewPromoCode(createdBy uuid.UUID, code string) *models.PromoCode {
	return &models.PromoCode{
		ID:                 uuid.New(),
		Code:               utils.NormalizePromoCode(code),
		DiscountPercentage: 10,
		ExpirationDate:     utils.UTCNow().Add(30 * 24 * time.Hour),
		IsActive:           utils.ToPtr(true),
		CreatedBy:          createdBy,
		CreatedAt:          utils.UTCNow(),
	}
}

// NewPost builds an unsaved post scheduled one day out
func NewPost(createdBy uuid.UUID, status models.PostStatus) *models.SocialMediaPost {
	return &models.SocialMediaPost{
		ID:            uuid.New(),
		Content:       "Big news coming soon",
		Images:        pq.StringArray{},
		ScheduledTime: utils.UTCNow().Add(24 * time.Hour),
		Platforms:     pq.StringArray{"twitter"},
		Status:        status,
		CreatedBy:     createdBy,
		CreatedAt:     utils.UTCNow(),
	}
}

// NewAnalyticsRecord builds an unsaved analytics row on date
func NewAnalyticsRecord(date time.Time, metrics models.AnalyticsMetrics) *models.AnalyticsRecord {
	return &models.AnalyticsRecord{
		ID:      uuid.New(),
		Date:    date,
		Metrics: metrics,
	}
}

// CreateTestUser persists a user with the given role
func (tf *TestFixtures) CreateTestUser(role models.Role) (*models.User, error) {
	user, err := NewUser(role)
	if err != nil {
		return nil, err
	}
	if err := tf.DB.DB.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create test user: %w", err)
	}
	return user, nil
}

// CreateTestCampaign persists a campaign owned by createdBy
func (tf *TestFixtures) CreateTestCampaign(createdBy uuid.UUID) (*models.Campaign, error) {
	campaign := NewCampaign(createdBy, utils.UTCNow().Add(24*time.Hour))
	if err := tf.DB.DB.Create(campaign).Error; err != nil {
		return nil, fmt.Errorf("failed to create test campaign: %w", err)
	}
	return campaign, nil
}
