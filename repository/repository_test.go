package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/amirphl/marketing-manager/models"
	testutil "github.com/amirphl/marketing-manager/testing"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) *testutil.MockDB {
	t.Helper()
	mdb, err := testutil.NewMockDB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mdb.Close() })
	return mdb
}

var campaignColumns = []string{
	"id", "name", "target_audience", "budget", "start_date", "end_date",
	"platforms", "status", "description", "created_by", "created_at", "updated_at", "metrics",
}

func TestIsValidID(t *testing.T) {
	assert.True(t, IsValidID(uuid.NewString()))
	assert.True(t, IsValidID("  "+uuid.NewString()+" "))
	assert.False(t, IsValidID(""))
	assert.False(t, IsValidID("507f1f77bcf86cd799439011"))
	assert.False(t, IsValidID("not-an-id"))
}

func TestCampaignRepository_ByID(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mdb := newMock(t)
		repo := NewCampaignRepository(mdb.DB)

		id := uuid.New()
		owner := uuid.New()
		start := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
		rows := sqlmock.NewRows(campaignColumns).AddRow(
			id.String(), "Launch", `{"ageRange":{"min":18},"interests":["tech"]}`, 250.5,
			start, start.Add(48*time.Hour), "{facebook,email}", "active", nil,
			owner.String(), start, nil, `{"impressions":10,"clicks":2,"conversions":1}`,
		)
		mdb.Mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "campaigns" WHERE id = $1`)).WillReturnRows(rows)

		c, err := repo.ByID(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, c)
		assert.Equal(t, id, c.ID)
		assert.Equal(t, owner, c.CreatedBy)
		assert.Equal(t, models.CampaignStatusActive, c.Status)
		assert.Equal(t, []string{"facebook", "email"}, []string(c.Platforms))
		require.NotNil(t, c.TargetAudience.AgeRange)
		assert.Equal(t, 18, *c.TargetAudience.AgeRange.Min)
		assert.Nil(t, c.TargetAudience.AgeRange.Max)
		assert.Equal(t, int64(10), c.Metrics.Impressions)
		assert.NoError(t, mdb.Mock.ExpectationsWereMet())
	})

	t.Run("missing row yields nil without error", func(t *testing.T) {
		mdb := newMock(t)
		repo := NewCampaignRepository(mdb.DB)

		mdb.Mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "campaigns"`)).
			WillReturnRows(sqlmock.NewRows(campaignColumns))

		c, err := repo.ByID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, c)
	})

	t.Run("driver errors are wrapped", func(t *testing.T) {
		mdb := newMock(t)
		repo := NewCampaignRepository(mdb.DB)

		boom := errors.New("connection reset")
		mdb.Mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "campaigns"`)).WillReturnError(boom)

		c, err := repo.ByID(ctx, uuid.New())
		assert.Nil(t, c)
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "failed to find entity by ID")
	})
}

func TestCampaignRepository_ListAllOrdersNewestFirst(t *testing.T) {
	mdb := newMock(t)
	repo := NewCampaignRepository(mdb.DB)

	mdb.Mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "campaigns" ORDER BY created_at DESC`)).
		WillReturnRows(sqlmock.NewRows(campaignColumns))

	list, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NoError(t, mdb.Mock.ExpectationsWereMet())
}

func TestCampaignRepository_ByFilterCreatedWindowIsInclusive(t *testing.T) {
	mdb := newMock(t)
	repo := NewCampaignRepository(mdb.DB)

	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 31, 23, 59, 59, 999_000_000, time.UTC)
	mdb.Mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "campaigns" WHERE created_at >= $1 AND created_at <= $2`)).
		WithArgs(from, to).
		WillReturnRows(sqlmock.NewRows(campaignColumns))

	_, err := repo.ByFilter(context.Background(), models.CampaignFilter{CreatedAfter: &from, CreatedBefore: &to}, "", 0, 0)
	require.NoError(t, err)
	assert.NoError(t, mdb.Mock.ExpectationsWereMet())
}

func TestCampaignRepository_DeleteByID(t *testing.T) {
	ctx := context.Background()

	t.Run("existing row", func(t *testing.T) {
		mdb := newMock(t)
		repo := NewCampaignRepository(mdb.DB)
		id := uuid.New()

		mdb.Mock.ExpectBegin()
		mdb.Mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "campaigns" WHERE id = $1`)).
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mdb.Mock.ExpectCommit()

		deleted, err := repo.DeleteByID(ctx, id)
		require.NoError(t, err)
		assert.True(t, deleted)
		assert.NoError(t, mdb.Mock.ExpectationsWereMet())
	})

	t.Run("missing row", func(t *testing.T) {
		mdb := newMock(t)
		repo := NewCampaignRepository(mdb.DB)

		mdb.Mock.ExpectBegin()
		mdb.Mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "campaigns"`)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mdb.Mock.ExpectCommit()

		deleted, err := repo.DeleteByID(ctx, uuid.New())
		require.NoError(t, err)
		assert.False(t, deleted)
	})

	t.Run("failure rolls back", func(t *testing.T) {
		mdb := newMock(t)
		repo := NewCampaignRepository(mdb.DB)

		mdb.Mock.ExpectBegin()
		mdb.Mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "campaigns"`)).
			WillReturnError(errors.New("locked"))
		mdb.Mock.ExpectRollback()

		deleted, err := repo.DeleteByID(ctx, uuid.New())
		assert.Error(t, err)
		assert.False(t, deleted)
		assert.NoError(t, mdb.Mock.ExpectationsWereMet())
	})
}

func TestCampaignRepository_UpdateRunsInTransaction(t *testing.T) {
	mdb := newMock(t)
	repo := NewCampaignRepository(mdb.DB)

	c := testutil.NewCampaign(uuid.New(), time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC))
	mdb.Mock.ExpectBegin()
	mdb.Mock.ExpectExec(regexp.QuoteMeta(`UPDATE "campaigns" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mdb.Mock.ExpectCommit()

	require.NoError(t, repo.Update(context.Background(), c))
	assert.NotNil(t, c.UpdatedAt)
	assert.NoError(t, mdb.Mock.ExpectationsWereMet())
}

func TestPromoCodeRepository_ByCodeNormalizes(t *testing.T) {
	mdb := newMock(t)
	repo := NewPromoCodeRepository(mdb.DB)

	mdb.Mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "promo_codes" WHERE code = $1`)).
		WithArgs("SAVE10", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "code"}))

	p, err := repo.ByCode(context.Background(), "  save10 ")
	require.NoError(t, err)
	assert.Nil(t, p)
	assert.NoError(t, mdb.Mock.ExpectationsWereMet())
}

func TestSocialMediaPostRepository_ListAllPreloadsCampaign(t *testing.T) {
	mdb := newMock(t)
	repo := NewSocialMediaPostRepository(mdb.DB)

	postID := uuid.New()
	campaignID := uuid.New()
	scheduled := time.Date(2030, 3, 1, 9, 0, 0, 0, time.UTC)

	mdb.Mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "social_media_posts" ORDER BY created_at DESC`)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "content", "images", "scheduled_time", "platforms", "status", "campaign_id",
			"created_by", "created_at", "updated_at", "metrics",
		}).AddRow(
			postID.String(), "hello", "{}", scheduled, "{twitter,linkedin}", "scheduled", campaignID.String(),
			uuid.NewString(), scheduled.Add(-time.Hour), nil, `{"likes":3,"shares":0,"comments":1}`,
		))
	mdb.Mock.ExpectQuery(`SELECT .+ FROM "campaigns" WHERE "campaigns"\."id" = \$1`).
		WithArgs(campaignID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(campaignID.String(), "Launch"))

	posts, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.NotNil(t, posts[0].Campaign)
	assert.Equal(t, "Launch", posts[0].Campaign.Name)
	assert.Equal(t, []string{"twitter", "linkedin"}, []string(posts[0].Platforms))
	assert.Equal(t, int64(3), posts[0].Metrics.Likes)
	assert.NoError(t, mdb.Mock.ExpectationsWereMet())
}

func TestAnalyticsRepository_ByFilterDateRange(t *testing.T) {
	mdb := newMock(t)
	repo := NewAnalyticsRepository(mdb.DB)

	from := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 2, 29, 23, 59, 59, 999_000_000, time.UTC)

	mdb.Mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "analytics" WHERE date >= $1 AND date <= $2`)).
		WithArgs(from, to).
		WillReturnRows(sqlmock.NewRows([]string{"id", "date", "metrics"}).
			AddRow(uuid.NewString(), from, `{"views":5,"clicks":2,"conversions":1,"revenue":9.5}`).
			AddRow(uuid.NewString(), to, nil))

	rows, err := repo.ByFilter(context.Background(), models.AnalyticsFilter{DateFrom: &from, DateTo: &to}, "", 0, 0)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 9.5, rows[0].Metrics.Revenue)
	assert.Equal(t, models.AnalyticsMetrics{}, rows[1].Metrics)
	assert.NoError(t, mdb.Mock.ExpectationsWereMet())
}

func TestAnalyticsRepository_ByCampaignID(t *testing.T) {
	mdb := newMock(t)
	repo := NewAnalyticsRepository(mdb.DB)
	id := uuid.New()

	mdb.Mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "analytics" WHERE campaign_id = $1 ORDER BY date ASC`)).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	rows, err := repo.ByCampaignID(context.Background(), id)
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.NoError(t, mdb.Mock.ExpectationsWereMet())
}

func TestUserRepository_UpdatePassword(t *testing.T) {
	mdb := newMock(t)
	repo := NewUserRepository(mdb.DB)
	id := uuid.New()

	mdb.Mock.ExpectBegin()
	mdb.Mock.ExpectExec(regexp.QuoteMeta(`UPDATE "users" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mdb.Mock.ExpectCommit()

	require.NoError(t, repo.UpdatePassword(context.Background(), id, "hash"))
	assert.NoError(t, mdb.Mock.ExpectationsWereMet())
}

func TestWithTransaction_SharesTxAcrossRepositories(t *testing.T) {
	mdb := newMock(t)
	campaigns := NewCampaignRepository(mdb.DB)
	promos := NewPromoCodeRepository(mdb.DB)

	mdb.Mock.ExpectBegin()
	mdb.Mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "campaigns"`)).WillReturnResult(sqlmock.NewResult(0, 1))
	mdb.Mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "promo_codes"`)).WillReturnResult(sqlmock.NewResult(0, 1))
	mdb.Mock.ExpectCommit()

	err := WithTransaction(context.Background(), mdb.DB, func(ctx context.Context) error {
		if _, err := campaigns.DeleteByID(ctx, uuid.New()); err != nil {
			return err
		}
		_, err := promos.DeleteByID(ctx, uuid.New())
		return err
	})
	require.NoError(t, err)
	assert.NoError(t, mdb.Mock.ExpectationsWereMet())
}
