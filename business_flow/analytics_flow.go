package businessflow

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/amirphl/marketing-manager/app/dto"
	"github.com/amirphl/marketing-manager/models"
	"github.com/amirphl/marketing-manager/repository"
	"github.com/amirphl/marketing-manager/utils"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"
)

// AnalyticsFlow aggregates analytics rows and entity snapshots over time windows
type AnalyticsFlow interface {
	Overview(ctx context.Context, principal *Principal, timeRange string) (*dto.AnalyticsOverviewResponse, error)
	CampaignAnalytics(ctx context.Context, principal *Principal, campaignID uuid.UUID) (*dto.CampaignAnalyticsResponse, error)
	PromoCodeAnalytics(ctx context.Context, principal *Principal, promoCodeID uuid.UUID) (*dto.PromoCodeAnalyticsResponse, error)
	ExportOverview(ctx context.Context, principal *Principal, timeRange string, metadata *ClientMetadata) (string, []byte, error)
}

// AnalyticsFlowImpl implements the analytics business flow
type AnalyticsFlowImpl struct {
	analyticsRepo repository.AnalyticsRepository
	campaignRepo  repository.CampaignRepository
	promoRepo     repository.PromoCodeRepository
	postRepo      repository.SocialMediaPostRepository
	auditRepo     repository.AuditLogRepository
	now           func() time.Time
}

// NewAnalyticsFlow creates a new analytics flow; windows are computed in loc
func NewAnalyticsFlow(
	analyticsRepo repository.AnalyticsRepository,
	campaignRepo repository.CampaignRepository,
	promoRepo repository.PromoCodeRepository,
	postRepo repository.SocialMediaPostRepository,
	auditRepo repository.AuditLogRepository,
	loc *time.Location,
) AnalyticsFlow {
	return &AnalyticsFlowImpl{
		analyticsRepo: analyticsRepo,
		campaignRepo:  campaignRepo,
		promoRepo:     promoRepo,
		postRepo:      postRepo,
		auditRepo:     auditRepo,
		now:           func() time.Time { return utils.NowIn(loc) },
	}
}

// Overview reads analytics rows by date and entities by creation time inside
// the window. The four reads run concurrently and any failure fails the call.
func (s *AnalyticsFlowImpl) Overview(ctx context.Context, principal *Principal, timeRange string) (*dto.AnalyticsOverviewResponse, error) {
	if err := Authorize(principal, ManagerRoles...); err != nil {
		return nil, err
	}

	window := ResolveTimeRange(timeRange, s.now())

	var (
		records   []*models.AnalyticsRecord
		campaigns []*models.Campaign
		promos    []*models.PromoCode
		posts     []*models.SocialMediaPost
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		records, err = s.analyticsRepo.ByFilter(gctx, models.AnalyticsFilter{
			DateFrom: &window.Start,
			DateTo:   &window.End,
		}, "date ASC", 0, 0)
		return err
	})
	g.Go(func() error {
		var err error
		campaigns, err = s.campaignRepo.ByFilter(gctx, models.CampaignFilter{
			CreatedAfter:  &window.Start,
			CreatedBefore: &window.End,
		}, "created_at DESC", 0, 0)
		return err
	})
	g.Go(func() error {
		var err error
		promos, err = s.promoRepo.ByFilter(gctx, models.PromoCodeFilter{
			CreatedAfter:  &window.Start,
			CreatedBefore: &window.End,
		}, "created_at DESC", 0, 0)
		return err
	})
	g.Go(func() error {
		var err error
		posts, err = s.postRepo.ByFilter(gctx, models.SocialMediaPostFilter{
			CreatedAfter:  &window.Start,
			CreatedBefore: &window.End,
		}, "created_at DESC", 0, 0)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, NewBusinessError("ANALYTICS_OVERVIEW_FAILED", "Failed to build analytics overview", err)
	}

	resp := &dto.AnalyticsOverviewResponse{
		TimeRange:              window.Range,
		Start:                  window.Start,
		End:                    window.End,
		Totals:                 ReduceTotals(records),
		CampaignPerformance:    make([]dto.CampaignPerformance, 0, len(campaigns)),
		PromoCodeUsage:         make([]dto.PromoCodeUsage, 0, len(promos)),
		SocialMediaPerformance: make([]dto.SocialMediaPerformance, 0, len(posts)),
	}
	for _, c := range campaigns {
		resp.CampaignPerformance = append(resp.CampaignPerformance, dto.CampaignPerformance{
			ID:        c.ID,
			Name:      c.Name,
			Metrics:   c.Metrics,
			StartDate: c.StartDate,
			EndDate:   c.EndDate,
			Status:    c.Status.String(),
		})
	}
	for _, p := range promos {
		resp.PromoCodeUsage = append(resp.PromoCodeUsage, dto.PromoCodeUsage{
			ID:                 p.ID,
			Code:               p.Code,
			DiscountPercentage: p.DiscountPercentage,
			ExpirationDate:     p.ExpirationDate,
			UsageCount:         p.UsageCount,
			IsActive:           utils.IsTrue(p.IsActive),
		})
	}
	for _, p := range posts {
		resp.SocialMediaPerformance = append(resp.SocialMediaPerformance, dto.SocialMediaPerformance{
			ID:            p.ID,
			Platforms:     []string(p.Platforms),
			ScheduledTime: p.ScheduledTime,
			Status:        string(p.Status),
			Metrics:       p.Metrics,
		})
	}

	return resp, nil
}

// CampaignAnalytics returns a campaign with every analytics row attributed to it
func (s *AnalyticsFlowImpl) CampaignAnalytics(ctx context.Context, principal *Principal, campaignID uuid.UUID) (*dto.CampaignAnalyticsResponse, error) {
	if err := Authorize(principal, ManagerRoles...); err != nil {
		return nil, err
	}

	campaign, err := s.campaignRepo.ByID(ctx, campaignID)
	if err != nil {
		return nil, NewBusinessError("GET_CAMPAIGN_FAILED", "Failed to load campaign", err)
	}
	if campaign == nil {
		return nil, NewBusinessError("CAMPAIGN_NOT_FOUND", "Campaign not found", ErrCampaignNotFound)
	}

	records, err := s.analyticsRepo.ByCampaignID(ctx, campaignID)
	if err != nil {
		return nil, NewBusinessError("GET_ANALYTICS_FAILED", "Failed to load analytics", err)
	}

	return &dto.CampaignAnalyticsResponse{Campaign: campaign, Analytics: nonNil(records)}, nil
}

// PromoCodeAnalytics returns a promo code with every analytics row attributed to it
func (s *AnalyticsFlowImpl) PromoCodeAnalytics(ctx context.Context, principal *Principal, promoCodeID uuid.UUID) (*dto.PromoCodeAnalyticsResponse, error) {
	if err := Authorize(principal, ManagerRoles...); err != nil {
		return nil, err
	}

	promo, err := s.promoRepo.ByID(ctx, promoCodeID)
	if err != nil {
		return nil, NewBusinessError("GET_PROMO_CODE_FAILED", "Failed to load promo code", err)
	}
	if promo == nil {
		return nil, NewBusinessError("PROMO_CODE_NOT_FOUND", "Promo code not found", ErrPromoCodeNotFound)
	}

	records, err := s.analyticsRepo.ByPromoCodeID(ctx, promoCodeID)
	if err != nil {
		return nil, NewBusinessError("GET_ANALYTICS_FAILED", "Failed to load analytics", err)
	}

	return &dto.PromoCodeAnalyticsResponse{PromoCode: promo, Analytics: nonNil(records)}, nil
}

// Overview sheet names
const (
	sheetTotals    = "Totals"
	sheetCampaigns = "Campaigns"
	sheetPromos    = "Promo Codes"
	sheetPosts     = "Social Media"
)

// ExportOverview renders the overview as an xlsx workbook
func (s *AnalyticsFlowImpl) ExportOverview(ctx context.Context, principal *Principal, timeRange string, metadata *ClientMetadata) (string, []byte, error) {
	overview, err := s.Overview(ctx, principal, timeRange)
	if err != nil {
		return "", nil, err
	}

	xl := excelize.NewFile()
	defer func() { _ = xl.Close() }()

	xl.SetSheetName(xl.GetSheetName(0), sheetTotals)
	totals := [][]any{
		{"time_range", overview.TimeRange},
		{"start", overview.Start.Format(time.RFC3339)},
		{"end", overview.End.Format(time.RFC3339)},
		{"views", overview.Totals.Views},
		{"clicks", overview.Totals.Clicks},
		{"conversions", overview.Totals.Conversions},
		{"revenue", overview.Totals.Revenue},
	}
	for i, row := range totals {
		if err := writeRow(xl, sheetTotals, i+1, row); err != nil {
			return "", nil, err
		}
	}

	campaignRows := make([][]any, 0, len(overview.CampaignPerformance))
	for _, c := range overview.CampaignPerformance {
		campaignRows = append(campaignRows, []any{
			c.ID.String(), c.Name, c.Status,
			c.StartDate.Format(time.RFC3339), c.EndDate.Format(time.RFC3339),
			c.Metrics.Impressions, c.Metrics.Clicks, c.Metrics.Conversions,
		})
	}
	if err := writeSheet(xl, sheetCampaigns,
		[]any{"id", "name", "status", "start_date", "end_date", "impressions", "clicks", "conversions"},
		campaignRows); err != nil {
		return "", nil, err
	}

	promoRows := make([][]any, 0, len(overview.PromoCodeUsage))
	for _, p := range overview.PromoCodeUsage {
		promoRows = append(promoRows, []any{
			p.ID.String(), p.Code, p.DiscountPercentage,
			p.ExpirationDate.Format(time.RFC3339), p.UsageCount, strconv.FormatBool(p.IsActive),
		})
	}
	if err := writeSheet(xl, sheetPromos,
		[]any{"id", "code", "discount_percentage", "expiration_date", "usage_count", "is_active"},
		promoRows); err != nil {
		return "", nil, err
	}

	postRows := make([][]any, 0, len(overview.SocialMediaPerformance))
	for _, p := range overview.SocialMediaPerformance {
		postRows = append(postRows, []any{
			p.ID.String(), fmt.Sprint(p.Platforms), p.Status,
			p.ScheduledTime.Format(time.RFC3339), p.Metrics.Likes, p.Metrics.Shares, p.Metrics.Comments,
		})
	}
	if err := writeSheet(xl, sheetPosts,
		[]any{"id", "platforms", "status", "scheduled_time", "likes", "shares", "comments"},
		postRows); err != nil {
		return "", nil, err
	}

	buf, err := xl.WriteToBuffer()
	if err != nil {
		return "", nil, NewBusinessError("EXCEL_WRITE_ERROR", "Failed to write Excel file", err)
	}

	filename := fmt.Sprintf("analytics_%s_%s.xlsx", overview.TimeRange, overview.End.Format("20060102"))
	if metadata != nil {
		metadata.AddAdditional("time_range", overview.TimeRange)
		metadata.AddAdditional("filename", filename)
	}

	msg := fmt.Sprintf("Analytics overview exported (%s)", overview.TimeRange)
	_ = createAuditLog(ctx, s.auditRepo, &principal.ID, models.AuditActionAnalyticsExport, msg, true, nil, metadata)

	return filename, buf.Bytes(), nil
}

func writeSheet(xl *excelize.File, name string, header []any, rows [][]any) error {
	if _, err := xl.NewSheet(name); err != nil {
		return NewBusinessError("EXCEL_WRITE_ERROR", "Failed to write Excel file", err)
	}
	if err := writeRow(xl, name, 1, header); err != nil {
		return err
	}
	for i, row := range rows {
		if err := writeRow(xl, name, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(xl *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return NewBusinessError("EXCEL_WRITE_ERROR", "Failed to write Excel file", err)
	}
	if err := xl.SetSheetRow(sheet, cell, &values); err != nil {
		return NewBusinessError("EXCEL_WRITE_ERROR", "Failed to write Excel file", err)
	}
	return nil
}

func nonNil(records []*models.AnalyticsRecord) []*models.AnalyticsRecord {
	if records == nil {
		return []*models.AnalyticsRecord{}
	}
	return records
}
