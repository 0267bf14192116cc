package businessflow

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/amirphl/marketing-manager/models"
	"github.com/google/uuid"
)

// memStore is an in-memory table keyed by uuid
type memStore[T any] struct {
	mu      sync.Mutex
	rows    []*T
	idOf    func(*T) *uuid.UUID
	created func(*T) time.Time
	err     error
}

func (m *memStore[T]) copyOf(row *T) *T {
	c := *row
	return &c
}

func (m *memStore[T]) ByID(_ context.Context, id uuid.UUID) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, row := range m.rows {
		if *m.idOf(row) == id {
			return m.copyOf(row), nil
		}
	}
	return nil, nil
}

func (m *memStore[T]) Save(_ context.Context, entity *T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if id := m.idOf(entity); *id == uuid.Nil {
		*id = uuid.New()
	}
	m.rows = append(m.rows, m.copyOf(entity))
	return nil
}

func (m *memStore[T]) SaveBatch(ctx context.Context, entities []*T) error {
	for _, e := range entities {
		if err := m.Save(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

func (m *memStore[T]) Update(_ context.Context, entity *T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	for i, row := range m.rows {
		if *m.idOf(row) == *m.idOf(entity) {
			m.rows[i] = m.copyOf(entity)
			return nil
		}
	}
	return nil
}

func (m *memStore[T]) DeleteByID(_ context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	for i, row := range m.rows {
		if *m.idOf(row) == id {
			m.rows = slices.Delete(m.rows, i, i+1)
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore[T]) where(keep func(*T) bool) ([]*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := []*T{}
	for _, row := range m.rows {
		if keep(row) {
			out = append(out, m.copyOf(row))
		}
	}
	return out, nil
}

func (m *memStore[T]) newestFirst() ([]*T, error) {
	out, err := m.where(func(*T) bool { return true })
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return m.created(out[i]).After(m.created(out[j])) })
	return out, nil
}

func (m *memStore[T]) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

func inWindow(t time.Time, after, before *time.Time) bool {
	if after != nil && t.Before(*after) {
		return false
	}
	if before != nil && t.After(*before) {
		return false
	}
	return true
}

// users

type fakeUserRepo struct{ memStore[models.User] }

func newFakeUserRepo() *fakeUserRepo {
	r := &fakeUserRepo{}
	r.idOf = func(u *models.User) *uuid.UUID { return &u.ID }
	r.created = func(u *models.User) time.Time { return u.CreatedAt }
	return r
}

func (r *fakeUserRepo) ByFilter(_ context.Context, f models.UserFilter, _ string, _, _ int) ([]*models.User, error) {
	return r.where(func(u *models.User) bool {
		return f.Email == nil || u.Email == *f.Email
	})
}

func (r *fakeUserRepo) ByEmail(ctx context.Context, email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	rows, err := r.ByFilter(ctx, models.UserFilter{Email: &email}, "", 0, 0)
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return rows[0], nil
}

func (r *fakeUserRepo) UpdatePassword(ctx context.Context, userID uuid.UUID, hash string) error {
	u, err := r.ByID(ctx, userID)
	if err != nil || u == nil {
		return err
	}
	u.PasswordHash = hash
	return r.Update(ctx, u)
}

// campaigns

type fakeCampaignRepo struct{ memStore[models.Campaign] }

func newFakeCampaignRepo() *fakeCampaignRepo {
	r := &fakeCampaignRepo{}
	r.idOf = func(c *models.Campaign) *uuid.UUID { return &c.ID }
	r.created = func(c *models.Campaign) time.Time { return c.CreatedAt }
	return r
}

func (r *fakeCampaignRepo) ByFilter(_ context.Context, f models.CampaignFilter, _ string, _, _ int) ([]*models.Campaign, error) {
	return r.where(func(c *models.Campaign) bool {
		return inWindow(c.CreatedAt, f.CreatedAfter, f.CreatedBefore)
	})
}

func (r *fakeCampaignRepo) ListAll(context.Context) ([]*models.Campaign, error) {
	return r.newestFirst()
}

// promo codes

type fakePromoRepo struct{ memStore[models.PromoCode] }

func newFakePromoRepo() *fakePromoRepo {
	r := &fakePromoRepo{}
	r.idOf = func(p *models.PromoCode) *uuid.UUID { return &p.ID }
	r.created = func(p *models.PromoCode) time.Time { return p.CreatedAt }
	return r
}

func (r *fakePromoRepo) ByFilter(_ context.Context, f models.PromoCodeFilter, _ string, _, _ int) ([]*models.PromoCode, error) {
	return r.where(func(p *models.PromoCode) bool {
		return (f.Code == nil || p.Code == *f.Code) && inWindow(p.CreatedAt, f.CreatedAfter, f.CreatedBefore)
	})
}

func (r *fakePromoRepo) ByCode(ctx context.Context, code string) (*models.PromoCode, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	rows, err := r.ByFilter(ctx, models.PromoCodeFilter{Code: &code}, "", 0, 0)
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return rows[0], nil
}

func (r *fakePromoRepo) ListAll(context.Context) ([]*models.PromoCode, error) {
	return r.newestFirst()
}

// posts

type fakePostRepo struct{ memStore[models.SocialMediaPost] }

func newFakePostRepo() *fakePostRepo {
	r := &fakePostRepo{}
	r.idOf = func(p *models.SocialMediaPost) *uuid.UUID { return &p.ID }
	r.created = func(p *models.SocialMediaPost) time.Time { return p.CreatedAt }
	return r
}

func (r *fakePostRepo) ByFilter(_ context.Context, f models.SocialMediaPostFilter, _ string, _, _ int) ([]*models.SocialMediaPost, error) {
	return r.where(func(p *models.SocialMediaPost) bool {
		return inWindow(p.CreatedAt, f.CreatedAfter, f.CreatedBefore)
	})
}

func (r *fakePostRepo) ListAll(context.Context) ([]*models.SocialMediaPost, error) {
	return r.newestFirst()
}

// analytics

type fakeAnalyticsRepo struct{ memStore[models.AnalyticsRecord] }

func newFakeAnalyticsRepo() *fakeAnalyticsRepo {
	r := &fakeAnalyticsRepo{}
	r.idOf = func(a *models.AnalyticsRecord) *uuid.UUID { return &a.ID }
	r.created = func(a *models.AnalyticsRecord) time.Time { return a.Date }
	return r
}

func (r *fakeAnalyticsRepo) ByFilter(_ context.Context, f models.AnalyticsFilter, _ string, _, _ int) ([]*models.AnalyticsRecord, error) {
	return r.where(func(a *models.AnalyticsRecord) bool {
		return sameRef(f.CampaignID, a.CampaignID) && sameRef(f.PromoCodeID, a.PromoCodeID) &&
			inWindow(a.Date, f.DateFrom, f.DateTo)
	})
}

func sameRef(want, got *uuid.UUID) bool {
	return want == nil || (got != nil && *got == *want)
}

func (r *fakeAnalyticsRepo) ByCampaignID(ctx context.Context, id uuid.UUID) ([]*models.AnalyticsRecord, error) {
	return r.ByFilter(ctx, models.AnalyticsFilter{CampaignID: &id}, "", 0, 0)
}

func (r *fakeAnalyticsRepo) ByPromoCodeID(ctx context.Context, id uuid.UUID) ([]*models.AnalyticsRecord, error) {
	return r.ByFilter(ctx, models.AnalyticsFilter{PromoCodeID: &id}, "", 0, 0)
}

// audit

type fakeAuditRepo struct{ memStore[models.AuditLog] }

func newFakeAuditRepo() *fakeAuditRepo {
	r := &fakeAuditRepo{}
	r.idOf = func(a *models.AuditLog) *uuid.UUID { return &a.ID }
	r.created = func(a *models.AuditLog) time.Time { return a.CreatedAt }
	return r
}

func (r *fakeAuditRepo) actions() []string {
	rows, _ := r.where(func(*models.AuditLog) bool { return true })
	out := make([]string, 0, len(rows))
	for _, a := range rows {
		out = append(out, a.Action)
	}
	return out
}

func passthroughTx(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}
