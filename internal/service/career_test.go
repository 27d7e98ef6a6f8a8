package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/RushikJoshi/GT-HRMS-sub000/internal/lock"
	"github.com/RushikJoshi/GT-HRMS-sub000/internal/model"
	"github.com/RushikJoshi/GT-HRMS-sub000/internal/repository"
	repoMocks "github.com/RushikJoshi/GT-HRMS-sub000/internal/repository/mocks"
)

type careerMocks struct {
	profiles  *repoMocks.MockProfileRepository
	tenants   *repoMocks.MockTenantRepository
	snapshots *repoMocks.MockSnapshotRepository
}

func newCareerMocks() (*careerMocks, CareerService) {
	m := &careerMocks{
		profiles:  new(repoMocks.MockProfileRepository),
		tenants:   new(repoMocks.MockTenantRepository),
		snapshots: new(repoMocks.MockSnapshotRepository),
	}
	return m, NewCareerService(m.profiles, m.tenants, m.snapshots, nil, lock.NewMemoryLocker(), nil, nil)
}

func TestCareerService_GetDraft(t *testing.T) {
	ctx := context.Background()
	live := model.Content{
		"sections":    []any{map[string]any{"id": "s1"}},
		"publishedAt": "2026-01-02T03:04:05Z",
		"isPublished": true,
		"version":     float64(7),
	}

	tests := []struct {
		name    string
		setup   func(m *careerMocks)
		want    model.Content
		wantErr bool
	}{
		{
			name: "no profile",
			setup: func(m *careerMocks) {
				m.profiles.On("FindByTenant", ctx, "acme").Return(nil, repository.ErrNotFound)
			},
			want: nil,
		},
		{
			name: "neither draft nor live",
			setup: func(m *careerMocks) {
				m.profiles.On("FindByTenant", ctx, "acme").Return(&model.CompanyProfile{ID: "c-1"}, nil)
			},
			want: nil,
		},
		{
			name: "draft returned with live timestamp",
			setup: func(m *careerMocks) {
				m.profiles.On("FindByTenant", ctx, "acme").Return(&model.CompanyProfile{
					Meta: model.ProfileMeta{
						DraftCareerPage:     model.Content{"sections": []any{}},
						CareerCustomization: live,
					},
				}, nil)
			},
			want: model.Content{"sections": []any{}, "lastPublishedAt": "2026-01-02T03:04:05Z", "isPublished": false},
		},
		{
			name: "draft without live",
			setup: func(m *careerMocks) {
				m.profiles.On("FindByTenant", ctx, "acme").Return(&model.CompanyProfile{
					Meta: model.ProfileMeta{DraftCareerPage: model.Content{"theme": "x"}},
				}, nil)
			},
			want: model.Content{"theme": "x", "lastPublishedAt": nil, "isPublished": false},
		},
		{
			name: "lookup error",
			setup: func(m *careerMocks) {
				m.profiles.On("FindByTenant", ctx, "acme").Return(nil, errors.New("timeout"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, svc := newCareerMocks()
			tt.setup(m)

			got, err := svc.GetDraft(ctx, "acme")

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCareerService_GetDraft_SelfRepairDoesNotPersist(t *testing.T) {
	ctx := context.Background()
	m, svc := newCareerMocks()

	live := model.Content{
		"sections":    []any{map[string]any{"id": "s1", "type": "hero"}},
		"theme":       map[string]any{"primaryColor": "#111"},
		"publishedAt": "2026-01-02T03:04:05Z",
		"isPublished": true,
	}
	m.profiles.On("FindByTenant", ctx, "acme").Return(&model.CompanyProfile{
		ID:   "c-1",
		Meta: model.ProfileMeta{CareerCustomization: live},
	}, nil)

	got, err := svc.GetDraft(ctx, "acme")

	require.NoError(t, err)
	want := model.Overlay(live, model.Content{"lastPublishedAt": "2026-01-02T03:04:05Z", "isPublished": false})
	assert.Equal(t, want, got)
	assert.Equal(t, true, live["isPublished"], "live content is not modified")

	m.profiles.AssertNotCalled(t, "UpdateDraft", mock.Anything, mock.Anything, mock.Anything)
	m.profiles.AssertNotCalled(t, "UpdateCareerPages", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	m.profiles.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCareerService_SaveDraft(t *testing.T) {
	ctx := context.Background()

	t.Run("stores body verbatim with updatedAt", func(t *testing.T) {
		m, svc := newCareerMocks()
		body := model.Content{"sections": []any{}, "preview": "editor-only"}

		m.profiles.On("FindByTenant", ctx, "acme").Return(&model.CompanyProfile{ID: "c-1"}, nil)
		m.profiles.On("UpdateDraft", ctx, "acme", mock.MatchedBy(func(d model.Content) bool {
			return d.Has("updatedAt") && d["preview"] == "editor-only"
		})).Return(nil)

		got, err := svc.SaveDraft(ctx, "acme", body)

		require.NoError(t, err)
		assert.Contains(t, got, "updatedAt")
		assert.NotContains(t, body, "updatedAt")
		m.profiles.AssertExpectations(t)
	})

	t.Run("creates missing profile", func(t *testing.T) {
		m, svc := newCareerMocks()

		m.profiles.On("FindByTenant", ctx, "acme").Return(nil, repository.ErrNotFound)
		m.tenants.On("FindByID", ctx, "acme").Return(&model.Tenant{ID: "acme", Name: "Acme Corp"}, nil)
		m.profiles.On("Create", ctx, mock.MatchedBy(func(p *model.CompanyProfile) bool {
			return p.TenantID == "acme" && p.CompanyName == "Acme Corp" &&
				p.Address.Pincode == "400001" && p.Signatory.Designation == "HR Head" && p.ID != ""
		})).Return(&model.CompanyProfile{ID: "c-1", TenantID: "acme"}, nil)
		m.profiles.On("UpdateDraft", ctx, "acme", mock.Anything).Return(nil)

		_, err := svc.SaveDraft(ctx, "acme", model.Content{"sections": []any{}})

		require.NoError(t, err)
		m.profiles.AssertExpectations(t)
	})

	t.Run("unknown tenant", func(t *testing.T) {
		m, svc := newCareerMocks()
		m.profiles.On("FindByTenant", ctx, "ghost").Return(nil, repository.ErrNotFound)
		m.tenants.On("FindByID", ctx, "ghost").Return(nil, repository.ErrNotFound)

		_, err := svc.SaveDraft(ctx, "ghost", model.Content{})

		assert.ErrorIs(t, err, ErrTenantNotFound)
	})

	t.Run("missing tenant id", func(t *testing.T) {
		_, svc := newCareerMocks()
		_, err := svc.SaveDraft(ctx, "", model.Content{})
		assert.ErrorIs(t, err, ErrTenantRequired)
	})
}

func TestCareerService_GetPublic(t *testing.T) {
	ctx := context.Background()
	live := model.Content{
		"sections":    []any{},
		"seoSettings": map[string]any{"seo_title": "Careers"},
		"metaTags":    map[string]any{"title": "Careers"},
	}

	t.Run("by tenant id", func(t *testing.T) {
		m, svc := newCareerMocks()
		m.profiles.On("FindByTenant", ctx, "acme").Return(&model.CompanyProfile{
			Meta: model.ProfileMeta{CareerCustomization: live},
		}, nil)

		page, err := svc.GetPublic(ctx, "acme")

		require.NoError(t, err)
		assert.Equal(t, live, page.Customization)
		assert.Equal(t, live, page.Data)
		assert.Equal(t, map[string]any{"seo_title": "Careers"}, page.SEOSettings)
		assert.Equal(t, map[string]any{"title": "Careers"}, page.MetaTags)
	})

	t.Run("by tenant code", func(t *testing.T) {
		m, svc := newCareerMocks()
		m.profiles.On("FindByTenant", ctx, "acme-co").Return(nil, repository.ErrNotFound)
		m.tenants.On("FindByID", ctx, "acme-co").Return(&model.Tenant{ID: "acme", Code: "acme-co"}, nil)
		m.profiles.On("FindByTenant", ctx, "acme").Return(&model.CompanyProfile{
			Meta: model.ProfileMeta{CareerCustomization: live},
		}, nil)

		page, err := svc.GetPublic(ctx, "acme-co")

		require.NoError(t, err)
		require.NotNil(t, page)
		assert.Equal(t, live, page.Customization)
	})

	t.Run("never published", func(t *testing.T) {
		m, svc := newCareerMocks()
		m.profiles.On("FindByTenant", ctx, "acme").Return(&model.CompanyProfile{
			Meta: model.ProfileMeta{DraftCareerPage: model.Content{"sections": []any{}}},
		}, nil)

		page, err := svc.GetPublic(ctx, "acme")

		assert.NoError(t, err)
		assert.Nil(t, page)
	})

	t.Run("unknown tenant", func(t *testing.T) {
		m, svc := newCareerMocks()
		m.profiles.On("FindByTenant", ctx, "ghost").Return(nil, repository.ErrNotFound)
		m.tenants.On("FindByID", ctx, "ghost").Return(nil, repository.ErrNotFound)

		page, err := svc.GetPublic(ctx, "ghost")

		assert.NoError(t, err)
		assert.Nil(t, page)
	})
}

func TestCareerService_GetSnapshot(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		m, svc := newCareerMocks()
		m.profiles.On("FindByTenant", ctx, "acme").Return(&model.CompanyProfile{ID: "c-1", TenantID: "acme"}, nil)
		m.snapshots.On("Find", ctx, "acme", "c-1").Return(&model.PublishedPage{TenantID: "acme", Version: 3}, nil)

		page, err := svc.GetSnapshot(ctx, "acme")

		require.NoError(t, err)
		assert.Equal(t, int64(3), page.Version)
	})

	t.Run("not published", func(t *testing.T) {
		m, svc := newCareerMocks()
		m.profiles.On("FindByTenant", ctx, "acme").Return(&model.CompanyProfile{ID: "c-1", TenantID: "acme"}, nil)
		m.snapshots.On("Find", ctx, "acme", "c-1").Return(nil, repository.ErrNotFound)

		_, err := svc.GetSnapshot(ctx, "acme")

		assert.ErrorIs(t, err, ErrNotPublished)
	})

	t.Run("store error", func(t *testing.T) {
		m, svc := newCareerMocks()
		m.profiles.On("FindByTenant", ctx, "acme").Return(&model.CompanyProfile{ID: "c-1", TenantID: "acme"}, nil)
		m.snapshots.On("Find", ctx, "acme", "c-1").Return(nil, errors.New("access denied"))

		_, err := svc.GetSnapshot(ctx, "acme")

		assert.ErrorContains(t, err, "access denied")
		assert.NotErrorIs(t, err, ErrNotPublished)
	})
}
