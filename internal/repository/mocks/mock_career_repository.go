package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/RushikJoshi/GT-HRMS-sub000/internal/model"
	"github.com/RushikJoshi/GT-HRMS-sub000/internal/repository"
)

type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) FindByTenant(ctx context.Context, tenantID string) (*model.CompanyProfile, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CompanyProfile), args.Error(1)
}

func (m *MockProfileRepository) Create(ctx context.Context, p *model.CompanyProfile) (*model.CompanyProfile, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CompanyProfile), args.Error(1)
}

func (m *MockProfileRepository) UpdateDraft(ctx context.Context, tenantID string, draft model.Content) error {
	args := m.Called(ctx, tenantID, draft)
	return args.Error(0)
}

func (m *MockProfileRepository) UpdateCareerPages(ctx context.Context, tenantID string, live, draft model.Content) error {
	args := m.Called(ctx, tenantID, live, draft)
	return args.Error(0)
}

func (m *MockProfileRepository) ListPublished(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.CompanyProfile], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.CompanyProfile]), args.Error(1)
}

type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) FindByID(ctx context.Context, id string) (*model.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Tenant), args.Error(1)
}

type MockSnapshotRepository struct {
	mock.Mock
}

func (m *MockSnapshotRepository) Upsert(ctx context.Context, page *model.PublishedPage) error {
	args := m.Called(ctx, page)
	return args.Error(0)
}

func (m *MockSnapshotRepository) Find(ctx context.Context, tenantID, companyID string) (*model.PublishedPage, error) {
	args := m.Called(ctx, tenantID, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PublishedPage), args.Error(1)
}

type MockNormalizedRepository struct {
	mock.Mock
}

func (m *MockNormalizedRepository) SaveSEO(ctx context.Context, s *model.CareerSEO) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockNormalizedRepository) ReplaceSections(ctx context.Context, layout *model.CareerLayout, sections []model.CareerSection) error {
	args := m.Called(ctx, layout, sections)
	return args.Error(0)
}

func (m *MockNormalizedRepository) Load(ctx context.Context, tenantID, companyID string) (*model.NormalizedDraft, error) {
	args := m.Called(ctx, tenantID, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.NormalizedDraft), args.Error(1)
}

func (m *MockNormalizedRepository) MarkPublished(ctx context.Context, tenantID, companyID string, at time.Time) error {
	args := m.Called(ctx, tenantID, companyID, at)
	return args.Error(0)
}
