package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/RushikJoshi/GT-HRMS-sub000/internal/model"
	"github.com/RushikJoshi/GT-HRMS-sub000/internal/service"
)

type MockCareerService struct {
	mock.Mock
}

func (m *MockCareerService) Publish(ctx context.Context, tenantID string, body model.Content) (*service.PublishResult, error) {
	args := m.Called(ctx, tenantID, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PublishResult), args.Error(1)
}

func (m *MockCareerService) GetDraft(ctx context.Context, tenantID string) (model.Content, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(model.Content), args.Error(1)
}

func (m *MockCareerService) SaveDraft(ctx context.Context, tenantID string, body model.Content) (model.Content, error) {
	args := m.Called(ctx, tenantID, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(model.Content), args.Error(1)
}

func (m *MockCareerService) GetPublic(ctx context.Context, tenantID string) (*service.PublicPage, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PublicPage), args.Error(1)
}

func (m *MockCareerService) GetSnapshot(ctx context.Context, tenantID string) (*model.PublishedPage, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PublishedPage), args.Error(1)
}

type MockNormalizedService struct {
	mock.Mock
}

func (m *MockNormalizedService) SaveSEO(ctx context.Context, tenantID string, in service.SEOInput) (*model.CareerSEO, error) {
	args := m.Called(ctx, tenantID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CareerSEO), args.Error(1)
}

func (m *MockNormalizedService) SaveSections(ctx context.Context, tenantID string, body model.Content) (int, error) {
	args := m.Called(ctx, tenantID, body)
	return args.Int(0), args.Error(1)
}

func (m *MockNormalizedService) GetDraftData(ctx context.Context, tenantID string) (*service.DraftData, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DraftData), args.Error(1)
}
