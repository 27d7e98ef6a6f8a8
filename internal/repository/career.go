package repository

import (
	"context"
	"time"

	"github.com/RushikJoshi/GT-HRMS-sub000/internal/model"
)

// ProfileRepository is the Draft/Live Aggregate store: one company profile per tenant
// embedding the draft and live careers page sub-documents.
// No business logic here, strictly persistence operations.
type ProfileRepository interface {
	// FindByTenant returns the tenant's profile or ErrNotFound.
	FindByTenant(ctx context.Context, tenantID string) (*model.CompanyProfile, error)

	// Create inserts p unless a profile already exists for p.TenantID, and returns
	// the stored profile either way.
	Create(ctx context.Context, p *model.CompanyProfile) (*model.CompanyProfile, error)

	// UpdateDraft replaces only the draft sub-document. ErrNotFound if there is no profile.
	UpdateDraft(ctx context.Context, tenantID string, draft model.Content) error

	// UpdateCareerPages replaces the live and draft sub-documents in one statement,
	// leaving every other profile field untouched. ErrNotFound if there is no profile.
	UpdateCareerPages(ctx context.Context, tenantID string, live, draft model.Content) error

	// ListPublished pages through profiles whose live content is marked published.
	ListPublished(ctx context.Context, pq PageQuery) (*PageResult[model.CompanyProfile], error)
}

// TenantRepository reads the central tenant directory.
type TenantRepository interface {
	// FindByID matches the tenant id or its code. ErrNotFound if neither matches.
	FindByID(ctx context.Context, id string) (*model.Tenant, error)
}

// SnapshotRepository is the Published Snapshot store, keyed by (tenant, company).
type SnapshotRepository interface {
	// Upsert replaces the whole snapshot document.
	Upsert(ctx context.Context, page *model.PublishedPage) error

	// Find returns the snapshot or ErrNotFound.
	Find(ctx context.Context, tenantID, companyID string) (*model.PublishedPage, error)
}

// NormalizedRepository stores the decomposed SEO, layout and section records.
type NormalizedRepository interface {
	// SaveSEO upserts the SEO record keyed by (tenant, company).
	SaveSEO(ctx context.Context, s *model.CareerSEO) error

	// ReplaceSections upserts the layout and sections and deletes sections no longer
	// listed, atomically.
	ReplaceSections(ctx context.Context, layout *model.CareerLayout, sections []model.CareerSection) error

	// Load reads every normalized record of (tenant, company). Missing records are nil/empty.
	Load(ctx context.Context, tenantID, companyID string) (*model.NormalizedDraft, error)

	// MarkPublished flags every existing record of (tenant, company) as published at at.
	MarkPublished(ctx context.Context, tenantID, companyID string, at time.Time) error
}
