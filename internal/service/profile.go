package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/RushikJoshi/GT-HRMS-sub000/internal/model"
	"github.com/RushikJoshi/GT-HRMS-sub000/internal/repository"
)

// Placeholder values for a profile created on demand.
var (
	placeholderAddress = model.Address{
		Line1:   "Company HQ",
		City:    "Mumbai",
		State:   "Maharashtra",
		Pincode: "400001",
	}
	placeholderSignatory = model.Signatory{
		Name:        "HR Manager",
		Designation: "HR Head",
	}
)

// provisioner creates the company profile of a tenant the first time it is needed.
type provisioner struct {
	profiles repository.ProfileRepository
	tenants  repository.TenantRepository
	logger   *zap.Logger
	now      func() time.Time
}

// ensure returns the tenant's profile, creating a placeholder one if absent.
func (p *provisioner) ensure(ctx context.Context, tenantID string) (*model.CompanyProfile, error) {
	profile, err := p.profiles.FindByTenant(ctx, tenantID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, errors.Wrap(err, "find company profile")
	}
	return p.create(ctx, tenantID)
}

func (p *provisioner) create(ctx context.Context, tenantID string) (*model.CompanyProfile, error) {
	tenant, err := p.tenants.FindByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errors.WithStack(ErrTenantNotFound)
		}
		return nil, errors.Wrap(err, "find tenant")
	}

	now := p.now().UTC()
	profile, err := p.profiles.Create(ctx, &model.CompanyProfile{
		ID:          uuid.NewString(),
		TenantID:    tenantID,
		CompanyName: tenant.Name,
		Address:     placeholderAddress,
		Signatory:   placeholderSignatory,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create company profile")
	}

	p.logger.Info("company profile auto-created",
		zap.String("event", "profile_created"),
		zap.String("tenant_id", tenantID),
		zap.String("company_id", profile.ID),
	)
	return profile, nil
}
