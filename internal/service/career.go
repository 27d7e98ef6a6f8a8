package service

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/RushikJoshi/GT-HRMS-sub000/internal/lock"
	"github.com/RushikJoshi/GT-HRMS-sub000/internal/metrics"
	"github.com/RushikJoshi/GT-HRMS-sub000/internal/model"
	"github.com/RushikJoshi/GT-HRMS-sub000/internal/repository"
)

var tracer = otel.Tracer("github.com/RushikJoshi/GT-HRMS-sub000/internal/service")

// PublishResult is what a successful publish hands back to the caller.
type PublishResult struct {
	LivePage    model.Content  `json:"livePage"`
	MetaTags    *model.SEOMeta `json:"metaTags"`
	PublishedAt time.Time      `json:"publishedAt"`
	Version     int64          `json:"version"`
}

// PublicPage is the public view of a tenant's live careers page.
type PublicPage struct {
	Customization model.Content `json:"customization"`
	SEOSettings   any           `json:"seoSettings"`
	MetaTags      any           `json:"metaTags"`
	Data          model.Content `json:"data"`
}

// CareerService defines the draft, publish and read use cases of the careers page.
type CareerService interface {
	// Publish makes content live. The body is published directly when it carries
	// sections or applyPage; otherwise the stored draft is published.
	Publish(ctx context.Context, tenantID string, body model.Content) (*PublishResult, error)

	// GetDraft returns the editor's view: the draft, or a copy of live content when
	// no draft exists, annotated with lastPublishedAt and isPublished=false.
	// It returns nil when the tenant has neither.
	GetDraft(ctx context.Context, tenantID string) (model.Content, error)

	// SaveDraft stores body as the draft, stamped with updatedAt.
	SaveDraft(ctx context.Context, tenantID string, body model.Content) (model.Content, error)

	// GetPublic returns the live content of a tenant, resolved by id or code.
	// It returns nil when nothing was published.
	GetPublic(ctx context.Context, tenantID string) (*PublicPage, error)

	// GetSnapshot returns the published snapshot, or ErrNotPublished.
	GetSnapshot(ctx context.Context, tenantID string) (*model.PublishedPage, error)
}

// careerService is a concrete implementation of CareerService.
type careerService struct {
	profiles   repository.ProfileRepository
	tenants    repository.TenantRepository
	snapshots  repository.SnapshotRepository
	normalized repository.NormalizedRepository
	locker     lock.Locker
	metrics    metrics.Recorder
	logger     *zap.Logger
	prov       *provisioner
	now        func() time.Time
}

// NewCareerService constructs a new CareerService. normalized may be nil; when set,
// its records are flagged published after every successful publish.
func NewCareerService(
	profiles repository.ProfileRepository,
	tenants repository.TenantRepository,
	snapshots repository.SnapshotRepository,
	normalized repository.NormalizedRepository,
	locker lock.Locker,
	rec metrics.Recorder,
	logger *zap.Logger,
) CareerService {
	s := newCareerService(profiles, tenants, snapshots, locker, rec, logger)
	s.normalized = normalized
	return s
}

func newCareerService(
	profiles repository.ProfileRepository,
	tenants repository.TenantRepository,
	snapshots repository.SnapshotRepository,
	locker lock.Locker,
	rec metrics.Recorder,
	logger *zap.Logger,
) *careerService {
	if rec == nil {
		rec = metrics.Nop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &careerService{
		profiles:  profiles,
		tenants:   tenants,
		snapshots: snapshots,
		locker:    locker,
		metrics:   rec,
		logger:    logger,
		now:       time.Now,
	}
	s.prov = &provisioner{profiles: profiles, tenants: tenants, logger: logger, now: s.clock}
	return s
}

func (s *careerService) clock() time.Time { return s.now() }

func (s *careerService) GetDraft(ctx context.Context, tenantID string) (model.Content, error) {
	if tenantID == "" {
		return nil, ErrTenantRequired
	}
	profile, err := s.profiles.FindByTenant(ctx, tenantID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find company profile")
	}

	draft := profile.Meta.DraftCareerPage
	live := profile.Meta.CareerCustomization
	if draft == nil {
		if live == nil {
			return nil, nil
		}
		// Show the live page rather than an empty editor; nothing is written back.
		draft = live
	}

	var lastPublishedAt any
	if live != nil {
		lastPublishedAt = live[model.KeyPublishedAt]
	}
	return model.Overlay(draft, model.Content{
		model.KeyLastPublishedAt: lastPublishedAt,
		model.KeyIsPublished:     false,
	}), nil
}

func (s *careerService) SaveDraft(ctx context.Context, tenantID string, body model.Content) (model.Content, error) {
	if tenantID == "" {
		return nil, ErrTenantRequired
	}
	if _, err := s.prov.ensure(ctx, tenantID); err != nil {
		return nil, err
	}

	draft := model.Overlay(body, model.Content{model.KeyUpdatedAt: s.now().UTC()})
	if err := s.profiles.UpdateDraft(ctx, tenantID, draft); err != nil {
		return nil, errors.Wrap(err, "save draft")
	}

	s.logger.Info("draft saved",
		zap.String("event", "draft_saved"),
		zap.String("tenant_id", tenantID),
	)
	return draft, nil
}

func (s *careerService) GetPublic(ctx context.Context, tenantID string) (*PublicPage, error) {
	if tenantID == "" {
		return nil, ErrTenantRequired
	}
	profile, err := s.findPublishedProfile(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if profile == nil || profile.Meta.CareerCustomization == nil {
		return nil, nil
	}

	live := profile.Meta.CareerCustomization
	return &PublicPage{
		Customization: live,
		SEOSettings:   live[model.KeySEOSettings],
		MetaTags:      live[model.KeyMetaTags],
		Data:          live,
	}, nil
}

func (s *careerService) GetSnapshot(ctx context.Context, tenantID string) (*model.PublishedPage, error) {
	if tenantID == "" {
		return nil, ErrTenantRequired
	}
	profile, err := s.findPublishedProfile(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrNotPublished
	}

	page, err := s.snapshots.Find(ctx, profile.TenantID, profile.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotPublished
		}
		return nil, errors.Wrap(err, "find snapshot")
	}
	return page, nil
}

// findPublishedProfile looks a profile up by tenant id, then by the id the tenant
// directory resolves a tenant code to. A missing profile yields nil, nil.
func (s *careerService) findPublishedProfile(ctx context.Context, identifier string) (*model.CompanyProfile, error) {
	profile, err := s.profiles.FindByTenant(ctx, identifier)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, errors.Wrap(err, "find company profile")
	}

	tenant, err := s.tenants.FindByID(ctx, identifier)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "resolve tenant")
	}
	if tenant.ID == identifier {
		return nil, nil
	}

	profile, err = s.profiles.FindByTenant(ctx, tenant.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find company profile")
	}
	return profile, nil
}
