package service

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/RushikJoshi/GT-HRMS-sub000/internal/metrics"
	"github.com/RushikJoshi/GT-HRMS-sub000/internal/model"
	"github.com/RushikJoshi/GT-HRMS-sub000/internal/repository"
	"github.com/RushikJoshi/GT-HRMS-sub000/internal/sanitize"
	"github.com/RushikJoshi/GT-HRMS-sub000/internal/seo"
)

// publishRun carries the per-call state a failure report needs.
type publishRun struct {
	tenantID   string
	hasCompany bool
	logger     *zap.Logger
}

func (r *publishRun) fail(stage string, err error) error {
	return &PublishError{Stage: stage, HasCompany: r.hasCompany, Err: err}
}

// Publish runs under the tenant's lock so the aggregate and the snapshot are
// always written from the same read of the previous live version.
func (s *careerService) Publish(ctx context.Context, tenantID string, body model.Content) (*PublishResult, error) {
	if tenantID == "" {
		return nil, &PublishError{Stage: metrics.StageValidate, Err: errors.WithStack(ErrTenantRequired)}
	}

	ctx, span := tracer.Start(ctx, "career.Publish", trace.WithAttributes(attribute.String("tenant.id", tenantID)))
	defer span.End()

	start := s.now()
	run := &publishRun{tenantID: tenantID, logger: s.logger.With(zap.String("tenant_id", tenantID))}
	s.metrics.PublishAttempted()
	run.logger.Info("publish started",
		zap.String("event", "publish_started"),
		zap.Bool("payload_sections", body.Has(model.KeySections)),
		zap.Bool("payload_apply_page", body.Has(model.KeyApplyPage)),
	)

	res, err := s.publishLocked(ctx, run, body)
	if err != nil {
		var pe *PublishError
		stage := metrics.StagePersist
		if errors.As(err, &pe) {
			stage = pe.Stage
		}
		s.metrics.PublishFailed(stage)
		span.RecordError(err)
		span.SetStatus(codes.Error, stage)
		run.logger.Error("publish failed",
			zap.String("event", "publish_failed"),
			zap.String("stage", stage),
			zap.Bool("has_company", run.hasCompany),
			zap.Error(err),
		)
		return nil, err
	}

	elapsed := s.now().Sub(start)
	s.metrics.PublishSucceeded(elapsed)
	span.SetAttributes(attribute.Int64("career.version", res.Version))
	run.logger.Info("publish succeeded",
		zap.String("event", "publish_succeeded"),
		zap.Int64("version", res.Version),
		zap.Duration("duration", elapsed),
	)
	return res, nil
}

func (s *careerService) publishLocked(ctx context.Context, run *publishRun, body model.Content) (*PublishResult, error) {
	unlock, err := s.locker.Lock(ctx, run.tenantID)
	if err != nil {
		return nil, run.fail(metrics.StageLock, errors.Wrap(err, "acquire publish lock"))
	}
	defer unlock()

	profile, err := s.profiles.FindByTenant(ctx, run.tenantID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, run.fail(metrics.StageLoad, errors.Wrap(err, "find company profile"))
	}
	run.hasCompany = profile != nil

	content := publishableContent(body, profile)
	if content == nil {
		return nil, run.fail(metrics.StageValidate, errors.WithStack(ErrNoContent))
	}

	if profile == nil {
		if profile, err = s.prov.create(ctx, run.tenantID); err != nil {
			return nil, run.fail(metrics.StageProfile, err)
		}
		run.hasCompany = true
	}

	clean := s.sanitize(run, content)

	meta := seo.Generate(seo.SettingsFromContent(clean), run.tenantID)
	if meta == nil {
		s.metrics.SEOSkipped()
		run.logger.Info("seo generation skipped",
			zap.String("event", "seo_generation_skipped"),
		)
	}
	metaContent, err := seo.ToContent(meta)
	if err != nil {
		return nil, run.fail(metrics.StagePrepare, errors.Wrap(err, "encode meta tags"))
	}

	now := s.now().UTC()
	version := nextVersion(now, profile.Meta.CareerCustomization.Version())

	live := model.Overlay(profile.Meta.CareerCustomization, clean, model.Content{
		model.KeyPublishedAt: now,
		model.KeyIsPublished: true,
		model.KeyMetaTags:    metaContent,
		model.KeyVersion:     version,
	})
	draft := model.Overlay(profile.Meta.DraftCareerPage, clean, model.Content{
		model.KeyUpdatedAt: now,
		model.KeyMetaTags:  metaContent,
	})
	page := buildSnapshot(run.tenantID, profile.ID, live, now, version)

	if err := s.persist(ctx, run, live, draft, page); err != nil {
		return nil, run.fail(metrics.StagePersist, err)
	}
	s.markNormalizedPublished(ctx, run, profile.ID, now)

	return &PublishResult{
		LivePage:    live,
		MetaTags:    meta,
		PublishedAt: now,
		Version:     version,
	}, nil
}

// publishableContent picks the direct payload when it carries page content and
// falls back to the stored draft otherwise.
func publishableContent(body model.Content, profile *model.CompanyProfile) model.Content {
	if body.Has(model.KeySections) || body.Has(model.KeyApplyPage) {
		return body
	}
	if profile != nil && len(profile.Meta.DraftCareerPage) > 0 {
		return profile.Meta.DraftCareerPage
	}
	return nil
}

func (s *careerService) sanitize(run *publishRun, content model.Content) model.Content {
	clean := sanitize.Content(content)

	before, err1 := sanitize.SerializedSize(content)
	after, err2 := sanitize.SerializedSize(clean)
	if err1 == nil && err2 == nil && before > after {
		s.metrics.PayloadStripped(before - after)
		run.logger.Info("payload stripped",
			zap.String("event", "payload_stripped"),
			zap.Int("bytes_before", before),
			zap.Int("bytes_after", after),
		)
	}
	return clean
}

// markNormalizedPublished flags the authoring records as published. The page is
// already live in both stores, so a failure here is only logged.
func (s *careerService) markNormalizedPublished(ctx context.Context, run *publishRun, companyID string, at time.Time) {
	if s.normalized == nil {
		return
	}
	if err := s.normalized.MarkPublished(ctx, run.tenantID, companyID, at); err != nil {
		run.logger.Warn("mark normalized records published failed",
			zap.String("event", "normalized_mark_published_failed"),
			zap.String("company_id", companyID),
			zap.Error(err),
		)
	}
}

// persist writes both stores concurrently and waits for both. Nothing is rolled
// back: the reconciler rebuilds the snapshot from live content later.
func (s *careerService) persist(ctx context.Context, run *publishRun, live, draft model.Content, page *model.PublishedPage) error {
	var (
		g                   errgroup.Group
		aggErr, snapshotErr error
	)
	g.Go(func() error {
		aggErr = s.profiles.UpdateCareerPages(ctx, run.tenantID, live, draft)
		return aggErr
	})
	g.Go(func() error {
		snapshotErr = s.snapshots.Upsert(ctx, page)
		return snapshotErr
	})
	_ = g.Wait()

	if aggErr == nil && snapshotErr == nil {
		return nil
	}

	pe := &PersistenceError{AggregateErr: aggErr, SnapshotErr: snapshotErr}
	if pe.Partial() {
		lagging := metrics.StoreSnapshot
		if aggErr != nil {
			lagging = metrics.StoreAggregate
		}
		s.metrics.SnapshotDrift(lagging)
		run.logger.Warn("snapshot drift detected",
			zap.String("event", "snapshot_drift_detected"),
			zap.String("lagging_store", lagging),
			zap.Int64("version", page.Version),
		)
	}
	return errors.WithStack(pe)
}
