package service

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/RushikJoshi/GT-HRMS-sub000/internal/lock"
	"github.com/RushikJoshi/GT-HRMS-sub000/internal/metrics"
	"github.com/RushikJoshi/GT-HRMS-sub000/internal/model"
	"github.com/RushikJoshi/GT-HRMS-sub000/internal/repository"
)

const reconcilePageSize = 100

// ReconcileReport summarizes one reconcile pass.
type ReconcileReport struct {
	Checked  int
	Drifted  int
	Repaired int
	Failed   int
}

// Reconciler periodically rebuilds published snapshots whose version no longer
// matches the live content of the aggregate, which is the source of truth.
type Reconciler struct {
	profiles  repository.ProfileRepository
	snapshots repository.SnapshotRepository
	locker    lock.Locker
	metrics   metrics.Recorder
	logger    *zap.Logger
	cron      *cron.Cron
	spec      string
}

// NewReconciler creates a Reconciler that runs on the robfig/cron spec.
func NewReconciler(
	profiles repository.ProfileRepository,
	snapshots repository.SnapshotRepository,
	locker lock.Locker,
	rec metrics.Recorder,
	logger *zap.Logger,
	spec string,
) *Reconciler {
	if rec == nil {
		rec = metrics.Nop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	cl := cronLogger{logger.Sugar()}
	return &Reconciler{
		profiles:  profiles,
		snapshots: snapshots,
		locker:    locker,
		metrics:   rec,
		logger:    logger,
		cron:      cron.New(cron.WithLogger(cl), cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl))),
		spec:      spec,
	}
}

// Start registers the reconcile job and starts the scheduler.
func (r *Reconciler) Start(ctx context.Context) error {
	_, err := r.cron.AddFunc(r.spec, func() {
		if _, err := r.RunOnce(ctx); err != nil {
			r.logger.Error("reconcile pass failed", zap.String("event", "reconcile_failed"), zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	r.cron.Start()
	r.logger.Info("reconciler started", zap.String("event", "reconciler_started"), zap.String("spec", r.spec))
	return nil
}

// Stop stops the scheduler and returns a context that is done once a running pass finishes.
func (r *Reconciler) Stop() context.Context {
	ctx := r.cron.Stop()
	r.logger.Info("reconciler stopped", zap.String("event", "reconciler_stopped"))
	return ctx
}

// RunOnce checks every published profile and repairs drifted snapshots.
// Per-tenant failures are counted and logged; only a listing failure aborts the pass.
func (r *Reconciler) RunOnce(ctx context.Context) (ReconcileReport, error) {
	var report ReconcileReport
	start := time.Now()

	for offset := 0; ; offset += reconcilePageSize {
		page, err := r.profiles.ListPublished(ctx, repository.PageQuery{Limit: reconcilePageSize, Offset: offset})
		if err != nil {
			return report, errors.Wrap(err, "list published profiles")
		}

		for i := range page.Items {
			report.Checked++
			drifted, repaired, err := r.check(ctx, &page.Items[i])
			if drifted {
				report.Drifted++
			}
			if repaired {
				report.Repaired++
			}
			if err != nil {
				report.Failed++
				r.logger.Error("snapshot repair failed",
					zap.String("event", "snapshot_repair_failed"),
					zap.String("tenant_id", page.Items[i].TenantID),
					zap.Error(err),
				)
			}
		}

		if len(page.Items) < reconcilePageSize || offset+len(page.Items) >= page.Total {
			break
		}
	}

	r.logger.Info("reconcile pass finished",
		zap.String("event", "reconcile_finished"),
		zap.Int("checked", report.Checked),
		zap.Int("drifted", report.Drifted),
		zap.Int("repaired", report.Repaired),
		zap.Int("failed", report.Failed),
		zap.Duration("duration", time.Since(start)),
	)
	return report, nil
}

func (r *Reconciler) check(ctx context.Context, p *model.CompanyProfile) (drifted, repaired bool, err error) {
	lagging, err := r.drift(ctx, p)
	if err != nil || lagging == "" {
		return false, false, err
	}

	r.metrics.SnapshotDrift(lagging)
	r.logger.Warn("snapshot drift detected",
		zap.String("event", "snapshot_drift_detected"),
		zap.String("tenant_id", p.TenantID),
		zap.String("lagging_store", lagging),
		zap.Int64("live_version", p.Meta.CareerCustomization.Version()),
	)

	ok, err := r.repair(ctx, p.TenantID)
	return true, ok, err
}

// drift names the store that is behind, or "" when both agree.
func (r *Reconciler) drift(ctx context.Context, p *model.CompanyProfile) (string, error) {
	live := p.Meta.CareerCustomization.Version()
	snap, err := r.snapshots.Find(ctx, p.TenantID, p.ID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return metrics.StoreSnapshot, nil
	case err != nil:
		return "", errors.Wrap(err, "find snapshot")
	case snap.Version < live:
		return metrics.StoreSnapshot, nil
	case snap.Version > live:
		return metrics.StoreAggregate, nil
	}
	return "", nil
}

// repair rebuilds the snapshot from freshly read live content under the tenant's
// publish lock, so it cannot overwrite a publish that finished in between.
func (r *Reconciler) repair(ctx context.Context, tenantID string) (bool, error) {
	unlock, err := r.locker.Lock(ctx, tenantID)
	if err != nil {
		return false, errors.Wrap(err, "acquire publish lock")
	}
	defer unlock()

	p, err := r.profiles.FindByTenant(ctx, tenantID)
	if err != nil {
		return false, errors.Wrap(err, "reload company profile")
	}
	live := p.Meta.CareerCustomization
	if live == nil {
		return false, nil
	}
	if lagging, err := r.drift(ctx, p); err != nil || lagging == "" {
		return false, err
	}

	page := buildSnapshot(p.TenantID, p.ID, live, contentTime(live[model.KeyPublishedAt]), live.Version())
	if err := r.snapshots.Upsert(ctx, page); err != nil {
		return false, errors.Wrap(err, "rebuild snapshot")
	}

	r.metrics.SnapshotRepaired()
	r.logger.Info("snapshot repaired",
		zap.String("event", "snapshot_repaired"),
		zap.String("tenant_id", tenantID),
		zap.Int64("version", page.Version),
	)
	return true, nil
}

// cronLogger adapts zap to the robfig/cron logger interface.
type cronLogger struct {
	s *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, append(keysAndValues, "error", err)...)
}
