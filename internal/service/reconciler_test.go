package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/RushikJoshi/GT-HRMS-sub000/internal/lock"
	"github.com/RushikJoshi/GT-HRMS-sub000/internal/metrics"
	"github.com/RushikJoshi/GT-HRMS-sub000/internal/model"
	repoMocks "github.com/RushikJoshi/GT-HRMS-sub000/internal/repository/mocks"
)

func newTestReconciler(f *fixture) (*Reconciler, *recorder) {
	rec := newRecorder()
	return NewReconciler(f.profiles, f.snapshots, f.svc.locker, rec, nil, "@every 1h"), rec
}

func TestReconciler_RepairsPartialPublish(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.snapshots.upsertErr = errors.New("bucket unavailable")
	_, err := f.svc.Publish(ctx, "acme", model.Content{"sections": sectionsBody("s1", "s2")})
	require.Error(t, err)

	profile, err := f.profiles.FindByTenant(ctx, "acme")
	require.NoError(t, err)
	_, err = f.snapshots.Find(ctx, "acme", profile.ID)
	require.Error(t, err, "snapshot store missed the publish")

	f.snapshots.upsertErr = nil
	r, rec := newTestReconciler(f)

	report, err := r.RunOnce(ctx)

	require.NoError(t, err)
	assert.Equal(t, ReconcileReport{Checked: 1, Drifted: 1, Repaired: 1}, report)
	assert.Equal(t, 1, rec.drift[metrics.StoreSnapshot])
	assert.Equal(t, 1, rec.repaired)

	page, err := f.snapshots.Find(ctx, "acme", profile.ID)
	require.NoError(t, err)
	assert.Equal(t, fixedNow.UnixMilli(), page.Version)
	assert.True(t, page.PublishedAt.Equal(fixedNow))
	require.Len(t, page.Sections, 2)
	assert.Equal(t, "s1", page.Sections[0].ID)
	assert.Equal(t, "Career Page", page.SEO.Title)

	// a second pass finds nothing to do
	report, err = r.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, ReconcileReport{Checked: 1}, report)
	assert.Equal(t, 1, rec.repaired)
}

func TestReconciler_SnapshotAheadOfAggregate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.Publish(ctx, "acme", model.Content{"sections": sectionsBody("s1")})
	require.NoError(t, err)
	profile, _ := f.profiles.FindByTenant(ctx, "acme")
	f.snapshots.pages["acme/"+profile.ID].Version += 10

	r, rec := newTestReconciler(f)
	report, err := r.RunOnce(ctx)

	require.NoError(t, err)
	assert.Equal(t, 1, report.Repaired)
	assert.Equal(t, 1, rec.drift[metrics.StoreAggregate])

	page, err := f.snapshots.Find(ctx, "acme", profile.ID)
	require.NoError(t, err)
	assert.Equal(t, profile.Meta.CareerCustomization.Version(), page.Version)
}

func TestReconciler_PagesThroughAllProfiles(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	const n = reconcilePageSize + 25
	for i := 0; i < n; i++ {
		tenant := fmt.Sprintf("t-%03d", i)
		f.profiles.byTenant[tenant] = &model.CompanyProfile{
			ID:       "c-" + tenant,
			TenantID: tenant,
			Meta: model.ProfileMeta{CareerCustomization: model.Content{
				model.KeyIsPublished: true,
				model.KeyVersion:     float64(5),
				model.KeySections:    []any{},
			}},
		}
	}
	// unpublished profiles are not listed
	f.profiles.byTenant["draft-only"] = &model.CompanyProfile{
		ID:       "c-draft",
		TenantID: "draft-only",
		Meta:     model.ProfileMeta{DraftCareerPage: model.Content{"sections": []any{}}},
	}

	r, rec := newTestReconciler(f)
	report, err := r.RunOnce(ctx)

	require.NoError(t, err)
	assert.Equal(t, ReconcileReport{Checked: n, Drifted: n, Repaired: n}, report)
	assert.Equal(t, n, rec.repaired)
	assert.Equal(t, n, f.snapshots.upserts)
}

func TestReconciler_FailedRepairIsCounted(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.snapshots.upsertErr = errors.New("bucket unavailable")
	_, err := f.svc.Publish(ctx, "acme", model.Content{"sections": sectionsBody("s1")})
	require.Error(t, err)

	r, rec := newTestReconciler(f)
	report, err := r.RunOnce(ctx)

	require.NoError(t, err)
	assert.Equal(t, ReconcileReport{Checked: 1, Drifted: 1, Failed: 1}, report)
	assert.Zero(t, rec.repaired)
}

func TestReconciler_RepairWaitsForPublishLock(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.snapshots.upsertErr = errors.New("bucket unavailable")
	_, err := f.svc.Publish(ctx, "acme", model.Content{"sections": sectionsBody("s1")})
	require.Error(t, err)
	f.snapshots.upsertErr = nil

	unlock, err := f.svc.locker.Lock(ctx, "acme")
	require.NoError(t, err)

	r, _ := newTestReconciler(f)
	done := make(chan ReconcileReport, 1)
	go func() {
		report, _ := r.RunOnce(ctx)
		done <- report
	}()

	select {
	case <-done:
		t.Fatal("repair ran while the publish lock was held")
	case <-time.After(50 * time.Millisecond):
	}

	unlock()
	select {
	case report := <-done:
		assert.Equal(t, 1, report.Repaired)
	case <-time.After(2 * time.Second):
		t.Fatal("repair did not resume after unlock")
	}
}

func TestReconciler_ListError(t *testing.T) {
	ctx := context.Background()
	profiles := new(repoMocks.MockProfileRepository)
	profiles.On("ListPublished", ctx, mock.Anything).Return(nil, errors.New("connection refused"))

	r := NewReconciler(profiles, newMemSnapshots(), lock.NewMemoryLocker(), nil, nil, "@every 1h")
	_, err := r.RunOnce(ctx)

	assert.ErrorContains(t, err, "list published profiles: connection refused")
}

func TestReconciler_StartStop(t *testing.T) {
	f := newFixture()

	bad := NewReconciler(f.profiles, f.snapshots, f.svc.locker, nil, nil, "every now and then")
	assert.Error(t, bad.Start(context.Background()))

	r, _ := newTestReconciler(f)
	require.NoError(t, r.Start(context.Background()))

	select {
	case <-r.Stop().Done():
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
}
