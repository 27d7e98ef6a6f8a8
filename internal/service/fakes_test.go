package service

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/RushikJoshi/GT-HRMS-sub000/internal/model"
	"github.com/RushikJoshi/GT-HRMS-sub000/internal/repository"
)

// roundTrip stores values the way the JSONB column does.
func roundTrip[T any](v T) T {
	var out T
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(b, &out); err != nil {
		panic(err)
	}
	return out
}

// memProfiles is an in-memory ProfileRepository.
type memProfiles struct {
	mu        sync.Mutex
	byTenant  map[string]*model.CompanyProfile
	updateErr error
	// pause is called between reading input and storing it, to widen race windows.
	pause func()
}

func newMemProfiles() *memProfiles {
	return &memProfiles{byTenant: make(map[string]*model.CompanyProfile)}
}

func (m *memProfiles) FindByTenant(_ context.Context, tenantID string) (*model.CompanyProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.byTenant[tenantID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := roundTrip(*p)
	return &out, nil
}

func (m *memProfiles) Create(_ context.Context, p *model.CompanyProfile) (*model.CompanyProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.byTenant[p.TenantID]; ok {
		out := roundTrip(*existing)
		return &out, nil
	}
	stored := roundTrip(*p)
	m.byTenant[p.TenantID] = &stored
	out := stored
	return &out, nil
}

func (m *memProfiles) UpdateDraft(_ context.Context, tenantID string, draft model.Content) error {
	d := roundTrip(draft)
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.byTenant[tenantID]
	if !ok {
		return repository.ErrNotFound
	}
	p.Meta.DraftCareerPage = d
	return nil
}

func (m *memProfiles) UpdateCareerPages(_ context.Context, tenantID string, live, draft model.Content) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	l, d := roundTrip(live), roundTrip(draft)
	if m.pause != nil {
		m.pause()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.byTenant[tenantID]
	if !ok {
		return repository.ErrNotFound
	}
	p.Meta.CareerCustomization = l
	p.Meta.DraftCareerPage = d
	return nil
}

func (m *memProfiles) ListPublished(_ context.Context, pq repository.PageQuery) (*repository.PageResult[model.CompanyProfile], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var all []model.CompanyProfile
	for _, p := range m.byTenant {
		if published, _ := p.Meta.CareerCustomization[model.KeyIsPublished].(bool); published {
			all = append(all, roundTrip(*p))
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].TenantID < all[j].TenantID })

	res := &repository.PageResult[model.CompanyProfile]{Total: len(all), Items: []model.CompanyProfile{}}
	if pq.Offset < len(all) {
		end := pq.Offset + pq.Limit
		if end > len(all) {
			end = len(all)
		}
		res.Items = all[pq.Offset:end]
	}
	return res, nil
}

// memSnapshots is an in-memory SnapshotRepository.
type memSnapshots struct {
	mu        sync.Mutex
	pages     map[string]*model.PublishedPage
	upsertErr error
	pause     func()
	upserts   int
}

func newMemSnapshots() *memSnapshots {
	return &memSnapshots{pages: make(map[string]*model.PublishedPage)}
}

func (m *memSnapshots) Upsert(_ context.Context, page *model.PublishedPage) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	p := roundTrip(*page)
	if m.pause != nil {
		m.pause()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upserts++
	m.pages[page.TenantID+"/"+page.CompanyID] = &p
	return nil
}

func (m *memSnapshots) Find(_ context.Context, tenantID, companyID string) (*model.PublishedPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.pages[tenantID+"/"+companyID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *p
	return &out, nil
}

// memTenants is an in-memory TenantRepository.
type memTenants map[string]*model.Tenant

func (m memTenants) FindByID(_ context.Context, id string) (*model.Tenant, error) {
	for _, t := range m {
		if t.ID == id || t.Code == id {
			out := *t
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

// recorder counts metrics events.
type recorder struct {
	mu        sync.Mutex
	attempted int
	succeeded int
	failed    map[string]int
	stripped  int
	seoSkip   int
	drift     map[string]int
	repaired  int
}

func newRecorder() *recorder {
	return &recorder{failed: map[string]int{}, drift: map[string]int{}}
}

func (r *recorder) PublishAttempted() { r.mu.Lock(); r.attempted++; r.mu.Unlock() }

func (r *recorder) PublishSucceeded(time.Duration) { r.mu.Lock(); r.succeeded++; r.mu.Unlock() }

func (r *recorder) PublishFailed(stage string) { r.mu.Lock(); r.failed[stage]++; r.mu.Unlock() }

func (r *recorder) PayloadStripped(n int) { r.mu.Lock(); r.stripped += n; r.mu.Unlock() }

func (r *recorder) SEOSkipped() { r.mu.Lock(); r.seoSkip++; r.mu.Unlock() }

func (r *recorder) SnapshotDrift(store string) { r.mu.Lock(); r.drift[store]++; r.mu.Unlock() }

func (r *recorder) SnapshotRepaired() { r.mu.Lock(); r.repaired++; r.mu.Unlock() }

// memNormalized is an in-memory NormalizedRepository keyed by tenant/company.
type memNormalized struct {
	mu      sync.Mutex
	records map[string]*model.NormalizedDraft
	markErr error
	marked  int
}

func newMemNormalized() *memNormalized {
	return &memNormalized{records: make(map[string]*model.NormalizedDraft)}
}

func (m *memNormalized) record(tenantID, companyID string) *model.NormalizedDraft {
	key := tenantID + "/" + companyID
	r, ok := m.records[key]
	if !ok {
		r = &model.NormalizedDraft{Sections: []model.CareerSection{}}
		m.records[key] = r
	}
	return r
}

func (m *memNormalized) SaveSEO(_ context.Context, s *model.CareerSEO) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *s
	m.record(s.TenantID, s.CompanyID).SEO = &c
	return nil
}

func (m *memNormalized) ReplaceSections(_ context.Context, layout *model.CareerLayout, sections []model.CareerSection) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := m.record(layout.TenantID, layout.CompanyID)
	l := *layout
	r.Layout = &l
	r.Sections = append([]model.CareerSection(nil), sections...)
	return nil
}

func (m *memNormalized) Load(_ context.Context, tenantID, companyID string) (*model.NormalizedDraft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := *m.record(tenantID, companyID)
	return &out, nil
}

func (m *memNormalized) MarkPublished(_ context.Context, tenantID, companyID string, at time.Time) error {
	if m.markErr != nil {
		return m.markErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.marked++
	r := m.record(tenantID, companyID)
	if r.SEO != nil {
		r.SEO.IsPublished, r.SEO.PublishedAt = true, &at
	}
	if r.Layout != nil {
		r.Layout.IsPublished, r.Layout.PublishedAt = true, &at
	}
	for i := range r.Sections {
		r.Sections[i].IsPublished, r.Sections[i].PublishedAt = true, &at
	}
	return nil
}
