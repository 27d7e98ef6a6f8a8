package service

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/RushikJoshi/GT-HRMS-sub000/internal/model"
	"github.com/RushikJoshi/GT-HRMS-sub000/internal/repository"
	"github.com/RushikJoshi/GT-HRMS-sub000/internal/sanitize"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9-]*$`)

// DefaultPrimaryColor is the theme colour used when none was saved.
const DefaultPrimaryColor = "#4F46E5"

// SEOInput is the body of an SEO save.
type SEOInput struct {
	Title       string   `json:"seoTitle"`
	Description string   `json:"seoDescription"`
	Keywords    []string `json:"seoKeywords"`
	Slug        string   `json:"seoSlug"`
	OGImageURL  string   `json:"seoOgImageUrl"`
}

// DraftSEO is the builder's view of the SEO record.
type DraftSEO struct {
	Title       string   `json:"seo_title"`
	Description string   `json:"seo_description"`
	Keywords    []string `json:"seo_keywords"`
	Slug        string   `json:"seo_slug"`
	OGImage     string   `json:"seo_og_image"`
}

// DraftData is the builder's view assembled from the normalized records.
type DraftData struct {
	SEOSettings     DraftSEO        `json:"seoSettings"`
	Sections        []model.Section `json:"sections"`
	Theme           map[string]any  `json:"theme"`
	LastPublishedAt *time.Time      `json:"lastPublishedAt"`
}

// NormalizedService authors the careers page as separately bounded records.
type NormalizedService interface {
	// SaveSEO validates and stores the SEO record.
	SaveSEO(ctx context.Context, tenantID string, in SEOInput) (*model.CareerSEO, error)

	// SaveSections sanitizes and validates body {sections, theme} and replaces the
	// stored layout and sections. It returns the number of sections saved.
	SaveSections(ctx context.Context, tenantID string, body model.Content) (int, error)

	// GetDraftData assembles the builder view, with defaults for missing records.
	GetDraftData(ctx context.Context, tenantID string) (*DraftData, error)
}

type normalizedService struct {
	repo            repository.NormalizedRepository
	prov            *provisioner
	logger          *zap.Logger
	maxPayloadBytes int
	now             func() time.Time
}

// NewNormalizedService constructs a new NormalizedService. maxPayloadBytes caps the
// sanitized sections body.
func NewNormalizedService(
	repo repository.NormalizedRepository,
	profiles repository.ProfileRepository,
	tenants repository.TenantRepository,
	maxPayloadBytes int,
	logger *zap.Logger,
) NormalizedService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &normalizedService{
		repo:            repo,
		logger:          logger,
		maxPayloadBytes: maxPayloadBytes,
		now:             time.Now,
	}
	s.prov = &provisioner{profiles: profiles, tenants: tenants, logger: logger, now: func() time.Time { return s.now() }}
	return s
}

func (s *normalizedService) SaveSEO(ctx context.Context, tenantID string, in SEOInput) (*model.CareerSEO, error) {
	if tenantID == "" {
		return nil, ErrTenantRequired
	}
	if err := validateSEO(in); err != nil {
		return nil, err
	}

	profile, err := s.prov.ensure(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	keywords := in.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	rec := &model.CareerSEO{
		TenantID:    tenantID,
		CompanyID:   profile.ID,
		Title:       in.Title,
		Description: in.Description,
		Keywords:    keywords,
		Slug:        in.Slug,
		OGImageURL:  in.OGImageURL,
		IsDraft:     true,
		UpdatedAt:   s.now().UTC(),
	}
	if err := s.repo.SaveSEO(ctx, rec); err != nil {
		return nil, errors.Wrap(err, "save seo")
	}
	return rec, nil
}

func validateSEO(in SEOInput) error {
	switch {
	case in.Title == "" || in.Description == "" || in.Slug == "":
		return &ValidationError{Field: "seo", Message: "Title, description, and slug are required"}
	case len([]rune(in.Title)) > model.MaxSEOTitleLen:
		return &ValidationError{Field: "seoTitle", Message: "Title too long (max 70)"}
	case len([]rune(in.Description)) > model.MaxSEODescriptionLen:
		return &ValidationError{Field: "seoDescription", Message: "Description too long (max 160)"}
	case !slugPattern.MatchString(in.Slug):
		return &ValidationError{Field: "seoSlug", Message: "Invalid slug format"}
	case sanitize.IsDataURI(in.OGImageURL):
		return &ValidationError{Field: "seoOgImageUrl", Message: "OG image must be a URL, not embedded data"}
	}
	return nil
}

func (s *normalizedService) SaveSections(ctx context.Context, tenantID string, body model.Content) (int, error) {
	if tenantID == "" {
		return 0, ErrTenantRequired
	}

	clean := sanitize.Content(body)
	if size, err := sanitize.SerializedSize(clean); err != nil {
		return 0, errors.Wrap(err, "measure payload")
	} else if s.maxPayloadBytes > 0 && size > s.maxPayloadBytes {
		return 0, &PayloadTooLargeError{Subject: "payload", Size: size, Limit: s.maxPayloadBytes}
	}

	theme, ok := clean.Object(model.KeyTheme)
	if !ok {
		theme = map[string]any{"primaryColor": DefaultPrimaryColor}
	}

	raw, ok := clean[model.KeySections].([]any)
	if !ok {
		return 0, &ValidationError{Field: "sections", Message: "sections must be an array"}
	}

	now := s.now().UTC()
	sections := make([]model.CareerSection, 0, len(raw))
	order := make([]model.SectionRef, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for i, item := range raw {
		sec, err := parseSection(i, item)
		if err != nil {
			return 0, err
		}
		if _, dup := seen[sec.SectionID]; dup {
			return 0, &ValidationError{Field: "sections", Message: "duplicate section id " + sec.SectionID}
		}
		seen[sec.SectionID] = struct{}{}

		size, err := sanitize.SerializedSize(sec.Content)
		if err != nil {
			return 0, errors.Wrap(err, "measure section")
		}
		if size > model.MaxSectionBytes {
			return 0, &PayloadTooLargeError{Subject: "section " + sec.SectionID + " content", Size: size, Limit: model.MaxSectionBytes}
		}

		sec.TenantID = tenantID
		sec.IsDraft = true
		sec.UpdatedAt = now
		sections = append(sections, sec)
		order = append(order, model.SectionRef{SectionID: sec.SectionID, SectionType: sec.Type, Order: i})
	}

	layout := &model.CareerLayout{
		TenantID:     tenantID,
		LayoutConfig: model.LayoutConfig{Theme: theme, SectionOrder: order},
		IsDraft:      true,
		UpdatedAt:    now,
	}
	size, err := sanitize.SerializedSize(layout.LayoutConfig)
	if err != nil {
		return 0, errors.Wrap(err, "measure layout")
	}
	if size > model.MaxLayoutBytes {
		return 0, &PayloadTooLargeError{Subject: "layout", Size: size, Limit: model.MaxLayoutBytes}
	}

	profile, err := s.prov.ensure(ctx, tenantID)
	if err != nil {
		return 0, err
	}
	layout.CompanyID = profile.ID
	for i := range sections {
		sections[i].CompanyID = profile.ID
	}

	if err := s.repo.ReplaceSections(ctx, layout, sections); err != nil {
		return 0, errors.Wrap(err, "save sections")
	}

	s.logger.Info("sections saved",
		zap.String("event", "sections_saved"),
		zap.String("tenant_id", tenantID),
		zap.Int("sections", len(sections)),
	)
	return len(sections), nil
}

// parseSection reads one submitted section; its order is its index.
func parseSection(i int, item any) (model.CareerSection, error) {
	m, ok := item.(map[string]any)
	if !ok {
		return model.CareerSection{}, &ValidationError{Field: "sections", Message: "each section must be an object"}
	}
	id, _ := m["id"].(string)
	if strings.TrimSpace(id) == "" {
		return model.CareerSection{}, &ValidationError{Field: "sections.id", Message: "section id is required"}
	}
	typ, _ := m["type"].(string)
	if !model.SectionType(typ).Valid() {
		return model.CareerSection{}, &ValidationError{Field: "sections.type", Message: "invalid section type " + typ + " for section " + id}
	}

	sec := model.CareerSection{
		SectionID: id,
		Type:      model.SectionType(typ),
		Order:     i,
		Content:   map[string]any{},
	}
	if content, ok := m["content"].(map[string]any); ok {
		sec.Content = content
	}
	if theme, ok := m["theme"].(map[string]any); ok {
		sec.Theme = theme
	}
	return sec, nil
}

func (s *normalizedService) GetDraftData(ctx context.Context, tenantID string) (*DraftData, error) {
	if tenantID == "" {
		return nil, ErrTenantRequired
	}
	profile, err := s.prov.ensure(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	rec, err := s.repo.Load(ctx, tenantID, profile.ID)
	if err != nil {
		return nil, errors.Wrap(err, "load draft records")
	}

	out := defaultDraftData()
	if rec.SEO != nil {
		out.SEOSettings = DraftSEO{
			Title:       rec.SEO.Title,
			Description: rec.SEO.Description,
			Keywords:    rec.SEO.Keywords,
			Slug:        rec.SEO.Slug,
			OGImage:     rec.SEO.OGImageURL,
		}
	}
	if len(rec.Sections) > 0 {
		out.Sections = make([]model.Section, 0, len(rec.Sections))
		for _, sec := range rec.Sections {
			out.Sections = append(out.Sections, model.Section{
				ID:      sec.SectionID,
				Type:    string(sec.Type),
				Content: sec.Content,
				Order:   sec.Order,
			})
		}
	}
	if rec.Layout != nil {
		if rec.Layout.LayoutConfig.Theme != nil {
			out.Theme = rec.Layout.LayoutConfig.Theme
		}
		out.LastPublishedAt = rec.Layout.PublishedAt
	}
	return out, nil
}

func defaultDraftData() *DraftData {
	return &DraftData{
		SEOSettings: DraftSEO{Keywords: []string{}},
		Sections: []model.Section{
			{
				ID:   "hero-default",
				Type: string(model.SectionHero),
				Content: map[string]any{
					"title":    "Join Our Amazing Team",
					"subtitle": "Innovate, grow, and build the future with us.",
					"bgType":   "gradient",
					"bgColor":  "from-[#4F46E5] via-[#9333EA] to-[#EC4899]",
					"ctaText":  "Check Open Positions",
				},
			},
		},
		Theme: map[string]any{"primaryColor": DefaultPrimaryColor},
	}
}
