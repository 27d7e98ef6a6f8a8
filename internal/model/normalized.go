package model

import "time"

// SectionType is the closed set of section kinds accepted by the normalized store.
type SectionType string

const (
	SectionHero         SectionType = "hero"
	SectionOpenings     SectionType = "openings"
	SectionAbout        SectionType = "about"
	SectionBenefits     SectionType = "benefits"
	SectionTestimonials SectionType = "testimonials"
	SectionCTA          SectionType = "cta"
	SectionCustom       SectionType = "custom"
)

// SectionTypes lists every valid SectionType.
func SectionTypes() []SectionType {
	return []SectionType{
		SectionHero,
		SectionOpenings,
		SectionAbout,
		SectionBenefits,
		SectionTestimonials,
		SectionCTA,
		SectionCustom,
	}
}

// Valid reports whether t is one of SectionTypes.
func (t SectionType) Valid() bool {
	for _, s := range SectionTypes() {
		if s == t {
			return true
		}
	}
	return false
}

// Size caps of the normalized records.
const (
	MaxSEOTitleLen       = 70
	MaxSEODescriptionLen = 160
	MaxSectionBytes      = 2_000_000
	MaxLayoutBytes       = 50 * 1024
)

// CareerSEO is the normalized SEO record of a tenant's page.
type CareerSEO struct {
	TenantID    string     `json:"tenantId"`
	CompanyID   string     `json:"companyId"`
	Title       string     `json:"seoTitle"`
	Description string     `json:"seoDescription"`
	Keywords    []string   `json:"seoKeywords"`
	Slug        string     `json:"seoSlug"`
	OGImageURL  string     `json:"seoOgImageUrl"`
	IsDraft     bool       `json:"isDraft"`
	IsPublished bool       `json:"isPublished"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// CareerSection is one normalized section record. Content is bounded by MaxSectionBytes.
type CareerSection struct {
	TenantID    string         `json:"tenantId"`
	CompanyID   string         `json:"companyId"`
	SectionID   string         `json:"sectionId"`
	Type        SectionType    `json:"sectionType"`
	Order       int            `json:"sectionOrder"`
	Content     map[string]any `json:"content"`
	Theme       map[string]any `json:"theme,omitempty"`
	IsDraft     bool           `json:"isDraft"`
	IsPublished bool           `json:"isPublished"`
	PublishedAt *time.Time     `json:"publishedAt,omitempty"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// SectionRef records a section's position in the layout.
type SectionRef struct {
	SectionID   string      `json:"sectionId"`
	SectionType SectionType `json:"sectionType"`
	Order       int         `json:"order"`
}

// LayoutConfig is the theme plus section ordering. Bounded by MaxLayoutBytes.
type LayoutConfig struct {
	Theme        map[string]any `json:"theme"`
	SectionOrder []SectionRef   `json:"sectionOrder"`
}

// CareerLayout is the normalized layout record.
type CareerLayout struct {
	TenantID     string       `json:"tenantId"`
	CompanyID    string       `json:"companyId"`
	LayoutConfig LayoutConfig `json:"layoutConfig"`
	IsDraft      bool         `json:"isDraft"`
	IsPublished  bool         `json:"isPublished"`
	PublishedAt  *time.Time   `json:"publishedAt,omitempty"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// NormalizedDraft is the normalized records of one tenant, read back together.
type NormalizedDraft struct {
	SEO      *CareerSEO
	Layout   *CareerLayout
	Sections []CareerSection
}
