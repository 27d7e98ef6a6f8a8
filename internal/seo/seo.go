// Package seo derives structured and pre-rendered head metadata for a tenant's careers page.
package seo

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/RushikJoshi/GT-HRMS-sub000/internal/model"
)

const (
	// DefaultTitle is used when a present title is blank.
	DefaultTitle = "Join Our Team"
	// DefaultDescription is used when a present description is blank.
	DefaultDescription = "Explore open positions and build your career with a team that values growth, ownership and impact."
	// DefaultSlug is the canonical path segment when no slug is set.
	DefaultSlug = "careers"
	// TwitterCard is the card type advertised for every page.
	TwitterCard = "summary_large_image"
)

// Snapshot defaults used when the author never supplied SEO settings.
const (
	FallbackTitle       = "Career Page"
	FallbackDescription = "Join our team"
)

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// EscapeHTML escapes s for embedding in element text or a double-quoted attribute.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// CanonicalURL builds the per-tenant canonical address of the page.
func CanonicalURL(tenantID, slug string) string {
	if strings.TrimSpace(slug) == "" {
		slug = DefaultSlug
	}
	return fmt.Sprintf("https://careers.%s.com/%s", tenantID, slug)
}

// Generate builds metadata for settings. It returns nil unless both the title
// and the description keys are present; a present but blank field takes its default.
func Generate(settings *model.SEOSettings, tenantID string) *model.SEOMeta {
	if settings == nil || settings.Title == nil || settings.Description == nil {
		return nil
	}

	title := strings.TrimSpace(*settings.Title)
	if title == "" {
		title = DefaultTitle
	}
	description := strings.TrimSpace(*settings.Description)
	if description == "" {
		description = DefaultDescription
	}
	return build(title, description, settings.Keywords, settings.OGImage, CanonicalURL(tenantID, settings.Slug))
}

// Fallback builds metadata from the snapshot defaults.
func Fallback(tenantID string) *model.SEOMeta {
	return build(FallbackTitle, FallbackDescription, nil, "", CanonicalURL(tenantID, ""))
}

func build(title, description string, keywords []string, ogImage, canonical string) *model.SEOMeta {
	kw := joinKeywords(keywords)

	t := EscapeHTML(title)
	d := EscapeHTML(description)
	img := EscapeHTML(ogImage)
	u := EscapeHTML(canonical)

	tags := model.MetaHTML{
		Title:              fmt.Sprintf("<title>%s</title>", t),
		Description:        fmt.Sprintf(`<meta name="description" content="%s">`, d),
		Keywords:           fmt.Sprintf(`<meta name="keywords" content="%s">`, EscapeHTML(kw)),
		OGTitle:            fmt.Sprintf(`<meta property="og:title" content="%s">`, t),
		OGDescription:      fmt.Sprintf(`<meta property="og:description" content="%s">`, d),
		OGType:             `<meta property="og:type" content="website">`,
		OGURL:              fmt.Sprintf(`<meta property="og:url" content="%s">`, u),
		TwitterCard:        fmt.Sprintf(`<meta name="twitter:card" content="%s">`, TwitterCard),
		TwitterTitle:       fmt.Sprintf(`<meta name="twitter:title" content="%s">`, t),
		TwitterDescription: fmt.Sprintf(`<meta name="twitter:description" content="%s">`, d),
		Canonical:          fmt.Sprintf(`<link rel="canonical" href="%s">`, u),
	}
	if ogImage != "" {
		tags.OGImage = fmt.Sprintf(`<meta property="og:image" content="%s">`, img)
		tags.TwitterImage = fmt.Sprintf(`<meta name="twitter:image" content="%s">`, img)
	}

	return &model.SEOMeta{
		Title:         title,
		Description:   description,
		Keywords:      kw,
		OGTitle:       title,
		OGDescription: description,
		OGImage:       ogImage,
		Canonical:     canonical,
		MetaTags:      tags,
	}
}

func joinKeywords(keywords []string) string {
	kept := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.TrimSpace(k); k != "" {
			kept = append(kept, k)
		}
	}
	return strings.Join(kept, ", ")
}

// SettingsFromContent extracts the seoSettings block of a page, if any.
// Keys of the wrong type are treated as absent.
func SettingsFromContent(c model.Content) *model.SEOSettings {
	raw, ok := c.Object(model.KeySEOSettings)
	if !ok {
		return nil
	}

	var s model.SEOSettings
	if v, ok := raw["seo_title"].(string); ok {
		s.Title = &v
	}
	if v, ok := raw["seo_description"].(string); ok {
		s.Description = &v
	}
	s.OGImage, _ = raw["seo_og_image"].(string)
	s.Slug, _ = raw["seo_slug"].(string)

	switch kw := raw["seo_keywords"].(type) {
	case []string:
		s.Keywords = append(s.Keywords, kw...)
	case []any:
		for _, k := range kw {
			if str, ok := k.(string); ok {
				s.Keywords = append(s.Keywords, str)
			}
		}
	case string:
		s.Keywords = strings.Split(kw, ",")
	}
	return &s
}

// ToContent converts generated metadata to its stored document form.
func ToContent(m *model.SEOMeta) (map[string]any, error) {
	if m == nil {
		return nil, nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FromContent reads metadata back from its stored document form. It returns nil
// when v is absent or not a metadata object.
func FromContent(v any) *model.SEOMeta {
	switch t := v.(type) {
	case *model.SEOMeta:
		return t
	case map[string]any, model.Content:
	default:
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var m model.SEOMeta
	if err := json.Unmarshal(b, &m); err != nil || m.Title == "" {
		return nil
	}
	return &m
}
