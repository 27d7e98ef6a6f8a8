package service

import (
	"strings"
	"time"

	"github.com/RushikJoshi/GT-HRMS-sub000/internal/model"
	"github.com/RushikJoshi/GT-HRMS-sub000/internal/seo"
)

// buildSnapshot derives the whole published document from live content.
// The result depends only on its arguments, so the reconciler can rebuild
// exactly the snapshot a publish wrote. SEO comes from the metaTags stamped on
// live content by the same publish; without them the snapshot uses the fallback.
func buildSnapshot(tenantID, companyID string, c model.Content, publishedAt time.Time, version int64) *model.PublishedPage {
	meta := seo.FromContent(c[model.KeyMetaTags])

	ps := model.PublishedSEO{Keywords: []string{}, Slug: seo.DefaultSlug}
	if meta == nil {
		meta = seo.Fallback(tenantID)
	} else if settings := seo.SettingsFromContent(c); settings != nil {
		if s := strings.TrimSpace(settings.Slug); s != "" {
			ps.Slug = s
		}
		for _, k := range settings.Keywords {
			if k = strings.TrimSpace(k); k != "" {
				ps.Keywords = append(ps.Keywords, k)
			}
		}
	}
	ps.Title = meta.Title
	ps.Description = meta.Description
	ps.OGImage = meta.OGImage
	ps.CanonicalURL = meta.Canonical
	ps.MetaHTML = meta.MetaTags

	page := &model.PublishedPage{
		TenantID:    tenantID,
		CompanyID:   companyID,
		SEO:         ps,
		Sections:    snapshotSections(c[model.KeySections]),
		PublishedAt: publishedAt,
		Version:     version,
	}
	if theme, ok := c.Object(model.KeyTheme); ok {
		page.Theme = theme
	}
	if apply, ok := c.Object(model.KeyApplyPage); ok {
		page.ApplyPage = apply
	}
	return page
}

// snapshotSections keeps the submitted order and renumbers it from zero.
// Entries that are not objects are dropped.
func snapshotSections(v any) []model.Section {
	raw, _ := v.([]any)
	out := make([]model.Section, 0, len(raw))
	for _, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		s := model.Section{Content: map[string]any{}}
		s.ID, _ = m["id"].(string)
		s.Type, _ = m["type"].(string)
		if content, ok := m["content"].(map[string]any); ok {
			s.Content = content
		}
		s.Order = len(out)
		out = append(out, s)
	}
	return out
}

// nextVersion is the publish timestamp in milliseconds, bumped past prev so
// versions never repeat or go backwards for a tenant.
func nextVersion(now time.Time, prev int64) int64 {
	v := now.UnixMilli()
	if v <= prev {
		v = prev + 1
	}
	return v
}

// contentTime reads a timestamp stored in content, either as a time.Time or
// in its JSON string form.
func contentTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if ts, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return ts
		}
	}
	return time.Time{}
}
