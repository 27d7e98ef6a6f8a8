package model

import "time"

// SEOSettings is the author-supplied SEO block of a page. Title and Description
// are pointers so an absent key can be told apart from an empty one.
type SEOSettings struct {
	Title       *string  `json:"seo_title,omitempty"`
	Description *string  `json:"seo_description,omitempty"`
	Keywords    []string `json:"seo_keywords,omitempty"`
	OGImage     string   `json:"seo_og_image,omitempty"`
	Slug        string   `json:"seo_slug,omitempty"`
}

// MetaHTML holds ready-to-embed head tags.
type MetaHTML struct {
	Title              string `json:"title"`
	Description        string `json:"description"`
	Keywords           string `json:"keywords"`
	OGTitle            string `json:"ogTitle"`
	OGDescription      string `json:"ogDescription"`
	OGImage            string `json:"ogImage"`
	OGType             string `json:"ogType"`
	OGURL              string `json:"ogUrl"`
	TwitterCard        string `json:"twitterCard"`
	TwitterTitle       string `json:"twitterTitle"`
	TwitterDescription string `json:"twitterDescription"`
	TwitterImage       string `json:"twitterImage"`
	Canonical          string `json:"canonical"`
}

// SEOMeta is the generated metadata for a published page.
type SEOMeta struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Keywords      string   `json:"keywords"`
	OGTitle       string   `json:"ogTitle"`
	OGDescription string   `json:"ogDescription"`
	OGImage       string   `json:"ogImage"`
	Canonical     string   `json:"canonical"`
	MetaTags      MetaHTML `json:"metaTags"`
}

// Section is one ordered block of a published page.
type Section struct {
	ID      string         `json:"id"`
	Type    string         `json:"type"`
	Content map[string]any `json:"content"`
	Order   int            `json:"order"`
}

// PublishedSEO is the SEO block stored on the snapshot.
type PublishedSEO struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Keywords     []string `json:"keywords"`
	Slug         string   `json:"slug"`
	OGImage      string   `json:"ogImage"`
	CanonicalURL string   `json:"canonicalUrl"`
	MetaHTML     MetaHTML `json:"metaHtml"`
}

// PublishedPage is the read-optimized snapshot, one per (tenant, company).
// It is replaced wholesale on every publish; Sections[i].Order == i.
type PublishedPage struct {
	TenantID    string         `json:"tenantId"`
	CompanyID   string         `json:"companyId"`
	SEO         PublishedSEO   `json:"seo"`
	Sections    []Section      `json:"sections"`
	Theme       map[string]any `json:"theme,omitempty"`
	ApplyPage   map[string]any `json:"applyPage,omitempty"`
	PublishedAt time.Time      `json:"publishedAt"`
	Version     int64          `json:"version"`
}
