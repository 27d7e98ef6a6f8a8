package model

import "time"

// Content is an editor payload for the careers page. Its shape is owned by the
// page builder, so it is carried as decoded JSON (maps, slices and primitives).
type Content map[string]any

// Well-known content keys.
const (
	KeySections        = "sections"
	KeyApplyPage       = "applyPage"
	KeyTheme           = "theme"
	KeySEOSettings     = "seoSettings"
	KeyMetaTags        = "metaTags"
	KeyPublishedAt     = "publishedAt"
	KeyUpdatedAt       = "updatedAt"
	KeyIsPublished     = "isPublished"
	KeyLastPublishedAt = "lastPublishedAt"
	KeyVersion         = "version"
)

// Clone returns a deep copy of c. Nested maps and slices are copied; other
// values are shared.
func (c Content) Clone() Content {
	if c == nil {
		return nil
	}
	return cloneValue(map[string]any(c)).(map[string]any)
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = cloneValue(val)
		}
		return out
	case Content:
		return Content(cloneValue(map[string]any(t)).(map[string]any))
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = cloneValue(val)
		}
		return out
	default:
		return v
	}
}

// Has reports whether key is set to a non-nil value.
func (c Content) Has(key string) bool {
	v, ok := c[key]
	return ok && v != nil
}

// Object returns the nested object stored under key, if any.
func (c Content) Object(key string) (map[string]any, bool) {
	switch m := c[key].(type) {
	case map[string]any:
		return m, true
	case Content:
		return m, true
	}
	return nil, false
}

// Version returns the numeric version stamped on published content, or 0.
func (c Content) Version() int64 {
	switch v := c[KeyVersion].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	default:
		return 0
	}
}

// Overlay returns a new Content holding base's keys replaced by each layer's keys, in order.
// The merge is shallow: a key present in a later layer replaces the earlier value wholesale.
func Overlay(base Content, layers ...Content) Content {
	out := make(Content, len(base))
	for k, v := range base {
		out[k] = v
	}
	for _, l := range layers {
		for k, v := range l {
			out[k] = v
		}
	}
	return out
}

// Address is a postal address on the company profile.
type Address struct {
	Line1   string `json:"line1"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}

// Signatory is the person signing documents on behalf of the company.
type Signatory struct {
	Name        string `json:"name"`
	Designation string `json:"designation"`
}

// ProfileMeta holds the careers page sub-documents embedded in the profile aggregate.
type ProfileMeta struct {
	// DraftCareerPage is the latest unpublished edit.
	DraftCareerPage Content `json:"draftCareerPage,omitempty"`
	// CareerCustomization is the last published (live) content.
	CareerCustomization Content `json:"careerCustomization,omitempty"`
}

// CompanyProfile is the per-tenant aggregate. Exactly one exists per active tenant.
type CompanyProfile struct {
	ID          string      `json:"id"`
	TenantID    string      `json:"tenantId"`
	CompanyName string      `json:"companyName"`
	Address     Address     `json:"address"`
	Signatory   Signatory   `json:"signatory"`
	Meta        ProfileMeta `json:"meta"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// Tenant is the central directory record of a customer organization.
type Tenant struct {
	ID     string `json:"id"`
	Code   string `json:"code"`
	Name   string `json:"name"`
	Status string `json:"status"`
}
