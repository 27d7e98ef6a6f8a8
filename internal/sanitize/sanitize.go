// Package sanitize strips editor-only and oversized data from careers page payloads
// before they are persisted.
//
// Payloads are expected in decoded-JSON form (map[string]any, []any and primitives).
// Other Go values are copied by reference and not inspected.
package sanitize

import (
	"encoding/json"
	"strings"

	"github.com/RushikJoshi/GT-HRMS-sub000/internal/model"
)

// MaxSectionArrayLen is the longest array a section content field may hold.
const MaxSectionArrayLen = 50

// DataURIPrefix marks an embedded (base64) asset.
const DataURIPrefix = "data:"

// strippedKeys are builder artifacts that never belong in a persisted page.
var strippedKeys = map[string]struct{}{
	"preview":            {},
	"fullScreenshot":     {},
	"preview_screenshot": {},
	"entireHTMLSnapshot": {},
	"previewHTML":        {},
	"screenshotData":     {},
	"editorState":        {},
	"previousState":      {},
	"backupData":         {},
	"contentPreview":     {},
}

type scope int

const (
	scopeAny scope = iota
	scopeRoot
	scopeSEO
	scopeSections
	scopeSection
	scopeSectionContent
)

// Payload returns a sanitized deep copy of v. The input is never mutated.
//
//   - keys in the strip list are removed at every depth
//   - strings starting with "data:" are removed; direct children of the top-level
//     seoSettings object are emptied instead so the key survives
//   - array fields longer than MaxSectionArrayLen inside sections[].content are removed
//
// A nil input yields nil. Sanitizing an already sanitized value is a no-op.
func Payload(v any) any {
	if v == nil {
		return nil
	}
	return cleanValue(v, scopeRoot)
}

// Content is Payload for a page content document.
func Content(c model.Content) model.Content {
	if c == nil {
		return nil
	}
	return model.Content(cleanObject(c, scopeRoot))
}

// SerializedSize returns the JSON-encoded size of v in bytes.
func SerializedSize(v any) (int, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return 0, err
	}
	return len(b), nil
}

// IsDataURI reports whether v is a string carrying an embedded asset.
func IsDataURI(v any) bool {
	s, ok := v.(string)
	return ok && strings.HasPrefix(s, DataURIPrefix)
}

func cleanValue(v any, sc scope) any {
	switch t := v.(type) {
	case map[string]any:
		return cleanObject(t, sc)
	case model.Content:
		return model.Content(cleanObject(t, sc))
	case []any:
		return cleanArray(t, sc)
	default:
		return v
	}
}

func cleanObject(m map[string]any, sc scope) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if _, drop := strippedKeys[k]; drop {
			continue
		}
		if IsDataURI(v) {
			if sc == scopeSEO {
				out[k] = ""
			}
			continue
		}
		if sc == scopeSectionContent {
			if a, ok := v.([]any); ok && len(a) > MaxSectionArrayLen {
				continue
			}
		}
		out[k] = cleanValue(v, childScope(sc, k))
	}
	return out
}

func cleanArray(a []any, sc scope) []any {
	next := scopeAny
	if sc == scopeSections {
		next = scopeSection
	}
	out := make([]any, 0, len(a))
	for _, v := range a {
		if IsDataURI(v) {
			continue
		}
		out = append(out, cleanValue(v, next))
	}
	return out
}

func childScope(sc scope, key string) scope {
	switch {
	case sc == scopeRoot && key == model.KeySEOSettings:
		return scopeSEO
	case sc == scopeRoot && key == model.KeySections:
		return scopeSections
	case sc == scopeSection && key == "content":
		return scopeSectionContent
	}
	return scopeAny
}
