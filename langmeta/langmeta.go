// Package langmeta provides a registry of the locale codes commonly
// served by LibreTranslate-style backends, with native names for CLI
// output.
package langmeta

import (
	"sort"
	"strings"
)

// Meta describes language display metadata.
type Meta struct {
	Name string
}

// Registry contains canonical language metadata keyed by locale code.
var Registry = map[string]Meta{
	"ar": {Name: "العربية"},
	"bg": {Name: "Български"},
	"cs": {Name: "Čeština"},
	"da": {Name: "Dansk"},
	"de": {Name: "Deutsch"},
	"el": {Name: "Ελληνικά"},
	"en": {Name: "English"},
	"es": {Name: "Español"},
	"fa": {Name: "فارسی"},
	"fi": {Name: "Suomi"},
	"fr": {Name: "Français"},
	"he": {Name: "עברית"},
	"hi": {Name: "हिन्दी"},
	"hu": {Name: "Magyar"},
	"id": {Name: "Bahasa Indonesia"},
	"it": {Name: "Italiano"},
	"ja": {Name: "日本語"},
	"ko": {Name: "한국어"},
	"nl": {Name: "Nederlands"},
	"pl": {Name: "Polski"},
	"pt": {Name: "Português"},
	"ro": {Name: "Română"},
	"ru": {Name: "Русский"},
	"sk": {Name: "Slovenčina"},
	"sv": {Name: "Svenska"},
	"th": {Name: "ไทย"},
	"tr": {Name: "Türkçe"},
	"uk": {Name: "Українська"},
	"vi": {Name: "Tiếng Việt"},
	"zh": {Name: "中文"},
}

// Resolve looks up metadata for a locale code, normalizing separators
// and falling back to the base language for regional variants
// (e.g. "pt-BR" resolves to "pt" when no exact entry exists).
func Resolve(code string) (Meta, bool) {
	norm := strings.ReplaceAll(code, "_", "-")
	if m, ok := Registry[norm]; ok {
		return m, true
	}
	if idx := strings.IndexByte(norm, '-'); idx > 0 {
		base := strings.ToLower(norm[:idx])
		if m, ok := Registry[base]; ok {
			return m, true
		}
	}
	if m, ok := Registry[strings.ToLower(norm)]; ok {
		return m, true
	}
	return Meta{}, false
}

// Name returns the native language name for a locale code, or the code
// itself when unknown.
func Name(code string) string {
	if m, ok := Resolve(code); ok {
		return m.Name
	}
	return code
}

// Codes returns all registered locale codes in sorted order.
func Codes() []string {
	codes := make([]string, 0, len(Registry))
	for c := range Registry {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}
