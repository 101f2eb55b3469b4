// Package i18n localizes potrans' own user-facing messages.
//
// It wraps the gotext library: translations are embedded in the binary
// via //go:embed and loaded at startup via Init. If no catalog matches
// the detected language, T is a passthrough.
package i18n

import (
	"embed"
	"os"
	"strings"

	"github.com/leonelquinteros/gotext"
)

// locales embeds the compiled .po translation files.
// Directory structure: locales/{lang}/LC_MESSAGES/potrans.po
//
//go:embed all:locales
var locales embed.FS

// domain is the gettext domain name for potrans.
const domain = "potrans"

var locale *gotext.Locale

// Init initializes the i18n system. If lang is empty, it auto-detects
// from LANGUAGE, LC_ALL, LC_MESSAGES, LANG (in that order, matching
// GNU gettext behavior). Call once at program startup.
func Init(lang string) {
	if lang == "" {
		lang = detectLanguage()
	}

	locale = gotext.NewLocaleFSWithPath(lang, locales, "locales")
	locale.AddDomain(domain)
	locale.SetDomain(domain)
}

// T translates a string. If no translation is available, returns the
// original string unchanged.
func T(msgid string) string {
	if locale == nil {
		return msgid
	}
	return locale.Get(msgid)
}

// detectLanguage reads environment variables following GNU gettext
// conventions.
func detectLanguage() string {
	for _, env := range []string{"LANGUAGE", "LC_ALL", "LC_MESSAGES", "LANG"} {
		val := os.Getenv(env)
		if val == "" {
			continue
		}
		// LANGUAGE can be a colon-separated list; take the first
		if env == "LANGUAGE" {
			val, _, _ = strings.Cut(val, ":")
		}
		// Strip encoding suffix ("es_ES.UTF-8" -> "es_ES")
		if idx := strings.IndexByte(val, '.'); idx >= 0 {
			val = val[:idx]
		}
		if val == "C" || val == "POSIX" || val == "" {
			continue
		}
		return val
	}
	return "en"
}
