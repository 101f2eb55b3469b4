package i18n

import "testing"

func TestTPassthroughWithoutInit(t *testing.T) {
	locale = nil
	if got := T("untranslated message"); got != "untranslated message" {
		t.Fatalf("T without Init = %q, want passthrough", got)
	}
}

func TestInitLoadsEmbeddedCatalog(t *testing.T) {
	Init("es")
	defer func() { locale = nil }()

	if got := T("No translatable strings found."); got != "No se encontraron cadenas traducibles." {
		t.Fatalf("T = %q, want Spanish translation", got)
	}
	// Unknown msgid passes through
	if got := T("not in catalog"); got != "not in catalog" {
		t.Fatalf("T unknown = %q, want passthrough", got)
	}
}

func TestInitUnknownLanguageFallsThrough(t *testing.T) {
	Init("zz")
	defer func() { locale = nil }()

	if got := T("No translatable strings found."); got != "No translatable strings found." {
		t.Fatalf("T = %q, want passthrough for unknown language", got)
	}
}

func TestDetectLanguage(t *testing.T) {
	t.Setenv("LANGUAGE", "es:en")
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "")
	t.Setenv("LANG", "")
	if got := detectLanguage(); got != "es" {
		t.Fatalf("detectLanguage = %q, want es", got)
	}

	t.Setenv("LANGUAGE", "")
	t.Setenv("LANG", "de_DE.UTF-8")
	if got := detectLanguage(); got != "de_DE" {
		t.Fatalf("detectLanguage = %q, want de_DE", got)
	}

	t.Setenv("LANG", "C")
	if got := detectLanguage(); got != "en" {
		t.Fatalf("detectLanguage = %q, want en fallback", got)
	}
}
