package pofile

import (
	"strings"
	"testing"
)

func TestParseHeaderAndEntries(t *testing.T) {
	input := `msgid ""
msgstr ""
"Project-Id-Version: demo 1.0\n"
"Language: es\n"

msgid "hello"
msgstr "hola"

#, fuzzy
msgid "draft"
msgstr "borrador"

#~ msgid "gone"
#~ msgstr "ido"
`

	f, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	if got := f.HeaderField("language"); got != "es" {
		t.Fatalf("HeaderField(language) = %q, want es", got)
	}
	if len(f.Entries) != 3 {
		t.Fatalf("entries len = %d, want 3", len(f.Entries))
	}
	if !f.Entries[1].HasFlag("fuzzy") {
		t.Fatal("draft entry should be fuzzy")
	}
	if !f.Entries[2].Obsolete {
		t.Fatal("gone entry should be obsolete")
	}
}

func TestParseContinuationAndEscapes(t *testing.T) {
	input := `msgid "first "
"second "
"third"
msgstr ""

msgid "a\"b\\c\nd\te"
msgstr ""
`

	f, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(f.Entries) != 2 {
		t.Fatalf("entries len = %d, want 2", len(f.Entries))
	}
	if got := f.Entries[0].MsgID; got != "first second third" {
		t.Fatalf("continued msgid = %q", got)
	}
	if got := f.Entries[1].MsgID; got != "a\"b\\c\nd\te" {
		t.Fatalf("escaped msgid = %q", got)
	}
}

func TestParsePluralEntry(t *testing.T) {
	input := `msgid "one file"
msgid_plural "many files"
msgstr[0] "un fichero"
msgstr[1] "muchos ficheros"
`

	f, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(f.Entries) != 1 {
		t.Fatalf("entries len = %d, want 1", len(f.Entries))
	}
	e := f.Entries[0]
	if !e.IsPlural() {
		t.Fatal("entry should be plural")
	}
	if e.MsgStrPlural[0] != "un fichero" || e.MsgStrPlural[1] != "muchos ficheros" {
		t.Fatalf("plural forms = %v", e.MsgStrPlural)
	}
}

func TestTranslatableFiltersHeaderObsoleteAndPlural(t *testing.T) {
	input := `msgid ""
msgstr "Language: es\n"

msgid "keep me"
msgstr ""

msgid "one"
msgid_plural "many"
msgstr[0] ""
msgstr[1] ""

#~ msgid "obsolete"
#~ msgstr ""

#, fuzzy
msgid "fuzzy but translatable"
msgstr "draft"
`

	f, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	got := f.Translatable()
	if len(got) != 2 {
		t.Fatalf("Translatable len = %d, want 2", len(got))
	}
	if got[0].MsgID != "keep me" || got[1].MsgID != "fuzzy but translatable" {
		t.Fatalf("Translatable msgids = %q, %q", got[0].MsgID, got[1].MsgID)
	}
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: `"plain"`, want: "plain"},
		{in: `"a\"b"`, want: `a"b`},
		{in: `"tab\there"`, want: "tab\there"},
		{in: `"back\\slash"`, want: `back\slash`},
		{in: `unquoted`, want: "unquoted"},
		{in: `""`, want: ""},
	}
	for _, tc := range tests {
		if got := Unquote(tc.in); got != tc.want {
			t.Fatalf("Unquote(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
