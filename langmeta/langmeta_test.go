package langmeta

import (
	"sort"
	"testing"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		code   string
		want   string
		wantOK bool
	}{
		{code: "es", want: "Español", wantOK: true},
		{code: "pt-BR", want: "Português", wantOK: true},
		{code: "pt_BR", want: "Português", wantOK: true},
		{code: "EN", want: "English", wantOK: true},
		{code: "zz", wantOK: false},
	}
	for _, tc := range tests {
		m, ok := Resolve(tc.code)
		if ok != tc.wantOK || m.Name != tc.want {
			t.Fatalf("Resolve(%q) = (%q, %v), want (%q, %v)", tc.code, m.Name, ok, tc.want, tc.wantOK)
		}
	}
}

func TestNameFallsBackToCode(t *testing.T) {
	if got := Name("zz-ZZ"); got != "zz-ZZ" {
		t.Fatalf("Name(zz-ZZ) = %q, want passthrough", got)
	}
	if got := Name("de"); got != "Deutsch" {
		t.Fatalf("Name(de) = %q", got)
	}
}

func TestCodesSorted(t *testing.T) {
	codes := Codes()
	if len(codes) != len(Registry) {
		t.Fatalf("Codes len = %d, want %d", len(codes), len(Registry))
	}
	if !sort.StringsAreSorted(codes) {
		t.Fatal("Codes should be sorted")
	}
}
