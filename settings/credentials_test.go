package settings

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func withTempDataHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)
	return dir
}

func TestSaveLoadRemoveRoundTrip(t *testing.T) {
	withTempDataHome(t)

	if creds, err := Load(); err != nil || creds != nil {
		t.Fatalf("Load before save = (%+v, %v), want (nil, nil)", creds, err)
	}

	want := &Credentials{Key: "k-123", URL: "https://translate.example.com"}
	if err := Save(want); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if got == nil || got.Key != want.Key || got.URL != want.URL {
		t.Fatalf("Load = %+v, want %+v", got, want)
	}

	if err := Remove(); err != nil {
		t.Fatalf("Remove error: %v", err)
	}
	if creds, err := Load(); err != nil || creds != nil {
		t.Fatalf("Load after remove = (%+v, %v), want (nil, nil)", creds, err)
	}

	// Removing twice is fine
	if err := Remove(); err != nil {
		t.Fatalf("second Remove error: %v", err)
	}
}

func TestSaveUsesOwnerOnlyPermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes are not meaningful on windows")
	}
	dir := withTempDataHome(t)

	if err := Save(&Credentials{Key: "secret"}); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	info, err := os.Stat(filepath.Join(dir, dataDirName, fileName))
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Fatalf("file mode = %o, want 0600", perm)
	}
}

func TestResolveAPIKeyOrder(t *testing.T) {
	withTempDataHome(t)
	t.Setenv(EnvAPIKey, "")

	if got := ResolveAPIKey(""); got != "" {
		t.Fatalf("ResolveAPIKey with nothing configured = %q, want empty", got)
	}

	if err := Save(&Credentials{Key: "stored"}); err != nil {
		t.Fatal(err)
	}
	if got := ResolveAPIKey(""); got != "stored" {
		t.Fatalf("ResolveAPIKey = %q, want stored", got)
	}

	t.Setenv(EnvAPIKey, "from-env")
	if got := ResolveAPIKey(""); got != "from-env" {
		t.Fatalf("ResolveAPIKey = %q, want from-env", got)
	}

	if got := ResolveAPIKey("from-flag"); got != "from-flag" {
		t.Fatalf("ResolveAPIKey = %q, want from-flag", got)
	}
}
