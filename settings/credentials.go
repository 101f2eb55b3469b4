// Package settings stores the translation endpoint credentials in the
// XDG data directory:
//
//	$XDG_DATA_HOME/potrans/auth.json  (default: ~/.local/share/potrans/)
//
// File permissions are 0600 (owner read/write only).
//
// Lookup order for the API key:
//  1. --api-key flag (highest priority)
//  2. POTRANS_API_KEY environment variable
//  3. This credential store
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	dataDirName = "potrans"
	fileName    = "auth.json"
)

// EnvAPIKey is the environment variable consulted for the API key.
const EnvAPIKey = "POTRANS_API_KEY"

// Credentials holds the stored endpoint authentication data.
type Credentials struct {
	// Key is the API key sent with translation requests.
	Key string `json:"key,omitempty"`
	// URL optionally pins the endpoint the key belongs to.
	URL string `json:"url,omitempty"`
}

// dataDir returns the XDG data directory for potrans.
// Respects $XDG_DATA_HOME, falling back to ~/.local/share.
func dataDir() (string, error) {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, dataDirName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", dataDirName), nil
}

func filePath() (string, error) {
	dir, err := dataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// Load reads stored credentials. Returns nil (no error) when nothing
// has been stored yet.
func Load() (*Credentials, error) {
	path, err := filePath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &creds, nil
}

// Save writes credentials with owner-only permissions.
func Save(creds *Credentials) error {
	path, err := filePath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding credentials: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Remove deletes stored credentials. Removing credentials that were
// never stored is not an error.
func Remove() error {
	path, err := filePath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing %s: %w", path, err)
	}
	return nil
}

// ResolveAPIKey applies the lookup order: explicit flag value, then the
// environment, then the credential store. Returns "" when no key is
// configured anywhere.
func ResolveAPIKey(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv(EnvAPIKey); env != "" {
		return env
	}
	if creds, err := Load(); err == nil && creds != nil {
		return creds.Key
	}
	return ""
}
