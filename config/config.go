// Package config — .potrans.yaml configuration file support.
//
// When a .potrans.yaml file exists in the working directory, its values
// replace the built-in defaults. Command-line flags still win over both.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/lokalize-tools/potrans/extract"
)

// FileName is the default config file name.
const FileName = ".potrans.yaml"

// Built-in defaults.
const (
	DefaultInput   = "messages.po"
	DefaultOutput  = "translations.txt"
	DefaultURL     = "http://localhost:5000/translate"
	DefaultSource  = "en"
	DefaultTarget  = "es"
	DefaultWorkers = 4
)

// File is the top-level .potrans.yaml structure. Zero values mean
// "use the built-in default".
type File struct {
	// Input is the PO/POT catalog to read.
	Input string `yaml:"input,omitempty"`
	// Output is the result file to write.
	Output string `yaml:"output,omitempty"`
	// URL is the translation endpoint.
	URL string `yaml:"url,omitempty"`
	// Source and Target are locale tags.
	Source string `yaml:"source,omitempty"`
	Target string `yaml:"target,omitempty"`
	// Workers is the worker pool size.
	Workers int `yaml:"workers,omitempty"`
	// ContinueOnError records failures instead of aborting.
	ContinueOnError bool `yaml:"continue_on_error,omitempty"`
	// TimeoutSeconds is the per-request timeout.
	TimeoutSeconds int `yaml:"timeout_seconds,omitempty"`
	// Retries is the transient-error retry budget.
	Retries int `yaml:"retries,omitempty"`
	// MaxLength is the truncation ceiling in bytes.
	MaxLength int `yaml:"max_length,omitempty"`
	// Parser selects the catalog parser variant ("po" or "scan").
	Parser string `yaml:"parser,omitempty"`
	// Proxy is an optional HTTP/HTTPS proxy URL.
	Proxy string `yaml:"proxy,omitempty"`
}

// Default returns a File populated with the built-in defaults.
func Default() *File {
	return &File{
		Input:   DefaultInput,
		Output:  DefaultOutput,
		URL:     DefaultURL,
		Source:  DefaultSource,
		Target:  DefaultTarget,
		Workers: DefaultWorkers,
		Parser:  extract.ModePO,
	}
}

// Load reads .potrans.yaml from dir, applied on top of the built-in
// defaults. A missing file is not an error: the defaults are returned.
func Load(dir string) (*File, error) {
	cfg := Default()

	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.merge(&f)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// merge overlays non-zero fields of f onto cfg.
func (cfg *File) merge(f *File) {
	if f.Input != "" {
		cfg.Input = f.Input
	}
	if f.Output != "" {
		cfg.Output = f.Output
	}
	if f.URL != "" {
		cfg.URL = f.URL
	}
	if f.Source != "" {
		cfg.Source = f.Source
	}
	if f.Target != "" {
		cfg.Target = f.Target
	}
	if f.Workers > 0 {
		cfg.Workers = f.Workers
	}
	if f.ContinueOnError {
		cfg.ContinueOnError = true
	}
	if f.TimeoutSeconds > 0 {
		cfg.TimeoutSeconds = f.TimeoutSeconds
	}
	if f.Retries > 0 {
		cfg.Retries = f.Retries
	}
	if f.MaxLength > 0 {
		cfg.MaxLength = f.MaxLength
	}
	if f.Parser != "" {
		cfg.Parser = f.Parser
	}
	if f.Proxy != "" {
		cfg.Proxy = f.Proxy
	}
}

// Validate checks field values that have a fixed set of accepted
// options.
func (cfg *File) Validate() error {
	if _, err := extract.New(cfg.Parser); err != nil {
		return err
	}
	if cfg.Workers < 0 {
		return fmt.Errorf("workers must be positive, got %d", cfg.Workers)
	}
	return nil
}
