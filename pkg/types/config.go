// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"path/filepath"
	"time"
)

// MenuConfig holds settings for the menu sync job.
type MenuConfig struct {
	// SourcePath is the trilingual kitchen menu text file.
	SourcePath string `json:"source" yaml:"source" mapstructure:"source"`

	// DataDir holds one <lang>.json document per locale.
	DataDir string `json:"data_dir" yaml:"data_dir" mapstructure:"data_dir"`

	// Base is the authoritative language (default "en").
	Base Language `json:"base" yaml:"base" mapstructure:"base"`

	// Secondary lists the languages regenerated from the base document,
	// in the order they are written.
	Secondary []Language `json:"secondary" yaml:"secondary" mapstructure:"secondary"`

	// Columns gives the language of each segment of a source line.
	Columns Columns `json:"columns" yaml:"columns" mapstructure:"columns"`

	// TranslationsPath optionally replaces the embedded category table.
	// YAML or TOML, chosen by extension.
	TranslationsPath string `json:"translations,omitempty" yaml:"translations,omitempty" mapstructure:"translations"`

	// DryRun computes every document without writing any of them.
	DryRun bool `json:"dry_run" yaml:"dry_run" mapstructure:"dry_run"`
}

// DocumentPath returns the JSON document path for lang.
func (c MenuConfig) DocumentPath(lang Language) string {
	return filepath.Join(c.DataDir, string(lang)+".json")
}

// ImagesConfig holds settings for the image conversion job.
type ImagesConfig struct {
	// Root is the directory walked for source images.
	Root string `json:"root" yaml:"root" mapstructure:"root"`

	// Extensions lists the lower-case source extensions, dot included.
	Extensions []string `json:"extensions" yaml:"extensions" mapstructure:"extensions"`

	// Image is the container image that runs cwebp.
	Image string `json:"image" yaml:"image" mapstructure:"image"`

	// Quality is the WebP quality factor passed to cwebp (0-100).
	Quality int `json:"quality" yaml:"quality" mapstructure:"quality"`

	// KeepOriginals leaves the source file in place after conversion.
	KeepOriginals bool `json:"keep_originals" yaml:"keep_originals" mapstructure:"keep_originals"`

	// Force re-converts images whose .webp already exists.
	Force bool `json:"force" yaml:"force" mapstructure:"force"`
}

// VerifyConfig holds settings for browser verification runs.
type VerifyConfig struct {
	// BaseURL is prefixed to relative step URLs (e.g. "http://localhost:8000").
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// OutputDir receives screenshots.
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	// ScenarioPath optionally replaces the embedded event-page scenario.
	ScenarioPath string `json:"scenario,omitempty" yaml:"scenario,omitempty" mapstructure:"scenario"`

	// Timeout bounds each browser step.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// Headless runs Chrome without a window (default true).
	Headless bool `json:"headless" yaml:"headless" mapstructure:"headless"`

	// MaxRetries bounds preflight retries on 429/503 (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// Config groups the settings of every job.
type Config struct {
	Menu   MenuConfig   `json:"menu" yaml:"menu" mapstructure:"menu"`
	Images ImagesConfig `json:"images" yaml:"images" mapstructure:"images"`
	Verify VerifyConfig `json:"verify" yaml:"verify" mapstructure:"verify"`
}
