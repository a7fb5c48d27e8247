// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package translations loads the static category table used to translate
// base-language category names into the secondary menu languages.
//
// The table ships embedded (categories.yaml) and can be replaced by a
// YAML or TOML file at run time.
package translations

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.yaml.in/yaml/v3"
	"golang.org/x/text/language"

	"github.com/drunkowl/site-tools/pkg/types"
)

//go:embed categories.yaml
var defaultTable []byte

// Format identifies the encoding of a table file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// tableFile is the on-disk shape shared by the YAML and TOML encodings.
type tableFile struct {
	Version    int                          `yaml:"version" toml:"version"`
	Base       string                       `yaml:"base" toml:"base"`
	Categories map[string]map[string]string `yaml:"categories" toml:"categories"`
}

// Table maps base-language category names to their translations.
type Table struct {
	Version    int
	Base       types.Language
	categories map[string]map[types.Language]string
}

// Default returns the embedded table.
func Default() (*Table, error) {
	t, err := Parse(defaultTable, FormatYAML)
	if err != nil {
		return nil, fmt.Errorf("embedded category table: %w", err)
	}
	return t, nil
}

// Load reads a table from path. The format follows the extension:
// .toml is TOML, anything else is YAML.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading category table: %w", err)
	}
	format := FormatYAML
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		format = FormatTOML
	}
	t, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Parse decodes a table and validates its language codes.
func Parse(data []byte, format Format) (*Table, error) {
	var f tableFile
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parsing TOML category table: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parsing YAML category table: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported table format %q", format)
	}

	if f.Base == "" {
		return nil, fmt.Errorf("category table has no base language")
	}
	base, err := ParseLanguage(f.Base)
	if err != nil {
		return nil, err
	}

	t := &Table{
		Version:    f.Version,
		Base:       base,
		categories: make(map[string]map[types.Language]string, len(f.Categories)),
	}
	for name, byLang := range f.Categories {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("category table has an empty category name")
		}
		m := make(map[types.Language]string, len(byLang))
		for code, text := range byLang {
			lang, err := ParseLanguage(code)
			if err != nil {
				return nil, fmt.Errorf("category %q: %w", name, err)
			}
			m[lang] = strings.TrimSpace(text)
		}
		t.categories[name] = m
	}
	return t, nil
}

// For returns the category translations into lang. Categories without an
// entry for lang are left out.
func (t *Table) For(lang types.Language) map[string]string {
	out := make(map[string]string, len(t.categories))
	for name, byLang := range t.categories {
		if text, ok := byLang[lang]; ok && text != "" {
			out[name] = text
		}
	}
	return out
}

// Categories returns the base-language category names in sorted order.
func (t *Table) Categories() []string {
	names := make([]string, 0, len(t.categories))
	for name := range t.categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseLanguage validates a BCP 47 code and returns its canonical form.
func ParseLanguage(code string) (types.Language, error) {
	tag, err := language.Parse(strings.TrimSpace(code))
	if err != nil {
		return "", fmt.Errorf("invalid language code %q: %w", code, err)
	}
	return types.Language(tag.String()), nil
}
