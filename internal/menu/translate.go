// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package menu

import "github.com/drunkowl/site-tools/pkg/types"

// Layout says which source column holds which language and which language
// is authoritative.
type Layout struct {
	Columns types.Columns
	Base    types.Language
}

// TranslationMap translates base-language strings into one secondary
// language. Lookups fall back to the untranslated string.
type TranslationMap struct {
	Names      map[string]string
	Categories map[string]string
}

// Name translates an item name.
func (m TranslationMap) Name(s string) string {
	return lookup(m.Names, s)
}

// Category translates a category name.
func (m TranslationMap) Category(s string) string {
	return lookup(m.Categories, s)
}

func lookup(m map[string]string, s string) string {
	if t, ok := m[s]; ok {
		return t
	}
	return s
}

// BuildTranslationMap assembles the map into lang from the freshly parsed
// items and the static category table. Static entries win over categories
// seen in the items.
func BuildTranslationMap(items []types.MenuItem, layout Layout, lang types.Language, static map[string]string) TranslationMap {
	m := TranslationMap{
		Names:      make(map[string]string, len(items)),
		Categories: make(map[string]string, len(static)),
	}
	for _, it := range items {
		m.Names[it.Name.In(layout.Columns, layout.Base)] = it.Name.In(layout.Columns, lang)
		m.Categories[it.Category.In(layout.Columns, layout.Base)] = it.Category.In(layout.Columns, lang)
	}
	for base, text := range static {
		m.Categories[base] = text
	}
	return m
}
