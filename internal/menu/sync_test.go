// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package menu

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drunkowl/site-tools/internal/logging"
	"github.com/drunkowl/site-tools/internal/translations"
	"github.com/drunkowl/site-tools/pkg/types"
)

// syncFixture lays out a source file and three locale documents in a temp dir.
func syncFixture(t *testing.T, source string, docs map[types.Language]string) types.MenuConfig {
	t.Helper()
	dir := t.TempDir()
	dataDir := filepath.Join(dir, "data")
	require.NoError(t, os.MkdirAll(dataDir, 0o755))

	srcPath := filepath.Join(dir, "kitchen menu.txt")
	require.NoError(t, os.WriteFile(srcPath, []byte(source), 0o644))
	for lang, content := range docs {
		require.NoError(t, os.WriteFile(filepath.Join(dataDir, string(lang)+".json"), []byte(content), 0o644))
	}

	return types.MenuConfig{
		SourcePath: srcPath,
		DataDir:    dataDir,
		Base:       "en",
		Secondary:  []types.Language{"ru", "ka"},
		Columns:    types.Columns{"ru", "en", "ka"},
	}
}

func newTestSyncer(t *testing.T, cfg types.MenuConfig) *Syncer {
	t.Helper()
	table, err := translations.Default()
	require.NoError(t, err)
	s, err := NewSyncer(cfg, table, logging.Nop())
	require.NoError(t, err)
	return s
}

const (
	greekSaladSource = "Салаты / Salads / სალათები\nГреческий салат / Greek Salad / ბერძნული სალათი — 15.00 ₾\n"
	emptyMenuDoc     = `{"menu": {"categories": [], "items": []}}`
)

func TestSync_EndToEnd(t *testing.T) {
	cfg := syncFixture(t, greekSaladSource, map[types.Language]string{
		"en": `{"lang": "en", "menu": {"categories": ["Beer"], "items": []}}`,
		"ru": `{"lang": "ru", "menu": {"categories": ["Пиво"], "items": []}}`,
		"ka": `{"lang": "ka", "menu": {"categories": ["ლუდი"], "items": []}}`,
	})

	var out bytes.Buffer
	summary, err := newTestSyncer(t, cfg).Run(&out)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Parsed)
	require.Len(t, summary.Documents, 3)
	for _, d := range summary.Documents {
		assert.True(t, d.Written)
	}

	en, err := LoadDocument(cfg.DocumentPath("en"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Beer", "Salads"}, en.Categories)
	assert.Equal(t, []types.LocaleItem{{Category: "Salads", Name: "Greek Salad", Price: "15.00"}}, en.Items)

	ru, err := LoadDocument(cfg.DocumentPath("ru"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Пиво", "Салаты"}, ru.Categories)
	assert.Equal(t, []types.LocaleItem{{Category: "Салаты", Name: "Греческий салат", Price: "15.00"}}, ru.Items)

	ka, err := LoadDocument(cfg.DocumentPath("ka"))
	require.NoError(t, err)
	assert.Equal(t, []string{"ლუდი", "სალათები"}, ka.Categories)
	assert.Equal(t, "ბერძნული სალათი", ka.Items[0].Name)

	raw, err := os.ReadFile(cfg.DocumentPath("ru"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"lang": "ru"`, "unrelated fields survive regeneration")
	assert.Contains(t, string(raw), `"desc": null`)

	log := out.String()
	assert.Contains(t, log, "updated: "+cfg.DocumentPath("en"))
	assert.Contains(t, log, "Sync summary: 1 items parsed")
}

func TestSync_SecondaryFullyDerived(t *testing.T) {
	cfg := syncFixture(t, greekSaladSource, map[types.Language]string{
		"en": `{"menu": {"categories": ["Beer", "Cocktails", "Mystery"], "items": [{"category": "Mystery", "name": "House Special", "price": "20", "desc": null}]}}`,
		"ru": `{"menu": {"categories": ["Stale"], "items": [{"category": "Stale", "name": "Old", "price": "1", "desc": null}]}}`,
		"ka": emptyMenuDoc,
	})

	_, err := newTestSyncer(t, cfg).Run(&bytes.Buffer{})
	require.NoError(t, err)

	en, err := LoadDocument(cfg.DocumentPath("en"))
	require.NoError(t, err)
	ru, err := LoadDocument(cfg.DocumentPath("ru"))
	require.NoError(t, err)

	require.Len(t, ru.Categories, len(en.Categories))
	assert.Equal(t, []string{"Пиво", "Коктейли", "Mystery", "Салаты"}, ru.Categories)
	require.Len(t, ru.Items, len(en.Items))
	// Unmapped names and categories pass through unchanged.
	assert.Equal(t, types.LocaleItem{Category: "Mystery", Name: "House Special", Price: "20"}, ru.Items[0])
}

func TestSync_KeepsExtraItemFields(t *testing.T) {
	cfg := syncFixture(t, greekSaladSource, map[types.Language]string{
		"en": `{"menu": {"categories": ["Beer"], "items": [{"category": "Beer", "name": "Lager", "price": "8", "desc": null, "type": "bar", "popular": true}]}}`,
		"ru": emptyMenuDoc,
		"ka": emptyMenuDoc,
	})

	_, err := newTestSyncer(t, cfg).Run(&bytes.Buffer{})
	require.NoError(t, err)

	for _, lang := range []types.Language{"en", "ru"} {
		raw, err := os.ReadFile(cfg.DocumentPath(lang))
		require.NoError(t, err)
		assert.Contains(t, string(raw), `"type": "bar"`, lang)
		assert.Contains(t, string(raw), `"popular": true`, lang)
	}

	en, err := LoadDocument(cfg.DocumentPath("en"))
	require.NoError(t, err)
	require.Len(t, en.Items, 2)
	assert.Equal(t, "Lager", en.Items[0].Name)
	assert.Len(t, en.Items[0].Extra, 2)
	assert.Empty(t, en.Items[1].Extra, "parsed items carry only the menu fields")

	ru, err := LoadDocument(cfg.DocumentPath("ru"))
	require.NoError(t, err)
	assert.Equal(t, "Пиво", ru.Items[0].Category)
}

func TestSync_LogsCategoryTable(t *testing.T) {
	cfg := syncFixture(t, greekSaladSource, map[types.Language]string{
		"en": emptyMenuDoc, "ru": emptyMenuDoc, "ka": emptyMenuDoc,
	})
	table, err := translations.Default()
	require.NoError(t, err)

	var logBuf bytes.Buffer
	s, err := NewSyncer(cfg, table, logging.New(&logBuf, true))
	require.NoError(t, err)
	_, err = s.Run(&bytes.Buffer{})
	require.NoError(t, err)

	log := logBuf.String()
	assert.Contains(t, log, "category table")
	assert.Contains(t, log, "version=1")
	assert.Contains(t, log, "Hot Drinks")
}

func TestSync_RepeatedRunDuplicatesItems(t *testing.T) {
	cfg := syncFixture(t, greekSaladSource, map[types.Language]string{
		"en": emptyMenuDoc, "ru": emptyMenuDoc, "ka": emptyMenuDoc,
	})
	s := newTestSyncer(t, cfg)

	_, err := s.Run(&bytes.Buffer{})
	require.NoError(t, err)
	_, err = s.Run(&bytes.Buffer{})
	require.NoError(t, err)

	en, err := LoadDocument(cfg.DocumentPath("en"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Salads"}, en.Categories)
	assert.Len(t, en.Items, 2)

	ka, err := LoadDocument(cfg.DocumentPath("ka"))
	require.NoError(t, err)
	assert.Len(t, ka.Items, 2)
}

func TestSync_DryRunWritesNothing(t *testing.T) {
	cfg := syncFixture(t, greekSaladSource, map[types.Language]string{
		"en": emptyMenuDoc, "ru": emptyMenuDoc, "ka": emptyMenuDoc,
	})
	cfg.DryRun = true

	var out bytes.Buffer
	summary, err := newTestSyncer(t, cfg).Run(&out)
	require.NoError(t, err)
	for _, d := range summary.Documents {
		assert.False(t, d.Written)
	}
	assert.Contains(t, out.String(), "checked:")

	for _, lang := range []types.Language{"en", "ru", "ka"} {
		data, err := os.ReadFile(cfg.DocumentPath(lang))
		require.NoError(t, err)
		assert.Equal(t, emptyMenuDoc, string(data))
	}
}

func TestSync_MalformedSecondaryLeavesBaseWritten(t *testing.T) {
	cfg := syncFixture(t, greekSaladSource, map[types.Language]string{
		"en": emptyMenuDoc,
		"ru": `{"menu": {"categories": [], "items": [`,
		"ka": emptyMenuDoc,
	})

	summary, err := newTestSyncer(t, cfg).Run(&bytes.Buffer{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedDocument)
	assert.Contains(t, err.Error(), cfg.DocumentPath("ru"))
	require.Len(t, summary.Documents, 1)

	en, err := LoadDocument(cfg.DocumentPath("en"))
	require.NoError(t, err)
	assert.Len(t, en.Items, 1, "base document was written before the failure")

	ka, err := os.ReadFile(cfg.DocumentPath("ka"))
	require.NoError(t, err)
	assert.Equal(t, emptyMenuDoc, string(ka), "documents after the failure are untouched")
}

func TestSync_ItemBeforeCategoryTouchesNothing(t *testing.T) {
	cfg := syncFixture(t, "Чай / Tea / ჩაი — 4 ₾\n", map[types.Language]string{
		"en": emptyMenuDoc, "ru": emptyMenuDoc, "ka": emptyMenuDoc,
	})

	_, err := newTestSyncer(t, cfg).Run(&bytes.Buffer{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrItemBeforeCategory)

	data, err := os.ReadFile(cfg.DocumentPath("en"))
	require.NoError(t, err)
	assert.Equal(t, emptyMenuDoc, string(data))
}

func TestSync_MissingBaseDocument(t *testing.T) {
	cfg := syncFixture(t, greekSaladSource, map[types.Language]string{"ru": emptyMenuDoc, "ka": emptyMenuDoc})
	_, err := newTestSyncer(t, cfg).Run(&bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading menu document")
}

func TestNewSyncer_Validation(t *testing.T) {
	table, err := translations.Default()
	require.NoError(t, err)

	base := types.MenuConfig{
		Base:      "en",
		Secondary: []types.Language{"ru", "ka"},
		Columns:   types.Columns{"ru", "en", "ka"},
	}
	tests := []struct {
		name   string
		mutate func(*types.MenuConfig)
		errMsg string
	}{
		{name: "valid", mutate: func(*types.MenuConfig) {}},
		{name: "base not a column", mutate: func(c *types.MenuConfig) { c.Base = "de" }, errMsg: "base language"},
		{name: "no secondaries", mutate: func(c *types.MenuConfig) { c.Secondary = nil }, errMsg: "no secondary"},
		{name: "secondary is base", mutate: func(c *types.MenuConfig) { c.Secondary = []types.Language{"en"} }, errMsg: "is the base language"},
		{name: "secondary not a column", mutate: func(c *types.MenuConfig) { c.Secondary = []types.Language{"fr"} }, errMsg: "not one of the source columns"},
		{
			name: "table keyed by another language",
			mutate: func(c *types.MenuConfig) {
				c.Base = "ru"
				c.Secondary = []types.Language{"en"}
			},
			errMsg: "category table is keyed",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			cfg.Secondary = append([]types.Language(nil), base.Secondary...)
			tt.mutate(&cfg)
			_, err := NewSyncer(cfg, table, logging.Nop())
			if tt.errMsg == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
