package main

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drunkowl/site-tools/pkg/types"
)

func TestDecodeConfig_Defaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg, err := decodeConfig(v)
	require.NoError(t, err)

	assert.Equal(t, "kitchen menu.txt", cfg.Menu.SourcePath)
	assert.Equal(t, "data", cfg.Menu.DataDir)
	assert.Equal(t, types.Language("en"), cfg.Menu.Base)
	assert.Equal(t, []types.Language{"ru", "ka"}, cfg.Menu.Secondary)
	assert.Equal(t, types.Columns{"ru", "en", "ka"}, cfg.Menu.Columns)
	assert.False(t, cfg.Menu.DryRun)

	assert.Equal(t, "img", cfg.Images.Root)
	assert.Equal(t, []string{".png", ".jpg", ".jpeg"}, cfg.Images.Extensions)
	assert.Equal(t, 80, cfg.Images.Quality)

	assert.Equal(t, "http://localhost:8000", cfg.Verify.BaseURL)
	assert.Equal(t, "verification", cfg.Verify.OutputDir)
	assert.Equal(t, 30*time.Second, cfg.Verify.Timeout)
	assert.True(t, cfg.Verify.Headless)
}

func TestDecodeConfig_File(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(`
menu:
  data_dir: site/data
  base: EN
  secondary: [ka]
  columns: [ka, en, ru]
verify:
  timeout: 5s
  headless: false
`)))

	cfg, err := decodeConfig(v)
	require.NoError(t, err)
	assert.Equal(t, "site/data", cfg.Menu.DataDir)
	assert.Equal(t, types.Language("en"), cfg.Menu.Base, "codes are canonicalised")
	assert.Equal(t, []types.Language{"ka"}, cfg.Menu.Secondary)
	assert.Equal(t, types.Columns{"ka", "en", "ru"}, cfg.Menu.Columns)
	assert.Equal(t, 5*time.Second, cfg.Verify.Timeout)
	assert.False(t, cfg.Verify.Headless)
	assert.Equal(t, "kitchen menu.txt", cfg.Menu.SourcePath, "unset keys keep defaults")
}

func TestDecodeConfig_InvalidLanguage(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  any
		want string
	}{
		{name: "base", key: "menu.base", val: "not a language", want: "menu.base"},
		{name: "secondary", key: "menu.secondary", val: []string{"ru", "??"}, want: "menu.secondary[1]"},
		{name: "columns", key: "menu.columns", val: []string{"ru", "en", "!!"}, want: "menu.columns[2]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			setDefaults(v)
			v.Set(tt.key, tt.val)

			_, err := decodeConfig(v)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestEnvKeyReplacer(t *testing.T) {
	assert.Equal(t, "menu_data_dir", envKeyReplacer.Replace("menu.data_dir"))
	assert.Equal(t, "verify_base_url", envKeyReplacer.Replace("verify.base-url"))
}

func TestBindFlags_MapsDashesToUnderscores(t *testing.T) {
	require.NotNil(t, menuSyncCmd.Flags().Lookup("data-dir"))
	require.NoError(t, menuSyncCmd.Flags().Set("data-dir", "elsewhere"))
	t.Cleanup(func() { _ = menuSyncCmd.Flags().Set("data-dir", defaultDataDir) })

	assert.Equal(t, "elsewhere", viper.GetString("menu.data_dir"))
}

func TestConfigFlagUsageNamesSearchedFile(t *testing.T) {
	usage := rootCmd.PersistentFlags().Lookup("config").Usage
	assert.Contains(t, usage, "./site-tools.yaml")
	assert.Contains(t, usage, "~/.config/site-tools/site-tools.yaml")
}
