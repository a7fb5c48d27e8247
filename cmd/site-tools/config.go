// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/drunkowl/site-tools/internal/images"
	"github.com/drunkowl/site-tools/internal/translations"
	"github.com/drunkowl/site-tools/pkg/types"
)

// envKeyReplacer maps "menu.data_dir" to SITE_TOOLS_MENU_DATA_DIR.
var envKeyReplacer = strings.NewReplacer(".", "_", "-", "_")

const (
	defaultSource    = "kitchen menu.txt"
	defaultDataDir   = "data"
	defaultImageRoot = "img"
	defaultBaseURL   = "http://localhost:8000"
	defaultOutputDir = "verification"
	defaultTimeout   = 30 * time.Second
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("menu.source", defaultSource)
	v.SetDefault("menu.data_dir", defaultDataDir)
	v.SetDefault("menu.base", "en")
	v.SetDefault("menu.secondary", []string{"ru", "ka"})
	v.SetDefault("menu.columns", []string{"ru", "en", "ka"})
	v.SetDefault("menu.translations", "")
	v.SetDefault("menu.dry_run", false)

	v.SetDefault("images.root", defaultImageRoot)
	v.SetDefault("images.extensions", images.DefaultExtensions)
	v.SetDefault("images.image", images.DefaultImage)
	v.SetDefault("images.quality", images.DefaultQuality)
	v.SetDefault("images.keep_originals", false)
	v.SetDefault("images.force", false)

	v.SetDefault("verify.base_url", defaultBaseURL)
	v.SetDefault("verify.output_dir", defaultOutputDir)
	v.SetDefault("verify.scenario", "")
	v.SetDefault("verify.timeout", defaultTimeout)
	v.SetDefault("verify.headless", true)
	v.SetDefault("verify.max_retries", 5)
}

// bindFlags binds each flag to the viper key of the same name under
// section, so "--data-dir" on "menu sync" sets "menu.data_dir".
func bindFlags(cmd *cobra.Command, section string) error {
	var err error
	for _, name := range flagNames(cmd) {
		key := section + "." + strings.ReplaceAll(name, "-", "_")
		if bindErr := viper.BindPFlag(key, cmd.Flags().Lookup(name)); bindErr != nil && err == nil {
			err = fmt.Errorf("binding --%s: %w", name, bindErr)
		}
	}
	return err
}

func flagNames(cmd *cobra.Command) []string {
	var names []string
	for _, name := range []string{
		"source", "data-dir", "base", "secondary", "columns", "translations", "dry-run",
		"root", "extensions", "image", "quality", "keep-originals", "force",
		"base-url", "output-dir", "scenario", "timeout", "headless", "max-retries",
	} {
		if cmd.Flags().Lookup(name) != nil {
			names = append(names, name)
		}
	}
	return names
}

// loadConfig decodes the merged flag, env and file settings.
func loadConfig() (types.Config, error) {
	return decodeConfig(viper.GetViper())
}

func decodeConfig(v *viper.Viper) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding configuration: %w", err)
	}
	if err := normalizeMenu(&cfg.Menu); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// normalizeMenu canonicalises every language code in the menu settings.
func normalizeMenu(m *types.MenuConfig) error {
	base, err := translations.ParseLanguage(string(m.Base))
	if err != nil {
		return fmt.Errorf("menu.base: %w", err)
	}
	m.Base = base

	for i, l := range m.Columns {
		lang, err := translations.ParseLanguage(string(l))
		if err != nil {
			return fmt.Errorf("menu.columns[%d]: %w", i, err)
		}
		m.Columns[i] = lang
	}

	secondary := make([]types.Language, 0, len(m.Secondary))
	for i, l := range m.Secondary {
		lang, err := translations.ParseLanguage(string(l))
		if err != nil {
			return fmt.Errorf("menu.secondary[%d]: %w", i, err)
		}
		secondary = append(secondary, lang)
	}
	m.Secondary = secondary
	return nil
}
