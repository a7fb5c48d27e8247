package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/drunkowl/site-tools/internal/menu"
	"github.com/drunkowl/site-tools/internal/translations"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Maintain the localized menu documents",
}

var menuSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Propagate the kitchen menu into every locale document",
	Long: `Sync reads the trilingual kitchen menu text file, appends its items to
the base-language document (data/en.json by default) and then rebuilds the
menu of every secondary document (data/ru.json, data/ka.json) from it.

Category names are translated through the parsed menu plus a static table,
embedded by default and replaceable with --translations (YAML or TOML).
Every other field of each document is preserved.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		table, err := translations.Default()
		if cfg.Menu.TranslationsPath != "" {
			table, err = translations.Load(cfg.Menu.TranslationsPath)
		}
		if err != nil {
			return fmt.Errorf("loading category translations: %w", err)
		}

		syncer, err := menu.NewSyncer(cfg.Menu, table, logger)
		if err != nil {
			return err
		}
		if _, err := syncer.Run(os.Stdout); err != nil {
			return fmt.Errorf("menu sync: %w", err)
		}
		return nil
	},
}

func init() {
	f := menuSyncCmd.Flags()
	f.String("source", defaultSource, "trilingual kitchen menu text file")
	f.String("data-dir", defaultDataDir, "directory holding <lang>.json documents")
	f.String("base", "en", "authoritative language")
	f.StringSlice("secondary", []string{"ru", "ka"}, "languages regenerated from the base document")
	f.StringSlice("columns", []string{"ru", "en", "ka"}, "language of each slash-separated column of the source")
	f.String("translations", "", "category translation table (.yaml or .toml) replacing the built-in one")
	f.Bool("dry-run", false, "compute every document without writing")
	cobra.CheckErr(bindFlags(menuSyncCmd, "menu"))

	menuCmd.AddCommand(menuSyncCmd)
	rootCmd.AddCommand(menuCmd)
}
