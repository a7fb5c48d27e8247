// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the site-tools CLI: the batch jobs
// that maintain the Drunk Owl static site (menu sync, image conversion and
// browser verification).
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/drunkowl/site-tools/internal/logging"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is the diagnostic logger, built once flags are parsed.
var logger = logging.Nop()

// rootCmd is the base command for the site-tools CLI.
var rootCmd = &cobra.Command{
	Use:   "site-tools",
	Short: "Maintenance jobs for the Drunk Owl website",
	Long: `site-tools bundles the run-once jobs used to maintain the static site.

Each job is a subcommand: "menu sync" propagates the trilingual kitchen menu
into the locale JSON files, "images" converts PNG and JPEG files to WebP,
and "verify" drives a headless browser over the locally served site and
saves screenshots.

Settings come from flags, then SITE_TOOLS_* environment variables (a .env
file is read if present), then site-tools.yaml.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		logger = logging.New(os.Stderr, verbose)
		if f := viper.ConfigFileUsed(); f != "" {
			logger.Debug().Str("file", f).Msg("using config file")
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./site-tools.yaml or ~/.config/site-tools/site-tools.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log debug detail to stderr")
}

func initConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: could not load .env: %v\n", err)
	}

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("site-tools")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "site-tools"))
		}
	}

	setDefaults(viper.GetViper())
	viper.SetEnvPrefix("SITE_TOOLS")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "warning: could not read config: %v\n", err)
		}
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
