package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/drunkowl/site-tools/internal/container"
	"github.com/drunkowl/site-tools/internal/images"
)

var imagesCmd = &cobra.Command{
	Use:   "images",
	Short: "Convert PNG and JPEG images to WebP",
	Long: `Images walks the image root and converts every PNG or JPEG file to a
sibling .webp file using cwebp run in a container (docker or podman).
Originals are removed after a successful conversion unless --keep-originals
is set. A failed file is reported and the batch continues; the command exits
non-zero when any file failed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ic := cfg.Images

		rt, err := container.DetectRuntime()
		if err != nil {
			return err
		}
		logger.Debug().Str("runtime", rt.Name()).Str("image", ic.Image).Msg("container runtime detected")

		conv, err := images.NewCwebpConverter(rt, ic.Image, ic.Quality)
		if err != nil {
			return err
		}

		opts := images.Options{
			Extensions:    ic.Extensions,
			KeepOriginals: ic.KeepOriginals,
			Force:         ic.Force,
		}
		result, err := images.ConvertTree(conv, ic.Root, opts, os.Stdout, os.Stderr)
		if err != nil {
			return err
		}
		if result.HasFailures() {
			return fmt.Errorf("%d of %d images failed to convert", result.Failed, result.Total())
		}
		return nil
	},
}

func init() {
	f := imagesCmd.Flags()
	f.String("root", defaultImageRoot, "directory searched recursively for images")
	f.StringSlice("extensions", images.DefaultExtensions, "source file extensions")
	f.String("image", images.DefaultImage, "container image providing cwebp")
	f.Int("quality", images.DefaultQuality, "WebP quality factor (0-100)")
	f.Bool("keep-originals", false, "keep source images after conversion")
	f.Bool("force", false, "re-convert images that already have a .webp")
	cobra.CheckErr(bindFlags(imagesCmd, "images"))

	rootCmd.AddCommand(imagesCmd)
}
