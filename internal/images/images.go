// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package images converts the site's PNG and JPEG files to WebP in place.
// Each source image is replaced by a sibling .webp file of the same base
// name; per-file failures are reported and counted without stopping the
// batch.
package images

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/schollz/progressbar/v3"
)

const webpExt = ".webp"

// DefaultExtensions are the source formats converted when none are
// configured.
var DefaultExtensions = []string{".png", ".jpg", ".jpeg"}

// Converter encodes the image at srcPath as WebP and writes it to dst.
type Converter interface {
	Convert(srcPath string, dst io.Writer) error
}

// Status is the outcome of converting one file.
type Status string

const (
	StatusConverted Status = "converted"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

// Options control a conversion run.
type Options struct {
	// Extensions lists source extensions, dot included. Matching ignores case.
	Extensions []string
	// KeepOriginals leaves the source image after a successful conversion.
	KeepOriginals bool
	// Force overwrites an existing .webp instead of skipping the source.
	Force bool
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
	Removed   int
}

// Total returns the total number of images processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any image failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Find walks root and returns every file whose extension is in exts,
// sorted by path.
func Find(root string, exts []string) ([]string, error) {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	want := make(map[string]bool, len(exts))
	for _, e := range exts {
		want[strings.ToLower(e)] = true
	}

	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() && want[strings.ToLower(filepath.Ext(path))] {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}
	sort.Strings(paths)
	return paths, nil
}

// WebPPath returns the output path for a source image.
func WebPPath(src string) string {
	return strings.TrimSuffix(src, filepath.Ext(src)) + webpExt
}

// ConvertFile converts one image, printing its status to w. The WebP file
// is written under a temporary name and renamed into place; the source is
// removed only after the rename succeeds.
func ConvertFile(c Converter, src string, opts Options, w io.Writer) (Status, bool) {
	dst := WebPPath(src)
	if !opts.Force {
		if _, err := os.Stat(dst); err == nil {
			fmt.Fprintf(w, "skipped: %s (%s exists)\n", src, filepath.Base(dst))
			return StatusSkipped, false
		}
	}

	var buf bytes.Buffer
	if err := c.Convert(src, &buf); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", src, err)
		return StatusFailed, false
	}
	if err := writeFileAtomic(dst, buf.Bytes()); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", src, err)
		return StatusFailed, false
	}
	fmt.Fprintf(w, "converted: %s -> %s\n", src, dst)

	if opts.KeepOriginals {
		return StatusConverted, false
	}
	if err := os.Remove(src); err != nil {
		fmt.Fprintf(w, "  warning: could not remove %s: %v\n", src, err)
		return StatusConverted, false
	}
	fmt.Fprintf(w, "removed: %s\n", src)
	return StatusConverted, true
}

// ConvertBatch converts every path, printing per-file status to w and a
// progress bar to progress (nil disables the bar).
func ConvertBatch(c Converter, paths []string, opts Options, w, progress io.Writer) BatchResult {
	var bar *progressbar.ProgressBar
	if progress != nil {
		bar = progressbar.NewOptions(len(paths),
			progressbar.OptionSetWriter(progress),
			progressbar.OptionSetDescription("converting images"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	var result BatchResult
	for _, p := range paths {
		status, removed := ConvertFile(c, p, opts, w)
		switch status {
		case StatusConverted:
			result.Converted++
		case StatusSkipped:
			result.Skipped++
		case StatusFailed:
			result.Failed++
		}
		if removed {
			result.Removed++
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}

	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed, %d originals removed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Removed, result.Total())
	return result
}

// ConvertTree finds the images under root and converts them.
func ConvertTree(c Converter, root string, opts Options, w, progress io.Writer) (BatchResult, error) {
	paths, err := Find(root, opts.Extensions)
	if err != nil {
		return BatchResult{}, err
	}
	return ConvertBatch(c, paths, opts, w, progress), nil
}

func writeFileAtomic(path string, data []byte) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".webp-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, writeErr := tmpFile.Write(data)
	closeErr := tmpFile.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing output: %w", writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("setting mode: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
