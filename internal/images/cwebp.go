// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package images

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/drunkowl/site-tools/internal/container"
)

// DefaultImage is the container image running cwebp as its entrypoint,
// built from build/cwebp/Dockerfile by "mage cwebpImage".
const DefaultImage = "site-tools/cwebp:latest"

// DefaultQuality is the cwebp quality factor used when none is configured.
const DefaultQuality = 80

// CwebpConverter converts images by piping them through a cwebp container.
type CwebpConverter struct {
	runtime container.Runtime
	image   string
	quality int
}

// NewCwebpConverter creates a converter that runs image on rt. It verifies
// that the image exists locally before returning.
func NewCwebpConverter(rt container.Runtime, image string, quality int) (*CwebpConverter, error) {
	if image == "" {
		image = DefaultImage
	}
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}
	if err := rt.ImageExists(image); err != nil {
		return nil, fmt.Errorf("cwebp image not available in %s (build it with \"mage cwebpImage\"): %w", rt.Name(), err)
	}
	return &CwebpConverter{runtime: rt, image: image, quality: quality}, nil
}

// args reads the image from stdin and writes WebP to stdout.
func (c *CwebpConverter) args() []string {
	return []string{"-quiet", "-q", strconv.Itoa(c.quality), "-o", "-", "--", "-"}
}

// Convert pipes srcPath through cwebp and writes the result to dst. Output
// that is not a RIFF/WEBP stream is rejected.
func (c *CwebpConverter) Convert(srcPath string, dst io.Writer) error {
	f, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", srcPath, err)
	}
	defer f.Close()

	var out bytes.Buffer
	if err := c.runtime.Run(c.image, c.args(), f, &out); err != nil {
		return fmt.Errorf("converting %s with cwebp: %w", srcPath, err)
	}
	if !IsWebP(out.Bytes()) {
		return fmt.Errorf("cwebp produced no WebP output for %s", srcPath)
	}
	_, err = dst.Write(out.Bytes())
	return err
}

// IsWebP reports whether data starts with a RIFF/WEBP header.
func IsWebP(data []byte) bool {
	return len(data) >= 12 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WEBP"
}
