//go:build mage

package main

import (
	"fmt"
	"os/exec"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	cwebpImage      = "site-tools/cwebp:latest"
	cwebpDockerfile = "build/cwebp/Dockerfile"
)

// containerRuntime returns docker when installed, otherwise podman.
func containerRuntime() (string, error) {
	for _, bin := range []string{"docker", "podman"} {
		if _, err := exec.LookPath(bin); err == nil {
			return bin, nil
		}
	}
	return "", fmt.Errorf("no container runtime found (install docker or podman)")
}

// CwebpImage builds the cwebp container image used by the images job.
func CwebpImage() error {
	rt, err := containerRuntime()
	if err != nil {
		return err
	}
	if err := sh.RunV(rt, "build", "-t", cwebpImage, "-f", cwebpDockerfile, "build/cwebp"); err != nil {
		return fmt.Errorf("building %s: %w", cwebpImage, err)
	}
	return nil
}

// Menu runs "site-tools menu sync" with the default settings.
func Menu() error {
	mg.Deps(Build)
	return sh.RunV(binPath(), "menu", "sync")
}

// MenuDryRun checks the menu sync without writing any document.
func MenuDryRun() error {
	mg.Deps(Build)
	return sh.RunV(binPath(), "menu", "sync", "--dry-run", "--verbose")
}

// Images builds the cwebp image if needed and converts the image tree to WebP.
func Images() error {
	mg.Deps(Build, CwebpImage)
	return sh.RunV(binPath(), "images")
}

// Verify runs the browser verification scenario against the local server.
func Verify() error {
	mg.Deps(Build)
	return sh.RunV(binPath(), "verify")
}
