package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// skeletonDirs is the fixed directory skeleton created inside every new
// project before any file is written.
var skeletonDirs = []string{
	"plugins",
	"routes",
	"test",
	"test/plugins",
	"test/routes",
}

// Write commits a manifest to a brand-new directory at target.
//
// Preconditions are checked before the filesystem is touched: the manifest
// must be collision-free, target must not be the current directory, and
// target must not exist. If anything fails after the target directory was
// created, the directory is removed again, so a failed Write never leaves
// partial output behind.
func Write(target string, files []GeneratedFile) error {
	if target == "" || filepath.Clean(target) == "." {
		return fmt.Errorf("target must be a new directory, not the current one")
	}
	if err := checkCollisions(files); err != nil {
		return err
	}
	if _, err := os.Stat(target); err == nil {
		return fmt.Errorf("target directory %q already exists", target)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to inspect target directory %q: %w", target, err)
	}

	if err := os.Mkdir(target, 0o755); err != nil {
		return fmt.Errorf("failed to create target directory: %w", err)
	}

	if err := writeInto(target, files); err != nil {
		os.RemoveAll(target)
		return err
	}
	return nil
}

func writeInto(target string, files []GeneratedFile) error {
	for _, dir := range skeletonDirs {
		if err := os.Mkdir(filepath.Join(target, dir), 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	for _, file := range files {
		dest := filepath.Join(target, filepath.FromSlash(file.RelativePath))
		// Plugin subtrees need intermediate directories.
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return fmt.Errorf("failed to create directories for %s: %w", file.RelativePath, err)
		}
		if err := os.WriteFile(dest, []byte(file.Content), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", file.RelativePath, err)
		}
	}
	return nil
}
