// =============================================================================
// docctl - File Manager Utility
// =============================================================================
//
// File management utilities for the intake pipeline:
//   - Whole-directory relocation of transmittals into the accepted/rejected
//     roots, with numeric suffixing to avoid collisions
//   - Metadata-preserving file copies for the Current Files mirror
//
// RELOCATION STRATEGY:
//   A transmittal moves as a single unit and is never split. If the
//   destination root already holds an entry with the same name, a numeric
//   suffix (-1, -2, ...) is appended until a free name is found; nothing is
//   ever overwritten. Rename is tried first and falls back to a recursive
//   copy-and-delete when the destination is on a different filesystem.
//
// =============================================================================

package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// =============================================================================
// TRANSMITTAL RELOCATION
// =============================================================================

// MoveTransmittal moves the directory at src into destRoot, creating
// destRoot if needed. On a name collision the destination gains a numeric
// suffix. Returns the final destination path.
func MoveTransmittal(src, destRoot string) (string, error) {
	if err := os.MkdirAll(destRoot, 0755); err != nil {
		return "", fmt.Errorf("failed to create destination root %s: %w", destRoot, err)
	}

	name := filepath.Base(src)
	candidate := filepath.Join(destRoot, name)
	for counter := 1; pathExists(candidate); counter++ {
		candidate = filepath.Join(destRoot, fmt.Sprintf("%s-%d", name, counter))
	}

	if err := os.Rename(src, candidate); err != nil {
		// Cross-device moves cannot rename; copy the tree and delete the
		// original.
		if err := copyDir(src, candidate); err != nil {
			return "", fmt.Errorf("failed to copy %s to %s: %w", src, candidate, err)
		}
		if err := os.RemoveAll(src); err != nil {
			return "", fmt.Errorf("failed to remove original %s: %w", src, err)
		}
	}

	return candidate, nil
}

// =============================================================================
// FILE COPYING
// =============================================================================

// CopyFile copies a regular file from src to dst, preserving permissions
// and the modification time.
func CopyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode())
	if err != nil {
		return err
	}

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		destFile.Close()
		return err
	}
	if err := destFile.Close(); err != nil {
		return err
	}

	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}

// copyDir recursively copies the directory tree at src to dst.
func copyDir(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dst, info.Mode()); err != nil {
		return err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		if entry.IsDir() {
			if err := copyDir(srcPath, dstPath); err != nil {
				return err
			}
			continue
		}
		if err := CopyFile(srcPath, dstPath); err != nil {
			return err
		}
	}

	return nil
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// FileExists checks if a path exists.
func FileExists(path string) bool {
	return pathExists(path)
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
