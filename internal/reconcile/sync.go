// =============================================================================
// docctl - Current Files Synchronizer
// =============================================================================
//
// Keeps the Current Files mirror converged on the latest accepted version of
// every document. For each document in an accepted transmittal (processed
// once, on first occurrence in row order):
//
//   1. Every regular file in the mirror whose lowercased name contains the
//      document key is deleted. Deletion failures are logged and skipped.
//   2. Every filename listed on the document's rows is copied in from the
//      transmittal directory, metadata preserved. A listed file missing from
//      the directory is logged and skipped.
//
// Failures here never affect the accept/reject decision - acceptance was
// already recorded before sync runs. Only a mirror that cannot be created or
// scanned at all is reported as an error.
//
// =============================================================================

package reconcile

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/docctl/docctl/internal/transmittal"
	"github.com/docctl/docctl/pkg/utils"
)

// Syncer mirrors accepted files into the Current Files directory.
type Syncer struct {
	// CurrentDir is the mirror directory, created on demand.
	CurrentDir string

	// Logger receives one record per removed or copied file.
	Logger *slog.Logger
}

// Sync applies the mirror update for one accepted transmittal.
func (s *Syncer) Sync(transmittalDir string, rows []transmittal.ValidatedRow) error {
	if err := os.MkdirAll(s.CurrentDir, 0755); err != nil {
		return fmt.Errorf("failed to create current files directory %s: %w", s.CurrentDir, err)
	}

	processed := make(map[string]bool, len(rows))
	for _, row := range rows {
		if !processed[row.DocKey] {
			if err := s.removeOutdated(row); err != nil {
				return err
			}
			processed[row.DocKey] = true
		}

		for _, filename := range row.Filenames {
			src := filepath.Join(transmittalDir, filename)
			if !utils.FileExists(src) {
				s.Logger.Warn("listed file missing in transmittal",
					"file", filename, "transmittal", filepath.Base(transmittalDir))
				continue
			}

			dst := filepath.Join(s.CurrentDir, filename)
			if err := utils.CopyFile(src, dst); err != nil {
				s.Logger.Warn("failed to copy file to current files",
					"file", filename, "error", err)
				continue
			}
			s.Logger.Info("copied file to current files",
				"file", filename, "document", row.Fields["DOCUMENT NUMBER 1"])
		}
	}

	return nil
}

// removeOutdated deletes every mirror file belonging to the row's document.
// Individual deletion failures are non-fatal.
func (s *Syncer) removeOutdated(row transmittal.ValidatedRow) error {
	entries, err := os.ReadDir(s.CurrentDir)
	if err != nil {
		return fmt.Errorf("failed to scan current files directory %s: %w", s.CurrentDir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !strings.Contains(strings.ToLower(entry.Name()), row.DocKey) {
			continue
		}

		path := filepath.Join(s.CurrentDir, entry.Name())
		if err := os.Remove(path); err != nil {
			s.Logger.Warn("failed to remove outdated current file",
				"file", entry.Name(), "error", err)
			continue
		}
		s.Logger.Info("removed outdated current file",
			"file", entry.Name(), "document", row.Fields["DOCUMENT NUMBER 1"])
	}

	return nil
}
