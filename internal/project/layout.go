// =============================================================================
// docctl - Project Layout
// =============================================================================
//
// Resolves the fixed directory layout under a project root and creates any
// missing pieces. The directory names come from the configuration, which
// defaults to the standard layout:
//
//   <root>/Current Files/           mirror of currently valid files
//   <root>/Pending Transmittals/    submissions awaiting processing
//   <root>/Accepted Transmittals/   processed, accepted
//   <root>/Rejected Transmittals/   processed, rejected
//   <root>/Reports/                 persistent tables + run reports
//   <root>/Logs/                    application log
//
// =============================================================================

package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/docctl/docctl/internal/config"
)

// Layout holds the resolved paths of one project.
type Layout struct {
	// Root is the project root directory.
	Root string

	// CurrentFiles is the mirror directory.
	CurrentFiles string

	// Pending, Accepted and Rejected are the transmittal lifecycle roots.
	Pending  string
	Accepted string
	Rejected string

	// Reports and Logs are the bookkeeping directories.
	Reports string
	Logs    string

	// Database is the append-only transmittal database workbook.
	Database string

	// DocumentList is the latest-version index workbook.
	DocumentList string

	// LogFile is the application log file.
	LogFile string
}

// NewLayout resolves the layout under root and creates every directory that
// does not exist yet.
func NewLayout(root string, cfg *config.Config) (*Layout, error) {
	layout := &Layout{
		Root:         root,
		CurrentFiles: filepath.Join(root, cfg.Directories.CurrentFiles),
		Pending:      filepath.Join(root, cfg.Directories.Pending),
		Accepted:     filepath.Join(root, cfg.Directories.Accepted),
		Rejected:     filepath.Join(root, cfg.Directories.Rejected),
		Reports:      filepath.Join(root, cfg.Directories.Reports),
		Logs:         filepath.Join(root, cfg.Directories.Logs),
	}
	layout.Database = filepath.Join(layout.Reports, cfg.DatabaseFile)
	layout.DocumentList = filepath.Join(layout.Reports, cfg.DocumentListFile)
	layout.LogFile = filepath.Join(layout.Logs, cfg.LogFile)

	dirs := []string{
		layout.CurrentFiles,
		layout.Pending,
		layout.Accepted,
		layout.Rejected,
		layout.Reports,
		layout.Logs,
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return layout, nil
}
