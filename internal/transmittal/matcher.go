// =============================================================================
// docctl - File Matcher
// =============================================================================
//
// Associates manifest rows with the physical files submitted alongside them.
// A file belongs to a document when its lowercased name contains the
// normalized document number as a substring, so "SPEC-100_rev_B.pdf" and
// "spec-100 attachment.docx" both match document "spec-100". Multiple
// matches per document are normal (a drawing plus its attachments); zero
// matches is valid too.
//
// =============================================================================

package transmittal

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// MatchFiles returns the sorted filenames (not paths) in dir whose
// lowercased name contains docKey. Subdirectories and the manifest workbook
// itself are excluded from the candidates.
func MatchFiles(dir, manifestName, docKey string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan transmittal directory %s: %w", dir, err)
	}

	var matches []string
	for _, entry := range entries {
		if entry.IsDir() || entry.Name() == manifestName {
			continue
		}
		if strings.Contains(strings.ToLower(entry.Name()), docKey) {
			matches = append(matches, entry.Name())
		}
	}

	sort.Strings(matches)
	return matches, nil
}
