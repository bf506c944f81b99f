// =============================================================================
// docctl - Version History Index
// =============================================================================
//
// The history index is the set of (document, version) pairs ever accepted,
// rebuilt from the persistent transmittal database before each transmittal
// is processed. It is the authoritative membership test for rejecting
// resubmissions: a pair that is present cannot be accepted again.
//
// The index is deliberately NOT updated while rows of a single manifest are
// validated, so two rows in one manifest carrying the same pair both pass
// the duplicate check. Only cross-transmittal duplicates are caught.
//
// =============================================================================

package transmittal

import (
	"strings"

	"github.com/docctl/docctl/internal/normalize"
	"github.com/docctl/docctl/internal/tabular"
)

// versionPair identifies one accepted (document, version) combination.
type versionPair struct {
	doc     string
	version string
}

// HistoryIndex is the set of accepted (document, version) pairs.
type HistoryIndex map[versionPair]struct{}

// LoadHistory rebuilds the index from the transmittal database at dbPath.
// A missing database yields an empty index (and creates the table with its
// canonical header). Rows with a blank document number or version are
// ignored.
func LoadHistory(dbPath string) (HistoryIndex, error) {
	table, err := tabular.Open(dbPath, tabular.DatabaseHeaders)
	if err != nil {
		return nil, err
	}
	defer table.Close()

	records, err := table.ReadRows()
	if err != nil {
		return nil, err
	}

	index := make(HistoryIndex, len(records))
	for _, record := range records {
		doc := strings.TrimSpace(record["DOCUMENT NUMBER 1"])
		version := strings.TrimSpace(record["VERSION"])
		if doc == "" || version == "" {
			continue
		}
		index[versionPair{
			doc:     strings.ToLower(doc),
			version: normalize.VersionKey(version),
		}] = struct{}{}
	}
	return index, nil
}

// Contains reports whether the (docKey, versionKey) pair has already been
// accepted.
func (ix HistoryIndex) Contains(docKey, versionKey string) bool {
	_, ok := ix[versionPair{doc: docKey, version: versionKey}]
	return ok
}
