// =============================================================================
// docctl - Transmittal Types
// =============================================================================
//
// Shared types for the validation core. A Row is the raw form read from a
// manifest; a ValidatedRow is produced once every required field checked out
// and carries the normalized keys used by reconciliation and file sync.
//
// =============================================================================

package transmittal

// Row is one raw manifest row: a mapping from normalized column name to the
// raw cell value. Rows exist only while one transmittal is being processed.
type Row map[string]string

// ValidatedRow is a manifest row that passed every validation step.
type ValidatedRow struct {
	// Fields holds the full field set keyed by normalized column name.
	// DATE carries the coerced display form and VERSION the trimmed display
	// form; other values are stored as read.
	Fields map[string]string

	// DocKey is the normalized (trimmed, lowercased) document number. It is
	// the key for history lookups, document-list merging and file matching.
	DocKey string

	// Version is the trimmed display form of the version string.
	Version string

	// VersionKey is the case-folded comparison form of Version.
	VersionKey string

	// Filenames is the sorted list of files in the transmittal directory
	// associated with this document. May be empty.
	Filenames []string

	// Number is the manifest row number (header row is 1), kept for
	// diagnostics.
	Number int
}
