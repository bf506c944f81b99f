// =============================================================================
// docctl - Validation Error Types
// =============================================================================
//
// Validation failures are structured values, not bare strings: every error
// carries a kind, the field involved (when there is one) and the manifest
// row number. Row-level kinds are collected per row and never stop the rest
// of the manifest from being evaluated; transmittal-level kinds force the
// whole transmittal to be rejected.
//
// =============================================================================

package transmittal

import (
	"fmt"
	"strings"
)

// ErrorKind classifies a validation failure.
type ErrorKind string

const (
	// KindMissingManifest - the transmittal directory has no manifest
	// workbook named after it. Transmittal-level.
	KindMissingManifest ErrorKind = "missing_manifest"

	// KindHeaderMismatch - the manifest header row is absent, has an empty
	// cell, or lacks a required column. Transmittal-level.
	KindHeaderMismatch ErrorKind = "header_mismatch"

	// KindMissingField - a required field is empty. Row-level.
	KindMissingField ErrorKind = "missing_required_field"

	// KindEmptyField - a field failed normalization because it is blank.
	// Row-level.
	KindEmptyField ErrorKind = "empty_field"

	// KindInvalidDate - the DATE value could not be parsed. Row-level.
	KindInvalidDate ErrorKind = "invalid_date"

	// KindDuplicateVersion - the (document, version) pair was already
	// accepted in an earlier transmittal. Row-level.
	KindDuplicateVersion ErrorKind = "duplicate_version"

	// KindNoValidRows - the manifest carried no data rows at all. Rows that
	// failed validation report their own kinds instead. Transmittal-level.
	KindNoValidRows ErrorKind = "no_valid_rows"

	// KindFileScan - the transmittal directory could not be scanned while
	// matching files for a row. Row-level.
	KindFileScan ErrorKind = "file_scan_failed"
)

// ValidationError is a single validation failure with enough context to
// report it against the manifest it came from.
type ValidationError struct {
	// Kind classifies the failure.
	Kind ErrorKind

	// Field is the column involved, when the failure concerns one field.
	Field string

	// Row is the manifest row number (the header row is 1). Zero for
	// transmittal-level failures.
	Row int

	// Message is the human-readable description.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var b strings.Builder
	if e.Row > 0 {
		fmt.Fprintf(&b, "row %d: ", e.Row)
	}
	b.WriteString(e.Message)
	return b.String()
}
