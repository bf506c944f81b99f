// =============================================================================
// docctl - Header and Field Normalization
// =============================================================================
//
// This module canonicalizes the column names and scalar cell values used by
// every other part of the intake pipeline:
//   - Header names (trimmed, trailing semicolon stripped, uppercased)
//   - Document numbers (trimmed, lowercased - the primary matching key)
//   - Version strings (trimmed; display form is preserved, comparison is
//     case-insensitive via VersionKey)
//   - Dates (free-text values parsed permissively)
//
// All header matching elsewhere in the application happens on the output of
// Header, so a manifest column written as " title; " matches the canonical
// "TITLE" column.
//
// =============================================================================

package normalize

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ErrEmpty is returned when a value that must be non-empty is blank after
// trimming.
var ErrEmpty = errors.New("value is empty")

// Header canonicalizes a column header: whitespace is trimmed, one trailing
// semicolon is stripped, and the result is uppercased.
func Header(value string) string {
	return strings.ToUpper(strings.TrimSuffix(strings.TrimSpace(value), ";"))
}

// DocNumber canonicalizes a document number for matching: trimmed and
// lowercased. Document numbers are compared case-insensitively everywhere
// (history lookups, filename matching, document-list keys).
func DocNumber(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", ErrEmpty
	}
	return strings.ToLower(trimmed), nil
}

// Version trims a version string. The display form (case included) is what
// gets stored; use VersionKey for comparisons.
func Version(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", ErrEmpty
	}
	return trimmed, nil
}

// VersionKey is the case-folded comparison form of a version string.
func VersionKey(version string) string {
	return strings.ToLower(version)
}

// Date parses a free-text date value. Cells read from a workbook come back
// as display strings, so anything from "2024-01-15" to "Jan 2, 2024" or
// "01/15/2024" must be accepted. Empty or unparseable input is an error.
func Date(value string) (time.Time, error) {
	text := strings.TrimSpace(value)
	if text == "" {
		return time.Time{}, ErrEmpty
	}

	parsed, err := dateparse.ParseAny(text)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date '%s': %w", value, err)
	}
	return parsed, nil
}

// DateDisplay is the storage form of a coerced date. Both persistent tables
// store dates in this format.
func DateDisplay(t time.Time) string {
	return t.Format("2006-01-02")
}
