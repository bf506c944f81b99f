// =============================================================================
// docctl - Row and Transmittal Validation
// =============================================================================
//
// Validation of one transmittal runs in two layers:
//
//   Row layer: each manifest row is checked independently - required fields,
//   document/version normalization, duplicate lookup against the history
//   index, date coercion, file matching. A failure aborts only that row.
//
//   Transmittal layer: every row is evaluated regardless of earlier
//   failures, so the diagnostic log names every problem in the manifest.
//   The transmittal is accepted only when at least one row validated AND
//   zero rows failed. One bad row rejects the whole batch.
//
// ERROR HANDLING:
//   Errors are collected, never thrown mid-batch. Each error carries the
//   manifest row number so the submitter can be pointed at the exact cell.
//
// =============================================================================

package transmittal

import (
	"fmt"
	"strings"

	"github.com/docctl/docctl/internal/normalize"
)

// RequiredFields are checked in this order; the first empty field fails the
// row.
var RequiredFields = []string{
	"TRANSMITTAL NUMBER",
	"DATE",
	"ITEM",
	"DOCUMENT NUMBER 1",
	"TITLE",
	"VERSION",
}

// =============================================================================
// VALIDATOR
// =============================================================================

// Validator evaluates the rows of one transmittal against the accumulated
// version history and the files present in its directory.
type Validator struct {
	// Dir is the transmittal directory holding the submitted files.
	Dir string

	// ManifestName is the manifest workbook's filename, excluded from file
	// matching.
	ManifestName string

	// History is the version history index loaded before this transmittal.
	// It is not updated between rows of the same manifest.
	History HistoryIndex
}

// Outcome aggregates the result of validating every row of one manifest.
type Outcome struct {
	// Rows are the rows that passed every check, in manifest order.
	Rows []ValidatedRow

	// Errors are all collected failures, in manifest order.
	Errors []*ValidationError
}

// Accepted reports whether the transmittal as a whole is accepted: at least
// one valid row and not a single error.
func (o *Outcome) Accepted() bool {
	return len(o.Rows) > 0 && len(o.Errors) == 0
}

// ValidateAll evaluates every raw row independently and aggregates the
// results. Row numbering starts at 2 (the header row is 1). A manifest that
// yields neither valid rows nor row errors, which can only mean it carried
// no data rows at all, gains a single no-valid-rows error; when rows failed,
// the row errors already explain the rejection on their own.
func (v *Validator) ValidateAll(raw []Row) *Outcome {
	outcome := &Outcome{}

	for i, row := range raw {
		number := i + 2
		validated, verr := v.validateRow(row, number)
		if verr != nil {
			outcome.Errors = append(outcome.Errors, verr)
			continue
		}
		outcome.Rows = append(outcome.Rows, *validated)
	}

	if len(outcome.Rows) == 0 && len(outcome.Errors) == 0 {
		outcome.Errors = append(outcome.Errors, &ValidationError{
			Kind:    KindNoValidRows,
			Message: "transmittal contains no valid rows",
		})
	}

	return outcome
}

// validateRow runs the ordered checks for one raw row and produces either a
// fully populated ValidatedRow or the first error encountered.
func (v *Validator) validateRow(raw Row, number int) (*ValidatedRow, *ValidationError) {
	for _, field := range RequiredFields {
		if strings.TrimSpace(raw[field]) == "" {
			return nil, &ValidationError{
				Kind:    KindMissingField,
				Field:   field,
				Row:     number,
				Message: fmt.Sprintf("required field '%s' is empty", field),
			}
		}
	}

	docKey, err := normalize.DocNumber(raw["DOCUMENT NUMBER 1"])
	if err != nil {
		return nil, &ValidationError{
			Kind:    KindEmptyField,
			Field:   "DOCUMENT NUMBER 1",
			Row:     number,
			Message: "DOCUMENT NUMBER 1 is empty",
		}
	}

	version, err := normalize.Version(raw["VERSION"])
	if err != nil {
		return nil, &ValidationError{
			Kind:    KindEmptyField,
			Field:   "VERSION",
			Row:     number,
			Message: "VERSION is empty",
		}
	}
	versionKey := normalize.VersionKey(version)

	if v.History.Contains(docKey, versionKey) {
		return nil, &ValidationError{
			Kind:  KindDuplicateVersion,
			Field: "VERSION",
			Row:   number,
			Message: fmt.Sprintf("duplicate version '%s' for document '%s' already submitted",
				raw["VERSION"], raw["DOCUMENT NUMBER 1"]),
		}
	}

	date, err := normalize.Date(raw["DATE"])
	if err != nil {
		return nil, &ValidationError{
			Kind:    KindInvalidDate,
			Field:   "DATE",
			Row:     number,
			Message: fmt.Sprintf("invalid DATE '%s'", raw["DATE"]),
		}
	}

	filenames, err := MatchFiles(v.Dir, v.ManifestName, docKey)
	if err != nil {
		return nil, &ValidationError{
			Kind:    KindFileScan,
			Row:     number,
			Message: fmt.Sprintf("failed to match files for document '%s': %v", raw["DOCUMENT NUMBER 1"], err),
		}
	}

	fields := make(map[string]string, len(raw))
	for key, value := range raw {
		fields[key] = value
	}
	fields["VERSION"] = version
	fields["DATE"] = normalize.DateDisplay(date)

	return &ValidatedRow{
		Fields:     fields,
		DocKey:     docKey,
		Version:    version,
		VersionKey: versionKey,
		Filenames:  filenames,
		Number:     number,
	}, nil
}
