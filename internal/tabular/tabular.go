// =============================================================================
// docctl - Tabular Store Accessor
// =============================================================================
//
// This module owns every XLSX workbook the application touches: the two
// persistent tables under Reports (the append-only transmittal database and
// the rewritten document list) and the per-transmittal manifest.
//
// HEADER CONTRACT:
//   Each table kind has a fixed, ordered column set. Opening an existing
//   persistent table enforces exact header equality after normalization; a
//   mismatch is reported as *HeaderMismatchError and the caller must treat
//   it as fatal for that table. Opening a missing table creates the workbook
//   with the canonical header row.
//
//   Manifests are checked for containment instead: every expected column
//   must be present (extra columns are tolerated and carried through), and
//   no header cell may be empty.
//
// WRITE SEMANTICS:
//   Append adds rows below the existing content and never touches earlier
//   rows. Rewrite replaces the entire data region below the header. The
//   transmittal database only ever sees Append; the document list only ever
//   sees Rewrite.
//
// =============================================================================

package tabular

import (
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/docctl/docctl/internal/normalize"
)

// =============================================================================
// COLUMN SETS
// =============================================================================

// TransmittalHeaders is the canonical column set shared by manifests and the
// document list.
var TransmittalHeaders = []string{
	"TRANSMITTAL NUMBER",
	"TRANSMITTAL NAME",
	"DATE",
	"ITEM",
	"DOCUMENT NUMBER 1",
	"DOCUMENT NUMBER 2",
	"TITLE",
	"VERSION",
	"DOCUMENT STATE",
	"ISSUE OBJECTIVE",
	"HOLD LIST",
	"ISSUED BY",
	"ISSUED TO",
}

// DatabaseHeaders is the transmittal column set plus the derived filenames
// column used by the history table.
var DatabaseHeaders = append(append([]string{}, TransmittalHeaders...), "FILENAMES")

// =============================================================================
// ERRORS
// =============================================================================

// HeaderMismatchError reports a table whose header row does not satisfy the
// contract for its table kind.
type HeaderMismatchError struct {
	// Path is the workbook that failed the check.
	Path string

	// Detail describes what was wrong (missing columns, empty cells, or a
	// full mismatch against the expected set).
	Detail string
}

// Error implements the error interface.
func (e *HeaderMismatchError) Error() string {
	return fmt.Sprintf("header mismatch in %s: %s", e.Path, e.Detail)
}

// =============================================================================
// TABLE
// =============================================================================

// Table is an open persistent table bound to a fixed header contract.
type Table struct {
	path    string
	sheet   string
	headers []string
	file    *excelize.File
}

// Open opens the table at path, enforcing exact header equality against the
// expected column set. A missing file is created with the canonical header
// row.
func Open(path string, headers []string) (*Table, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return create(path, headers)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open table %s: %w", path, err)
	}

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to read table %s: %w", path, err)
	}

	if err := checkExactHeader(path, rows, headers); err != nil {
		f.Close()
		return nil, err
	}

	return &Table{path: path, sheet: sheet, headers: headers, file: f}, nil
}

// create writes a new workbook containing only the canonical header row.
func create(path string, headers []string) (*Table, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	if err := f.SetSheetRow(sheet, "A1", asCells(headers)); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", path, err)
	}

	return &Table{path: path, sheet: sheet, headers: headers, file: f}, nil
}

// checkExactHeader verifies that the first row, once normalized, equals the
// expected column set exactly.
func checkExactHeader(path string, rows [][]string, headers []string) error {
	if len(rows) == 0 {
		return &HeaderMismatchError{Path: path, Detail: "header row is missing"}
	}

	actual := rows[0]
	if len(actual) != len(headers) {
		return &HeaderMismatchError{
			Path:   path,
			Detail: fmt.Sprintf("expected %d columns, found %d", len(headers), len(actual)),
		}
	}
	for i, cell := range actual {
		if normalize.Header(cell) != normalize.Header(headers[i]) {
			return &HeaderMismatchError{
				Path:   path,
				Detail: fmt.Sprintf("column %d is '%s', expected '%s'", i+1, cell, headers[i]),
			}
		}
	}
	return nil
}

// ReadRows returns every non-empty data row as a mapping from canonical
// column name to raw cell value, preserving row order. Rows whose cells are
// all blank are skipped.
func (t *Table) ReadRows() ([]map[string]string, error) {
	rows, err := t.file.GetRows(t.sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from %s: %w", t.path, err)
	}

	if len(rows) == 0 {
		return nil, nil
	}

	var records []map[string]string
	for _, row := range rows[1:] {
		if isRowEmpty(row) {
			continue
		}
		record := make(map[string]string, len(t.headers))
		for i, header := range t.headers {
			if i < len(row) {
				record[header] = row[i]
			} else {
				record[header] = ""
			}
		}
		records = append(records, record)
	}
	return records, nil
}

// Append adds the given rows below the current content and saves the
// workbook. Cell values follow the table's column order.
func (t *Table) Append(rows [][]string) error {
	existing, err := t.file.GetRows(t.sheet)
	if err != nil {
		return fmt.Errorf("failed to read rows from %s: %w", t.path, err)
	}

	next := len(existing) + 1
	for i, row := range rows {
		cell := fmt.Sprintf("A%d", next+i)
		if err := t.file.SetSheetRow(t.sheet, cell, asCells(row)); err != nil {
			return fmt.Errorf("failed to append row %d to %s: %w", next+i, t.path, err)
		}
	}

	if err := t.file.Save(); err != nil {
		return fmt.Errorf("failed to save %s: %w", t.path, err)
	}
	return nil
}

// Rewrite replaces the full data region with the given rows, keeping only
// the canonical header row. The workbook is rebuilt from scratch, so stale
// rows beyond the new content cannot survive.
func (t *Table) Rewrite(rows [][]string) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	if err := f.SetSheetRow(sheet, "A1", asCells(t.headers)); err != nil {
		f.Close()
		return fmt.Errorf("failed to write header row: %w", err)
	}
	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, asCells(row)); err != nil {
			f.Close()
			return fmt.Errorf("failed to write row %d to %s: %w", i+2, t.path, err)
		}
	}
	if err := f.SaveAs(t.path); err != nil {
		f.Close()
		return fmt.Errorf("failed to rewrite %s: %w", t.path, err)
	}

	t.file.Close()
	t.file = f
	t.sheet = sheet
	return nil
}

// Close releases the underlying workbook handle.
func (t *Table) Close() error {
	return t.file.Close()
}

// =============================================================================
// MANIFEST READING
// =============================================================================

// ReadManifest reads a transmittal manifest workbook. Unlike persistent
// tables, manifests may carry extra columns; the check is that the header
// row exists, contains no empty cells, and includes every expected column.
// Returned records are keyed by normalized header (extras included) with
// all-blank rows skipped.
func ReadManifest(path string, required []string) ([]map[string]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest %s: %w", path, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, &HeaderMismatchError{Path: path, Detail: "header row is missing"}
	}

	header := rows[0]
	present := make(map[string]bool, len(header))
	for _, cell := range header {
		if strings.TrimSpace(cell) == "" {
			return nil, &HeaderMismatchError{Path: path, Detail: "header row contains an empty cell"}
		}
		present[normalize.Header(cell)] = true
	}

	var missing []string
	for _, expected := range required {
		if !present[normalize.Header(expected)] {
			missing = append(missing, expected)
		}
	}
	if len(missing) > 0 {
		return nil, &HeaderMismatchError{
			Path:   path,
			Detail: fmt.Sprintf("missing required column(s): %s", strings.Join(missing, ", ")),
		}
	}

	var records []map[string]string
	for _, row := range rows[1:] {
		if isRowEmpty(row) {
			continue
		}
		record := make(map[string]string, len(header))
		for i, cell := range header {
			value := ""
			if i < len(row) {
				value = row[i]
			}
			record[normalize.Header(cell)] = value
		}
		records = append(records, record)
	}
	return records, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// isRowEmpty checks if a row contains only empty cells.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// asCells converts a string row into the cell slice form SetSheetRow expects.
func asCells(row []string) *[]interface{} {
	cells := make([]interface{}, len(row))
	for i, v := range row {
		cells[i] = v
	}
	return &cells
}
