// =============================================================================
// docctl - Reconciliation Writer
// =============================================================================
//
// When a transmittal is accepted, two persistent tables are reconciled:
//
//   Transmittal database (history): append-only. One row per validated
//   manifest row, ever, with the matched filenames joined into a derived
//   column. Earlier rows are never touched.
//
//   Document list (latest-version index): exactly one row per document
//   number, holding the most recently accepted state. The merge loads the
//   full table, overlays the new rows in manifest order, and rewrites the
//   table in full. Overwriting is by acceptance order alone - a newly
//   accepted row replaces the stored one even if its date is older. No
//   version sequencing is attempted.
//
// =============================================================================

package reconcile

import (
	"log/slog"
	"strings"

	"github.com/docctl/docctl/internal/normalize"
	"github.com/docctl/docctl/internal/tabular"
	"github.com/docctl/docctl/internal/transmittal"
)

// FilenameSeparator joins the matched filenames into the derived database
// column.
const FilenameSeparator = "; "

// Writer reconciles accepted rows into the two persistent tables.
type Writer struct {
	// DatabasePath is the append-only transmittal database workbook.
	DatabasePath string

	// DocumentListPath is the latest-version index workbook.
	DocumentListPath string

	// Logger receives one record per reconciled row.
	Logger *slog.Logger
}

// AppendHistory appends one database row per validated row, in manifest
// order. Values follow the database column order; the trailing column is the
// joined filename list.
func (w *Writer) AppendHistory(rows []transmittal.ValidatedRow) error {
	table, err := tabular.Open(w.DatabasePath, tabular.DatabaseHeaders)
	if err != nil {
		return err
	}
	defer table.Close()

	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		values := make([]string, 0, len(tabular.DatabaseHeaders))
		for _, header := range tabular.TransmittalHeaders {
			values = append(values, row.Fields[header])
		}
		values = append(values, strings.Join(row.Filenames, FilenameSeparator))
		records = append(records, values)
	}

	if err := table.Append(records); err != nil {
		return err
	}

	w.Logger.Info("appended rows to transmittal database",
		"path", w.DatabasePath, "rows", len(records))
	return nil
}

// MergeDocumentList merges the validated rows into the latest-version index
// and rewrites it in full. Existing rows are keyed by normalized document
// number; duplicate keys already in storage collapse silently (later rows
// win), and rows whose document cell is blank are dropped with a warning.
// New rows override existing entries unconditionally, later rows in the same
// transmittal overriding earlier ones for the same document.
func (w *Writer) MergeDocumentList(rows []transmittal.ValidatedRow) error {
	table, err := tabular.Open(w.DocumentListPath, tabular.TransmittalHeaders)
	if err != nil {
		return err
	}
	defer table.Close()

	existing, err := table.ReadRows()
	if err != nil {
		return err
	}

	merged := make(map[string]map[string]string, len(existing)+len(rows))
	for _, record := range existing {
		docKey, err := normalize.DocNumber(record["DOCUMENT NUMBER 1"])
		if err != nil {
			w.Logger.Warn("dropping document list row with blank document number",
				"path", w.DocumentListPath)
			continue
		}
		merged[docKey] = record
	}

	for _, row := range rows {
		merged[row.DocKey] = row.Fields
	}

	records := make([][]string, 0, len(merged))
	for _, record := range merged {
		values := make([]string, 0, len(tabular.TransmittalHeaders))
		for _, header := range tabular.TransmittalHeaders {
			values = append(values, record[header])
		}
		records = append(records, values)
	}

	if err := table.Rewrite(records); err != nil {
		return err
	}

	w.Logger.Info("merged rows into document list",
		"path", w.DocumentListPath, "documents", len(merged))
	return nil
}
