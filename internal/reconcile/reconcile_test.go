package reconcile

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/docctl/docctl/internal/logging"
	"github.com/docctl/docctl/internal/tabular"
	"github.com/docctl/docctl/internal/transmittal"
)

// acceptedRow builds a ValidatedRow the way the validator would.
func acceptedRow(doc, version, date string, filenames ...string) transmittal.ValidatedRow {
	fields := map[string]string{
		"TRANSMITTAL NUMBER": "T-001",
		"TRANSMITTAL NAME":   "First Issue",
		"DATE":               date,
		"ITEM":               "1",
		"DOCUMENT NUMBER 1":  doc,
		"DOCUMENT NUMBER 2":  "",
		"TITLE":              "Pump layout",
		"VERSION":            version,
		"DOCUMENT STATE":     "Issued",
		"ISSUE OBJECTIVE":    "For Review",
		"HOLD LIST":          "",
		"ISSUED BY":          "EngCo",
		"ISSUED TO":          "Client",
	}
	return transmittal.ValidatedRow{
		Fields:     fields,
		DocKey:     strings.ToLower(doc),
		Version:    version,
		VersionKey: strings.ToLower(version),
		Filenames:  filenames,
	}
}

func newWriter(t *testing.T) *Writer {
	t.Helper()
	dir := t.TempDir()
	return &Writer{
		DatabasePath:     filepath.Join(dir, "transmittal_database.xlsx"),
		DocumentListPath: filepath.Join(dir, "document_list.xlsx"),
		Logger:           logging.Discard(),
	}
}

func readAll(t *testing.T, path string, headers []string) []map[string]string {
	t.Helper()

	table, err := tabular.Open(path, headers)
	if err != nil {
		t.Fatal(err)
	}
	defer table.Close()

	rows, err := table.ReadRows()
	if err != nil {
		t.Fatal(err)
	}
	return rows
}

func TestAppendHistory(t *testing.T) {
	w := newWriter(t)

	rows := []transmittal.ValidatedRow{
		acceptedRow("SPEC-100", "A", "2024-01-15", "SPEC-100_layout.pdf", "spec-100-notes.txt"),
		acceptedRow("SPEC-200", "A", "2024-01-15"),
	}
	if err := w.AppendHistory(rows); err != nil {
		t.Fatal(err)
	}

	records := readAll(t, w.DatabasePath, tabular.DatabaseHeaders)
	if len(records) != 2 {
		t.Fatalf("expected 2 history rows, got %d", len(records))
	}
	if got := records[0]["FILENAMES"]; got != "SPEC-100_layout.pdf; spec-100-notes.txt" {
		t.Errorf("FILENAMES = %q, want joined list", got)
	}
	if got := records[1]["FILENAMES"]; got != "" {
		t.Errorf("expected empty FILENAMES for a row without files, got %q", got)
	}

	// History is append-only: a second accepted transmittal adds rows, it
	// never replaces them.
	if err := w.AppendHistory([]transmittal.ValidatedRow{acceptedRow("SPEC-100", "B", "2024-02-01")}); err != nil {
		t.Fatal(err)
	}
	records = readAll(t, w.DatabasePath, tabular.DatabaseHeaders)
	if len(records) != 3 {
		t.Fatalf("expected 3 history rows after second append, got %d", len(records))
	}
}

func TestMergeDocumentListLastAcceptedWins(t *testing.T) {
	w := newWriter(t)

	if err := w.MergeDocumentList([]transmittal.ValidatedRow{
		acceptedRow("SPEC-100", "B", "2024-06-01"),
		acceptedRow("SPEC-200", "A", "2024-06-01"),
	}); err != nil {
		t.Fatal(err)
	}

	// The second merge carries an EARLIER date; it must still overwrite.
	// Overwriting is by acceptance order, never by comparing fields.
	if err := w.MergeDocumentList([]transmittal.ValidatedRow{
		acceptedRow("Spec-100", "A", "2024-01-01"),
	}); err != nil {
		t.Fatal(err)
	}

	records := readAll(t, w.DocumentListPath, tabular.TransmittalHeaders)
	if len(records) != 2 {
		t.Fatalf("expected one row per document, got %d", len(records))
	}

	byDoc := make(map[string]map[string]string)
	for _, record := range records {
		byDoc[strings.ToLower(record["DOCUMENT NUMBER 1"])] = record
	}
	if got := byDoc["spec-100"]["VERSION"]; got != "A" {
		t.Errorf("SPEC-100 version = %q, want the last accepted 'A'", got)
	}
	if got := byDoc["spec-100"]["DATE"]; got != "2024-01-01" {
		t.Errorf("SPEC-100 date = %q, want 2024-01-01", got)
	}
	if got := byDoc["spec-200"]["VERSION"]; got != "A" {
		t.Errorf("SPEC-200 version = %q, want A", got)
	}
}

func TestMergeDocumentListSameTransmittalLaterRowWins(t *testing.T) {
	w := newWriter(t)

	if err := w.MergeDocumentList([]transmittal.ValidatedRow{
		acceptedRow("SPEC-100", "A", "2024-01-01"),
		acceptedRow("SPEC-100", "B", "2024-01-01"),
	}); err != nil {
		t.Fatal(err)
	}

	records := readAll(t, w.DocumentListPath, tabular.TransmittalHeaders)
	if len(records) != 1 {
		t.Fatalf("expected a single row, got %d", len(records))
	}
	if got := records[0]["VERSION"]; got != "B" {
		t.Errorf("version = %q, want the later row's B", got)
	}
}
