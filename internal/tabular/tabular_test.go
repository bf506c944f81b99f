package tabular

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// writeSheet writes a bare workbook with the given rows, bypassing the
// header contract.
func writeSheet(t *testing.T, path string, rows [][]string) {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+1), &cells); err != nil {
			t.Fatal(err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	f.Close()
}

func sampleRow(doc, version string) []string {
	return []string{
		"T-001", "First Issue", "2024-01-15", "1", doc, "", "Pump layout",
		version, "Issued", "For Review", "", "EngCo", "Client",
	}
}

func TestOpenCreatesMissingTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "document_list.xlsx")

	table, err := Open(path, TransmittalHeaders)
	if err != nil {
		t.Fatal(err)
	}
	defer table.Close()

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected workbook to be created: %v", err)
	}

	rows, err := table.ReadRows()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 0 {
		t.Errorf("expected no data rows in a fresh table, got %d", len(rows))
	}
}

func TestOpenAcceptsNormalizedHeaderVariants(t *testing.T) {
	path := filepath.Join(t.TempDir(), "document_list.xlsx")

	header := make([]string, len(TransmittalHeaders))
	copy(header, TransmittalHeaders)
	header[6] = " title; " // normalizes to TITLE
	writeSheet(t, path, [][]string{header})

	table, err := Open(path, TransmittalHeaders)
	if err != nil {
		t.Fatalf("expected variant header to pass the contract: %v", err)
	}
	table.Close()
}

func TestOpenHeaderMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "document_list.xlsx")

	header := make([]string, len(TransmittalHeaders))
	copy(header, TransmittalHeaders)
	header[6] = "SUBJECT" // not TITLE
	writeSheet(t, path, [][]string{header})

	_, err := Open(path, TransmittalHeaders)
	var mismatch *HeaderMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected *HeaderMismatchError, got %v", err)
	}
	if mismatch.Path != path {
		t.Errorf("mismatch path = %q, want %q", mismatch.Path, path)
	}
}

func TestOpenHeaderMismatchOnColumnCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.xlsx")
	writeSheet(t, path, [][]string{TransmittalHeaders}) // 13 columns, database wants 14

	_, err := Open(path, DatabaseHeaders)
	var mismatch *HeaderMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected *HeaderMismatchError, got %v", err)
	}
}

func TestAppendAndReadRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "document_list.xlsx")

	table, err := Open(path, TransmittalHeaders)
	if err != nil {
		t.Fatal(err)
	}
	if err := table.Append([][]string{sampleRow("SPEC-100", "A"), sampleRow("SPEC-200", "B")}); err != nil {
		t.Fatal(err)
	}
	table.Close()

	// Reopen to prove the rows were persisted.
	table, err = Open(path, TransmittalHeaders)
	if err != nil {
		t.Fatal(err)
	}
	defer table.Close()

	rows, err := table.ReadRows()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0]["DOCUMENT NUMBER 1"] != "SPEC-100" {
		t.Errorf("row 1 document = %q, want SPEC-100", rows[0]["DOCUMENT NUMBER 1"])
	}
	if rows[1]["VERSION"] != "B" {
		t.Errorf("row 2 version = %q, want B", rows[1]["VERSION"])
	}
}

func TestReadRowsSkipsBlankRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "document_list.xlsx")

	rows := [][]string{
		TransmittalHeaders,
		sampleRow("SPEC-100", "A"),
		make([]string, len(TransmittalHeaders)), // all blank
		sampleRow("SPEC-200", "A"),
	}
	writeSheet(t, path, rows)

	table, err := Open(path, TransmittalHeaders)
	if err != nil {
		t.Fatal(err)
	}
	defer table.Close()

	records, err := table.ReadRows()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("expected blank row to be skipped, got %d records", len(records))
	}
}

func TestRewriteReplacesAllRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "document_list.xlsx")

	table, err := Open(path, TransmittalHeaders)
	if err != nil {
		t.Fatal(err)
	}
	if err := table.Append([][]string{
		sampleRow("SPEC-100", "A"),
		sampleRow("SPEC-200", "A"),
		sampleRow("SPEC-300", "A"),
	}); err != nil {
		t.Fatal(err)
	}

	if err := table.Rewrite([][]string{sampleRow("SPEC-100", "B")}); err != nil {
		t.Fatal(err)
	}
	table.Close()

	table, err = Open(path, TransmittalHeaders)
	if err != nil {
		t.Fatal(err)
	}
	defer table.Close()

	records, err := table.ReadRows()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("expected rewrite to drop stale rows, got %d records", len(records))
	}
	if records[0]["VERSION"] != "B" {
		t.Errorf("version = %q, want B", records[0]["VERSION"])
	}
}

func TestReadManifestToleratesExtraColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "T-001.xlsx")

	header := append(append([]string{}, TransmittalHeaders...), "REMARKS")
	row := append(sampleRow("SPEC-100", "A"), "rush job")
	writeSheet(t, path, [][]string{header, row})

	records, err := ReadManifest(path, TransmittalHeaders)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0]["REMARKS"] != "rush job" {
		t.Errorf("extra column should be carried through, got %q", records[0]["REMARKS"])
	}
}

func TestReadManifestMissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "T-001.xlsx")

	header := append([]string{}, TransmittalHeaders...)
	header = append(header[:6], header[7:]...) // drop TITLE
	writeSheet(t, path, [][]string{header})

	_, err := ReadManifest(path, TransmittalHeaders)
	var mismatch *HeaderMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected *HeaderMismatchError, got %v", err)
	}
}

func TestReadManifestEmptyHeaderCell(t *testing.T) {
	path := filepath.Join(t.TempDir(), "T-001.xlsx")

	header := append([]string{}, TransmittalHeaders...)
	header[3] = "" // ITEM cell blanked
	writeSheet(t, path, [][]string{header})

	_, err := ReadManifest(path, TransmittalHeaders)
	var mismatch *HeaderMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected *HeaderMismatchError, got %v", err)
	}
}
