package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// makeTransmittal creates a directory with one data file inside.
func makeTransmittal(t *testing.T, parent, name string) string {
	t.Helper()

	dir := filepath.Join(parent, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "SPEC-100.pdf"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestMoveTransmittal(t *testing.T) {
	pending := t.TempDir()
	accepted := filepath.Join(t.TempDir(), "Accepted Transmittals")

	src := makeTransmittal(t, pending, "T-001")
	moved, err := MoveTransmittal(src, accepted)
	if err != nil {
		t.Fatal(err)
	}

	if moved != filepath.Join(accepted, "T-001") {
		t.Errorf("moved to %s, want %s", moved, filepath.Join(accepted, "T-001"))
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Error("source directory should be gone after the move")
	}
	if _, err := os.Stat(filepath.Join(moved, "SPEC-100.pdf")); err != nil {
		t.Errorf("moved directory lost its contents: %v", err)
	}
}

func TestMoveTransmittalSuffixesOnCollision(t *testing.T) {
	pending := t.TempDir()
	dest := t.TempDir()

	want := []string{"T-001", "T-001-1", "T-001-2"}
	for _, expected := range want {
		src := makeTransmittal(t, pending, "T-001")
		moved, err := MoveTransmittal(src, dest)
		if err != nil {
			t.Fatal(err)
		}
		if filepath.Base(moved) != expected {
			t.Fatalf("moved to %s, want %s", filepath.Base(moved), expected)
		}
	}

	// All three survive; nothing was overwritten.
	for _, name := range want {
		if _, err := os.Stat(filepath.Join(dest, name, "SPEC-100.pdf")); err != nil {
			t.Errorf("expected %s to hold its file: %v", name, err)
		}
	}
}

func TestCopyFilePreservesModTime(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.pdf")
	dst := filepath.Join(dir, "dst.pdf")

	if err := os.WriteFile(src, []byte("content"), 0644); err != nil {
		t.Fatal(err)
	}
	stamp := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	if err := os.Chtimes(src, stamp, stamp); err != nil {
		t.Fatal(err)
	}

	if err := CopyFile(src, dst); err != nil {
		t.Fatal(err)
	}

	content, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "content" {
		t.Errorf("copied content = %q", content)
	}

	info, err := os.Stat(dst)
	if err != nil {
		t.Fatal(err)
	}
	if !info.ModTime().Equal(stamp) {
		t.Errorf("mod time = %s, want %s", info.ModTime(), stamp)
	}
}
