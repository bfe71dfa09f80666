package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func TestConvertWithExplicitHeader(t *testing.T) {
	c := NewCSVTable()
	path := writeCSV(t, "1,2\n3,4\n")

	got, err := c.Convert(path, "A, B")
	if err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}

	want := "| A | B |\n| --- | --- |\n| 1 | 2 |\n| 3 | 4 |\n"
	if got != want {
		t.Fatalf("unexpected table\nwant: %q\ngot:  %q", want, got)
	}
}

func TestConvertPromotesFirstRecordWithoutHeader(t *testing.T) {
	c := NewCSVTable()
	path := writeCSV(t, "name,age\nana,31\n")

	got, err := c.Convert(path, "")
	if err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}
	if !strings.HasPrefix(got, "| name | age |\n| --- | --- |\n") {
		t.Fatalf("expected first record as header, got %q", got)
	}
}

func TestConvertMissingFile(t *testing.T) {
	c := NewCSVTable()
	if _, err := c.Convert(filepath.Join(t.TempDir(), "nope.csv"), ""); err == nil {
		t.Fatal("expected error for missing file")
	}
}
