package roster

import (
	"errors"
	"testing"
)

func TestParseFileCSV(t *testing.T) {
	payload := []byte("Student Name,Email,Company\nAlice,alice@example.com,Acme\nBob,bob@example.com\n")

	rows, err := ParseFile("roster.csv", payload)
	if err != nil {
		t.Fatalf("parse returned error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0]["Student Name"] != "Alice" || rows[0]["Company"] != "Acme" {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
	// Ragged row padded so every header resolves.
	if got, ok := rows[1]["Company"]; !ok || got != "" {
		t.Fatalf("expected padded empty company, got %q (present=%v)", got, ok)
	}
}

func TestParseFileStripsBOM(t *testing.T) {
	payload := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Student Name\nCarol\n")...)

	rows, err := ParseFile("roster.csv", payload)
	if err != nil {
		t.Fatalf("parse returned error: %v", err)
	}
	if len(rows) != 1 || rows[0]["Student Name"] != "Carol" {
		t.Fatalf("BOM header did not resolve: %+v", rows)
	}
}

func TestParseFileSkipsEmptyRecords(t *testing.T) {
	payload := []byte(",,\nStudent Name,Email\n,,\nDana,dana@example.com\n")

	rows, err := ParseFile("roster.csv", payload)
	if err != nil {
		t.Fatalf("parse returned error: %v", err)
	}
	if len(rows) != 1 || rows[0]["Student Name"] != "Dana" {
		t.Fatalf("expected header detection past empty record, got %+v", rows)
	}
}

func TestParseFileHeaderOnly(t *testing.T) {
	rows, err := ParseFile("roster.csv", []byte("Student Name,Email\n"))
	if err != nil {
		t.Fatalf("parse returned error: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no data rows, got %d", len(rows))
	}
}

func TestParseFileUnsupportedFormat(t *testing.T) {
	_, err := ParseFile("roster.pdf", []byte("whatever"))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}
