package parser

import (
	"path/filepath"
	"testing"

	"github.com/mtoyoshima/exformula/pkg/exformula/models"
	"github.com/xuri/excelize/v2"
)

// saveWorkbook saves f into a temp directory and reopens it.
func saveWorkbook(t *testing.T, f *excelize.File) *excelize.File {
	t.Helper()

	tmpFile := filepath.Join(t.TempDir(), "test.xlsx")
	if err := f.SaveAs(tmpFile); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}

	f2, err := excelize.OpenFile(tmpFile)
	if err != nil {
		t.Fatalf("Failed to open test file: %v", err)
	}
	t.Cleanup(func() { f2.Close() })

	return f2
}

func TestExtractCells(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sheet1"
	f.SetCellValue(sheetName, "A1", 5)
	f.SetCellFormula(sheetName, "B1", "A1*2")
	f.SetCellValue(sheetName, "A2", "x")

	f2 := saveWorkbook(t, f)

	records, err := ExtractCells(f2, sheetName, nil)
	if err != nil {
		t.Fatalf("ExtractCells failed: %v", err)
	}

	want := []models.Record{
		{Cell: "A1", Content: "5"},
		{Cell: "B1", Content: "=A1*2"},
		{Cell: "A2", Content: "x"},
		{Cell: "B2", Content: ""},
	}

	if len(records) != len(want) {
		t.Fatalf("Expected %d records, got %d: %v", len(want), len(records), records)
	}
	for i, rec := range records {
		if rec != want[i] {
			t.Errorf("Record %d: expected %+v, got %+v", i, want[i], rec)
		}
	}
}

func TestExtractCellsBoundsOffset(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sheet1"
	f.SetCellValue(sheetName, "B2", "b2")
	f.SetCellValue(sheetName, "C3", "c3")

	f2 := saveWorkbook(t, f)

	records, err := ExtractCells(f2, sheetName, nil)
	if err != nil {
		t.Fatalf("ExtractCells failed: %v", err)
	}

	// Used range is B2:C3, row-major
	want := []models.Record{
		{Cell: "B2", Content: "b2"},
		{Cell: "C2", Content: ""},
		{Cell: "B3", Content: ""},
		{Cell: "C3", Content: "c3"},
	}

	if len(records) != len(want) {
		t.Fatalf("Expected %d records, got %d: %v", len(want), len(records), records)
	}
	for i, rec := range records {
		if rec != want[i] {
			t.Errorf("Record %d: expected %+v, got %+v", i, want[i], rec)
		}
	}
}

func TestExtractCellsEmptySheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	f2 := saveWorkbook(t, f)

	records, err := ExtractCells(f2, "Sheet1", nil)
	if err != nil {
		t.Fatalf("ExtractCells failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("Expected no records for an empty sheet, got %d", len(records))
	}
}

func TestExtractCellsWithinRange(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sheet1"
	f.SetCellValue(sheetName, "B1", "hit")
	f.SetCellValue(sheetName, "D4", "outside")

	f2 := saveWorkbook(t, f)

	within := &models.Range{R1: 1, C1: 2, R2: 2, C2: 3}
	records, err := ExtractCells(f2, sheetName, within)
	if err != nil {
		t.Fatalf("ExtractCells failed: %v", err)
	}

	want := []models.Record{
		{Cell: "B1", Content: "hit"},
		{Cell: "C1", Content: ""},
		{Cell: "B2", Content: ""},
		{Cell: "C2", Content: ""},
	}

	if len(records) != len(want) {
		t.Fatalf("Expected %d records, got %d: %v", len(want), len(records), records)
	}
	for i, rec := range records {
		if rec != want[i] {
			t.Errorf("Record %d: expected %+v, got %+v", i, want[i], rec)
		}
	}
}

func TestExtractCellsInvalidRange(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	f2 := saveWorkbook(t, f)

	if _, err := ExtractCells(f2, "Sheet1", &models.Range{R1: 0, C1: 1, R2: 2, C2: 2}); err == nil {
		t.Error("Expected an error for out-of-bounds range")
	}
	if _, err := ExtractCells(f2, "Sheet1", &models.Range{R1: 3, C1: 1, R2: 2, C2: 2}); err == nil {
		t.Error("Expected an error for a range with R2 < R1")
	}
}

func TestNormalizeFormula(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"A1*2", "=A1*2"},
		{"SUM(A1:A9)", "=SUM(A1:A9)"},
		{"=A1", "=A1"},
	}

	for _, tt := range tests {
		if result := normalizeFormula(tt.input); result != tt.expected {
			t.Errorf("normalizeFormula(%q) = %q, expected %q", tt.input, result, tt.expected)
		}
	}
}
