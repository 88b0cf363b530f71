package parser

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ukaji3/finallist-go/pkg/finallist/models"
	"github.com/xuri/excelize/v2"
)

// newWorkbookWithoutTable builds a readable sheet with header labels but no
// "NO" anchor row.
func newWorkbookWithoutTable(t *testing.T) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	f.SetCellValue("Sheet1", "A1", "CURRENCY")
	f.SetCellValue("Sheet1", "B1", "USD")
	return f
}

func TestScanFiles(t *testing.T) {
	tmpDir := t.TempDir()

	good := filepath.Join(tmpDir, "good.xlsx")
	writeOrderWorkbook(t, good, "DISC %", "15")

	corrupt := filepath.Join(tmpDir, "corrupt.xlsx")
	if err := os.WriteFile(corrupt, []byte("nope"), 0644); err != nil {
		t.Fatal(err)
	}

	missing := filepath.Join(tmpDir, "missing.xlsx")

	paths := []string{good, corrupt, good, missing}
	results := ScanFiles(context.Background(), paths, DefaultScanParams(), 2)

	if len(results) != len(paths) {
		t.Fatalf("Expected %d results, got %d", len(paths), len(results))
	}
	// Results must line up with input order regardless of completion order.
	for i, p := range paths {
		if results[i].Path != p {
			t.Errorf("results[%d].Path = %q, expected %q", i, results[i].Path, p)
		}
	}

	wantOutcomes := []models.ScanOutcome{
		models.ScanOK, models.ScanUnreadable, models.ScanOK, models.ScanUnreadable,
	}
	for i, want := range wantOutcomes {
		if results[i].Outcome != want {
			t.Errorf("results[%d].Outcome = %v, expected %v", i, results[i].Outcome, want)
		}
	}

	if results[0].ItemCount() != 3 {
		t.Errorf("good file item count = %d, expected 3", results[0].ItemCount())
	}
	if results[1].ItemCount() != -1 {
		t.Errorf("corrupt file item count = %d, expected -1", results[1].ItemCount())
	}
}

func TestScanFilesNoTable(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "notable.xlsx")

	f := newWorkbookWithoutTable(t)
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}
	f.Close()

	results := ScanFiles(context.Background(), []string{path}, DefaultScanParams(), 0)
	if results[0].Outcome != models.ScanNoTable {
		t.Fatalf("Outcome = %v, expected ScanNoTable", results[0].Outcome)
	}
	if results[0].Record != nil {
		t.Error("Expected nil record for a file without a data table")
	}
}
