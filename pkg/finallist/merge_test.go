package finallist

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ukaji3/finallist-go/pkg/finallist/models"
	"github.com/xuri/excelize/v2"
)

func writeTemplate(t *testing.T, path string) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	f.SetCellValue("Sheet1", "A1", "FINAL LIST")
	f.SetCellValue("Sheet1", "A9", "NO")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save template: %v", err)
	}
}

func writeSource(t *testing.T, path, currency string, discount string) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := "Sheet1"
	f.SetCellValue(sheet, "A1", "CURRENCY")
	f.SetCellValue(sheet, "B1", currency)
	if discount != "" {
		f.SetCellValue(sheet, "A2", "DISC %")
		f.SetCellValue(sheet, "B2", discount)
	}
	f.SetCellValue(sheet, "A6", "NO")
	f.SetCellValue(sheet, "A7", 1)
	f.SetCellValue(sheet, "B7", "Widget")
	f.SetCellValue(sheet, "D7", 2)
	f.SetCellValue(sheet, "F7", 50)
	f.SetCellValue(sheet, "F8", "TOTAL")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save source: %v", err)
	}
}

func newTestMerger(t *testing.T) *Merger {
	t.Helper()
	m := NewMerger(nil)
	m.now = func() time.Time {
		return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	}
	return m
}

func TestMergeEndToEnd(t *testing.T) {
	tmpDir := t.TempDir()
	templatePath := filepath.Join(tmpDir, "template.xlsx")
	writeTemplate(t, templatePath)

	src1 := filepath.Join(tmpDir, "order1.xlsx")
	src2 := filepath.Join(tmpDir, "order2.xlsx")
	writeSource(t, src1, "EUR", "") // defaults to 10%
	writeSource(t, src2, "EUR", "20")

	m := newTestMerger(t)
	res, err := m.Merge(context.Background(), []string{src1, src2}, Options{
		TemplatePath:   templatePath,
		ShowHeaderInfo: true,
	})
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}

	wantName := "MERGED_FINAL_LIST_20240102_030405.xlsx"
	if filepath.Base(res.OutputPath) != wantName {
		t.Errorf("output name = %q, expected %q", filepath.Base(res.OutputPath), wantName)
	}
	if filepath.Dir(res.OutputPath) != tmpDir {
		t.Errorf("output dir = %q, expected first source's dir %q", filepath.Dir(res.OutputPath), tmpDir)
	}
	if res.OrderCount != 2 || res.ItemCount != 2 {
		t.Errorf("counts = (%d orders, %d items), expected (2, 2)", res.OrderCount, res.ItemCount)
	}
	if m.State() != StateDone {
		t.Errorf("state = %v, expected done", m.State())
	}

	f, err := excelize.OpenFile(res.OutputPath)
	if err != nil {
		t.Fatalf("Failed to open output: %v", err)
	}
	defer f.Close()

	// One item per order: totals at rows 14-16 and 24-26, summary banner at
	// row 31 with the merged rows at 33-35.
	if got, _ := f.GetCellFormula("Sheet1", "G15"); got != "=G14*0.1" {
		t.Errorf("order 1 discount formula = %q, expected =G14*0.1", got)
	}
	if got, _ := f.GetCellFormula("Sheet1", "G25"); got != "=G24*0.2" {
		t.Errorf("order 2 discount formula = %q, expected =G24*0.2", got)
	}
	if got, _ := f.GetCellValue("Sheet1", "A31"); !strings.Contains(got, "GRAND SUMMARY") {
		t.Errorf("A31 = %q, expected the grand summary banner", got)
	}
	if got, _ := f.GetCellFormula("Sheet1", "G35"); got != "=G16+G26" {
		t.Errorf("summary grand total = %q, expected =G16+G26", got)
	}
}

func TestMergeSkipsBadSource(t *testing.T) {
	tmpDir := t.TempDir()
	templatePath := filepath.Join(tmpDir, "template.xlsx")
	writeTemplate(t, templatePath)

	good := filepath.Join(tmpDir, "good.xlsx")
	writeSource(t, good, "USD", "")
	bad := filepath.Join(tmpDir, "bad.xlsx")
	if err := os.WriteFile(bad, []byte("garbage"), 0644); err != nil {
		t.Fatal(err)
	}

	m := newTestMerger(t)
	res, err := m.Merge(context.Background(), []string{bad, good}, Options{TemplatePath: templatePath})
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}

	if res.OrderCount != 1 {
		t.Errorf("order count = %d, expected 1", res.OrderCount)
	}
	if res.Scans[0].Outcome != models.ScanUnreadable {
		t.Errorf("bad source outcome = %v, expected unreadable", res.Scans[0].Outcome)
	}
	if res.Scans[1].Outcome != models.ScanOK {
		t.Errorf("good source outcome = %v, expected ok", res.Scans[1].Outcome)
	}

	// Only the valid order appears in the output, with no grand summary.
	f, err := excelize.OpenFile(res.OutputPath)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := f.GetRows("Sheet1")
	if err != nil {
		t.Fatal(err)
	}
	captions := 0
	for _, row := range rows {
		for _, cell := range row {
			if strings.HasPrefix(cell, "Order: ") {
				captions++
			}
			if strings.Contains(cell, "GRAND SUMMARY") {
				t.Error("grand summary present for a single rendered order")
			}
		}
	}
	if captions != 1 {
		t.Errorf("captions = %d, expected 1", captions)
	}
}

func TestMergeTemplateMissing(t *testing.T) {
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "order.xlsx")
	writeSource(t, src, "EUR", "")

	m := newTestMerger(t)
	_, err := m.Merge(context.Background(), []string{src}, Options{
		TemplatePath: filepath.Join(tmpDir, "nope.xlsx"),
	})
	if !errors.Is(err, ErrTemplateNotFound) {
		t.Fatalf("Expected ErrTemplateNotFound, got %v", err)
	}
	if m.State() != StateError {
		t.Errorf("state = %v, expected error", m.State())
	}
}

func TestMergeRejectsReentry(t *testing.T) {
	m := newTestMerger(t)
	if err := m.begin(); err != nil {
		t.Fatal(err)
	}

	_, err := m.Merge(context.Background(), []string{"whatever.xlsx"}, Options{})
	if !errors.Is(err, ErrMergeInProgress) {
		t.Fatalf("Expected ErrMergeInProgress, got %v", err)
	}
}

func TestMergeNoSources(t *testing.T) {
	m := newTestMerger(t)
	_, err := m.Merge(context.Background(), nil, Options{})
	if !errors.Is(err, ErrNoSources) {
		t.Fatalf("Expected ErrNoSources, got %v", err)
	}
}

func TestMergeDeterministicContent(t *testing.T) {
	tmpDir := t.TempDir()
	templatePath := filepath.Join(tmpDir, "template.xlsx")
	writeTemplate(t, templatePath)
	src := filepath.Join(tmpDir, "order.xlsx")
	writeSource(t, src, "EUR", "15")

	outputs := make([][][]string, 2)
	for i := range outputs {
		m := NewMerger(nil)
		m.now = func() time.Time {
			return time.Date(2024, 1, 2, 3, 4, 5+i, 0, time.UTC)
		}
		res, err := m.Merge(context.Background(), []string{src}, Options{TemplatePath: templatePath})
		if err != nil {
			t.Fatalf("Merge %d failed: %v", i, err)
		}
		f, err := excelize.OpenFile(res.OutputPath)
		if err != nil {
			t.Fatal(err)
		}
		rows, err := f.GetRows("Sheet1")
		f.Close()
		if err != nil {
			t.Fatal(err)
		}
		outputs[i] = rows
	}

	if len(outputs[0]) != len(outputs[1]) {
		t.Fatalf("row counts differ: %d vs %d", len(outputs[0]), len(outputs[1]))
	}
	for r := range outputs[0] {
		if strings.Join(outputs[0][r], "\x00") != strings.Join(outputs[1][r], "\x00") {
			t.Errorf("row %d differs between runs", r+1)
		}
	}
}
