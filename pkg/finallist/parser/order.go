// Package parser extracts order records from source workbooks.
package parser

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/ukaji3/finallist-go/pkg/finallist/models"
	"github.com/xuri/excelize/v2"
)

// ErrNoDataTable indicates the sheet parsed but no data-table anchor row
// was found.
var ErrNoDataTable = errors.New("no data table found")

// DefaultDiscountPct is used when the discount label is absent or its value
// does not parse as a number.
const DefaultDiscountPct = 10

// ScanParams holds parameters for locating the header block and item table.
type ScanParams struct {
	// HeaderScanRows is how many leading rows to inspect for header labels.
	HeaderScanRows int
	// HeaderCellRow is the first 1-based sheet row of the fixed display
	// cells; models.HeaderCellCount consecutive rows are taken.
	HeaderCellRow int
	// AnchorLabel is the exact first-cell value marking the table header row.
	AnchorLabel string
}

// DefaultScanParams returns the parameters matching the standard order
// workbook layout.
func DefaultScanParams() ScanParams {
	return ScanParams{
		HeaderScanRows: 15,
		HeaderCellRow:  3,
		AnchorLabel:    "NO",
	}
}

// ScanError wraps a failure to read or parse a source file.
type ScanError struct {
	Path string
	Err  error
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("scan %s: %v", e.Path, e.Err)
}

func (e *ScanError) Unwrap() error {
	return e.Err
}

// ExtractOrder reads one source workbook and returns its order record.
// It returns ErrNoDataTable (wrapped) when the sheet is readable but carries
// no anchored item table, and a *ScanError for anything else.
func ExtractOrder(path string, params ScanParams) (*models.OrderRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &ScanError{Path: path, Err: err}
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	grid, err := f.GetRows(sheetName)
	if err != nil {
		return nil, &ScanError{Path: path, Err: err}
	}

	if maxWidth(grid) < 2 {
		return nil, &ScanError{Path: path, Err: ErrNoDataTable}
	}

	rec := &models.OrderRecord{
		SourceName: filepath.Base(path),
		Header:     scanHeaderInfo(grid, params.HeaderScanRows),
	}

	for i := 0; i < models.HeaderCellCount; i++ {
		rowIdx := params.HeaderCellRow - 1 + i
		if rowIdx < len(grid) {
			rec.HeaderCells[i] = models.HeaderCell{
				Label: strings.TrimSpace(cellAt(grid, rowIdx, 0)),
				Value: strings.TrimSpace(cellAt(grid, rowIdx, 1)),
			}
		}
	}

	anchor := -1
	for idx := range grid {
		if cellAt(grid, idx, 0) == params.AnchorLabel {
			anchor = idx
			break
		}
	}
	if anchor < 0 {
		return nil, &ScanError{Path: path, Err: ErrNoDataTable}
	}

	for idx := anchor + 1; idx < len(grid); idx++ {
		row := grid[idx]
		first := strings.TrimSpace(cellAt(grid, idx, 0))
		if first == "" {
			if isTotalsRow(row) {
				break
			}
			continue
		}
		// Item identifiers are 1, 2, 3 or 1A, 1B, 2A and so on.
		if unicode.IsDigit(rune(first[0])) {
			rec.DataRows = append(rec.DataRows, append([]string(nil), row...))
		}
	}

	return rec, nil
}

// scanHeaderInfo inspects the leading rows for known header labels and
// captures their column-1 values.
func scanHeaderInfo(grid [][]string, scanRows int) models.HeaderInfo {
	info := models.HeaderInfo{DiscountPct: DefaultDiscountPct}

	limit := scanRows
	if len(grid) < limit {
		limit = len(grid)
	}
	for idx := 0; idx < limit; idx++ {
		label := strings.ToUpper(strings.TrimSpace(cellAt(grid, idx, 0)))
		value := cellAt(grid, idx, 1)

		switch {
		case strings.Contains(label, "RFQ REF"):
			info.RFQRef = value
		case strings.Contains(label, "QTN REF"):
			info.QTNRef = value
		case strings.Contains(label, "CURRENCY"):
			info.Currency = strings.TrimSpace(value)
		case strings.Contains(label, "DISC") && strings.Contains(label, "%"):
			if pct, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
				info.DiscountPct = pct
				info.DiscountExplicit = true
			} else {
				info.DiscountPct = DefaultDiscountPct
			}
		}
	}
	return info
}

// isTotalsRow reports whether a blank-first-cell row is the table terminator
// (any cell containing "TOTAL", case-insensitive).
func isTotalsRow(row []string) bool {
	for _, cell := range row {
		if strings.Contains(strings.ToUpper(cell), "TOTAL") {
			return true
		}
	}
	return false
}

// cellAt returns the cell at (row, col) or "" when the grid is shorter.
func cellAt(grid [][]string, row, col int) string {
	if row >= len(grid) || col >= len(grid[row]) {
		return ""
	}
	return grid[row][col]
}

func maxWidth(grid [][]string) int {
	w := 0
	for _, row := range grid {
		if len(row) > w {
			w = len(row)
		}
	}
	return w
}

// ParseValue attempts to parse a string cell value as a number.
// Returns int64 for integers, float64 for decimals, or the original string.
func ParseValue(s string) interface{} {
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	// Try float
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	// Return as string
	return s
}
