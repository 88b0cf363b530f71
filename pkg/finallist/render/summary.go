package render

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// renderGrandSummary appends the cross-order summary block: a separator bar,
// a merged banner with the order count, and three emphasized rows summing
// the recorded per-order TOTAL, DISCOUNT, and GRAND-TOTAL cells. It returns
// the next free row.
func renderGrandSummary(f *excelize.File, sheet string, styles *stylePalette, refs []orderRefs, symbol string, row int) (int, error) {
	format := PriceFormat(symbol)

	if err := styleRowRange(f, sheet, row, 1, 8, styles.sepBar); err != nil {
		return 0, err
	}
	row++

	bannerStart, _ := excelize.CoordinatesToCellName(1, row)
	bannerEnd, _ := excelize.CoordinatesToCellName(8, row)
	if err := f.MergeCell(sheet, bannerStart, bannerEnd); err != nil {
		return 0, err
	}
	banner := fmt.Sprintf("GRAND SUMMARY  —  %d ORDERS", len(refs))
	if err := f.SetCellValue(sheet, bannerStart, banner); err != nil {
		return 0, err
	}
	if err := f.SetCellStyle(sheet, bannerStart, bannerEnd, styles.banner); err != nil {
		return 0, err
	}
	row += 2 // banner plus one blank separator row

	summaryValue, err := styles.summaryValueStyle(format)
	if err != nil {
		return 0, err
	}
	grandValue, err := styles.grandValueStyle(format)
	if err != nil {
		return 0, err
	}

	totalRows := make([]int, len(refs))
	discRows := make([]int, len(refs))
	gtotalRows := make([]int, len(refs))
	for i, r := range refs {
		totalRows[i] = r.total
		discRows[i] = r.discount
		gtotalRows[i] = r.grandTotal
	}

	if err := renderSummaryRow(f, sheet, row, "TOTAL :", sumRefs(totalRows), styles.summaryLabel, summaryValue); err != nil {
		return 0, err
	}
	row++
	if err := renderSummaryRow(f, sheet, row, "TOTAL DISCOUNT :", sumRefs(discRows), styles.summaryLabel, summaryValue); err != nil {
		return 0, err
	}
	row++
	if err := renderSummaryRow(f, sheet, row, "GRAND TOTAL :", sumRefs(gtotalRows), styles.grandLabel, grandValue); err != nil {
		return 0, err
	}
	row += 2

	return row, nil
}

// renderSummaryRow writes one merged label area (D..F) and one merged value
// area (G..H) holding the summary formula.
func renderSummaryRow(f *excelize.File, sheet string, row int, label, formula string, labelStyle, valueStyle int) error {
	labelStart, _ := excelize.CoordinatesToCellName(4, row)
	labelEnd, _ := excelize.CoordinatesToCellName(6, row)
	if err := f.MergeCell(sheet, labelStart, labelEnd); err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, labelStart, label); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, labelStart, labelEnd, labelStyle); err != nil {
		return err
	}

	valueStart, _ := excelize.CoordinatesToCellName(7, row)
	valueEnd, _ := excelize.CoordinatesToCellName(8, row)
	if err := f.MergeCell(sheet, valueStart, valueEnd); err != nil {
		return err
	}
	if err := f.SetCellFormula(sheet, valueStart, formula); err != nil {
		return err
	}
	return f.SetCellStyle(sheet, valueStart, valueEnd, valueStyle)
}

// sumRefs builds an addition formula over the G cells of the given rows.
func sumRefs(rows []int) string {
	parts := make([]string, len(rows))
	for i, r := range rows {
		parts[i] = fmt.Sprintf("G%d", r)
	}
	return "=" + strings.Join(parts, "+")
}
