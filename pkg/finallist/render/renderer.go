// Package render writes merged order workbooks from a formatting template.
package render

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ukaji3/finallist-go/pkg/finallist/models"
	"github.com/ukaji3/finallist-go/pkg/finallist/parser"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// columnHeaders is the fixed 8-column contract of the output table.
var columnHeaders = []string{"NO", "DESCRIPTION", "CODE", "QTTY", "UNIT", "U.PRICE", "T.PRICE", "REMARKS"}

const (
	// defaultStartRow is used when the template carries no anchor row.
	defaultStartRow = 10
	// anchorScanRows bounds the template anchor search.
	anchorScanRows = 19
	// clearWindowRows is how many rows below the anchor are wiped.
	clearWindowRows = 1000
	// clearWindowCols is how many columns the wipe covers.
	clearWindowCols = 11
)

// Options controls presentation choices of a render run.
type Options struct {
	// ShowHeaderInfo renders the per-order fixed header cells next to the
	// caption when any of them carries text.
	ShowHeaderInfo bool
}

// orderRefs records the absolute row numbers of one order's totals block,
// consumed by the grand summary.
type orderRefs struct {
	total      int
	discount   int
	grandTotal int
}

// Render copies the template to the destination path and writes one block
// per order record, followed by a grand summary when more than one order
// was rendered. It returns the total item count across rendered orders.
// Nil records (failed extractions) are skipped.
func Render(mc models.MergeContext, opts Options, log *zap.Logger) (int, error) {
	if log == nil {
		log = zap.NewNop()
	}

	if err := copyFile(mc.TemplatePath, mc.OutputPath); err != nil {
		return 0, fmt.Errorf("copy template: %w", err)
	}

	f, err := excelize.OpenFile(mc.OutputPath)
	if err != nil {
		return 0, fmt.Errorf("open output workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	styles, err := newStylePalette(f)
	if err != nil {
		return 0, fmt.Errorf("build styles: %w", err)
	}

	startRow, err := findAnchorRow(f, sheet)
	if err != nil {
		return 0, err
	}
	if err := clearWindow(f, sheet, styles, startRow); err != nil {
		return 0, err
	}
	log.Debug("template prepared", zap.String("sheet", sheet), zap.Int("start_row", startRow))

	row := startRow
	totalItems := 0
	var refs []orderRefs
	lastSymbol := ""

	for _, rec := range mc.Orders {
		if rec == nil {
			continue
		}
		next, or, items, err := renderOrder(f, sheet, styles, rec, opts, row)
		if err != nil {
			return 0, fmt.Errorf("render order %s: %w", rec.SourceName, err)
		}
		log.Info("order rendered",
			zap.String("source", rec.SourceName),
			zap.Int("items", items),
			zap.Int("row", row))
		row = next
		totalItems += items
		refs = append(refs, or)
		lastSymbol = Symbol(rec.Header.Currency)
	}

	if len(refs) > 1 {
		row, err = renderGrandSummary(f, sheet, styles, refs, lastSymbol, row)
		if err != nil {
			return 0, fmt.Errorf("render grand summary: %w", err)
		}
	}

	if err := finishLayout(f, sheet, row-1); err != nil {
		return 0, err
	}
	if err := f.Save(); err != nil {
		return 0, fmt.Errorf("save output workbook: %w", err)
	}
	return totalItems, nil
}

// findAnchorRow locates the template row whose first cell is "NO" and
// returns the row after it as the write-start row.
func findAnchorRow(f *excelize.File, sheet string) (int, error) {
	for idx := 1; idx <= anchorScanRows; idx++ {
		v, err := f.GetCellValue(sheet, "A"+strconv.Itoa(idx))
		if err != nil {
			return 0, err
		}
		if strings.EqualFold(strings.TrimSpace(v), "NO") {
			return idx + 1, nil
		}
	}
	return defaultStartRow, nil
}

// clearWindow wipes template placeholder content below the anchor: values,
// borders, and number formats, bounded by the template's current extent.
func clearWindow(f *excelize.File, sheet string, styles *stylePalette, startRow int) error {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return err
	}
	endRow := startRow + clearWindowRows - 1
	if len(rows) < endRow {
		endRow = len(rows)
	}
	if endRow < startRow {
		return nil
	}

	for r := startRow; r <= endRow; r++ {
		for c := 1; c <= clearWindowCols; c++ {
			cell, _ := excelize.CoordinatesToCellName(c, r)
			if err := f.SetCellValue(sheet, cell, nil); err != nil {
				return err
			}
		}
	}
	topLeft, _ := excelize.CoordinatesToCellName(1, startRow)
	bottomRight, _ := excelize.CoordinatesToCellName(clearWindowCols, endRow)
	return f.SetCellStyle(sheet, topLeft, bottomRight, styles.clear)
}

// renderOrder writes one order block starting at row and returns the next
// free row, the totals-row references, and the item count.
func renderOrder(f *excelize.File, sheet string, styles *stylePalette, rec *models.OrderRecord, opts Options, row int) (int, orderRefs, int, error) {
	symbol := Symbol(rec.Header.Currency)
	priceFmt := PriceFormat(symbol)

	row, err := renderCaption(f, sheet, styles, rec, opts, row)
	if err != nil {
		return 0, orderRefs{}, 0, err
	}

	for i, header := range columnHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return 0, orderRefs{}, 0, err
		}
	}
	if err := styleRowRange(f, sheet, row, 1, len(columnHeaders), styles.header); err != nil {
		return 0, orderRefs{}, 0, err
	}
	row++

	dataStart := row
	priceStyle, err := styles.priceStyle(priceFmt)
	if err != nil {
		return 0, orderRefs{}, 0, err
	}
	itemCount := 0
	for _, dataRow := range rec.DataRows {
		itemCount++
		if err := renderItemRow(f, sheet, styles, dataRow, itemCount, priceStyle, row); err != nil {
			return 0, orderRefs{}, 0, err
		}
		row++
	}
	row++ // blank separator before the totals block

	var refs orderRefs
	totalValueStyle, err := styles.totalValueStyle(priceFmt)
	if err != nil {
		return 0, orderRefs{}, 0, err
	}

	sumFormula := fmt.Sprintf("=SUM(G%d:G%d)", dataStart, dataStart+itemCount-1)
	if err := renderTotalRow(f, sheet, styles, row, "TOTAL:", sumFormula, totalValueStyle); err != nil {
		return 0, orderRefs{}, 0, err
	}
	refs.total = row
	row++

	pct := rec.Header.DiscountPct
	discLabel := fmt.Sprintf("DISC.(%s%%):", strconv.FormatFloat(pct, 'f', -1, 64))
	discFormula := fmt.Sprintf("=G%d*%s", refs.total, strconv.FormatFloat(pct/100, 'f', -1, 64))
	if err := renderTotalRow(f, sheet, styles, row, discLabel, discFormula, totalValueStyle); err != nil {
		return 0, orderRefs{}, 0, err
	}
	refs.discount = row
	row++

	gtFormula := fmt.Sprintf("=G%d-G%d", refs.total, refs.discount)
	if err := renderTotalRow(f, sheet, styles, row, "G. TOTAL:", gtFormula, totalValueStyle); err != nil {
		return 0, orderRefs{}, 0, err
	}
	refs.grandTotal = row
	row += 4 // totals block padding before the next order

	return row, refs, itemCount, nil
}

// renderCaption writes the one-line order caption, and the fixed header
// cells beside it when enabled, returning the next free row.
func renderCaption(f *excelize.File, sheet string, styles *stylePalette, rec *models.OrderRecord, opts Options, row int) (int, error) {
	caption := "Order: " + rec.SourceName
	if rec.Header.RFQRef != "" {
		caption += " | RFQ: " + rec.Header.RFQRef
	}
	if rec.Header.QTNRef != "" {
		caption += " | QTN: " + rec.Header.QTNRef
	}
	if rec.Header.Currency != "" {
		caption += " | " + rec.Header.Currency
	}

	captionCell, _ := excelize.CoordinatesToCellName(2, row)
	if err := f.SetCellValue(sheet, captionCell, caption); err != nil {
		return 0, err
	}
	if err := f.SetCellStyle(sheet, captionCell, captionCell, styles.caption); err != nil {
		return 0, err
	}

	if !opts.ShowHeaderInfo || !rec.HasHeaderCells() {
		return row + 1, nil
	}

	for i, hc := range rec.HeaderCells {
		if hc.Label == "" && hc.Value == "" {
			continue
		}
		r := row + i
		labelCell, _ := excelize.CoordinatesToCellName(7, r)
		valueCell, _ := excelize.CoordinatesToCellName(8, r)

		label := strings.TrimRight(hc.Label, " :")
		if label != "" {
			label += " : "
		}
		if err := f.SetCellValue(sheet, labelCell, label); err != nil {
			return 0, err
		}
		if err := f.SetCellStyle(sheet, labelCell, labelCell, styles.infoLabel); err != nil {
			return 0, err
		}
		if err := f.SetCellValue(sheet, valueCell, hc.Value); err != nil {
			return 0, err
		}
		if err := f.SetCellStyle(sheet, valueCell, valueCell, styles.infoValue); err != nil {
			return 0, err
		}
	}
	return row + models.HeaderCellCount, nil
}

// renderItemRow writes one item row: a sequential index in column 1, source
// cells copied positionally, and the T.PRICE formula in column 7.
func renderItemRow(f *excelize.File, sheet string, styles *stylePalette, dataRow []string, itemNo, priceStyle, row int) error {
	for colIdx, value := range dataRow {
		col := colIdx + 1
		cell, _ := excelize.CoordinatesToCellName(col, row)
		switch col {
		case 1:
			if err := f.SetCellValue(sheet, cell, itemNo); err != nil {
				return err
			}
		case 7:
			formula := fmt.Sprintf("=D%d*F%d", row, row)
			if err := f.SetCellFormula(sheet, cell, formula); err != nil {
				return err
			}
		default:
			if value == "" {
				continue
			}
			if err := f.SetCellValue(sheet, cell, parser.ParseValue(value)); err != nil {
				return err
			}
		}
	}

	// The T.PRICE formula is written regardless of how wide the source row is.
	if len(dataRow) < 7 {
		cell, _ := excelize.CoordinatesToCellName(7, row)
		formula := fmt.Sprintf("=D%d*F%d", row, row)
		if err := f.SetCellFormula(sheet, cell, formula); err != nil {
			return err
		}
	}

	if err := styleRowRange(f, sheet, row, 1, len(columnHeaders), styles.data); err != nil {
		return err
	}

	// Monetary columns carry the currency-aware number format.
	tpCell, _ := excelize.CoordinatesToCellName(7, row)
	if err := f.SetCellStyle(sheet, tpCell, tpCell, priceStyle); err != nil {
		return err
	}
	if len(dataRow) >= 6 && dataRow[5] != "" {
		upCell, _ := excelize.CoordinatesToCellName(6, row)
		if err := f.SetCellStyle(sheet, upCell, upCell, priceStyle); err != nil {
			return err
		}
	}
	return nil
}

// renderTotalRow writes a bold right-aligned label into column 6 and a
// formatted formula into column 7.
func renderTotalRow(f *excelize.File, sheet string, styles *stylePalette, row int, label, formula string, valueStyle int) error {
	labelCell, _ := excelize.CoordinatesToCellName(6, row)
	if err := f.SetCellValue(sheet, labelCell, label); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, labelCell, labelCell, styles.totalLabel); err != nil {
		return err
	}

	valueCell, _ := excelize.CoordinatesToCellName(7, row)
	if err := f.SetCellFormula(sheet, valueCell, formula); err != nil {
		return err
	}
	return f.SetCellStyle(sheet, valueCell, valueCell, valueStyle)
}

// finishLayout sets the fixed column widths, hides gridlines, and scopes the
// print area to the written extent.
func finishLayout(f *excelize.File, sheet string, lastRow int) error {
	widths := map[string]float64{
		"A": 8, "B": 65, "C": 15, "D": 10, "E": 10, "F": 12, "G": 12, "H": 30,
	}
	for col, width := range widths {
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return err
		}
	}

	showGridLines := false
	if err := f.SetSheetView(sheet, 0, &excelize.ViewOptions{ShowGridLines: &showGridLines}); err != nil {
		return err
	}

	// Templates may carry their own print area; replace it.
	_ = f.DeleteDefinedName(&excelize.DefinedName{Name: "_xlnm.Print_Area", Scope: sheet})
	return f.SetDefinedName(&excelize.DefinedName{
		Name:     "_xlnm.Print_Area",
		RefersTo: fmt.Sprintf("'%s'!$A$1:$H$%d", sheet, lastRow),
		Scope:    sheet,
	})
}

// styleRowRange applies one style across a column span of a single row.
func styleRowRange(f *excelize.File, sheet string, row, fromCol, toCol, styleID int) error {
	from, _ := excelize.CoordinatesToCellName(fromCol, row)
	to, _ := excelize.CoordinatesToCellName(toCol, row)
	return f.SetCellStyle(sheet, from, to, styleID)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
