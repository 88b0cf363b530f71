// Package models defines data structures for order extraction and merging.
package models

// HeaderInfo holds the metadata labels found in the header region of an
// order workbook. All fields are optional except DiscountPct, which is
// always populated (default 10 when the label is absent or unparseable).
type HeaderInfo struct {
	// RFQRef is the request-for-quotation reference, if present.
	RFQRef string
	// QTNRef is the quotation reference, if present.
	QTNRef string
	// Currency is the currency code as written in the sheet (e.g. "EUR").
	Currency string
	// DiscountPct is the per-order discount percentage.
	DiscountPct float64
	// DiscountExplicit reports whether a discount label was found and its
	// value parsed as a number. When false, DiscountPct holds the default.
	DiscountExplicit bool
}

// HeaderCell is one label/value pair taken from the fixed display rows near
// the top of an order sheet.
type HeaderCell struct {
	// Label is the text in the first column.
	Label string
	// Value is the text in the second column.
	Value string
}

// HeaderCellCount is the number of fixed header cells extracted per order.
const HeaderCellCount = 3

// OrderRecord is the structured result of extracting one order workbook.
// It is immutable once built.
type OrderRecord struct {
	// SourceName is the display name of the originating file.
	SourceName string
	// Header holds the recognized header metadata.
	Header HeaderInfo
	// HeaderCells holds exactly HeaderCellCount label/value pairs from the
	// fixed header rows, padded with empty pairs when the sheet is shorter.
	HeaderCells [HeaderCellCount]HeaderCell
	// DataRows holds the item rows in sheet order. Each row is the raw cell
	// values by column position; column 1 is the item identifier.
	DataRows [][]string
}

// HasHeaderCells reports whether any of the fixed header cells carries text.
func (r *OrderRecord) HasHeaderCells() bool {
	for _, hc := range r.HeaderCells {
		if hc.Label != "" || hc.Value != "" {
			return true
		}
	}
	return false
}
