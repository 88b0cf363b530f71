package models

// ScanOutcome classifies the result of scanning one source file.
type ScanOutcome int

const (
	// ScanOK means the file yielded a usable order record.
	ScanOK ScanOutcome = iota
	// ScanNoTable means the file parsed but no data table was found.
	ScanNoTable
	// ScanUnreadable means the file could not be read or parsed at all.
	ScanUnreadable
)

// String returns a short human-readable form of the outcome.
func (o ScanOutcome) String() string {
	switch o {
	case ScanOK:
		return "ok"
	case ScanNoTable:
		return "no data table"
	case ScanUnreadable:
		return "unreadable"
	default:
		return "unknown"
	}
}

// ScanResult is the typed outcome of scanning one source file.
type ScanResult struct {
	// Path is the scanned file path.
	Path string
	// Outcome classifies the result.
	Outcome ScanOutcome
	// Record is the extracted record when Outcome is ScanOK, else nil.
	Record *OrderRecord
	// Err is the underlying cause when Outcome is not ScanOK.
	Err error
}

// ItemCount returns the number of item rows, or -1 when the file did not
// yield a record.
func (r ScanResult) ItemCount() int {
	if r.Record == nil {
		return -1
	}
	return len(r.Record.DataRows)
}
