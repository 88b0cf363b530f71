package models

// MergeContext carries everything one merge run needs. It is created at
// merge start and discarded after the output workbook is saved.
type MergeContext struct {
	// Orders is the sequence of extracted records in user-specified order.
	// Nil entries (failed extractions) are skipped by the renderer.
	Orders []*OrderRecord
	// TemplatePath is the formatting template workbook. It is copied, never
	// mutated.
	TemplatePath string
	// OutputPath is the destination workbook path.
	OutputPath string
}
