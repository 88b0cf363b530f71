// Package finallist merges order workbooks into one final-list workbook.
package finallist

// TemplateFileName is the template workbook expected beside the executable
// when no explicit path is given.
const TemplateFileName = "Final_List_Template.xlsx"

// Options configures one merge run.
type Options struct {
	// TemplatePath overrides the template location. Empty means the file
	// named TemplateFileName beside the executable.
	TemplatePath string
	// OutputDir overrides the destination directory. Empty means the first
	// source file's directory.
	OutputDir string
	// ShowHeaderInfo renders the per-order header cells in the output.
	ShowHeaderInfo bool
	// AutoOpen opens the output workbook with the platform opener after a
	// successful merge. Failures are ignored.
	AutoOpen bool
	// RecalcHelper is an optional external executable invoked with the
	// output path after rendering. Empty disables the hook; failures are
	// ignored.
	RecalcHelper string
	// Jobs bounds concurrent source scanning. Zero or negative scans all
	// files at once.
	Jobs int
}

// DefaultOptions returns the defaults used when no settings are loaded.
func DefaultOptions() Options {
	return Options{
		ShowHeaderInfo: true,
	}
}
