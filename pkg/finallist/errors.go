package finallist

import (
	"errors"
	"fmt"
)

// ErrTemplateNotFound indicates the template workbook is missing from its
// expected location.
var ErrTemplateNotFound = errors.New("template not found")

// ErrTemplateLocked indicates the template workbook is held open by another
// program.
var ErrTemplateLocked = errors.New("template locked by another program")

// ErrOutputDirUnwritable indicates the destination directory rejected the
// write probe.
var ErrOutputDirUnwritable = errors.New("output directory not writable")

// ErrMergeInProgress indicates a merge was requested while one is already
// running.
var ErrMergeInProgress = errors.New("a merge is already in progress")

// ErrNoSources indicates a merge was requested with no source files.
var ErrNoSources = errors.New("no source files given")

// MergeError wraps a failure of one pipeline stage.
type MergeError struct {
	Stage string // "preflight", "scan", "render", "save"
	Err   error
}

func (e *MergeError) Error() string {
	return fmt.Sprintf("merge failed during %s: %v", e.Stage, e.Err)
}

func (e *MergeError) Unwrap() error {
	return e.Err
}
