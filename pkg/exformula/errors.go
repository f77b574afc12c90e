package exformula

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the workbook file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrSheetNotFound indicates the requested sheet does not exist in the
// workbook.
var ErrSheetNotFound = errors.New("sheet not found")

// ExportError represents an error during export.
type ExportError struct {
	Op   string // "open", "extract", "write"
	Path string
	Err  error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export error during %s of %q: %v", e.Op, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// NewExportError creates a new ExportError.
func NewExportError(op, path string, err error) *ExportError {
	return &ExportError{
		Op:   op,
		Path: path,
		Err:  err,
	}
}
