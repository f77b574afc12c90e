// Package exformula provides formula-preserving CSV export from Excel
// workbooks.
package exformula

import (
	"github.com/mtoyoshima/exformula/pkg/exformula/models"
)

// Options configures extraction behavior.
type Options struct {
	// Sheet is the name of the worksheet to export.
	// Empty means the workbook's active sheet.
	Sheet string
	// Range restricts the export to explicit bounds instead of the
	// sheet's used range. If nil, the used range is exported.
	Range *models.Range
}

// DefaultOptions returns default extraction options: the active
// sheet's used range.
func DefaultOptions() Options {
	return Options{}
}
