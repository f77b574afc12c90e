package exformula

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/mtoyoshima/exformula/pkg/exformula/models"
	"github.com/mtoyoshima/exformula/pkg/exformula/output"
	"github.com/mtoyoshima/exformula/pkg/exformula/parser"
	"github.com/xuri/excelize/v2"
)

// Extract reads one sheet of an Excel file and returns its cells as
// records, formulas preserved as text.
func Extract(path string, opts Options) (*models.SheetData, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			err = ErrFileNotFound
		}
		return nil, NewExportError("open", path, err)
	}
	defer f.Close()

	sheetName := opts.Sheet
	if sheetName == "" {
		sheetName = f.GetSheetName(f.GetActiveSheetIndex())
	} else {
		idx, err := f.GetSheetIndex(sheetName)
		if err != nil {
			return nil, NewExportError("extract", path, err)
		}
		if idx < 0 {
			return nil, NewExportError("extract", path, fmt.Errorf("%w: %s", ErrSheetNotFound, sheetName))
		}
	}

	records, err := parser.ExtractCells(f, sheetName, opts.Range)
	if err != nil {
		return nil, NewExportError("extract", path, err)
	}

	return &models.SheetData{
		BookName:  filepath.Base(path),
		SheetName: sheetName,
		Records:   records,
	}, nil
}

// Export extracts one sheet of the workbook at src and writes it as a
// CSV file at dst, overwriting any existing file. The destination is
// not touched unless extraction succeeds.
func Export(src, dst string, opts Options, cfg output.Config) error {
	data, err := Extract(src, opts)
	if err != nil {
		return err
	}

	if err := output.WriteFile(dst, data, cfg); err != nil {
		return NewExportError("write", dst, err)
	}
	return nil
}

// Sheets returns the sheet inventory of the workbook at path.
func Sheets(path string) (*models.WorkbookInfo, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			err = ErrFileNotFound
		}
		return nil, NewExportError("open", path, err)
	}
	defer f.Close()

	return &models.WorkbookInfo{
		BookName:    filepath.Base(path),
		Sheets:      f.GetSheetList(),
		ActiveSheet: f.GetActiveSheetIndex(),
	}, nil
}
