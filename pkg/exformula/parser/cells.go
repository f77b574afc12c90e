package parser

import (
	"fmt"
	"strings"

	"github.com/mtoyoshima/exformula/pkg/exformula/models"
	"github.com/xuri/excelize/v2"
)

// ExtractCells extracts one record per cell of a sheet.
// Records cover the sheet's used range in row-major order, blank cells
// included. A non-nil within replaces the used range with explicit
// bounds; cells of the rectangle outside the stored grid come back as
// blank records.
func ExtractCells(f *excelize.File, sheetName string, within *models.Range) ([]models.Record, error) {
	if within != nil {
		if within.R1 < 1 || within.C1 < 1 || within.R2 < within.R1 || within.C2 < within.C1 {
			return nil, fmt.Errorf("invalid range bounds: %+v", *within)
		}
	}

	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	// Resolve content per stored cell. Row slices already cover cells
	// that hold only a formula, so probing inside them is enough.
	contents := make([][]string, len(rows))
	for rowIdx, row := range rows {
		contents[rowIdx] = make([]string, len(row))
		for colIdx, cellValue := range row {
			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return nil, err
			}
			formula, err := f.GetCellFormula(sheetName, cellName)
			if err != nil {
				return nil, err
			}
			if formula != "" {
				contents[rowIdx][colIdx] = normalizeFormula(formula)
				continue
			}
			contents[rowIdx][colIdx] = cellValue
		}
	}

	bounds := within
	if bounds == nil {
		bounds = contentBounds(contents)
		if bounds == nil {
			return nil, nil
		}
	}

	var records []models.Record
	for row := bounds.R1; row <= bounds.R2; row++ {
		for col := bounds.C1; col <= bounds.C2; col++ {
			cellName, err := excelize.CoordinatesToCellName(col, row)
			if err != nil {
				return nil, err
			}
			records = append(records, models.Record{
				Cell:    cellName,
				Content: contentAt(contents, row, col),
			})
		}
	}

	return records, nil
}

// normalizeFormula restores the expression marker the reader strips
// from stored formula text.
func normalizeFormula(formula string) string {
	if strings.HasPrefix(formula, "=") {
		return formula
	}
	return "=" + formula
}

// contentBounds finds the bounding box of cells holding a value or a
// formula. Returns nil for a sheet with no content.
func contentBounds(contents [][]string) *models.Range {
	bounds := models.Range{R1: -1, C1: -1, R2: -1, C2: -1}

	for rowIdx, row := range contents {
		for colIdx, content := range row {
			if content == "" {
				continue
			}
			rowNum := rowIdx + 1
			colNum := colIdx + 1
			if bounds.R1 < 0 || rowNum < bounds.R1 {
				bounds.R1 = rowNum
			}
			if rowNum > bounds.R2 {
				bounds.R2 = rowNum
			}
			if bounds.C1 < 0 || colNum < bounds.C1 {
				bounds.C1 = colNum
			}
			if colNum > bounds.C2 {
				bounds.C2 = colNum
			}
		}
	}

	if bounds.R1 < 0 {
		return nil
	}
	return &bounds
}

// contentAt returns the resolved content at a 1-based coordinate, or
// empty for cells outside the stored grid.
func contentAt(contents [][]string, row, col int) string {
	if row > len(contents) {
		return ""
	}
	r := contents[row-1]
	if col > len(r) {
		return ""
	}
	return r[col-1]
}
