package parser

import (
	"fmt"
	"strings"

	"github.com/mtoyoshima/exformula/pkg/exformula/models"
	"github.com/xuri/excelize/v2"
)

// ParseRange parses a range reference like "A1:D10" or a single cell
// reference like "B2". Dollar signs are ignored and reversed corners
// are normalized so R1 <= R2 and C1 <= C2.
func ParseRange(ref string) (*models.Range, error) {
	cleaned := strings.ReplaceAll(ref, "$", "")

	parts := strings.Split(cleaned, ":")
	if len(parts) != 1 && len(parts) != 2 {
		return nil, fmt.Errorf("invalid range %q", ref)
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(strings.TrimSpace(parts[0]))
	if err != nil {
		return nil, fmt.Errorf("invalid range %q: %w", ref, err)
	}

	endCol, endRow := startCol, startRow
	if len(parts) == 2 {
		endCol, endRow, err = excelize.CellNameToCoordinates(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, fmt.Errorf("invalid range %q: %w", ref, err)
		}
	}

	if endRow < startRow {
		startRow, endRow = endRow, startRow
	}
	if endCol < startCol {
		startCol, endCol = endCol, startCol
	}

	return &models.Range{
		R1: startRow,
		C1: startCol,
		R2: endRow,
		C2: endCol,
	}, nil
}
