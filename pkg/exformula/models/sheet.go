package models

// SheetData holds the exported cells of a single sheet.
type SheetData struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// SheetName is the name of the exported sheet.
	SheetName string `json:"sheet_name"`
	// Records contains one record per cell of the exported range,
	// in row-major order.
	Records []Record `json:"records"`
}
