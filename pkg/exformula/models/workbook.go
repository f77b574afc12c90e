package models

// WorkbookInfo describes the sheets of a workbook.
type WorkbookInfo struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// Sheets lists sheet names in workbook order.
	Sheets []string `json:"sheets"`
	// ActiveSheet is the index into Sheets of the active sheet.
	ActiveSheet int `json:"active_sheet"`
}
