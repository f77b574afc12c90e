// Package models defines data structures for formula export.
package models

// Record represents one exported cell.
type Record struct {
	// Cell is the A1-style cell coordinate.
	Cell string `json:"cell"`
	// Content is the raw stored content: formula text including the
	// leading "=", the literal value's raw text, or empty for a blank.
	Content string `json:"content"`
}
