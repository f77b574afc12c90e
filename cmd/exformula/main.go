// Package main provides the CLI entry point for exformula.
package main

import (
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/mtoyoshima/exformula/pkg/exformula"
	"github.com/mtoyoshima/exformula/pkg/exformula/models"
	"github.com/mtoyoshima/exformula/pkg/exformula/output"
	"github.com/mtoyoshima/exformula/pkg/exformula/parser"
	"github.com/mtoyoshima/exformula/pkg/exformula/ui"
)

var (
	outputPath   string
	sheetName    string
	cellRange    string
	encodingName string
	delimiter    string
	noHeader     bool
	interactive  bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "exformula [input.xlsx]",
		Short: "Export cell formulas and values from Excel files to CSV",
		Long: `exformula reads the cells of one worksheet and writes each cell
coordinate together with its raw content (formula text or literal
value) as CSV.`,
		Args: cobra.ExactArgs(1),
		RunE: run,
	}

	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.Flags().StringVar(&sheetName, "sheet", "", "Sheet name to export (default: the active sheet)")
	rootCmd.Flags().StringVar(&cellRange, "range", "", "Cell range to export, e.g. A1:D10 (default: the used range)")
	rootCmd.Flags().StringVar(&encodingName, "encoding", "utf-8", "Output encoding: utf-8, utf-8-bom, latin-1, windows-1252")
	rootCmd.Flags().StringVar(&delimiter, "delimiter", ",", "Field delimiter, a single character")
	rootCmd.Flags().BoolVar(&noHeader, "no-header", false, "Omit the header record")
	rootCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Pick the sheet in a terminal UI (requires --output)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	// Validate input file exists
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inputPath)
	}

	if utf8.RuneCountInString(delimiter) != 1 {
		return fmt.Errorf("invalid delimiter %q (must be a single character)", delimiter)
	}
	delim, _ := utf8.DecodeRuneInString(delimiter)

	enc, err := output.ParseEncoding(encodingName)
	if err != nil {
		return err
	}

	var exportRange *models.Range
	if cellRange != "" {
		exportRange, err = parser.ParseRange(cellRange)
		if err != nil {
			return err
		}
	}

	opts := exformula.Options{
		Sheet: sheetName,
		Range: exportRange,
	}

	cfg := output.Config{
		Delimiter: delim,
		Encoding:  enc,
	}
	if noHeader {
		include := false
		cfg.IncludeHeader = &include
	}

	if interactive {
		if outputPath == "" {
			return fmt.Errorf("interactive mode requires --output")
		}
		return ui.Run(inputPath, outputPath, opts, cfg)
	}

	// Stream to stdout when no output path is given
	if outputPath == "" {
		data, err := exformula.Extract(inputPath, opts)
		if err != nil {
			return fmt.Errorf("extraction failed: %w", err)
		}
		if err := output.Write(os.Stdout, data, cfg); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	if err := exformula.Export(inputPath, outputPath, opts, cfg); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	fmt.Printf("Done! Formulas (and plain values) written to: %s\n", outputPath)
	return nil
}
