// Package output provides CSV serialization for exported sheet data.
package output

import (
	"encoding/csv"
	"io"
	"os"

	"dario.cat/mergo"
	"github.com/mtoyoshima/exformula/pkg/exformula/models"
)

// header is the column header record preceding the data records.
var header = []string{"Cell", "Formula_or_Value"}

// Config configures CSV output.
type Config struct {
	// Delimiter is the field separator. Zero means comma.
	Delimiter rune
	// Encoding is the output text encoding. Empty means EncodingUTF8.
	Encoding Encoding
	// IncludeHeader specifies whether to write the header record.
	// If nil, defaults to true.
	IncludeHeader *bool
}

// DefaultConfig returns default output configuration.
func DefaultConfig() Config {
	return Config{
		Delimiter: ',',
		Encoding:  EncodingUTF8,
	}
}

// ShouldIncludeHeader returns whether to write the header record.
func (c Config) ShouldIncludeHeader() bool {
	if c.IncludeHeader != nil {
		return *c.IncludeHeader
	}
	return true
}

// withDefaults fills unset fields from DefaultConfig.
func (c Config) withDefaults() (Config, error) {
	if err := mergo.Merge(&c, DefaultConfig()); err != nil {
		return c, err
	}
	return c, nil
}

// Writer writes cell records as CSV in a configured encoding.
type Writer struct {
	cw  *csv.Writer
	enc io.Closer
}

// NewWriter returns a Writer emitting to w. Close must be called to
// flush buffered data; it does not close w.
func NewWriter(w io.Writer, cfg Config) (*Writer, error) {
	cfg, err := cfg.withDefaults()
	if err != nil {
		return nil, err
	}

	sink, enc, err := cfg.Encoding.Wrap(w)
	if err != nil {
		return nil, err
	}

	cw := csv.NewWriter(sink)
	cw.Comma = cfg.Delimiter

	return &Writer{cw: cw, enc: enc}, nil
}

// WriteHeader writes the header record.
func (w *Writer) WriteHeader() error {
	return w.cw.Write(header)
}

// WriteRecord writes one cell record.
func (w *Writer) WriteRecord(rec models.Record) error {
	return w.cw.Write([]string{rec.Cell, rec.Content})
}

// Close flushes buffered records and any transcoding state.
func (w *Writer) Close() error {
	w.cw.Flush()
	if err := w.cw.Error(); err != nil {
		return err
	}
	if w.enc != nil {
		return w.enc.Close()
	}
	return nil
}

// Write serializes data as one CSV document to w.
func Write(w io.Writer, data *models.SheetData, cfg Config) error {
	cw, err := NewWriter(w, cfg)
	if err != nil {
		return err
	}

	if cfg.ShouldIncludeHeader() {
		if err := cw.WriteHeader(); err != nil {
			return err
		}
	}
	for _, rec := range data.Records {
		if err := cw.WriteRecord(rec); err != nil {
			return err
		}
	}

	return cw.Close()
}

// WriteFile serializes data as a CSV file at path, overwriting any
// existing file.
func WriteFile(path string, data *models.SheetData, cfg Config) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := Write(f, data, cfg); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
