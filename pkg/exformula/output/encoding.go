package output

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Encoding identifies an output text encoding.
type Encoding string

const (
	// EncodingUTF8 passes UTF-8 bytes through unchanged.
	EncodingUTF8 Encoding = "utf-8"
	// EncodingUTF8BOM emits UTF-8 preceded by a byte-order mark, for
	// spreadsheet applications that misdetect plain UTF-8 CSV.
	EncodingUTF8BOM Encoding = "utf-8-bom"
	// EncodingLatin1 transcodes output to ISO 8859-1.
	EncodingLatin1 Encoding = "latin-1"
	// EncodingWindows1252 transcodes output to Windows-1252.
	EncodingWindows1252 Encoding = "windows-1252"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseEncoding resolves an encoding name. Names are matched
// case-insensitively and common aliases are accepted.
func ParseEncoding(name string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "utf-8", "utf8":
		return EncodingUTF8, nil
	case "utf-8-bom", "utf8-bom":
		return EncodingUTF8BOM, nil
	case "latin-1", "latin1", "iso-8859-1", "iso8859-1":
		return EncodingLatin1, nil
	case "windows-1252", "windows1252", "cp1252":
		return EncodingWindows1252, nil
	}
	return "", fmt.Errorf("unsupported encoding %q (supported: %s, %s, %s, %s)",
		name, EncodingUTF8, EncodingUTF8BOM, EncodingLatin1, EncodingWindows1252)
}

// Wrap returns a writer transcoding UTF-8 input to e, plus a closer
// that flushes buffered transformation state. Closing never closes w.
// The closer is nil when no transcoding wrapper is needed. Runes the
// target encoding cannot represent are substituted, not rejected.
func (e Encoding) Wrap(w io.Writer) (io.Writer, io.Closer, error) {
	switch e {
	case EncodingUTF8, Encoding(""):
		return w, nil, nil
	case EncodingUTF8BOM:
		if _, err := w.Write(utf8BOM); err != nil {
			return nil, nil, err
		}
		return w, nil, nil
	case EncodingLatin1:
		tw := transform.NewWriter(w, encoding.ReplaceUnsupported(charmap.ISO8859_1.NewEncoder()))
		return tw, tw, nil
	case EncodingWindows1252:
		tw := transform.NewWriter(w, encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder()))
		return tw, tw, nil
	}
	return nil, nil, fmt.Errorf("unsupported encoding %q", string(e))
}
