// Package font provides the simple 8-bit text encodings used by the
// schedule producer's PDFs. Text showing operands are byte strings; an
// Encoding maps each byte to a rune.
//
// The producer's template declares WinAnsiEncoding (Windows code page
// 1252) for every font, which is also the default when no encoding name is
// recognized.
package font

import (
	"golang.org/x/text/encoding/charmap"
)

// Encoding decodes single-byte character codes to text.
type Encoding struct {
	name    string
	charmap *charmap.Charmap
}

// Name returns the PDF name of the encoding (e.g. "WinAnsiEncoding").
func (e *Encoding) Name() string {
	return e.name
}

// Decode returns the rune for a single character code.
func (e *Encoding) Decode(code byte) rune {
	return e.charmap.DecodeByte(code)
}

// DecodeString decodes a byte string to UTF-8.
func (e *Encoding) DecodeString(data []byte) string {
	decoded, err := e.charmap.NewDecoder().Bytes(data)
	if err != nil {
		// Single-byte charmap decoding cannot fail; unmapped codes become
		// the replacement rune. Kept for interface compatibility.
		return string(data)
	}
	return string(decoded)
}

var (
	// WinAnsiEncoding is Windows code page 1252, the producer's default.
	WinAnsiEncoding = &Encoding{name: "WinAnsiEncoding", charmap: charmap.Windows1252}

	// MacRomanEncoding is the classic Mac OS Roman encoding.
	MacRomanEncoding = &Encoding{name: "MacRomanEncoding", charmap: charmap.Macintosh}

	// ISOLatin1Encoding is ISO 8859-1.
	ISOLatin1Encoding = &Encoding{name: "ISOLatin1Encoding", charmap: charmap.ISO8859_1}
)

// GetEncoding returns the encoding for a PDF encoding name. Unknown names
// fall back to WinAnsiEncoding, matching the producer contract.
func GetEncoding(name string) *Encoding {
	switch name {
	case "WinAnsiEncoding":
		return WinAnsiEncoding
	case "MacRomanEncoding":
		return MacRomanEncoding
	case "ISOLatin1Encoding":
		return ISOLatin1Encoding
	default:
		return WinAnsiEncoding
	}
}
