// Package format provides input format detection for the recompose
// pipeline. Detection prefers magic bytes over file extensions: extracted
// text dumps are frequently misnamed, and scanned pages arrive as images
// with a .pdf extension often enough to matter.
package format

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Format represents a supported input format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// PDF indicates a PDF document.
	PDF
	// Text indicates plain text, such as an extraction dump.
	Text
	// PNG indicates a PNG page image.
	PNG
	// JPEG indicates a JPEG page image.
	JPEG
	// TIFF indicates a TIFF page image.
	TIFF
	// BMP indicates a BMP page image.
	BMP
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case PDF:
		return "PDF"
	case Text:
		return "Text"
	case PNG:
		return "PNG"
	case JPEG:
		return "JPEG"
	case TIFF:
		return "TIFF"
	case BMP:
		return "BMP"
	default:
		return "Unknown"
	}
}

// IsImage reports whether the format is a page image rather than a
// document.
func (f Format) IsImage() bool {
	switch f {
	case PNG, JPEG, TIFF, BMP:
		return true
	}
	return false
}

// Detect determines the format from the filename extension alone.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return PDF
	case ".txt", ".text":
		return Text
	case ".png":
		return PNG
	case ".jpg", ".jpeg":
		return JPEG
	case ".tif", ".tiff":
		return TIFF
	case ".bmp":
		return BMP
	default:
		return Unknown
	}
}

// DetectFromMagic determines the format from leading content bytes.
// Plain text is recognized heuristically: valid UTF-8 made of printable
// characters and ordinary whitespace. Returns Unknown when the bytes
// match nothing.
func DetectFromMagic(data []byte) Format {
	if len(data) >= 4 {
		switch {
		case bytes.HasPrefix(data, []byte("%PDF")):
			return PDF
		case bytes.HasPrefix(data, []byte{0x89, 'P', 'N', 'G'}):
			return PNG
		case bytes.HasPrefix(data, []byte{0xFF, 0xD8, 0xFF}):
			return JPEG
		case bytes.HasPrefix(data, []byte("II*\x00")), bytes.HasPrefix(data, []byte("MM\x00*")):
			return TIFF
		case bytes.HasPrefix(data, []byte("BM")):
			return BMP
		}
	}
	if looksLikeText(data) {
		return Text
	}
	return Unknown
}

// DetectFile sniffs the leading bytes of the named file, falling back to
// the extension when the content is inconclusive.
func DetectFile(path string) (Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return Unknown, err
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := f.Read(head)
	if err != nil && err != io.EOF {
		return Unknown, err
	}

	if detected := DetectFromMagic(head[:n]); detected != Unknown {
		return detected, nil
	}
	return Detect(path), nil
}

// looksLikeText reports whether data is plausibly plain text: valid UTF-8
// (allowing a rune cut off at the end of the sample) with no control
// characters other than whitespace.
func looksLikeText(data []byte) bool {
	if len(data) == 0 {
		return false
	}

	// A sample may end mid-rune; trim the trailing partial sequence.
	for len(data) > 0 && !utf8.Valid(data) {
		data = data[:len(data)-1]
	}
	if len(data) == 0 {
		return false
	}

	for _, r := range string(data) {
		if r == utf8.RuneError {
			return false
		}
		if r < 0x20 && r != '\n' && r != '\r' && r != '\t' && r != '\f' {
			return false
		}
	}
	return true
}
