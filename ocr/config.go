// Package ocr recognizes text in page images using the Tesseract engine
// via gosseract. It exists as the fallback path for scanned documents
// whose PDF text layer is missing or unusable.
//
// Tesseract is a cgo dependency, so the real implementation is only
// compiled when the "ocr" build tag is set:
//
//	go build -tags ocr
//
// Without the tag every operation returns ErrOCRNotEnabled. Tesseract
// must be installed on the system; on Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
package ocr

// PageSegMode controls how Tesseract segments the page before
// recognition. Values match Tesseract's own mode numbering.
type PageSegMode int

const (
	// PSMAuto is fully automatic page segmentation, Tesseract's default
	PSMAuto PageSegMode = 3
	// PSMSingleColumn assumes a single column of variable-size text
	PSMSingleColumn PageSegMode = 4
	// PSMSingleBlock assumes one uniform block of text
	PSMSingleBlock PageSegMode = 6
	// PSMSingleLine treats the image as one text line
	PSMSingleLine PageSegMode = 7
	// PSMSparseText finds as much scattered text as possible
	PSMSparseText PageSegMode = 11
)

// Config holds configuration options for the OCR client.
type Config struct {
	// Languages are the Tesseract language codes to recognize, combined
	// when more than one is given (e.g. "eng", "fra")
	Languages []string

	// PageSegMode controls page layout analysis
	PageSegMode PageSegMode
}

// DefaultConfig returns a configuration with sensible defaults for
// book-like pages: English text, automatic segmentation.
func DefaultConfig() Config {
	return Config{
		Languages:   []string{"eng"},
		PageSegMode: PSMAuto,
	}
}
