// Package recompose reconstructs structured documents from the flat text
// that PDF extraction and OCR produce. It normalizes page text into
// lines, classifies each line's structural role, folds the lines into a
// chapter/section tree with recognized tables, and repairs common
// extraction artifacts such as split words and OCR character confusions.
//
// Basic usage:
//
//	text, warnings, err := recompose.Open("book.pdf").Text()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", recompose.FormatWarnings(warnings))
//	}
//
// With options:
//
//	doc, _, err := recompose.Open("book.pdf").
//	    WithWordList(words).
//	    KeepCorrectionRecords().
//	    Document()
//
// Scanned documents can be processed by supplying page images and a text
// recognizer (see the ocr package):
//
//	doc, _, err := recompose.FromImages(images, "scan.pdf").
//	    WithRecognizer(client).
//	    Document()
package recompose

import (
	"strings"

	"github.com/tsawler/recompose/extract"
	"github.com/tsawler/recompose/model"
)

// Warning reports a non-fatal condition noticed during processing.
type Warning = model.Warning

// ErrNoText is returned when the input yields no usable text at all.
var ErrNoText = extract.ErrNoText

// Open prepares a Pipeline for the given file. The reader is chosen by
// content sniffing with the extension as fallback: PDFs go through PDF
// content-stream extraction, anything else is read as plain text.
// Nothing is read until a terminal operation runs.
//
// Example:
//
//	text, warnings, err := recompose.Open("book.pdf").Text()
func Open(filename string) *Pipeline {
	return &Pipeline{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromPages creates a Pipeline from already-extracted page text. The
// source string is used in metadata and errors only.
func FromPages(pages []extract.Page, source string) *Pipeline {
	return &Pipeline{
		source:    source,
		pages:     pages,
		method:    "pages",
		havePages: true,
		options:   defaultOptions(),
	}
}

// FromText creates a Pipeline from raw text. Form feeds split the text
// into pages; text without form feeds is one page.
func FromText(text, source string) *Pipeline {
	p := &Pipeline{source: source, options: defaultOptions()}
	result, err := extract.NewTextReader().ReadFrom(strings.NewReader(text), source)
	if err != nil {
		p.err = err
		return p
	}
	p.pages = result.Pages
	p.method = result.Method
	p.havePages = true
	return p
}

// FromImages creates a Pipeline that extracts page text from images via
// OCR. A text recognizer must be supplied with WithRecognizer before a
// terminal operation runs.
func FromImages(images [][]byte, source string) *Pipeline {
	return &Pipeline{
		source:  source,
		images:  images,
		options: defaultOptions(),
	}
}

// Must wraps a call returning (T, error) and panics on error. It is
// intended for scripts and tests.
//
// Example:
//
//	stats := recompose.Must(recompose.Open("book.pdf").Stats())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustText wraps a call returning (T, []Warning, error), discards the
// warnings, and panics on error. It is intended for scripts and tests.
//
// Example:
//
//	text := recompose.MustText(recompose.Open("book.pdf").Text())
func MustText[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// FormatWarnings renders warnings as a single semicolon-separated string.
func FormatWarnings(warnings []Warning) string {
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "; ")
}
