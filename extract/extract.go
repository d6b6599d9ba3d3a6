package extract

import (
	"errors"
	"fmt"
)

// ErrNoText is returned when a source yields no usable text at all.
var ErrNoText = errors.New("no text content found")

// ExtractionError wraps a reader failure with the source it came from.
type ExtractionError struct {
	// Source identifies the input (usually a file path)
	Source string

	// Err is the underlying failure
	Err error
}

// Error returns a string representation of the error.
func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Source, e.Err)
}

// Unwrap returns the underlying error.
func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Page is one page of extracted text.
type Page struct {
	// Index is the 0-based page position in the source
	Index int

	// Text is the page's raw text, line structure preserved
	Text string
}

// Result is the outcome of reading one source.
type Result struct {
	// Pages holds the extracted pages in order. Pages that yielded no
	// text are omitted.
	Pages []Page

	// Quality summarizes how trustworthy the extracted text looks
	Quality Quality

	// Method names the extraction method used ("pdf", "text", "ocr")
	Method string
}

// Text returns the result's pages joined with form feeds.
func (r *Result) Text() string {
	var out string
	for i, p := range r.Pages {
		if i > 0 {
			out += "\f"
		}
		out += p.Text
	}
	return out
}
