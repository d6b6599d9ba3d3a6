package extract

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// TextReader reads plain text input. Form feeds split the input into
// pages; input without form feeds is one page.
type TextReader struct{}

// NewTextReader creates a TextReader.
func NewTextReader() *TextReader {
	return &TextReader{}
}

// Read extracts text from the file at path.
func (t *TextReader) Read(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ExtractionError{Source: path, Err: err}
	}
	defer f.Close()
	return t.ReadFrom(f, path)
}

// ReadFrom extracts text from rd. The source string is used in errors
// only.
func (t *TextReader) ReadFrom(rd io.Reader, source string) (*Result, error) {
	data, err := io.ReadAll(rd)
	if err != nil {
		return nil, &ExtractionError{Source: source, Err: fmt.Errorf("read text: %w", err)}
	}

	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	raw := strings.Split(text, "\f")

	var pages []Page
	for i, pg := range raw {
		if strings.TrimSpace(pg) == "" {
			continue
		}
		pages = append(pages, Page{Index: i, Text: pg})
	}
	if len(pages) == 0 {
		return nil, &ExtractionError{Source: source, Err: ErrNoText}
	}

	return &Result{
		Pages:   pages,
		Quality: measureQuality(text, len(raw), false),
		Method:  "text",
	}, nil
}
