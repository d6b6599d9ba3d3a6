package extract

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
)

// TextRecognizer converts one page image into text. The ocr package's
// Client satisfies this when built with OCR support.
type TextRecognizer interface {
	RecognizeImage(ctx context.Context, img []byte) (string, error)
}

// OCRConfig holds configuration options for the OCR reader.
type OCRConfig struct {
	// Attempts is how many times a failing page is retried before it is
	// given up on
	Attempts uint

	// Delay is the pause between attempts on the same page
	Delay time.Duration
}

// DefaultOCRConfig returns a configuration with sensible defaults.
func DefaultOCRConfig() OCRConfig {
	return OCRConfig{
		Attempts: 3,
		Delay:    200 * time.Millisecond,
	}
}

// OCRReader extracts text from page images through a TextRecognizer.
// Individual pages that keep failing are skipped with their position
// preserved; the read only fails when no page yields text.
type OCRReader struct {
	config     OCRConfig
	recognizer TextRecognizer
}

// NewOCRReader creates an OCRReader with default configuration.
func NewOCRReader(recognizer TextRecognizer) *OCRReader {
	return NewOCRReaderWithConfig(recognizer, DefaultOCRConfig())
}

// NewOCRReaderWithConfig creates an OCRReader with the given
// configuration.
func NewOCRReaderWithConfig(recognizer TextRecognizer, config OCRConfig) *OCRReader {
	return &OCRReader{config: config, recognizer: recognizer}
}

// ReadImages runs OCR over the given page images in order.
func (o *OCRReader) ReadImages(ctx context.Context, images [][]byte) (*Result, error) {
	if o.recognizer == nil {
		return nil, &ExtractionError{Source: "ocr", Err: fmt.Errorf("no text recognizer configured")}
	}

	var pages []Page
	var all strings.Builder
	var lastErr error

	for i, img := range images {
		var text string
		err := retry.Do(
			func() error {
				t, err := o.recognizer.RecognizeImage(ctx, img)
				if err != nil {
					return err
				}
				text = t
				return nil
			},
			retry.Context(ctx),
			retry.Attempts(o.config.Attempts),
			retry.Delay(o.config.Delay),
			retry.LastErrorOnly(true),
		)
		if err != nil {
			if ctx.Err() != nil {
				return nil, &ExtractionError{Source: "ocr", Err: ctx.Err()}
			}
			lastErr = fmt.Errorf("page %d: %w", i+1, err)
			continue
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		pages = append(pages, Page{Index: i, Text: text})
		all.WriteString(text)
		all.WriteString("\n")
	}

	if len(pages) == 0 {
		err := error(ErrNoText)
		if lastErr != nil {
			err = lastErr
		}
		return nil, &ExtractionError{Source: "ocr", Err: err}
	}

	return &Result{
		Pages:   pages,
		Quality: measureQuality(all.String(), len(images), true),
		Method:  "ocr",
	}, nil
}
