//go:build ocr

package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/otiai10/gosseract/v2"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/tsawler/recompose/format"
)

// Client wraps a Tesseract session. It is not safe for concurrent use;
// give each goroutine its own client. Close releases the underlying
// Tesseract resources.
type Client struct {
	client *gosseract.Client
	config Config
}

// New creates an OCR client with default configuration.
func New() (*Client, error) {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates an OCR client with the given configuration.
func NewWithConfig(config Config) (*Client, error) {
	client := gosseract.NewClient()
	if len(config.Languages) > 0 {
		if err := client.SetLanguage(config.Languages...); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("failed to set OCR languages: %w", err)
		}
	}
	if err := client.SetPageSegMode(gosseract.PageSegMode(config.PageSegMode)); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to set page segmentation mode: %w", err)
	}
	return &Client{client: client, config: config}, nil
}

// Close releases Tesseract resources.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// RecognizeImage performs OCR on one page image and returns the
// recognized text, whitespace-trimmed. TIFF and BMP input is converted
// to PNG first; other formats are handed to Tesseract as-is.
func (c *Client) RecognizeImage(ctx context.Context, img []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := c.client.SetImageFromBytes(widenImage(img)); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}
	text, err := c.client.Text()
	if err != nil {
		return "", fmt.Errorf("recognition failed: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// widenImage re-encodes TIFF and BMP images as PNG so Tesseract sees a
// format it reliably accepts. Unrecognized or broken input is returned
// unchanged and left for Tesseract to reject.
func widenImage(data []byte) []byte {
	var img image.Image
	var err error
	switch format.DetectFromMagic(data) {
	case format.TIFF:
		img, err = tiff.Decode(bytes.NewReader(data))
	case format.BMP:
		img, err = bmp.Decode(bytes.NewReader(data))
	default:
		return data
	}
	if err != nil {
		return data
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return data
	}
	return buf.Bytes()
}
