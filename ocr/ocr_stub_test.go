//go:build !ocr

package ocr

import (
	"context"
	"errors"
	"testing"
)

func TestNewWithoutOCRSupport(t *testing.T) {
	client, err := New()
	if !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("got %v, want ErrOCRNotEnabled", err)
	}
	if client != nil {
		t.Error("expected nil client")
	}
}

func TestStubRecognizeImage(t *testing.T) {
	var client Client
	_, err := client.RecognizeImage(context.Background(), []byte{0x89, 'P', 'N', 'G'})
	if !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("got %v, want ErrOCRNotEnabled", err)
	}
}

func TestStubCloseIsNilSafe(t *testing.T) {
	var client *Client
	if err := client.Close(); err != nil {
		t.Errorf("Close on nil client returned %v", err)
	}
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	if len(config.Languages) != 1 || config.Languages[0] != "eng" {
		t.Errorf("languages = %v, want [eng]", config.Languages)
	}
	if config.PageSegMode != PSMAuto {
		t.Errorf("page seg mode = %v, want PSMAuto", config.PageSegMode)
	}
}
