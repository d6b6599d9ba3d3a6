package format

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
	}{
		{"book.pdf", PDF},
		{"book.PDF", PDF},
		{"dump.txt", Text},
		{"notes.text", Text},
		{"page.png", PNG},
		{"page.jpg", JPEG},
		{"page.jpeg", JPEG},
		{"scan.tif", TIFF},
		{"scan.tiff", TIFF},
		{"page.bmp", BMP},
		{"book.epub", Unknown},
		{"noextension", Unknown},
	}
	for _, tt := range tests {
		if got := Detect(tt.filename); got != tt.want {
			t.Errorf("Detect(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestDetectFromMagic(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{"pdf", []byte("%PDF-1.7\nrest"), PDF},
		{"png", []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}, PNG},
		{"jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10}, JPEG},
		{"tiff little endian", []byte("II*\x00rest"), TIFF},
		{"tiff big endian", []byte("MM\x00*rest"), TIFF},
		{"bmp", []byte("BM\x36\x00\x00\x00"), BMP},
		{"plain text", []byte("Chapter 1: The Basics\n\nBody text.\n"), Text},
		{"text with form feeds", []byte("page one\ftwo\n"), Text},
		{"binary", []byte{0x00, 0x01, 0x02, 0x03, 0x04}, Unknown},
		{"empty", nil, Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFromMagic(tt.data); got != tt.want {
				t.Errorf("DetectFromMagic = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectFileMagicBeatsExtension(t *testing.T) {
	dir := t.TempDir()

	// A PDF renamed to .txt is still detected as PDF.
	path := filepath.Join(dir, "mislabeled.txt")
	if err := os.WriteFile(path, []byte("%PDF-1.4\ncontent"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := DetectFile(path)
	if err != nil {
		t.Fatalf("DetectFile error: %v", err)
	}
	if got != PDF {
		t.Errorf("DetectFile = %v, want %v", got, PDF)
	}
}

func TestDetectFileFallsBackToExtension(t *testing.T) {
	dir := t.TempDir()

	// An empty file has no magic to go on.
	path := filepath.Join(dir, "empty.pdf")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := DetectFile(path)
	if err != nil {
		t.Fatalf("DetectFile error: %v", err)
	}
	if got != PDF {
		t.Errorf("DetectFile = %v, want %v", got, PDF)
	}
}

func TestDetectFileMissing(t *testing.T) {
	if _, err := DetectFile(filepath.Join(t.TempDir(), "absent.pdf")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestIsImage(t *testing.T) {
	for _, f := range []Format{PNG, JPEG, TIFF, BMP} {
		if !f.IsImage() {
			t.Errorf("%v.IsImage() = false", f)
		}
	}
	for _, f := range []Format{Unknown, PDF, Text} {
		if f.IsImage() {
			t.Errorf("%v.IsImage() = true", f)
		}
	}
}
