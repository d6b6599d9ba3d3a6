package recompose

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/tsawler/recompose/extract"
	"github.com/tsawler/recompose/model"
)

const sampleText = `Chapter 1: The Basics

Readers must under-
stand the rules fully.

Chapter 2: Advanced Play

More text here.
`

func TestFromTextDocument(t *testing.T) {
	doc, warnings, err := FromText(sampleText, "sample.txt").Document()
	if err != nil {
		t.Fatalf("Document() error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}

	if len(doc.Sections) != 2 {
		t.Fatalf("Sections = %d, want 2", len(doc.Sections))
	}
	if doc.Sections[0].Title != "Chapter 1: The Basics" {
		t.Errorf("first title = %q", doc.Sections[0].Title)
	}
	if doc.Sections[1].Title != "Chapter 2: Advanced Play" {
		t.Errorf("second title = %q", doc.Sections[1].Title)
	}
	if doc.Metadata.Source != "sample.txt" {
		t.Errorf("Source = %q, want %q", doc.Metadata.Source, "sample.txt")
	}
	if doc.Metadata.Method != "text" {
		t.Errorf("Method = %q, want %q", doc.Metadata.Method, "text")
	}
}

func TestFromTextCorrectsHyphenation(t *testing.T) {
	text, _, err := FromText(sampleText, "sample.txt").Text()
	if err != nil {
		t.Fatalf("Text() error: %v", err)
	}
	if !strings.Contains(text, "Readers must understand the rules fully.") {
		t.Errorf("split word not rejoined:\n%s", text)
	}
	if strings.Contains(text, "under-") {
		t.Errorf("hyphenated fragment survived:\n%s", text)
	}
}

func TestSpacedProseRepairedEndToEnd(t *testing.T) {
	const input = `Chapter 1: The Basics

The title reads
D u n g e o n s   a n d   D r a g o n s
across the cover page.
`
	doc, _, err := FromText(input, "sample.txt").Document()
	if err != nil {
		t.Fatalf("Document() error: %v", err)
	}

	// The spaced line is prose, not a heading: one section, no subsections.
	if len(doc.Sections) != 1 {
		t.Fatalf("Sections = %d, want 1", len(doc.Sections))
	}
	if n := len(doc.Sections[0].Subsections); n != 0 {
		t.Fatalf("Subsections = %d, want 0", n)
	}

	text := doc.ExtractText()
	if !strings.Contains(text, "Dungeons and Dragons") {
		t.Errorf("spaced words not reassembled:\n%s", text)
	}
	if strings.Contains(text, "D u n g e o n s") {
		t.Errorf("letter-spaced text survived:\n%s", text)
	}
}

func TestStageLinesSkipsCorrection(t *testing.T) {
	lines, _, err := FromText(sampleText, "sample.txt").Stage(StageLines).Lines()
	if err != nil {
		t.Fatalf("Lines() error: %v", err)
	}

	var heading, body int
	for _, line := range lines {
		switch line.Role {
		case model.RoleHeading1:
			heading++
		case model.RoleBody:
			body++
		}
	}
	if heading != 2 {
		t.Errorf("heading lines = %d, want 2", heading)
	}
	if body == 0 {
		t.Error("no body lines classified")
	}

	// Correction never ran, so the hyphenated fragment is untouched.
	for _, line := range lines {
		if line.Corrected != "" || line.Absorbed {
			t.Errorf("line %q was corrected at stage %s", line.Text, StageLines)
		}
	}
}

func TestStageChaptersSkipsCorrection(t *testing.T) {
	text, _, err := FromText(sampleText, "sample.txt").Stage(StageChapters).Text()
	if err != nil {
		t.Fatalf("Text() error: %v", err)
	}
	if !strings.Contains(text, "under-") {
		t.Errorf("correction ran despite chapter stage:\n%s", text)
	}
}

func TestConfigMethodsDoNotMutate(t *testing.T) {
	base := FromText(sampleText, "sample.txt")
	forked := base.Stage(StageLines).KeepCorrectionRecords()

	if base.options.stage != StageProcessed {
		t.Errorf("base stage = %v, want %v", base.options.stage, StageProcessed)
	}
	if base.options.keepRecords {
		t.Error("base keepRecords flipped by fork")
	}
	if forked.options.stage != StageLines || !forked.options.keepRecords {
		t.Error("fork did not carry its own configuration")
	}

	// Both still run independently.
	if _, _, err := base.Text(); err != nil {
		t.Errorf("base run error: %v", err)
	}
	if _, _, err := forked.Lines(); err != nil {
		t.Errorf("fork run error: %v", err)
	}
}

func TestFromTextEmpty(t *testing.T) {
	_, _, err := FromText("", "empty.txt").Document()
	if err == nil {
		t.Fatal("expected error for empty input")
	}
	if !errors.Is(err, ErrNoText) {
		t.Errorf("error = %v, want ErrNoText", err)
	}
}

func TestFromPages(t *testing.T) {
	pages := []extract.Page{
		{Index: 0, Text: "Chapter 1: Openings\n\nPlay begins here."},
		{Index: 1, Text: "More play follows."},
	}
	doc, _, err := FromPages(pages, "book.pdf").Document()
	if err != nil {
		t.Fatalf("Document() error: %v", err)
	}
	if doc.Metadata.Method != "pages" {
		t.Errorf("Method = %q, want %q", doc.Metadata.Method, "pages")
	}
	if len(doc.Sections) != 1 {
		t.Fatalf("Sections = %d, want 1", len(doc.Sections))
	}
	if got := doc.Sections[0].Title; got != "Chapter 1: Openings" {
		t.Errorf("title = %q", got)
	}
}

type stubRecognizer struct {
	pages map[byte]string
}

func (s *stubRecognizer) RecognizeImage(_ context.Context, img []byte) (string, error) {
	if len(img) == 0 {
		return "", fmt.Errorf("empty image")
	}
	text, ok := s.pages[img[0]]
	if !ok {
		return "", fmt.Errorf("unreadable image")
	}
	return text, nil
}

func TestFromImages(t *testing.T) {
	rec := &stubRecognizer{pages: map[byte]string{
		1: "Chapter 1: Scanned\n\nRecovered from a scan.",
	}}
	doc, _, err := FromImages([][]byte{{1}}, "scan.pdf").
		WithRecognizer(rec).
		WithContext(context.Background()).
		Document()
	if err != nil {
		t.Fatalf("Document() error: %v", err)
	}
	if doc.Metadata.Method != "ocr" {
		t.Errorf("Method = %q, want %q", doc.Metadata.Method, "ocr")
	}
	if got := doc.Sections[0].Title; got != "Chapter 1: Scanned" {
		t.Errorf("title = %q", got)
	}
}

func TestFromImagesWithoutRecognizer(t *testing.T) {
	_, _, err := FromImages([][]byte{{1}}, "scan.pdf").Document()
	if err == nil {
		t.Fatal("expected error without a recognizer")
	}
	if !strings.Contains(err.Error(), "WithRecognizer") {
		t.Errorf("error = %v, want mention of WithRecognizer", err)
	}
}

func TestMarkdownOutput(t *testing.T) {
	md, _, err := FromText(sampleText, "sample.txt").Markdown()
	if err != nil {
		t.Fatalf("Markdown() error: %v", err)
	}
	if !strings.Contains(md, "# Chapter 1: The Basics") {
		t.Errorf("missing chapter heading:\n%s", md)
	}
	if !strings.Contains(md, "# Chapter 2: Advanced Play") {
		t.Errorf("missing second heading:\n%s", md)
	}
}

func TestJSONOutput(t *testing.T) {
	out, _, err := FromText(sampleText, "sample.txt").JSON()
	if err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var view struct {
		Metadata struct {
			Source string `json:"source"`
			Method string `json:"method"`
		} `json:"metadata"`
		Sections []struct {
			Title string `json:"title"`
			Level int    `json:"level"`
		} `json:"sections"`
	}
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if view.Metadata.Source != "sample.txt" {
		t.Errorf("source = %q", view.Metadata.Source)
	}
	if len(view.Sections) != 2 || view.Sections[0].Level != 1 {
		t.Errorf("sections = %+v", view.Sections)
	}
}

func TestCorrectionRecords(t *testing.T) {
	records, _, err := FromText(sampleText, "sample.txt").CorrectionRecords()
	if err != nil {
		t.Fatalf("CorrectionRecords() error: %v", err)
	}
	found := false
	for _, rec := range records {
		if rec.Rule == "dehyphenate" && strings.Contains(rec.Corrected, "understand") {
			found = true
		}
	}
	if !found {
		t.Errorf("no dehyphenation record in %v", records)
	}
}

func TestStats(t *testing.T) {
	stats, err := FromText(sampleText, "sample.txt").Stats()
	if err != nil {
		t.Fatalf("Stats() error: %v", err)
	}
	if stats.SectionCount != 2 {
		t.Errorf("SectionCount = %d, want 2", stats.SectionCount)
	}
	if stats.LineCount == 0 {
		t.Error("LineCount = 0")
	}
}

func TestMust(t *testing.T) {
	stats := Must(FromText(sampleText, "sample.txt").Stats())
	if stats.SectionCount != 2 {
		t.Errorf("SectionCount = %d, want 2", stats.SectionCount)
	}

	defer func() {
		if recover() == nil {
			t.Error("Must did not panic on error")
		}
	}()
	Must(FromText("", "empty.txt").Stats())
}

func TestMustText(t *testing.T) {
	text := MustText(FromText(sampleText, "sample.txt").Text())
	if !strings.Contains(text, "Chapter 1: The Basics") {
		t.Errorf("unexpected text:\n%s", text)
	}

	defer func() {
		if recover() == nil {
			t.Error("MustText did not panic on error")
		}
	}()
	MustText(FromText("", "empty.txt").Text())
}

func TestFormatWarnings(t *testing.T) {
	warnings := []Warning{
		{Code: "needs-ocr", Message: "low quality", Page: -1},
		{Code: "table-demoted", Message: "too sparse", Page: 2},
	}
	got := FormatWarnings(warnings)
	if !strings.Contains(got, "needs-ocr") || !strings.Contains(got, "; ") {
		t.Errorf("FormatWarnings = %q", got)
	}
}

func TestOpenUnknownFile(t *testing.T) {
	_, _, err := Open("no-such-file.txt").Text()
	if err == nil {
		t.Error("expected error for missing file")
	}
}
