package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Metadata holds extraction-run information for a document.
type Metadata struct {
	// ID uniquely identifies this extraction run
	ID string

	// Source identifies where the text came from (usually a file path)
	Source string

	// Method names the extraction method used ("pdf", "ocr", "text")
	Method string

	// ExtractedAt is when the run started
	ExtractedAt time.Time
}

// Document is the root of the reconstructed document tree. It exclusively
// owns its section tree; no external references into the tree are kept.
// A document is built by one pipeline run and must not be mutated
// concurrently.
type Document struct {
	Metadata Metadata
	Sections []*Section
}

// NewDocument creates an empty document for an extraction run.
func NewDocument(source, method string) *Document {
	return &Document{
		Metadata: Metadata{
			ID:          uuid.NewString(),
			Source:      source,
			Method:      method,
			ExtractedAt: time.Now().UTC(),
		},
	}
}

// AddSection appends a top-level section.
func (d *Document) AddSection(s *Section) {
	d.Sections = append(d.Sections, s)
}

// AllBlocks returns every content block in the document in order.
func (d *Document) AllBlocks() []*ContentBlock {
	var blocks []*ContentBlock
	for _, s := range d.Sections {
		blocks = append(blocks, s.AllBlocks()...)
	}
	return blocks
}

// AllLines returns every line in the document in order.
func (d *Document) AllLines() []Line {
	var lines []Line
	for _, b := range d.AllBlocks() {
		lines = append(lines, b.Lines...)
	}
	return lines
}

// AllTables returns every recognized table in document order.
func (d *Document) AllTables() []*Table {
	var tables []*Table
	for _, b := range d.AllBlocks() {
		if b.Table != nil {
			tables = append(tables, b.Table)
		}
	}
	return tables
}

// ExtractText returns the document's content as plain text: section titles
// followed by their block contents, separated by blank lines.
func (d *Document) ExtractText() string {
	var sb strings.Builder
	var walk func(s *Section)
	walk = func(s *Section) {
		sb.WriteString(s.Title)
		sb.WriteString("\n\n")
		for i := range s.Blocks {
			if text := s.Blocks[i].Text(); text != "" {
				sb.WriteString(text)
				sb.WriteString("\n\n")
			}
		}
		for _, sub := range s.Subsections {
			walk(sub)
		}
	}
	for _, s := range d.Sections {
		walk(s)
	}
	return strings.TrimRight(sb.String(), "\n") + "\n"
}

// Stats summarizes the document's structure.
type Stats struct {
	SectionCount  int
	BlockCount    int
	LineCount     int
	TableCount    int
	AvgLineLength float64
}

// Stats computes structure statistics for the document.
func (d *Document) Stats() Stats {
	var stats Stats
	var walk func(s *Section)
	walk = func(s *Section) {
		stats.SectionCount++
		for _, sub := range s.Subsections {
			walk(sub)
		}
	}
	for _, s := range d.Sections {
		walk(s)
	}

	totalLen := 0
	for _, b := range d.AllBlocks() {
		stats.BlockCount++
		if b.Table != nil {
			stats.TableCount++
		}
		for i := range b.Lines {
			stats.LineCount++
			totalLen += len(b.Lines[i].Content())
		}
	}
	if stats.LineCount > 0 {
		stats.AvgLineLength = float64(totalLen) / float64(stats.LineCount)
	}
	return stats
}
