package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tsawler/recompose/model"
)

// Format defines the available export formats.
type Format int

const (
	// FormatText exports plain text with blank-line paragraph separation
	FormatText Format = iota
	// FormatMarkdown exports Markdown with heading and table markup
	FormatMarkdown
	// FormatJSON exports the document tree as indented JSON
	FormatJSON
	// FormatYAML exports the document tree as YAML
	FormatYAML
)

// String returns a human-readable representation of the format.
func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatMarkdown:
		return "markdown"
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// FileExtension returns the typical file extension for this format.
func (f Format) FileExtension() string {
	switch f {
	case FormatMarkdown:
		return ".md"
	case FormatJSON:
		return ".json"
	case FormatYAML:
		return ".yaml"
	default:
		return ".txt"
	}
}

// ParseFormat converts a format name to a Format. It accepts the String
// form of each format plus the common aliases "md", "txt", and "yml".
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "text", "txt", "plain":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return FormatText, fmt.Errorf("unknown export format %q", name)
	}
}

// Config holds configuration options for export.
type Config struct {
	// IncludeMetadata includes document metadata in the structured
	// formats. Plain text and Markdown never include metadata.
	IncludeMetadata bool

	// Indent is the indentation unit for JSON output
	Indent string
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		IncludeMetadata: true,
		Indent:          "  ",
	}
}

// Exporter serializes documents. A single Exporter may be reused for any
// number of documents and formats.
type Exporter struct {
	config Config
}

// New creates an Exporter with default configuration.
func New() *Exporter {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates an Exporter with the given configuration.
func NewWithConfig(config Config) *Exporter {
	return &Exporter{config: config}
}

// Export writes the document to w in the given format.
func (e *Exporter) Export(doc *model.Document, format Format, w io.Writer) error {
	switch format {
	case FormatText:
		_, err := io.WriteString(w, doc.ExtractText())
		return err
	case FormatMarkdown:
		_, err := io.WriteString(w, e.markdown(doc))
		return err
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", e.config.Indent)
		if err := enc.Encode(e.view(doc)); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		if err := enc.Encode(e.view(doc)); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown export format %d", format)
	}
}

// ExportToString exports the document to a string.
func (e *Exporter) ExportToString(doc *model.Document, format Format) (string, error) {
	var buf bytes.Buffer
	if err := e.Export(doc, format, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ExportToFile exports the document to the named file.
func (e *Exporter) ExportToFile(doc *model.Document, format Format, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	if err := e.Export(doc, format, f); err != nil {
		return err
	}
	return f.Close()
}

// documentView is the serialized shape of a document for the structured
// formats.
type documentView struct {
	Metadata *metadataView `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	Sections []sectionView `json:"sections" yaml:"sections"`
}

type metadataView struct {
	ID          string    `json:"id" yaml:"id"`
	Source      string    `json:"source" yaml:"source"`
	Method      string    `json:"method" yaml:"method"`
	ExtractedAt time.Time `json:"extracted_at" yaml:"extracted_at"`
}

type sectionView struct {
	Title       string        `json:"title" yaml:"title"`
	Level       int           `json:"level" yaml:"level"`
	Synthetic   bool          `json:"synthetic,omitempty" yaml:"synthetic,omitempty"`
	Blocks      []blockView   `json:"blocks,omitempty" yaml:"blocks,omitempty"`
	Subsections []sectionView `json:"subsections,omitempty" yaml:"subsections,omitempty"`
}

type blockView struct {
	Role  string     `json:"role" yaml:"role"`
	Text  string     `json:"text,omitempty" yaml:"text,omitempty"`
	Table [][]string `json:"table,omitempty" yaml:"table,omitempty"`
}

func (e *Exporter) view(doc *model.Document) documentView {
	view := documentView{Sections: []sectionView{}}
	if e.config.IncludeMetadata {
		view.Metadata = &metadataView{
			ID:          doc.Metadata.ID,
			Source:      doc.Metadata.Source,
			Method:      doc.Metadata.Method,
			ExtractedAt: doc.Metadata.ExtractedAt,
		}
	}
	for _, sec := range doc.Sections {
		view.Sections = append(view.Sections, sectionToView(sec))
	}
	return view
}

func sectionToView(sec *model.Section) sectionView {
	view := sectionView{
		Title:     sec.Title,
		Level:     sec.Level,
		Synthetic: sec.Synthetic,
	}
	for i := range sec.Blocks {
		block := &sec.Blocks[i]
		bv := blockView{Role: block.Role.String()}
		if block.IsTable() {
			bv.Table = block.Table.Rows
		} else {
			bv.Text = block.Text()
		}
		view.Blocks = append(view.Blocks, bv)
	}
	for _, sub := range sec.Subsections {
		view.Subsections = append(view.Subsections, sectionToView(sub))
	}
	return view
}

// markdown renders the document as Markdown: level-1 sections become H1
// headings, subsections H2, tables pipe tables, and list blocks keep one
// item per line.
func (e *Exporter) markdown(doc *model.Document) string {
	var sb strings.Builder
	var walk func(sec *model.Section)
	walk = func(sec *model.Section) {
		sb.WriteString(strings.Repeat("#", sec.Level))
		sb.WriteString(" ")
		sb.WriteString(sec.Title)
		sb.WriteString("\n\n")
		for i := range sec.Blocks {
			block := &sec.Blocks[i]
			switch {
			case block.IsTable():
				sb.WriteString(block.Table.ToMarkdown())
				sb.WriteString("\n")
			default:
				if text := block.Text(); text != "" {
					sb.WriteString(text)
					sb.WriteString("\n\n")
				}
			}
		}
		for _, sub := range sec.Subsections {
			walk(sub)
		}
	}
	for _, sec := range doc.Sections {
		walk(sec)
	}
	return strings.TrimRight(sb.String(), "\n") + "\n"
}
