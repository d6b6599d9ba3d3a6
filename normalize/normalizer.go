// Package normalize turns raw per-page text blocks into an ordered stream
// of logical lines: whitespace is collapsed, page-artifact noise such as
// repeated headers, footers, and page numbers is removed, and blank lines
// are retained as structural separators for downstream paragraph
// detection.
package normalize

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/recompose/model"
)

// PageText is one page's worth of raw extracted text.
type PageText struct {
	// Index is the 0-based page index
	Index int

	// Text is the page's raw text as produced by the extraction reader
	Text string
}

// Config holds configuration for line normalization.
type Config struct {
	// MinOccurrenceRatio is the minimum fraction of pages an edge line
	// must repeat on, at the same relative position, to be removed as a
	// header or footer
	// Default: 0.5
	MinOccurrenceRatio float64

	// EdgeLines is how many lines at the top and bottom of each page are
	// considered header/footer candidates
	// Default: 2
	EdgeLines int

	// MinPages is the minimum page count before header/footer removal
	// is attempted
	// Default: 3
	MinPages int

	// StripPageNumbers removes edge-zone lines that are bare page
	// numbers ("42", "Page 42", "- 42 -")
	// Default: true
	StripPageNumbers bool

	// MaxLineLength is the length above which a line is split at
	// sentence boundaries
	// Default: 2000
	MaxLineLength int
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MinOccurrenceRatio: 0.5,
		EdgeLines:          2,
		MinPages:           3,
		StripPageNumbers:   true,
		MaxLineLength:      2000,
	}
}

// Normalizer splits raw page text into normalized lines.
type Normalizer struct {
	config Config
}

// New creates a normalizer with default configuration.
func New() *Normalizer {
	return &Normalizer{config: DefaultConfig()}
}

// NewWithConfig creates a normalizer with custom configuration.
func NewWithConfig(config Config) *Normalizer {
	return &Normalizer{config: config}
}

var pageNumberPattern = regexp.MustCompile(`^(?i)(page\s+)?[-–—\s]*\d{1,4}[-–—\s]*$`)

// Normalize converts raw page text into an ordered stream of lines.
// Repeated edge lines are dropped, whitespace within each line is
// collapsed to single spaces, and a run of empty lines is kept as a single
// blank separator line.
func (n *Normalizer) Normalize(pages []PageText) []model.Line {
	rawPages := make([][]string, len(pages))
	for i, page := range pages {
		rawPages[i] = splitLines(page.Text)
	}

	repeated := n.findRepeatedEdges(rawPages)

	var out []model.Line
	for i, page := range pages {
		seq := 0
		lastBlank := true // suppress leading blanks on each page
		for pos, raw := range rawPages[i] {
			collapsed := collapse(raw)

			if collapsed == "" {
				if !lastBlank {
					out = append(out, model.Line{
						Page:  page.Index,
						Index: seq,
						Role:  model.RoleBlank,
					})
					seq++
					lastBlank = true
				}
				continue
			}

			if n.isEdge(pos, len(rawPages[i])) {
				if repeated[edgeKey(pos, len(rawPages[i]), collapsed)] {
					continue
				}
				if n.config.StripPageNumbers && pageNumberPattern.MatchString(collapsed) {
					continue
				}
			}

			for _, part := range n.splitLong(collapsed, raw) {
				out = append(out, model.Line{
					Raw:   part.raw,
					Text:  part.text,
					Page:  page.Index,
					Index: seq,
					Role:  model.RoleUnclassified,
				})
				seq++
			}
			lastBlank = false
		}
	}

	// Trailing blank carries no structure.
	for len(out) > 0 && out[len(out)-1].Role == model.RoleBlank {
		out = out[:len(out)-1]
	}
	return out
}

// splitLines applies unicode normalization and soft-hyphen handling, then
// splits the page into raw lines. A soft hyphen at end of line becomes a
// regular hyphen so the de-hyphenation pass can see it; soft hyphens
// elsewhere are deleted.
func splitLines(text string) []string {
	text = norm.NFC.String(text)
	text = strings.ReplaceAll(text, "­\n", "-\n")
	text = strings.ReplaceAll(text, "­", "")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(text, "\n")
}

// collapse reduces runs of whitespace to single spaces and trims the ends.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// isEdge reports whether line position pos is in the header or footer zone
// of a page with total lines.
func (n *Normalizer) isEdge(pos, total int) bool {
	return pos < n.config.EdgeLines || pos >= total-n.config.EdgeLines
}

// edgeKey identifies an edge line by its relative position. Header
// positions count from the top, footer positions from the bottom, so the
// same footer text matches across pages of different lengths.
func edgeKey(pos, total int, text string) string {
	if pos < total/2 {
		return "h:" + string(rune('0'+pos)) + ":" + text
	}
	return "f:" + string(rune('0'+total-pos)) + ":" + text
}

// findRepeatedEdges counts edge-line occurrences across pages and returns
// the keys that repeat on at least MinOccurrenceRatio of pages.
func (n *Normalizer) findRepeatedEdges(rawPages [][]string) map[string]bool {
	repeated := make(map[string]bool)
	if len(rawPages) < n.config.MinPages {
		return repeated
	}

	counts := make(map[string]int)
	for _, lines := range rawPages {
		seen := make(map[string]bool)
		for pos, raw := range lines {
			if !n.isEdge(pos, len(lines)) {
				continue
			}
			collapsed := collapse(raw)
			if collapsed == "" {
				continue
			}
			key := edgeKey(pos, len(lines), collapsed)
			if !seen[key] {
				counts[key]++
				seen[key] = true
			}
		}
	}

	threshold := int(n.config.MinOccurrenceRatio * float64(len(rawPages)))
	if threshold < 2 {
		threshold = 2
	}
	for key, count := range counts {
		if count >= threshold {
			repeated[key] = true
		}
	}
	return repeated
}

type linePart struct {
	raw  string
	text string
}

var sentenceEnd = regexp.MustCompile(`([.!?])\s+`)

// splitLong breaks an overlong line at sentence boundaries. Lines within
// the limit pass through unchanged with their original raw form.
func (n *Normalizer) splitLong(collapsed, raw string) []linePart {
	if n.config.MaxLineLength <= 0 || len(collapsed) <= n.config.MaxLineLength {
		return []linePart{{raw: raw, text: collapsed}}
	}

	var parts []linePart
	var current strings.Builder
	pieces := sentenceEnd.Split(collapsed, -1)
	ends := sentenceEnd.FindAllStringSubmatch(collapsed, -1)

	for i, piece := range pieces {
		sentence := piece
		if i < len(ends) {
			sentence += ends[i][1]
		}
		if current.Len() > 0 && current.Len()+len(sentence)+1 > n.config.MaxLineLength {
			parts = append(parts, linePart{raw: current.String(), text: current.String()})
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(sentence)
	}
	if current.Len() > 0 {
		parts = append(parts, linePart{raw: current.String(), text: current.String()})
	}
	if len(parts) == 0 {
		return []linePart{{raw: raw, text: collapsed}}
	}
	return parts
}
