package tables

import (
	"math"
	"strings"

	"github.com/tsawler/recompose/model"
)

// Config holds configuration for table recognition.
type Config struct {
	// MinRows is the minimum run length for a valid table; shorter runs
	// are demoted back to body text
	// Default: 2
	MinRows int

	// MinGapWidth is the minimum run of blank character columns that
	// separates two cells
	// Default: 2
	MinGapWidth int

	// MajorityRatio is the fraction of rows that must agree a character
	// column is blank for it to count toward a separator
	// Default: 0.6
	MajorityRatio float64
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MinRows:       2,
		MinGapWidth:   2,
		MajorityRatio: 0.6,
	}
}

// Recognizer converts runs of table-row lines into structured tables.
type Recognizer struct {
	config Config
}

// New creates a recognizer with default configuration.
func New() *Recognizer {
	return &Recognizer{config: DefaultConfig()}
}

// NewWithConfig creates a recognizer with custom configuration.
func NewWithConfig(config Config) *Recognizer {
	return &Recognizer{config: config}
}

// Recognize converts a contiguous run of table-row lines into a table.
// It returns nil when the run is too short or no consistent column split
// exists; the caller should then demote the lines back to body text.
func (r *Recognizer) Recognize(lines []model.Line) *model.Table {
	if len(lines) < r.config.MinRows {
		return nil
	}

	raws := make([]string, len(lines))
	for i := range lines {
		raws[i] = strings.TrimRight(lines[i].Raw, " \t")
	}

	if allPipeDelimited(raws) {
		return r.splitOnPipes(raws)
	}
	return r.splitOnGaps(raws)
}

// allPipeDelimited reports whether every row uses pipe separators.
func allPipeDelimited(raws []string) bool {
	for _, raw := range raws {
		if !strings.Contains(raw, "|") {
			return false
		}
	}
	return true
}

// splitOnPipes splits each row at pipe characters.
func (r *Recognizer) splitOnPipes(raws []string) *model.Table {
	rows := make([][]string, len(raws))
	for i, raw := range raws {
		var cells []string
		for _, cell := range strings.Split(raw, "|") {
			cell = strings.TrimSpace(cell)
			if cell != "" || len(cells) > 0 {
				cells = append(cells, cell)
			}
		}
		// Trailing empty cell from a closing pipe.
		for len(cells) > 0 && cells[len(cells)-1] == "" {
			cells = cells[:len(cells)-1]
		}
		rows[i] = cells
	}
	table := model.NewTable(rows)
	table.Confidence = 0.9
	return table
}

// splitOnGaps finds column boundaries by majority vote: a character column
// is a gap column when at least MajorityRatio of the rows are blank there,
// and a run of MinGapWidth or more gap columns separates two cells.
func (r *Recognizer) splitOnGaps(raws []string) *model.Table {
	width := 0
	for _, raw := range raws {
		if n := len([]rune(raw)); n > width {
			width = n
		}
	}
	if width == 0 {
		return nil
	}

	// Expand tabs so gap positions line up across rows.
	expanded := make([][]rune, len(raws))
	for i, raw := range raws {
		expanded[i] = expandTabs(raw, r.config.MinGapWidth)
		if n := len(expanded[i]); n > width {
			width = n
		}
	}

	// Vote per character column. Positions past a row's end count as
	// blank for that row.
	threshold := int(math.Ceil(r.config.MajorityRatio * float64(len(raws))))
	if threshold < 1 {
		threshold = 1
	}
	blank := make([]bool, width)
	for col := 0; col < width; col++ {
		votes := 0
		for _, row := range expanded {
			if col >= len(row) || row[col] == ' ' {
				votes++
			}
		}
		blank[col] = votes >= threshold
	}

	boundaries := gapRuns(blank, r.config.MinGapWidth)
	if len(boundaries) == 0 {
		return nil // no consistent column structure
	}

	rows := make([][]string, len(expanded))
	for i, row := range expanded {
		rows[i] = splitAt(row, boundaries)
	}

	table := model.NewTable(rows)
	table.Confidence = columnAgreement(rows)
	return table
}

// gapRuns returns the start positions of cell boundaries: each maximal run
// of minGap+ blank columns yields one boundary at its end. A leading gap
// run is ignored; it is indentation, not a separator.
func gapRuns(blank []bool, minGap int) []int {
	var boundaries []int
	runStart := -1
	seenContent := false
	for col, isBlank := range blank {
		if isBlank {
			if runStart < 0 {
				runStart = col
			}
			continue
		}
		if runStart >= 0 && seenContent && col-runStart >= minGap {
			boundaries = append(boundaries, col)
		}
		runStart = -1
		seenContent = true
	}
	return boundaries
}

// splitAt cuts a row at the given boundary positions and trims each cell.
func splitAt(row []rune, boundaries []int) []string {
	cells := make([]string, 0, len(boundaries)+1)
	start := 0
	for _, b := range boundaries {
		end := b
		if end > len(row) {
			end = len(row)
		}
		if start > len(row) {
			start = len(row)
		}
		cells = append(cells, strings.TrimSpace(string(row[start:end])))
		start = b
	}
	if start > len(row) {
		start = len(row)
	}
	cells = append(cells, strings.TrimSpace(string(row[start:])))
	return cells
}

// expandTabs replaces each tab with gapWidth spaces.
func expandTabs(s string, gapWidth int) []rune {
	if gapWidth < 1 {
		gapWidth = 1
	}
	var out []rune
	for _, r := range s {
		if r == '\t' {
			for i := 0; i < gapWidth; i++ {
				out = append(out, ' ')
			}
			continue
		}
		out = append(out, r)
	}
	return out
}

// columnAgreement scores how uniformly populated the recovered grid is:
// the fraction of cells that are non-empty.
func columnAgreement(rows [][]string) float64 {
	total, filled := 0, 0
	for _, row := range rows {
		for _, cell := range row {
			total++
			if cell != "" {
				filled++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(filled) / float64(total)
}
