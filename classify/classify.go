// Package classify assigns structural roles to normalized lines. Roles are
// decided by a closed set of heuristic rules, each returning a confidence
// score; the highest-confidence rule wins, with ties broken by a fixed
// priority order (heading > table-row > list-item > body). Classification
// is a single deterministic pass with one line of lookback and lookahead.
package classify

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tsawler/recompose/model"
	"github.com/tsawler/recompose/wordlist"
)

// Config holds configuration for structure analysis. The thresholds are
// heuristic tuning constants; the defaults work for typical book-like
// documents.
type Config struct {
	// MaxHeadingLength is the maximum character length of a heading line
	// Default: 80
	MaxHeadingLength int

	// MaxHeadingWords is the maximum word count of a heading line
	// Default: 12
	MaxHeadingWords int

	// MinColumnSignals is how many column-separator signals a line needs
	// to be considered a table row
	// Default: 2
	MinColumnSignals int

	// MinGapWidth is the minimum run of spaces that counts as a column
	// gap
	// Default: 2
	MinGapWidth int

	// MinSpacedRun is the minimum run of single-letter tokens treated as
	// letter-spaced text ("C h a p t e r")
	// Default: 4
	MinSpacedRun int
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MaxHeadingLength: 80,
		MaxHeadingWords:  12,
		MinColumnSignals: 2,
		MinGapWidth:      2,
		MinSpacedRun:     4,
	}
}

// Analyzer classifies lines into structural roles.
type Analyzer struct {
	config Config
	words  *wordlist.List
}

// New creates an analyzer with default configuration. The word list may be
// nil; it only sharpens spaced-heading recognition.
func New(words *wordlist.List) *Analyzer {
	return &Analyzer{config: DefaultConfig(), words: words}
}

// NewWithConfig creates an analyzer with custom configuration.
func NewWithConfig(config Config, words *wordlist.List) *Analyzer {
	return &Analyzer{config: config, words: words}
}

var (
	chapterPattern    = regexp.MustCompile(`^(?i)(chapter|part|appendix|book)\s+([0-9]+|[ivxlcdm]+|[a-z])\b`)
	numberedH1Pattern = regexp.MustCompile(`^\d{1,3}\.\s+\S`)
	numberedH2Pattern = regexp.MustCompile(`^\d{1,3}\.\d{1,3}(\.\d{1,3})?\.?\s+\S`)
	listMarkerPattern = regexp.MustCompile(`^([-*•‣◦·]|\d{1,3}[.)]|[a-z][.)])\s+\S`)
	tocDotsPattern    = regexp.MustCompile(`\.{3,}\s*\d+\s*$`)
	wordGapPattern    = regexp.MustCompile(`\s{2,}`)
)

// Classify assigns a role and confidence to every line. Blank lines keep
// their blank role; everything else gets the winning rule's role, or body
// when no rule clears its threshold.
func (a *Analyzer) Classify(lines []model.Line) []model.Line {
	out := make([]model.Line, len(lines))
	copy(out, lines)

	for i := range out {
		if out[i].Role == model.RoleBlank {
			out[i].Confidence = 1.0
			continue
		}

		prev := neighbor(out, i, -1)
		followedByBlank := i+1 >= len(out) || out[i+1].Role == model.RoleBlank

		role, confidence := a.classifyLine(&out[i], prev, followedByBlank)
		out[i].Role = role
		out[i].Confidence = confidence

		// Letter-spaced headings are collapsed during classification
		// so their titles read normally downstream.
		if role.IsHeading() {
			if collapsed, ok := a.collapseSpacedLine(&out[i]); ok {
				out[i].Text = collapsed
			}
		}
	}
	return out
}

// neighbor returns the nearest non-blank line in the given direction, or
// nil at the stream edge.
func neighbor(lines []model.Line, i, dir int) *model.Line {
	for j := i + dir; j >= 0 && j < len(lines); j += dir {
		if lines[j].Role != model.RoleBlank {
			return &lines[j]
		}
	}
	return nil
}

// classifyLine evaluates every rule and picks the winner. Evaluation order
// is the tie-break priority order.
func (a *Analyzer) classifyLine(line, prev *model.Line, followedByBlank bool) (model.Role, float64) {
	bestRole := model.RoleBody
	bestConfidence := 0.2 // body baseline

	if role, c := a.headingRule(line, prev, followedByBlank); c > bestConfidence {
		bestRole, bestConfidence = role, c
	}
	if c := a.tableRowRule(line, prev); c > bestConfidence {
		bestRole, bestConfidence = model.RoleTableRow, c
	}
	if c := a.listItemRule(line); c > bestConfidence {
		bestRole, bestConfidence = model.RoleListItem, c
	}
	return bestRole, bestConfidence
}

// headingRule scores a line as a chapter or section heading. Short lines
// matching numbering or case patterns that do not end in sentence
// punctuation score high; the level comes from the numbering depth and
// case signals.
func (a *Analyzer) headingRule(line, prev *model.Line, followedByBlank bool) (model.Role, float64) {
	display := line.Text
	spaced := false
	if collapsed, ok := a.collapseSpacedLine(line); ok {
		display = collapsed
		spaced = true
	}

	// Column gaps mean table row, not heading. Letter-spaced titles are
	// exempt: their gaps separate letters, not columns.
	if !spaced && columnSignals(line.Raw, a.config.MinGapWidth) >= a.config.MinColumnSignals {
		return model.RoleHeading1, 0
	}

	if len(display) > a.config.MaxHeadingLength {
		return model.RoleHeading1, 0
	}
	if len(strings.Fields(display)) > a.config.MaxHeadingWords {
		return model.RoleHeading1, 0
	}
	if endsInSentencePunctuation(display) {
		return model.RoleHeading1, 0
	}
	// Table-of-contents entries look like headings but are not.
	if tocDotsPattern.MatchString(display) {
		return model.RoleHeading1, 0
	}

	confidence := 0.0
	level := model.RoleHeading2

	switch {
	case chapterPattern.MatchString(display):
		confidence += 0.5
		level = model.RoleHeading1
	case numberedH2Pattern.MatchString(display):
		confidence += 0.4
		level = model.RoleHeading2
	case numberedH1Pattern.MatchString(display):
		confidence += 0.4
		level = model.RoleHeading1
	case isAllCaps(display):
		confidence += 0.35
		level = model.RoleHeading1
	case isTitleCase(display):
		confidence += 0.25
		level = model.RoleHeading2
	}

	if confidence == 0 {
		return model.RoleHeading1, 0
	}

	// Indentation pushes a heading down one level.
	if level == model.RoleHeading1 && leadingSpaces(line.Raw) >= a.config.MinGapWidth {
		level = model.RoleHeading2
	}

	// A heading sits apart from the text beneath it: a blank line (or
	// the end of the stream) directly after is more credible than a
	// mid-paragraph position.
	if followedByBlank {
		confidence += 0.1
	}
	if prev == nil {
		confidence += 0.1
	}
	if len(strings.Fields(display)) <= 6 {
		confidence += 0.1
	}

	return level, confidence
}

// tableRowRule scores a line as a table row by counting column-separator
// signals: runs of spaces, tabs, or pipes. Consistency with the previous
// line's signal count raises the score.
func (a *Analyzer) tableRowRule(line, prev *model.Line) float64 {
	if a.letterSpaced(line.Text) {
		return 0 // letter-spaced text, gaps separate glyphs, not columns
	}
	signals := columnSignals(line.Raw, a.config.MinGapWidth)
	if signals < a.config.MinColumnSignals {
		return 0
	}

	confidence := 0.45
	if prev != nil && prev.Role == model.RoleTableRow {
		prevSignals := columnSignals(prev.Raw, a.config.MinGapWidth)
		if prevSignals == signals {
			confidence = 0.8
		} else {
			confidence = 0.6
		}
	}
	return confidence
}

// listItemRule scores a line as a list item by its leading marker.
func (a *Analyzer) listItemRule(line *model.Line) float64 {
	if listMarkerPattern.MatchString(line.Text) {
		return 0.55
	}
	return 0
}

// columnSignals counts column separators in a raw line: each run of
// minGap+ spaces, each tab, and each pipe character is one signal.
func columnSignals(raw string, minGap int) int {
	raw = strings.TrimRight(raw, " \t")
	signals := 0
	spaceRun := 0
	started := false
	for _, r := range raw {
		switch {
		case r == '|':
			signals++
			spaceRun = 0
		case r == '\t':
			if started {
				signals++
			}
			spaceRun = 0
		case r == ' ':
			spaceRun++
		default:
			if started && spaceRun >= minGap {
				signals++
			}
			spaceRun = 0
			started = true
		}
	}
	return signals
}

// collapseSpacedLine joins words printed with letter spacing ("C h a p t
// e r 1" becomes "Chapter 1"). Word boundaries are the runs of two or
// more spaces preserved in Raw; within each word, single spaces are glyph
// spacing. Spaced titles capitalize every word, so a spaced run starting
// with a lowercase letter rejects the whole line; that is prose for the
// corrector, not a title.
func (a *Analyzer) collapseSpacedLine(line *model.Line) (string, bool) {
	source := strings.TrimSpace(line.Raw)
	if source == "" {
		source = line.Text
	}

	groups := wordGapPattern.Split(source, -1)

	// Without word gaps the whole line is one run and needs a longer
	// streak of single letters before it reads as letter spacing.
	minRun := 2
	if len(groups) == 1 {
		minRun = a.config.MinSpacedRun
	}

	var out []string
	changed := false
	for _, group := range groups {
		collapsed, groupChanged, ok := collapseGroup(group, minRun)
		if !ok {
			return line.Text, false
		}
		changed = changed || groupChanged
		out = append(out, collapsed)
	}

	if !changed {
		return line.Text, false
	}
	return strings.Join(out, " "), true
}

// collapseGroup joins runs of minRun or more single-letter tokens within
// one gap-delimited word. ok is false when a run of two or more single
// letters starts lowercase.
func collapseGroup(group string, minRun int) (collapsed string, changed, ok bool) {
	tokens := strings.Fields(group)

	var out []string
	var run []string
	ok = true

	flush := func() {
		if len(run) >= 2 {
			r, _ := utf8.DecodeRuneInString(run[0])
			if !unicode.IsUpper(r) {
				ok = false
			}
		}
		if ok && len(run) >= minRun {
			out = append(out, strings.Join(run, ""))
			changed = true
		} else {
			out = append(out, run...)
		}
		run = nil
	}

	for _, tok := range tokens {
		if len([]rune(tok)) == 1 && unicode.IsLetter([]rune(tok)[0]) {
			run = append(run, tok)
			continue
		}
		flush()
		out = append(out, tok)
	}
	flush()

	return strings.Join(out, " "), changed, ok
}

// letterSpaced reports whether most of a line's tokens are single
// letters, meaning its space runs separate glyphs rather than columns.
func (a *Analyzer) letterSpaced(text string) bool {
	tokens := strings.Fields(text)
	if len(tokens) < a.config.MinSpacedRun {
		return false
	}
	single := 0
	for _, tok := range tokens {
		r := []rune(tok)
		if len(r) == 1 && unicode.IsLetter(r[0]) {
			single++
		}
	}
	return single*2 > len(tokens)
}

// endsInSentencePunctuation reports whether the line ends the way prose
// does. Headings do not.
func endsInSentencePunctuation(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	switch s[len(s)-1] {
	case '.', '!', '?', ',', ';':
		return true
	}
	return false
}

// isAllCaps reports whether the text is at least 90% uppercase letters,
// with a minimum of three letters.
func isAllCaps(s string) bool {
	upper, lower := 0, 0
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			upper++
		case unicode.IsLower(r):
			lower++
		}
	}
	if upper+lower < 3 {
		return false
	}
	return lower == 0 || float64(upper)/float64(upper+lower) > 0.9
}

// isTitleCase reports whether every significant word starts uppercase.
// Short connectives ("of", "the", "and") are ignored.
func isTitleCase(s string) bool {
	words := strings.Fields(s)
	if len(words) == 0 {
		return false
	}
	significant := 0
	for i, w := range words {
		r := []rune(w)[0]
		if !unicode.IsLetter(r) {
			return false
		}
		if i > 0 && len(w) <= 3 && unicode.IsLower(r) {
			continue // connective
		}
		if !unicode.IsUpper(r) {
			return false
		}
		significant++
	}
	return significant >= 1
}

// leadingSpaces counts the spaces before the first non-space character.
func leadingSpaces(raw string) int {
	n := 0
	for _, r := range raw {
		if r != ' ' && r != '\t' {
			break
		}
		n++
	}
	return n
}
