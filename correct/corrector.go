package correct

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tsawler/recompose/model"
	"github.com/tsawler/recompose/wordlist"
)

// Config holds configuration options for the text corrector. Individual
// passes can be switched off independently.
type Config struct {
	// FixHyphenation merges words split across lines by end-of-line
	// hyphenation when the joined form is a known word
	FixHyphenation bool

	// FixSpacedWords reassembles words shattered into individual letters
	// by wide glyph spacing
	FixSpacedWords bool

	// FixConfusions repairs common OCR character confusions (rn/m, 1/l,
	// 0/o) in tokens the word list does not recognize
	FixConfusions bool

	// NormalizeWhitespace tidies spacing around punctuation and collapses
	// runaway punctuation runs
	NormalizeWhitespace bool

	// MinSpacedRun is the minimum number of single-letter tokens a line
	// must contain before the spaced-word pass considers it
	MinSpacedRun int

	// KeepRecords retains a CorrectionRecord for every repair made
	KeepRecords bool
}

// DefaultConfig returns a configuration with all repair passes enabled.
func DefaultConfig() Config {
	return Config{
		FixHyphenation:      true,
		FixSpacedWords:      true,
		FixConfusions:       true,
		NormalizeWhitespace: true,
		MinSpacedRun:        3,
		KeepRecords:         false,
	}
}

// Corrector repairs extraction artifacts in a built document. A nil word
// list disables the dictionary-gated passes (hyphenation merging and
// confusion repair) rather than failing.
type Corrector struct {
	config Config
	words  *wordlist.List
}

// New creates a Corrector with default configuration.
func New(words *wordlist.List) *Corrector {
	return NewWithConfig(words, DefaultConfig())
}

// NewWithConfig creates a Corrector with the given configuration.
func NewWithConfig(words *wordlist.List, config Config) *Corrector {
	return &Corrector{config: config, words: words}
}

var (
	spaceBeforePunct = regexp.MustCompile(`\s+([.,;:!?)\]])`)
	dotRunPattern    = regexp.MustCompile(`\.{4,}`)
	repeatPunct      = regexp.MustCompile(`!{2,}|\?{2,}|,{2,}|;{2,}|:{2,}`)
	gapSplitPattern  = regexp.MustCompile(`\s{2,}`)
)

// confusionPairs lists character sequences OCR engines routinely swap.
// A replacement is only accepted when it turns an unknown token into a
// known word.
var confusionPairs = []struct{ from, to string }{
	{"rn", "m"},
	{"vv", "w"},
	{"1", "l"},
	{"0", "o"},
}

// Correct repairs every content block in the document in place. Table
// blocks are skipped; their cells were already shaped by the recognizer.
// The returned records are nil unless KeepRecords is set.
func (c *Corrector) Correct(doc *model.Document) []model.CorrectionRecord {
	var records []model.CorrectionRecord
	for _, block := range doc.AllBlocks() {
		if block.IsTable() {
			continue
		}
		records = c.correctBlock(block, records)
	}
	if !c.config.KeepRecords {
		return nil
	}
	return records
}

func (c *Corrector) correctBlock(block *model.ContentBlock, records []model.CorrectionRecord) []model.CorrectionRecord {
	if c.config.FixHyphenation {
		records = c.dehyphenate(block, records)
	}
	for i := range block.Lines {
		line := &block.Lines[i]
		if line.Absorbed || line.IsBlank() {
			continue
		}
		if c.config.FixSpacedWords {
			records = c.fixSpacedLine(line, records)
		}
		if c.config.FixConfusions {
			records = c.fixConfusions(line, records)
		}
		if c.config.NormalizeWhitespace {
			records = c.normalizeWhitespace(line, records)
		}
	}
	return records
}

// dehyphenate merges a line's trailing hyphenated fragment with the first
// word of the next line when the joined form is a known word. The
// continuation line's remaining content moves up with it and the line is
// marked absorbed. Hyphens that do not form a known word are left alone.
func (c *Corrector) dehyphenate(block *model.ContentBlock, records []model.CorrectionRecord) []model.CorrectionRecord {
	for i := 0; i < len(block.Lines); i++ {
		line := &block.Lines[i]
		content := line.Content()
		if line.Absorbed || !strings.HasSuffix(content, "-") || len(content) < 2 {
			continue
		}
		next := nextContentLine(block, i)
		if next == nil {
			continue
		}
		nextContent := next.Content()
		r, _ := utf8.DecodeRuneInString(nextContent)
		if !unicode.IsLower(r) {
			continue
		}

		base := strings.TrimSuffix(content, "-")
		fields := strings.Fields(base)
		nextFields := strings.Fields(nextContent)
		if len(fields) == 0 || len(nextFields) == 0 {
			continue
		}
		joined := fields[len(fields)-1] + nextFields[0]
		if !c.words.IsKnown(trimPunct(joined)) {
			continue
		}

		line.Corrected = base + nextContent
		next.Absorbed = true
		if c.config.KeepRecords {
			records = append(records, model.CorrectionRecord{
				Rule:      "dehyphenate",
				Original:  fields[len(fields)-1] + "- " + nextFields[0],
				Corrected: joined,
				Page:      line.Page,
				Line:      line.Index,
			})
		}
		// The merged line may itself end in a hyphen; revisit it so
		// chained splits resolve in one pass.
		i--
	}
	return records
}

// fixSpacedLine reassembles lines whose words were shattered into
// individual letters. The raw spacing is consulted: runs of two or more
// spaces mark word boundaries, single spaces within a run of single-letter
// tokens are glyph spacing. A line spaced with only single gaps is joined
// only when the word list confirms the result.
func (c *Corrector) fixSpacedLine(line *model.Line, records []model.CorrectionRecord) []model.CorrectionRecord {
	source := strings.TrimSpace(line.Raw)
	if source == "" {
		source = line.Content()
	}
	tokens := strings.Fields(source)
	if countSingleLetters(tokens) < c.config.MinSpacedRun {
		return records
	}

	var fixed string
	if groups := gapSplitPattern.Split(source, -1); len(groups) > 1 {
		parts := make([]string, 0, len(groups))
		for _, g := range groups {
			parts = append(parts, joinIfSpaced(g))
		}
		fixed = strings.Join(parts, " ")
	} else if len(tokens) == countSingleLetters(tokens) {
		candidate := strings.Join(tokens, "")
		if !c.words.IsKnown(candidate) {
			return records
		}
		fixed = candidate
	} else {
		return records
	}

	if fixed == line.Content() {
		return records
	}
	original := line.Content()
	line.Corrected = fixed
	if c.config.KeepRecords {
		records = append(records, model.CorrectionRecord{
			Rule:      "spaced-word",
			Original:  original,
			Corrected: fixed,
			Page:      line.Page,
			Line:      line.Index,
		})
	}
	return records
}

// fixConfusions rewrites tokens the word list rejects when a single
// confusion-pair substitution turns them into a known word. Tokens the
// word list already knows are never touched.
func (c *Corrector) fixConfusions(line *model.Line, records []model.CorrectionRecord) []model.CorrectionRecord {
	if c.words == nil {
		return records
	}
	content := line.Content()
	tokens := strings.Split(content, " ")
	changed := false
	for i, token := range tokens {
		core, lead, trail := splitPunct(token)
		if core == "" || c.words.IsKnown(core) {
			continue
		}
		for _, pair := range confusionPairs {
			candidate, ok := c.trySubstitution(core, pair.from, pair.to)
			if !ok {
				continue
			}
			if c.config.KeepRecords {
				records = append(records, model.CorrectionRecord{
					Rule:      "ocr-confusion",
					Original:  core,
					Corrected: candidate,
					Page:      line.Page,
					Line:      line.Index,
				})
			}
			tokens[i] = lead + candidate + trail
			changed = true
			break
		}
	}
	if changed {
		line.Corrected = strings.Join(tokens, " ")
	}
	return records
}

// trySubstitution replaces occurrences of from with to in core, one at a
// time in position order, and returns the first candidate the word list
// knows. A token may contain the confused sequence more than once
// ("rnodern" has two "rn" runs); replacing them all at once would miss
// the single bad one, so each position is tried on its own before the
// replace-everywhere candidate.
func (c *Corrector) trySubstitution(core, from, to string) (string, bool) {
	for start := 0; ; {
		idx := strings.Index(core[start:], from)
		if idx < 0 {
			break
		}
		pos := start + idx
		candidate := core[:pos] + to + core[pos+len(from):]
		if candidate != core && c.words.IsKnown(candidate) {
			return candidate, true
		}
		start = pos + 1
	}
	if all := strings.ReplaceAll(core, from, to); all != core && c.words.IsKnown(all) {
		return all, true
	}
	return "", false
}

// normalizeWhitespace removes spaces before closing punctuation and
// collapses runaway punctuation runs.
func (c *Corrector) normalizeWhitespace(line *model.Line, records []model.CorrectionRecord) []model.CorrectionRecord {
	content := line.Content()
	fixed := spaceBeforePunct.ReplaceAllString(content, "$1")
	fixed = dotRunPattern.ReplaceAllString(fixed, "...")
	fixed = repeatPunct.ReplaceAllStringFunc(fixed, func(run string) string {
		return run[:1]
	})
	if fixed == content {
		return records
	}
	line.Corrected = fixed
	if c.config.KeepRecords {
		records = append(records, model.CorrectionRecord{
			Rule:      "whitespace",
			Original:  content,
			Corrected: fixed,
			Page:      line.Page,
			Line:      line.Index,
		})
	}
	return records
}

// nextContentLine returns the next line in the block that still carries
// content, or nil.
func nextContentLine(block *model.ContentBlock, from int) *model.Line {
	for j := from + 1; j < len(block.Lines); j++ {
		if !block.Lines[j].Absorbed && !block.Lines[j].IsBlank() {
			return &block.Lines[j]
		}
	}
	return nil
}

// joinIfSpaced concatenates a group's tokens when every token is a single
// letter; mixed groups keep their single spaces.
func joinIfSpaced(group string) string {
	tokens := strings.Fields(group)
	if len(tokens) > 1 && countSingleLetters(tokens) == len(tokens) {
		return strings.Join(tokens, "")
	}
	return strings.Join(tokens, " ")
}

func countSingleLetters(tokens []string) int {
	n := 0
	for _, t := range tokens {
		r, size := utf8.DecodeRuneInString(t)
		if size == len(t) && unicode.IsLetter(r) {
			n++
		}
	}
	return n
}

// splitPunct separates a token into leading punctuation, core, and
// trailing punctuation.
func splitPunct(token string) (core, lead, trail string) {
	start := 0
	for start < len(token) {
		r, size := utf8.DecodeRuneInString(token[start:])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			break
		}
		start += size
	}
	end := len(token)
	for end > start {
		r, size := utf8.DecodeLastRuneInString(token[start:end])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			break
		}
		end -= size
	}
	return token[start:end], token[:start], token[end:]
}

func trimPunct(token string) string {
	core, _, _ := splitPunct(token)
	return core
}
