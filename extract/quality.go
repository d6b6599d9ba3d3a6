package extract

import (
	"strings"
	"unicode"
)

// Quality captures metrics about extraction quality for one source.
type Quality struct {
	// PageCount is the number of pages in the source, including pages
	// that yielded no text
	PageCount int

	// CharsPerPage is the mean extracted character count per page
	CharsPerPage float64

	// PrintableRatio is the fraction of extracted runes that are
	// printable text rather than control or garbage characters
	PrintableRatio float64

	// WordlikeRatio is the fraction of tokens with plausible word length
	WordlikeRatio float64

	// HasImageStreams reports whether the source contains page images,
	// the usual signature of a scanned document
	HasImageStreams bool
}

// NeedsOCR reports whether the extracted text is likely untrustworthy and
// the source should be re-read through OCR: a near-empty text layer over
// page images, or text dominated by unprintable glyphs.
func (q Quality) NeedsOCR() bool {
	return (q.CharsPerPage < 50 && q.HasImageStreams) || q.PrintableRatio < 0.85
}

// measureQuality computes text metrics over the full extracted text.
func measureQuality(text string, pageCount int, hasImages bool) Quality {
	q := Quality{
		PageCount:       pageCount,
		PrintableRatio:  printableRatio(text),
		WordlikeRatio:   wordlikeRatio(text),
		HasImageStreams: hasImages,
	}
	if pageCount > 0 {
		q.CharsPerPage = float64(len([]rune(text))) / float64(pageCount)
	}
	return q
}

// printableRatio returns the fraction of printable runes. Private Use
// Area glyphs, the replacement character, and control characters other
// than whitespace count as garbage; they are the typical residue of
// broken font encodings.
func printableRatio(text string) float64 {
	if text == "" {
		return 1.0
	}
	total, printable := 0, 0
	for _, r := range text {
		total++
		if isGarbageRune(r) {
			continue
		}
		if unicode.IsPrint(r) || r == '\n' || r == '\r' || r == '\t' {
			printable++
		}
	}
	return float64(printable) / float64(total)
}

func isGarbageRune(r rune) bool {
	if r >= 0xE000 && r <= 0xF8FF {
		return true
	}
	if r == 0xFFFD {
		return true
	}
	return r < 0x0020 && r != '\n' && r != '\r' && r != '\t'
}

// wordlikeRatio returns the fraction of tokens between 2 and 15 runes
// long, a cheap proxy for "this looks like words, not glyph soup".
func wordlikeRatio(text string) float64 {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return 0
	}
	wordlike := 0
	for _, f := range fields {
		if n := len([]rune(f)); n >= 2 && n <= 15 {
			wordlike++
		}
	}
	return float64(wordlike) / float64(len(fields))
}
